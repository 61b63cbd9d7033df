// Package alert manages indicator alerts a chat sets on a coin or a whole
// watchlist.
package alert

import (
	"context"
	"errors"
	"strings"
	"time"
)

// Owner identifies who an alert belongs to, same keying as watchlists.
type Owner struct {
	ID      int64
	IsGroup bool
}

// TargetKind says what the alert watches.
type TargetKind string

const (
	TargetCoin      TargetKind = "coin"
	TargetWatchlist TargetKind = "watchlist"
)

// Alert is one configured alert.
type Alert struct {
	ID          string
	Owner       Owner
	TargetKind  TargetKind
	TargetID    string
	TargetLabel string
	Pairing     string
	Timeframe   string
	Indicators  []string
	Note        string
	Enabled     bool
	CreatedAt   time.Time
}

// Draft is the input to Create; the service assigns ID, Enabled and
// CreatedAt.
type Draft struct {
	Owner       Owner
	TargetKind  TargetKind
	TargetID    string
	TargetLabel string
	Pairing     string
	Timeframe   string
	Indicators  []string
	Note        string
}

// Limits are the static per-owner caps.
type Limits struct {
	MaxAlerts     int
	MaxIndicators int
}

// DefaultLimits matches the product defaults.
var DefaultLimits = Limits{MaxAlerts: 10, MaxIndicators: 3}

var (
	ErrNotFound     = errors.New("alert: not found")
	ErrLimitReached = errors.New("alert: limit reached")
	ErrInvalidDraft = errors.New("alert: incomplete draft")
)

// Service is the alert boundary the dialogs depend on.
type Service interface {
	Create(ctx context.Context, draft Draft) (Alert, error)
	List(ctx context.Context, owner Owner) ([]Alert, error)
	Delete(ctx context.Context, owner Owner, id string) error
	// Toggle flips the enabled flag and returns the new state.
	Toggle(ctx context.Context, owner Owner, id string) (bool, error)
	Limits() Limits
}

func validateDraft(d Draft, limits Limits) error {
	switch d.TargetKind {
	case TargetCoin, TargetWatchlist:
	default:
		return ErrInvalidDraft
	}
	if strings.TrimSpace(d.TargetID) == "" ||
		strings.TrimSpace(d.Pairing) == "" ||
		strings.TrimSpace(d.Timeframe) == "" ||
		len(d.Indicators) == 0 {
		return ErrInvalidDraft
	}
	if len(d.Indicators) > limits.MaxIndicators {
		return ErrLimitReached
	}
	return nil
}
