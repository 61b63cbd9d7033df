package alert

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/glennakiN/Buynoculars-sub000/core/logger"
)

const logComp = "service.alerts"

// Memory is the in-process implementation; the default wiring when no
// database is configured.
type Memory struct {
	mu     sync.Mutex
	alerts map[Owner][]*Alert
	limits Limits
	now    func() time.Time
}

// NewMemory builds an empty in-memory store with the given caps.
func NewMemory(limits Limits) *Memory {
	return &Memory{
		alerts: make(map[Owner][]*Alert),
		limits: limits,
		now:    time.Now,
	}
}

func (m *Memory) Limits() Limits { return m.limits }

func (m *Memory) Create(ctx context.Context, draft Draft) (Alert, error) {
	if err := validateDraft(draft, m.limits); err != nil {
		return Alert{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.alerts[draft.Owner]) >= m.limits.MaxAlerts {
		return Alert{}, ErrLimitReached
	}

	a := &Alert{
		ID:          uuid.NewString(),
		Owner:       draft.Owner,
		TargetKind:  draft.TargetKind,
		TargetID:    draft.TargetID,
		TargetLabel: draft.TargetLabel,
		Pairing:     draft.Pairing,
		Timeframe:   draft.Timeframe,
		Indicators:  append([]string(nil), draft.Indicators...),
		Note:        draft.Note,
		Enabled:     true,
		CreatedAt:   m.now(),
	}
	m.alerts[draft.Owner] = append(m.alerts[draft.Owner], a)

	logger.Debug(ctx, logComp, "create",
		slog.String("status", "ok"),
		slog.Int64("chat_id", draft.Owner.ID),
		slog.String("alert_id", a.ID),
		slog.String("target", string(a.TargetKind)),
	)
	return cloneAlert(a), nil
}

func (m *Memory) List(ctx context.Context, owner Owner) ([]Alert, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Alert, 0, len(m.alerts[owner]))
	for _, a := range m.alerts[owner] {
		out = append(out, cloneAlert(a))
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (m *Memory) Delete(ctx context.Context, owner Owner, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	all := m.alerts[owner]
	for i, a := range all {
		if a.ID == id {
			m.alerts[owner] = append(all[:i], all[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (m *Memory) Toggle(ctx context.Context, owner Owner, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, a := range m.alerts[owner] {
		if a.ID == id {
			a.Enabled = !a.Enabled
			return a.Enabled, nil
		}
	}
	return false, ErrNotFound
}

func cloneAlert(a *Alert) Alert {
	out := *a
	out.Indicators = append([]string(nil), a.Indicators...)
	return out
}
