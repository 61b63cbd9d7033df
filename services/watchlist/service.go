// Package watchlist manages named asset lists per chat owner.
package watchlist

import (
	"context"
	"errors"
	"time"
)

// Owner identifies who a watchlist belongs to. Group chats and private
// chats with the same numeric id are distinct owners.
type Owner struct {
	ID      int64
	IsGroup bool
}

// Watchlist is one named list of asset ids.
type Watchlist struct {
	ID        string
	Owner     Owner
	Name      string
	Items     []string
	CreatedAt time.Time
}

// Contains reports whether the asset is already on the list.
func (w Watchlist) Contains(assetID string) bool {
	for _, it := range w.Items {
		if it == assetID {
			return true
		}
	}
	return false
}

var (
	ErrNotFound      = errors.New("watchlist: not found")
	ErrDuplicateName = errors.New("watchlist: name already taken")
	ErrDuplicateItem = errors.New("watchlist: item already on the list")
	ErrEmptyName     = errors.New("watchlist: empty name")
)

// Service is the watchlist boundary the dialogs depend on.
type Service interface {
	Create(ctx context.Context, owner Owner, name string) (Watchlist, error)
	Rename(ctx context.Context, owner Owner, id, name string) error
	Delete(ctx context.Context, owner Owner, id string) error
	List(ctx context.Context, owner Owner) ([]Watchlist, error)
	Get(ctx context.Context, owner Owner, id string) (Watchlist, error)
	AddItem(ctx context.Context, owner Owner, id, assetID string) error
	RemoveItem(ctx context.Context, owner Owner, id, assetID string) error
}
