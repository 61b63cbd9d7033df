package watchlist

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/glennakiN/Buynoculars-sub000/core/logger"
)

const logComp = "service.watchlists"

// Memory is the in-process implementation; the default wiring when no
// database is configured.
type Memory struct {
	mu    sync.Mutex
	lists map[Owner][]*Watchlist
	now   func() time.Time
}

// NewMemory builds an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		lists: make(map[Owner][]*Watchlist),
		now:   time.Now,
	}
}

func (m *Memory) Create(ctx context.Context, owner Owner, name string) (Watchlist, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Watchlist{}, ErrEmptyName
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, w := range m.lists[owner] {
		if strings.EqualFold(w.Name, name) {
			return Watchlist{}, ErrDuplicateName
		}
	}

	w := &Watchlist{
		ID:        uuid.NewString(),
		Owner:     owner,
		Name:      name,
		CreatedAt: m.now(),
	}
	m.lists[owner] = append(m.lists[owner], w)

	logger.Debug(ctx, logComp, "create",
		slog.String("status", "ok"),
		slog.Int64("chat_id", owner.ID),
		slog.String("watchlist_id", w.ID),
	)
	return clone(w), nil
}

func (m *Memory) Rename(ctx context.Context, owner Owner, id, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, w := range m.lists[owner] {
		if w.ID != id && strings.EqualFold(w.Name, name) {
			return ErrDuplicateName
		}
	}
	w, err := m.find(owner, id)
	if err != nil {
		return err
	}
	w.Name = name
	return nil
}

func (m *Memory) Delete(ctx context.Context, owner Owner, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	all := m.lists[owner]
	for i, w := range all {
		if w.ID == id {
			m.lists[owner] = append(all[:i], all[i+1:]...)
			logger.Debug(ctx, logComp, "delete",
				slog.String("status", "ok"),
				slog.Int64("chat_id", owner.ID),
				slog.String("watchlist_id", id),
			)
			return nil
		}
	}
	return ErrNotFound
}

func (m *Memory) List(ctx context.Context, owner Owner) ([]Watchlist, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Watchlist, 0, len(m.lists[owner]))
	for _, w := range m.lists[owner] {
		out = append(out, clone(w))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (m *Memory) Get(ctx context.Context, owner Owner, id string) (Watchlist, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	w, err := m.find(owner, id)
	if err != nil {
		return Watchlist{}, err
	}
	return clone(w), nil
}

func (m *Memory) AddItem(ctx context.Context, owner Owner, id, assetID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	w, err := m.find(owner, id)
	if err != nil {
		return err
	}
	if w.Contains(assetID) {
		return ErrDuplicateItem
	}
	w.Items = append(w.Items, assetID)
	return nil
}

func (m *Memory) RemoveItem(ctx context.Context, owner Owner, id, assetID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	w, err := m.find(owner, id)
	if err != nil {
		return err
	}
	for i, it := range w.Items {
		if it == assetID {
			w.Items = append(w.Items[:i], w.Items[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// find must be called with the mutex held.
func (m *Memory) find(owner Owner, id string) (*Watchlist, error) {
	for _, w := range m.lists[owner] {
		if w.ID == id {
			return w, nil
		}
	}
	return nil, ErrNotFound
}

func clone(w *Watchlist) Watchlist {
	out := *w
	out.Items = make([]string, len(w.Items))
	copy(out.Items, w.Items)
	return out
}
