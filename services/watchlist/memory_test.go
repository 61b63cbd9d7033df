package watchlist

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var owner = Owner{ID: 42}

func TestCreateAddRoundTrip(t *testing.T) {
	svc := NewMemory()
	ctx := context.Background()

	created, err := svc.Create(ctx, owner, "Top DeFi")
	require.NoError(t, err)
	require.NoError(t, svc.AddItem(ctx, owner, created.ID, "ethereum"))

	lists, err := svc.List(ctx, owner)
	require.NoError(t, err)
	require.Len(t, lists, 1)
	assert.Equal(t, "Top DeFi", lists[0].Name)
	assert.Equal(t, []string{"ethereum"}, lists[0].Items)
}

func TestCreateRejectsDuplicateName(t *testing.T) {
	svc := NewMemory()
	ctx := context.Background()

	_, err := svc.Create(ctx, owner, "Majors")
	require.NoError(t, err)
	_, err = svc.Create(ctx, owner, "majors")
	assert.ErrorIs(t, err, ErrDuplicateName)

	// Different owners don't collide.
	_, err = svc.Create(ctx, Owner{ID: 42, IsGroup: true}, "Majors")
	assert.NoError(t, err)
}

func TestCreateRejectsEmptyName(t *testing.T) {
	svc := NewMemory()
	_, err := svc.Create(context.Background(), owner, "  ")
	assert.ErrorIs(t, err, ErrEmptyName)
}

func TestAddItemRejectsDuplicate(t *testing.T) {
	svc := NewMemory()
	ctx := context.Background()

	w, err := svc.Create(ctx, owner, "L1s")
	require.NoError(t, err)
	require.NoError(t, svc.AddItem(ctx, owner, w.ID, "solana"))
	assert.ErrorIs(t, svc.AddItem(ctx, owner, w.ID, "solana"), ErrDuplicateItem)
}

func TestRemoveItem(t *testing.T) {
	svc := NewMemory()
	ctx := context.Background()

	w, err := svc.Create(ctx, owner, "L1s")
	require.NoError(t, err)
	require.NoError(t, svc.AddItem(ctx, owner, w.ID, "solana"))
	require.NoError(t, svc.AddItem(ctx, owner, w.ID, "near"))

	require.NoError(t, svc.RemoveItem(ctx, owner, w.ID, "solana"))
	got, err := svc.Get(ctx, owner, w.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"near"}, got.Items)

	assert.ErrorIs(t, svc.RemoveItem(ctx, owner, w.ID, "solana"), ErrNotFound)
}

func TestRenameAndDelete(t *testing.T) {
	svc := NewMemory()
	ctx := context.Background()

	w, err := svc.Create(ctx, owner, "Old")
	require.NoError(t, err)
	require.NoError(t, svc.Rename(ctx, owner, w.ID, "New"))

	got, err := svc.Get(ctx, owner, w.ID)
	require.NoError(t, err)
	assert.Equal(t, "New", got.Name)

	require.NoError(t, svc.Delete(ctx, owner, w.ID))
	_, err = svc.Get(ctx, owner, w.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRenameCollision(t *testing.T) {
	svc := NewMemory()
	ctx := context.Background()

	_, err := svc.Create(ctx, owner, "One")
	require.NoError(t, err)
	two, err := svc.Create(ctx, owner, "Two")
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Rename(ctx, owner, two.ID, "one"), ErrDuplicateName)
	assert.NoError(t, svc.Rename(ctx, owner, two.ID, "Two"), "renaming to own name is fine")
}

func TestMutatingReturnedCopyDoesNotLeak(t *testing.T) {
	svc := NewMemory()
	ctx := context.Background()

	w, err := svc.Create(ctx, owner, "Copy")
	require.NoError(t, err)
	require.NoError(t, svc.AddItem(ctx, owner, w.ID, "bitcoin"))

	got, err := svc.Get(ctx, owner, w.ID)
	require.NoError(t, err)
	got.Items[0] = "mutated"

	again, err := svc.Get(ctx, owner, w.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"bitcoin"}, again.Items)
}
