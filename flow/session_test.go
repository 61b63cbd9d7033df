package flow

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreCreatesOnFirstContact(t *testing.T) {
	st := NewStore()
	s := st.Get(100, 7)
	require.NotNil(t, s)
	assert.Equal(t, int64(100), s.ChatID)
	assert.False(t, s.InDialog())

	again := st.Get(100, 7)
	assert.Same(t, s, again)
	assert.Equal(t, 1, st.Len())
}

func TestStartDialogReplacesState(t *testing.T) {
	s := &Session{ChatID: 1}
	s.StartDialog("create_alert", map[string]any{"target_kind": "coin"})
	require.True(t, s.InDialog())
	assert.Equal(t, "create_alert", s.Dialog().DialogID)
	assert.Equal(t, 0, s.Dialog().Cursor)
	assert.Equal(t, "coin", s.GetString("target_kind"))

	s.Set("note", "hi")
	s.StartDialog("search", nil)
	assert.Equal(t, "search", s.Dialog().DialogID)
	assert.Equal(t, "", s.GetString("note"), "parameters are discarded wholesale")
	assert.Equal(t, "", s.GetString("target_kind"))
}

func TestEndDialogDiscardsEverything(t *testing.T) {
	s := &Session{ChatID: 1}
	s.StartDialog("search", nil)
	s.Set("query", "btc")
	s.EndDialog()
	assert.False(t, s.InDialog())
	_, ok := s.Get("query")
	assert.False(t, ok)
}

func TestParamAccessorsTolerateMistypes(t *testing.T) {
	s := &Session{}
	s.StartDialog("d", nil)
	s.Set("n", 42)
	s.Set("b", true)
	s.Set("str", "x")

	assert.Equal(t, 42, s.GetInt("n"))
	assert.True(t, s.GetBool("b"))
	assert.Equal(t, "x", s.GetString("str"))

	assert.Equal(t, "", s.GetString("n"))
	assert.Equal(t, 0, s.GetInt("str"))
	assert.False(t, s.GetBool("missing"))
}

func TestStoreConcurrentGet(t *testing.T) {
	st := NewStore()
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			s := st.Get(int64(n%4), int64(n))
			s.Lock()
			s.StartDialog("d", nil)
			s.Set("k", n)
			s.Unlock()
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 4, st.Len())
}
