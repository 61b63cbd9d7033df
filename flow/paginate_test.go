package flow

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pageTrigger(p int) string { return fmt.Sprintf("pg_%d", p) }

func TestPaginateClampsIntoBounds(t *testing.T) {
	items := make([]int, 0, 50)
	for i := 0; i < 50; i++ {
		items = append(items, i)
	}

	for _, total := range []int{0, 1, 4, 13, 50} {
		for _, perPage := range []int{1, 3, 5, 100} {
			for _, page := range []int{-10, 0, 1, 2, 7, 9999} {
				window, st := Paginate(items[:total], page, perPage)
				maxPage := TotalPages(total, perPage)
				assert.GreaterOrEqual(t, st.CurrentPage, 1,
					"total=%d per=%d page=%d", total, perPage, page)
				assert.LessOrEqual(t, st.CurrentPage, maxPage,
					"total=%d per=%d page=%d", total, perPage, page)
				assert.LessOrEqual(t, len(window), perPage)
				assert.Equal(t, total, st.TotalItems)
			}
		}
	}
}

func TestPaginateWindowContents(t *testing.T) {
	items := []string{"a", "b", "c", "d", "e", "f", "g"}

	window, st := Paginate(items, 2, 3)
	assert.Equal(t, []string{"d", "e", "f"}, window)
	assert.Equal(t, 2, st.CurrentPage)
	assert.Equal(t, 3, st.TotalPages())

	// Last, partial page.
	window, st = Paginate(items, 3, 3)
	assert.Equal(t, []string{"g"}, window)
	assert.Equal(t, 3, st.CurrentPage)

	// Overshoot clamps to the last page.
	window, st = Paginate(items, 99, 3)
	assert.Equal(t, []string{"g"}, window)
	assert.Equal(t, 3, st.CurrentPage)
}

func TestPaginateEmpty(t *testing.T) {
	window, st := Paginate([]string(nil), 5, 10)
	assert.Empty(t, window)
	assert.Equal(t, 1, st.CurrentPage)
	assert.Equal(t, 1, st.TotalPages())
}

func TestBuildPageControlsNavRowBounds(t *testing.T) {
	// First page: no prev.
	rows := BuildPageControls(1, 2, 0, pageTrigger)
	require.Len(t, rows, 1)
	require.Len(t, rows[0], 2)
	assert.Equal(t, "1/2", rows[0][0].Label)
	assert.Equal(t, TriggerNoop, rows[0][0].Trigger)
	assert.Equal(t, "pg_2", rows[0][1].Trigger)

	// Last page: no next.
	rows = BuildPageControls(2, 2, 0, pageTrigger)
	require.Len(t, rows, 1)
	require.Len(t, rows[0], 2)
	assert.Equal(t, "pg_1", rows[0][0].Trigger)
	assert.Equal(t, "2/2", rows[0][1].Label)

	// Middle page: both.
	rows = BuildPageControls(2, 3, 0, pageTrigger)
	require.Len(t, rows, 1)
	require.Len(t, rows[0], 3)
}

func TestBuildPageControlsNoNumbersForSmallTotals(t *testing.T) {
	rows := BuildPageControls(2, 3, 5, pageTrigger)
	assert.Len(t, rows, 1, "total <= 3 must not produce numbered rows")

	rows = BuildPageControls(2, 10, 0, pageTrigger)
	assert.Len(t, rows, 1, "maxButtons == 0 must not produce numbered rows")
}

func TestBuildPageControlsEllipsisWindow(t *testing.T) {
	rows := BuildPageControls(10, 20, 5, pageTrigger)
	require.Greater(t, len(rows), 1)

	var numbered []Button
	for _, row := range rows[1:] {
		assert.LessOrEqual(t, len(row), 5)
		numbered = append(numbered, row...)
	}

	// Window 8..12 plus "1"+ellipsis head and ellipsis+"20" tail.
	labels := make([]string, len(numbered))
	for i, b := range numbered {
		labels[i] = b.Label
	}
	require.Equal(t, []string{"1", Ellipsis, "8", "9", "· 10 ·", "11", "12", Ellipsis, "20"}, labels)

	assert.Equal(t, "pg_1", numbered[0].Trigger)
	assert.Equal(t, TriggerNoop, numbered[1].Trigger)
	assert.Equal(t, "pg_20", numbered[len(numbered)-1].Trigger)
}

func TestBuildPageControlsWindowAtBounds(t *testing.T) {
	// Window pinned to the start: no leading markers.
	rows := BuildPageControls(1, 20, 5, pageTrigger)
	var labels []string
	for _, row := range rows[1:] {
		for _, b := range row {
			labels = append(labels, b.Label)
		}
	}
	assert.Equal(t, []string{"· 1 ·", "2", "3", "4", "5", Ellipsis, "20"}, labels)

	// Window pinned to the end: no trailing markers.
	rows = BuildPageControls(20, 20, 5, pageTrigger)
	labels = labels[:0]
	for _, row := range rows[1:] {
		for _, b := range row {
			labels = append(labels, b.Label)
		}
	}
	assert.Equal(t, []string{"1", Ellipsis, "16", "17", "18", "19", "· 20 ·"}, labels)
}
