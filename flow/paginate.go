package flow

import "fmt"

// PageState describes one pagination window. CurrentPage is 1-based and
// always within [1, max(1, ceil(TotalItems/ItemsPerPage))].
type PageState struct {
	CurrentPage  int
	ItemsPerPage int
	TotalItems   int
}

// TotalPages returns the page count, never below 1.
func (p PageState) TotalPages() int {
	return TotalPages(p.TotalItems, p.ItemsPerPage)
}

// TotalPages computes ceil(total/perPage) with a floor of 1.
func TotalPages(total, perPage int) int {
	if perPage < 1 {
		perPage = 1
	}
	pages := (total + perPage - 1) / perPage
	if pages < 1 {
		pages = 1
	}
	return pages
}

// Paginate clamps page into range and slices the window. It is a pure
// function: any requested page, including garbage, yields a valid window.
func Paginate[T any](items []T, page, perPage int) ([]T, PageState) {
	if perPage < 1 {
		perPage = 1
	}
	total := len(items)
	pages := TotalPages(total, perPage)
	if page < 1 {
		page = 1
	}
	if page > pages {
		page = pages
	}

	start := (page - 1) * perPage
	if start > total {
		start = total
	}
	end := start + perPage
	if end > total {
		end = total
	}
	return items[start:end], PageState{CurrentPage: page, ItemsPerPage: perPage, TotalItems: total}
}

// Ellipsis is the label used for placeholder page buttons.
const Ellipsis = "…"

// BuildPageControls produces the pagination keyboard rows: one navigation
// row (prev / current-of-total indicator / next, with prev and next omitted
// at the bounds), and, only when total > 3 and maxButtons > 0, numbered
// page buttons windowed around current. A literal "1" plus an ellipsis
// placeholder lead the window when it does not start at page 1, with the
// symmetric tail at the end. Numbered buttons are chunked into rows of at
// most 5. trigger maps a page number to its callback trigger.
func BuildPageControls(current, total, maxButtons int, trigger func(page int) string) [][]Button {
	if total < 1 {
		total = 1
	}
	if current < 1 {
		current = 1
	}
	if current > total {
		current = total
	}
	if trigger == nil {
		trigger = func(int) string { return TriggerNoop }
	}

	var rows [][]Button

	var nav []Button
	if current > 1 {
		nav = append(nav, Btn("‹ Prev", trigger(current-1)))
	}
	nav = append(nav, Btn(fmt.Sprintf("%d/%d", current, total), TriggerNoop))
	if current < total {
		nav = append(nav, Btn("Next ›", trigger(current+1)))
	}
	rows = append(rows, nav)

	if total <= 3 || maxButtons <= 0 {
		return rows
	}

	window := maxButtons
	if window > total {
		window = total
	}
	start := current - window/2
	if start < 1 {
		start = 1
	}
	end := start + window - 1
	if end > total {
		end = total
		start = end - window + 1
	}

	var numbered []Button
	if start > 1 {
		numbered = append(numbered, Btn("1", trigger(1)))
		if start > 2 {
			numbered = append(numbered, Btn(Ellipsis, TriggerNoop))
		}
	}
	for p := start; p <= end; p++ {
		label := fmt.Sprintf("%d", p)
		if p == current {
			label = fmt.Sprintf("· %d ·", p)
		}
		numbered = append(numbered, Btn(label, trigger(p)))
	}
	if end < total {
		if end < total-1 {
			numbered = append(numbered, Btn(Ellipsis, TriggerNoop))
		}
		numbered = append(numbered, Btn(fmt.Sprintf("%d", total), trigger(total)))
	}

	for i := 0; i < len(numbered); i += 5 {
		stop := i + 5
		if stop > len(numbered) {
			stop = len(numbered)
		}
		rows = append(rows, numbered[i:stop])
	}
	return rows
}
