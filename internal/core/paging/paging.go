package paging

import "strconv"

const (
	DefaultPageSize = 10
	// Above this many pages the navigation collapses into ellipses.
	EllipsisThreshold = 4
)

// Window returns rows[index*size : (index+1)*size], clamped to rows. The
// result shares rows' backing array.
func Window[T any](rows []T, index, size int) []T {
	if size <= 0 || index < 0 {
		return rows[:0:0]
	}
	lo := index * size
	if lo >= len(rows) {
		return rows[:0:0]
	}
	hi := min(lo+size, len(rows))
	return rows[lo:hi:hi]
}

// PageCount returns ceil(total/size).
func PageCount(total, size int) int {
	if size <= 0 || total <= 0 {
		return 0
	}
	return (total + size - 1) / size
}

// Pager holds the current page index and page size.
type Pager struct {
	index int
	size  int
}

func NewPager(size int) *Pager {
	if size <= 0 {
		size = DefaultPageSize
	}
	return &Pager{size: size}
}

func (p *Pager) Index() int { return p.index }
func (p *Pager) Size() int  { return p.size }

// SetPage moves to index and reports whether it changed.
func (p *Pager) SetPage(index int) bool {
	if index < 0 || index == p.index {
		return false
	}
	p.index = index
	return true
}

// SetPageSize changes the size and returns to the first page. It reports
// whether the size changed.
func (p *Pager) SetPageSize(size int) bool {
	if size <= 0 || size == p.size {
		return false
	}
	p.size = size
	p.index = 0
	return true
}

// Reset returns to the first page.
func (p *Pager) Reset() { p.index = 0 }

// ButtonKind distinguishes navigation buttons.
type ButtonKind int

const (
	Prev ButtonKind = iota
	Page
	Ellipsis
	Next
)

// Button is one entry of the page navigation bar.
type Button struct {
	Kind     ButtonKind
	Index    int // page to go to; unused for ellipses
	Active   bool
	Disabled bool
}

func (b Button) Label() string {
	switch b.Kind {
	case Prev:
		return "❮"
	case Next:
		return "❯"
	case Ellipsis:
		return "..."
	}
	return strconv.Itoa(b.Index + 1)
}

// Buttons lays out the navigation bar for current of total pages: previous,
// first, the inner pages (collapsed around current when there are many),
// last, next.
func Buttons(current, total int) []Button {
	page := func(i int) Button {
		return Button{Kind: Page, Index: i, Active: i == current, Disabled: i == current}
	}
	ellipsis := Button{Kind: Ellipsis, Disabled: true}

	out := []Button{{Kind: Prev, Index: current - 1, Disabled: current == 0}, page(0)}
	switch {
	case total <= EllipsisThreshold:
		for i := 1; i < total-1; i++ {
			out = append(out, page(i))
		}
	case current <= 1 || current >= total-2:
		out = append(out, page(1), ellipsis, page(total-2))
	default:
		out = append(out, ellipsis)
		if current > 2 {
			out = append(out, page(current-1))
		}
		out = append(out, page(current), page(current+1), ellipsis)
	}
	if total > 1 {
		out = append(out, page(total-1))
	}
	next := current + 1
	return append(out, Button{Kind: Next, Index: next, Disabled: next >= total})
}
