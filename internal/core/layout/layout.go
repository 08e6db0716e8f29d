package layout

import (
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"datatable/internal/core/column"
)

const (
	// MinWidth is the narrowest a resized column can get, in pixels.
	MinWidth = 50
	// FlexWidth is the track of columns without a fixed or resized width.
	FlexWidth = "minmax(min-content, 1fr)"
)

// Order is the display permutation of the original column indices. The
// first Pinned columns never move.
type Order struct {
	idx    []int
	pinned int
}

func NewOrder(n, pinned int) *Order {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	return &Order{idx: idx, pinned: max(pinned, 0)}
}

// Indices returns original column indices in display order.
func (o *Order) Indices() []int { return slices.Clone(o.idx) }

func (o *Order) Len() int    { return len(o.idx) }
func (o *Order) Pinned() int { return o.pinned }

// Move takes the column at display position from and inserts it at display
// position to. Moves touching pinned positions or out of range are ignored.
func (o *Order) Move(from, to int) bool {
	n := len(o.idx)
	if from == to || from < o.pinned || to < o.pinned || from >= n || to >= n {
		return false
	}
	v := o.idx[from]
	o.idx = slices.Delete(o.idx, from, from+1)
	o.idx = slices.Insert(o.idx, to, v)
	return true
}

// Resize is the drag state of one column.
type Resize struct {
	Start int
	Delta int
}

// Widths tracks resized columns by original column index, so a width
// follows its column when the order changes.
type Widths map[int]Resize

// Begin records the starting width of a column the first time it is resized.
func (w Widths) Begin(i, start int) {
	if _, ok := w[i]; !ok {
		w[i] = Resize{Start: start}
	}
}

// Drag sets the accumulated delta of column i; Begin must have been called.
func (w Widths) Drag(i, delta int) {
	r, ok := w[i]
	if !ok {
		return
	}
	r.Delta = delta
	w[i] = r
}

// Width returns the resized width of column i, never below MinWidth.
func (w Widths) Width(i int) (int, bool) {
	r, ok := w[i]
	if !ok {
		return 0, false
	}
	return max(r.Start+r.Delta, MinWidth), true
}

// Template renders the grid track list of cols, given in original order,
// laid out in the display order of order.
func Template[T any](cols []column.Column[T], order []int, w Widths) string {
	parts := make([]string, len(order))
	for i, idx := range order {
		h := cols[idx].Head()
		if px, ok := w.Width(idx); ok && h.Resizable {
			parts[i] = strconv.Itoa(px) + "px"
			continue
		}
		if h.DefaultWidth != "" {
			parts[i] = h.DefaultWidth
			continue
		}
		parts[i] = FlexWidth
	}
	return strings.Join(parts, " ")
}

var pxWidth = regexp.MustCompile(`[0-9]+px`)

// PixelWidth parses a pixel width such as "120px".
func PixelWidth(s string) (int, error) {
	if !pxWidth.MatchString(s) {
		return 0, fmt.Errorf("width %q is not in pixels", s)
	}
	n, err := strconv.Atoi(strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "px")))
	if err != nil {
		return 0, fmt.Errorf("width %q is not in pixels: %w", s, err)
	}
	return n, nil
}

// ValidPinnedWidth reports whether s contains a pixel width.
func ValidPinnedWidth(s string) bool { return pxWidth.MatchString(s) }

// PinnedOffsets returns the left offset of each pinned column: the width of
// the pinned column before it, 0 for the first.
func PinnedOffsets(widths []int) []int {
	out := make([]int, len(widths))
	for i := 1; i < len(widths); i++ {
		out[i] = widths[i-1]
	}
	return out
}
