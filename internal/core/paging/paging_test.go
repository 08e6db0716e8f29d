package paging

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestWindow(t *testing.T) {
	rows := []int{0, 1, 2, 3, 4, 5, 6}
	if diff := cmp.Diff([]int{3, 4, 5}, Window(rows, 1, 3)); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{6}, Window(rows, 2, 3)); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
	if got := Window(rows, 3, 3); len(got) != 0 {
		t.Fatalf("past the end want empty got %v", got)
	}
	w := Window(rows, 0, 2)
	w = append(w, 99)
	if rows[2] != 2 {
		t.Fatal("appending to a window must not clobber rows")
	}
}

func TestPageCount(t *testing.T) {
	cases := []struct{ total, size, want int }{{0, 10, 0}, {1, 10, 1}, {10, 10, 1}, {11, 10, 2}, {5, 0, 0}}
	for _, c := range cases {
		if got := PageCount(c.total, c.size); got != c.want {
			t.Fatalf("PageCount(%d,%d) want %d got %d", c.total, c.size, c.want, got)
		}
	}
}

func TestPagerSizeResetsIndex(t *testing.T) {
	p := NewPager(0)
	if p.Size() != DefaultPageSize {
		t.Fatalf("want default size got %d", p.Size())
	}
	p.SetPage(3)
	if !p.SetPageSize(25) || p.Index() != 0 {
		t.Fatalf("size change should reset index, got %d", p.Index())
	}
	if p.SetPageSize(25) {
		t.Fatal("same size is not a change")
	}
	if p.SetPage(-1) || p.Index() != 0 {
		t.Fatal("negative page is ignored")
	}
}

func labels(bs []Button) string {
	var s []string
	for _, b := range bs {
		l := b.Label()
		if b.Active {
			l = "[" + l + "]"
		}
		s = append(s, l)
	}
	return strings.Join(s, " ")
}

func TestButtonsLayout(t *testing.T) {
	cases := []struct {
		current, total int
		want           string
	}{
		{0, 1, "❮ [1] ❯"},
		{1, 3, "❮ 1 [2] 3 ❯"},
		{0, 10, "❮ [1] 2 ... 9 10 ❯"},
		{9, 10, "❮ 1 2 ... 9 [10] ❯"},
		{2, 10, "❮ 1 ... [3] 4 ... 10 ❯"},
		{5, 10, "❮ 1 ... 5 [6] 7 ... 10 ❯"},
	}
	for _, c := range cases {
		if got := labels(Buttons(c.current, c.total)); got != c.want {
			t.Fatalf("Buttons(%d,%d) want %q got %q", c.current, c.total, c.want, got)
		}
	}
}

func TestButtonsDisableEnds(t *testing.T) {
	bs := Buttons(0, 2)
	if !bs[0].Disabled || bs[len(bs)-1].Disabled {
		t.Fatalf("prev should be disabled and next enabled: %+v", bs)
	}
	bs = Buttons(1, 2)
	if bs[0].Disabled || !bs[len(bs)-1].Disabled {
		t.Fatalf("prev should be enabled and next disabled: %+v", bs)
	}
}
