package column

import "testing"

type row struct{ A string }

func TestKindDispatch(t *testing.T) {
	cols := []Column[row]{
		&TextColumn[row]{Path: "a"},
		&RichTextColumn[row]{Path: "a"},
		&ColorColumn[row]{Path: "a"},
		&DateColumn[row]{Path: "a"},
		&NumericColumn[row]{Path: "a"},
		&NumericColumn[row]{Path: "a", Money: true},
		&RelationalColumn[row]{Path: "a"},
		&CustomColumn[row]{},
	}
	want := []Kind{PlainText, RichText, Color, Date, Number, Money, Relation, Custom}
	for i, c := range cols {
		if c.Kind() != want[i] {
			t.Fatalf("at %d want %v got %v", i, want[i], c.Kind())
		}
	}
}

func TestPathOf(t *testing.T) {
	if p, ok := PathOf[row](&NumericColumn[row]{Path: "x.y"}); !ok || p != "x.y" {
		t.Fatalf("want x.y got %q %v", p, ok)
	}
	if _, ok := PathOf[row](&CustomColumn[row]{}); ok {
		t.Fatal("custom columns have no path")
	}
}

func TestHeaderSharedAcrossKinds(t *testing.T) {
	c := &DateColumn[row]{Header: Header[row]{Text: "Created", Sortable: true}}
	var col Column[row] = c
	if col.Head().Text != "Created" || !col.Head().Sortable {
		t.Fatalf("unexpected header %+v", col.Head())
	}
	if !SameColumn[row](col, &TextColumn[row]{Header: Header[row]{Text: "Created"}}) {
		t.Fatal("columns with the same header text should be the same rule target")
	}
}

func TestIsNumeric(t *testing.T) {
	if !IsNumeric[row](&NumericColumn[row]{Money: true}) {
		t.Fatal("money is numeric")
	}
	if IsNumeric[row](&TextColumn[row]{}) {
		t.Fatal("text is not numeric")
	}
}
