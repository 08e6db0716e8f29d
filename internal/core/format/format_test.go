package format

import (
	"testing"
	"time"

	"golang.org/x/text/language"

	"datatable/internal/core/column"
	"datatable/internal/core/related"
)

const may27 = int64(1622073600000) // 2021-05-27T00:00:00Z

func utc() Options {
	o := DefaultOptions()
	o.Location = time.UTC
	return o
}

func TestDateLayouts(t *testing.T) {
	f := utc().DateFormatter()
	if got := f(may27, false, false); got != "05/27/2021" {
		t.Fatalf("want 05/27/2021 got %q", got)
	}
	if got := f(may27+(13*3600+4*60+5)*1000, true, false); got != "05/27/2021 01:04 PM" {
		t.Fatalf("unexpected time format %q", got)
	}
	if got := f(may27+(13*3600+4*60+5)*1000, true, true); got != "05/27/2021 01:04:05 PM" {
		t.Fatalf("unexpected seconds format %q", got)
	}
}

func TestTimeOfAcceptsSeveralShapes(t *testing.T) {
	want := time.UnixMilli(may27)
	for _, v := range []any{may27, float64(may27), "2021-05-27T00:00:00Z", want, &want} {
		got, ok := TimeOf(v)
		if !ok || !got.Equal(want) {
			t.Fatalf("%T: want %v got %v (%v)", v, want, got, ok)
		}
	}
	if _, ok := TimeOf(nil); ok {
		t.Fatal("nil is not a time")
	}
	if _, ok := TimeOf("soon"); ok {
		t.Fatal("garbage is not a time")
	}
}

func TestMoneyGroupsDigits(t *testing.T) {
	if got := Money(12345.5, language.AmericanEnglish); got != "12,345.50" {
		t.Fatalf("want 12,345.50 got %q", got)
	}
	if got := utc().MoneyFormatter()(3); got != "$3.00" {
		t.Fatalf("want $3.00 got %q", got)
	}
}

func TestMoneyOverride(t *testing.T) {
	o := utc()
	o.Money = func(v float64) string { return "EUR" }
	if o.MoneyFormatter()(1) != "EUR" {
		t.Fatal("override not used")
	}
}

type rec map[string]any

func TestCellPlaceholders(t *testing.T) {
	o := utc()
	r := rec{"n": nil}
	if got := Cell[rec](&column.TextColumn[rec]{Path: "missing"}, r, nil, o); got != "-" {
		t.Fatalf("text: want - got %q", got)
	}
	if got := Cell[rec](&column.NumericColumn[rec]{Path: "n"}, r, nil, o); got != "0" {
		t.Fatalf("number: want 0 got %q", got)
	}
	if got := Cell[rec](&column.DateColumn[rec]{Path: "d"}, r, nil, o); got != "-" {
		t.Fatalf("date: want - got %q", got)
	}
	o.EmptyCell = "n/a"
	if got := Cell[rec](&column.ColorColumn[rec]{Path: "c"}, r, nil, o); got != "n/a" {
		t.Fatalf("color: want n/a got %q", got)
	}
}

func TestCellKinds(t *testing.T) {
	o := utc()
	r := rec{"name": "Ann", "html": "<p>hi <b>there</b></p><script>x</script>", "price": 1999.5, "owner": 2, "when": may27, "qty": 3}
	src := related.Source{List: []any{map[string]any{"id": 2, "name": "Bob"}}}
	cases := []struct {
		col  column.Column[rec]
		want string
	}{
		{&column.TextColumn[rec]{Path: "name"}, "Ann"},
		{&column.RichTextColumn[rec]{Path: "html"}, "<p>hi <b>there</b></p>"},
		{&column.NumericColumn[rec]{Path: "price", Money: true}, "$1,999.50"},
		{&column.NumericColumn[rec]{Path: "qty"}, "3"},
		{&column.DateColumn[rec]{Path: "when"}, "05/27/2021"},
		{&column.RelationalColumn[rec]{Path: "owner", Related: src, Render: func(e any) string {
			return e.(map[string]any)["name"].(string)
		}}, "Bob"},
		{&column.CustomColumn[rec]{Render: func(r rec) string { return "custom" }}, "custom"},
	}
	cache := related.NewCache()
	for _, c := range cases {
		if got := Cell(c.col, r, cache, o); got != c.want {
			t.Fatalf("%v: want %q got %q", c.col.Kind(), c.want, got)
		}
	}
}

func TestPlainCellStripsMarkup(t *testing.T) {
	r := rec{"html": "<p>a &amp; b</p><p>c</p>"}
	got := PlainCell[rec](&column.RichTextColumn[rec]{Path: "html"}, r, nil, utc())
	if got != "a & b c" {
		t.Fatalf("want %q got %q", "a & b c", got)
	}
}

func TestMoneyCellWithoutValue(t *testing.T) {
	got := Cell[rec](&column.NumericColumn[rec]{Path: "p", Money: true}, rec{}, nil, utc())
	if got != "-" {
		t.Fatalf("want - got %q", got)
	}
}
