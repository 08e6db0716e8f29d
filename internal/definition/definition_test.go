package definition

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"datatable/internal/core/column"
	"datatable/internal/core/debounce"
	"datatable/internal/core/table"
)

func load(t *testing.T) *table.Table[Row] {
	t.Helper()
	d, err := Load("testdata/orders.yaml")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	o := d.Options()
	o.Scheduler = debounce.ImmediateScheduler{}
	tb, err := table.New(o)
	if err != nil {
		t.Fatalf("table.New: %v", err)
	}
	return tb
}

func customers(rows []Row) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r["customer"].(map[string]any)["name"].(string)
	}
	return out
}

func TestLoadBuildsColumns(t *testing.T) {
	d, err := Load("testdata/orders.yaml")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	var kinds []column.Kind
	for _, c := range d.TableColumns() {
		kinds = append(kinds, c.Kind())
	}
	want := []column.Kind{column.PlainText, column.Date, column.Money, column.Relation, column.RichText}
	if diff := cmp.Diff(want, kinds); diff != "" {
		t.Fatalf("kinds (-want +got):\n%s", diff)
	}
	if d.Name != "orders" || d.PageSize != 3 || len(d.Rows) != 4 {
		t.Fatalf("unexpected definition %+v", d)
	}
	placed := d.TableColumns()[1].(*column.DateColumn[Row])
	if placed.Filter != column.Minimum || placed.DefaultSort != column.Descending {
		t.Fatalf("unexpected date column %+v", placed)
	}
}

func TestTableFromDefinition(t *testing.T) {
	tb := load(t)
	defer tb.Close()

	v := tb.View()
	if diff := cmp.Diff([]string{"Edsger Dijkstra", "Grace Hopper", "Ada Lovelace"}, customers(v.Rows)); diff != "" {
		t.Fatalf("first page (-want +got):\n%s", diff)
	}
	if v.PageCount != 2 || v.ResultText != "4 orders" {
		t.Fatalf("unexpected paging %d %q", v.PageCount, v.ResultText)
	}
	want := []string{"Ada Lovelace", "05/27/2021", "$120.50", "Open", "first & only"}
	if diff := cmp.Diff(want, v.Cells[2]); diff != "" {
		t.Fatalf("cells (-want +got):\n%s", diff)
	}
}

func TestDefinitionSearchAndFilters(t *testing.T) {
	tb := load(t)
	defer tb.Close()

	tb.SetSearchTerm("grhop")
	if diff := cmp.Diff([]string{"Grace Hopper"}, customers(tb.View().Rows)); diff != "" {
		t.Fatalf("fuzzy search (-want +got):\n%s", diff)
	}
	tb.SetSearchTerm("cancel")
	if diff := cmp.Diff([]string{"Alan Turing"}, customers(tb.View().Rows)); diff != "" {
		t.Fatalf("related label search (-want +got):\n%s", diff)
	}
	tb.SetSearchTerm("")

	if err := tb.SetFilter(3, []any{2}); err != nil {
		t.Fatalf("SetFilter: %v", err)
	}
	if diff := cmp.Diff([]string{"Edsger Dijkstra", "Grace Hopper"}, customers(tb.View().Rows)); diff != "" {
		t.Fatalf("status filter (-want +got):\n%s", diff)
	}
	_ = tb.ClearFilters()

	if err := tb.SetFilterBound(2, "min", 100); err != nil {
		t.Fatalf("SetFilterBound: %v", err)
	}
	if diff := cmp.Diff([]string{"Ada Lovelace", "Alan Turing"}, customers(tb.View().Rows)); diff != "" {
		t.Fatalf("money range (-want +got):\n%s", diff)
	}
}

func TestParseJSON(t *testing.T) {
	d, err := Parse([]byte(`{"name": "tiny", "columns": [{"header": "A", "path": "a", "filter": "exact"}], "rows": [{"a": "x"}]}`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	c := d.TableColumns()[0].(*column.TextColumn[Row])
	if c.Filter != column.Exact || d.Rows[0]["a"] != "x" {
		t.Fatalf("unexpected definition %+v", d)
	}
}

func TestParseErrors(t *testing.T) {
	cases := map[string]error{
		`columns: [{header: A, kind: sparkline}]`:             ErrUnknownKind,
		`columns: [{header: A, kind: number, filter: near}]`:  ErrUnknownFilter,
		`columns: [{header: A, kind: relation, filter: big}]`: ErrUnknownFilter,
		`rows: []`: ErrNoColumns,
	}
	for doc, want := range cases {
		if _, err := Parse([]byte(doc)); !errors.Is(err, want) {
			t.Fatalf("%s: want %v got %v", doc, want, err)
		}
	}
	if _, err := Load("testdata/missing.yaml"); err == nil {
		t.Fatal("expected error for missing file")
	}
}
