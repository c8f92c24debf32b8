package extract

import (
	"strings"
	"testing"
)

func TestTable_WithThead(t *testing.T) {
	e := testExtractor(t)
	body := parseBody(t, `<table><thead><tr><th>Name</th><th>Age</th></tr></thead><tbody><tr><td>Ann</td><td>30</td></tr><tr><td>Bob</td><td>41</td></tr></tbody></table>`)
	tbl := firstTag(t, body, "table")

	got, ok := e.Table(tbl)
	if !ok {
		t.Fatal("expected table output")
	}
	want := "| Name | Age |\n| --- | --- |\n| Ann | 30 |\n| Bob | 41 |"
	if got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestTable_HeaderBorrowedFromFirstBodyRow(t *testing.T) {
	e := testExtractor(t)
	body := parseBody(t, `<table><tbody><tr><td>H1</td><td>H2</td></tr><tr><td>a</td><td>b</td></tr></tbody></table>`)
	tbl := firstTag(t, body, "table")

	got, ok := e.Table(tbl)
	if !ok {
		t.Fatal("expected table output")
	}
	want := "| H1 | H2 |\n| --- | --- |\n| a | b |"
	if got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
	// The borrowed row must not reappear as data.
	if strings.Count(got, "H1") != 1 {
		t.Errorf("borrowed header row duplicated:\n%s", got)
	}
}

func TestTable_MismatchedRowSkipped(t *testing.T) {
	e := testExtractor(t)
	body := parseBody(t, `<table><thead><tr><th>A</th><th>B</th></tr></thead><tbody><tr><td>1</td></tr><tr><td>2</td><td>3</td></tr></tbody></table>`)
	tbl := firstTag(t, body, "table")

	got, ok := e.Table(tbl)
	if !ok {
		t.Fatal("expected table output")
	}
	want := "| A | B |\n| --- | --- |\n| 2 | 3 |"
	if got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestTable_HeaderOnly(t *testing.T) {
	e := testExtractor(t)
	body := parseBody(t, `<table><thead><tr><th>Only</th></tr></thead></table>`)
	tbl := firstTag(t, body, "table")

	got, ok := e.Table(tbl)
	if !ok {
		t.Fatal("header-only table should still produce output")
	}
	want := "| Only |\n| --- |"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestTable_CellNewlinesBecomeBr(t *testing.T) {
	e := testExtractor(t)
	body := parseBody(t, `<table><thead><tr><th>K</th></tr></thead><tbody><tr><td>first<br>second</td></tr></tbody></table>`)
	tbl := firstTag(t, body, "table")

	got, ok := e.Table(tbl)
	if !ok {
		t.Fatal("expected table output")
	}
	if !strings.Contains(got, "first<br>second") {
		t.Errorf("cell newline not converted to <br>:\n%s", got)
	}
	if strings.Count(got, "\n") != 2 {
		t.Errorf("each row must stay on one line:\n%s", got)
	}
}

func TestTable_PipeEscapedInCells(t *testing.T) {
	e := testExtractor(t)
	body := parseBody(t, `<table><thead><tr><th>Expr</th></tr></thead><tbody><tr><td>a|b</td></tr></tbody></table>`)
	tbl := firstTag(t, body, "table")

	got, ok := e.Table(tbl)
	if !ok {
		t.Fatal("expected table output")
	}
	if !strings.Contains(got, `a\|b`) {
		t.Errorf("pipe not escaped:\n%s", got)
	}
}

func TestTable_NoRows(t *testing.T) {
	e := testExtractor(t)
	body := parseBody(t, `<table></table>`)
	tbl := firstTag(t, body, "table")

	if _, ok := e.Table(tbl); ok {
		t.Error("rowless table should report ok=false")
	}
}
