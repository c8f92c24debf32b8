package extract

import (
	"log/slog"
	"strings"

	"golang.org/x/net/html"
)

// Table renders a <table> subtree as a Markdown table.
//
// Header discovery prefers the first <thead> row (accepting <td> cells used
// as headers, which at least one platform emits); without a <thead> the
// first body row serves as the header and is excluded from the data pass.
// The header fixes the column count; body rows with a different direct cell
// count are skipped with a diagnostic. Embedded newlines inside cells
// become <br> so each row stays on one Markdown line.
//
// A header-only table (header plus separator, zero data rows) is valid
// output. Returns ok=false when no header row is discoverable; the caller
// decides the fallback (a plain-text dump, never a silent drop).
func (e *Extractor) Table(el *html.Node) (string, bool) {
	headerRow, headerFromBody := tableHeaderRow(el)
	if headerRow == nil {
		return "", false
	}

	header := e.tableCells(headerRow)
	if len(header) == 0 {
		return "", false
	}
	cols := len(header)

	rows := [][]string{}
	for _, tr := range tableBodyRows(el) {
		if tr == headerRow && headerFromBody {
			continue
		}
		cells := e.tableCells(tr)
		if len(cells) == 0 {
			continue
		}
		if len(cells) != cols {
			slog.Warn("table: skipping row with mismatched column count",
				"expected", cols, "got", len(cells),
			)
			continue
		}
		rows = append(rows, cells)
	}

	var b strings.Builder
	writeRow := func(cells []string) {
		b.WriteString("| " + strings.Join(cells, " | ") + " |\n")
	}
	writeRow(header)
	b.WriteString("|" + strings.Repeat(" --- |", cols) + "\n")
	for _, r := range rows {
		writeRow(r)
	}
	return strings.TrimRight(b.String(), "\n"), true
}

// tableHeaderRow locates the header row. The bool result reports whether
// the row was borrowed from the body (and must be excluded from data rows).
func tableHeaderRow(table *html.Node) (*html.Node, bool) {
	var thead, firstBodyRow *html.Node
	Walk(table, func(n *html.Node) bool {
		switch TagName(n) {
		case "thead":
			if thead == nil {
				thead = n
			}
			return false
		case "table":
			return n == table // never descend into nested tables
		case "tr":
			if firstBodyRow == nil {
				firstBodyRow = n
			}
			return false
		}
		return true
	})

	if thead != nil {
		for c := thead.FirstChild; c != nil; c = c.NextSibling {
			if IsElement(c, "tr") {
				return c, false
			}
		}
	}
	return firstBodyRow, firstBodyRow != nil
}

// tableBodyRows returns the table's rows outside <thead>, in document order.
func tableBodyRows(table *html.Node) []*html.Node {
	var rows []*html.Node
	Walk(table, func(n *html.Node) bool {
		switch TagName(n) {
		case "thead":
			return false
		case "table":
			return n == table
		case "tr":
			rows = append(rows, n)
			return false
		}
		return true
	})
	return rows
}

// tableCells converts a row's direct th/td cells in document order. Plain
// td cells count as header cells too, because at least one platform styles
// its header row without th.
func (e *Extractor) tableCells(tr *html.Node) []string {
	var cells []string
	for c := tr.FirstChild; c != nil; c = c.NextSibling {
		switch TagName(c) {
		case "th", "td":
			cells = append(cells, e.tableCellText(c))
		}
	}
	return cells
}

func (e *Extractor) tableCellText(cell *html.Node) string {
	md := strings.TrimSpace(HTMLToMarkdown(cell, e.inlineOptions()))
	md = strings.ReplaceAll(md, "|", `\|`)
	// Keep the row on a single Markdown line.
	parts := strings.Split(md, "\n")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return strings.Join(parts, "<br>")
}
