package extract

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"golang.org/x/net/html"
)

// fallbackConverter is the general-purpose HTML→Markdown converter used for
// content outside the structured assistant pipeline: user-turn text and
// raw-dump degradation of blocks the structured processors could not parse.
// The converter is goroutine-safe and reused across all calls.
var fallbackConverter = newFallbackConverter()

func newFallbackConverter() *converter.Converter {
	return converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(
				table.WithCellPaddingBehavior(table.CellPaddingBehaviorMinimal),
			),
		),
	)
}

// ConvertHTML converts an HTML fragment to Markdown with the fallback
// converter. domain resolves relative link/image URLs; empty leaves them
// untouched.
func ConvertHTML(fragment, domain string) (string, error) {
	if domain == "" {
		return fallbackConverter.ConvertString(fragment)
	}
	return fallbackConverter.ConvertString(fragment, converter.WithDomain(domain))
}

// RawDump renders a node's subtree and converts it to best-effort Markdown.
// When even that fails, the plain text content is returned, so degraded
// blocks are preserved rather than dropped.
func RawDump(n *html.Node) string {
	var b strings.Builder
	if err := html.Render(&b, n); err != nil {
		return Text(n)
	}
	md, err := ConvertHTML(b.String(), "")
	if err != nil {
		return Text(n)
	}
	return strings.TrimSpace(md)
}
