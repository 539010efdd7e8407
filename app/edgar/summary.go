package edgar

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// parseSummary recovers the ad hoc "<b>Label:</b> value, ..." pairs
// EDGAR embeds in entry summaries. Labels are normalized to lower
// kebab-case ("SIC Code" -> "sic-code"); when a label repeats, the last
// occurrence wins. Anything that does not look like a label:value pair
// simply produces no fields.
func (p *Parser) parseSummary(fragment string) map[string]string {
	if strings.TrimSpace(fragment) == "" {
		return nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return nil
	}

	fields := make(map[string]string)
	doc.Find("b, strong").Each(func(_ int, sel *goquery.Selection) {
		label := normalizeLabel(sel.Text())
		if label == "" || len(sel.Nodes) == 0 {
			return
		}
		fields[label] = valueAfter(sel.Nodes[0])
	})

	if len(fields) == 0 {
		return nil
	}
	return fields
}

// valueAfter collects the text following a label node, up to the next
// label or the end of the fragment.
func valueAfter(label *html.Node) string {
	var b strings.Builder
	for node := label.NextSibling; node != nil; node = node.NextSibling {
		if node.Type == html.ElementNode && (node.Data == "b" || node.Data == "strong") {
			break
		}
		writeText(&b, node)
	}

	value := strings.TrimSpace(b.String())
	value = strings.TrimPrefix(value, ":")
	value = strings.TrimSpace(value)
	value = strings.TrimSuffix(value, ",")
	return strings.TrimSpace(value)
}

func writeText(b *strings.Builder, node *html.Node) {
	if node.Type == html.TextNode {
		b.WriteString(node.Data)
		return
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		writeText(b, child)
	}
}

func normalizeLabel(raw string) string {
	label := strings.TrimSpace(raw)
	label = strings.TrimSuffix(label, ":")
	label = cases.Lower(language.English).String(label)
	return strings.Join(strings.Fields(label), "-")
}
