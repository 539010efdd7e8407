package edgar

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/mmcdole/gofeed/atom"
)

// ErrMalformedFeed is returned when the response body cannot be parsed
// as an ATOM document. No partial result is returned alongside it.
var ErrMalformedFeed = errors.New("malformed feed document")

// Parser normalizes EDGAR browse-edgar ATOM responses into Records.
// It holds no state between calls and is safe for concurrent use.
type Parser struct {
	atomParser *atom.Parser
}

func NewParser() *Parser {
	return &Parser{
		atomParser: &atom.Parser{},
	}
}

// Run parses data and returns one Record per entry, in document order.
// A limit > 0 truncates the result to the first limit records after the
// whole document has been parsed; parsing is never short-circuited.
func (p *Parser) Run(data []byte, limit int) ([]Record, error) {
	feed, err := p.atomParser.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedFeed, err)
	}

	records := make([]Record, 0, len(feed.Entries))
	for _, entry := range feed.Entries {
		if entry == nil {
			continue
		}

		record := p.extractEntry(entry)
		record.Fields = p.parseSummary(record.Summary)

		// A variant synthesis failure is fatal for the whole call so
		// every returned Record carries a complete link set.
		links, err := DeriveVariants(record.Href)
		if err != nil {
			return nil, err
		}
		record.Links = links

		records = append(records, record)
	}

	if limit > 0 && limit < len(records) {
		records = records[:limit]
	}

	return records, nil
}

// extractEntry reads the fixed scalar fields of one entry. Upstream
// data is inconsistently populated across filing types and eras, so a
// missing field resolves to an empty string rather than an error.
func (p *Parser) extractEntry(entry *atom.Entry) Record {
	record := Record{
		ID:      entry.ID,
		Title:   entry.Title,
		Summary: entry.Summary,
		Updated: entry.Updated,
	}

	if link := primaryLink(entry.Links); link != nil {
		record.Href = link.Href
		record.Type = link.Type
	}

	return record
}

// primaryLink selects the canonical browsing link: the one whose rel is
// absent or "alternate", falling back to the first link present.
func primaryLink(links []*atom.Link) *atom.Link {
	var first *atom.Link
	for _, link := range links {
		if link == nil {
			continue
		}
		if link.Rel == "" || link.Rel == "alternate" {
			return link
		}
		if first == nil {
			first = link
		}
	}
	return first
}
