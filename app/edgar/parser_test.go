package edgar

import (
	"errors"
	"testing"
)

const companyFeed = `<?xml version="1.0" encoding="ISO-8859-1" ?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <title>Companies matching State=MN</title>
  <updated>2020-04-05T15:21:24-04:00</updated>
  <entry>
    <title>3M CO</title>
    <id>urn:tag:www.sec.gov:cik=0000066740</id>
    <updated>2020-04-05T15:21:24-04:00</updated>
    <summary type="html">&lt;b&gt;CIK:&lt;/b&gt; 0000066740, &lt;b&gt;State:&lt;/b&gt; MN</summary>
    <link rel="alternate" type="text/html" href="https://www.sec.gov/cgi-bin/browse-edgar?CIK=66740&amp;action=getcompany&amp;output=atom"/>
  </entry>
</feed>`

func TestParseCompanyFeed(t *testing.T) {
	parser := NewParser()
	records, err := parser.Run([]byte(companyFeed), 0)

	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("Expected 1 record, got: %d", len(records))
	}

	record := records[0]
	if record.ID != "urn:tag:www.sec.gov:cik=0000066740" {
		t.Errorf("Unexpected ID: %s", record.ID)
	}
	if record.Title != "3M CO" {
		t.Errorf("Expected title '3M CO', got: %s", record.Title)
	}
	if record.Updated != "2020-04-05T15:21:24-04:00" {
		t.Errorf("Unexpected updated timestamp: %s", record.Updated)
	}
	if record.Href != "https://www.sec.gov/cgi-bin/browse-edgar?CIK=66740&action=getcompany&output=atom" {
		t.Errorf("Unexpected href: %s", record.Href)
	}
	if record.Type != "text/html" {
		t.Errorf("Expected type 'text/html', got: %s", record.Type)
	}

	if record.Fields["cik"] != "0000066740" {
		t.Errorf("Expected cik '0000066740', got: %s", record.Fields["cik"])
	}
	if record.Fields["state"] != "MN" {
		t.Errorf("Expected state 'MN', got: %s", record.Fields["state"])
	}

	if len(record.Links) != 12 {
		t.Fatalf("Expected 12 derived links, got: %d", len(record.Links))
	}
	expected := "https://www.sec.gov/cgi-bin/browse-edgar?CIK=66740&action=getcompany&output=html&myowner=only"
	if record.Links["html_owner_only"] != expected {
		t.Errorf("Expected html_owner_only %q, got %q", expected, record.Links["html_owner_only"])
	}
}

func multiEntryFeed() []byte {
	return []byte(`<?xml version="1.0" encoding="utf-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <title>Companies</title>
  <entry>
    <title>FIRST CO</title>
    <id>urn:tag:www.sec.gov:cik=0000000001</id>
    <link href="https://www.sec.gov/cgi-bin/browse-edgar?CIK=1&amp;action=getcompany"/>
  </entry>
  <entry>
    <title>SECOND CO</title>
    <id>urn:tag:www.sec.gov:cik=0000000002</id>
    <link href="https://www.sec.gov/cgi-bin/browse-edgar?CIK=2&amp;action=getcompany"/>
  </entry>
  <entry>
    <title>THIRD CO</title>
    <id>urn:tag:www.sec.gov:cik=0000000003</id>
    <link href="https://www.sec.gov/cgi-bin/browse-edgar?CIK=3&amp;action=getcompany"/>
  </entry>
</feed>`)
}

func TestParseOrderPreserved(t *testing.T) {
	parser := NewParser()
	records, err := parser.Run(multiEntryFeed(), 0)

	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("Expected 3 records, got: %d", len(records))
	}

	wantTitles := []string{"FIRST CO", "SECOND CO", "THIRD CO"}
	for i, want := range wantTitles {
		if records[i].Title != want {
			t.Errorf("Record %d: expected title %q, got %q", i, want, records[i].Title)
		}
	}
}

func TestParseLimit(t *testing.T) {
	parser := NewParser()

	all, err := parser.Run(multiEntryFeed(), 0)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	tests := []struct {
		name  string
		limit int
		want  int
	}{
		{"limit below entry count", 2, 2},
		{"limit equals entry count", 3, 3},
		{"limit above entry count", 10, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := parser.Run(multiEntryFeed(), tt.limit)
			if err != nil {
				t.Fatalf("Expected no error, got: %v", err)
			}
			if len(records) != tt.want {
				t.Fatalf("Expected %d records, got: %d", tt.want, len(records))
			}
			for i, record := range records {
				if record.ID != all[i].ID {
					t.Errorf("Record %d: expected ID %q, got %q", i, all[i].ID, record.ID)
				}
			}
		})
	}
}

func TestParseMissingSummary(t *testing.T) {
	feedData := `<?xml version="1.0" encoding="utf-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <title>Companies</title>
  <entry>
    <title>NO SUMMARY CO</title>
    <id>urn:tag:www.sec.gov:cik=0000000009</id>
    <link href="https://www.sec.gov/cgi-bin/browse-edgar?CIK=9&amp;action=getcompany"/>
  </entry>
</feed>`

	parser := NewParser()
	records, err := parser.Run([]byte(feedData), 0)

	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("Expected 1 record, got: %d", len(records))
	}

	record := records[0]
	if record.Summary != "" {
		t.Errorf("Expected empty summary, got: %s", record.Summary)
	}
	if len(record.Fields) != 0 {
		t.Errorf("Expected no summary fields, got: %v", record.Fields)
	}
	if len(record.Links) != 12 {
		t.Errorf("Expected 12 derived links, got: %d", len(record.Links))
	}
}

func TestParseMalformedFeed(t *testing.T) {
	parser := NewParser()
	records, err := parser.Run([]byte("this is not markup"), 0)

	if err == nil {
		t.Fatal("Expected error for malformed document")
	}
	if !errors.Is(err, ErrMalformedFeed) {
		t.Errorf("Expected ErrMalformedFeed, got: %v", err)
	}
	if records != nil {
		t.Errorf("Expected no partial result, got %d records", len(records))
	}
}

func TestParseVariantSynthesisFailure(t *testing.T) {
	feedData := `<?xml version="1.0" encoding="utf-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <title>Companies</title>
  <entry>
    <title>BROKEN LINK CO</title>
    <id>urn:tag:www.sec.gov:cik=0000000008</id>
    <link href="https://www.sec.gov/cgi-bin/browse-edgar?CIK=%zz"/>
  </entry>
</feed>`

	parser := NewParser()
	records, err := parser.Run([]byte(feedData), 0)

	if err == nil {
		t.Fatal("Expected error for unparseable base link")
	}
	if !errors.Is(err, ErrURLSynthesis) {
		t.Errorf("Expected ErrURLSynthesis, got: %v", err)
	}
	if records != nil {
		t.Errorf("Expected no partial result, got %d records", len(records))
	}
}

func TestParsePrimaryLinkFallback(t *testing.T) {
	feedData := `<?xml version="1.0" encoding="utf-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <title>Companies</title>
  <entry>
    <title>SELF LINK CO</title>
    <id>urn:tag:www.sec.gov:cik=0000000007</id>
    <link rel="self" type="application/atom+xml" href="https://www.sec.gov/self"/>
    <link rel="enclosure" href="https://www.sec.gov/enclosure"/>
  </entry>
</feed>`

	parser := NewParser()
	records, err := parser.Run([]byte(feedData), 0)

	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("Expected 1 record, got: %d", len(records))
	}

	record := records[0]
	if record.Href != "https://www.sec.gov/self" {
		t.Errorf("Expected fallback to first link, got: %s", record.Href)
	}
	if record.Type != "application/atom+xml" {
		t.Errorf("Expected type 'application/atom+xml', got: %s", record.Type)
	}
}
