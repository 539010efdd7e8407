package watch

import "edgarcomb/app/client"

// Config describes one watched EDGAR query, loaded from a YAML file in
// the watches directory. The file name (without .yml) is the watch name.
type Config struct {
	Name     string         // Derived from filename (without .yml extension)
	Query    ConfigQuery    `yaml:"query"`
	Settings ConfigSettings `yaml:"settings"`
	Filters  []ConfigFilter `yaml:"filters"`
}

type ConfigQuery struct {
	CIK        string `yaml:"cik"`
	Company    string `yaml:"company"`
	State      string `yaml:"state"`
	Country    string `yaml:"country"`
	SIC        string `yaml:"sic"`
	FormType   string `yaml:"form_type"`
	Ownership  string `yaml:"ownership"` // only, exclude or include
	DateAfter  string `yaml:"date_after"`
	DateBefore string `yaml:"date_before"`
}

type ConfigSettings struct {
	Enabled          bool `yaml:"enabled"`
	RefreshInterval  int  `yaml:"refresh_interval"` // seconds
	MaxRecords       int  `yaml:"max_records"`
	Timeout          int  `yaml:"timeout"`           // seconds
	ExtractDocuments bool `yaml:"extract_documents"` // enable filing document text extraction
}

type ConfigFilter struct {
	Field    string   `yaml:"field"`
	Includes []string `yaml:"includes"`
	Excludes []string `yaml:"excludes"`
}

// FilingQuery converts the watch query into a client query.
func (c *Config) FilingQuery() client.FilingQuery {
	return client.FilingQuery{
		CIK:        c.Query.CIK,
		Company:    c.Query.Company,
		State:      c.Query.State,
		Country:    c.Query.Country,
		SIC:        c.Query.SIC,
		FormType:   c.Query.FormType,
		Ownership:  client.Ownership(c.Query.Ownership),
		DateAfter:  c.Query.DateAfter,
		DateBefore: c.Query.DateBefore,
	}
}
