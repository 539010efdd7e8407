package edgar

// Record is one normalized entry from an EDGAR browse-edgar ATOM
// response. Scalar fields are copied verbatim from the entry. Fields
// holds values recovered from the HTML summary fragment and only
// contains keys the fragment actually reported. Links always carries
// the full derived URL matrix (see variants.go).
type Record struct {
	ID      string            `json:"id"`
	Title   string            `json:"title"`
	Summary string            `json:"summary"`
	Updated string            `json:"updated"`
	Href    string            `json:"href"`
	Type    string            `json:"type"`
	Fields  map[string]string `json:"fields,omitempty"`
	Links   map[string]string `json:"links"`
}

// Query parameter names used by the browse-edgar endpoint.
const (
	paramOutput     = "output"
	paramOwner      = "myowner"
	paramDateAfter  = "datea"
	paramDateBefore = "dateb"
)
