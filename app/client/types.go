package client

// Ownership selects the insider-ownership inclusion axis of a filing
// query, mirroring the myowner parameter of the browse-edgar endpoint.
type Ownership string

const (
	OwnershipOnly    Ownership = "only"
	OwnershipExclude Ownership = "exclude"
	OwnershipInclude Ownership = "include"
)

// FilingQuery describes one browse-edgar company query. Zero-value
// fields are omitted from the request.
type FilingQuery struct {
	CIK        string
	Company    string
	State      string
	Country    string
	SIC        string
	FormType   string
	Ownership  Ownership
	DateAfter  string // datea, YYYY-MM-DD
	DateBefore string // dateb, YYYY-MM-DD
}

// Directory is one filing directory of a company, from the archive
// index.json listing.
type Directory struct {
	FilingID     string `json:"filing_id"`
	LastModified string `json:"last_modified"`
	Size         string `json:"size"`
	Type         string `json:"type"`
	URL          string `json:"url"`
}

// DirectoryItem is one document inside a filing directory.
type DirectoryItem struct {
	ItemID       string `json:"item_id"`
	LastModified string `json:"last_modified"`
	Size         string `json:"size"`
	Type         string `json:"type"`
	URL          string `json:"url"`
}

// directoryIndex matches the shape of the archive index.json documents.
type directoryIndex struct {
	Directory struct {
		Item []directoryEntry `json:"item"`
	} `json:"directory"`
}

type directoryEntry struct {
	Name         string `json:"name"`
	LastModified string `json:"last-modified"`
	Size         string `json:"size"`
	Type         string `json:"type"`
}
