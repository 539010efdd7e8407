package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"edgarcomb/app/cfg"
	"edgarcomb/app/edgar"
)

// Client is the request-building layer in front of the EDGAR browse and
// archive endpoints. It owns transport concerns (user agent, status
// handling) and hands feed responses to the parser for normalization.
type Client struct {
	httpClient *http.Client
	parser     *edgar.Parser
	browseUrl  string
	archiveUrl string
	userAgent  string
}

func NewClient(httpClient *http.Client) *Client {
	cfg := cfg.Get()

	return &Client{
		httpClient: httpClient,
		parser:     edgar.NewParser(),
		browseUrl:  cfg.EdgarBaseUrl,
		archiveUrl: cfg.EdgarArchiveUrl,
		userAgent:  cfg.UserAgent,
	}
}

// Filings runs a browse-edgar company query and returns the normalized
// records. A limit > 0 caps the number of records returned.
func (c *Client) Filings(ctx context.Context, query FilingQuery, limit int) ([]edgar.Record, error) {
	params := url.Values{
		"action": {"getcompany"},
		"output": {"atom"},
		"Count":  {"100"},
	}

	setIfPresent(params, "CIK", query.CIK)
	setIfPresent(params, "company", query.Company)
	setIfPresent(params, "State", query.State)
	setIfPresent(params, "Country", query.Country)
	setIfPresent(params, "SIC", query.SIC)
	setIfPresent(params, "type", query.FormType)
	setIfPresent(params, "myowner", string(query.Ownership))
	setIfPresent(params, "datea", query.DateAfter)
	setIfPresent(params, "dateb", query.DateBefore)

	data, err := c.fetch(ctx, c.browseUrl+"?"+params.Encode())
	if err != nil {
		return nil, fmt.Errorf("failed to fetch filings feed: %w", err)
	}

	records, err := c.parser.Run(data, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to normalize filings feed: %w", err)
	}

	return records, nil
}

// FilingsByType returns all filings of one form type for a company.
func (c *Client) FilingsByType(ctx context.Context, cik, formType string) ([]edgar.Record, error) {
	return c.Filings(ctx, FilingQuery{CIK: cik, FormType: formType}, 0)
}

// FilingsByCIK returns a company's filings on the requested ownership
// axis, optionally bounded by datea/dateb.
func (c *Client) FilingsByCIK(ctx context.Context, cik string, ownership Ownership, after, before string) ([]edgar.Record, error) {
	return c.Filings(ctx, FilingQuery{
		CIK:        cik,
		Ownership:  ownership,
		DateAfter:  after,
		DateBefore: before,
	}, 0)
}

// FilingsByCompanyName is FilingsByCIK keyed by company name instead.
func (c *Client) FilingsByCompanyName(ctx context.Context, company string, ownership Ownership, after, before string) ([]edgar.Record, error) {
	return c.Filings(ctx, FilingQuery{
		Company:    company,
		Ownership:  ownership,
		DateAfter:  after,
		DateBefore: before,
	}, 0)
}

// CompaniesByState returns companies registered in the given state.
func (c *Client) CompaniesByState(ctx context.Context, state string, limit int) ([]edgar.Record, error) {
	return c.Filings(ctx, FilingQuery{State: state}, limit)
}

// CompaniesByCountry returns companies under the given country code.
func (c *Client) CompaniesByCountry(ctx context.Context, country string, limit int) ([]edgar.Record, error) {
	return c.Filings(ctx, FilingQuery{Country: country}, limit)
}

// CompaniesBySIC returns companies under the given SIC industry code.
func (c *Client) CompaniesBySIC(ctx context.Context, sic string, limit int) ([]edgar.Record, error) {
	return c.Filings(ctx, FilingQuery{SIC: sic}, limit)
}

// CompanyDirectories lists the filing directories of a company from the
// archive index, attaching the per-directory index URL to each entry.
func (c *Client) CompanyDirectories(ctx context.Context, cik string) ([]Directory, error) {
	indexUrl := fmt.Sprintf("%s/%s/index.json", c.archiveUrl, cik)

	index, err := c.fetchIndex(ctx, indexUrl)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch company directories: %w", err)
	}

	directories := make([]Directory, 0, len(index.Directory.Item))
	for _, entry := range index.Directory.Item {
		directories = append(directories, Directory{
			FilingID:     entry.Name,
			LastModified: entry.LastModified,
			Size:         entry.Size,
			Type:         entry.Type,
			URL:          fmt.Sprintf("%s/%s/%s/index.json", c.archiveUrl, cik, entry.Name),
		})
	}

	return directories, nil
}

// CompanyDirectory lists the documents inside one filing directory.
func (c *Client) CompanyDirectory(ctx context.Context, cik, filingID string) ([]DirectoryItem, error) {
	indexUrl := fmt.Sprintf("%s/%s/%s/index.json", c.archiveUrl, cik, filingID)

	index, err := c.fetchIndex(ctx, indexUrl)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch filing directory: %w", err)
	}

	items := make([]DirectoryItem, 0, len(index.Directory.Item))
	for _, entry := range index.Directory.Item {
		items = append(items, DirectoryItem{
			ItemID:       entry.Name,
			LastModified: entry.LastModified,
			Size:         entry.Size,
			Type:         entry.Type,
			URL:          fmt.Sprintf("%s/%s/%s/%s", c.archiveUrl, cik, filingID, entry.Name),
		})
	}

	return items, nil
}

func (c *Client) fetchIndex(ctx context.Context, indexUrl string) (*directoryIndex, error) {
	data, err := c.fetch(ctx, indexUrl)
	if err != nil {
		return nil, err
	}

	var index directoryIndex
	if err := json.Unmarshal(data, &index); err != nil {
		return nil, fmt.Errorf("failed to decode directory index: %w", err)
	}

	return &index, nil
}

func (c *Client) fetch(ctx context.Context, requestUrl string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", requestUrl, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch URL: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return data, nil
}

func setIfPresent(params url.Values, key, value string) {
	if value != "" {
		params.Set(key, value)
	}
}
