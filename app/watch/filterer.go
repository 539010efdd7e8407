package watch

import (
	"fmt"
	"strings"

	"edgarcomb/app/edgar"
)

// FilterResult pairs a normalized record with its filter verdict.
type FilterResult struct {
	Record       edgar.Record
	IsFiltered   bool
	FilterReason string
}

type Filterer struct{}

func NewFilterer() *Filterer {
	return &Filterer{}
}

func (f *Filterer) Run(records []edgar.Record, watchConfig *Config) []FilterResult {
	results := make([]FilterResult, 0, len(records))
	for _, record := range records {
		isFiltered, filterReason := f.applyFilters(record, watchConfig.Filters)
		results = append(results, FilterResult{
			Record:       record,
			IsFiltered:   isFiltered,
			FilterReason: filterReason,
		})
	}

	return results
}

func (f *Filterer) applyFilters(record edgar.Record, filters []ConfigFilter) (bool, string) {
	for _, filter := range filters {
		value := f.getFieldValue(record, filter.Field)

		for _, exclude := range filter.Excludes {
			if f.matchesFilter(value, exclude) {
				return true, fmt.Sprintf("Excluded by %s filter: contains '%s'", filter.Field, exclude)
			}
		}

		if len(filter.Includes) > 0 {
			matched := false
			for _, include := range filter.Includes {
				if f.matchesFilter(value, include) {
					matched = true
					break
				}
			}
			if !matched {
				return true, fmt.Sprintf("Excluded by %s filter: does not contain any of %v", filter.Field, filter.Includes)
			}
		}
	}

	return false, ""
}

func (f *Filterer) matchesFilter(value, pattern string) bool {
	return strings.Contains(strings.ToLower(value), strings.ToLower(pattern))
}

// getFieldValue resolves a filter field against the record's scalar
// fields first, then against its summary-derived fields (cik, state,
// sic-code and so on).
func (f *Filterer) getFieldValue(record edgar.Record, field string) string {
	switch field {
	case "id":
		return record.ID
	case "title":
		return record.Title
	case "summary":
		return record.Summary
	case "href":
		return record.Href
	default:
		return record.Fields[field]
	}
}
