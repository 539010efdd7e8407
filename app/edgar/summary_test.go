package edgar

import (
	"reflect"
	"testing"
)

func TestParseSummary(t *testing.T) {
	parser := NewParser()

	tests := []struct {
		name     string
		fragment string
		expected map[string]string
	}{
		{
			name:     "CIK and state",
			fragment: "<b>CIK:</b> 0000066740, <b>State:</b> MN",
			expected: map[string]string{"cik": "0000066740", "state": "MN"},
		},
		{
			name:     "strong tags",
			fragment: "<strong>CIK:</strong> 0000066740, <strong>State:</strong> MN",
			expected: map[string]string{"cik": "0000066740", "state": "MN"},
		},
		{
			name:     "multi-word labels are kebab-cased",
			fragment: "<b>SIC Code:</b> 3841, <b>Last Date:</b> 2020-01-31",
			expected: map[string]string{"sic-code": "3841", "last-date": "2020-01-31"},
		},
		{
			name:     "colon outside the label tag",
			fragment: "<b>CIK</b>: 0000066740, <b>State</b>: MN",
			expected: map[string]string{"cik": "0000066740", "state": "MN"},
		},
		{
			name:     "duplicate label keeps last occurrence",
			fragment: "<b>State:</b> CA, <b>State:</b> MN",
			expected: map[string]string{"state": "MN"},
		},
		{
			name:     "label with empty value",
			fragment: "<b>Last Date:</b> , <b>State:</b> MN",
			expected: map[string]string{"last-date": "", "state": "MN"},
		},
		{
			name:     "plain text produces no fields",
			fragment: "Quarterly report for fiscal year 2020",
			expected: nil,
		},
		{
			name:     "empty fragment",
			fragment: "",
			expected: nil,
		},
		{
			name:     "whitespace only",
			fragment: "   \n ",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := parser.parseSummary(tt.fragment)
			if !reflect.DeepEqual(fields, tt.expected) {
				t.Errorf("parseSummary(%q) = %v, want %v", tt.fragment, fields, tt.expected)
			}
		})
	}
}

func TestNormalizeLabel(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"CIK", "cik"},
		{"CIK:", "cik"},
		{" State : ", "state"},
		{"SIC Code", "sic-code"},
		{"Last   Date", "last-date"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := normalizeLabel(tt.input); got != tt.expected {
			t.Errorf("normalizeLabel(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}
