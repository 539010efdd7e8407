package watch

import (
	"strings"
	"testing"
)

func TestDocumentExtractorFilingPage(t *testing.T) {
	extractor := NewDocumentExtractor()

	htmlContent := `
	<!DOCTYPE html>
	<html>
	<head>
		<title>Form 10-K Annual Report</title>
	</head>
	<body>
		<header>
			<nav>EDGAR | Company Search | Full-Text Search</nav>
		</header>
		<main>
			<article>
				<h1>Annual Report Pursuant to Section 13 or 15(d)</h1>
				<p>The registrant develops, manufactures and markets a diverse portfolio of industrial and consumer products. This discussion of the business should be read together with the consolidated financial statements and the accompanying notes.</p>
				<p>During the fiscal year the registrant completed two acquisitions and divested one business segment. Management believes these transactions position the company for sustained revenue growth in its core markets.</p>
				<p>Risk factors described in this report include supply chain concentration, raw material price volatility and exposure to foreign currency fluctuations across the registrant's international operations.</p>
			</article>
		</main>
		<footer>
			<p>SEC.gov | Privacy | Accessibility</p>
		</footer>
	</body>
	</html>
	`

	result, err := extractor.Run([]byte(htmlContent))

	if err != nil {
		t.Errorf("Expected no error, got: %v", err)
	}

	if result == "" {
		t.Errorf("Expected non-empty result")
	}

	if !strings.Contains(result, "diverse portfolio of industrial and consumer products") {
		t.Errorf("Expected extracted text to contain the filing body")
	}

	// Text content, not markup
	if strings.Contains(result, "<p>") {
		t.Errorf("Expected extracted text to contain no HTML tags")
	}
}

func TestDocumentExtractorEmptyData(t *testing.T) {
	extractor := NewDocumentExtractor()

	for _, data := range [][]byte{nil, {}} {
		result, err := extractor.Run(data)

		if err == nil {
			t.Errorf("Expected error for empty data")
		}
		if result != "" {
			t.Errorf("Expected empty result for empty data, got %q", result)
		}

		expectedError := "HTML data is empty"
		if err != nil && err.Error() != expectedError {
			t.Errorf("Expected error message '%s', got '%s'", expectedError, err.Error())
		}
	}
}

func TestDocumentExtractorStripsScripts(t *testing.T) {
	extractor := NewDocumentExtractor()

	htmlContent := `
	<!DOCTYPE html>
	<html>
	<head>
		<title>Form 8-K Current Report</title>
		<style>body { font-family: Arial; }</style>
	</head>
	<body>
		<script>var trackingCode = "analytics";</script>
		<article>
			<h1>Current Report</h1>
			<p>On the date of this report the registrant entered into a material definitive agreement with its principal lender amending the terms of its revolving credit facility and extending the maturity date by three years.</p>
			<p>The amendment reduces the applicable interest rate margin and modifies certain financial covenants. A copy of the amendment is filed as an exhibit to this current report and incorporated herein by reference.</p>
			<p>The information furnished under this item shall not be deemed filed for purposes of Section 18 of the Securities Exchange Act of 1934 nor incorporated by reference into any registration statement.</p>
		</article>
	</body>
	</html>
	`

	result, err := extractor.Run([]byte(htmlContent))

	if err != nil {
		t.Errorf("Expected no error, got: %v", err)
	}

	if !strings.Contains(result, "material definitive agreement") {
		t.Errorf("Expected extracted text to contain the report body")
	}

	if strings.Contains(result, "trackingCode") {
		t.Errorf("Expected extracted text to exclude script content")
	}

	if strings.Contains(result, "font-family") {
		t.Errorf("Expected extracted text to exclude style content")
	}
}
