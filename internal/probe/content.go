package probe

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ContentFacts summarizes the parts of a fetched page the scorers inspect.
type ContentFacts struct {
	HasPasswordInput bool
	HasIframe        bool
}

// InspectContent parses a bounded HTML body and reports the phishing-relevant
// DOM facts. Unparseable bodies report nothing.
func InspectContent(body string) ContentFacts {
	if body == "" {
		return ContentFacts{}
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return ContentFacts{}
	}
	return ContentFacts{
		HasPasswordInput: doc.Find("input[type='password']").Length() > 0,
		HasIframe:        doc.Find("iframe").Length() > 0,
	}
}
