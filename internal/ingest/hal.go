// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ingest

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/listic-lab/pubgraph/pkg/types"
)

// halEnvelope is one entry of a HAL results file: the roster name that was
// queried plus the documents HAL returned for it. Entries that recorded a
// scrape error carry no results and contribute nothing.
type halEnvelope struct {
	Name    string   `json:"name"`
	Results []halDoc `json:"results"`
	Error   string   `json:"error,omitempty"`
}

// halDoc mirrors the HAL API fields the scraper requests.
type halDoc struct {
	Title        flexString `json:"title_s"`
	Authors      []string   `json:"authFullName_s"`
	Date         string     `json:"publicationDate_s"`
	Domain       string     `json:"primaryDomain_s"`
	OpenAccess   *bool      `json:"openAccess_bool"`
	Institutions []string   `json:"instStructName_s"`
}

// flexString accepts both a JSON string and an array of strings, keeping the
// first element. HAL serves title_s either way depending on the document.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '[' {
		var list []string
		if err := json.Unmarshal(data, &list); err != nil {
			return err
		}
		if len(list) > 0 {
			*f = flexString(list[0])
		}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*f = flexString(s)
	return nil
}

// parseHAL decodes a HAL results JSON array. Documents without a title are
// skipped and counted. The year is the leading four digits of the
// publication date string; shorter or unparseable dates leave it unset.
func parseHAL(r io.Reader) (ParseOutput, error) {
	var envelopes []halEnvelope
	if err := json.NewDecoder(r).Decode(&envelopes); err != nil {
		return ParseOutput{}, fmt.Errorf("decoding HAL results: %w", err)
	}

	var out ParseOutput
	for _, env := range envelopes {
		for _, doc := range env.Results {
			if doc.Title == "" {
				out.Skipped++
				continue
			}

			domain := doc.Domain
			if domain == "" {
				domain = "Unknown"
			}

			out.Publications = append(out.Publications, types.Publication{
				Title:          string(doc.Title),
				RawAuthorNames: doc.Authors,
				Year:           yearFromDate(doc.Date),
				Domain:         domain,
				Institutions:   doc.Institutions,
				OpenAccess:     doc.OpenAccess,
				Source:         types.SourceHAL,
			})
		}
	}
	return out, nil
}

// yearFromDate parses the leading four digits of a date string such as
// "2019-03-01". Returns nil when the string is too short or not numeric.
func yearFromDate(date string) *int {
	if len(date) < 4 {
		return nil
	}
	year, err := strconv.Atoi(date[:4])
	if err != nil {
		return nil
	}
	return &year
}
