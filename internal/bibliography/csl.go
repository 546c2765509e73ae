// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package bibliography renders reference lists as CSL (Citation Style
// Language) YAML so they can be fed to Pandoc or a reference manager.
package bibliography

import (
	"fmt"
	"io"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/citation-graph/pkg/types"
)

// CSLItem is a bibliographic entry in CSL-YAML form. Lookup sources do not
// return authors, so entries carry only what the reference list knows.
type CSLItem struct {
	ID     string   `yaml:"id"`
	Type   string   `yaml:"type"`
	Title  string   `yaml:"title,omitempty"`
	Issued *CSLDate `yaml:"issued,omitempty"`
	DOI    string   `yaml:"DOI,omitempty"`
	URL    string   `yaml:"URL,omitempty"`
	Number string   `yaml:"number,omitempty"`
	Note   string   `yaml:"note,omitempty"`
}

// CSLDate represents a date in CSL format using date-parts.
type CSLDate struct {
	DateParts [][]int `yaml:"date-parts"`
}

// FormatCSL writes refs as a CSL-YAML list to w.
func FormatCSL(refs []types.Reference, w io.Writer) error {
	items := make([]CSLItem, len(refs))
	for i, r := range refs {
		items[i] = ToCSLItem(r, i)
	}
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(items)
}

// ToCSLItem converts the reference at position i of a list. References
// without an identifier get a positional id so every item stays citable.
func ToCSLItem(r types.Reference, i int) CSLItem {
	item := CSLItem{
		ID:    r.ID,
		Type:  "article-journal",
		Title: r.Title,
		DOI:   r.DOI,
		URL:   r.Link(),
	}
	if item.ID == "" {
		item.ID = fmt.Sprintf("ref-%d", i+1)
	}
	if r.Year != 0 {
		item.Issued = &CSLDate{DateParts: [][]int{{r.Year}}}
	}
	if r.ArxivID != "" {
		// arXiv preprints are cited as reports with the arXiv id as number.
		item.Type = "report"
		item.Number = r.ArxivID
		item.Note = "arXiv:" + r.ArxivID
	}
	return item
}
