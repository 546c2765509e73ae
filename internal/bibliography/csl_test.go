// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package bibliography

import (
	"bytes"
	"strings"
	"testing"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/citation-graph/pkg/types"
)

func TestToCSLItemArxiv(t *testing.T) {
	r := types.Reference{
		ID:      "0b544dfe355a5070b60986319a3f51fb45d1348e",
		Title:   "Neural Machine Translation by Jointly Learning to Align and Translate",
		Year:    2014,
		ArxivID: "1409.0473",
	}

	item := ToCSLItem(r, 0)

	if item.Type != "report" {
		t.Errorf("Type = %q, want %q", item.Type, "report")
	}
	if item.Number != "1409.0473" {
		t.Errorf("Number = %q, want %q", item.Number, "1409.0473")
	}
	if item.URL != "https://arxiv.org/abs/1409.0473" {
		t.Errorf("URL = %q", item.URL)
	}
	if item.Issued == nil || item.Issued.DateParts[0][0] != 2014 {
		t.Errorf("Issued year should be 2014")
	}
}

func TestToCSLItemDOI(t *testing.T) {
	r := types.Reference{ID: "W1", Title: "Deep learning", DOI: "10.1038/nature14539"}

	item := ToCSLItem(r, 3)

	if item.Type != "article-journal" {
		t.Errorf("Type = %q, want %q", item.Type, "article-journal")
	}
	if item.DOI != "10.1038/nature14539" {
		t.Errorf("DOI = %q", item.DOI)
	}
	if item.ID != "W1" {
		t.Errorf("ID = %q, want W1", item.ID)
	}
	if item.Issued != nil {
		t.Error("Issued should be nil without a year")
	}
}

func TestToCSLItemWithoutIdentifier(t *testing.T) {
	item := ToCSLItem(types.Reference{Title: "Unresolved"}, 4)
	if item.ID != "ref-5" {
		t.Errorf("ID = %q, want ref-5", item.ID)
	}
}

func TestFormatCSL(t *testing.T) {
	refs := []types.Reference{
		{ID: "a", Title: "Paper A", Year: 2020, DOI: "10.1/a"},
		{Title: "Paper B"},
	}

	var buf bytes.Buffer
	if err := FormatCSL(refs, &buf); err != nil {
		t.Fatalf("FormatCSL: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "DOI: 10.1/a") {
		t.Errorf("output missing DOI:\n%s", out)
	}
	if !strings.Contains(out, "date-parts") {
		t.Errorf("output missing date-parts:\n%s", out)
	}

	var items []CSLItem
	if err := yaml.Unmarshal(buf.Bytes(), &items); err != nil {
		t.Fatalf("output is not valid YAML: %v", err)
	}
	if len(items) != 2 || items[1].ID != "ref-2" {
		t.Errorf("items = %+v", items)
	}
}

func TestFormatCSLEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := FormatCSL(nil, &buf); err != nil {
		t.Fatalf("FormatCSL: %v", err)
	}
	if strings.TrimSpace(buf.String()) != "[]" {
		t.Errorf("output = %q, want []", buf.String())
	}
}
