// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Reference is one entry in a paper's reference list as returned by a
// lookup source. ID and Title are empty when the source omits them.
type Reference struct {
	// ID is the cited paper's identifier in the source namespace.
	ID string `json:"id" yaml:"id,omitempty"`

	// Title is the cited paper's title.
	Title string `json:"title" yaml:"title,omitempty"`

	// Year is the publication year, zero when unknown.
	Year int `json:"year,omitempty" yaml:"year,omitempty"`

	// ArxivID is the cited paper's arXiv identifier, if any.
	ArxivID string `json:"arxiv_id,omitempty" yaml:"arxiv_id,omitempty"`

	// DOI is the cited paper's DOI, if any.
	DOI string `json:"doi,omitempty" yaml:"doi,omitempty"`
}

// Label returns the title, or the identifier when the title is absent.
func (r Reference) Label() string {
	if r.Title != "" {
		return r.Title
	}
	return r.ID
}

// Link returns a landing page for the reference: arXiv abstract page first,
// then the DOI resolver. It returns "" when neither is known.
func (r Reference) Link() string {
	switch {
	case r.ArxivID != "":
		return "https://arxiv.org/abs/" + r.ArxivID
	case r.DOI != "":
		return "https://doi.org/" + r.DOI
	default:
		return ""
	}
}

// ReferenceEntry is one row of a reference listing.
type ReferenceEntry struct {
	ID    string `json:"id,omitempty" yaml:"id,omitempty"`
	Title string `json:"title" yaml:"title"`
	Year  int    `json:"year,omitempty" yaml:"year,omitempty"`
	URL   string `json:"url,omitempty" yaml:"url,omitempty"`
}

// ReferenceList is a paper's reference list as shown to users. Unlike graph
// expansion it keeps references the source could not identify.
type ReferenceList struct {
	ID         string           `json:"id" yaml:"id"`
	References []ReferenceEntry `json:"references" yaml:"references"`
}

// NewReferenceList builds the listing for paper id.
func NewReferenceList(id string, refs []Reference) ReferenceList {
	list := ReferenceList{ID: id, References: make([]ReferenceEntry, 0, len(refs))}
	for _, r := range refs {
		title := r.Label()
		if title == "" {
			title = "Untitled"
		}
		list.References = append(list.References, ReferenceEntry{
			ID:    r.ID,
			Title: title,
			Year:  r.Year,
			URL:   r.Link(),
		})
	}
	return list
}
