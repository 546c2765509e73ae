// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package lookup

import (
	"regexp"
	"strings"
)

// IdentifierType classifies an input paper identifier.
type IdentifierType int

const (
	TypeUnknown IdentifierType = iota
	TypeArxiv
	TypeDOI
	TypeS2Paper
	TypeCorpusID
	TypeOpenAlex
	TypePrefixed
)

func (t IdentifierType) String() string {
	switch t {
	case TypeArxiv:
		return "arxiv"
	case TypeDOI:
		return "doi"
	case TypeS2Paper:
		return "s2"
	case TypeCorpusID:
		return "corpus_id"
	case TypeOpenAlex:
		return "openalex"
	case TypePrefixed:
		return "prefixed"
	default:
		return "unknown"
	}
}

var (
	// arxivPattern matches new-style ("2301.07041", "arXiv:2301.07041v2")
	// and old-style ("hep-th/9901001") arXiv identifiers.
	arxivPattern = regexp.MustCompile(`^(?i:arxiv:)?(\d{4}\.\d{4,5}(?:v\d+)?|[a-z\-]+(?:\.[A-Z]{2})?/\d{7}(?:v\d+)?)$`)

	// doiPattern matches DOIs with an optional "doi:" or resolver prefix.
	doiPattern = regexp.MustCompile(`^(?i:doi:|https?://(?:dx\.)?doi\.org/)?(10\.\d{4,9}/\S+)$`)

	// s2Pattern matches Semantic Scholar paper ids (40 hex characters).
	s2Pattern = regexp.MustCompile(`^[0-9a-f]{40}$`)

	corpusPattern   = regexp.MustCompile(`^(?i:corpusid:)(\d+)$`)
	openAlexPattern = regexp.MustCompile(`^(?:https://openalex\.org/)?(W\d+)$`)

	// prefixedPattern matches external-id keys Semantic Scholar accepts as-is.
	prefixedPattern = regexp.MustCompile(`^(?i:mag|acl|pmid|pmcid|url):\S+$`)
)

// Classify determines the identifier type and returns its normalized form.
// arXiv ids lose their "arXiv:" prefix, DOIs their resolver prefix,
// OpenAlex ids their URL prefix, and corpus ids keep only the number.
func Classify(identifier string) (IdentifierType, string) {
	identifier = strings.TrimSpace(identifier)

	if m := arxivPattern.FindStringSubmatch(identifier); m != nil {
		return TypeArxiv, m[1]
	}
	if m := doiPattern.FindStringSubmatch(identifier); m != nil {
		return TypeDOI, m[1]
	}
	if s2Pattern.MatchString(identifier) {
		return TypeS2Paper, identifier
	}
	if m := corpusPattern.FindStringSubmatch(identifier); m != nil {
		return TypeCorpusID, m[1]
	}
	if m := openAlexPattern.FindStringSubmatch(identifier); m != nil {
		return TypeOpenAlex, m[1]
	}
	if prefixedPattern.MatchString(identifier) {
		return TypePrefixed, identifier
	}
	return TypeUnknown, identifier
}
