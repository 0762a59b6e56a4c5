// Package paper defines the data contract shared with the graph-data source:
// papers, similarity metric descriptors and graph snapshots.
package paper

import (
	"sort"
)

// Paper represents a paper record as served by the graph-data source.
// Field names follow the Semantic Scholar open corpus.
type Paper struct {
	// Identity
	ID    string `json:"id"` // Stable S2 paper ID
	S2URL string `json:"s2Url"`

	// Metadata
	Title    string   `json:"title"`
	Abstract string   `json:"paperAbstract"`
	Authors  []Author `json:"authors"`
	Year     int      `json:"year"`
	Venue    string   `json:"venue"`
	Fields   []string `json:"fieldsOfStudy"`
	Sources  []string `json:"sources,omitempty"` // DBLP, Medline

	// Citation graph
	InCitations  []string `json:"inCitations"`  // Papers citing this one
	OutCitations []string `json:"outCitations"` // Papers this one cites

	// Journal
	JournalName   string `json:"journalName,omitempty"`
	JournalVolume string `json:"journalVolume,omitempty"`
	JournalPages  string `json:"journalPages,omitempty"`

	// External identifiers
	DOI    string `json:"doi,omitempty"`
	DOIURL string `json:"doiUrl,omitempty"`
	PMID   string `json:"pmid,omitempty"`
	MAGID  string `json:"magId,omitempty"`

	// Full text
	PDFURLs  []string `json:"pdfUrls,omitempty"`
	S2PDFURL string   `json:"s2PdfUrl,omitempty"`
}

// Author is a paper author with their S2 author IDs.
type Author struct {
	Name string   `json:"name"`
	IDs  []string `json:"ids"`
}

// CitationCount returns the number of papers citing p.
func (p *Paper) CitationCount() int {
	return len(p.InCitations)
}

// FirstAuthor returns the first author's name, or "" if there are none.
func (p *Paper) FirstAuthor() string {
	if len(p.Authors) == 0 {
		return ""
	}
	return p.Authors[0].Name
}

// SortedFields returns a sorted copy of the paper's fields of study.
func (p *Paper) SortedFields() []string {
	fields := make([]string, len(p.Fields))
	copy(fields, p.Fields)
	sort.Strings(fields)
	return fields
}

// HasSoleField reports whether field is the paper's only field of study.
// Repeated entries count once.
func (p *Paper) HasSoleField(field string) bool {
	if len(p.Fields) == 0 {
		return false
	}
	for _, f := range p.Fields {
		if f != field {
			return false
		}
	}
	return true
}

// Similarity describes one similarity metric, i.e. one layer of the tensor.
type Similarity struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}
