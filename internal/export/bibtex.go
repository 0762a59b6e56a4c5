// Package export writes graph papers to bibliography formats.
package export

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/matsen/simgraph/internal/paper"
)

// keyIDLen is how much of the paper ID disambiguates a citation key.
const keyIDLen = 6

// ToBibTeX converts a paper to a BibTeX entry.
func ToBibTeX(p *paper.Paper) string {
	entryType := determineEntryType(p)
	var b strings.Builder

	b.WriteString(fmt.Sprintf("@%s{%s,\n", entryType, CitationKey(p)))

	if len(p.Authors) > 0 {
		b.WriteString(fmt.Sprintf("  author = {%s},\n", formatAuthors(p.Authors)))
	}

	b.WriteString(fmt.Sprintf("  title = {%s},\n", escapeLatex(p.Title)))

	if venue := venueName(p); venue != "" {
		fieldName := "journal"
		if entryType == "inproceedings" {
			fieldName = "booktitle"
		}
		b.WriteString(fmt.Sprintf("  %s = {%s},\n", fieldName, escapeLatex(venue)))
	}

	if p.JournalVolume != "" {
		b.WriteString(fmt.Sprintf("  volume = {%s},\n", escapeLatex(p.JournalVolume)))
	}
	if p.JournalPages != "" {
		b.WriteString(fmt.Sprintf("  pages = {%s},\n", strings.ReplaceAll(p.JournalPages, "-", "--")))
	}

	if p.Year != 0 {
		b.WriteString(fmt.Sprintf("  year = {%d},\n", p.Year))
	}

	if p.DOI != "" {
		b.WriteString(fmt.Sprintf("  doi = {%s},\n", p.DOI))
	}
	if p.S2URL != "" {
		b.WriteString(fmt.Sprintf("  url = {%s},\n", p.S2URL))
	}

	b.WriteString("}\n")

	return b.String()
}

// ToBibTeXList converts multiple papers to BibTeX format.
func ToBibTeXList(papers []*paper.Paper) string {
	var entries []string
	for _, p := range papers {
		entries = append(entries, ToBibTeX(p))
	}
	return strings.Join(entries, "\n")
}

// CitationKey builds a key like "Vaswani2017-204e30" from the first author's
// last name, the year and a prefix of the paper ID.
func CitationKey(p *paper.Paper) string {
	var b strings.Builder

	if first := p.FirstAuthor(); first != "" {
		fields := strings.Fields(first)
		for _, r := range fields[len(fields)-1] {
			if unicode.IsLetter(r) {
				b.WriteRune(r)
			}
		}
	}
	if b.Len() == 0 {
		b.WriteString("Anon")
	}
	if p.Year != 0 {
		b.WriteString(fmt.Sprintf("%d", p.Year))
	}

	id := p.ID
	if len(id) > keyIDLen {
		id = id[:keyIDLen]
	}
	if id != "" {
		b.WriteString("-")
		b.WriteString(id)
	}
	return b.String()
}

func venueName(p *paper.Paper) string {
	if p.JournalName != "" {
		return p.JournalName
	}
	return p.Venue
}

// determineEntryType returns the BibTeX entry type for a paper.
func determineEntryType(p *paper.Paper) string {
	venue := strings.ToLower(venueName(p))

	// Preprints
	if strings.Contains(venue, "arxiv") ||
		strings.Contains(venue, "biorxiv") ||
		strings.Contains(venue, "medrxiv") {
		return "article"
	}

	// Conference proceedings
	if strings.Contains(venue, "proceedings") ||
		strings.Contains(venue, "conference") ||
		strings.Contains(venue, "workshop") ||
		strings.Contains(venue, "symposium") {
		return "inproceedings"
	}

	return "article"
}

// formatAuthors joins authors in BibTeX style: "First Last and First Last".
func formatAuthors(authors []paper.Author) string {
	names := make([]string, 0, len(authors))
	for _, a := range authors {
		if a.Name != "" {
			names = append(names, escapeLatex(a.Name))
		}
	}
	return strings.Join(names, " and ")
}

// escapeLatex escapes special LaTeX characters.
func escapeLatex(s string) string {
	replacer := strings.NewReplacer(
		"&", `\&`,
		"%", `\%`,
		"$", `\$`,
		"#", `\#`,
		"_", `\_`,
		"{", `\{`,
		"}", `\}`,
		"~", `\textasciitilde{}`,
		"^", `\textasciicircum{}`,
	)
	return replacer.Replace(s)
}
