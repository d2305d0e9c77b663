package vipbot

import (
	"fmt"
	"strings"
)

// Dataset section names.
const (
	SectionFAQ      = "FAQ"
	SectionProducts = "PRODUCTS"
)

// ParseWarning describes a data line that was skipped during parsing.
type ParseWarning struct {
	Line   int    `json:"line"`
	Text   string `json:"text"`
	Reason string `json:"reason"`
}

func (w *ParseWarning) String() string {
	return fmt.Sprintf("line %d: %s: %q", w.Line, w.Reason, w.Text)
}

// ParseCatalog parses a sectioned, pipe-delimited dataset:
//
//	# comment
//	[PRODUCTS]
//	category|name|price|description|stock
//	[FAQ]
//	question|answer
//
// Malformed lines are skipped and reported as warnings; parsing always runs
// to the end of the input. An input without recognized records yields an
// empty snapshot.
func ParseCatalog(content string) (*Snapshot, []*ParseWarning) {
	snap := &Snapshot{}
	var warnings []*ParseWarning
	index := make(map[string]*Category)

	var section string
	for i, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			section = strings.ToUpper(line[1 : len(line)-1])
			continue
		}
		if !strings.Contains(line, "|") {
			continue
		}

		switch section {
		case SectionFAQ:
			fields := splitFields(line, 2)
			if len(fields) != 2 {
				warnings = append(warnings, &ParseWarning{Line: i + 1, Text: line, Reason: "faq line needs question|answer"})
				continue
			}
			snap.FAQ = append(snap.FAQ, &FAQItem{Question: fields[0], Answer: fields[1]})

		case SectionProducts:
			fields := splitFields(line, 5)
			if len(fields) < 5 {
				warnings = append(warnings, &ParseWarning{Line: i + 1, Text: line, Reason: fmt.Sprintf("product line has %d of 5 fields", len(fields))})
				continue
			}
			p := &Product{
				Category:    fields[0],
				Name:        fields[1],
				Price:       fields[2],
				Description: fields[3],
				Stock:       fields[4],
			}
			snap.Products = append(snap.Products, p)

			c, ok := index[p.Category]
			if !ok {
				c = &Category{Name: p.Category}
				index[p.Category] = c
				snap.Categories = append(snap.Categories, c)
			}
			c.Products = append(c.Products, p)
		}
	}

	return snap, warnings
}

// splitFields splits line on "|" into at most n trimmed fields.
func splitFields(line string, n int) []string {
	fields := strings.SplitN(line, "|", n)
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	return fields
}
