package vipbot

import (
	"strings"
	"time"
)

// Product is a single catalog entry. Price and Stock are kept verbatim as
// published.
type Product struct {
	Category    string `json:"category"`
	Name        string `json:"name"`
	Price       string `json:"price"`
	Description string `json:"description"`
	Stock       string `json:"stock"`
}

// InStock reports whether the product is available. The stock values
// "habis" and "0" (any case) mean sold out.
func (p *Product) InStock() bool {
	switch strings.ToLower(strings.TrimSpace(p.Stock)) {
	case "habis", "0":
		return false
	}
	return true
}

// FAQItem is a frequently asked question with its answer.
type FAQItem struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Category groups products sharing a category name, in input order.
type Category struct {
	Name     string     `json:"name"`
	Products []*Product `json:"products"`
}

// Available returns the number of in-stock products in the category.
func (c *Category) Available() int {
	n := 0
	for _, p := range c.Products {
		if p.InStock() {
			n++
		}
	}
	return n
}

// Snapshot is a complete, internally consistent copy of the catalog. It is
// replaced as a whole and never mutated after adoption.
type Snapshot struct {
	Products   []*Product  `json:"products"`
	FAQ        []*FAQItem  `json:"faq"`
	Categories []*Category `json:"categories"`

	// Revision is the upstream revision marker the snapshot was fetched at.
	Revision string `json:"revision"`
	// Digest is a hash of the raw dataset the snapshot was parsed from.
	Digest    string    `json:"digest"`
	FetchedAt time.Time `json:"fetchedAt"`
}

// IsEmpty reports whether the snapshot holds neither products nor FAQ items.
func (s *Snapshot) IsEmpty() bool {
	return s == nil || (len(s.Products) == 0 && len(s.FAQ) == 0)
}

// Category returns the category matching name case-insensitively, or nil.
func (s *Snapshot) Category(name string) *Category {
	if s == nil {
		return nil
	}
	name = strings.TrimSpace(name)
	for _, c := range s.Categories {
		if strings.EqualFold(c.Name, name) {
			return c
		}
	}
	return nil
}

// Available returns the number of in-stock products across the catalog.
func (s *Snapshot) Available() int {
	if s == nil {
		return 0
	}
	n := 0
	for _, p := range s.Products {
		if p.InStock() {
			n++
		}
	}
	return n
}

// RelatedProducts returns products whose name contains any word of the
// query, compared case-insensitively, in catalog order.
func (s *Snapshot) RelatedProducts(query string) []*Product {
	if s == nil {
		return nil
	}
	words := strings.Fields(strings.ToLower(query))
	if len(words) == 0 {
		return nil
	}

	var related []*Product
	for _, p := range s.Products {
		name := strings.ToLower(p.Name)
		for _, w := range words {
			if strings.Contains(name, w) {
				related = append(related, p)
				break
			}
		}
	}
	return related
}

// ShortRevision returns the first seven characters of the revision marker,
// or "N/A" when none has been recorded.
func (s *Snapshot) ShortRevision() string {
	if s == nil || s.Revision == "" {
		return "N/A"
	}
	if len(s.Revision) > 7 {
		return s.Revision[:7]
	}
	return s.Revision
}

// Catalog holds the current snapshot.
type Catalog interface {
	// Snapshot returns the last adopted snapshot. It never returns nil.
	Snapshot() *Snapshot

	// Replace adopts s if it holds at least one product or FAQ item and
	// reports whether it did. Otherwise the current snapshot is kept.
	Replace(s *Snapshot) bool
}
