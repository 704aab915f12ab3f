// Package model defines the data structures shared by the covermark scanner.
package model

import "sort"

// Path represents a file system path.
type Path string

// SiteKind distinguishes the two sides of the coverage correlation.
type SiteKind string

const (
	// SiteHit is a production call site that fires the mark
	// (covermark.Hit, covermark.Register).
	SiteHit SiteKind = "hit"

	// SiteCheck is a declaration that a test expects the mark
	// (covermark.Check, CheckCount, CheckWith).
	SiteCheck SiteKind = "check"
)

// CallSite is one source location that mentions a mark name.
type CallSite struct {
	Name   string   `yaml:"-"`
	Kind   SiteKind `yaml:"kind"`
	File   Path     `yaml:"file"`
	Line   int      `yaml:"line"`
	Column int      `yaml:"column"`
	Func   string   `yaml:"func,omitempty"` // enclosing function, empty at package level
	Test   bool     `yaml:"test,omitempty"` // site lives in a _test.go file
}

// Correlation groups every known site for a single mark name: the places
// that hit it and the tests that check it.
type Correlation struct {
	Name   string     `yaml:"mark"`
	Hits   []CallSite `yaml:"hits,omitempty"`
	Checks []CallSite `yaml:"checks,omitempty"`
}

// Index is the bidirectional mark/test mapping for a scanned source tree,
// keyed by mark name.
type Index map[string]*Correlation

// Add records a call site under its mark name, creating the correlation
// entry on first sight.
func (idx Index) Add(site CallSite) {
	c, ok := idx[site.Name]
	if !ok {
		c = &Correlation{Name: site.Name}
		idx[site.Name] = c
	}

	switch site.Kind {
	case SiteCheck:
		c.Checks = append(c.Checks, site)
	default:
		c.Hits = append(c.Hits, site)
	}
}

// Names returns every known mark name in sorted order.
func (idx Index) Names() []string {
	names := make([]string, 0, len(idx))
	for name := range idx {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

// Sorted returns the correlations ordered by mark name, for deterministic
// rendering and export.
func (idx Index) Sorted() []*Correlation {
	sorted := make([]*Correlation, 0, len(idx))
	for _, name := range idx.Names() {
		sorted = append(sorted, idx[name])
	}

	return sorted
}

// Unchecked returns marks that production code hits but no test checks.
func (idx Index) Unchecked() []string {
	var names []string

	for _, c := range idx.Sorted() {
		if len(c.Hits) > 0 && len(c.Checks) == 0 {
			names = append(names, c.Name)
		}
	}

	return names
}

// Stale returns marks that tests check but nothing in the code hits. These
// checks can only ever fail.
func (idx Index) Stale() []string {
	var names []string

	for _, c := range idx.Sorted() {
		if len(c.Checks) > 0 && len(c.Hits) == 0 {
			names = append(names, c.Name)
		}
	}

	return names
}

// Totals reports the overall number of hit and check sites in the index.
func (idx Index) Totals() (hits, checks int) {
	for _, c := range idx {
		hits += len(c.Hits)
		checks += len(c.Checks)
	}

	return hits, checks
}
