// Package query normalizes raw search input and classifies it into the
// blank (recency) or fuzzy (similarity) search mode.
package query

import "strings"

// Mode selects the ordering strategy for the whole search pipeline.
type Mode string

const (
	// Blank means no usable query text: order by recency.
	Blank Mode = "recency"
	// Fuzzy means free-text search: order by trigram similarity.
	Fuzzy Mode = "similarity"
)

// Query is a normalized search query.
type Query struct {
	text string
	mode Mode
}

// Normalize trims the raw query and collapses internal whitespace runs to a
// single space. An empty result selects Blank mode. Pure function.
func Normalize(raw string) Query {
	text := strings.Join(strings.Fields(raw), " ")
	if text == "" {
		return Query{mode: Blank}
	}
	return Query{text: text, mode: Fuzzy}
}

// Text returns the normalized query text (empty in Blank mode).
func (q Query) Text() string { return q.text }

// Mode returns the selected search mode.
func (q Query) Mode() Mode { return q.mode }

// IsBlank reports whether the query selects recency mode.
func (q Query) IsBlank() bool { return q.mode == Blank }
