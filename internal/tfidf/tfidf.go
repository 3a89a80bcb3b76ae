// Package tfidf implements the deterministic, offline scorer used when no
// embedding backend is configured or the embedding path fails for a given
// call. It is built once per selection call over the full candidate corpus
// and scores documents against a tokenized query.
package tfidf

import (
	"math"

	"github.com/ternary/smartcontext/internal/lexer"
)

// Document is a single corpus entry to be indexed: a stable identifier
// (typically a workspace-relative path) and its raw text content.
type Document struct {
	ID   string
	Text string
}

// Index is the built TF-IDF model for one corpus: per-document term
// frequencies plus the corpus-wide IDF table. Safe for concurrent read-only
// use via Score once built.
type Index struct {
	idf  map[string]float64
	tf   map[string]map[string]float64
	docN int
}

// Build tokenizes every document, computes per-document term frequency
// (raw count normalized by document token length) and corpus-wide inverse
// document frequency, in O(total_tokens + |vocab|).
func Build(docs []Document) *Index {
	idx := &Index{
		idf:  make(map[string]float64),
		tf:   make(map[string]map[string]float64, len(docs)),
		docN: len(docs),
	}

	df := make(map[string]int)
	for _, d := range docs {
		toks := lexer.Tokenize(d.Text)
		counts := make(map[string]int, len(toks))
		for _, t := range toks {
			counts[t]++
		}

		total := float64(len(toks))
		tf := make(map[string]float64, len(counts))
		for term, n := range counts {
			if total > 0 {
				tf[term] = float64(n) / total
			}
			df[term]++
		}
		idx.tf[d.ID] = tf
	}

	n := float64(idx.docN)
	for term, count := range df {
		idx.idf[term] = math.Log(n / (1 + float64(count)))
	}

	return idx
}

// Score returns the TF-IDF relevance of the document identified by docID
// against query, summing tf(doc, t)*idf(t) over the query's distinct
// tokens. Terms absent from the corpus vocabulary, or from the named
// document, contribute zero. Returns 0 for an unknown docID.
func (idx *Index) Score(docID string, query string) float64 {
	tf, ok := idx.tf[docID]
	if !ok {
		return 0
	}

	seen := make(map[string]struct{})
	var score float64
	for _, t := range lexer.Tokenize(query) {
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}

		idf, ok := idx.idf[t]
		if !ok {
			continue
		}
		score += tf[t] * idf
	}
	return score
}
