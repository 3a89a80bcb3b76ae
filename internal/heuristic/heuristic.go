// Package heuristic implements the additive path/extension/config/test/
// recency scorer applied after a candidate's base (TF-IDF or embedding)
// score. Every contribution is independent and commutative: order of
// application never changes the final score.
package heuristic

import (
	"path/filepath"
	"strings"

	"github.com/ternary/smartcontext/internal/keyword"
	"github.com/ternary/smartcontext/internal/pipeline"
)

const (
	pathMatchBasename = 0.8
	pathMatchParent   = 0.4

	extComponentBoost = 0.6
	extFunctionBoost  = 0.4
	extStyleBoost     = 0.6

	configFileBoost = 0.7

	testFileMatchBoost = 0.5
	testFilePenalty    = -0.3

	recencyUnderOneDay    = 0.5
	recencyUnderSevenDays = 0.3
	recencyUnderMonth     = 0.1

	autoIncludeBoost = 10.0

	dayMS   = int64(24 * 60 * 60 * 1000)
	weekMS  = 7 * dayMS
	monthMS = 30 * dayMS
)

var configBasenames = map[string]struct{}{
	"package.json":  {},
	"tsconfig.json": {},
	".env":          {},
}

var componentExts = map[string]struct{}{".tsx": {}, ".jsx": {}}
var functionExts = map[string]struct{}{".ts": {}, ".js": {}}

// Scorer applies the heuristic adjustments of spec §4.6 to a set of
// already base-scored candidates.
type Scorer struct {
	clock pipeline.Clock
	fs    pipeline.Filesystem
}

// NewScorer constructs a heuristic Scorer.
func NewScorer(clock pipeline.Clock, fs pipeline.Filesystem) *Scorer {
	return &Scorer{clock: clock, fs: fs}
}

// Score applies every heuristic adjustment to each candidate in place. It
// never fails: filesystem stat errors simply skip the recency contribution
// for that candidate (spec §7, StatMissing).
func (s *Scorer) Score(query string, candidates []*pipeline.FileCandidate) {
	keywords := keyword.ExtractQueryKeywords(query)
	lowerQuery := strings.ToLower(query)

	for _, c := range candidates {
		s.scoreOne(c, keywords, lowerQuery)
	}
}

func (s *Scorer) scoreOne(c *pipeline.FileCandidate, keywords []string, lowerQuery string) {
	base := filepath.Base(c.Path)
	baseLower := strings.ToLower(base)
	parentLower := strings.ToLower(filepath.Dir(c.Path))
	ext := strings.ToLower(filepath.Ext(base))

	for _, kw := range keywords {
		if strings.Contains(baseLower, kw) {
			c.AddReason(pathMatchBasename, "path match: keyword in basename")
		}
		if strings.Contains(parentLower, kw) {
			c.AddReason(pathMatchParent, "path match: keyword in parent path")
		}
	}

	if _, ok := componentExts[ext]; ok && strings.Contains(lowerQuery, "component") {
		c.AddReason(extComponentBoost, "extension affinity: component file")
	}
	if _, ok := functionExts[ext]; ok && strings.Contains(lowerQuery, "function") {
		c.AddReason(extFunctionBoost, "extension affinity: function file")
	}
	if ext == ".css" && strings.Contains(lowerQuery, "style") {
		c.AddReason(extStyleBoost, "extension affinity: stylesheet")
	}

	if _, ok := configBasenames[baseLower]; ok {
		if strings.Contains(lowerQuery, "config") || strings.Contains(lowerQuery, "setup") {
			c.AddReason(configFileBoost, "config file match")
		}
	}

	isTestFile := strings.Contains(baseLower, "test") || strings.Contains(baseLower, "spec")
	if isTestFile {
		if strings.Contains(lowerQuery, "test") {
			c.AddReason(testFileMatchBoost, "test file match")
		} else {
			c.AddReason(testFilePenalty, "test file penalty")
		}
	}

	if mtimeMS, err := s.fs.StatMTimeMS(c.Path); err == nil {
		age := s.clock.NowMS() - mtimeMS
		switch {
		case age < dayMS:
			c.AddReason(recencyUnderOneDay, "recency: under 1 day")
		case age < weekMS:
			c.AddReason(recencyUnderSevenDays, "recency: under 7 days")
		case age < monthMS:
			c.AddReason(recencyUnderMonth, "recency: under 30 days")
		}
	}

	if c.IsAutoInclude {
		c.AddReason(autoIncludeBoost, "auto-include")
	}
}
