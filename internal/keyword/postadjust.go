package keyword

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/ternary/smartcontext/internal/pipeline"
)

const (
	watermarkBoost = 2.0
	themeBoost     = 1.5
	negativeBoost  = -5.0
	hintBoost      = 0.5
	hintPenalty    = -0.5
)

var watermarkKeywords = map[string]struct{}{"watermark": {}, "ternary": {}, "made": {}}

var watermarkPathTokens = []string{"made-with-ternary", "watermark"}
var watermarkContentPhrase = "made with ternary"

var themeKeywords = map[string]struct{}{"theme": {}, "toggle": {}, "dark": {}, "light": {}}

var themePathTokens = []string{
	"theme", "toggle", "globals.css", "tailwind.config", "index.html",
	"app.css", "layout", "themetoggle", "toggle-group",
}

var negativeCategories = []string{
	"chart", "charts", "graph", "analytics", "test", "stories", "storybook",
}

// Adjust applies the second keyword pass (spec §4.7) to already
// heuristic-scored candidates, then re-sorts them by descending score with
// input-order tie-breaking (stable sort).
func Adjust(query string, candidates []*pipeline.FileCandidate) {
	keywords := ExtractQueryKeywords(query)
	kwSet := make(map[string]struct{}, len(keywords))
	for _, k := range keywords {
		kwSet[k] = struct{}{}
	}

	for _, c := range candidates {
		adjustOne(c, keywords, kwSet)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})
}

func adjustOne(c *pipeline.FileCandidate, keywords []string, kwSet map[string]struct{}) {
	base := filepath.Base(c.Path)
	baseLower := strings.ToLower(base)
	pathLower := strings.ToLower(c.Path)
	contentLower := strings.ToLower(c.Content)

	if anyKeywordIn(keywords, watermarkKeywords) {
		if containsAny(baseLower, watermarkPathTokens) || strings.Contains(contentLower, watermarkContentPhrase) {
			c.AddReason(watermarkBoost, "keyword topic: watermark")
		}
	}

	if anyKeywordIn(keywords, themeKeywords) {
		if containsAny(pathLower, themePathTokens) || containsAny(baseLower, themePathTokens) {
			c.AddReason(themeBoost, "keyword topic: theme/toggle")
		}
	}

	for _, neg := range negativeCategories {
		if !strings.Contains(pathLower, neg) && !strings.Contains(baseLower, neg) {
			continue
		}
		if _, mentioned := kwSet[neg]; mentioned {
			continue
		}
		if keywordMatchesAnywhere(keywords, pathLower, contentLower) {
			continue
		}
		c.AddReason(negativeBoost, "negative category: "+neg)
		break
	}

	if keywordMatchesAnywhere(keywords, pathLower, contentLower) {
		c.AddReason(hintBoost, "keyword hint match")
	} else {
		c.AddReason(hintPenalty, "no keyword hint match")
	}
}

func anyKeywordIn(keywords []string, set map[string]struct{}) bool {
	for _, k := range keywords {
		if _, ok := set[k]; ok {
			return true
		}
	}
	return false
}

func containsAny(haystack string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(haystack, n) {
			return true
		}
	}
	return false
}

func keywordMatchesAnywhere(keywords []string, pathLower, contentLower string) bool {
	for _, k := range keywords {
		if strings.Contains(pathLower, k) || strings.Contains(contentLower, k) {
			return true
		}
	}
	return false
}
