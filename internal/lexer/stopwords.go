package lexer

// stopwords is the fixed set of common English function words and pronouns
// shared by the TF-IDF scorer. Per spec §9 open question (a), this list is
// deliberately kept distinct from the keyword extractor's own, narrower list
// in internal/keyword -- the two are allowed to diverge.
var stopwords = buildSet([]string{
	"the", "and", "for", "are", "but", "not", "you", "all", "can", "had",
	"her", "was", "one", "our", "out", "day", "get", "has", "him", "his",
	"how", "man", "new", "now", "old", "see", "two", "way", "who", "boy",
	"did", "its", "let", "put", "say", "she", "too", "use", "that", "with",
	"have", "this", "will", "your", "from", "they", "know", "want", "been",
	"good", "much", "some", "time", "very", "when", "come", "here", "just",
	"like", "long", "make", "many", "over", "such", "take", "than", "them",
	"well", "were", "what", "about", "after", "again", "could", "every",
	"first", "found", "great", "might", "shall", "still", "their", "there",
	"these", "thing", "think", "those", "under", "where", "which", "while",
	"would", "should", "because", "between", "through", "does", "doing",
	"each", "few", "into", "more", "most", "off", "once", "only", "other",
	"own", "same", "too", "very", "itself", "myself", "yourself", "ourselves",
	"themselves", "being", "having", "doesn", "don", "isn", "aren", "wasn",
	"weren", "hasn", "haven", "hadn", "won", "wouldn", "shan", "shouldn",
	"couldn", "mustn", "needn",
})

// buildSet converts a word slice into a set for O(1) membership tests.
func buildSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}
