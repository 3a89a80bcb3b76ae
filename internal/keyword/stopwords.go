package keyword

// stopwords is the keyword extractor's own stopword list, deliberately kept
// distinct and narrower than internal/lexer's TF-IDF list (open question
// (a) in the design notes: preserve both, do not unify them).
var stopwords = map[string]struct{}{
	"the": {}, "and": {}, "for": {}, "are": {}, "but": {}, "not": {},
	"you": {}, "all": {}, "can": {}, "was": {}, "has": {}, "have": {},
	"this": {}, "that": {}, "with": {}, "from": {}, "they": {}, "will": {},
	"would": {}, "should": {}, "could": {}, "about": {}, "into": {},
	"what": {}, "when": {}, "where": {}, "which": {}, "while": {}, "does": {},
	"add": {}, "please": {},
}
