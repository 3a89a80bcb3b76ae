// Package tokenizer provides the pipeline.TokenEstimator implementations
// consumed by the candidate preparer and the engine's off-mode token-usage
// count. Two implementations are provided:
//
//   - cl100k_base: the BPE encoding used by GPT-4/Claude-family tokenizers,
//     backed by pkoukk/tiktoken-go.
//   - none: a fast character-count estimator (len/4), used when BPE data is
//     unavailable or speed is preferred over exactness.
//
// Both implementations are goroutine-safe.
package tokenizer

import "fmt"

// Supported estimator names.
const (
	// NameCL100K is the cl100k_base BPE encoding.
	NameCL100K = "cl100k_base"

	// NameNone selects the character-count estimator: len(text) / 4.
	NameNone = "none"
)

// ErrUnknownEstimator is returned by New when an unrecognised name is given.
var ErrUnknownEstimator = fmt.Errorf("unknown token estimator")

// Estimator implements pipeline.TokenEstimator. It wraps one of two backend
// strategies behind a single concrete type.
type Estimator struct {
	name     string
	tiktoken *tiktokenBackend
	charOnly bool
}

// New returns an Estimator for the given encoding name. Passing an empty
// string returns the default cl100k_base estimator; if the BPE dictionary
// cannot be loaded (e.g. no network access and no local cache), callers
// should fall back to New(NameNone), which never fails.
func New(name string) (*Estimator, error) {
	if name == "" {
		name = NameCL100K
	}

	switch name {
	case NameCL100K:
		b, err := newTiktokenBackend(name)
		if err != nil {
			return nil, err
		}
		return &Estimator{name: name, tiktoken: b}, nil
	case NameNone:
		return &Estimator{name: NameNone, charOnly: true}, nil
	default:
		return nil, fmt.Errorf("%w: %q (supported: cl100k_base, none)", ErrUnknownEstimator, name)
	}
}

// Estimate returns the estimated number of tokens in text. Returns 0 for
// empty text. Safe for concurrent use.
func (e *Estimator) Estimate(text string) int {
	if e.charOnly {
		return len(text) / 4
	}
	return e.tiktoken.count(text)
}

// Name returns the estimator's encoding name (e.g. "cl100k_base", "none").
func (e *Estimator) Name() string {
	return e.name
}
