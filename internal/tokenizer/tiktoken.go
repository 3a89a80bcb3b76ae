package tokenizer

import (
	"fmt"

	tiktoken "github.com/pkoukk/tiktoken-go"
)

// tiktokenBackend wraps pkoukk/tiktoken-go's BPE encoder. The encoding is
// initialised once on construction; count is goroutine-safe because
// tiktoken-go's Encode method does not mutate shared state.
type tiktokenBackend struct {
	enc *tiktoken.Tiktoken
}

// newTiktokenBackend loads the named BPE encoding (e.g. "cl100k_base") from
// disk or the TIKTOKEN_CACHE_DIR cache. An error is returned if the encoding
// cannot be loaded, so callers can fall back to the char-count estimator.
func newTiktokenBackend(encodingName string) (*tiktokenBackend, error) {
	enc, err := tiktoken.GetEncoding(encodingName)
	if err != nil {
		return nil, fmt.Errorf("initialising tiktoken encoding %q: %w", encodingName, err)
	}
	return &tiktokenBackend{enc: enc}, nil
}

// count returns the exact number of BPE tokens in text. Returns 0 for empty
// text. Safe for concurrent use.
func (b *tiktokenBackend) count(text string) int {
	if text == "" {
		return 0
	}
	return len(b.enc.Encode(text, nil, nil))
}
