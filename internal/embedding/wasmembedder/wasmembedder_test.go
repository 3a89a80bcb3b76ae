package wasmembedder

import (
	"context"
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnpackPtrLen(t *testing.T) {
	packed := uint64(0x00000010)<<32 | uint64(0x00000020)
	ptr, size := unpackPtrLen(packed)
	assert.Equal(t, uint32(0x10), ptr)
	assert.Equal(t, uint32(0x20), size)
}

func TestDecodeFloat32LE(t *testing.T) {
	values := []float32{1.5, -2.25, 0}
	raw := make([]byte, len(values)*4)
	for i, v := range values {
		binary.LittleEndian.PutUint32(raw[i*4:], math.Float32bits(v))
	}

	decoded := decodeFloat32LE(raw)
	assert.Equal(t, values, decoded)
}

func TestDecodeFloat32LEEmpty(t *testing.T) {
	assert.Empty(t, decodeFloat32LE(nil))
}

func TestNilEmbedderIsUnavailable(t *testing.T) {
	var e *Embedder
	assert.False(t, e.Available())
}

func TestNilEmbedderCloseIsNoop(t *testing.T) {
	var e *Embedder
	assert.NoError(t, e.Close(context.Background()))
}

func TestZeroValueEmbedderIsUnavailable(t *testing.T) {
	e := &Embedder{}
	assert.False(t, e.Available())
}
