package buffer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithCapacity(t *testing.T) {
	b := WithCapacity(256)
	assert.Len(t, b.U8(), 256)
	assert.Len(t, b.U16(), 256)
}

func TestSetLenAndReset(t *testing.T) {
	b := WithCapacity(1024)
	b.SetLen(64)
	assert.Len(t, b.U8(), 64)
	assert.Len(t, b.U16(), 64)

	b.Reset()
	assert.Len(t, b.U8(), 1024)
	assert.Len(t, b.U16(), 1024)
}

func TestSetLenCappedAtCapacity(t *testing.T) {
	b := WithCapacity(16)
	b.SetLen(1000)
	assert.Len(t, b.U8(), 16)
	assert.Len(t, b.U16(), 16)
}

func TestEncodeUTF16NullTerminated(t *testing.T) {
	b := WithCapacity(8)
	out := b.EncodeUTF16("C:")
	assert.Equal(t, []uint16{'C', ':', 0}, out)
}
