package scan

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitExactWindows(t *testing.T) {
	content := strings.Repeat("a", 10)
	chunks := Split(content, 5)

	require.Len(t, chunks, 2)
	assert.Equal(t, strings.Repeat("a", 5), chunks[0])
	assert.Equal(t, strings.Repeat("a", 5), chunks[1])
	assert.Equal(t, content, strings.Join(chunks, ""))
}

func TestSplitShortFinalChunk(t *testing.T) {
	content := strings.Repeat("x", 12)
	chunks := Split(content, 5)

	require.Len(t, chunks, 3)
	assert.Len(t, chunks[0], 5)
	assert.Len(t, chunks[1], 5)
	assert.Len(t, chunks[2], 2)
	assert.Equal(t, content, strings.Join(chunks, ""))
}

func TestSplitContentWithinLimit(t *testing.T) {
	chunks := Split("short", 5000)
	require.Len(t, chunks, 1)
	assert.Equal(t, "short", chunks[0])
}

func TestSplitEmpty(t *testing.T) {
	assert.Nil(t, Split("", 5000))
}

func TestSplitConcatenationInvariant(t *testing.T) {
	// Every split must reassemble to the original with no gaps or overlap.
	for _, n := range []int{1, 4999, 5000, 5001, 12345} {
		content := strings.Repeat("b", n)
		chunks := Split(content, DefaultChunkSize)
		assert.Equal(t, content, strings.Join(chunks, ""), "length %d", n)
		for i, c := range chunks[:len(chunks)-1] {
			assert.Len(t, c, DefaultChunkSize, "length %d chunk %d", n, i)
		}
	}
}
