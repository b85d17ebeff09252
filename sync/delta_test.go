package sync

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arnevoss/blocksync/models"
)

// expand reconstructs the new file's bytes from old and a Delta scanned
// against old's signature, used here only to assert the "Delta soundness"
// property: it is not part of the public API (patch/apply is out of scope).
func expand(old []byte, blockSize uint32, delta models.Delta) []byte {
	var out []byte
	for _, record := range delta {
		if record.Kind == models.KindMatch {
			start := int(record.Index) * int(blockSize)
			end := start + int(blockSize)
			if end > len(old) {
				end = len(old)
			}
			out = append(out, old[start:end]...)
		} else {
			out = append(out, record.Literal...)
		}
	}
	return out
}

func TestGenerateDelta(t *testing.T) {
	t.Run("empty new file against a non-empty old file yields an empty delta", func(t *testing.T) {
		// Setup
		old := []byte("hello world")
		signature := BuildSignature(old)

		// Run
		delta := GenerateDelta([]byte{}, signature)

		// Verify
		require.Empty(t, delta)
	})

	t.Run("non-empty new file against an empty old file yields one literal", func(t *testing.T) {
		// Setup
		signature := BuildSignature([]byte{})
		require.Equal(t, 0, signature.BlockCount())

		// Run
		delta := GenerateDelta([]byte("abc"), signature)

		// Verify
		require.Len(t, delta, 1)
		require.Equal(t, models.KindLiteral, delta[0].Kind)
		require.Equal(t, []byte("abc"), delta[0].Literal)
	})

	t.Run("identity: new equals old yields only ascending Match records", func(t *testing.T) {
		// Setup: each of the 64 blocks carries distinct content. Match
		// selection picks the first bucket entry whose strong hash agrees,
		// so ascending indices are only guaranteed here because no two
		// blocks are byte-identical (see the disjoint edit test below for
		// the uniform-content case).
		var old []byte
		for i := 0; i < 64; i++ {
			old = append(old, bytes.Repeat([]byte{byte(i)}, 64)...)
		}
		signature := BuildSignature(old)

		// Run
		delta := GenerateDelta(old, signature)

		// Verify
		require.Len(t, delta, 64)
		for i, record := range delta {
			require.Equal(t, models.KindMatch, record.Kind)
			require.Equal(t, uint32(i), record.Index)
		}
		require.Equal(t, old, expand(old, signature.BlockSize, delta))
	})

	t.Run("prefix insertion: new is old prefixed with a short literal", func(t *testing.T) {
		// Setup
		old := make([]byte, 4096)
		copy(old, []byte("the quick brown fox"))
		signature := BuildSignature(old)

		newData := append([]byte("XYZ"), old...)

		// Run
		delta := GenerateDelta(newData, signature)

		// Verify
		require.NotEmpty(t, delta)
		require.Equal(t, models.KindLiteral, delta[0].Kind)
		require.Equal(t, []byte("XYZ"), delta[0].Literal)
		for _, record := range delta[1:] {
			require.Equal(t, models.KindMatch, record.Kind)
		}
		require.Equal(t, newData, expand(old, signature.BlockSize, delta))
	})

	t.Run("mid-file replacement: matches, one literal, matches", func(t *testing.T) {
		// Setup: old is exactly 4096 bytes (block size pinned at 64) split
		// into two 2048-byte, block-aligned halves so the replacement below
		// lands cleanly on a block boundary.
		old := append(bytes.Repeat([]byte{'A'}, 2048), bytes.Repeat([]byte{'B'}, 2048)...)
		signature := BuildSignature(old)
		require.Equal(t, uint32(64), signature.BlockSize)

		newData := append(append(bytes.Repeat([]byte{'A'}, 2048), bytes.Repeat([]byte{'Z'}, 100)...), bytes.Repeat([]byte{'B'}, 2048)...)

		// Run
		delta := GenerateDelta(newData, signature)

		// Verify
		require.Equal(t, newData, expand(old, signature.BlockSize, delta))

		sawLiteral := false
		for _, record := range delta {
			if record.Kind == models.KindLiteral {
				require.False(t, sawLiteral, "expected exactly one literal run")
				sawLiteral = true
				require.Equal(t, bytes.Repeat([]byte{'Z'}, 100), record.Literal)
			}
		}
		require.True(t, sawLiteral)
	})

	t.Run("disjoint edit: appended bytes surface as a trailing literal", func(t *testing.T) {
		// Setup
		old := bytes.Repeat([]byte{'A'}, 4096)
		signature := BuildSignature(old)

		appended := []byte("tail bytes")
		newData := append(append([]byte{}, old...), appended...)

		// Run
		delta := GenerateDelta(newData, signature)

		// Verify
		require.Equal(t, newData, expand(old, signature.BlockSize, delta))
		last := delta[len(delta)-1]
		require.Equal(t, models.KindLiteral, last.Kind)
		require.Equal(t, appended, last.Literal)
		for _, record := range delta[:len(delta)-1] {
			require.Equal(t, models.KindMatch, record.Kind)
		}
	})

	t.Run("every Match index is within the old file's block count", func(t *testing.T) {
		// Setup
		old := bytes.Repeat([]byte{'M'}, 10000)
		signature := BuildSignature(old)
		newData := append(old[2000:], old[:2000]...) // rotated

		// Run
		delta := GenerateDelta(newData, signature)

		// Verify
		require.Equal(t, newData, expand(old, signature.BlockSize, delta))
		for _, record := range delta {
			if record.Kind == models.KindMatch {
				require.Less(t, int(record.Index), signature.BlockCount())
			} else {
				require.NotEmpty(t, record.Literal)
			}
		}
	})
}
