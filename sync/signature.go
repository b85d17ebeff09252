package sync

import (
	"github.com/arnevoss/blocksync/models"
	"github.com/arnevoss/blocksync/rollinghash"
)

// BuildSignature walks the old file in disjoint, contiguous blocks of
// ChooseBlockSize(len(data)) bytes and records each block's weak and strong
// hash. The final block may be shorter than the block size; it is still
// indexed and hashed. Each block starts from a fresh, zero RollingHash — the
// builder never reuses rolling state across blocks.
func BuildSignature(data []byte) models.Signature {
	blockSize := ChooseBlockSize(int64(len(data)))
	signature := models.NewSignature(blockSize)

	var index uint32
	for offset := 0; offset < len(data); offset += int(blockSize) {
		end := offset + int(blockSize)
		if end > len(data) {
			end = len(data)
		}
		block := data[offset:end]

		hash := rollinghash.New()
		hash.Append(block)

		signature.Add(hash.Digest(), models.BlockRecord{
			Index:  index,
			Strong: StrongHash(block),
		})
		index++
	}

	return signature
}
