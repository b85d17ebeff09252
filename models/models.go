// Package models defines the data model shared by the signature builder,
// the delta scanner, and the codec: the Signature produced from an old file
// and the Delta produced from a new file plus a Signature.
package models

// BlockRecord identifies one block of the old file inside a Signature.
// Index is the zero-based position of the block; Strong is the SHA-256
// digest of that block's bytes.
type BlockRecord struct {
	Index  uint32
	Strong [32]byte
}

// Signature is the in-memory index built over the old file: a block size
// plus a mapping from weak hash to every block whose weak hash collides on
// that key, in ascending-index (insertion) order.
type Signature struct {
	BlockSize uint32
	Table     map[uint32][]BlockRecord
}

// NewSignature returns an empty Signature with the given block size.
func NewSignature(blockSize uint32) Signature {
	return Signature{
		BlockSize: blockSize,
		Table:     make(map[uint32][]BlockRecord),
	}
}

// Add records a block under its weak hash key, preserving insertion order
// within the bucket so that "first candidate wins" matching is deterministic.
func (s Signature) Add(weak uint32, record BlockRecord) {
	s.Table[weak] = append(s.Table[weak], record)
}

// BlockCount returns K, the total number of blocks indexed across every
// bucket of the table.
func (s Signature) BlockCount() int {
	count := 0
	for _, bucket := range s.Table {
		count += len(bucket)
	}
	return count
}

// DeltaKind distinguishes the two DeltaRecord variants.
type DeltaKind uint8

const (
	// KindMatch records a reference to a block of the old file.
	KindMatch DeltaKind = iota
	// KindLiteral records a run of bytes that match nothing in the old file.
	KindLiteral
)

// DeltaRecord is a tagged union: either a Match(index) into the old file's
// blocks, or a Literal(bytes) run that must be copied verbatim.
type DeltaRecord struct {
	Kind    DeltaKind
	Index   uint32
	Literal []byte
}

// Match builds a DeltaRecord referencing block `index` of the old file.
func Match(index uint32) DeltaRecord {
	return DeltaRecord{Kind: KindMatch, Index: index}
}

// NewLiteral builds a DeltaRecord carrying a literal byte run. The delta
// scanner only emits a Literal with a non-empty payload; NewLiteral itself
// accepts an empty run (the codec decodes a zero-length Literal through it).
func NewLiteral(data []byte) DeltaRecord {
	return DeltaRecord{Kind: KindLiteral, Literal: data}
}

// Delta is the ordered sequence of records that reconstructs the new file
// from the old file's blocks and the literal runs.
type Delta []DeltaRecord
