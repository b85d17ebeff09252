package sync

import (
	"github.com/arnevoss/blocksync/models"
	"github.com/arnevoss/blocksync/rollinghash"
)

// GenerateDelta scans data against signature, alternating between an aligned
// probe (a fresh weak hash over a block-aligned window) and a rolling search
// (a byte-by-byte advance accumulating literal bytes until the next match or
// the end of data). It never mutates data: the scan position p is an index,
// never a buffer popped from the front.
func GenerateDelta(data []byte, signature models.Signature) models.Delta {
	n := len(data)
	blockSize := int(signature.BlockSize)
	delta := models.Delta{}
	p := 0

	for p < n {
		end := min(p+blockSize, n)
		k := end - p
		window := data[p:end]

		if index, ok := probe(signature, weakDigest(window), window); ok {
			delta = append(delta, models.Match(index))
			p += k
			if k < blockSize {
				// Window was short, so p == n: there is nothing left to
				// scan.
				break
			}
			continue
		}

		p, delta = rollingSearch(data, signature, p, blockSize, window, delta)
	}

	return delta
}

// weakDigest computes the weak hash of window from scratch, with no rolling
// state carried in from a prior window.
func weakDigest(window []byte) uint32 {
	hash := rollinghash.New()
	hash.Append(window)
	return hash.Digest()
}

// probe looks up weak in the signature's table and returns the index of the
// first bucket entry (in insertion order) whose strong hash matches window.
func probe(signature models.Signature, weak uint32, window []byte) (uint32, bool) {
	bucket, ok := signature.Table[weak]
	if !ok || len(bucket) == 0 {
		return 0, false
	}

	strong := StrongHash(window)
	for _, record := range bucket {
		if record.Strong == strong {
			return record.Index, true
		}
	}
	return 0, false
}

// rollingSearch runs the byte-by-byte rolling phase starting at offset p,
// whose aligned probe over initialWindow already missed. It returns the scan
// position to resume aligned probing from and the delta with any emitted
// Literal/Match records appended.
func rollingSearch(data []byte, signature models.Signature, p, blockSize int, initialWindow []byte, delta models.Delta) (int, models.Delta) {
	n := len(data)

	hash := rollinghash.New()
	hash.Append(initialWindow)

	var literal []byte

	// p < n always holds here: the aligned probe only enters rolling search
	// when its window was non-empty, so there is always at least one byte
	// left to roll past before we need to check for end of input again.
	for {
		prev := data[p]
		var next *byte
		if p+blockSize < n {
			nextByte := data[p+blockSize]
			next = &nextByte
		}

		literal = append(literal, prev)
		hash.Roll(prev, next)
		p++

		end := min(p+blockSize, n)
		k := end - p
		if k == 0 {
			return p, appendLiteral(delta, literal)
		}

		window := data[p:end]
		if index, ok := probe(signature, hash.Digest(), window); ok {
			delta = appendLiteral(delta, literal)
			delta = append(delta, models.Match(index))
			p += k
			return p, delta
		}
	}
}

// appendLiteral appends a Literal record for buf to delta, unless buf is
// empty: a Literal is only ever emitted with a non-empty payload.
func appendLiteral(delta models.Delta, buf []byte) models.Delta {
	if len(buf) == 0 {
		return delta
	}
	return append(delta, models.NewLiteral(buf))
}
