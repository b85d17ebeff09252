// Package codec implements the deterministic, self-describing binary
// encoding for Signature and Delta artifacts. The layout is little-endian
// throughout: a Signature is a block_size followed by its weak-hash buckets
// sorted ascending by key (so encoding the same Signature twice always
// produces the same bytes, even though Go map iteration order is not
// itself stable); a Delta is a length-prefixed sequence of tagged records,
// tag 0x00 for Match(index) and 0x01 for Literal(length, bytes).
package codec

import (
	"encoding/binary"
	"io"
	"sort"

	"github.com/pkg/errors"

	"github.com/arnevoss/blocksync/constants"
	"github.com/arnevoss/blocksync/models"
)

const (
	tagMatch   byte = 0x00
	tagLiteral byte = 0x01
)

var order = binary.LittleEndian

// EncodeSignature writes sig to w.
func EncodeSignature(w io.Writer, sig models.Signature) error {
	if err := writeUint32(w, sig.BlockSize); err != nil {
		return errors.Wrap(err, constants.UnableToEncodeSignatureError)
	}

	keys := sortedKeys(sig.Table)
	if err := writeUint32(w, uint32(len(keys))); err != nil {
		return errors.Wrap(err, constants.UnableToEncodeSignatureError)
	}

	for _, key := range keys {
		bucket := sig.Table[key]

		if err := writeUint32(w, key); err != nil {
			return errors.Wrap(err, constants.UnableToEncodeSignatureError)
		}
		if err := writeUint32(w, uint32(len(bucket))); err != nil {
			return errors.Wrap(err, constants.UnableToEncodeSignatureError)
		}

		for _, record := range bucket {
			if err := writeUint32(w, record.Index); err != nil {
				return errors.Wrap(err, constants.UnableToEncodeSignatureError)
			}
			if _, err := w.Write(record.Strong[:]); err != nil {
				return errors.Wrap(err, constants.UnableToEncodeSignatureError)
			}
		}
	}

	return nil
}

// DecodeSignature reads a Signature previously written by EncodeSignature.
func DecodeSignature(r io.Reader) (models.Signature, error) {
	blockSize, err := readUint32(r)
	if err != nil {
		return models.Signature{}, errors.Wrap(err, constants.UnableToDecodeSignatureError)
	}

	keyCount, err := readUint32(r)
	if err != nil {
		return models.Signature{}, errors.Wrap(err, constants.UnableToDecodeSignatureError)
	}

	signature := models.NewSignature(blockSize)
	for i := uint32(0); i < keyCount; i++ {
		key, err := readUint32(r)
		if err != nil {
			return models.Signature{}, errors.Wrap(err, constants.UnableToDecodeSignatureError)
		}

		recordCount, err := readUint32(r)
		if err != nil {
			return models.Signature{}, errors.Wrap(err, constants.UnableToDecodeSignatureError)
		}

		for j := uint32(0); j < recordCount; j++ {
			index, err := readUint32(r)
			if err != nil {
				return models.Signature{}, errors.Wrap(err, constants.UnableToDecodeSignatureError)
			}

			var strong [32]byte
			if _, err := io.ReadFull(r, strong[:]); err != nil {
				return models.Signature{}, errors.Wrap(err, constants.UnableToDecodeSignatureError)
			}

			signature.Add(key, models.BlockRecord{Index: index, Strong: strong})
		}
	}

	return signature, nil
}

// EncodeDelta writes delta to w.
func EncodeDelta(w io.Writer, delta models.Delta) error {
	if err := writeUint32(w, uint32(len(delta))); err != nil {
		return errors.Wrap(err, constants.UnableToEncodeDeltaError)
	}

	for _, record := range delta {
		switch record.Kind {
		case models.KindMatch:
			if _, err := w.Write([]byte{tagMatch}); err != nil {
				return errors.Wrap(err, constants.UnableToEncodeDeltaError)
			}
			if err := writeUint32(w, record.Index); err != nil {
				return errors.Wrap(err, constants.UnableToEncodeDeltaError)
			}
		case models.KindLiteral:
			if _, err := w.Write([]byte{tagLiteral}); err != nil {
				return errors.Wrap(err, constants.UnableToEncodeDeltaError)
			}
			if err := writeUint32(w, uint32(len(record.Literal))); err != nil {
				return errors.Wrap(err, constants.UnableToEncodeDeltaError)
			}
			if _, err := w.Write(record.Literal); err != nil {
				return errors.Wrap(err, constants.UnableToEncodeDeltaError)
			}
		default:
			return errors.Errorf("%s: unknown delta record tag", constants.UnableToEncodeDeltaError)
		}
	}

	return nil
}

// DecodeDelta reads a Delta previously written by EncodeDelta.
func DecodeDelta(r io.Reader) (models.Delta, error) {
	recordCount, err := readUint32(r)
	if err != nil {
		return nil, errors.Wrap(err, constants.UnableToDecodeDeltaError)
	}

	delta := make(models.Delta, 0, recordCount)
	for i := uint32(0); i < recordCount; i++ {
		tag := make([]byte, 1)
		if _, err := io.ReadFull(r, tag); err != nil {
			return nil, errors.Wrap(err, constants.UnableToDecodeDeltaError)
		}

		switch tag[0] {
		case tagMatch:
			index, err := readUint32(r)
			if err != nil {
				return nil, errors.Wrap(err, constants.UnableToDecodeDeltaError)
			}
			delta = append(delta, models.Match(index))
		case tagLiteral:
			length, err := readUint32(r)
			if err != nil {
				return nil, errors.Wrap(err, constants.UnableToDecodeDeltaError)
			}
			data := make([]byte, length)
			if _, err := io.ReadFull(r, data); err != nil {
				return nil, errors.Wrap(err, constants.UnableToDecodeDeltaError)
			}
			delta = append(delta, models.NewLiteral(data))
		default:
			return nil, errors.Errorf("%s: unrecognised tag %#x", constants.UnableToDecodeDeltaError, tag[0])
		}
	}

	return delta, nil
}

func writeUint32(w io.Writer, v uint32) error {
	var buf [4]byte
	order.PutUint32(buf[:], v)
	_, err := w.Write(buf[:])
	return err
}

func readUint32(r io.Reader) (uint32, error) {
	var buf [4]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return order.Uint32(buf[:]), nil
}

func sortedKeys(table map[uint32][]models.BlockRecord) []uint32 {
	keys := make([]uint32, 0, len(table))
	for key := range table {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
