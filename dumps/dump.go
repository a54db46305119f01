package dumps

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math/big"
	"slices"

	"github.com/reusee/hintvm/memories"
)

const valueSize = 32

var ErrTruncated = errors.New("truncated dump")

func putValue(buf []byte, value *big.Int) {
	reduced := new(big.Int).Mod(value, memories.Prime)
	reduced.FillBytes(buf)
	slices.Reverse(buf)
}

// Write encodes cells as (u64 little endian address, 32 byte little endian value) records.
func Write(w io.Writer, cells []memories.RelocatedCell) error {
	bw := bufio.NewWriter(w)
	var record [8 + valueSize]byte
	for _, cell := range cells {
		binary.LittleEndian.PutUint64(record[:8], uint64(cell.Index))
		putValue(record[8:], cell.Value)
		if _, err := bw.Write(record[:]); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Read decodes what Write encoded.
func Read(r io.Reader) (ret []memories.RelocatedCell, err error) {
	br := bufio.NewReader(r)
	var record [8 + valueSize]byte
	for {
		_, err := io.ReadFull(br, record[:])
		if errors.Is(err, io.EOF) {
			return ret, nil
		}
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, fmt.Errorf("%w: after %d cells", ErrTruncated, len(ret))
		}
		if err != nil {
			return nil, err
		}
		value := record[8:]
		slices.Reverse(value)
		ret = append(ret, memories.RelocatedCell{
			Index: int(binary.LittleEndian.Uint64(record[:8])),
			Value: new(big.Int).SetBytes(value),
		})
	}
}

// WriteValues encodes only the values, 32 little endian bytes each, in cell order.
func WriteValues(w io.Writer, cells []memories.RelocatedCell) error {
	bw := bufio.NewWriter(w)
	var buf [valueSize]byte
	for _, cell := range cells {
		putValue(buf[:], cell.Value)
		if _, err := bw.Write(buf[:]); err != nil {
			return err
		}
	}
	return bw.Flush()
}
