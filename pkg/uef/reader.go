package uef

import (
	"encoding/binary"
	"fmt"
)

// reader is a bounded little-endian cursor over an in-memory buffer.
// Every read checks the remaining byte count before touching the data;
// a shortfall surfaces as ErrTruncated without advancing the cursor.
type reader struct {
	data []byte
	off  int
}

func newReader(data []byte) *reader {
	return &reader{data: data}
}

// remaining returns the number of unread bytes.
func (r *reader) remaining() int {
	return len(r.data) - r.off
}

// readN returns the next n bytes and advances the cursor. The returned
// slice aliases the underlying buffer; callers copy before storing.
func (r *reader) readN(n int) ([]byte, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: negative length %d at offset %d", ErrTruncated, n, r.off)
	}
	if n > r.remaining() {
		return nil, fmt.Errorf("%w: need %d bytes at offset %d, have %d", ErrTruncated, n, r.off, r.remaining())
	}
	b := r.data[r.off : r.off+n]
	r.off += n
	return b, nil
}

// skip advances the cursor by n bytes without decoding them.
func (r *reader) skip(n int) error {
	_, err := r.readN(n)
	return err
}

// sub carves the next n bytes into an independent reader and advances
// this one past them, whatever the carved reader ends up consuming.
func (r *reader) sub(n int) (*reader, error) {
	b, err := r.readN(n)
	if err != nil {
		return nil, err
	}
	return &reader{data: b}, nil
}

func (r *reader) readU8() (uint8, error) {
	b, err := r.readN(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (r *reader) readBool() (bool, error) {
	v, err := r.readU8()
	return v != 0, err
}

func (r *reader) readU32() (uint32, error) {
	b, err := r.readN(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (r *reader) readI32() (int32, error) {
	v, err := r.readU32()
	return int32(v), err
}

// readString reads an int32 length prefix followed by that many bytes.
// Strings are not null-terminated on the wire.
func (r *reader) readString() (string, error) {
	n, err := r.readI32()
	if err != nil {
		return "", err
	}
	b, err := r.readN(int(n))
	if err != nil {
		return "", err
	}
	return string(b), nil
}
