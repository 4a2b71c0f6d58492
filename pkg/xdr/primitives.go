package xdr

import (
	"encoding/binary"
	"fmt"
	"unicode/utf8"
)

// ReadUint32 reads a big-endian u32, failing with ErrShortBuffer if fewer
// than 4 bytes remain.
func ReadUint32(c *Cursor) (uint32, error) {
	b, err := c.take(4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b), nil
}

// ReadUint64 reads a big-endian u64.
func ReadUint64(c *Cursor) (uint64, error) {
	b, err := c.take(8)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(b), nil
}

// ReadInt32 reads a big-endian, two's-complement i32 (used for MOUNT auth
// flavor lists and similar signed wire fields).
func ReadInt32(c *Cursor) (int32, error) {
	v, err := ReadUint32(c)
	return int32(v), err
}

// fillBytes returns the number of zero padding bytes needed to bring n up
// to the next multiple of 4, per RFC 4506 §3.9/3.10.
func fillBytes(n int) int {
	return (4 - (n % 4)) % 4
}

// ReadBlob reads a u32 length L followed by L bytes and (4-L%4)%4 zero fill
// bytes, returning the L data bytes without the padding. It does not
// validate that the fill bytes are actually zero (writers must produce
// zero fill; readers are lenient per the usual XDR convention).
func ReadBlob(c *Cursor) ([]byte, error) {
	length, err := ReadUint32(c)
	if err != nil {
		return nil, err
	}
	data, err := c.take(int(length))
	if err != nil {
		return nil, err
	}
	if _, err := c.take(fillBytes(int(length))); err != nil {
		return nil, err
	}
	return data, nil
}

// ReadBlobMax is ReadBlob with an upper bound on the declared length,
// protecting callers from a hostile length field driving an enormous
// allocation before the short-buffer check would otherwise catch it.
func ReadBlobMax(c *Cursor, max int) ([]byte, error) {
	save := c.pos
	length, err := ReadUint32(c)
	if err != nil {
		return nil, err
	}
	if int(length) > max {
		c.pos = save
		return nil, fmt.Errorf("xdr: blob length %d exceeds max %d", length, max)
	}
	c.pos = save
	return ReadBlob(c)
}

// ReadString reads a blob and validates it as UTF-8.
func ReadString(c *Cursor) (string, error) {
	b, err := ReadBlob(c)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", fmt.Errorf("xdr: invalid utf8 string")
	}
	return string(b), nil
}

// ReadOptional reads a u32 discriminator (0 = absent, 1 = present,
// anything else an error) and, if present, invokes f to decode the value.
func ReadOptional[T any](c *Cursor, f func(*Cursor) (T, error)) (*T, error) {
	disc, err := ReadUint32(c)
	if err != nil {
		return nil, err
	}
	switch disc {
	case 0:
		return nil, nil
	case 1:
		v, err := f(c)
		if err != nil {
			return nil, err
		}
		return &v, nil
	default:
		return nil, fmt.Errorf("xdr: invalid optional discriminator %d", disc)
	}
}

// --- Writers ---
// Writers append to a growable []byte rather than an io.Writer: every
// encode path in this module builds one complete message in memory before
// handing it to the record-marking layer, so there is no streaming writer
// to support and no benefit to the extra indirection.

// AppendUint32 appends a big-endian u32.
func AppendUint32(buf []byte, v uint32) []byte {
	var tmp [4]byte
	binary.BigEndian.PutUint32(tmp[:], v)
	return append(buf, tmp[:]...)
}

// AppendUint64 appends a big-endian u64.
func AppendUint64(buf []byte, v uint64) []byte {
	var tmp [8]byte
	binary.BigEndian.PutUint64(tmp[:], v)
	return append(buf, tmp[:]...)
}

// AppendInt32 appends a signed i32.
func AppendInt32(buf []byte, v int32) []byte {
	return AppendUint32(buf, uint32(v))
}

// AppendBlob appends a length-prefixed, zero-padded opaque blob.
func AppendBlob(buf []byte, data []byte) []byte {
	buf = AppendUint32(buf, uint32(len(data)))
	buf = append(buf, data...)
	for range fillBytes(len(data)) {
		buf = append(buf, 0)
	}
	return buf
}

// AppendString appends a string as a length-prefixed, zero-padded blob.
func AppendString(buf []byte, s string) []byte {
	return AppendBlob(buf, []byte(s))
}

// AppendOptional appends the present/absent discriminator and, if present,
// the encoded value.
func AppendOptional[T any](buf []byte, v *T, f func([]byte, T) []byte) []byte {
	if v == nil {
		return AppendUint32(buf, 0)
	}
	buf = AppendUint32(buf, 1)
	return f(buf, *v)
}

// PadLen returns the number of zero fill bytes a blob of length n needs, for
// callers that must account for trailing padding without copying the
// payload itself (the NFS3 READ partial-write protocol, §4.F).
func PadLen(n int) int {
	return fillBytes(n)
}
