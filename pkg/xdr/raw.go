package xdr

import "encoding/binary"

// ReadUint8 reads a single byte. Unlike the other Read* functions this has
// no XDR counterpart (RFC 4506 has no 1-byte primitive); it exists because
// non-XDR protocols sharing this module's Cursor/ParseUnwinding idiom — the
// SOCKSv5 handshake in particular — still need raw, unpadded byte access.
func ReadUint8(c *Cursor) (byte, error) {
	b, err := c.take(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// ReadUint16 reads a big-endian, unpadded 2-byte integer (SOCKS ports).
func ReadUint16(c *Cursor) (uint16, error) {
	b, err := c.take(2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b), nil
}

// ReadBytes reads exactly n unpadded bytes, returning a fresh copy.
func ReadBytes(c *Cursor, n int) ([]byte, error) {
	b, err := c.take(n)
	if err != nil {
		return nil, err
	}
	cp := make([]byte, n)
	copy(cp, b)
	return cp, nil
}

// AppendUint8 appends a single byte.
func AppendUint8(buf []byte, v byte) []byte {
	return append(buf, v)
}

// AppendUint16 appends a big-endian, unpadded 2-byte integer.
func AppendUint16(buf []byte, v uint16) []byte {
	var tmp [2]byte
	binary.BigEndian.PutUint16(tmp[:], v)
	return append(buf, tmp[:]...)
}
