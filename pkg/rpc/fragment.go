package rpc

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// DefaultMaxFragmentSize is the default ceiling on a single RPC fragment's
// payload length. RFC 5531 record marking can in principle carry arbitrary
// sizes; the original 1 MiB default this module inherited was too small for
// legitimate NFS3 READ/WRITE replies once RPC/NFS header overhead is
// accounted for, so the default here is 64 MiB (see DESIGN.md, open
// question on fragment size). It remains configurable per Framer (Framer.MaxFragmentSize).
const DefaultMaxFragmentSize = 64 << 20

// MinFragmentPayload is the smallest legal payload: an xid (4 bytes) plus a
// message type (4 bytes).
const MinFragmentPayload = 8

var (
	// ErrFragmentTooLong is returned when a fragment header declares a
	// payload larger than the configured maximum.
	ErrFragmentTooLong = errors.New("rpc: fragment too long")
	// ErrFragmentTooShort is returned when a fragment's declared payload is
	// smaller than MinFragmentPayload.
	ErrFragmentTooShort = errors.New("rpc: fragment payload shorter than xid+type")
)

// FragmentHeader is the parsed form of the 4-byte record-marking header:
// the top bit is the last-fragment flag, the low 31 bits are the payload
// length in bytes.
type FragmentHeader struct {
	Last   bool
	Length uint32
}

// DecodeFragmentHeader parses and validates a 4-byte fragment header
// against max. It consumes nothing itself (the caller's framing loop,
// Framer.Decode, tracks its own offset) and exists purely to centralize the
// bit-layout knowledge and the size-validation policy in one place.
func DecodeFragmentHeader(buf [4]byte, max uint32) (FragmentHeader, error) {
	raw := binary.BigEndian.Uint32(buf[:])
	h := FragmentHeader{
		Last:   raw&0x80000000 != 0,
		Length: raw & 0x7FFFFFFF,
	}
	if h.Length < MinFragmentPayload {
		return h, fmt.Errorf("%w: %d bytes", ErrFragmentTooShort, h.Length)
	}
	if h.Length > max {
		return h, fmt.Errorf("%w: %d bytes (max %d)", ErrFragmentTooLong, h.Length, max)
	}
	return h, nil
}

// EncodeFragmentHeader writes the 4-byte header for a single-fragment
// message of the given payload length, always setting the last-fragment
// bit: this module never emits multi-fragment messages on encode, only
// reassembles them on decode (the common case, per spec §4.D).
func EncodeFragmentHeader(length uint32) [4]byte {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], 0x80000000|length)
	return buf
}
