package rpc

// Framer reassembles one or more RPC record-marking fragments into a
// complete message. It is the component B/D byte-to-message decoder: given
// the bytes accumulated so far, it either returns a complete message and
// how many bytes it consumed, or reports that more data is needed without
// having consumed (or otherwise disturbed) anything.
type Framer struct {
	// MaxFragmentSize bounds each individual fragment's declared payload
	// length. Zero means DefaultMaxFragmentSize.
	MaxFragmentSize uint32
}

func (f *Framer) maxSize() uint32 {
	if f.MaxFragmentSize == 0 {
		return DefaultMaxFragmentSize
	}
	return f.MaxFragmentSize
}

// Decode implements the byte-to-message framing contract (spec §4.B):
// decode(buf) -> Option<Message>. ok is false when buf does not yet hold a
// complete message; in that case consumed is always 0 and buf is untouched,
// so the caller can accumulate more bytes and retry. err is non-nil only
// for a malformed fragment header (too long/too short), which is a fatal,
// channel-closing condition, never a "need more data" signal.
func (f *Framer) Decode(buf []byte) (msg []byte, consumed int, ok bool, err error) {
	max := f.maxSize()
	var payload []byte
	offset := 0

	for {
		if len(buf)-offset < 4 {
			return nil, 0, false, nil
		}
		var hdrBytes [4]byte
		copy(hdrBytes[:], buf[offset:offset+4])

		hdr, herr := DecodeFragmentHeader(hdrBytes, max)
		if herr != nil {
			return nil, 0, false, herr
		}

		if len(buf)-offset-4 < int(hdr.Length) {
			return nil, 0, false, nil
		}

		payload = append(payload, buf[offset+4:offset+4+int(hdr.Length)]...)
		offset += 4 + int(hdr.Length)

		if hdr.Last {
			return payload, offset, true, nil
		}
		// More fragments follow; loop to reassemble them. The common case
		// is a single fragment, so this path is rarely taken in practice.
	}
}

// EncodeMessage frames payload as a single last-fragment message: a 4-byte
// header followed by the payload bytes, with no further padding (RPC
// record marking is not 4-byte aligned beyond the header itself).
func EncodeMessage(payload []byte) []byte {
	hdr := EncodeFragmentHeader(uint32(len(payload)))
	out := make([]byte, 0, 4+len(payload))
	out = append(out, hdr[:]...)
	out = append(out, payload...)
	return out
}
