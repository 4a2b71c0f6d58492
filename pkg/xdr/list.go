package xdr

// AppendList encodes items as the RFC 1813 READDIR linked-list idiom: a
// u32 "has next" flag of 1 before each element's encoding, followed by a
// terminating 0. Portmap DUMP (RFC 1833 §4, procedure 4) uses the same
// encoding for its list of mappings, so both NFS3 and portmap share this
// helper instead of duplicating the loop.
func AppendList[T any](buf []byte, items []T, encode func([]byte, T) []byte) []byte {
	for _, item := range items {
		buf = AppendUint32(buf, 1)
		buf = encode(buf, item)
	}
	buf = AppendUint32(buf, 0)
	return buf
}

// DecodeList decodes the has-next/terminator list encoding AppendList
// produces. It reads a u32 has-next flag before each element and stops at
// 0; any non-zero flag is taken as "another element follows".
func DecodeList[T any](c *Cursor, decode func(*Cursor) (T, error)) ([]T, error) {
	var items []T
	for {
		hasNext, err := ReadUint32(c)
		if err != nil {
			return nil, err
		}
		if hasNext == 0 {
			return items, nil
		}
		item, err := decode(c)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
}
