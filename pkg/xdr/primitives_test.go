package xdr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlobRoundTripAndPadding(t *testing.T) {
	cases := [][]byte{
		{},
		{0x01},
		{0x01, 0x02},
		{0x01, 0x02, 0x03},
		{0x01, 0x02, 0x03, 0x04},
		make([]byte, 17),
	}
	for _, data := range cases {
		buf := AppendBlob(nil, data)
		assert.Equal(t, 0, len(buf)%4, "blob encoding must be 4-byte aligned")
		assert.Equal(t, 4+len(data)+PadLen(len(data)), len(buf))

		c := NewCursor(buf)
		got, err := ReadBlob(c)
		require.NoError(t, err)
		if len(data) == 0 {
			assert.Empty(t, got)
		} else {
			assert.Equal(t, data, got)
		}
		assert.Equal(t, 0, c.Len(), "cursor should consume the entire encoding")
	}
}

func TestReadBlobZeroFill(t *testing.T) {
	buf := AppendBlob(nil, []byte{0xAA, 0xBB, 0xCC})
	// Corrupt the fill byte to confirm we don't validate it (writers must
	// produce zero fill; readers are lenient, matching the XDR convention).
	buf[len(buf)-1] = 0xFF
	c := NewCursor(buf)
	got, err := ReadBlob(c)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xAA, 0xBB, 0xCC}, got)
}

func TestUnwindingOnShortBuffer(t *testing.T) {
	full := AppendBlob(AppendUint32(nil, 42), []byte("hello"))
	for n := 0; n < len(full); n++ {
		prefix := full[:n]
		c := NewCursor(prefix)
		start := c.Pos()
		_, err := ParseUnwinding(c, func(c *Cursor) (uint32, error) {
			if _, err := ReadUint32(c); err != nil {
				return 0, err
			}
			return 0, ErrShortBuffer // force failure to simulate a nested decode failing
		})
		require.Error(t, err)
		assert.Equal(t, start, c.Pos(), "cursor must rewind on any decode error")
	}
}

func TestReadOptional(t *testing.T) {
	t.Run("absent", func(t *testing.T) {
		buf := AppendUint32(nil, 0)
		c := NewCursor(buf)
		v, err := ReadOptional(c, ReadUint32)
		require.NoError(t, err)
		assert.Nil(t, v)
	})
	t.Run("present", func(t *testing.T) {
		buf := AppendUint32(AppendUint32(nil, 1), 7)
		c := NewCursor(buf)
		v, err := ReadOptional(c, ReadUint32)
		require.NoError(t, err)
		require.NotNil(t, v)
		assert.Equal(t, uint32(7), *v)
	})
	t.Run("invalid discriminator", func(t *testing.T) {
		buf := AppendUint32(nil, 2)
		c := NewCursor(buf)
		_, err := ReadOptional(c, ReadUint32)
		require.Error(t, err)
	})
}

func TestInvalidUTF8String(t *testing.T) {
	buf := AppendBlob(nil, []byte{0xff, 0xfe, 0xfd})
	c := NewCursor(buf)
	_, err := ReadString(c)
	require.Error(t, err)
}

func TestListRoundTrip(t *testing.T) {
	items := []uint32{1, 2, 3, 4, 5}
	buf := AppendList(nil, items, AppendUint32)
	c := NewCursor(buf)
	got, err := DecodeList(c, ReadUint32)
	require.NoError(t, err)
	assert.Equal(t, items, got)
	assert.Equal(t, 0, c.Len())
}

func TestEmptyListRoundTrip(t *testing.T) {
	buf := AppendList[uint32](nil, nil, AppendUint32)
	assert.Equal(t, AppendUint32(nil, 0), buf)
	c := NewCursor(buf)
	got, err := DecodeList(c, ReadUint32)
	require.NoError(t, err)
	assert.Empty(t, got)
}
