package nfs3

import (
	"fmt"

	"github.com/marmos91/netproto/pkg/xdr"
)

func decodeFileHandle(c *xdr.Cursor) (FileHandle, error) {
	b, err := xdr.ReadBlobMax(c, MaxFileHandleLen)
	if err != nil {
		return nil, err
	}
	if len(b) == 0 {
		return nil, fmt.Errorf("nfs3: empty file handle")
	}
	return FileHandle(append([]byte(nil), b...)), nil
}

func encodeFileHandle(buf []byte, h FileHandle) []byte {
	return xdr.AppendBlob(buf, h)
}

func decodeTimeVal(c *xdr.Cursor) (TimeVal, error) {
	seconds, err := xdr.ReadUint32(c)
	if err != nil {
		return TimeVal{}, err
	}
	nsec, err := xdr.ReadUint32(c)
	if err != nil {
		return TimeVal{}, err
	}
	return TimeVal{Seconds: seconds, Nanoseconds: nsec}, nil
}

func encodeTimeVal(buf []byte, t TimeVal) []byte {
	buf = xdr.AppendUint32(buf, t.Seconds)
	return xdr.AppendUint32(buf, t.Nanoseconds)
}

func decodeFileType(v uint32) (FileType, error) {
	switch FileType(v) {
	case FileTypeRegular, FileTypeDir, FileTypeBlock, FileTypeChar, FileTypeLink, FileTypeSocket, FileTypeFIFO:
		return FileType(v), nil
	default:
		return 0, fmt.Errorf("nfs3: invalid file type %d", v)
	}
}

func decodeFileAttr(c *xdr.Cursor) (FileAttr, error) {
	var a FileAttr
	typeVal, err := xdr.ReadUint32(c)
	if err != nil {
		return a, err
	}
	ft, err := decodeFileType(typeVal)
	if err != nil {
		return a, err
	}
	a.Type = ft

	if a.Mode, err = xdr.ReadUint32(c); err != nil {
		return a, err
	}
	if a.Nlink, err = xdr.ReadUint32(c); err != nil {
		return a, err
	}
	if a.UID, err = xdr.ReadUint32(c); err != nil {
		return a, err
	}
	if a.GID, err = xdr.ReadUint32(c); err != nil {
		return a, err
	}
	if a.Size, err = xdr.ReadUint64(c); err != nil {
		return a, err
	}
	if a.Used, err = xdr.ReadUint64(c); err != nil {
		return a, err
	}
	if a.Rdev.Major, err = xdr.ReadUint32(c); err != nil {
		return a, err
	}
	if a.Rdev.Minor, err = xdr.ReadUint32(c); err != nil {
		return a, err
	}
	if a.Fsid, err = xdr.ReadUint64(c); err != nil {
		return a, err
	}
	if a.FileID, err = xdr.ReadUint64(c); err != nil {
		return a, err
	}
	if a.Atime, err = decodeTimeVal(c); err != nil {
		return a, err
	}
	if a.Mtime, err = decodeTimeVal(c); err != nil {
		return a, err
	}
	if a.Ctime, err = decodeTimeVal(c); err != nil {
		return a, err
	}
	return a, nil
}

func encodeFileAttr(buf []byte, a FileAttr) []byte {
	buf = xdr.AppendUint32(buf, uint32(a.Type))
	buf = xdr.AppendUint32(buf, a.Mode)
	buf = xdr.AppendUint32(buf, a.Nlink)
	buf = xdr.AppendUint32(buf, a.UID)
	buf = xdr.AppendUint32(buf, a.GID)
	buf = xdr.AppendUint64(buf, a.Size)
	buf = xdr.AppendUint64(buf, a.Used)
	buf = xdr.AppendUint32(buf, a.Rdev.Major)
	buf = xdr.AppendUint32(buf, a.Rdev.Minor)
	buf = xdr.AppendUint64(buf, a.Fsid)
	buf = xdr.AppendUint64(buf, a.FileID)
	buf = encodeTimeVal(buf, a.Atime)
	buf = encodeTimeVal(buf, a.Mtime)
	buf = encodeTimeVal(buf, a.Ctime)
	return buf
}

func decodeWccAttr(c *xdr.Cursor) (WccAttr, error) {
	var w WccAttr
	var err error
	if w.Size, err = xdr.ReadUint64(c); err != nil {
		return w, err
	}
	if w.Mtime, err = decodeTimeVal(c); err != nil {
		return w, err
	}
	if w.Ctime, err = decodeTimeVal(c); err != nil {
		return w, err
	}
	return w, nil
}

func encodeWccAttr(buf []byte, w WccAttr) []byte {
	buf = xdr.AppendUint64(buf, w.Size)
	buf = encodeTimeVal(buf, w.Mtime)
	return encodeTimeVal(buf, w.Ctime)
}

// decodeWccData and encodeWccData handle the pre/post_op_attr pair every
// mutating procedure's reply carries (RFC 1813 §2.6).
func decodeWccData(c *xdr.Cursor) (WccData, error) {
	before, err := xdr.ReadOptional(c, decodeWccAttr)
	if err != nil {
		return WccData{}, err
	}
	after, err := xdr.ReadOptional(c, decodeFileAttr)
	if err != nil {
		return WccData{}, err
	}
	return WccData{Before: before, After: after}, nil
}

func encodeWccData(buf []byte, w WccData) []byte {
	buf = xdr.AppendOptional(buf, w.Before, encodeWccAttr)
	return xdr.AppendOptional(buf, w.After, encodeFileAttr)
}

func decodePostOpAttr(c *xdr.Cursor) (*FileAttr, error) {
	return xdr.ReadOptional(c, decodeFileAttr)
}

func encodePostOpAttr(buf []byte, a *FileAttr) []byte {
	return xdr.AppendOptional(buf, a, encodeFileAttr)
}

func decodeSetAttr(c *xdr.Cursor) (SetAttr, error) {
	var s SetAttr
	setMode, err := xdr.ReadUint32(c)
	if err != nil {
		return s, err
	}
	if s.SetMode = setMode != 0; s.SetMode {
		if s.Mode, err = xdr.ReadUint32(c); err != nil {
			return s, err
		}
	}
	setUID, err := xdr.ReadUint32(c)
	if err != nil {
		return s, err
	}
	if s.SetUID = setUID != 0; s.SetUID {
		if s.UID, err = xdr.ReadUint32(c); err != nil {
			return s, err
		}
	}
	setGID, err := xdr.ReadUint32(c)
	if err != nil {
		return s, err
	}
	if s.SetGID = setGID != 0; s.SetGID {
		if s.GID, err = xdr.ReadUint32(c); err != nil {
			return s, err
		}
	}
	setSize, err := xdr.ReadUint32(c)
	if err != nil {
		return s, err
	}
	if s.SetSize = setSize != 0; s.SetSize {
		if s.Size, err = xdr.ReadUint64(c); err != nil {
			return s, err
		}
	}
	if s.SetAtime, s.AtimeToServer, s.Atime, err = decodeSetTime(c); err != nil {
		return s, err
	}
	if s.SetMtime, s.MtimeToServer, s.Mtime, err = decodeSetTime(c); err != nil {
		return s, err
	}
	return s, nil
}

// decodeSetTime reads a set_atime/set_mtime discriminated union: 0 =
// DONT_CHANGE, 1 = SET_TO_CLIENT_TIME (followed by a nfstime3), 2 =
// SET_TO_SERVER_TIME.
func decodeSetTime(c *xdr.Cursor) (set bool, toServer bool, t TimeVal, err error) {
	disc, err := xdr.ReadUint32(c)
	if err != nil {
		return false, false, TimeVal{}, err
	}
	switch disc {
	case 0:
		return false, false, TimeVal{}, nil
	case 1:
		t, err := decodeTimeVal(c)
		return true, false, t, err
	case 2:
		return true, true, TimeVal{}, nil
	default:
		return false, false, TimeVal{}, fmt.Errorf("nfs3: invalid set_time discriminator %d", disc)
	}
}

func encodeSetAttr(buf []byte, s SetAttr) []byte {
	buf = encodeSetField(buf, s.SetMode, func(b []byte) []byte { return xdr.AppendUint32(b, s.Mode) })
	buf = encodeSetField(buf, s.SetUID, func(b []byte) []byte { return xdr.AppendUint32(b, s.UID) })
	buf = encodeSetField(buf, s.SetGID, func(b []byte) []byte { return xdr.AppendUint32(b, s.GID) })
	buf = encodeSetField(buf, s.SetSize, func(b []byte) []byte { return xdr.AppendUint64(b, s.Size) })
	buf = encodeSetTime(buf, s.SetAtime, s.AtimeToServer, s.Atime)
	buf = encodeSetTime(buf, s.SetMtime, s.MtimeToServer, s.Mtime)
	return buf
}

func encodeSetField(buf []byte, set bool, encodeVal func([]byte) []byte) []byte {
	if !set {
		return xdr.AppendUint32(buf, 0)
	}
	buf = xdr.AppendUint32(buf, 1)
	return encodeVal(buf)
}

func encodeSetTime(buf []byte, set, toServer bool, t TimeVal) []byte {
	if !set {
		return xdr.AppendUint32(buf, 0)
	}
	if toServer {
		return xdr.AppendUint32(buf, 2)
	}
	buf = xdr.AppendUint32(buf, 1)
	return encodeTimeVal(buf, t)
}

func decodeTimeGuard(c *xdr.Cursor) (TimeGuard, error) {
	check, err := xdr.ReadUint32(c)
	if err != nil {
		return TimeGuard{}, err
	}
	if check == 0 {
		return TimeGuard{}, nil
	}
	t, err := decodeTimeVal(c)
	if err != nil {
		return TimeGuard{}, err
	}
	return TimeGuard{Check: true, Time: t}, nil
}

func encodeTimeGuard(buf []byte, g TimeGuard) []byte {
	if !g.Check {
		return xdr.AppendUint32(buf, 0)
	}
	buf = xdr.AppendUint32(buf, 1)
	return encodeTimeVal(buf, g.Time)
}
