package nfs3

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleAttr() FileAttr {
	return FileAttr{
		Type:   FileTypeRegular,
		Mode:   0644,
		Nlink:  1,
		UID:    1000,
		GID:    1000,
		Size:   4096,
		Used:   4096,
		Rdev:   SpecData{Major: 0, Minor: 0},
		Fsid:   7,
		FileID: 42,
		Atime:  TimeVal{Seconds: 1, Nanoseconds: 2},
		Mtime:  TimeVal{Seconds: 3, Nanoseconds: 4},
		Ctime:  TimeVal{Seconds: 5, Nanoseconds: 6},
	}
}

func TestNullRoundTrip(t *testing.T) {
	assert.Empty(t, EncodeNullCall(NullCall{}))
	assert.Empty(t, EncodeNullReply(NullReply{}))
	_, err := DecodeNullCall(nil)
	require.NoError(t, err)
	_, err = DecodeNullReply(nil)
	require.NoError(t, err)
}

func TestGetAttrRoundTrip(t *testing.T) {
	call := GetAttrCall{Handle: FileHandle("handle-1")}
	wire := EncodeGetAttrCall(call)
	got, err := DecodeGetAttrCall(wire)
	require.NoError(t, err)
	assert.Equal(t, call.Handle, got.Handle)

	reply := GetAttrReply{Status: StatusOK, Attr: sampleAttr()}
	rwire := EncodeGetAttrReply(reply)
	gotReply, err := DecodeGetAttrReply(rwire)
	require.NoError(t, err)
	assert.Equal(t, reply, gotReply)
}

func TestGetAttrReplyFailureArm(t *testing.T) {
	reply := GetAttrReply{Status: StatusErrNoEnt}
	wire := EncodeGetAttrReply(reply)
	got, err := DecodeGetAttrReply(wire)
	require.NoError(t, err)
	assert.Equal(t, StatusErrNoEnt, got.Status)
}

func TestSetAttrRoundTrip(t *testing.T) {
	call := SetAttrCall{
		Handle: FileHandle("h"),
		New: SetAttr{
			SetMode: true, Mode: 0600,
			SetSize: true, Size: 10,
		},
		Guard: TimeGuard{Check: true, Time: TimeVal{Seconds: 9}},
	}
	wire := EncodeSetAttrCall(call)
	got, err := DecodeSetAttrCall(wire)
	require.NoError(t, err)
	assert.Equal(t, call, got)

	attr := sampleAttr()
	reply := SetAttrReply{
		Status: StatusOK,
		WCC: WccData{
			Before: &WccAttr{Size: 5, Mtime: TimeVal{Seconds: 1}, Ctime: TimeVal{Seconds: 1}},
			After:  &attr,
		},
	}
	rwire := EncodeSetAttrReply(reply)
	gotReply, err := DecodeSetAttrReply(rwire)
	require.NoError(t, err)
	assert.Equal(t, reply, gotReply)
}

func TestLookupRoundTrip(t *testing.T) {
	call := LookupCall{Dir: FileHandle("dir"), Name: "file.txt"}
	wire := EncodeLookupCall(call)
	got, err := DecodeLookupCall(wire)
	require.NoError(t, err)
	assert.Equal(t, call, got)

	objAttr := sampleAttr()
	dirAttr := sampleAttr()
	reply := LookupReply{
		Status:  StatusOK,
		Handle:  FileHandle("child"),
		ObjAttr: &objAttr,
		DirAttr: &dirAttr,
	}
	rwire := EncodeLookupReply(reply)
	gotReply, err := DecodeLookupReply(rwire)
	require.NoError(t, err)
	assert.Equal(t, reply, gotReply)
}

func TestLookupReplyFailureArmOmitsHandle(t *testing.T) {
	dirAttr := sampleAttr()
	reply := LookupReply{Status: StatusErrNoEnt, DirAttr: &dirAttr}
	wire := EncodeLookupReply(reply)
	got, err := DecodeLookupReply(wire)
	require.NoError(t, err)
	assert.Equal(t, StatusErrNoEnt, got.Status)
	assert.Nil(t, got.Handle)
	assert.Equal(t, &dirAttr, got.DirAttr)
}

func TestAccessRoundTrip(t *testing.T) {
	call := AccessCall{Handle: FileHandle("h"), Access: AccessRead | AccessExecute}
	wire := EncodeAccessCall(call)
	got, err := DecodeAccessCall(wire)
	require.NoError(t, err)
	assert.Equal(t, call, got)

	attr := sampleAttr()
	reply := AccessReply{Status: StatusOK, Attr: &attr, Access: AccessRead}
	rwire := EncodeAccessReply(reply)
	gotReply, err := DecodeAccessReply(rwire)
	require.NoError(t, err)
	assert.Equal(t, reply, gotReply)
}

func TestReadlinkRoundTrip(t *testing.T) {
	call := ReadlinkCall{Handle: FileHandle("h")}
	wire := EncodeReadlinkCall(call)
	got, err := DecodeReadlinkCall(wire)
	require.NoError(t, err)
	assert.Equal(t, call, got)

	attr := sampleAttr()
	reply := ReadlinkReply{Status: StatusOK, Attr: &attr, Path: "../target"}
	rwire := EncodeReadlinkReply(reply)
	gotReply, err := DecodeReadlinkReply(rwire)
	require.NoError(t, err)
	assert.Equal(t, reply, gotReply)
}

func TestReadRoundTrip(t *testing.T) {
	call := ReadCall{Handle: FileHandle("h"), Offset: 1024, Count: 8192}
	wire := EncodeReadCall(call)
	got, err := DecodeReadCall(wire)
	require.NoError(t, err)
	assert.Equal(t, call, got)

	attr := sampleAttr()
	reply := ReadReply{Status: StatusOK, Attr: &attr, Count: 5, EOF: true, Data: []byte("hello")}
	header, next := EncodeReadReply(reply)
	require.True(t, next.HasPayload)
	assert.Equal(t, reply.Data, next.Payload)
	assert.Equal(t, 3, next.FillBytes) // "hello" is 5 bytes, pads to 8

	wire2 := append(append([]byte{}, header...), next.Payload...)
	wire2 = append(wire2, make([]byte, next.FillBytes)...)
	gotReply, err := DecodeReadReply(wire2)
	require.NoError(t, err)
	assert.Equal(t, reply, gotReply)
}

func TestReadReplyFailureArmHasNoNextStep(t *testing.T) {
	reply := ReadReply{Status: StatusErrNoEnt}
	_, next := EncodeReadReply(reply)
	assert.False(t, next.HasPayload)
}

func TestReaddirRoundTrip(t *testing.T) {
	call := ReaddirCall{Handle: FileHandle("h"), Cookie: 1, CookieVerf: 2, Count: 4096}
	wire := EncodeReaddirCall(call)
	got, err := DecodeReaddirCall(wire)
	require.NoError(t, err)
	assert.Equal(t, call, got)

	attr := sampleAttr()
	reply := ReaddirReply{
		Status:     StatusOK,
		Attr:       &attr,
		CookieVerf: 9,
		Entries: []DirEntry{
			{FileID: 1, Name: ".", Cookie: 1},
			{FileID: 2, Name: "..", Cookie: 2},
			{FileID: 3, Name: "file.txt", Cookie: 3},
		},
		EOF: true,
	}
	rwire := EncodeReaddirReply(reply)
	gotReply, err := DecodeReaddirReply(rwire)
	require.NoError(t, err)
	assert.Equal(t, reply, gotReply)
}

func TestReaddirReplyEmptyListIsJustTerminator(t *testing.T) {
	reply := ReaddirReply{Status: StatusOK, CookieVerf: 1, Entries: nil, EOF: true}
	wire := EncodeReaddirReply(reply)
	got, err := DecodeReaddirReply(wire)
	require.NoError(t, err)
	assert.Empty(t, got.Entries)
	assert.True(t, got.EOF)
}

func TestReaddirPlusRoundTrip(t *testing.T) {
	call := ReaddirPlusCall{Handle: FileHandle("h"), Cookie: 1, CookieVerf: 2, DirCount: 512, MaxCount: 8192}
	wire := EncodeReaddirPlusCall(call)
	got, err := DecodeReaddirPlusCall(wire)
	require.NoError(t, err)
	assert.Equal(t, call, got)

	attr := sampleAttr()
	entryAttr := sampleAttr()
	entryHandle := FileHandle("child-handle")
	reply := ReaddirPlusReply{
		Status:     StatusOK,
		Attr:       &attr,
		CookieVerf: 9,
		Entries: []DirEntryPlus{
			{FileID: 1, Name: "file.txt", Cookie: 3, Attr: &entryAttr, Handle: &entryHandle},
			{FileID: 2, Name: "noattr", Cookie: 4},
		},
		EOF: false,
	}
	rwire := EncodeReaddirPlusReply(reply)
	gotReply, err := DecodeReaddirPlusReply(rwire)
	require.NoError(t, err)
	assert.Equal(t, reply, gotReply)
}

func TestFsStatRoundTrip(t *testing.T) {
	call := FsStatCall{Handle: FileHandle("h")}
	wire := EncodeFsStatCall(call)
	got, err := DecodeFsStatCall(wire)
	require.NoError(t, err)
	assert.Equal(t, call, got)

	attr := sampleAttr()
	reply := FsStatReply{
		Status: StatusOK, Attr: &attr,
		TBytes: 1e9, FBytes: 1e8, ABytes: 1e8,
		TFiles: 1000, FFiles: 900, AFiles: 900,
		InvarSec: 0,
	}
	rwire := EncodeFsStatReply(reply)
	gotReply, err := DecodeFsStatReply(rwire)
	require.NoError(t, err)
	assert.Equal(t, reply, gotReply)
}

func TestFsInfoRoundTrip(t *testing.T) {
	call := FsInfoCall{Handle: FileHandle("h")}
	wire := EncodeFsInfoCall(call)
	got, err := DecodeFsInfoCall(wire)
	require.NoError(t, err)
	assert.Equal(t, call, got)

	attr := sampleAttr()
	reply := FsInfoReply{
		Status: StatusOK, Attr: &attr,
		RtMax: 65536, RtPref: 65536, RtMult: 4096,
		WtMax: 65536, WtPref: 65536, WtMult: 4096,
		DtPref: 8192, MaxFileSize: 1 << 40,
		TimeDelta:  TimeVal{Seconds: 0, Nanoseconds: 1},
		Properties: FSFLink | FSFSymlink | FSFHomogeneous | FSFCanSetTime,
	}
	rwire := EncodeFsInfoReply(reply)
	gotReply, err := DecodeFsInfoReply(rwire)
	require.NoError(t, err)
	assert.Equal(t, reply, gotReply)
}

func TestPathconfRoundTrip(t *testing.T) {
	call := PathconfCall{Handle: FileHandle("h")}
	wire := EncodePathconfCall(call)
	got, err := DecodePathconfCall(wire)
	require.NoError(t, err)
	assert.Equal(t, call, got)

	attr := sampleAttr()
	reply := PathconfReply{
		Status: StatusOK, Attr: &attr,
		LinkMax: 32000, NameMax: 255,
		NoTrunc: true, ChownRestricted: true,
		CaseInsensitive: false, CasePreserving: true,
	}
	rwire := EncodePathconfReply(reply)
	gotReply, err := DecodePathconfReply(rwire)
	require.NoError(t, err)
	assert.Equal(t, reply, gotReply)
}

func TestDecodeRejectsEmptyFileHandle(t *testing.T) {
	_, err := DecodeGetAttrCall(make([]byte, 4)) // length prefix of 0, no bytes
	require.Error(t, err)
}

func TestDecodeFileTypeRejectsInvalidEnum(t *testing.T) {
	attr := sampleAttr()
	wire := EncodeGetAttrReply(GetAttrReply{Status: StatusOK, Attr: attr})
	wire[7] = 99 // clobber the type field (status u32, then type u32 starts at offset 4)
	_, err := DecodeGetAttrReply(wire)
	require.Error(t, err)
}
