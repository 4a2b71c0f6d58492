package nfs3

// Program is the NFS3 ONC-RPC program number (RFC 1813 §2). The MOUNT
// program's number and procedures live in pkg/mount.
const (
	Program        uint32 = 100003
	ProgramVersion uint32 = 3
)

// NFS3 procedure numbers this module supports (spec §6.3).
const (
	ProcNull        uint32 = 0
	ProcGetAttr     uint32 = 1
	ProcSetAttr     uint32 = 2
	ProcLookup      uint32 = 3
	ProcAccess      uint32 = 4
	ProcReadlink    uint32 = 5
	ProcRead        uint32 = 6
	ProcReaddir     uint32 = 16
	ProcReaddirPlus uint32 = 17
	ProcFsStat      uint32 = 18
	ProcFsInfo      uint32 = 19
	ProcPathconf    uint32 = 20
)

// Status is the NFS3Status wire value carried on every reply's leading u32
// (spec §6.3). It is never represented as a Go error: an NFS failure is a
// successful RPC reply (§7).
type Status uint32

const (
	StatusOK             Status = 0
	StatusErrPerm        Status = 1
	StatusErrNoEnt       Status = 2
	StatusErrIO          Status = 5
	StatusErrAcces       Status = 13
	StatusErrExist       Status = 17
	StatusErrNotDir      Status = 20
	StatusErrIsDir       Status = 21
	StatusErrInval       Status = 22
	StatusErrFBig        Status = 27
	StatusErrNameTooLong Status = 63
	StatusErrNotEmpty    Status = 66
	StatusErrBadHandle   Status = 10001
	StatusErrRoFS        Status = 30
)

// FileType is the fattr3 "type" discriminant (RFC 1813 §2.5).
type FileType uint32

const (
	FileTypeRegular FileType = 1
	FileTypeDir     FileType = 2
	FileTypeBlock   FileType = 3
	FileTypeChar    FileType = 4
	FileTypeLink    FileType = 5
	FileTypeSocket  FileType = 6
	FileTypeFIFO    FileType = 7
)

// MaxFileHandleLen bounds a FileHandle's opaque length (RFC 1813 §2.3.3).
const MaxFileHandleLen = 64

// FileHandle identifies a filesystem object; this module treats it as an
// opaque blob the backing Filesystem chooses the encoding for.
type FileHandle []byte

// TimeVal is the nfstime3 wire type: POSIX seconds plus nanoseconds.
type TimeVal struct {
	Seconds     uint32
	Nanoseconds uint32
}

// SpecData is the rdev field of a device special file (RFC 1813 §2.5,
// "specdata3"): major/minor device numbers.
type SpecData struct {
	Major uint32
	Minor uint32
}

// FileAttr is the fattr3 structure (RFC 1813 §2.5).
type FileAttr struct {
	Type   FileType
	Mode   uint32
	Nlink  uint32
	UID    uint32
	GID    uint32
	Size   uint64
	Used   uint64
	Rdev   SpecData
	Fsid   uint64
	FileID uint64
	Atime  TimeVal
	Mtime  TimeVal
	Ctime  TimeVal
}

// WccAttr is the wcc_attr structure (RFC 1813 §2.6): the subset of
// attributes a client needs to detect whether an object changed underneath
// a pending operation.
type WccAttr struct {
	Size  uint64
	Mtime TimeVal
	Ctime TimeVal
}

// WccData is the wcc_data structure: optional pre- and post-operation
// attributes attached to every procedure that can modify an object.
type WccData struct {
	Before *WccAttr
	After  *FileAttr
}

// SetMode/SetUID/.../SetMtime carry the sattr3 "set_it" discriminated
// unions: a field is only applied when its corresponding Set flag is true.
// Atime/Mtime additionally distinguish SET_TO_CLIENT_TIME from
// SET_TO_SERVER_TIME via AtimeToServer/MtimeToServer.
type SetAttr struct {
	SetMode bool
	Mode    uint32

	SetUID bool
	UID    uint32

	SetGID bool
	GID    uint32

	SetSize bool
	Size    uint64

	SetAtime      bool
	AtimeToServer bool
	Atime         TimeVal

	SetMtime      bool
	MtimeToServer bool
	Mtime         TimeVal
}

// TimeGuard is the sattrguard3 union: when Check is true, a SETATTR only
// applies if the object's current ctime matches Time (RFC 1813 §3.3.2).
type TimeGuard struct {
	Check bool
	Time  TimeVal
}
