// +build windows

package rawfile

import (
	"golang.org/x/sys/windows"

	"github.com/ForensicRS/frnsc-triage/buffer"
	"github.com/ForensicRS/frnsc-triage/cerrors"
	log "github.com/ForensicRS/frnsc-triage/logger"
	"github.com/ForensicRS/frnsc-triage/windows/ioctl"
)

// LoadExtentMap opens pth through the normal filesystem with
// attribute-read access only (no data-read permission needed, spec.md
// §4.3) and retrieves its extent map and logical size via
// FSCTL_GET_RETRIEVAL_POINTERS.
func LoadExtentMap(pth string, buf *buffer.Buffer) (ExtentMap, uint64, error) {
	log.Tracef(">>>>> LoadExtentMap, path=%v", pth)
	defer log.Trace("<<<<< LoadExtentMap")

	filename := `\\.\` + pth
	nameUTF16 := buf.EncodeUTF16(filename)
	handle, err := windows.CreateFile(
		&nameUTF16[0],
		windows.FILE_READ_ATTRIBUTES,
		windows.FILE_SHARE_READ,
		nil,
		windows.OPEN_EXISTING,
		0,
		0,
	)
	if err != nil {
		return ExtentMap{}, 0, cerrors.NewError(cerrors.OsError, "opening file ", pth, err)
	}
	// Only used transiently to query size and retrieval pointers; actual
	// data reads happen through the volume handle at computed offsets.
	defer windows.CloseHandle(handle)

	var fileSizeHigh uint32
	fileSizeLow, err := windows.GetFileSize(handle, &fileSizeHigh)
	if err != nil {
		return ExtentMap{}, 0, cerrors.NewError(cerrors.OsError, "getting file size of ", pth, err)
	}
	fileSize := (uint64(fileSizeHigh) << 32) | uint64(fileSizeLow)

	rp, err := ioctl.GetRetrievalPointers(handle, buf.U8())
	if err != nil {
		return ExtentMap{}, 0, cerrors.NewError(cerrors.OsError, "retrieving extents for ", pth, err)
	}
	if rp.StartingVCN != 0 {
		return ExtentMap{}, 0, cerrors.NewError(cerrors.Unsupported, "nonzero starting_vcn for ", pth)
	}

	extents := make([]Extent, len(rp.Extents))
	for i, e := range rp.Extents {
		extents[i] = Extent{NextVCN: e.NextVCN, LCN: e.LCN}
	}

	return ExtentMap{StartingVCN: 0, Extents: extents}, fileSize, nil
}
