// +build windows

package rawfile

import (
	"fmt"

	"golang.org/x/sys/windows"

	"github.com/ForensicRS/frnsc-triage/buffer"
	"github.com/ForensicRS/frnsc-triage/cerrors"
	log "github.com/ForensicRS/frnsc-triage/logger"
)

// DriveAndVolumePath splits a path like `C:\Windows\x` into the raw
// volume path `\\.\C:` and the disk-letter path `C:\`, validating that
// the drive letter sits at position 1 (spec.md §4.2, grounded on
// helpers.rs::get_drive_and_disk).
func DriveAndVolumePath(pth string) (volumePath, diskLetter string, err error) {
	idx := indexByte(pth, ':')
	if idx != 1 {
		return "", "", cerrors.NewError(cerrors.BadPath, "cannot find disk letter in path: ", pth)
	}
	drive := pth[0:idx]
	return fmt.Sprintf(`\\.\%s:`, drive), fmt.Sprintf(`%s:\`, drive), nil
}

func indexByte(s string, b byte) int {
	for i := 0; i < len(s); i++ {
		if s[i] == b {
			return i
		}
	}
	return -1
}

// Geometry is the result of probing a volume: its open handle and the
// cluster size derived from sectors-per-cluster x bytes-per-sector.
type Geometry struct {
	Handle       windows.Handle
	ClusterBytes int
}

// ProbeVolumeGeometry opens the volume backing pth read-only
// (share-read+share-write) and queries its cluster geometry (spec.md
// §4.2). The returned handle is owned by the caller and must be closed
// exactly once.
func ProbeVolumeGeometry(pth string, buf *buffer.Buffer) (*Geometry, error) {
	log.Tracef(">>>>> ProbeVolumeGeometry, path=%v", pth)
	defer log.Trace("<<<<< ProbeVolumeGeometry")

	volumePath, diskLetter, err := DriveAndVolumePath(pth)
	if err != nil {
		return nil, err
	}

	handle, err := windows.CreateFile(
		&buf.EncodeUTF16(volumePath)[0],
		windows.GENERIC_READ,
		windows.FILE_SHARE_READ|windows.FILE_SHARE_WRITE,
		nil,
		windows.OPEN_EXISTING,
		0,
		0,
	)
	if err != nil {
		return nil, cerrors.NewError(cerrors.OsError, "opening volume ", volumePath, err)
	}

	var sectorsPerCluster, bytesPerSector, freeClusters, totalClusters uint32
	diskLetterUTF16 := buf.EncodeUTF16(diskLetter)
	err = windows.GetDiskFreeSpace(&diskLetterUTF16[0], &sectorsPerCluster, &bytesPerSector, &freeClusters, &totalClusters)
	if err != nil {
		windows.CloseHandle(handle)
		return nil, cerrors.NewError(cerrors.OsError, "querying disk geometry for ", diskLetter, err)
	}

	return &Geometry{
		Handle:       handle,
		ClusterBytes: int(sectorsPerCluster) * int(bytesPerSector),
	}, nil
}
