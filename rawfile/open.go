// +build windows

package rawfile

import (
	"sync"

	"golang.org/x/sys/windows"

	"github.com/ForensicRS/frnsc-triage/buffer"
	"github.com/ForensicRS/frnsc-triage/cerrors"
	log "github.com/ForensicRS/frnsc-triage/logger"
)

// volumeDevice adapts a raw volume handle to io.ReaderAt via
// windows.Seek (SetFilePointer)+ReadFile, matching helpers.rs's
// move_disk_position + read_file_from_disk_pointer call pair. A
// volumeDevice may be shared by several Files (spec.md §9's "shared
// volume handle, multiple owners"); File.owns tracks which File is
// responsible for closing it.
type volumeDevice struct {
	mu     sync.Mutex
	handle windows.Handle
}

func (v *volumeDevice) ReadAt(p []byte, off int64) (int, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if _, err := windows.Seek(v.handle, off, 0); err != nil {
		return 0, cerrors.NewError(cerrors.OsError, "seeking volume", err)
	}
	var n uint32
	if err := windows.ReadFile(v.handle, p, &n, nil); err != nil {
		return 0, cerrors.NewError(cerrors.OsError, "reading volume", err)
	}
	return int(n), nil
}

// File is a raw, reassembled view of one Windows-style path: the
// exported handle spec.md calls RawFileCursor plus the volume handle it
// borrows or owns.
type File struct {
	*Cursor
	device *volumeDevice
	owns   bool
}

// Open resolves pth (e.g. `C:\$MFT`) to a raw byte stream: it probes the
// volume's geometry, loads the file's extent map, and returns a File
// ready to Read. The returned File owns the volume handle and must be
// closed exactly once via Close.
func Open(pth string, buf *buffer.Buffer) (*File, error) {
	log.Tracef(">>>>> Open, path=%v", pth)
	defer log.Trace("<<<<< Open")

	geometry, err := ProbeVolumeGeometry(pth, buf)
	if err != nil {
		return nil, err
	}

	extentMap, fileSize, err := LoadExtentMap(pth, buf)
	if err != nil {
		windows.CloseHandle(geometry.Handle)
		return nil, err
	}

	dev := &volumeDevice{handle: geometry.Handle}
	cur, err := NewCursor(dev, fileSize, geometry.ClusterBytes, extentMap)
	if err != nil {
		windows.CloseHandle(geometry.Handle)
		return nil, err
	}

	return &File{Cursor: cur, device: dev, owns: true}, nil
}

// Sibling returns a new File over the same volume handle and file
// metadata as f, for use by CopyTo-style helpers that need an
// independent read cursor. The sibling does not own the handle: only
// the original File's Close call releases it (spec.md §9).
func (f *File) Sibling() *File {
	cur := &Cursor{
		device:       f.device,
		fileSize:     f.fileSize,
		clusterBytes: f.clusterBytes,
		extentMap:    f.extentMap,
	}
	return &File{Cursor: cur, device: f.device, owns: false}
}

// Close releases the underlying volume handle if this File owns it.
func (f *File) Close() error {
	if !f.owns {
		return nil
	}
	f.device.mu.Lock()
	handle := f.device.handle
	f.device.mu.Unlock()
	return windows.CloseHandle(handle)
}
