// Package archive is a thin facade over archive/zip for the triage
// output container (spec.md §4.9). It registers klauspost/compress's
// flate implementation as the deflate compressor so large collections
// compress faster than stdlib's compress/flate, matching the original
// Rust collector's level-6 deflate setting.
package archive

import (
	"archive/zip"
	"io"
	"strings"
	"sync"

	"github.com/klauspost/compress/flate"

	"github.com/ForensicRS/frnsc-triage/cerrors"
)

const deflateLevel = 6

func init() {
	zip.RegisterCompressor(zip.Deflate, func(w io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(w, deflateLevel)
	})
}

// Writer serializes concurrent access to a zip.Writer: spec.md §5's
// worker pool shares one archive across every collection goroutine, so
// every public method here takes the same mutex (spec.md §9's decision
// to hold the lock for the full duration of a large-file stream).
type Writer struct {
	mu        sync.Mutex
	zw        *zip.Writer
	addedDirs map[string]bool
}

// New wraps dst (typically an *os.File) in a Writer.
func New(dst io.Writer) *Writer {
	return &Writer{zw: zip.NewWriter(dst), addedDirs: map[string]bool{}}
}

// sanitize mirrors triage.rs's `path.replace(":\\", "\\")`: a drive
// letter's colon is not a valid zip entry character, so "C:\Windows"
// becomes "C\Windows" inside the archive.
func sanitize(pth string) string {
	return strings.ReplaceAll(pth, `:\`, `\`)
}

// AddDirectory records an empty directory entry for dir itself; its
// ancestors get no entries of their own. A no-op if dir was already
// added.
func (w *Writer) AddDirectory(dir string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.addDirectoryLocked(dir)
}

func (w *Writer) addDirectoryLocked(dir string) error {
	name := sanitize(dir)
	if name == "" || w.addedDirs[name] {
		return nil
	}
	if !strings.HasSuffix(name, "/") {
		name += "/"
	}
	_, err := w.zw.Create(name)
	if err != nil {
		return cerrors.NewError(cerrors.ArchiveError, "adding directory ", dir, err)
	}
	w.addedDirs[sanitize(dir)] = true
	return nil
}

// WriteFile streams the full contents of src into the archive entry
// named pth (with its parent directory recorded first), holding the
// writer's lock for the whole call so no other goroutine interleaves
// entries mid-stream.
func (w *Writer) WriteFile(pth string, parentDir string, src io.Reader) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if parentDir != "" {
		if err := w.addDirectoryLocked(parentDir); err != nil {
			return err
		}
	}

	fw, err := w.zw.CreateHeader(&zip.FileHeader{
		Name:   sanitize(pth),
		Method: zip.Deflate,
	})
	if err != nil {
		return cerrors.NewError(cerrors.ArchiveError, "starting entry ", pth, err)
	}
	if _, err := io.Copy(fw, src); err != nil {
		return cerrors.NewError(cerrors.ArchiveError, "writing entry ", pth, err)
	}
	return nil
}

// Close flushes the zip central directory. The underlying destination
// writer, if it needs closing, remains the caller's responsibility.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.zw.Close(); err != nil {
		return cerrors.NewError(cerrors.ArchiveError, "closing archive", err)
	}
	return nil
}
