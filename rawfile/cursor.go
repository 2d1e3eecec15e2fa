// Package rawfile implements the Raw NTFS File Reassembler: the core
// reassembler that turns a Windows-style path into an ordered byte
// stream read directly from the volume, bypassing the filesystem driver.
//
// The read algorithm (Cursor) is implemented against io.ReaderAt so it
// is testable without a live Windows volume; Open wires a live volume
// handle into a Cursor on Windows.
package rawfile

import (
	"io"

	"github.com/ForensicRS/frnsc-triage/cerrors"
)

// Extent is one {next_vcn, lcn} retrieval-pointer run (spec.md §3).
type Extent struct {
	NextVCN int64
	LCN     int64
}

// ExtentMap is the ordered list of extents backing a file, plus the
// starting VCN the extent list is relative to (always 0 in the cases
// this system supports; non-zero is rejected by Open).
type ExtentMap struct {
	StartingVCN int64
	Extents     []Extent
}

// state is the Cursor's lifecycle: Open -> Reading -> Exhausted.
type state int

const (
	stateOpen state = iota
	stateReading
	stateExhausted
)

// Cursor is the mutable read state described in spec.md §3
// (RawFileCursor): it presents a sequential byte stream over a file
// whose bytes live at known physical offsets on the volume.
type Cursor struct {
	device       io.ReaderAt
	fileSize     uint64
	clusterBytes int

	extentMap   ExtentMap
	extentIndex int
	clusterIn   int // clusters consumed inside the current extent
	bytesRead   uint64

	st state
}

// NewCursor builds a Cursor over an already-open device (a volume
// handle, or a fake in tests) given the file's logical size, the
// volume's cluster size, and its extent map. The extent map's
// StartingVCN must be 0; spec.md §4.3 treats any other value as
// Unsupported.
func NewCursor(device io.ReaderAt, fileSize uint64, clusterBytes int, extentMap ExtentMap) (*Cursor, error) {
	if extentMap.StartingVCN != 0 {
		return nil, cerrors.NewError(cerrors.Unsupported, "nonzero starting_vcn")
	}
	if clusterBytes <= 0 {
		return nil, cerrors.NewError(cerrors.Internal, "cluster_bytes must be positive")
	}
	return &Cursor{
		device:       device,
		fileSize:     fileSize,
		clusterBytes: clusterBytes,
		extentMap:    extentMap,
		st:           stateOpen,
	}, nil
}

// ClusterBytes returns the volume's cluster size this cursor reads in.
func (c *Cursor) ClusterBytes() int { return c.clusterBytes }

// FileSize returns the file's logical size in bytes.
func (c *Cursor) FileSize() uint64 { return c.fileSize }

// BytesRead returns how many logical bytes have been returned so far.
func (c *Cursor) BytesRead() uint64 { return c.bytesRead }

// extentClusters returns how many clusters extent i spans.
func (c *Cursor) extentClusters(i int) int64 {
	prevVCN := c.extentMap.StartingVCN
	if i > 0 {
		prevVCN = c.extentMap.Extents[i-1].NextVCN
	}
	return c.extentMap.Extents[i].NextVCN - prevVCN
}

// Read implements the per-call algorithm of spec.md §4.4 steps 1-9.
// dst must be at least one cluster long or BufferTooSmall is returned
// and no device I/O is issued (spec.md P5).
func (c *Cursor) Read(dst []byte) (int, error) {
	if len(dst) < c.clusterBytes {
		return 0, cerrors.NewError(cerrors.BufferTooSmall, "need at least one cluster")
	}

	// Step 1-2: termination predicates are sticky (Exhausted state).
	if c.bytesRead >= c.fileSize || c.extentIndex >= len(c.extentMap.Extents) {
		c.st = stateExhausted
		return 0, nil
	}
	c.st = stateReading

	extent := c.extentMap.Extents[c.extentIndex]
	extentClusters := c.extentClusters(c.extentIndex)
	if extent.LCN < 0 {
		return 0, cerrors.NewError(cerrors.Unsupported, "sparse extent encountered")
	}

	wantClusters := int64(len(dst) / c.clusterBytes)
	diskOffset := (extent.LCN + int64(c.clusterIn)) * int64(c.clusterBytes)

	remainingInExtentBytes := (extentClusters - int64(c.clusterIn)) * int64(c.clusterBytes)
	wantBytes := wantClusters * int64(c.clusterBytes)
	readLen := remainingInExtentBytes
	if wantBytes < readLen {
		readLen = wantBytes
	}

	n, err := c.device.ReadAt(dst[:readLen], diskOffset)
	if err != nil && err != io.EOF {
		return 0, cerrors.Wrap(err)
	}

	// Truncate against the logical file size without issuing a short read.
	if c.bytesRead+uint64(n) > c.fileSize {
		n = int(c.fileSize - c.bytesRead)
	}
	c.bytesRead += uint64(n)

	consumedClusters := int64(n) / int64(c.clusterBytes)
	if n%c.clusterBytes != 0 {
		// Final partial cluster of the file: still consumes the whole
		// physical cluster that was read.
		consumedClusters++
	}
	if int64(c.clusterIn)+consumedClusters >= extentClusters {
		c.extentIndex++
		c.clusterIn = 0
	} else {
		c.clusterIn += int(consumedClusters)
	}

	return n, nil
}

// CopyTo streams the cursor's contents to w using a scratch buffer
// sized to bufClusters clusters (spec.md §4.4's copy helper uses 16).
// It stops when Read returns 0.
func (c *Cursor) CopyTo(w io.Writer, bufClusters int) (int64, error) {
	if bufClusters < 1 {
		bufClusters = 16
	}
	buf := make([]byte, bufClusters*c.clusterBytes)
	var total int64
	for {
		n, err := c.Read(buf)
		if err != nil {
			return total, err
		}
		if n == 0 {
			return total, nil
		}
		if _, werr := w.Write(buf[:n]); werr != nil {
			return total, werr
		}
		total += int64(n)
	}
}
