// Package triage implements the Triage Orchestrator (spec.md §4.8): it
// expands the artifact catalog into concrete paths, fans a fixed worker
// pool out over them, and streams each file into one shared archive.
package triage

import (
	"io"
	"sync"

	"github.com/ForensicRS/frnsc-triage/archive"
	"github.com/ForensicRS/frnsc-triage/artifacts"
	"github.com/ForensicRS/frnsc-triage/buffer"
	log "github.com/ForensicRS/frnsc-triage/logger"
	"github.com/ForensicRS/frnsc-triage/pathexpand"
)

// CollectionParameters mirrors spec.md §4.8's input struct.
type CollectionParameters struct {
	AllDisksMFT   bool
	USNJournal    bool
	AllUSNJournal bool
	Paths         []string
	OutFile       string
	Threads       int
	BufferSize    int
}

// DefaultCollectionParameters matches spec.md §6's defaults.
func DefaultCollectionParameters() CollectionParameters {
	return CollectionParameters{
		Paths:      artifacts.DefaultCollectionPaths(),
		OutFile:    "./frnsc-triage.zip",
		Threads:    4,
		BufferSize: 1_000_000,
	}
}

// RawFile is the subset of rawfile.File the orchestrator depends on, so
// tests can substitute fakes instead of opening a live Windows volume.
type RawFile interface {
	Read(p []byte) (int, error)
	FileSize() uint64
	Close() error
}

// Opener resolves one concrete path to a RawFile, mirroring
// rawfile.Open's signature.
type Opener func(path string, buf *buffer.Buffer) (RawFile, error)

// queue is the mutex-guarded LIFO work queue spec.md §5 describes.
type queue struct {
	mu    sync.Mutex
	paths []string
}

func newQueue(paths []string) *queue {
	return &queue{paths: paths}
}

// pop removes and returns the most recently pushed path (LIFO), or
// ok=false once empty.
func (q *queue) pop() (path string, ok bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	n := len(q.paths)
	if n == 0 {
		return "", false
	}
	path, q.paths = q.paths[n-1], q.paths[:n-1]
	return path, true
}

// Collector runs the worker pool over an already-resolved, already-
// expanded path list against an injected Opener and archive Writer.
// Building the path list (catalog + sysvars + pathexpand) is handled by
// Prepare/ExpandAll; Collector itself has no registry or
// filesystem-enumeration dependency, which is what keeps it unit
// testable without a live Windows host.
type Collector struct {
	params CollectionParameters
	open   Opener
}

// NewCollector builds a Collector that opens files via open.
func NewCollector(params CollectionParameters, open Opener) *Collector {
	if params.Threads <= 0 {
		params.Threads = 4
	}
	if params.BufferSize <= 0 {
		params.BufferSize = 1_000_000
	}
	return &Collector{params: params, open: open}
}

// Run drives the worker pool over paths, writing every successfully
// opened file into w. It blocks until every worker has drained the
// queue, then returns. Per-file errors are logged and swallowed
// (spec.md §7), so Run always returns nil; it does not close w, which
// is left to the caller.
func (c *Collector) Run(paths []string, w *archive.Writer) error {
	log.Tracef(">>>>> Run, paths=%d threads=%d", len(paths), c.params.Threads)
	defer log.Trace("<<<<< Run")

	q := newQueue(paths)
	var wg sync.WaitGroup
	wg.Add(c.params.Threads)
	for i := 0; i < c.params.Threads; i++ {
		go func(worker int) {
			defer wg.Done()
			c.workerLoop(worker, q, w)
		}(i)
	}
	wg.Wait()
	return nil
}

func (c *Collector) workerLoop(worker int, q *queue, w *archive.Writer) {
	buf := buffer.WithCapacity(c.params.BufferSize)
	for {
		path, ok := q.pop()
		if !ok {
			return
		}
		c.processOne(worker, path, buf, w)
	}
}

func (c *Collector) processOne(worker int, path string, buf *buffer.Buffer, w *archive.Writer) {
	file, err := c.open(path, buf)
	if err != nil {
		log.Warnf("triage worker %d: error opening %s: %v", worker, path, err)
		return
	}
	defer file.Close()

	parent := parentDir(path)
	fileSize := file.FileSize()
	scratch := buf.U8()

	if fileSize < uint64(c.params.BufferSize) {
		c.collectSmallFile(worker, path, parent, file, fileSize, scratch, w)
		return
	}
	c.collectLargeFile(worker, path, parent, file, w)
}

// collectSmallFile reads the whole file into scratch before acquiring
// the archive mutex, minimizing the critical section (spec.md §4.8).
func (c *Collector) collectSmallFile(worker int, path, parent string, file RawFile, fileSize uint64, scratch []byte, w *archive.Writer) {
	n, err := readFull(file, scratch, fileSize)
	if err != nil {
		log.Warnf("triage worker %d: error reading %s: %v", worker, path, err)
		return
	}
	if err := w.WriteFile(path, parent, &byteReader{scratch[:n]}); err != nil {
		log.Warnf("triage worker %d: error archiving %s: %v", worker, path, err)
	}
}

// collectLargeFile streams directly from file into the archive, holding
// the archive mutex for the whole transfer — the literal spec.md §4.8
// policy (see DESIGN.md's Open Questions for why this, not a
// channel-fed single writer, was chosen).
func (c *Collector) collectLargeFile(worker int, path, parent string, file RawFile, w *archive.Writer) {
	if err := w.WriteFile(path, parent, eofReader{file}); err != nil {
		log.Warnf("triage worker %d: error archiving %s: %v", worker, path, err)
	}
}

// readFull reads from r until it has returned the file's full logical
// size, r.Read signals exhaustion (n==0, spec.md P3), or an error
// occurs. It stops as soon as total reaches want rather than looping
// until dst itself fills up: once every logical byte has been read, any
// further call would hand Cursor.Read a remaining slice that may be
// shorter than one cluster, which is rejected as BufferTooSmall
// (cursor.go checks buffer length before the EOF predicate).
func readFull(r RawFile, dst []byte, want uint64) (int, error) {
	total := 0
	for uint64(total) < want && total < len(dst) {
		n, err := r.Read(dst[total:])
		total += n
		if n == 0 || err != nil {
			if err != nil && err != io.EOF {
				return total, err
			}
			break
		}
	}
	return total, nil
}

// byteReader adapts an in-memory byte slice to io.Reader for the
// small-file path, where the whole file is already in scratch.
type byteReader struct{ b []byte }

func (r *byteReader) Read(p []byte) (int, error) {
	if len(r.b) == 0 {
		return 0, io.EOF
	}
	n := copy(p, r.b)
	r.b = r.b[n:]
	return n, nil
}

// eofReader adapts a RawFile to io.Reader for the large-file path:
// RawFile.Read reports exhaustion as (0, nil), which io.Copy would keep
// retrying, so it is turned into io.EOF here.
type eofReader struct{ r RawFile }

func (e eofReader) Read(p []byte) (int, error) {
	n, err := e.r.Read(p)
	if n == 0 && err == nil {
		return 0, io.EOF
	}
	return n, err
}

func parentDir(pth string) string {
	idx := -1
	for i := len(pth) - 1; i >= 0; i-- {
		if pth[i] == '\\' {
			idx = i
			break
		}
	}
	if idx <= 0 {
		return ""
	}
	return pth[:idx]
}

// PrepareParams bundles everything Prepare needs to build the resolved,
// pre-expansion path list (artifacts.Resolve's inputs).
type PrepareParams struct {
	SystemDrive    string
	SystemRoot     string
	ProgramData    string
	UserHomes      []string
	MountedDevices []string
}

// Prepare resolves params.Paths (or the default catalog) against env
// vars and user homes, without expanding glob segments yet.
func Prepare(params CollectionParameters, sv PrepareParams) []string {
	paths := params.Paths
	if len(paths) == 0 {
		paths = artifacts.DefaultCollectionPaths()
	}
	return artifacts.Resolve(artifacts.ResolveParams{
		Paths:          paths,
		SystemDrive:    sv.SystemDrive,
		SystemRoot:     sv.SystemRoot,
		ProgramData:    sv.ProgramData,
		UserHomes:      sv.UserHomes,
		MountedDevices: sv.MountedDevices,
		USNJournal:     params.USNJournal,
		AllDisksMFT:    params.AllDisksMFT,
		AllUSNJournal:  params.AllUSNJournal,
	})
}

// ExpandAll runs every resolved template through reader, flattening
// wildcard matches into a single concrete path list (R2: deterministic
// up to directory-enumeration order).
func ExpandAll(reader pathexpand.DirReader, templates []string) []string {
	var out []string
	for _, template := range templates {
		e := pathexpand.New(reader, template)
		for {
			p, ok := e.Next()
			if !ok {
				break
			}
			out = append(out, p)
		}
	}
	return out
}
