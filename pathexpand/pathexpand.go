// Package pathexpand expands glob-style path templates (`*` single
// segment, `**` recursive) against a filesystem into concrete paths
// (spec.md §4.5).
//
// Per spec.md §9 ("Cyclic glob iterators"), the expander is modeled as
// an explicit stack of (directory, remaining-segments) frames rather
// than boxed recursive iterators, so there is no per-level iterator
// object chain to leak or cycle through.
//
// Unclear-source-behavior decision (spec.md §9): when a wildcard
// pattern matches nothing under a directory, the base path is NOT
// re-emitted as a fallback artifact. Only genuine matches (or, for a
// template with no wildcard at all, the literal template) are emitted.
package pathexpand

import (
	"regexp"
	"strings"
	"sync"

	log "github.com/ForensicRS/frnsc-triage/logger"
)

const sep = `\`

// DirReader abstracts directory enumeration so tests can substitute
// fixtures instead of hitting a live filesystem.
type DirReader interface {
	// ReadDir lists the immediate entries of dir, returning their names
	// (not full paths) and whether each is itself a directory. An error
	// here is swallowed by the expander (logged, not fatal) per spec.md
	// §4.5's graceful-degradation rule.
	ReadDir(dir string) (entries []Entry, err error)
}

// Entry is one directory entry.
type Entry struct {
	Name  string
	IsDir bool
}

// frame is one level of pending work: a directory to enumerate against
// a remaining pattern-segment list.
type frame struct {
	dir      string
	segments []string // remaining pattern segments to match under dir
}

// Expand lazily produces every concrete path matching template.
// Consumers pull via Next until ok is false.
type Expand struct {
	reader DirReader
	stack  []frame
	queue  []string // already-resolved matches ready to hand out
	done   bool
}

// New parses template and returns a lazy expander. If template contains
// no `*`, the single-element expansion is the template itself
// (spec.md §4.5: "no wildcard: emit the base as-is, no existence check").
func New(reader DirReader, template string) *Expand {
	segments := strings.Split(template, sep)

	base, tail := splitBase(segments)
	if len(tail) == 0 {
		return &Expand{queue: []string{strings.Join(base, sep)}, done: true}
	}

	baseDir := strings.Join(base, sep)
	return &Expand{
		reader: reader,
		stack:  []frame{{dir: baseDir, segments: tail}},
	}
}

// splitBase returns the longest wildcard-free prefix of segments (the
// base) and the remaining tail starting at the first wildcard segment.
func splitBase(segments []string) (base, tail []string) {
	for i, s := range segments {
		if strings.Contains(s, "*") {
			return segments[:i], segments[i:]
		}
	}
	return segments, nil
}

// Next returns the next concrete path, or ok=false once exhausted.
func (e *Expand) Next() (path string, ok bool) {
	for {
		if len(e.queue) > 0 {
			path, e.queue = e.queue[0], e.queue[1:]
			return path, true
		}
		if len(e.stack) == 0 {
			return "", false
		}
		e.step()
	}
}

// step pops one frame and expands it by one segment, pushing child
// frames or resolved matches.
func (e *Expand) step() {
	n := len(e.stack) - 1
	f := e.stack[n]
	e.stack = e.stack[:n]

	segment, rest := f.segments[0], f.segments[1:]

	entries, err := e.reader.ReadDir(f.dir)
	if err != nil {
		log.Warnf("pathexpand: cannot read dir %s: %v", f.dir, err)
		return
	}

	if segment == "**" {
		e.expandRecursive(f.dir, rest, entries)
		return
	}
	e.expandSingleSegment(f.dir, segment, rest, entries)
}

// expandSingleSegment matches entries in dir against a single `*`
// segment pattern, anchoring the whole name.
func (e *Expand) expandSingleSegment(dir, segment string, rest []string, entries []Entry) {
	re := segmentRegex(segment)
	for _, ent := range entries {
		if !re.MatchString(ent.Name) {
			continue
		}
		childPath := dir + sep + ent.Name
		if len(rest) == 0 {
			if !ent.IsDir {
				e.queue = append(e.queue, childPath)
			}
			continue
		}
		if ent.IsDir {
			e.stack = append(e.stack, frame{dir: childPath, segments: rest})
		}
	}
}

// expandRecursive matches `**`: zero or more directory segments, so the
// remaining pattern is tried both at this level and, for every
// subdirectory, one level deeper (still under the same `**`). A
// trailing `**` (no rest) matches every file at every depth, so every
// non-dir entry at this level is queued directly.
func (e *Expand) expandRecursive(dir string, rest []string, entries []Entry) {
	if len(rest) > 0 {
		// Zero directories consumed: try rest directly here.
		e.stack = append(e.stack, frame{dir: dir, segments: rest})
	} else {
		for _, ent := range entries {
			if !ent.IsDir {
				e.queue = append(e.queue, dir+sep+ent.Name)
			}
		}
	}
	// One or more: recurse into every subdirectory, keeping `**` alive.
	for _, ent := range entries {
		if ent.IsDir {
			e.stack = append(e.stack, frame{dir: dir + sep + ent.Name, segments: append([]string{"**"}, rest...)})
		}
	}
}

var regexCache sync.Map

func segmentRegex(segment string) *regexp.Regexp {
	if v, ok := regexCache.Load(segment); ok {
		return v.(*regexp.Regexp)
	}
	var b strings.Builder
	b.WriteString("^")
	for _, r := range segment {
		switch r {
		case '.':
			b.WriteString(`\.`)
		case '*':
			b.WriteString(".*")
		default:
			b.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	b.WriteString("$")
	re := regexp.MustCompile(b.String())
	regexCache.Store(segment, re)
	return re
}
