// +build windows

package ioctl

import (
	"encoding/binary"
	"unsafe"

	"golang.org/x/sys/windows"

	log "github.com/ForensicRS/frnsc-triage/logger"
)

// Extent is one {next_vcn, lcn} retrieval-pointer run, as spec.md §3
// defines it: next_vcn is the first virtual cluster after this extent,
// lcn is the physical cluster on the volume where the extent starts.
type Extent struct {
	NextVCN int64
	LCN     int64
}

// RetrievalPointers is the parsed form of the buffer returned by
// FSCTL_GET_RETRIEVAL_POINTERS.
type RetrievalPointers struct {
	StartingVCN int64
	Extents     []Extent
}

// startingVCNInputBuffer mirrors STARTING_VCN_INPUT_BUFFER.
type startingVCNInputBuffer struct {
	StartingVcn int64
}

// GetRetrievalPointers issues FSCTL_GET_RETRIEVAL_POINTERS against an
// already-open file handle and parses the extent map out of the
// returned buffer. buf must be large enough to hold the whole reply;
// callers size it generously (the teacher's analogous IOCTL call grows
// its buffer on ERROR_MORE_DATA, but a single file's extent list is
// bounded in practice, so a caller-sized scratch buffer is reused here
// per spec.md §4.1's Buffer Pool contract).
func GetRetrievalPointers(fileHandle windows.Handle, buf []byte) (*RetrievalPointers, error) {
	log.Tracef(">>>>> GetRetrievalPointers")
	defer log.Trace("<<<<< GetRetrievalPointers")

	in := startingVCNInputBuffer{StartingVcn: 0}
	var bytesReturned uint32
	err := windows.DeviceIoControl(
		fileHandle,
		FSCTL_GET_RETRIEVAL_POINTERS,
		(*byte)(unsafe.Pointer(&in)),
		uint32(unsafe.Sizeof(in)),
		&buf[0],
		uint32(len(buf)),
		&bytesReturned,
		nil,
	)
	if err != nil {
		log.Errorf("FSCTL_GET_RETRIEVAL_POINTERS failed: %v", err)
		return nil, err
	}

	return ParseRetrievalPointers(buf[:bytesReturned]), nil
}

// ParseRetrievalPointers decodes the on-disk extent record format from
// spec.md §6: little-endian u32 extent_count | 4 bytes pad | i64
// starting_vcn | {i64 next_vcn, i64 lcn} x extent_count. Grounded on
// helpers.rs::buffer_to_retrieval_pointers.
func ParseRetrievalPointers(vc []byte) *RetrievalPointers {
	if len(vc) < 16 {
		return &RetrievalPointers{}
	}
	extentCount := binary.LittleEndian.Uint32(vc[0:4])
	startingVCN := int64(binary.LittleEndian.Uint64(vc[8:16]))

	extents := make([]Extent, 0, extentCount)
	offset := 16
	for i := uint32(0); i < extentCount && offset+16 <= len(vc); i++ {
		nextVCN := int64(binary.LittleEndian.Uint64(vc[offset : offset+8]))
		lcn := int64(binary.LittleEndian.Uint64(vc[offset+8 : offset+16]))
		offset += 16
		extents = append(extents, Extent{NextVCN: nextVCN, LCN: lcn})
	}
	return &RetrievalPointers{StartingVCN: startingVCN, Extents: extents}
}
