// (c) Copyright 2019 Hewlett Packard Enterprise Development LP

// +build windows

// Package ioctl provides Windows IOCTL support for the volume- and
// file-level control codes the raw reassembler depends on.
package ioctl

// FSCTL_GET_RETRIEVAL_POINTERS is not exported by golang.org/x/sys/windows,
// matching the teacher's own practice of hand-declaring IOCTL codes it
// needs.
const FSCTL_GET_RETRIEVAL_POINTERS = 0x00090073
