// +build !windows

package main

import "os"

// Collection reads raw NTFS volumes, so this entry point only does
// anything useful on Windows; other platforms get a clear message
// instead of a missing-symbol build failure.
func main() {
	println("frnsc-triage: requires Windows")
	os.Exit(1)
}
