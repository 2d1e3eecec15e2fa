// +build windows

package main

import (
	"flag"
	"os"

	log "github.com/ForensicRS/frnsc-triage/logger"
	"github.com/ForensicRS/frnsc-triage/triage"
)

func main() {
	params := triage.DefaultCollectionParameters()

	outFile := flag.String("out", params.OutFile, "output archive path")
	threads := flag.Int("threads", params.Threads, "worker pool size")
	bufferSize := flag.Int("buffer-size", params.BufferSize, "per-worker scratch buffer size in bytes")
	allDisksMFT := flag.Bool("all-disks-mft", false, "collect $MFT from every mounted drive")
	usnJrnl := flag.Bool("usn-journal", false, "collect the system drive's USN journal")
	allUSNJrnl := flag.Bool("all-usn-journal", false, "collect the USN journal from every mounted drive")
	logFile := flag.String("log-file", "frnsc-triage.log", "trace log destination")
	flag.Parse()

	params.OutFile = *outFile
	params.Threads = *threads
	params.BufferSize = *bufferSize
	params.AllDisksMFT = *allDisksMFT
	params.USNJournal = *usnJrnl
	params.AllUSNJournal = *allUSNJrnl

	lg, err := log.InitLogging(*logFile, nil, true)
	if err != nil {
		os.Exit(1)
	}
	lg.Log().Info("**********************************************")
	lg.Log().Info("*************** FRNSC TRIAGE *****************")
	lg.Log().Info("**********************************************")

	if err := triage.Collect(params); err != nil {
		lg.Log().Errorf("collection failed: %v", err)
		os.Exit(1)
	}
	lg.Log().Infof("collection complete, archive written to %s", params.OutFile)
}
