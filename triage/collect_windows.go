// +build windows

package triage

import (
	"os"

	"github.com/ForensicRS/frnsc-triage/archive"
	"github.com/ForensicRS/frnsc-triage/buffer"
	"github.com/ForensicRS/frnsc-triage/cerrors"
	log "github.com/ForensicRS/frnsc-triage/logger"
	"github.com/ForensicRS/frnsc-triage/pathexpand"
	"github.com/ForensicRS/frnsc-triage/rawfile"
	"github.com/ForensicRS/frnsc-triage/sysvars"
)

// osDirReader lists real directories, for pathexpand.New on Windows.
type osDirReader struct{}

func (osDirReader) ReadDir(dir string) ([]pathexpand.Entry, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	out := make([]pathexpand.Entry, 0, len(entries))
	for _, e := range entries {
		out = append(out, pathexpand.Entry{Name: e.Name(), IsDir: e.IsDir()})
	}
	return out, nil
}

func liveOpener(path string, buf *buffer.Buffer) (RawFile, error) {
	return rawfile.Open(path, buf)
}

func listUsersHomesFallback(dir string) []string {
	entries, err := osDirReader{}.ReadDir(dir)
	if err != nil {
		return nil
	}
	homes := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir {
			homes = append(homes, dir+`\`+e.Name)
		}
	}
	return homes
}

// Collect runs the full pipeline against the live host: resolve system
// variables from the registry, expand the catalog into concrete paths,
// and stream every one into params.OutFile via a Threads-sized worker
// pool (spec.md §4.8).
func Collect(params CollectionParameters) error {
	log.Tracef(">>>>> Collect, out_file=%v threads=%v", params.OutFile, params.Threads)
	defer log.Trace("<<<<< Collect")

	reg := sysvars.LiveRegistry{}
	prepareParams := PrepareParams{
		SystemDrive: sysvars.SystemDrive(reg),
		SystemRoot:  sysvars.SystemRoot(reg),
	}
	prepareParams.ProgramData = sysvars.ExpandEnvVar(
		sysvars.ProgramData(reg), prepareParams.SystemDrive, prepareParams.SystemRoot, "")
	prepareParams.UserHomes = sysvars.ListUsersHomes(reg, listUsersHomesFallback)

	devices, err := sysvars.MountedDevices()
	if err != nil {
		log.Warnf("Collect: error listing mounted devices: %v", err)
	}
	prepareParams.MountedDevices = devices

	templates := Prepare(params, prepareParams)
	paths := ExpandAll(osDirReader{}, templates)
	log.Infof("Collect: expanded %d templates into %d paths", len(templates), len(paths))

	out, err := os.Create(params.OutFile)
	if err != nil {
		return cerrors.NewError(cerrors.ArchiveError, "creating output file ", params.OutFile, err)
	}
	defer out.Close()

	w := archive.New(out)
	collector := NewCollector(params, liveOpener)
	if err := collector.Run(paths, w); err != nil {
		return err
	}
	return w.Close()
}
