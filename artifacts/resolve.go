package artifacts

import (
	"strings"

	"github.com/ForensicRS/frnsc-triage/sysvars"
)

// ResolveParams bundles the inputs needed to turn a collection request
// into a concrete list of path templates. SystemDrive/SystemRoot/
// ProgramData/UserHomes/MountedDevices are pre-resolved by the caller
// (triage) via sysvars, keeping this package free of any registry
// dependency.
type ResolveParams struct {
	Paths           []string // base catalog, usually artifacts.DefaultCollectionPaths()
	SystemDrive     string
	SystemRoot      string
	ProgramData     string
	UserHomes       []string
	MountedDevices  []string
	USNJournal      bool
	AllDisksMFT     bool
	AllUSNJournal   bool
}

// Resolve expands every %ENVVAR% and %USERHOME% token in params.Paths
// (and in the USN journal / all-disks toggles) into concrete path
// templates, still possibly containing `*`/`**` glob segments for
// pathexpand to resolve later, with duplicates removed. Grounded on
// triage.rs::prepare_paths_to_collect.
func Resolve(p ResolveParams) []string {
	seen := make(map[string]bool, len(p.Paths)+8)
	out := make([]string, 0, len(p.Paths)+8)
	add := func(pth string) {
		if pth == "" || seen[pth] {
			return
		}
		seen[pth] = true
		out = append(out, pth)
	}

	if p.USNJournal {
		add(sysvars.ExpandEnvVar(USNJournalPath, p.SystemDrive, p.SystemRoot, p.ProgramData))
		add(sysvars.ExpandEnvVar(USNJournalMaxPath, p.SystemDrive, p.SystemRoot, p.ProgramData))
	}

	if p.AllDisksMFT {
		for _, device := range p.MountedDevices {
			if strings.EqualFold(device, p.SystemDrive) {
				continue
			}
			add(device + `$MFT`)
		}
	}

	if p.AllUSNJournal {
		for _, device := range p.MountedDevices {
			if strings.EqualFold(device, p.SystemDrive) && p.USNJournal {
				continue
			}
			add(device + `$Extend\$UsnJrnl:$J`)
			add(device + `$Extend\$UsnJrnl:$MAX`)
		}
	}

	for _, template := range p.Paths {
		switch {
		case sysvars.IsUserHomeEnv(template):
			for _, expanded := range sysvars.ExpandUserHome(template, p.UserHomes) {
				add(expanded)
			}
		case sysvars.ContainsEnvVar(template):
			add(sysvars.ExpandEnvVar(template, p.SystemDrive, p.SystemRoot, p.ProgramData))
		default:
			add(template)
		}
	}

	return out
}
