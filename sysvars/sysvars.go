// Package sysvars resolves the four path tokens spec.md §4.6 defines
// (%SYSTEMDRIVE%, %SYSTEMROOT%, %PROGRAMDATA%, %USERHOME%) from the live
// registry, with conservative fallbacks, and substitutes them into path
// templates.
//
// The registry is accessed only through the RegistryReader interface
// (spec.md §9 "Global registry access: inject an abstract reader so
// tests can substitute fixtures"); see registry_windows.go for the live
// implementation.
package sysvars

import (
	"strings"

	log "github.com/ForensicRS/frnsc-triage/logger"
)

const (
	DefaultSystemDrive = `C:\`
	DefaultSystemRoot  = `C:\Windows`
	DefaultProgramData = `C:\ProgramData`
)

// Hive identifies a registry hive, abstracted so non-Windows fakes can
// implement RegistryReader without a Windows-specific type.
type Hive int

const HKeyLocalMachine Hive = 0

// Key is an opaque handle returned by OpenKey.
type Key interface{}

// RegistryReader is the external collaborator spec.md §6 calls out:
// open_key(hive, path), enumerate_keys(key), read_value(key, name).
type RegistryReader interface {
	OpenKey(hive Hive, path string) (Key, error)
	EnumerateKeys(key Key) ([]string, error)
	ReadValue(key Key, name string) (string, error)
}

func systemDriveFromRegistry(r RegistryReader) (string, error) {
	key, err := r.OpenKey(HKeyLocalMachine, `SOFTWARE\Microsoft\Windows\CurrentVersion\Setup`)
	if err != nil {
		return "", err
	}
	return r.ReadValue(key, "BootDir")
}

func systemRootFromRegistry(r RegistryReader) (string, error) {
	key, err := r.OpenKey(HKeyLocalMachine, `SOFTWARE\Microsoft\Windows NT\CurrentVersion`)
	if err != nil {
		return "", err
	}
	return r.ReadValue(key, "SystemRoot")
}

func programDataFromRegistry(r RegistryReader) (string, error) {
	key, err := r.OpenKey(HKeyLocalMachine, `SOFTWARE\Microsoft\Windows NT\CurrentVersion\ProfileList`)
	if err != nil {
		return "", err
	}
	return r.ReadValue(key, "ProgramData")
}

func listUsersHomesFromRegistry(r RegistryReader) ([]string, error) {
	key, err := r.OpenKey(HKeyLocalMachine, `SOFTWARE\Microsoft\Windows NT\CurrentVersion\ProfileList`)
	if err != nil {
		return nil, err
	}
	profiles, err := r.EnumerateKeys(key)
	if err != nil {
		return nil, err
	}
	homes := make([]string, 0, len(profiles))
	for _, profile := range profiles {
		profileKey, err := r.OpenKey(HKeyLocalMachine, `SOFTWARE\Microsoft\Windows NT\CurrentVersion\ProfileList\`+profile)
		if err != nil {
			continue
		}
		path, err := r.ReadValue(profileKey, "ProfileImagePath")
		if err != nil {
			continue
		}
		homes = append(homes, path)
	}
	return homes, nil
}

// SystemDrive resolves %SYSTEMDRIVE%, uppercased, falling back to C:\.
func SystemDrive(r RegistryReader) string {
	v, err := systemDriveFromRegistry(r)
	if err != nil {
		log.Warnf(`Error getting SystemDrive from HKLM\SOFTWARE\Microsoft\Windows\CurrentVersion\Setup\BootDir, returning default %s: %v`, DefaultSystemDrive, err)
		return DefaultSystemDrive
	}
	return strings.ToUpper(v)
}

// SystemRoot resolves %SYSTEMROOT%, falling back to C:\Windows.
func SystemRoot(r RegistryReader) string {
	v, err := systemRootFromRegistry(r)
	if err != nil {
		log.Warnf(`Error getting SystemRoot from HKLM\SOFTWARE\Microsoft\Windows NT\CurrentVersion\SystemRoot, returning default %s: %v`, DefaultSystemRoot, err)
		return DefaultSystemRoot
	}
	return v
}

// ProgramData resolves %PROGRAMDATA%, falling back to C:\ProgramData.
func ProgramData(r RegistryReader) string {
	v, err := programDataFromRegistry(r)
	if err != nil {
		log.Warnf(`Error getting ProgramData from HKLM\SOFTWARE\Microsoft\Windows NT\CurrentVersion\ProfileList\ProgramData, returning default %s: %v`, DefaultProgramData, err)
		return DefaultProgramData
	}
	return v
}

// ListUsersHomes resolves %USERHOME% candidates: every ProfileImagePath
// under ProfileList, falling back to a directory listing under
// <SystemDrive>\Users when the registry enumeration fails. The fallback
// directory listing is supplied by the caller (lister) so sysvars keeps
// no direct filesystem dependency.
func ListUsersHomes(r RegistryReader, lister func(dir string) []string) []string {
	homes, err := listUsersHomesFromRegistry(r)
	if err == nil {
		return homes
	}
	sysDrive := SystemDrive(r)
	log.Warnf(`Error getting list_users_homes from HKLM\...\ProfileList, returning directories under %sUsers: %v`, sysDrive, err)
	if lister == nil {
		return nil
	}
	return lister(strings.TrimRight(sysDrive, `\`) + `\Users`)
}

func isSystemDriveEnv(v string) bool { return strings.EqualFold(v, "SYSTEMDRIVE") }
func isSystemRootEnv(v string) bool  { return strings.EqualFold(v, "SYSTEMROOT") }
func isProgramDataEnv(v string) bool { return strings.EqualFold(v, "PROGRAMDATA") }

// IsUserHomeEnv reports whether txt begins with the %USERHOME% token.
func IsUserHomeEnv(txt string) bool {
	return strings.HasPrefix(txt, "%USERHOME%")
}

// ContainsEnvVar reports whether txt begins with a % token.
func ContainsEnvVar(txt string) bool {
	return strings.HasPrefix(txt, "%")
}

func joinResolved(resolved, rest string) string {
	if strings.HasSuffix(resolved, `\`) {
		return resolved + rest
	}
	return resolved + `\` + rest
}

// ExpandEnvVar substitutes a single leading %VAR%\ token in txt with its
// resolved value (spec.md §4.6). Templates containing no recognized
// token, or no token at all, are returned unchanged.
func ExpandEnvVar(txt, systemDrive, systemRoot, progData string) string {
	pos := strings.Index(txt, `%\`)
	if pos < 0 {
		return txt
	}
	variable := txt[1:pos]
	rest := txt[pos+2:]
	switch {
	case isSystemDriveEnv(variable):
		return joinResolved(systemDrive, rest)
	case isSystemRootEnv(variable):
		return joinResolved(systemRoot, rest)
	case isProgramDataEnv(variable):
		return joinResolved(progData, rest)
	default:
		return txt
	}
}

// ExpandUserHome fans a %USERHOME%\... template out to one concrete
// path per entry in homes. Returns nil if txt has no %...%\ token.
func ExpandUserHome(txt string, homes []string) []string {
	pos := strings.Index(txt, `%\`)
	if pos < 0 {
		return nil
	}
	rest := txt[pos+2:]
	out := make([]string, 0, len(homes))
	for _, home := range homes {
		out = append(out, joinResolved(home, rest))
	}
	return out
}
