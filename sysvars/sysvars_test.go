package sysvars

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// fakeKey is a path-addressed fixture key.
type fakeKey struct {
	path string
}

// fakeRegistry is a fixture RegistryReader backed by in-memory maps, so
// tests never touch a live registry.
type fakeRegistry struct {
	values  map[string]map[string]string // path -> name -> value
	subkeys map[string][]string          // path -> child key names
	missing map[string]bool              // paths that fail to open
}

func (f *fakeRegistry) OpenKey(hive Hive, path string) (Key, error) {
	if f.missing[path] {
		return nil, errUnknownHive // any error value suffices for the fixture
	}
	return fakeKey{path}, nil
}

func (f *fakeRegistry) EnumerateKeys(key Key) ([]string, error) {
	k := key.(fakeKey)
	return f.subkeys[k.path], nil
}

func (f *fakeRegistry) ReadValue(key Key, name string) (string, error) {
	k := key.(fakeKey)
	v, ok := f.values[k.path][name]
	if !ok {
		return "", errNotLiveKey
	}
	return v, nil
}

func newFakeRegistry() *fakeRegistry {
	return &fakeRegistry{
		values:  map[string]map[string]string{},
		subkeys: map[string][]string{},
		missing: map[string]bool{},
	}
}

func TestSystemDriveFromRegistry(t *testing.T) {
	r := newFakeRegistry()
	r.values[`SOFTWARE\Microsoft\Windows\CurrentVersion\Setup`] = map[string]string{"BootDir": "c:\\"}
	assert.Equal(t, `C:\`, SystemDrive(r))
}

func TestSystemDriveFallsBackOnMissingKey(t *testing.T) {
	r := newFakeRegistry()
	r.missing[`SOFTWARE\Microsoft\Windows\CurrentVersion\Setup`] = true
	assert.Equal(t, DefaultSystemDrive, SystemDrive(r))
}

func TestSystemRootFromRegistry(t *testing.T) {
	r := newFakeRegistry()
	r.values[`SOFTWARE\Microsoft\Windows NT\CurrentVersion`] = map[string]string{"SystemRoot": `C:\WINDOWS`}
	assert.Equal(t, `C:\WINDOWS`, SystemRoot(r))
}

func TestSystemRootFallsBack(t *testing.T) {
	r := newFakeRegistry()
	assert.Equal(t, DefaultSystemRoot, SystemRoot(r))
}

func TestProgramDataFromRegistry(t *testing.T) {
	r := newFakeRegistry()
	r.values[`SOFTWARE\Microsoft\Windows NT\CurrentVersion\ProfileList`] = map[string]string{"ProgramData": `C:\ProgramData`}
	assert.Equal(t, `C:\ProgramData`, ProgramData(r))
}

func TestListUsersHomesFromRegistry(t *testing.T) {
	r := newFakeRegistry()
	profileList := `SOFTWARE\Microsoft\Windows NT\CurrentVersion\ProfileList`
	r.subkeys[profileList] = []string{"S-1-5-21-1", "S-1-5-21-2"}
	r.values[profileList+`\S-1-5-21-1`] = map[string]string{"ProfileImagePath": `C:\Users\alice`}
	r.values[profileList+`\S-1-5-21-2`] = map[string]string{"ProfileImagePath": `C:\Users\bob`}

	homes := ListUsersHomes(r, nil)
	assert.ElementsMatch(t, []string{`C:\Users\alice`, `C:\Users\bob`}, homes)
}

func TestListUsersHomesFallsBackToLister(t *testing.T) {
	r := newFakeRegistry()
	r.missing[`SOFTWARE\Microsoft\Windows NT\CurrentVersion\ProfileList`] = true
	r.missing[`SOFTWARE\Microsoft\Windows\CurrentVersion\Setup`] = true

	var listedDir string
	homes := ListUsersHomes(r, func(dir string) []string {
		listedDir = dir
		return []string{`C:\Users\eve`}
	})
	assert.Equal(t, `C:\Users`, listedDir)
	assert.Equal(t, []string{`C:\Users\eve`}, homes)
}

func TestExpandEnvVarSystemDrive(t *testing.T) {
	out := ExpandEnvVar(`%SYSTEMDRIVE%\pagefile.sys`, `C:\`, `C:\Windows`, `C:\ProgramData`)
	assert.Equal(t, `C:\pagefile.sys`, out)
}

func TestExpandEnvVarSystemRoot(t *testing.T) {
	out := ExpandEnvVar(`%SYSTEMROOT%\System32\config\SAM`, `C:\`, `C:\Windows`, `C:\ProgramData`)
	assert.Equal(t, `C:\Windows\System32\config\SAM`, out)
}

func TestExpandEnvVarProgramData(t *testing.T) {
	out := ExpandEnvVar(`%PROGRAMDATA%\Microsoft\Windows Defender`, `C:\`, `C:\Windows`, `C:\ProgramData`)
	assert.Equal(t, `C:\ProgramData\Microsoft\Windows Defender`, out)
}

func TestExpandEnvVarUnrecognizedTokenUnchanged(t *testing.T) {
	out := ExpandEnvVar(`%WINDIR%\System32`, `C:\`, `C:\Windows`, `C:\ProgramData`)
	assert.Equal(t, `%WINDIR%\System32`, out)
}

func TestExpandEnvVarNoTokenUnchanged(t *testing.T) {
	out := ExpandEnvVar(`C:\Windows\System32`, `C:\`, `C:\Windows`, `C:\ProgramData`)
	assert.Equal(t, `C:\Windows\System32`, out)
}

func TestExpandUserHome(t *testing.T) {
	out := ExpandUserHome(`%USERHOME%\NTUSER.DAT`, []string{`C:\Users\alice`, `C:\Users\bob`})
	assert.ElementsMatch(t, []string{`C:\Users\alice\NTUSER.DAT`, `C:\Users\bob\NTUSER.DAT`}, out)
}

func TestExpandUserHomeNoToken(t *testing.T) {
	out := ExpandUserHome(`C:\Windows\System32`, []string{`C:\Users\alice`})
	assert.Nil(t, out)
}

func TestIsUserHomeEnv(t *testing.T) {
	assert.True(t, IsUserHomeEnv(`%USERHOME%\NTUSER.DAT`))
	assert.False(t, IsUserHomeEnv(`%SYSTEMROOT%\System32`))
}
