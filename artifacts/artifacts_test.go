package artifacts

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultCollectionPathsCount(t *testing.T) {
	paths := DefaultCollectionPaths()
	assert.Len(t, paths, 42)
	assert.Contains(t, paths, `%SYSTEMDRIVE%\$MFT`)
	assert.Contains(t, paths, `%USERHOME%\NTUser.DAT`)
}

func TestDefaultCollectionPathsIsACopy(t *testing.T) {
	a := DefaultCollectionPaths()
	a[0] = "mutated"
	b := DefaultCollectionPaths()
	assert.NotEqual(t, a[0], b[0])
}

func baseParams() ResolveParams {
	return ResolveParams{
		Paths:       []string{`%SYSTEMROOT%\System32\drivers\etc\hosts`},
		SystemDrive: `C:\`,
		SystemRoot:  `C:\Windows`,
		ProgramData: `C:\ProgramData`,
		UserHomes:   []string{`C:\Users\alice`, `C:\Users\bob`},
	}
}

func TestResolveEnvVarTemplate(t *testing.T) {
	out := Resolve(baseParams())
	assert.Equal(t, []string{`C:\Windows\System32\drivers\etc\hosts`}, out)
}

func TestResolveUserHomeFansOut(t *testing.T) {
	p := baseParams()
	p.Paths = []string{`%USERHOME%\NTUser.DAT`}
	out := Resolve(p)
	assert.ElementsMatch(t, []string{`C:\Users\alice\NTUser.DAT`, `C:\Users\bob\NTUser.DAT`}, out)
}

func TestResolveLiteralPathUnchanged(t *testing.T) {
	p := baseParams()
	p.Paths = []string{`C:\pagefile.sys`}
	out := Resolve(p)
	assert.Equal(t, []string{`C:\pagefile.sys`}, out)
}

func TestResolveUSNJournal(t *testing.T) {
	p := baseParams()
	p.Paths = nil
	p.USNJournal = true
	out := Resolve(p)
	assert.ElementsMatch(t, []string{
		`C:\$Extend\$UsnJrnl:$J`,
		`C:\$Extend\$UsnJrnl:$MAX`,
	}, out)
}

func TestResolveAllDisksMFTSkipsSystemDrive(t *testing.T) {
	p := baseParams()
	p.Paths = nil
	p.AllDisksMFT = true
	p.MountedDevices = []string{`C:\`, `D:\`, `E:\`}
	out := Resolve(p)
	assert.ElementsMatch(t, []string{`D:\$MFT`, `E:\$MFT`}, out)
}

func TestResolveAllUSNJournalSkipsSystemDriveWhenAlreadyCollected(t *testing.T) {
	p := baseParams()
	p.Paths = nil
	p.USNJournal = true
	p.AllUSNJournal = true
	p.MountedDevices = []string{`C:\`, `D:\`}
	out := Resolve(p)
	assert.ElementsMatch(t, []string{
		`C:\$Extend\$UsnJrnl:$J`,
		`C:\$Extend\$UsnJrnl:$MAX`,
		`D:\$Extend\$UsnJrnl:$J`,
		`D:\$Extend\$UsnJrnl:$MAX`,
	}, out)
}

func TestResolveDeduplicates(t *testing.T) {
	p := baseParams()
	p.Paths = []string{
		`%SYSTEMROOT%\System32\drivers\etc\hosts`,
		`%SYSTEMROOT%\System32\drivers\etc\hosts`,
	}
	out := Resolve(p)
	assert.Equal(t, []string{`C:\Windows\System32\drivers\etc\hosts`}, out)
}

func TestResolvePreservesGlobSegments(t *testing.T) {
	p := baseParams()
	p.Paths = []string{`%SYSTEMROOT%\Prefetch\**`}
	out := Resolve(p)
	assert.Equal(t, []string{`C:\Windows\Prefetch\**`}, out)
}
