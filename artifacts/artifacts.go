// Package artifacts holds the built-in catalog of forensic artifact path
// templates (spec.md §4.7) and the logic that turns a CollectionParameters
// request into a concrete, de-duplicated list of templates to resolve.
package artifacts

// USNJournalPath and USNJournalMaxPath are the two data streams that make
// up the NTFS USN change journal, collected only when requested since
// reading $J can be large.
const (
	USNJournalPath    = `%SYSTEMDRIVE%\$Extend\$UsnJrnl:$J`
	USNJournalMaxPath = `%SYSTEMDRIVE%\$Extend\$UsnJrnl:$MAX`
)

// DefaultCollectionPaths returns the built-in 42-entry catalog of
// path templates collected by default, grounded verbatim on
// artifacts.rs::DEFAULT_COLLECTION_PATHS.
func DefaultCollectionPaths() []string {
	out := make([]string, len(defaultCollectionPaths))
	copy(out, defaultCollectionPaths[:])
	return out
}

var defaultCollectionPaths = [42]string{
	`%SYSTEMDRIVE%\$LogFile`,
	`%SYSTEMDRIVE%\$MFT`,
	`%SYSTEMROOT%\Tasks\**`,
	`%SYSTEMROOT%\Prefetch\**`,
	`%SYSTEMROOT%\System32\sru\**`,
	`%SYSTEMROOT%\System32\winevt\Logs\**`,
	`%SYSTEMROOT%\System32\Tasks\**`,
	`%SYSTEMROOT%\System32\Logfiles\W3SVC1\**`,
	`%SYSTEMROOT%\System32\drivers\etc\hosts`,
	`%SYSTEMROOT%\System32\config\SAM`,
	`%SYSTEMROOT%\System32\config\SYSTEM`,
	`%SYSTEMROOT%\System32\config\SECURITY`,
	`%SYSTEMROOT%\System32\config\SOFTWARE`,
	`%SYSTEMROOT%\System32\config\SAM.LOG1`,
	`%SYSTEMROOT%\System32\config\SYSTEM.LOG1`,
	`%SYSTEMROOT%\System32\config\SECURITY.LOG1`,
	`%SYSTEMROOT%\System32\config\SOFTWARE.LOG1`,
	`%SYSTEMROOT%\System32\config\SAM.LOG2`,
	`%SYSTEMROOT%\System32\config\SYSTEM.LOG2`,
	`%SYSTEMROOT%\System32\config\SECURITY.LOG2`,
	`%SYSTEMROOT%\System32\config\SOFTWARE.LOG2`,
	`%SYSTEMROOT%\System32\LogFiles\SUM\**`,
	`%SYSTEMROOT%\Appcompat\Programs\**`,
	`%SYSTEMROOT%\SchedLgU.txt`,
	`%SYSTEMROOT%\inf\setupapi.dev.log`,
	`%PROGRAMDATA%\Microsoft\Windows\Start Menu\Programs\Startup\**`,
	`%SYSTEMDRIVE%\$Recycle.Bin\**\$I*`,
	`%SYSTEMDRIVE%\$Recycle.Bin\$I*`,
	`%USERHOME%\NTUser.DAT`,
	`%USERHOME%\NTUser.DAT.LOG1`,
	`%USERHOME%\NTUser.DAT.LOG2`,
	`%USERHOME%\AppData\Roaming\Microsoft\Windows\Recent\**`,
	`%USERHOME%\AppData\Roaming\Microsoft\Windows\PowerShell\PSReadline\ConsoleHost_history.txt`,
	`%USERHOME%\AppData\Roaming\Mozilla\Firefox\Profiles\**`,
	`%USERHOME%\AppData\Local\Microsoft\Windows\WebCache\**`,
	`%USERHOME%\AppData\Local\Microsoft\Windows\Explorer\**`,
	`%USERHOME%\AppData\Local\Microsoft\Windows\UsrClass.dat`,
	`%USERHOME%\AppData\Local\Microsoft\Windows\UsrClass.dat.LOG1`,
	`%USERHOME%\AppData\Local\Microsoft\Windows\UsrClass.dat.LOG2`,
	`%USERHOME%\AppData\Local\ConnectedDevicesPlatform\**`,
	`%USERHOME%\AppData\Local\Google\Chrome\User Data\Default\History\**`,
	`%USERHOME%\AppData\Local\Microsoft\Edge\User Data\Default\History\**`,
}
