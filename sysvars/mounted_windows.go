// +build windows

package sysvars

import (
	"golang.org/x/sys/windows"

	"github.com/ForensicRS/frnsc-triage/cerrors"
)

// MountedDevices enumerates every mounted drive letter as "C:\", "D:\",
// etc, grounded on sys_vars.rs::mounted_devices (GetLogicalDriveStringsW).
func MountedDevices() ([]string, error) {
	n, err := windows.GetLogicalDriveStrings(0, nil)
	if err != nil {
		return nil, cerrors.NewError(cerrors.OsError, "sizing logical drive strings", err)
	}
	if n == 0 {
		return nil, nil
	}
	buf := make([]uint16, n)
	n, err = windows.GetLogicalDriveStrings(uint32(len(buf)), &buf[0])
	if err != nil {
		return nil, cerrors.NewError(cerrors.OsError, "getting logical drive strings", err)
	}

	var drives []string
	start := 0
	for i := 0; i < int(n); i++ {
		if buf[i] == 0 {
			if i > start {
				drives = append(drives, windows.UTF16ToString(buf[start:i]))
			}
			start = i + 1
		}
	}
	return drives, nil
}
