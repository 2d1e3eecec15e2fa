package sysvars

import "errors"

var (
	errNotLiveKey = errors.New("sysvars: key was not opened by LiveRegistry")
	errUnknownHive = errors.New("sysvars: unknown registry hive")
)
