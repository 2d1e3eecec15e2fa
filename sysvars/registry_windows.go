// +build windows

package sysvars

import (
	"golang.org/x/sys/windows/registry"
)

// liveKey wraps a real registry.Key so it satisfies the opaque Key type.
type liveKey struct {
	k registry.Key
}

// LiveRegistry is the production RegistryReader, backed by
// golang.org/x/sys/windows/registry.
type LiveRegistry struct{}

func (LiveRegistry) OpenKey(hive Hive, path string) (Key, error) {
	root, err := rootKey(hive)
	if err != nil {
		return nil, err
	}
	k, err := registry.OpenKey(root, path, registry.READ)
	if err != nil {
		return nil, err
	}
	return liveKey{k}, nil
}

func (LiveRegistry) EnumerateKeys(key Key) ([]string, error) {
	lk, ok := key.(liveKey)
	if !ok {
		return nil, errNotLiveKey
	}
	return lk.k.ReadSubKeyNames(-1)
}

func (LiveRegistry) ReadValue(key Key, name string) (string, error) {
	lk, ok := key.(liveKey)
	if !ok {
		return "", errNotLiveKey
	}
	v, _, err := lk.k.GetStringValue(name)
	return v, err
}

func rootKey(hive Hive) (registry.Key, error) {
	switch hive {
	case HKeyLocalMachine:
		return registry.LOCAL_MACHINE, nil
	default:
		return 0, errUnknownHive
	}
}
