//go:build linux

package kconform

import (
	"os"

	"golang.org/x/sys/unix"
)

// SystemKernelConfig locates and parses the running kernel's configuration.
// It tries sources in priority order:
//  1. /proc/config.gz (requires CONFIG_IKCONFIG_PROC=y)
//  2. /boot/config
//  3. /boot/config-$(uname -r)
//  4. /lib/modules/$(uname -r)/config
//
// A source that exists but cannot be read is a *[SourceError]; when no
// source exists at all the result is [ErrKernelConfigNotFound].
func SystemKernelConfig() (*KernelConfig, error) {
	release, err := kernelRelease()
	if err != nil {
		return nil, err
	}

	paths := []string{
		"/proc/config.gz",
		"/boot/config",
		"/boot/config-" + release,
		"/lib/modules/" + release + "/config",
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		return LoadKernelConfig(path)
	}

	return nil, ErrKernelConfigNotFound
}

// kernelRelease returns the kernel release string (e.g., "6.17.0-1005-aws").
func kernelRelease() (string, error) {
	var uname unix.Utsname
	if err := unix.Uname(&uname); err != nil {
		return "", err
	}
	return unix.ByteSliceToString(uname.Release[:]), nil
}
