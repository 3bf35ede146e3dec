//go:build !linux

package kconform

// SystemKernelConfig locates and parses the running kernel's configuration.
// On non-Linux platforms there is no kernel config to discover.
func SystemKernelConfig() (*KernelConfig, error) {
	return nil, ErrUnsupportedPlatform
}
