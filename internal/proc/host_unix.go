//go:build linux || darwin

package proc

import (
	"os"

	"golang.org/x/sys/unix"
)

// HostInfo returns the hostname and kernel identification for the header
// banner. Both degrade to empty strings.
func HostInfo() (hostname, kernel string) {
	hostname, _ = os.Hostname()

	var uts unix.Utsname
	if err := unix.Uname(&uts); err == nil {
		kernel = unix.ByteSliceToString(uts.Sysname[:]) + " " + unix.ByteSliceToString(uts.Release[:])
	}
	return hostname, kernel
}
