//go:build windows

package proc

import "os"

// HostInfo returns the hostname for the header banner. Kernel identification
// is not reported on Windows.
func HostInfo() (hostname, kernel string) {
	hostname, _ = os.Hostname()
	return hostname, ""
}
