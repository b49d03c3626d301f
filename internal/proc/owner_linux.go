//go:build linux

package proc

import (
	"os"
	"strconv"
	"strings"
	"syscall"
)

// ownerOf resolves the owning user of a pid from the /proc entry's uid,
// falling back to the numeric uid when /etc/passwd has no match.
func ownerOf(pid int) string {
	info, err := os.Stat("/proc/" + strconv.Itoa(pid))
	if err != nil {
		return ""
	}
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return ""
	}

	uid := int(stat.Uid)
	if uid == 0 {
		return "root"
	}
	uidStr := strconv.Itoa(uid)
	if passwd, err := os.ReadFile("/etc/passwd"); err == nil {
		for _, line := range strings.Split(string(passwd), "\n") {
			fields := strings.Split(line, ":")
			if len(fields) > 2 && fields[2] == uidStr {
				return fields[0]
			}
		}
	}
	return uidStr
}
