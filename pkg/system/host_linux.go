//go:build linux

package system

import (
	"fmt"

	"golang.org/x/sys/unix"
)

func detectMemory() (int64, error) {
	var info unix.Sysinfo_t
	if err := unix.Sysinfo(&info); err != nil {
		return 0, fmt.Errorf("sysinfo: %w", err)
	}

	return int64(info.Totalram) * int64(info.Unit), nil
}
