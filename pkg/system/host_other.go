//go:build !linux

package system

import "errors"

func detectMemory() (int64, error) {
	return 0, errors.New("memory detection is only supported on linux")
}
