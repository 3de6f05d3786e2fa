//go:build unix

package surface

import "golang.org/x/sys/unix"

func closeHandle(fd int) error {
	return unix.Close(fd)
}
