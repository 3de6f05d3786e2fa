//go:build !unix

package surface

import "os"

func closeHandle(fd int) error {
	return os.NewFile(uintptr(fd), "handoff").Close()
}
