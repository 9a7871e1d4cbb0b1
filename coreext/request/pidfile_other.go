//go:build !unix

package request

import (
	"os"
	"strconv"
)

// writePidFile writes the process ID to path. Without advisory locks, the file
// is only removed by release.
func writePidFile(path string) (release func(), err error) {
	if err := os.WriteFile(path, []byte(strconv.Itoa(os.Getpid())+"\n"), 0o644); err != nil {
		return nil, err
	}
	return func() { os.Remove(path) }, nil
}
