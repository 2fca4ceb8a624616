//go:build !unix

package source

import (
	"errors"
	"os"
)

func mapFile(f *os.File) ([]byte, error) {
	return nil, errors.New("source: memory mapping not supported on this platform")
}

func unmapFile(data []byte) error {
	return nil
}
