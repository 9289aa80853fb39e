//go:build !unix

package input

import (
	"errors"
	"os"
)

func mmap(_ *os.File, _ int) ([]byte, error) {
	return nil, errors.ErrUnsupported
}

func munmap(_ []byte) error {
	return nil
}
