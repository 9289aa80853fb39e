// Package input acquires the scan buffer: a zero-copy memory map for
// regular files where the platform supports it, a heap read otherwise
// (standard input, empty files, mmap failure).
package input

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// Acquisition errors.
var (
	ErrNotRegular = errors.New("not a regular file")
	ErrTooLarge   = errors.New("file too large")
)

// Origin tags how a buffer was acquired, which determines how it is
// released.
type Origin uint8

const (
	// OriginHeap marks a plain heap allocation.
	OriginHeap Origin = iota

	// OriginMapped marks a borrowed memory map that must be unmapped.
	OriginMapped
)

// Buffer is the read-only input shared by all workers for the duration
// of a scan. It must outlive every worker and be closed after join.
type Buffer struct {
	Data   []byte
	origin Origin
}

// Origin reports how the buffer was acquired.
func (b *Buffer) Origin() Origin {
	return b.origin
}

// Close releases the underlying resource. The buffer must not be used
// afterwards.
func (b *Buffer) Close() error {
	data := b.Data
	b.Data = nil

	if b.origin == OriginMapped && data != nil {
		if err := munmap(data); err != nil {
			return fmt.Errorf("unmapping input: %w", err)
		}
	}

	return nil
}

// Load opens path and exposes its contents. Regular non-empty files
// are memory mapped when possible; otherwise the file is read to the
// heap. Non-regular files are rejected after opening, so no read is
// attempted on a FIFO or device.
func Load(path string) (*Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening input: %w", err)
	}
	defer func() { _ = f.Close() }()

	fi, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat input: %w", err)
	}

	if !fi.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s", ErrNotRegular, path)
	}

	size := fi.Size()
	if size != int64(int(size)) || int(size) < 0 {
		return nil, fmt.Errorf("%w: %s (%d bytes)", ErrTooLarge, path, size)
	}

	if size == 0 {
		return &Buffer{Data: []byte{}, origin: OriginHeap}, nil
	}

	if data, mapErr := mmap(f, int(size)); mapErr == nil {
		return &Buffer{Data: data, origin: OriginMapped}, nil
	}

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}

	return &Buffer{Data: data, origin: OriginHeap}, nil
}

// ReadAll drains r (standard input) into a heap buffer.
func ReadAll(r io.Reader) (*Buffer, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading stdin: %w", err)
	}

	return &Buffer{Data: data, origin: OriginHeap}, nil
}
