package scan

import (
	"fmt"
	"io"
	"runtime"
	"sync"
	"sync/atomic"
)

// Dispatch runs the enabled detectors over every tile using up to
// cfg.Threads workers (0 probes the CPU count; the count is clamped to
// the tile count). A shared atomic counter hands out tile indices so
// uneven tiles balance across workers.
//
// A detector error aborts that worker's current tile only: the error
// is reported on errOut and the worker keeps draining the index.
// Dispatch returns the first error observed, after all workers have
// joined.
func Dispatch(cfg *Config, buf []byte, tiles []Tile, em *Emitter, errOut io.Writer) error {
	workers := cfg.Threads
	if workers == 0 {
		workers = runtime.NumCPU()
	}

	if workers > len(tiles) {
		workers = len(tiles)
	}

	if workers < 1 {
		workers = 1
	}

	var (
		next     atomic.Int64
		mu       sync.Mutex
		firstErr error
	)

	drain := func() {
		for {
			idx := int(next.Add(1)) - 1
			if idx >= len(tiles) {
				return
			}

			if err := scanTile(cfg, buf, tiles[idx], em); err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}

				_, _ = fmt.Fprintf(errOut, "warning: scanning tile %d failed: %v\n", idx, err)
				mu.Unlock()
			}
		}
	}

	if workers == 1 {
		drain()
		return firstErr
	}

	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)

		go func() {
			defer wg.Done()
			drain()
		}()
	}

	wg.Wait()

	return firstErr
}

// scanTile runs the tile's enabled detectors in fixed order over the
// tile span, with core bounds converted to slice-relative offsets.
func scanTile(cfg *Config, buf []byte, t Tile, em *Emitter) error {
	slice := buf[t.Start:t.End]
	coreS := t.CoreStart - t.Start
	coreE := t.CoreEnd - t.Start
	base := uint64(t.Start)

	if t.ASCII {
		if err := scanASCII(cfg, base, coreS, coreE, slice, em); err != nil {
			return err
		}
	}

	if t.UTF16LE {
		if err := scanUTF16(cfg, KindUTF16LE, base, coreS, coreE, slice, em); err != nil {
			return err
		}
	}

	if t.UTF16BE {
		if err := scanUTF16(cfg, KindUTF16BE, base, coreS, coreE, slice, em); err != nil {
			return err
		}
	}

	return nil
}
