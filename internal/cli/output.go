package cli

import (
	"bufio"
	"bytes"
	"fmt"
	"io"

	"github.com/SkyWolf-re/stringer/internal/scan"

	"github.com/natefinch/atomic"
)

// outputTarget routes emitted records either to the process stdout
// (buffered, flushed after join) or to an output file. File output is
// collected in memory and committed with an atomic rename only after a
// clean join, so a failed scan never leaves a partial result file.
type outputTarget struct {
	sink   scan.Sink
	finish func(ok bool) error
}

// newOutputTarget selects the sink for this run. path == "" targets w.
func newOutputTarget(w io.Writer, path string) *outputTarget {
	if path == "" {
		bw := bufio.NewWriter(w)

		return &outputTarget{
			sink: scan.NewWriterSink(bw),
			finish: func(bool) error {
				// Flush even after a scan error: partial
				// output on stdout is allowed.
				if err := bw.Flush(); err != nil {
					return fmt.Errorf("flushing output: %w", err)
				}

				return nil
			},
		}
	}

	var mem bytes.Buffer

	return &outputTarget{
		sink: scan.NewWriterSink(&mem),
		finish: func(ok bool) error {
			if !ok {
				return nil
			}

			if err := atomic.WriteFile(path, &mem); err != nil {
				return fmt.Errorf("writing %s: %w", path, err)
			}

			return nil
		},
	}
}
