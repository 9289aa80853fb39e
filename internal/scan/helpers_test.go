package scan

import (
	"strings"
	"sync"
	"testing"
)

// captureSink collects written records as whole lines.
type captureSink struct {
	mu    sync.Mutex
	lines []string
}

func (s *captureSink) WriteAll(p []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lines = append(s.lines, string(p))

	return nil
}

// Lines returns a copy of the captured records.
func (s *captureSink) Lines() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.lines) == 0 {
		return nil
	}

	out := make([]string, len(s.lines))
	copy(out, s.lines)

	return out
}

// scanWhole runs the configured detectors over the full input as a
// single core with no halos and returns the emitted lines.
func scanWhole(t *testing.T, cfg Config, data []byte) []string {
	t.Helper()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("invalid test config: %v", err)
	}

	sink := &captureSink{}
	em := NewEmitter(sink, cfg.JSON, cfg.CapRunBytes)

	if cfg.ASCII {
		if err := scanASCII(&cfg, 0, 0, len(data), data, em); err != nil {
			t.Fatalf("scanASCII: %v", err)
		}
	}

	if cfg.UTF16LE {
		if err := scanUTF16(&cfg, KindUTF16LE, 0, 0, len(data), data, em); err != nil {
			t.Fatalf("scanUTF16 le: %v", err)
		}
	}

	if cfg.UTF16BE {
		if err := scanUTF16(&cfg, KindUTF16BE, 0, 0, len(data), data, em); err != nil {
			t.Fatalf("scanUTF16 be: %v", err)
		}
	}

	return sink.Lines()
}

// utf16le encodes an ASCII string as UTF-16LE bytes.
func utf16le(s string) []byte {
	out := make([]byte, 0, 2*len(s))
	for i := range len(s) {
		out = append(out, s[i], 0x00)
	}

	return out
}

// utf16be encodes an ASCII string as UTF-16BE bytes.
func utf16be(s string) []byte {
	out := make([]byte, 0, 2*len(s))
	for i := range len(s) {
		out = append(out, 0x00, s[i])
	}

	return out
}

// concat joins byte fragments; string fragments are taken literally.
func concat(parts ...any) []byte {
	var out []byte

	for _, p := range parts {
		switch v := p.(type) {
		case string:
			out = append(out, v...)
		case []byte:
			out = append(out, v...)
		case byte:
			out = append(out, v)
		case int:
			out = append(out, byte(v))
		default:
			panic("unsupported fragment type")
		}
	}

	return out
}

func joined(lines []string) string {
	return strings.Join(lines, "")
}
