package scan

import (
	"errors"
	"testing"
)

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	valid := Config{MinLen: 2, ASCII: true, CapRunBytes: 1}
	if err := valid.Validate(); err != nil {
		t.Fatalf("Validate()=%v, want nil", err)
	}

	for _, tt := range []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{
			name:    "min length below two",
			mutate:  func(c *Config) { c.MinLen = 1 },
			wantErr: ErrMinLenTooSmall,
		},
		{
			name:    "no encodings",
			mutate:  func(c *Config) { c.ASCII = false },
			wantErr: ErrNoEncodings,
		},
		{
			name:    "zero cap",
			mutate:  func(c *Config) { c.CapRunBytes = 0 },
			wantErr: ErrInvalidCap,
		},
		{
			name:    "negative threads",
			mutate:  func(c *Config) { c.Threads = -1 },
			wantErr: ErrInvalidThreads,
		},
	} {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := valid
			tt.mutate(&cfg)

			if err := cfg.Validate(); !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate()=%v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestPrintable(t *testing.T) {
	t.Parallel()

	for _, b := range []byte{' ', '~', 'A', '0', '\t', '\n', '\r'} {
		if !printable(b) {
			t.Errorf("printable(%#02x)=false, want true", b)
		}
	}

	for _, b := range []byte{0x00, 0x01, 0x1f, 0x7f, 0x80, 0xff, 0x0b} {
		if printable(b) {
			t.Errorf("printable(%#02x)=true, want false", b)
		}
	}
}
