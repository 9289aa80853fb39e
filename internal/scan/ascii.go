package scan

// scanASCII walks the slice for maximal runs of printable bytes and
// emits one record per qualifying run. base is the absolute file
// offset of b[0]; the core window [coreStart, coreEnd) is relative to
// b. A run is emitted only when its start lies inside the core, so a
// run that begins in a halo is left to the neighbouring tile that owns
// that byte.
//
// A run longer than cfg.CapRunBytes still produces exactly one record,
// at the run's start, with the reported length capped. The whole
// physical run is consumed either way so the terminator check applies
// at the true run end.
func scanASCII(cfg *Config, base uint64, coreStart, coreEnd int, b []byte, em *Emitter) error {
	n := len(b)

	for i := 0; i < n; {
		if !printable(b[i]) {
			i++
			continue
		}

		start := i
		for i < n && printable(b[i]) {
			i++
		}

		run := i - start

		if run < cfg.MinLen {
			continue
		}

		if start < coreStart || start >= coreEnd {
			continue
		}

		if cfg.NullOnly {
			// A run still open at the end of the halo has no
			// verifiable terminator and is dropped.
			if i >= n || b[i] != 0x00 {
				continue
			}
		}

		chars := run
		if chars > cfg.CapRunBytes {
			chars = cfg.CapRunBytes
		}

		if err := em.EmitASCII(base+uint64(start), chars, b[start:start+chars]); err != nil {
			return err
		}
	}

	return nil
}
