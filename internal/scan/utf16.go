package scan

// scanUTF16 walks the slice in 2-byte units for maximal runs of
// ASCII-range UTF-16 code units and emits one record per qualifying
// run. The stride starts at b[0] and never resynchronises to odd
// offsets, so a single stray byte in front of an otherwise valid
// sequence suppresses detection.
//
// kind selects the byte order: for KindUTF16LE a unit is accepted when
// the high byte is zero and the low byte printable, for KindUTF16BE
// the mirror. Oversize runs are chunked: once a run reaches
// cfg.CapRunBytes the open chunk is emitted immediately and scanning
// continues from the next unit.
func scanUTF16(cfg *Config, kind Kind, base uint64, coreStart, coreEnd int, b []byte, em *Emitter) error {
	n := len(b)

	var (
		start int // run start in bytes
		chars int // run length in 16-bit units
	)

	// flush closes the open run ending at byte index end. Cap flushes
	// skip the length and terminator checks: the run is not over, the
	// record is a bounded view of its head.
	flush := func(end int, atCap bool) error {
		if chars == 0 {
			return nil
		}

		run := chars
		chars = 0

		if !atCap && run < cfg.MinLen {
			return nil
		}

		if start < coreStart || start >= coreEnd {
			return nil
		}

		if !atCap && cfg.NullOnly {
			if end+1 >= n || b[end] != 0x00 || b[end+1] != 0x00 {
				return nil
			}
		}

		return em.EmitUTF16(kind, base+uint64(start), run, b[start:end])
	}

	i := 0
	for ; i+1 < n; i += 2 {
		lo, hi := b[i], b[i+1]
		if kind == KindUTF16BE {
			lo, hi = hi, lo
		}

		if hi == 0x00 && printable(lo) {
			if chars == 0 {
				start = i
			}

			chars++

			if 2*chars >= cfg.CapRunBytes {
				if err := flush(i+2, true); err != nil {
					return err
				}
			}

			continue
		}

		if err := flush(i, false); err != nil {
			return err
		}
	}

	// Trailing open run at the end of the slice.
	return flush(i, false)
}
