package scan

import "runtime"

// Tile is a contiguous span of the input processed by one worker
// invocation: a left halo, a core window, and a right halo. Cores
// partition [0, fileLen) exactly; halos only give the detector the
// bytes it needs to close a run and check a terminator, they never
// own emissions.
type Tile struct {
	Start     int
	CoreStart int
	CoreEnd   int
	End       int

	// Enabled encodings, copied from the config at plan time.
	ASCII   bool
	UTF16LE bool
	UTF16BE bool
}

// Tile sizing bounds.
const (
	minTileHint = 32 << 10 // explicit hints are clamped up to this
	autoTileMin = 64 << 10
	autoTileMax = 2 << 20
	tileRound   = 64 << 10
)

// PlanTiles partitions fileLen bytes into tiles. Every qualifying run
// has its start inside exactly one core; the symmetric halo of
// cfg.Overlap() bytes guarantees the owning detector can observe the
// run's end and terminator past the core boundary.
func PlanTiles(fileLen int, cfg *Config) []Tile {
	ov := cfg.Overlap()
	tile := tileSize(fileLen, cfg, ov)

	if fileLen == 0 {
		return []Tile{{ASCII: cfg.ASCII, UTF16LE: cfg.UTF16LE, UTF16BE: cfg.UTF16BE}}
	}

	tiles := make([]Tile, 0, fileLen/tile+1)

	for pos := 0; pos < fileLen; {
		coreS := pos
		coreE := min(fileLen, pos+tile)

		tiles = append(tiles, Tile{
			Start:     coreS - min(coreS, ov),
			CoreStart: coreS,
			CoreEnd:   coreE,
			End:       coreE + min(ov, fileLen-coreE),
			ASCII:     cfg.ASCII,
			UTF16LE:   cfg.UTF16LE,
			UTF16BE:   cfg.UTF16BE,
		})

		pos = coreE
	}

	return tiles
}

// tileSize resolves the core width of a tile. An explicit hint is used
// above the floor, rounded up to an even width; auto sizing targets a few tiles per worker so
// the work-stealing index can balance uneven tiles.
func tileSize(fileLen int, cfg *Config, ov int) int {
	if cfg.TileHint > 0 {
		t := cfg.TileHint
		if t < minTileHint {
			t = minTileHint
		}

		// Odd tile widths would shift the UTF-16 stride phase
		// between neighbouring tiles.
		if t%2 != 0 {
			t++
		}

		return t
	}

	workers := cfg.Threads
	if workers == 0 {
		workers = runtime.NumCPU()
	}

	if workers < 1 {
		workers = 1
	}

	target := fileLen / (4*workers + 1)
	if target < autoTileMin {
		target = autoTileMin
	}

	if target > autoTileMax {
		target = autoTileMax
	}

	if target < 8*ov {
		target = 8 * ov
	}

	// Round up to a 64 KiB multiple.
	target = (target + tileRound - 1) / tileRound * tileRound

	return target
}
