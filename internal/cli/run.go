// Package cli implements the stringer command line: flag parsing,
// layered defaults, input acquisition, and scan orchestration.
package cli

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/SkyWolf-re/stringer/internal/input"
	"github.com/SkyWolf-re/stringer/internal/scan"

	flag "github.com/spf13/pflag"
)

const version = "0.1.0"

// Exit codes.
const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

// Built-in defaults, overridable by config files and flags.
const (
	defaultMinLen = 2
	defaultEnc    = "ascii,utf16le"
	defaultCap    = 4096
)

var (
	errNoInput         = errors.New("expected exactly one input path (or - for stdin)")
	errUnknownEncoding = errors.New("unknown encoding")
	errInvalidThreads  = errors.New("threads must be a non-negative integer or auto")
)

// Run is the main entry point. Returns the exit code: 0 on success,
// 2 on invalid arguments or configuration, 1 on I/O or scan errors.
// env supplies the process environment (for config discovery); in is
// standard input, consumed only when the operand is "-".
func Run(in io.Reader, out, errOut io.Writer, args []string, env map[string]string) int {
	flags := flag.NewFlagSet("stringer", flag.ContinueOnError)
	flags.SortFlags = false
	flags.Usage = func() {}
	flags.SetOutput(&strings.Builder{}) // discard pflag output

	flagMinLen := flags.IntP("min-len", "m", defaultMinLen, "Minimum run length in units")
	flagEnc := flags.StringP("enc", "e", defaultEnc, "Encodings: ascii,utf16le,utf16be,all")
	flagThreads := flags.StringP("threads", "t", "auto", "Worker count, or auto")
	flagJSON := flags.BoolP("json", "j", false, "JSON line output")
	flagNullOnly := flags.BoolP("null-only", "n", false, "Require NUL terminator after each run")
	flagCap := flags.IntP("cap-run-bytes", "c", defaultCap, "Detector and render cap in bytes")
	flagOutput := flags.StringP("output", "o", "", "Write records to file (atomic)")
	flagTile := flags.Int("tile-bytes", 0, "Planner tile size hint (0 = auto)")
	flagConfig := flags.String("config", "", "Use specified config file")
	flagCwd := flags.String("cwd", "", "Run as if started in dir")
	flagVersion := flags.BoolP("version", "v", false, "Print version")
	flagHelp := flags.BoolP("help", "h", false, "Show help")

	if err := flags.Parse(args[1:]); err != nil {
		fprintln(errOut, "error:", err)
		printUsage(errOut)

		return exitUsage
	}

	if *flagHelp {
		printUsage(out)
		return exitOK
	}

	if *flagVersion {
		fprintln(out, "stringer", version)
		return exitOK
	}

	operands := flags.Args()
	if len(operands) != 1 {
		fprintln(errOut, "error:", errNoInput)
		printUsage(errOut)

		return exitUsage
	}

	workDir := *flagCwd
	if workDir == "" {
		workDir = "."
	}

	// Layer settings: built-in defaults, then config files, then
	// explicitly set flags.
	fileCfg, err := loadFileConfig(workDir, *flagConfig, env)
	if err != nil {
		fprintln(errOut, "error:", err)
		return exitUsage
	}

	st := settings{
		minLen:      *flagMinLen,
		enc:         *flagEnc,
		threads:     *flagThreads,
		json:        *flagJSON,
		nullOnly:    *flagNullOnly,
		capRunBytes: *flagCap,
		output:      *flagOutput,
		tileBytes:   *flagTile,
	}
	st.applyFile(fileCfg, flags)

	cfg, err := st.scanConfig()
	if err != nil {
		fprintln(errOut, "error:", err)
		return exitUsage
	}

	buf, err := loadInput(in, workDir, operands[0])
	if err != nil {
		fprintln(errOut, "error:", err)
		return exitError
	}
	defer func() { _ = buf.Close() }()

	target := newOutputTarget(out, resolvePath(workDir, st.output))
	em := scan.NewEmitter(target.sink, cfg.JSON, cfg.CapRunBytes)
	tiles := scan.PlanTiles(len(buf.Data), &cfg)

	scanErr := scan.Dispatch(&cfg, buf.Data, tiles, em, errOut)

	if err := target.finish(scanErr == nil); err != nil {
		fprintln(errOut, "error:", err)
		return exitError
	}

	if scanErr != nil {
		fprintln(errOut, "error:", scanErr)
		return exitError
	}

	return exitOK
}

// settings are the effective option values after layering.
type settings struct {
	minLen      int
	enc         string
	threads     string
	json        bool
	nullOnly    bool
	capRunBytes int
	output      string
	tileBytes   int
}

// applyFile fills in config-file values for every option the user did
// not set explicitly on the command line.
func (s *settings) applyFile(fc fileConfig, flags *flag.FlagSet) {
	if fc.MinLen != nil && !flags.Changed("min-len") {
		s.minLen = *fc.MinLen
	}

	if fc.Enc != nil && !flags.Changed("enc") {
		s.enc = *fc.Enc
	}

	if fc.Threads != nil && !flags.Changed("threads") {
		s.threads = *fc.Threads
	}

	if fc.JSON != nil && !flags.Changed("json") {
		s.json = *fc.JSON
	}

	if fc.NullOnly != nil && !flags.Changed("null-only") {
		s.nullOnly = *fc.NullOnly
	}

	if fc.CapRunBytes != nil && !flags.Changed("cap-run-bytes") {
		s.capRunBytes = *fc.CapRunBytes
	}

	if fc.Output != nil && !flags.Changed("output") {
		s.output = *fc.Output
	}
}

// scanConfig converts the settings into a validated scan config.
func (s *settings) scanConfig() (scan.Config, error) {
	ascii, le, be, err := parseEncodings(s.enc)
	if err != nil {
		return scan.Config{}, err
	}

	threads, err := parseThreads(s.threads)
	if err != nil {
		return scan.Config{}, err
	}

	cfg := scan.Config{
		MinLen:      s.minLen,
		ASCII:       ascii,
		UTF16LE:     le,
		UTF16BE:     be,
		Threads:     threads,
		JSON:        s.json,
		NullOnly:    s.nullOnly,
		CapRunBytes: s.capRunBytes,
		TileHint:    s.tileBytes,
	}

	if err := cfg.Validate(); err != nil {
		return scan.Config{}, err
	}

	return cfg, nil
}

// parseEncodings resolves the comma-separated encoding list.
func parseEncodings(list string) (ascii, le, be bool, err error) {
	for _, name := range strings.Split(list, ",") {
		switch strings.TrimSpace(name) {
		case "ascii":
			ascii = true
		case "utf16le":
			le = true
		case "utf16be":
			be = true
		case "all":
			ascii, le, be = true, true, true
		case "":
		default:
			return false, false, false, fmt.Errorf("%w: %q", errUnknownEncoding, name)
		}
	}

	return ascii, le, be, nil
}

// parseThreads resolves the --threads value; "auto" and 0 both mean
// probe the CPU count at dispatch time.
func parseThreads(s string) (int, error) {
	if s == "auto" || s == "" {
		return 0, nil
	}

	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: %q", errInvalidThreads, s)
	}

	return n, nil
}

// loadInput acquires the scan buffer from a path or standard input.
func loadInput(in io.Reader, workDir, operand string) (*input.Buffer, error) {
	if operand == "-" {
		return input.ReadAll(in)
	}

	return input.Load(resolvePath(workDir, operand))
}

// resolvePath makes a relative path relative to workDir.
func resolvePath(workDir, path string) string {
	if path == "" || filepath.IsAbs(path) || workDir == "." {
		return path
	}

	return filepath.Join(workDir, path)
}

func fprintln(w io.Writer, a ...any) {
	_, _ = fmt.Fprintln(w, a...)
}

const optionsHelp = `  -m, --min-len <n>        Minimum run length in units (default 2)
  -e, --enc <list>         Comma list of ascii, utf16le, utf16be, all
                           (default ascii,utf16le)
  -t, --threads <n|auto>   Worker count (default auto)
  -j, --json               JSON line output instead of text
  -n, --null-only          Require a NUL terminator after each run
  -c, --cap-run-bytes <n>  Detector and render cap (default 4096)
  -o, --output <file>      Write records to file (committed atomically)
      --tile-bytes <n>     Planner tile size hint (0 = auto)
      --config <file>      Use specified config file
      --cwd <dir>          Run as if started in dir
  -v, --version            Print version and exit
  -h, --help               Show this help`

func printUsage(w io.Writer) {
	fprintln(w, "stringer - batch string extractor for binary files")
	fprintln(w)
	fprintln(w, "Usage: stringer [options] <file|->")
	fprintln(w)
	fprintln(w, "Options:")
	fprintln(w, optionsHelp)
}
