package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Command names.
const (
	cmdSolve = "solve"
	cmdInit  = "init"
	cmdServe = "serve"
	cmdHelp  = "help"
)

const appVersion = "1.0.0"

func main() {
	_ = godotenv.Load()
	log := newLogger()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := run(ctx, log, os.Stdout, os.Args[1:]); err != nil {
		log.err(err.Error())
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, log *logger, stdout io.Writer, args []string) error {
	if len(args) == 0 {
		return runSolve(ctx, log, stdout, nil)
	}

	switch args[0] {
	case cmdHelp, "-h", "--help":
		printUsage(stdout)
		return nil
	case cmdSolve:
		return runSolve(ctx, log, stdout, args[1:])
	case cmdInit:
		return runInit(log, args[1:])
	case cmdServe:
		return runServe(ctx, log, args[1:])
	default:
		return runSolve(ctx, log, stdout, args)
	}
}

func printUsage(w io.Writer) {
	_, _ = fmt.Fprintln(w, "quartiles: Quartiles word puzzle solver")
	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintln(w, "Usage:")
	_, _ = fmt.Fprintln(w, "  quartiles [solve] [IMAGE] [--tiles LIST] [--min-length N] [--max-group K]")
	_, _ = fmt.Fprintln(w, "                    [--ocr tesseract|vision] [--ocr-psm 4|6|11] [--json] [--config PATH]")
	_, _ = fmt.Fprintln(w, "  quartiles init [--config PATH] [--force]")
	_, _ = fmt.Fprintln(w, "  quartiles serve [--config PATH]")
	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintln(w, "Options:")
	_, _ = fmt.Fprintln(w, "  --tiles       Tiles separated by spaces or commas (overrides IMAGE)")
	_, _ = fmt.Fprintln(w, "  --min-length  Minimum word length to include (default: 2)")
	_, _ = fmt.Fprintln(w, "  --max-group   Maximum tiles joined into one word (default: 4)")
	_, _ = fmt.Fprintln(w, "  --ocr         Tile extraction: tesseract (default) or vision")
	_, _ = fmt.Fprintln(w, "  --ocr-psm     Tesseract PSM mode: 6=uniform block (default), 4=single column, 11=sparse text")
	_, _ = fmt.Fprintln(w, "  --json        Print the result as JSON")
	_, _ = fmt.Fprintln(w, "  --config      Path to quartiles.json (default: $QUARTILES_HOME/quartiles.json or ./quartiles.json)")
	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintln(w, "With neither IMAGE nor --tiles a built-in demo puzzle is solved.")
	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintln(w, "Environment:")
	_, _ = fmt.Fprintln(w, "  OPENAI_API_KEY       API key for --ocr vision")
	_, _ = fmt.Fprintln(w, "  QUARTILES_LOG_LEVEL  debug, info, warn or error")
	_, _ = fmt.Fprintln(w, "  NO_COLOR             Disable colored output")
}

// parseInterspersed parses flags that may appear before or after positional
// arguments and returns the positionals in order.
func parseInterspersed(fs *flag.FlagSet, args []string) ([]string, error) {
	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		if fs.NArg() == 0 {
			return positional, nil
		}
		positional = append(positional, fs.Arg(0))
		args = fs.Args()[1:]
	}
}

func runSolve(ctx context.Context, log *logger, stdout io.Writer, args []string) error {
	fs := flag.NewFlagSet(cmdSolve, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	var (
		configPath string
		tileList   string
		ocrMode    string
		minLength  int
		maxGroup   int
		psm        int
		asJSON     bool
	)
	fs.StringVar(&configPath, "config", "", "config path")
	fs.StringVar(&tileList, "tiles", "", "tiles separated by spaces or commas")
	fs.StringVar(&ocrMode, "ocr", "", "tile extraction mode: tesseract or vision")
	fs.IntVar(&minLength, "min-length", 0, "minimum word length")
	fs.IntVar(&maxGroup, "max-group", 0, "maximum tiles per word")
	fs.IntVar(&psm, "ocr-psm", 0, "tesseract page segmentation mode")
	fs.BoolVar(&asJSON, "json", false, "print JSON")
	positional, err := parseInterspersed(fs, args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			printUsage(stdout)
			return nil
		}
		return err
	}
	if len(positional) > 1 {
		return fmt.Errorf("expected at most one image path, got %d arguments", len(positional))
	}
	var imagePath string
	if len(positional) == 1 {
		imagePath = positional[0]
	}

	cfg, err := loadConfig(resolveConfigPath(configPath))
	if err != nil {
		return err
	}
	setFlags := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { setFlags[f.Name] = true })
	if setFlags["min-length"] {
		cfg.Solver.MinLength = minLength
	}
	if setFlags["max-group"] {
		cfg.Solver.MaxGroup = maxGroup
	}
	if setFlags["ocr"] {
		cfg.OCR.Mode = strings.ToLower(strings.TrimSpace(ocrMode))
	}
	if setFlags["ocr-psm"] {
		cfg.OCR.PSM = psm
	}
	if err := cfg.validate(); err != nil {
		return err
	}

	tiles, err := acquireTiles(ctx, cfg, log, tileList, imagePath)
	if err != nil {
		return err
	}
	if !asJSON {
		_, _ = fmt.Fprintf(stdout, "Tiles (%d total):\n\n", len(tiles))
		printTilesGrid(stdout, tiles)
		_, _ = fmt.Fprintln(stdout)
	}

	lex, err := loadDictionary(ctx, cfg.Dictionary, log)
	if err != nil {
		return fmt.Errorf("could not load dictionary: %w", err)
	}

	if err := checkCandidateBudget(len(tiles), cfg.Solver.MaxGroup, cfg.Solver.MaxCandidates); err != nil {
		return err
	}
	log.infof("finding combinations: tiles=%d maxGroup=%d candidates=%d", len(tiles), cfg.Solver.MaxGroup, candidateCount(len(tiles), cfg.Solver.MaxGroup))

	start := time.Now()
	res := solve(tiles, lex, solveOptions{MinLength: cfg.Solver.MinLength, MaxGroup: cfg.Solver.MaxGroup})
	log.debugf("solved in %s", time.Since(start).Round(time.Millisecond))

	if asJSON {
		return renderJSON(stdout, res, cfg.Solver.MinLength)
	}
	renderResult(stdout, res, cfg.Solver.MinLength)
	return nil
}

// acquireTiles returns the manual tile list if given, else the tiles read
// from imagePath, else the demo puzzle.
func acquireTiles(ctx context.Context, cfg appConfig, log *logger, tileList, imagePath string) ([]string, error) {
	if strings.TrimSpace(tileList) != "" {
		tiles, err := normalizeTiles(splitTileList(tileList))
		if err != nil {
			return nil, err
		}
		if len(tiles) == 0 {
			return nil, errNoTiles
		}
		log.infof("using manually specified tiles (%d total)", len(tiles))
		return tiles, nil
	}

	if imagePath == "" {
		log.info("no image provided, using default demo tiles")
		return append([]string(nil), demoTiles...), nil
	}

	if _, err := os.Stat(imagePath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("file %q not found", imagePath)
		}
		return nil, fmt.Errorf("stat image: %w", err)
	}

	ex, err := newTileExtractor(cfg, log)
	if err != nil {
		return nil, err
	}
	tiles, err := ex.ExtractTiles(ctx, imagePath)
	if err != nil {
		return nil, err
	}
	if len(tiles) == 0 {
		return nil, fmt.Errorf("%w in the image (try --ocr-psm 6 or --ocr-psm 11, or use --tiles)", errNoTiles)
	}
	log.okf("found %d tiles: %s", len(tiles), strings.Join(tiles, " "))
	log.warn("if tiles look incorrect, try --ocr-psm 6 or --ocr-psm 11, or use --tiles to override")
	return tiles, nil
}

func runInit(log *logger, args []string) error {
	fs := flag.NewFlagSet(cmdInit, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	var (
		configPath string
		force      bool
	)
	fs.StringVar(&configPath, "config", "", "config path")
	fs.BoolVar(&force, "force", false, "overwrite an existing config")
	if err := fs.Parse(args); err != nil {
		return err
	}

	path := resolveConfigPath(configPath)
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}
	if err := saveConfig(path, defaultConfig()); err != nil {
		return err
	}
	log.okf("wrote %s", path)
	return nil
}

func runServe(ctx context.Context, log *logger, args []string) error {
	fs := flag.NewFlagSet(cmdServe, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	var configPath string
	fs.StringVar(&configPath, "config", "", "config path")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := loadConfig(resolveConfigPath(configPath))
	if err != nil {
		return err
	}
	lex, err := loadDictionary(ctx, cfg.Dictionary, log)
	if err != nil {
		return fmt.Errorf("could not load dictionary: %w", err)
	}

	log.infof("serving %s over stdio", toolSolve)
	return serveMCP(ctx, &toolServer{lex: lex, solver: cfg.Solver, log: log}, appVersion)
}
