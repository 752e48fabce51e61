package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// errTesseractMissing means the tesseract binary could not be found.
var errTesseractMissing = errors.New("tesseract command not found (install tesseract-ocr, e.g. `brew install tesseract`)")

// tileExtractor reads puzzle tiles out of a screenshot.
type tileExtractor interface {
	ExtractTiles(ctx context.Context, imagePath string) ([]string, error)
}

// tesseractExtractor shells out to the tesseract CLI in TSV mode.
type tesseractExtractor struct {
	bin           string
	psm           int
	minConfidence float64
	log           *logger
}

func newTesseractExtractor(cfg ocrConfig, log *logger) *tesseractExtractor {
	bin := cfg.TesseractPath
	if bin == "" {
		bin = "tesseract"
	}
	return &tesseractExtractor{bin: bin, psm: cfg.PSM, minConfidence: cfg.MinConfidence, log: log}
}

func (t *tesseractExtractor) ExtractTiles(ctx context.Context, imagePath string) ([]string, error) {
	t.log.infof("extracting tiles from %q using tesseract (psm %d)...", imagePath, t.psm)

	cmd := exec.CommandContext(ctx, t.bin, imagePath, "stdout", "--psm", strconv.Itoa(t.psm), "tsv")
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	spin := newSpinner()
	spin.Start("running tesseract...")
	err := cmd.Run()
	spin.Stop()

	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return nil, errTesseractMissing
		}
		var ee *exec.ExitError
		if errors.As(err, &ee) {
			return nil, fmt.Errorf("tesseract failed (exit %d): %s", ee.ExitCode(), strings.TrimSpace(stderr.String()))
		}
		return nil, fmt.Errorf("run tesseract: %w", err)
	}

	tiles, err := parseTesseractTSV(stdout.String(), t.minConfidence)
	if err != nil {
		return nil, err
	}
	t.log.debugf("tesseract kept %d tokens", len(tiles))
	return tiles, nil
}

// parseTesseractTSV picks tile-looking words out of tesseract's TSV output.
// Rows without text, with confidence -1 or below minConfidence are skipped.
func parseTesseractTSV(out string, minConfidence float64) ([]string, error) {
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) == "" {
		return nil, nil
	}

	confIdx, textIdx := -1, -1
	for i, col := range strings.Split(strings.TrimRight(lines[0], "\r"), "\t") {
		switch col {
		case "conf":
			confIdx = i
		case "text":
			textIdx = i
		}
	}
	if confIdx < 0 || textIdx < 0 {
		return nil, errors.New("unexpected TSV format from tesseract")
	}

	var tiles []string
	for _, line := range lines[1:] {
		parts := strings.Split(strings.TrimRight(line, "\r"), "\t")
		if len(parts) <= max(confIdx, textIdx) {
			continue
		}
		confStr, text := parts[confIdx], parts[textIdx]
		if strings.TrimSpace(text) == "" || confStr == "-1" {
			continue
		}
		conf, err := strconv.ParseFloat(strings.TrimSpace(confStr), 64)
		if err != nil || conf < minConfidence {
			continue
		}
		if tile, ok := cleanToken(text); ok {
			tiles = append(tiles, tile)
		}
	}
	return tiles, nil
}
