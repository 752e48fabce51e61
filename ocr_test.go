package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tsv(rows ...string) string {
	header := "level\tpage_num\tblock_num\tpar_num\tline_num\tword_num\tleft\ttop\twidth\theight\tconf\ttext"
	return header + "\n" + strings.Join(rows, "\n") + "\n"
}

func TestParseTesseractTSV(t *testing.T) {
	out := tsv(
		"1\t1\t0\t0\t0\t0\t0\t0\t800\t600\t-1\t",
		"5\t1\t1\t1\t1\t1\t10\t10\t40\t20\t96.5\tfar",
		"5\t1\t1\t1\t1\t2\t60\t10\t40\t20\t91\tci,",
		"5\t1\t1\t1\t1\t3\t110\t10\t40\t20\t42\tca",
		"5\t1\t1\t1\t1\t4\t160\t10\t40\t20\t88\tQuartiles",
		"5\t1\t1\t1\t1\t5\t210\t10\t40\t20\t90\tx",
		"5\t1\t1\t1\t1\t6\t260\t10\t40\t20\tn/a\tlly",
		"5\t1\t1\t1\t1\t7\t310\t10\t40\t20\t75\t   ",
		"5\t1\t1",
		"5\t1\t1\t1\t1\t8\t360\t10\t40\t20\t70\tr3c",
	)

	tiles, err := parseTesseractTSV(out, 70)
	require.NoError(t, err)
	assert.Equal(t, []string{"far", "ci", "rc"}, tiles)
}

func TestParseTesseractTSV_BadHeader(t *testing.T) {
	_, err := parseTesseractTSV("level\tword\nfoo\tbar\n", 70)
	require.Error(t, err)

	tiles, err := parseTesseractTSV("", 70)
	require.NoError(t, err)
	assert.Empty(t, tiles)
}

func TestTesseractExtractor_MissingBinary(t *testing.T) {
	img := filepath.Join(t.TempDir(), "board.png")
	require.NoError(t, os.WriteFile(img, []byte("not really a png"), 0o600))

	ex := newTesseractExtractor(ocrConfig{PSM: 6, MinConfidence: 70, TesseractPath: "quartiles-no-such-tesseract"}, nopLogger())
	_, err := ex.ExtractTiles(context.Background(), img)
	require.ErrorIs(t, err, errTesseractMissing)
}
