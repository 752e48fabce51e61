package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// errEmptyLexicon means no usable words survived loading and filtering.
var errEmptyLexicon = errors.New("dictionary is empty")

// profanity is excluded from the lexicon even when it is a legal word.
var profanity = map[string]struct{}{
	"fuck": {}, "shit": {}, "bitch": {}, "dick": {}, "piss": {}, "cock": {},
	"cunt": {}, "twat": {}, "ass": {}, "damn": {}, "hell": {},
}

// Lexicon is an immutable set of lowercase alphabetic words.
type Lexicon struct {
	words map[string]struct{}
	raw   int
}

// newLexicon filters words down to the accepted set: lowercase, at least two
// letters, alphabetic only and not profane. Filtering is deliberately
// minimal so that real answers are never hidden.
func newLexicon(words []string) *Lexicon {
	lex := &Lexicon{words: make(map[string]struct{}, len(words))}
	for _, w := range words {
		lex.add(w)
	}
	return lex
}

func (l *Lexicon) add(w string) {
	w = strings.ToLower(strings.TrimSpace(w))
	if utf8.RuneCountInString(w) < 2 {
		return
	}
	l.raw++
	if !isAlpha(w) {
		return
	}
	if _, bad := profanity[w]; bad {
		return
	}
	l.words[w] = struct{}{}
}

// readLexicon builds a lexicon from a newline-delimited word list.
func readLexicon(r io.Reader) (*Lexicon, error) {
	lex := &Lexicon{words: make(map[string]struct{})}
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		lex.add(sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read word list: %w", err)
	}
	return lex, nil
}

// IsValid reports whether word is in the lexicon.
func (l *Lexicon) IsValid(word string) bool {
	if l == nil {
		return false
	}
	_, ok := l.words[word]
	return ok
}

// Len is the number of accepted words.
func (l *Lexicon) Len() int {
	if l == nil {
		return 0
	}
	return len(l.words)
}

// Raw is the number of words of length two or more seen before filtering.
func (l *Lexicon) Raw() int {
	if l == nil {
		return 0
	}
	return l.raw
}

func isAlpha(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return s != ""
}

// loadDictionary returns the lexicon cached at cfg.Path, downloading it from
// cfg.URL first when the cache file does not exist.
func loadDictionary(ctx context.Context, cfg dictionaryConfig, log *logger) (*Lexicon, error) {
	if _, err := os.Stat(cfg.Path); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("stat dictionary: %w", err)
		}
		log.infof("downloading dictionary from %s...", cfg.URL)
		spin := newSpinner()
		spin.Start("downloading dictionary...")
		err := downloadDictionary(ctx, cfg, cfg.Path)
		spin.Stop()
		if err != nil {
			return nil, fmt.Errorf("download dictionary: %w", err)
		}
		log.okf("dictionary cached at %s", cfg.Path)
	}

	f, err := os.Open(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("open dictionary: %w", err)
	}
	defer func() { _ = f.Close() }()

	lex, err := readLexicon(f)
	if err != nil {
		return nil, err
	}
	log.infof("loaded %d words from %s", lex.Raw(), filepath.Base(cfg.Path))
	if lex.Len() == 0 {
		return nil, errEmptyLexicon
	}
	log.infof("applying minimal filter (profanity and non-alphabetic entries excluded): using %d words", lex.Len())
	return lex, nil
}

// httpStatusError is a non-2xx response from the dictionary host.
type httpStatusError struct {
	StatusCode int
	URL        string
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("GET %s: status %d", e.URL, e.StatusCode)
}

// downloadDictionary fetches the word list into dst via a temp file so a
// failed transfer never leaves a truncated cache behind.
func downloadDictionary(ctx context.Context, cfg dictionaryConfig, dst string) error {
	if strings.TrimSpace(cfg.URL) == "" {
		return errors.New("dictionary url is empty")
	}
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	client := &http.Client{Timeout: timeout}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, cfg.URL, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", defaultUA)

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &httpStatusError{StatusCode: resp.StatusCode, URL: cfg.URL}
	}

	if dir := filepath.Dir(dst); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir dictionary dir: %w", err)
		}
	}
	tmp := dst + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("create temp dictionary: %w", err)
	}

	const maxDictionarySize = 64 * 1024 * 1024
	if _, err := io.Copy(f, io.LimitReader(resp.Body, maxDictionarySize)); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return fmt.Errorf("write dictionary: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("close dictionary: %w", err)
	}
	if err := os.Rename(tmp, dst); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replace dictionary: %w", err)
	}
	return nil
}
