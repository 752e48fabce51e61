package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	koanfjson "github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Default configuration values.
const (
	defaultUA             = "quartiles-solver/1.0"
	defaultDictionaryURL  = "https://raw.githubusercontent.com/jessicatysu/scrabble/master/TWL06.txt"
	defaultDictionaryPath = "twl06.txt"
	defaultConfigName     = "quartiles.json"
	defaultAIModel        = "gpt-4o-mini"
	defaultMinLength      = 2
	defaultMaxCandidates  = 5_000_000
	defaultMinConfidence  = 70
	defaultPSM            = 6

	envHome = "QUARTILES_HOME"
)

// OCR modes.
const (
	ocrModeTesseract = "tesseract"
	ocrModeVision    = "vision"
)

// dictionaryConfig says where the word list comes from and where it is cached.
type dictionaryConfig struct {
	URL            string `json:"url"`
	Path           string `json:"path"`
	TimeoutSeconds int    `json:"timeout_seconds,omitempty"`
}

// solverConfig holds the combination search bounds.
type solverConfig struct {
	MinLength     int `json:"min_length"`
	MaxGroup      int `json:"max_group"`
	MaxCandidates int `json:"max_candidates"`
}

// ocrConfig controls tile extraction from screenshots.
type ocrConfig struct {
	Mode          string  `json:"mode"`
	PSM           int     `json:"psm"`
	MinConfidence float64 `json:"min_confidence"`
	TesseractPath string  `json:"tesseract_path,omitempty"`
}

// aiConfig holds the vision model settings used by the "vision" OCR mode.
type aiConfig struct {
	Model   string `json:"model,omitempty"`
	BaseURL string `json:"base_url,omitempty"`
	APIKey  string `json:"api_key,omitempty"`
}

// appConfig holds the application configuration.
type appConfig struct {
	Dictionary dictionaryConfig `json:"dictionary"`
	Solver     solverConfig     `json:"solver"`
	OCR        ocrConfig        `json:"ocr"`
	AI         aiConfig         `json:"ai,omitempty"`
}

func defaultConfig() appConfig {
	return appConfig{
		Dictionary: dictionaryConfig{
			URL:            defaultDictionaryURL,
			Path:           defaultDictionaryPath,
			TimeoutSeconds: 60,
		},
		Solver: solverConfig{
			MinLength:     defaultMinLength,
			MaxGroup:      defaultMaxGroup,
			MaxCandidates: defaultMaxCandidates,
		},
		OCR: ocrConfig{
			Mode:          ocrModeTesseract,
			PSM:           defaultPSM,
			MinConfidence: defaultMinConfidence,
			TesseractPath: "tesseract",
		},
		AI: aiConfig{
			Model: defaultAIModel,
		},
	}
}

// resolveConfigPath picks the explicit path, then $QUARTILES_HOME, then the
// working directory.
func resolveConfigPath(explicit string) string {
	if p := strings.TrimSpace(explicit); p != "" {
		return p
	}
	if home := strings.TrimSpace(os.Getenv(envHome)); home != "" {
		return filepath.Join(home, defaultConfigName)
	}
	return defaultConfigName
}

// loadConfig loads configuration from the specified path. A missing file
// yields the defaults.
func loadConfig(path string) (appConfig, error) {
	cfg := defaultConfig()

	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return appConfig{}, fmt.Errorf("stat config: %w", err)
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), koanfjson.Parser()); err != nil {
		return appConfig{}, fmt.Errorf("load config: %w", err)
	}
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return appConfig{}, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.Dictionary.URL = strings.TrimSpace(cfg.Dictionary.URL)
	cfg.Dictionary.Path = strings.TrimSpace(cfg.Dictionary.Path)
	cfg.OCR.Mode = strings.ToLower(strings.TrimSpace(cfg.OCR.Mode))
	if cfg.OCR.TesseractPath == "" {
		cfg.OCR.TesseractPath = "tesseract"
	}
	if strings.TrimSpace(cfg.AI.Model) == "" {
		cfg.AI.Model = defaultAIModel
	}
	if err := cfg.validate(); err != nil {
		return appConfig{}, err
	}
	return cfg, nil
}

func (c appConfig) validate() error {
	if c.Dictionary.Path == "" {
		return errors.New("dictionary.path is required in config")
	}
	if c.Solver.MinLength < 1 {
		return fmt.Errorf("solver.min_length must be >= 1, got %d", c.Solver.MinLength)
	}
	if c.Solver.MaxGroup < 1 {
		return fmt.Errorf("solver.max_group must be >= 1, got %d", c.Solver.MaxGroup)
	}
	if err := validateOCRMode(c.OCR.Mode); err != nil {
		return err
	}
	if err := validatePSM(c.OCR.PSM); err != nil {
		return err
	}
	if c.OCR.MinConfidence < 0 || c.OCR.MinConfidence > 100 {
		return fmt.Errorf("ocr.min_confidence must be within 0-100, got %v", c.OCR.MinConfidence)
	}
	return nil
}

func validateOCRMode(mode string) error {
	switch mode {
	case ocrModeTesseract, ocrModeVision:
		return nil
	default:
		return fmt.Errorf("unknown ocr mode %q (want %s or %s)", mode, ocrModeTesseract, ocrModeVision)
	}
}

// validatePSM accepts the Tesseract page segmentation modes that suit a tile
// grid: 4 single column, 6 uniform block, 11 sparse text.
func validatePSM(psm int) error {
	switch psm {
	case 4, 6, 11:
		return nil
	default:
		return fmt.Errorf("unsupported ocr psm %d (want 4, 6 or 11)", psm)
	}
}

// saveConfig writes configuration to the specified path.
func saveConfig(path string, cfg appConfig) error {
	b, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	b = append(b, '\n')

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return fmt.Errorf("write temp config: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace config: %w", err)
	}
	return nil
}
