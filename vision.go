package main

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared"
)

// ErrAIUnavailable indicates the AI service is not reachable or returned an error.
var ErrAIUnavailable = errors.New("AI service unavailable")

// visionExtractor asks an OpenAI-compatible vision model to read the tiles.
type visionExtractor struct {
	client openai.Client
	model  string
	log    *logger
}

// visionAnswer is the structured response requested from the model.
type visionAnswer struct {
	Tiles []string `json:"tiles"`
}

// JSON Schema for the vision model output.
var visionTilesSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"tiles": map[string]any{
			"type":        "array",
			"description": "Tile fragments in reading order, left to right then top to bottom",
			"items": map[string]any{
				"type": "string",
			},
		},
	},
	"required":             []string{"tiles"},
	"additionalProperties": false,
}

const visionPrompt = `You read screenshots of the Quartiles word game.
The board shows a grid of tiles, each holding a short lowercase letter fragment (usually 2-4 letters).
Return every tile fragment exactly as printed, in reading order (row by row, left to right).
Ignore buttons, headings, scores and any other text that is not on a tile.
Output ONLY the JSON object: {"tiles": ["..."]}`

func newVisionExtractor(cfg aiConfig, log *logger) (*visionExtractor, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		apiKey = strings.TrimSpace(os.Getenv("OPENAI_API_KEY"))
	}
	if apiKey == "" {
		return nil, errors.New("missing API key (set ai.api_key in config or OPENAI_API_KEY env)")
	}

	modelName := strings.TrimSpace(cfg.Model)
	if modelName == "" {
		modelName = defaultAIModel
	}

	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL := strings.TrimSpace(cfg.BaseURL); baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
		log.infof("AI using custom endpoint: %s", baseURL)
	}

	return &visionExtractor{client: openai.NewClient(opts...), model: modelName, log: log}, nil
}

func (v *visionExtractor) ExtractTiles(ctx context.Context, imagePath string) ([]string, error) {
	v.log.infof("extracting tiles from %q using vision model %s...", imagePath, v.model)

	dataURL, err := imageDataURL(imagePath)
	if err != nil {
		return nil, err
	}

	spin := newSpinner()
	spin.Start("reading tiles...")

	stream := v.client.Chat.Completions.NewStreaming(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(v.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(visionPrompt),
			openai.UserMessage([]openai.ChatCompletionContentPartUnionParam{
				openai.TextContentPart("List the tiles on this board."),
				openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{URL: dataURL}),
			}),
		},
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONSchema: &shared.ResponseFormatJSONSchemaParam{
				JSONSchema: shared.ResponseFormatJSONSchemaJSONSchemaParam{
					Name:        "quartiles_tiles",
					Description: openai.String("Tile fragments read from a Quartiles board"),
					Strict:      openai.Bool(true),
					Schema:      visionTilesSchema,
				},
			},
		},
	})

	var contentBuilder strings.Builder
	for stream.Next() {
		chunk := stream.Current()
		if len(chunk.Choices) > 0 && chunk.Choices[0].Delta.Content != "" {
			contentBuilder.WriteString(chunk.Choices[0].Delta.Content)
		}
	}

	spin.Stop()

	if err := stream.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAIUnavailable, err)
	}

	content := contentBuilder.String()
	if content == "" {
		return nil, errors.New("no content in response")
	}
	return parseVisionTiles(content)
}

// parseVisionTiles decodes the model reply, tolerating prose around the JSON
// object, and applies the same token cleaning as the OCR path.
func parseVisionTiles(content string) ([]string, error) {
	var ans visionAnswer
	if err := json.Unmarshal([]byte(content), &ans); err != nil {
		start := strings.Index(content, "{")
		end := strings.LastIndex(content, "}")
		if start == -1 || end <= start {
			return nil, errors.New("invalid vision response format")
		}
		if err := json.Unmarshal([]byte(content[start:end+1]), &ans); err != nil {
			return nil, fmt.Errorf("parse vision response: %w", err)
		}
	}

	tiles := make([]string, 0, len(ans.Tiles))
	for _, t := range ans.Tiles {
		if tile, ok := cleanToken(t); ok {
			tiles = append(tiles, tile)
		}
	}
	return tiles, nil
}

// imageDataURL inlines an image file as a base64 data URL.
func imageDataURL(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read image: %w", err)
	}
	mime := http.DetectContentType(b)
	if !strings.HasPrefix(mime, "image/") {
		return "", fmt.Errorf("%s does not look like an image (%s)", path, mime)
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(b), nil
}

func newTileExtractor(cfg appConfig, log *logger) (tileExtractor, error) {
	switch cfg.OCR.Mode {
	case ocrModeVision:
		return newVisionExtractor(cfg.AI, log)
	case ocrModeTesseract, "":
		return newTesseractExtractor(cfg.OCR, log), nil
	default:
		return nil, validateOCRMode(cfg.OCR.Mode)
	}
}
