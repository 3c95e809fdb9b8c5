package generator

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/cdanielsoh/Image-feature-extraction-workshop/pkg/config"
	"github.com/cdanielsoh/Image-feature-extraction-workshop/pkg/metrics"
	"github.com/cdanielsoh/Image-feature-extraction-workshop/pkg/models"
)

// GenerationClient produces image bytes from a text description.
type GenerationClient interface {
	GenerateImage(ctx context.Context, text string, p models.GenerationParams) ([]byte, error)
}

// Generator writes generated sample images to disk. For a valid
// description it either writes a non-empty file or returns an error, never
// both; a failed model call leaves no file behind.
type Generator struct {
	client    GenerationClient
	outputDir string
	params    models.GenerationParams
	delay     time.Duration
	reg       *metrics.Registry
}

func New(client GenerationClient, cfg config.Generation, reg *metrics.Registry) *Generator {
	return &Generator{
		client:    client,
		outputDir: cfg.OutputDir,
		params: models.GenerationParams{
			Width:    cfg.Width,
			Height:   cfg.Height,
			CFGScale: cfg.CFGScale,
			Quality:  cfg.Quality,
		},
		delay: time.Duration(cfg.DelaySeconds) * time.Second,
		reg:   reg,
	}
}

// Generate produces one image for description and writes it to outPath.
func (g *Generator) Generate(ctx context.Context, description, outPath string) error {
	return g.generate(ctx, description, outPath, nil)
}

// GenerateSeeded is Generate with a fixed seed for reproducible output.
func (g *Generator) GenerateSeeded(ctx context.Context, description, outPath string, seed int64) error {
	return g.generate(ctx, description, outPath, &seed)
}

func (g *Generator) generate(ctx context.Context, description, outPath string, seed *int64) error {
	if strings.TrimSpace(description) == "" {
		return errors.New("empty description")
	}
	if outPath == "" {
		return errors.New("empty output path")
	}

	rid := uuid.NewString()
	logger := log.Ctx(ctx).With().Str("request_id", rid).Str("out", outPath).Logger()
	logger.Info().Str("description", truncate(description, 100)).Msg("generating image")

	params := g.params
	params.Seed = seed

	data, err := g.client.GenerateImage(ctx, description, params)
	if err != nil {
		g.inc(ctx, "images_failed_total")
		return fmt.Errorf("generate image: %w", err)
	}
	if len(data) == 0 {
		g.inc(ctx, "images_failed_total")
		return errors.New("generation returned no image data")
	}

	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		g.inc(ctx, "images_failed_total")
		return fmt.Errorf("write image: %w", err)
	}

	g.inc(ctx, "images_generated_total")
	logger.Info().Int("bytes", len(data)).Msg("image saved")
	return nil
}

// WorkshopPrompt is one entry of the fixed sample set.
type WorkshopPrompt struct {
	Filename    string
	Prompt      string
	Description string
}

// WorkshopSet returns the ten shirt prompts the exercises are written
// against. Filenames are stable so the exercise instructions can refer to
// them.
func WorkshopSet() []WorkshopPrompt {
	return []WorkshopPrompt{
		{
			Filename:    "01_basic_white_tshirt",
			Prompt:      "A clean white cotton t-shirt on a plain white background, front view, no wrinkles, studio lighting, product photography style, minimalist, high resolution",
			Description: "Basic solid color t-shirt",
		},
		{
			Filename:    "02_striped_longsleeve",
			Prompt:      "A navy blue and white horizontal striped long-sleeve shirt, crew neck, regular fit, laid flat on white background, professional product photo, even lighting",
			Description: "Striped long-sleeve shirt",
		},
		{
			Filename:    "03_checkered_buttonup",
			Prompt:      "A red and black checkered flannel button-up shirt, classic collar, long sleeves, regular fit, hanging on white background, studio photography",
			Description: "Checkered button-up shirt",
		},
		{
			Filename:    "04_oversized_hoodie",
			Prompt:      "An oversized gray hoodie sweatshirt with hood up, loose fit, kangaroo pocket, long sleeves, on plain background, casual streetwear style",
			Description: "Oversized hoodie",
		},
		{
			Filename:    "05_floral_blouse",
			Prompt:      "A light pink blouse with small white floral pattern, V-neck, short sleeves, fitted silhouette, on white background, feminine style, soft lighting",
			Description: "Floral print blouse",
		},
		{
			Filename:    "06_vintage_band_tshirt",
			Prompt:      "A black vintage-style band t-shirt with distressed graphic print, crew neck, short sleeves, slightly faded, relaxed fit, on neutral background",
			Description: "Vintage band t-shirt",
		},
		{
			Filename:    "07_formal_dress_shirt",
			Prompt:      "A crisp white formal dress shirt, French cuffs, spread collar, long sleeves, slim fit, pressed and neat, professional product photography",
			Description: "Formal dress shirt",
		},
		{
			Filename:    "08_crop_top",
			Prompt:      "A bright yellow crop top, sleeveless, scoop neckline, fitted style, modern casual wear, on clean white background, good lighting",
			Description: "Crop top",
		},
		{
			Filename:    "09_turtleneck_sweater",
			Prompt:      "A burgundy turtleneck sweater, long sleeves, fitted silhouette, ribbed texture, fall/winter style, on neutral background, cozy aesthetic",
			Description: "Turtleneck sweater",
		},
		{
			Filename:    "10_tiedye_tshirt",
			Prompt:      "A tie-dye t-shirt with rainbow spiral pattern, crew neck, short sleeves, regular fit, vibrant colors, casual hippie style, bright lighting",
			Description: "Tie-dye t-shirt",
		},
	}
}

// Seed used for the fixed sample set so reruns produce the same images.
const workshopSeed = 42

// GenerateWorkshopSet produces every sample image under the output
// directory, pausing between requests. A failed item does not stop the
// rest; the counts report the outcome.
func (g *Generator) GenerateWorkshopSet(ctx context.Context) (succeeded, failed int, err error) {
	if err := os.MkdirAll(g.outputDir, 0o755); err != nil {
		return 0, 0, fmt.Errorf("create output dir: %w", err)
	}

	set := WorkshopSet()
	for i, item := range set {
		logger := log.Ctx(ctx).With().
			Int("index", i+1).
			Int("total", len(set)).
			Str("item", item.Description).
			Logger()
		lctx := logger.WithContext(ctx)

		outPath := filepath.Join(g.outputDir, item.Filename+".png")
		if err := g.GenerateSeeded(lctx, item.Prompt, outPath, workshopSeed); err != nil {
			logger.Error().Err(err).Msg("workshop image failed")
			failed++
		} else {
			succeeded++
		}

		if i < len(set)-1 && g.delay > 0 {
			select {
			case <-time.After(g.delay):
			case <-ctx.Done():
				return succeeded, failed, ctx.Err()
			}
		}
	}
	return succeeded, failed, nil
}

// Seed used for the smoke-test image.
const testSeed = 123

// GenerateTestImage produces a single image to verify credentials and
// model access before the full set is generated.
func (g *Generator) GenerateTestImage(ctx context.Context) (string, error) {
	if err := os.MkdirAll(g.outputDir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	outPath := filepath.Join(g.outputDir, "test_shirt.png")
	prompt := "A simple red t-shirt on white background, product photography"
	if err := g.GenerateSeeded(ctx, prompt, outPath, testSeed); err != nil {
		return "", err
	}
	return outPath, nil
}

func (g *Generator) inc(ctx context.Context, name string) {
	if g.reg != nil {
		g.reg.Inc(ctx, name, nil, 1)
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
