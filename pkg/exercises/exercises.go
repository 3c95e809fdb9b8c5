package exercises

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/cdanielsoh/Image-feature-extraction-workshop/pkg/attributes"
	"github.com/cdanielsoh/Image-feature-extraction-workshop/pkg/imaging"
	"github.com/cdanielsoh/Image-feature-extraction-workshop/pkg/metrics"
	"github.com/cdanielsoh/Image-feature-extraction-workshop/pkg/models"
	"github.com/cdanielsoh/Image-feature-extraction-workshop/pkg/prompts"
)

// Model is any backend that can answer a text prompt about an image.
type Model interface {
	ExtractText(ctx context.Context, prompt string, image []byte) (*models.Reply, error)
}

// Exercise is one rung of the prompting ladder.
type Exercise struct {
	Number int
	Name   string
	Prompt func() string

	// ParseJSON marks exercises whose reply is decoded into the garment
	// attribute set and checked against the vocabularies.
	ParseJSON bool
}

// All returns the exercises in teaching order, least to most constrained.
func All() []Exercise {
	return []Exercise{
		{Number: 1, Name: "free-form description", Prompt: prompts.Describe},
		{Number: 2, Name: "targeted attribute questions", Prompt: prompts.AttributeQuestions},
		{Number: 3, Name: "closed vocabularies", Prompt: prompts.Constrained},
		{Number: 4, Name: "strict JSON output", Prompt: prompts.StrictJSON, ParseJSON: true},
	}
}

// ByNumber looks an exercise up by its 1-based number.
func ByNumber(n int) (Exercise, bool) {
	for _, ex := range All() {
		if ex.Number == n {
			return ex, true
		}
	}
	return Exercise{}, false
}

// Runner executes exercises against a single image and prints the replies
// for the learner.
type Runner struct {
	model Model
	reg   *metrics.Registry
	out   io.Writer
}

func NewRunner(model Model, reg *metrics.Registry, out io.Writer) *Runner {
	return &Runner{model: model, reg: reg, out: out}
}

// Run loads the image, sends the exercise prompt with it and prints the
// reply. For JSON exercises the reply is additionally parsed and the
// vocabulary feedback printed; non-conforming output is still shown raw.
func (r *Runner) Run(ctx context.Context, ex Exercise, imagePath string) error {
	img, err := imaging.Load(imagePath)
	if err != nil {
		return err
	}
	return r.run(ctx, ex, img)
}

// RunAll executes every exercise in order against one image, loading it
// once. The first failure halts the run, like an error halting a script.
func (r *Runner) RunAll(ctx context.Context, imagePath string) error {
	img, err := imaging.Load(imagePath)
	if err != nil {
		return err
	}
	for _, ex := range All() {
		if err := r.run(ctx, ex, img); err != nil {
			return fmt.Errorf("exercise %d: %w", ex.Number, err)
		}
	}
	return nil
}

func (r *Runner) run(ctx context.Context, ex Exercise, img []byte) error {
	rid := uuid.NewString()
	logger := log.Ctx(ctx).With().
		Str("run_id", rid).
		Int("exercise", ex.Number).
		Str("name", ex.Name).
		Logger()
	ctx = logger.WithContext(ctx)

	logger.Info().Msg("running exercise")

	reply, err := r.model.ExtractText(ctx, ex.Prompt(), img)
	if err != nil {
		r.inc(ctx, "model_calls_failed_total", ex)
		return err
	}

	r.inc(ctx, "model_calls_total", ex)
	if r.reg != nil && reply.Usage.TotalTokens > 0 {
		r.reg.Inc(ctx, "tokens_input_total", nil, int64(reply.Usage.InputTokens))
		r.reg.Inc(ctx, "tokens_output_total", nil, int64(reply.Usage.OutputTokens))
	}

	fmt.Fprintf(r.out, "\n=== Exercise %d: %s ===\n", ex.Number, ex.Name)
	fmt.Fprintln(r.out, reply.Text)

	if ex.ParseJSON {
		r.printParsed(reply.Text)
	}

	logger.Info().
		Str("stop_reason", reply.StopReason).
		Int32("input_tokens", reply.Usage.InputTokens).
		Int32("output_tokens", reply.Usage.OutputTokens).
		Msg("exercise finished")
	return nil
}

// printParsed shows the structured view of a JSON reply. Parse errors are
// feedback for the learner, not failures: the raw reply is already on
// screen.
func (r *Runner) printParsed(text string) {
	g, warnings, err := attributes.Parse(text)
	if err != nil {
		fmt.Fprintf(r.out, "\n(could not parse as attributes: %v)\n", err)
		return
	}
	fmt.Fprintf(r.out, "\nParsed attributes:\n")
	fmt.Fprintf(r.out, "  category:      %s\n", g.Category)
	fmt.Fprintf(r.out, "  color:         %s\n", g.Color)
	fmt.Fprintf(r.out, "  pattern:       %s\n", g.Pattern)
	fmt.Fprintf(r.out, "  sleeve_length: %s\n", g.SleeveLength)
	fmt.Fprintf(r.out, "  fit:           %s\n", g.Fit)
	if g.Material != "" {
		fmt.Fprintf(r.out, "  material:      %s\n", g.Material)
	}
	for _, w := range warnings {
		fmt.Fprintf(r.out, "  warning: %s\n", w)
	}
}

func (r *Runner) inc(ctx context.Context, name string, ex Exercise) {
	if r.reg != nil {
		r.reg.Inc(ctx, name, map[string]string{
			"exercise": fmt.Sprintf("%d", ex.Number),
		}, 1)
	}
}
