package exercises_test

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cdanielsoh/Image-feature-extraction-workshop/pkg/exercises"
	"github.com/cdanielsoh/Image-feature-extraction-workshop/pkg/models"
)

type fakeModel struct {
	reply   string
	err     error
	prompts []string
}

func (f *fakeModel) ExtractText(_ context.Context, prompt string, _ []byte) (*models.Reply, error) {
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return nil, f.err
	}
	return &models.Reply{
		Text:  f.reply,
		Model: "fake",
		Usage: models.Usage{InputTokens: 10, OutputTokens: 5, TotalTokens: 15},
	}, nil
}

func sampleImage(t *testing.T) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 2, 2))))
	path := filepath.Join(t.TempDir(), "shirt.png")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path
}

func TestRunPrintsReply(t *testing.T) {
	model := &fakeModel{reply: "A white cotton t-shirt."}
	var out bytes.Buffer
	runner := exercises.NewRunner(model, nil, &out)

	ex, ok := exercises.ByNumber(1)
	require.True(t, ok)

	err := runner.Run(context.Background(), ex, sampleImage(t))
	require.NoError(t, err)
	require.Contains(t, out.String(), "Exercise 1")
	require.Contains(t, out.String(), "A white cotton t-shirt.")
}

func TestRunJSONExerciseParsesReply(t *testing.T) {
	model := &fakeModel{reply: `{"category":"tshirt","color":"white","pattern":"solid","sleeve_length":"short","fit":"regular"}`}
	var out bytes.Buffer
	runner := exercises.NewRunner(model, nil, &out)

	ex, ok := exercises.ByNumber(4)
	require.True(t, ok)

	err := runner.Run(context.Background(), ex, sampleImage(t))
	require.NoError(t, err)
	require.Contains(t, out.String(), "Parsed attributes:")
	require.Contains(t, out.String(), "category:      tshirt")
}

func TestRunJSONExerciseToleratesProse(t *testing.T) {
	// Non-conforming output is shown, not rejected.
	model := &fakeModel{reply: "I think this is a t-shirt, white, no pattern."}
	var out bytes.Buffer
	runner := exercises.NewRunner(model, nil, &out)

	ex, _ := exercises.ByNumber(4)
	err := runner.Run(context.Background(), ex, sampleImage(t))
	require.NoError(t, err)
	require.Contains(t, out.String(), "could not parse as attributes")
	require.Contains(t, out.String(), "I think this is a t-shirt")
}

func TestRunMissingImageFailsFast(t *testing.T) {
	model := &fakeModel{reply: "anything"}
	runner := exercises.NewRunner(model, nil, &bytes.Buffer{})

	ex, _ := exercises.ByNumber(1)
	err := runner.Run(context.Background(), ex, filepath.Join(t.TempDir(), "missing.png"))
	require.Error(t, err)
	require.Empty(t, model.prompts, "no model call for a missing image")
}

func TestRunAllHaltsOnFirstError(t *testing.T) {
	model := &fakeModel{err: errors.New("api unavailable")}
	runner := exercises.NewRunner(model, nil, &bytes.Buffer{})

	err := runner.RunAll(context.Background(), sampleImage(t))
	require.Error(t, err)
	require.Contains(t, err.Error(), "exercise 1")
	require.Len(t, model.prompts, 1)
}

func TestRunAllSendsEveryPrompt(t *testing.T) {
	model := &fakeModel{reply: "fine"}
	runner := exercises.NewRunner(model, nil, &bytes.Buffer{})

	err := runner.RunAll(context.Background(), sampleImage(t))
	require.NoError(t, err)
	require.Len(t, model.prompts, len(exercises.All()))

	// Prompts must differ between exercises.
	seen := map[string]bool{}
	for _, p := range model.prompts {
		require.False(t, seen[p])
		seen[p] = true
	}
}
