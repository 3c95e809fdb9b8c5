package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/cdanielsoh/Image-feature-extraction-workshop/pkg/clients/bedrock"
	"github.com/cdanielsoh/Image-feature-extraction-workshop/pkg/clients/openai"
	"github.com/cdanielsoh/Image-feature-extraction-workshop/pkg/config"
	"github.com/cdanielsoh/Image-feature-extraction-workshop/pkg/exercises"
	"github.com/cdanielsoh/Image-feature-extraction-workshop/pkg/logging"
	"github.com/cdanielsoh/Image-feature-extraction-workshop/pkg/metrics"
)

func main() {
	logging.Setup()

	var (
		image    = flag.String("image", "", "path to the clothing image to analyze")
		exercise = flag.String("exercise", "all", "exercise number (1-4) or \"all\"")
		backend  = flag.String("backend", "bedrock", "extraction backend: bedrock or openai")
	)
	flag.Parse()

	if *image == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	ctx := log.Logger.WithContext(context.Background())
	model, err := newModel(ctx, cfg, *backend)
	if err != nil {
		log.Fatal().Err(err).Str("backend", *backend).Msg("create extraction backend")
	}

	reg := metrics.NewRegistry()
	runner := exercises.NewRunner(model, reg, os.Stdout)

	if *exercise == "all" {
		err = runner.RunAll(ctx, *image)
	} else {
		n, convErr := strconv.Atoi(*exercise)
		if convErr != nil {
			log.Fatal().Str("exercise", *exercise).Msg("exercise must be a number or \"all\"")
		}
		ex, ok := exercises.ByNumber(n)
		if !ok {
			log.Fatal().Int("exercise", n).Msg("no such exercise")
		}
		err = runner.Run(ctx, ex, *image)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("extraction failed")
	}

	fmt.Println()
	for _, line := range reg.SnapshotLines() {
		fmt.Println(line)
	}
}

func newModel(ctx context.Context, cfg config.Config, backend string) (exercises.Model, error) {
	switch backend {
	case "bedrock":
		return bedrock.NewFromConfig(ctx, cfg)
	case "openai":
		return openai.NewClient(cfg.OpenAI.Key, cfg.OpenAI.URL, cfg.OpenAI.Model)
	default:
		return nil, fmt.Errorf("unknown backend %q", backend)
	}
}
