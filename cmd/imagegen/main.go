package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"github.com/cdanielsoh/Image-feature-extraction-workshop/pkg/clients/bedrock"
	"github.com/cdanielsoh/Image-feature-extraction-workshop/pkg/config"
	"github.com/cdanielsoh/Image-feature-extraction-workshop/pkg/generator"
	"github.com/cdanielsoh/Image-feature-extraction-workshop/pkg/logging"
	"github.com/cdanielsoh/Image-feature-extraction-workshop/pkg/metrics"
)

func main() {
	logging.Setup()

	var (
		prompt = flag.String("prompt", "", "text description of the image to generate")
		out    = flag.String("out", "", "output file path for -prompt mode")
		all    = flag.Bool("all", false, "generate the full workshop sample set")
		test   = flag.Bool("test", false, "generate a single test image to verify access")
		seed   = flag.Int64("seed", -1, "generation seed for -prompt mode; negative lets the model pick")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	ctx := log.Logger.WithContext(context.Background())
	client, err := bedrock.NewFromConfig(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("create bedrock client")
	}

	reg := metrics.NewRegistry()
	gen := generator.New(client, cfg.Generation, reg)

	switch {
	case *test:
		path, err := gen.GenerateTestImage(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("test image failed")
		}
		log.Info().Str("path", path).Msg("test image generated, model access works")

	case *all:
		ok, failed, err := gen.GenerateWorkshopSet(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("workshop set aborted")
		}
		log.Info().Int("succeeded", ok).Int("failed", failed).
			Str("dir", cfg.Generation.OutputDir).Msg("workshop set finished")
		if failed > 0 {
			os.Exit(1)
		}

	case *prompt != "":
		if *out == "" {
			log.Fatal().Msg("-out is required with -prompt")
		}
		if dir := filepath.Dir(*out); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				log.Fatal().Err(err).Msg("create output dir")
			}
		}
		if *seed >= 0 {
			err = gen.GenerateSeeded(ctx, *prompt, *out, *seed)
		} else {
			err = gen.Generate(ctx, *prompt, *out)
		}
		if err != nil {
			log.Fatal().Err(err).Msg("generation failed")
		}
		log.Info().Str("path", *out).Msg("image generated")

	default:
		flag.Usage()
		os.Exit(2)
	}

	for _, line := range reg.SnapshotLines() {
		fmt.Println(line)
	}
}
