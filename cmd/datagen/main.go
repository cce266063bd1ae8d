package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/Ankit6149/credit-card-recommendation-system/internal/generator"
)

func main() {
	cfg := generator.DefaultConfig()
	var (
		cards         = flag.Int("cards", cfg.NumCards, "number of cards to generate")
		zeroFeeChance = flag.Float64("zero-fee-chance", cfg.ZeroFeeChance, "probability that a card is lifetime free")
		seed          = flag.Int64("seed", cfg.Seed, "random seed for deterministic generation")
		outputDir     = flag.String("output-dir", "data", "directory to write cards.json")
		writeStdout   = flag.Bool("stdout", false, "write the catalog to stdout instead of a file")
	)
	flag.Parse()

	genCfg := generator.Config{
		NumCards:      *cards,
		ZeroFeeChance: clampProbability(*zeroFeeChance),
		Seed:          *seed,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	catalog, err := generator.New(genCfg).Generate(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "generation failed: %v\n", err)
		os.Exit(1)
	}

	if *writeStdout {
		if err := json.NewEncoder(os.Stdout).Encode(catalog); err != nil {
			fmt.Fprintf(os.Stderr, "failed to write catalog to stdout: %v\n", err)
			os.Exit(1)
		}
		return
	}

	path, err := generator.WriteCatalog(catalog, *outputDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to write catalog: %v\n", err)
		os.Exit(1)
	}

	fmt.Fprintf(os.Stdout, "Generated %d cards into %s\n", len(catalog), path)
}

func clampProbability(value float64) float64 {
	if value < 0 {
		return 0
	}
	if value > 1 {
		return 1
	}
	return value
}
