// Command simulate runs a single match offline: it reads a match config
// as JSON, simulates it instantly and writes the full result to stdout.
// Useful for reproducing a reported match from its seed.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/domeballhq/match-engine/internal/engine"
	"github.com/domeballhq/match-engine/internal/model"
)

func main() {
	input := flag.String("config", "-", "path to match config JSON, - for stdin")
	seed := flag.Int64("seed", 0, "override the config seed when non-zero")
	kind := flag.String("kind", "", "override the config match kind when set")
	verbose := flag.Bool("v", false, "log engine internals to stderr")
	flag.Parse()

	var reader io.Reader = os.Stdin
	if *input != "-" {
		f, err := os.Open(*input)
		if err != nil {
			log.Fatalf("open config: %v", err)
		}
		defer f.Close()
		reader = f
	}

	var cfg model.MatchConfig
	if err := json.NewDecoder(reader).Decode(&cfg); err != nil {
		log.Fatalf("decode config: %v", err)
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}
	if *kind != "" {
		cfg.Kind = *kind
	}

	logger := zerolog.Nop()
	if *verbose {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	}

	eng, err := engine.New(cfg, engine.Options{Logger: logger})
	if err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	res := eng.Run(ctx)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(res); err != nil {
		log.Fatalf("encode result: %v", err)
	}
	if res.Status != model.StatusCompleted {
		fmt.Fprintf(os.Stderr, "match ended with status %s\n", res.Status)
		os.Exit(1)
	}
}
