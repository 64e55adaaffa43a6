package app

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"fakebuster/internal/cli"
	"fakebuster/internal/config"
	"fakebuster/internal/engine"
	"fakebuster/internal/logging"
	"fakebuster/internal/reader"
)

func runCheck(args []string) int {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	envLoader := cli.AddEnvFlag(fs, ".env", "Path to the .env file")
	article := fs.String("article", "", "Article text to verify")
	articleURL := fs.String("url", "", "Article URL to fetch, extract and verify")
	fromStdin := fs.Bool("stdin", false, "Read the article text from stdin")
	topK := fs.Int("top-k", 0, "Maximum number of ranked matches (0 uses the configured default)")
	strategy := fs.String("strategy", "", "Verdict strategy: semantic or substring (empty uses the configured default)")
	timeout := fs.Duration("timeout", 60*time.Second, "Overall request timeout")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if envLoader != nil {
		if _, err := envLoader.Load(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		}
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return 1
	}

	logger, err := logging.New(cfg.Environment, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		return 1
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	text := strings.TrimSpace(*article)
	if text == "" && *fromStdin {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to read stdin: %v\n", err)
			return 1
		}
		text = strings.TrimSpace(string(data))
	}
	if text == "" && strings.TrimSpace(*articleURL) != "" {
		extracted, err := reader.FetchArticleText(ctx, *articleURL)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to extract article from url: %v\n", err)
			return 1
		}
		text = extracted
	}
	if text == "" {
		fmt.Fprintln(os.Stderr, "Provide the article via --article, --url or --stdin")
		return 2
	}

	eng, err := buildEngine(cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to build verification engine: %v\n", err)
		return 1
	}

	resp, err := eng.Check(ctx, engine.CheckRequest{
		Article:  text,
		TopK:     *topK,
		Strategy: *strategy,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Check failed: %v\n", err)
		if errors.Is(err, engine.ErrInvalidInput) {
			return 2
		}
		return 1
	}

	return printJSON(resp)
}

func printJSON(v any) int {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to encode result: %v\n", err)
		return 1
	}
	return 0
}
