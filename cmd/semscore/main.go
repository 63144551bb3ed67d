package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"

	"semscore/internal/chunker"
	"semscore/internal/config"
	"semscore/internal/domain"
	"semscore/internal/report"
	"semscore/internal/scoring/lexical"
	"semscore/internal/scoring/openai"
	"semscore/internal/service"
	"semscore/internal/tui"
)

func main() {
	// .env may carry the embeddings API key.
	_ = godotenv.Load()

	cfgPath := flag.String("config", "config.yaml", "Path to config YAML")
	candidateText := flag.String("candidate-text", "", "Candidate text to compare")
	candidateFile := flag.String("candidate-file", "", "Path to candidate text ('-' reads STDIN)")
	referenceText := flag.String("reference-text", "", "Reference text to compare against")
	referenceFile := flag.String("reference-file", "", "Path to reference text ('-' reads STDIN)")
	scorerType := flag.String("scorer", "", "Scorer backend: lexical or openai")
	model := flag.String("model", "", "Embedding model used for scoring")
	lang := flag.String("lang", "", "ISO language hint; empty lets the backend decide")
	batchSize := flag.Int("batch-size", 0, "Embedding micro-batch size")
	chunkSize := flag.Int("chunk-size", 0, "Approximate number of words per chunk")
	chunkOverlap := flag.Int("chunk-overlap", -1, "Number of overlapping words between chunks")
	maxChunks := flag.Int("max-chunks", 0, "Maximum number of chunk pairs to score")
	noChunk := flag.Bool("no-chunk", false, "Disable chunking and compare the raw texts directly")
	useIDF := flag.Bool("use-idf", false, "Enable IDF token weighting inside the scorer")
	rescale := flag.Bool("rescale", false, "Rescale scores against the batch similarity baseline")
	lower := flag.Bool("lower", false, "Lowercase text before scoring")
	normalizeWS := flag.Bool("normalize-whitespace", false, "Collapse repeated whitespace before scoring")
	showChunks := flag.Int("show-chunks", -1, "Number of per-chunk rows to print, 0 hides them")
	jsonPath := flag.String("json", "", "Optional path to store the raw scores as JSON")
	interactive := flag.Bool("tui", false, "Browse per-chunk results interactively")
	logLevel := flag.String("log-level", "", "Log level: debug, info, warn, error")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatal("failed to load config", "path", *cfgPath, "err", err)
	}

	// Flags override file values only when set on the command line.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "scorer":
			cfg.Scorer.Type = *scorerType
		case "model":
			cfg.Scorer.Model = *model
		case "lang":
			cfg.Scorer.Lang = *lang
		case "batch-size":
			cfg.Scorer.BatchSize = *batchSize
		case "use-idf":
			cfg.Scorer.UseIDF = *useIDF
		case "rescale":
			cfg.Scorer.Rescale = *rescale
		case "chunk-size":
			cfg.Chunking.Size = *chunkSize
		case "chunk-overlap":
			cfg.Chunking.Overlap = chunkOverlap
		case "max-chunks":
			cfg.Chunking.MaxChunks = *maxChunks
		case "no-chunk":
			cfg.Chunking.Disabled = *noChunk
		case "lower":
			cfg.Normalize.Lower = *lower
		case "normalize-whitespace":
			cfg.Normalize.CollapseWhitespace = *normalizeWS
		case "show-chunks":
			cfg.Report.ShowChunks = showChunks
		case "json":
			cfg.Report.JSONPath = *jsonPath
		case "log-level":
			cfg.LogLevel = *logLevel
		}
	})

	if err := cfg.Validate(); err != nil {
		log.Fatal("invalid configuration", "err", err)
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{Level: parseLevel(cfg.LogLevel)})

	candidate, err := loadText(*candidateText, *candidateFile, "candidate")
	if err != nil {
		logger.Fatal("cannot load candidate", "err", err)
	}
	reference, err := loadText(*referenceText, *referenceFile, "reference")
	if err != nil {
		logger.Fatal("cannot load reference", "err", err)
	}

	var scorer domain.Scorer
	switch cfg.Scorer.Type {
	case "lexical", "":
		scorer = lexical.NewScorer(lexical.Options{UseIDF: cfg.Scorer.UseIDF})
	case "openai":
		oc := openai.Config{
			Model:     cfg.Scorer.Model,
			Lang:      cfg.Scorer.Lang,
			BatchSize: cfg.Scorer.BatchSize,
			UseIDF:    cfg.Scorer.UseIDF,
			Rescale:   cfg.Scorer.Rescale,
		}
		if cfg.Scorer.OpenAI != nil {
			oc.BaseURL = cfg.Scorer.OpenAI.BaseURL
			oc.APIKeyEnv = cfg.Scorer.OpenAI.APIKeyEnv
			oc.Timeout = time.Duration(cfg.Scorer.OpenAI.TimeoutSecs) * time.Second
		}
		scorer, err = openai.NewScorer(oc)
		if err != nil {
			logger.Fatal("cannot initialize scorer", "err", err)
		}
	default:
		logger.Fatal("unknown scorer", "type", cfg.Scorer.Type)
	}

	var wc domain.Chunker
	if !cfg.Chunking.Disabled {
		c, err := chunker.NewWordChunker(cfg.Chunking.Size, *cfg.Chunking.Overlap)
		if err != nil {
			logger.Fatal("invalid chunking parameters", "err", err)
		}
		wc = c
	}

	svc, err := service.NewCompareService(wc, scorer, service.Options{
		Lower:              cfg.Normalize.Lower,
		CollapseWhitespace: cfg.Normalize.CollapseWhitespace,
		NoChunk:            cfg.Chunking.Disabled,
		MaxChunks:          cfg.Chunking.MaxChunks,
	}, logger)
	if err != nil {
		logger.Fatal("cannot assemble pipeline", "err", err)
	}

	summary, err := svc.Compare(context.Background(), candidate, reference)
	if err != nil {
		logger.Fatal("comparison failed", "err", err)
	}

	if cfg.Report.JSONPath != "" {
		if err := report.WriteJSON(cfg.Report.JSONPath, summary); err != nil {
			logger.Fatal("cannot write JSON report", "path", cfg.Report.JSONPath, "err", err)
		}
		logger.Info("wrote JSON report", "path", cfg.Report.JSONPath)
	}

	if *interactive {
		if _, err := tea.NewProgram(tui.New(summary)).Run(); err != nil {
			logger.Fatal("tui failed", "err", err)
		}
		return
	}
	report.Print(os.Stdout, summary, *cfg.Report.ShowChunks)
}

// loadText resolves exactly one of the inline-text or file flags for a
// side; "-" as a file path reads standard input.
func loadText(textValue, fileValue, label string) (string, error) {
	if textValue != "" && fileValue != "" {
		return "", fmt.Errorf("provide either --%s-text or --%s-file, not both", label, label)
	}
	if textValue != "" {
		return textValue, nil
	}
	if fileValue == "" {
		return "", fmt.Errorf("you must provide either --%s-text or --%s-file", label, label)
	}
	if fileValue == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
	data, err := os.ReadFile(fileValue)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func parseLevel(level string) log.Level {
	switch level {
	case "debug":
		return log.DebugLevel
	case "warn":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}
