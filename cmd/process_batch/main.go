package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/time/rate"

	"ocrserver/batch"
	"ocrserver/database"
	"ocrserver/dataset"
	"ocrserver/extraction"
	"ocrserver/fetcher"
	"ocrserver/internal/config"
	"ocrserver/ocr"
	"ocrserver/units"
)

func main() {
	inputPath := flag.String("input", "", "Path to the input dataset (.csv or .xlsx)")
	outputPath := flag.String("output", "predictions.csv", "Path to the results CSV (appended to, not rewritten)")
	cachePath := flag.String("db", "", "Path to the OCR text cache database (empty disables the cache)")
	workers := flag.Int("workers", 0, "Number of parallel workers (config default when 0)")
	batchSize := flag.Int("batch-size", 0, "Results accumulated before each write (config default when 0)")
	resume := flag.Bool("resume", true, "Skip rows already present in the results file")
	flag.Parse()

	if *inputPath == "" {
		log.Fatal("flag -input is required")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if *workers > 0 {
		cfg.Workers = *workers
	}
	if *batchSize > 0 {
		cfg.BatchSize = *batchSize
	}

	rows, err := dataset.ReadFile(*inputPath, cfg.InputEncoding)
	if err != nil {
		log.Fatalf("failed to read input dataset: %v", err)
	}

	registry := units.Default()
	pipeline := extraction.NewPipeline(registry, cfg.MatchMinScore)

	var cache batch.TextCache
	if *cachePath != "" {
		ocrCache, err := database.NewOCRCache(*cachePath)
		if err != nil {
			log.Fatalf("failed to open OCR cache: %v", err)
		}
		defer ocrCache.Close()
		cache = ocrCache
	}

	processor := batch.NewProcessor(
		batch.Config{
			Workers:   cfg.Workers,
			BatchSize: cfg.BatchSize,
			Resume:    *resume,
		},
		fetcher.NewClient(fetcher.ClientConfig{
			Timeout:   cfg.FetchTimeout,
			RateLimit: rate.Limit(cfg.FetchRatePerSec),
			UserAgent: cfg.FetchUserAgent,
		}),
		ocr.NewTesseractEngine(cfg.OCRLanguages...),
		pipeline,
		cache,
		dataset.NewResultWriter(*outputPath),
	)

	// Прерывание по сигналу завершает прогон после текущих записей;
	// уже записанные результаты сохраняются и прогон можно возобновить
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	summary, err := processor.Run(ctx, rows)
	if err != nil && summary == nil {
		log.Fatalf("batch processing failed: %v", err)
	}

	fmt.Println("\n--- Entity Value Extraction ---")
	fmt.Printf("Session: %s\n", summary.SessionID)
	fmt.Printf("Total Rows: %d\n", summary.TotalRows)
	fmt.Printf("Processed: %d\n", summary.Processed)
	fmt.Printf(" - With prediction: %d\n", summary.Predicted)
	fmt.Printf(" - Empty prediction: %d\n", summary.Empty)
	fmt.Printf("Skipped (already done): %d\n", summary.Skipped)
	fmt.Printf("Cache hits: %d\n", summary.CacheHits)
	fmt.Printf("Fetch errors: %d\n", summary.FetchErrors)
	fmt.Printf("OCR errors: %d\n", summary.OCRErrors)
	fmt.Printf("Duration: %s\n", summary.Duration.Round(time.Millisecond))

	if err != nil {
		fmt.Printf("Run interrupted: %v\n", err)
		os.Exit(1)
	}
}
