// Package batch реализует пакетный драйвер: прогон набора записей
// (идентификатор, ссылка на изображение, тип сущности) через загрузку,
// предобработку, распознавание и конвейер извлечения, с инкрементальной
// записью результатов.
package batch

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"ocrserver/dataset"
	"ocrserver/extraction"
	"ocrserver/ocr"
)

// ImageFetcher загрузчик изображений по URL
type ImageFetcher interface {
	Fetch(ctx context.Context, imageURL string) ([]byte, error)
}

// TextCache кэш распознанных текстов по ссылке на изображение
type TextCache interface {
	Get(imageLink string) (string, bool, error)
	Put(imageLink, text string) error
}

// Config конфигурация пакетной обработки
type Config struct {
	// Workers число параллельных воркеров
	Workers int
	// BatchSize число результатов, накапливаемых до записи в приёмник
	BatchSize int
	// Resume пропускать записи, уже присутствующие в файле результатов
	Resume bool
}

// Processor пакетный обработчик записей
type Processor struct {
	config   Config
	fetcher  ImageFetcher
	engine   ocr.Engine
	pipeline *extraction.Pipeline
	cache    TextCache
	writer   *dataset.ResultWriter
}

// Summary итоги прогона пакетной обработки
type Summary struct {
	SessionID   string
	TotalRows   int
	Processed   int
	Skipped     int
	Predicted   int
	Empty       int
	CacheHits   int
	FetchErrors int
	OCRErrors   int
	Duration    time.Duration
}

// NewProcessor создает пакетный обработчик. cache может быть nil —
// тогда каждое изображение распознаётся заново.
func NewProcessor(config Config, fetcher ImageFetcher, engine ocr.Engine, pipeline *extraction.Pipeline, cache TextCache, writer *dataset.ResultWriter) *Processor {
	if config.Workers <= 0 {
		config.Workers = 4
	}
	if config.BatchSize <= 0 {
		config.BatchSize = 5
	}

	return &Processor{
		config:   config,
		fetcher:  fetcher,
		engine:   engine,
		pipeline: pipeline,
		cache:    cache,
		writer:   writer,
	}
}

// Run обрабатывает записи набора. Ошибка одной записи не прерывает прогон:
// такая запись получает пустое предсказание. Возвращает итоги прогона.
func (p *Processor) Run(ctx context.Context, rows []dataset.Row) (*Summary, error) {
	summary := &Summary{
		SessionID: uuid.New().String(),
		TotalRows: len(rows),
	}
	startTime := time.Now()

	completed := map[int]bool{}
	if p.config.Resume {
		var err error
		completed, err = p.writer.CompletedIndices()
		if err != nil {
			return nil, err
		}
	}

	log.Printf("[batch %s] starting: %d rows, %d workers, batch size %d, %d already completed",
		summary.SessionID, len(rows), p.config.Workers, p.config.BatchSize, len(completed))

	jobs := make(chan dataset.Row)
	var wg sync.WaitGroup
	var mu sync.Mutex
	pending := make([]dataset.Result, 0, p.config.BatchSize)
	var writeErr error

	flushLocked := func() {
		if len(pending) == 0 {
			return
		}
		if err := p.writer.Append(pending); err != nil && writeErr == nil {
			writeErr = err
		}
		pending = pending[:0]
	}

	for i := 0; i < p.config.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for row := range jobs {
				prediction := p.processRow(ctx, row, summary, &mu)

				mu.Lock()
				summary.Processed++
				if prediction == "" {
					summary.Empty++
				} else {
					summary.Predicted++
				}
				pending = append(pending, dataset.Result{Index: row.Index, Prediction: prediction})
				if len(pending) >= p.config.BatchSize {
					flushLocked()
				}
				mu.Unlock()
			}
		}()
	}

feed:
	for _, row := range rows {
		if completed[row.Index] {
			mu.Lock()
			summary.Skipped++
			mu.Unlock()
			continue
		}
		select {
		case jobs <- row:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	mu.Lock()
	flushLocked()
	err := writeErr
	mu.Unlock()
	if err != nil {
		return nil, err
	}

	summary.Duration = time.Since(startTime)
	log.Printf("[batch %s] finished: %d processed, %d predicted, %d empty, %d skipped in %s",
		summary.SessionID, summary.Processed, summary.Predicted, summary.Empty, summary.Skipped,
		summary.Duration.Round(time.Millisecond))

	if ctx.Err() != nil {
		return summary, ctx.Err()
	}
	return summary, nil
}

// processRow получает текст изображения (из кэша либо через загрузку,
// предобработку и распознавание) и извлекает значение сущности.
// Любая ошибка записи даёт пустое предсказание.
func (p *Processor) processRow(ctx context.Context, row dataset.Row, summary *Summary, mu *sync.Mutex) string {
	text, found := p.cachedText(row.ImageLink)
	if found {
		mu.Lock()
		summary.CacheHits++
		mu.Unlock()
	} else {
		image, err := p.fetcher.Fetch(ctx, row.ImageLink)
		if err != nil {
			log.Printf("[batch] row %d: fetch failed: %v", row.Index, err)
			mu.Lock()
			summary.FetchErrors++
			mu.Unlock()
			return ""
		}

		prepared, err := ocr.Preprocess(image)
		if err != nil {
			log.Printf("[batch] row %d: preprocess failed: %v", row.Index, err)
			mu.Lock()
			summary.OCRErrors++
			mu.Unlock()
			return ""
		}

		text, err = p.engine.Recognize(ctx, prepared)
		if err != nil {
			log.Printf("[batch] row %d: recognize failed: %v", row.Index, err)
			mu.Lock()
			summary.OCRErrors++
			mu.Unlock()
			return ""
		}

		p.storeText(row.ImageLink, text)
	}

	prediction, ok := p.pipeline.Predict(text, row.EntityName)
	if !ok {
		return ""
	}
	return prediction
}

func (p *Processor) cachedText(imageLink string) (string, bool) {
	if p.cache == nil {
		return "", false
	}
	text, found, err := p.cache.Get(imageLink)
	if err != nil {
		log.Printf("[batch] cache lookup failed for %s: %v", imageLink, err)
		return "", false
	}
	return text, found
}

func (p *Processor) storeText(imageLink, text string) {
	if p.cache == nil {
		return
	}
	if err := p.cache.Put(imageLink, text); err != nil {
		log.Printf("[batch] cache store failed for %s: %v", imageLink, err)
	}
}
