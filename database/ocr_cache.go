// Package database содержит хранилище кэша распознанных текстов.
package database

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// OCRCache кэш распознанных текстов по ссылке на изображение. Повторный
// или возобновлённый прогон не скачивает и не распознаёт изображение
// заново. Сам конвейер извлечения остаётся без состояния: кэш живет
// только на стороне пакетного драйвера.
type OCRCache struct {
	conn  *sql.DB
	mu    sync.Mutex
	stats CacheStats
}

// CacheStats статистика обращений к кэшу
type CacheStats struct {
	Hits   int64 `json:"hits"`
	Misses int64 `json:"misses"`
}

// NewOCRCache открывает (или создает) БД кэша по указанному пути
func NewOCRCache(path string) (*OCRCache, error) {
	conn, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open cache database: %w", err)
	}

	if err := migrateOCRCache(conn); err != nil {
		conn.Close()
		return nil, err
	}

	return &OCRCache{conn: conn}, nil
}

// Close закрывает подключение к БД кэша
func (c *OCRCache) Close() error {
	return c.conn.Close()
}

// Get возвращает распознанный текст для ссылки на изображение
func (c *OCRCache) Get(imageLink string) (string, bool, error) {
	var text string
	err := c.conn.QueryRow(
		`SELECT recognized_text FROM ocr_texts WHERE image_link = ?`, imageLink,
	).Scan(&text)
	if err == sql.ErrNoRows {
		c.addMiss()
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("query cache: %w", err)
	}

	c.addHit()
	return text, true, nil
}

// Put сохраняет распознанный текст для ссылки на изображение.
// Повторная запись по той же ссылке перезаписывает текст.
func (c *OCRCache) Put(imageLink, text string) error {
	_, err := c.conn.Exec(
		`INSERT INTO ocr_texts (image_link, recognized_text, created_at)
		 VALUES (?, ?, ?)
		 ON CONFLICT(image_link) DO UPDATE SET recognized_text = excluded.recognized_text`,
		imageLink, text, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("store cache entry: %w", err)
	}
	return nil
}

// Stats возвращает статистику обращений к кэшу
func (c *OCRCache) Stats() CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}

func (c *OCRCache) addHit() {
	c.mu.Lock()
	c.stats.Hits++
	c.mu.Unlock()
}

func (c *OCRCache) addMiss() {
	c.mu.Lock()
	c.stats.Misses++
	c.mu.Unlock()
}
