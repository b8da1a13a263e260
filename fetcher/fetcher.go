// Package fetcher загружает изображения этикеток по URL с ограничением
// частоты запросов к источнику.
package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// maxImageSize предельный размер загружаемого изображения
const maxImageSize = 32 << 20 // 32 MB

// Client клиент загрузки изображений
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	userAgent  string
}

// ClientConfig конфигурация клиента
type ClientConfig struct {
	Timeout   time.Duration
	RateLimit rate.Limit
	Burst     int
	UserAgent string
}

// NewClient создает новый клиент загрузки изображений
func NewClient(config ClientConfig) *Client {
	if config.Timeout == 0 {
		config.Timeout = 15 * time.Second
	}
	if config.RateLimit == 0 {
		config.RateLimit = rate.Every(100 * time.Millisecond) // 10 запросов в секунду
	}
	if config.Burst == 0 {
		config.Burst = 1
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		limiter:   rate.NewLimiter(config.RateLimit, config.Burst),
		userAgent: config.UserAgent,
	}
}

// Fetch загружает изображение по URL и возвращает его байты.
// Перед запросом ожидает разрешения ограничителя частоты.
func (c *Client) Fetch(ctx context.Context, imageURL string) ([]byte, error) {
	if imageURL == "" {
		return nil, fmt.Errorf("empty image URL")
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download image: unexpected status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageSize+1))
	if err != nil {
		return nil, fmt.Errorf("read image body: %w", err)
	}
	if len(data) > maxImageSize {
		return nil, fmt.Errorf("image exceeds %d bytes", maxImageSize)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("empty image body")
	}

	return data, nil
}
