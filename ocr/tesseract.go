package ocr

import (
	"context"
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// TesseractEngine реализация Engine поверх клиента gosseract
type TesseractEngine struct {
	languages     []string
	clientFactory func() *gosseract.Client
}

// NewTesseractEngine создает движок Tesseract. Пустой список языков
// означает язык по умолчанию (английский).
func NewTesseractEngine(languages ...string) *TesseractEngine {
	return &TesseractEngine{
		languages:     languages,
		clientFactory: gosseract.NewClient,
	}
}

// Recognize выполняет распознавание одного изображения. Клиент создается
// на вызов: gosseract-клиент не является потокобезопасным, а воркеры
// пакетной обработки распознают параллельно.
func (e *TesseractEngine) Recognize(ctx context.Context, image []byte) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	default:
	}

	client := e.clientFactory()
	defer client.Close()

	if err := client.SetImageFromBytes(image); err != nil {
		return "", fmt.Errorf("set image: %w", err)
	}
	if len(e.languages) > 0 {
		if err := client.SetLanguage(e.languages...); err != nil {
			return "", fmt.Errorf("set languages: %w", err)
		}
	}

	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("recognize text: %w", err)
	}

	// Многострочный вывод склеивается в одну строку: токенизатору ниже
	// по конвейеру переносы строк не нужны
	return strings.Join(strings.Fields(text), " "), nil
}
