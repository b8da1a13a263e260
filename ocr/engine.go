// Package ocr отвечает за распознавание текста на изображениях этикеток
// и за предварительную обработку изображений перед распознаванием.
package ocr

import "context"

// Engine движок распознавания текста. Конвейер извлечения зависит только
// от возвращаемой строки, поэтому движок легко подменяется в тестах.
type Engine interface {
	// Recognize распознает текст на изображении, переданном байтами
	// закодированного изображения (png, jpeg и т.п.)
	Recognize(ctx context.Context, image []byte) (string, error)
}
