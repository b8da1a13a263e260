package ocr

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// inversionThreshold середина диапазона интенсивности 0-255: изображение
// со средней интенсивностью ниже считается тёмным фоном и инвертируется
const inversionThreshold = 127

// Preprocess готовит изображение к распознаванию: перевод в градации
// серого, инверсия полярности при тёмном фоне и повышение резкости.
// Возвращает PNG-кодированное изображение.
func Preprocess(data []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	gray := Grayscale(img)
	if MeanIntensity(gray) < inversionThreshold {
		gray = Invert(gray)
	}
	sharpened := Sharpen(gray)

	var buf bytes.Buffer
	if err := png.Encode(&buf, sharpened); err != nil {
		return nil, fmt.Errorf("encode preprocessed image: %w", err)
	}
	return buf.Bytes(), nil
}

// Grayscale переводит изображение в градации серого
func Grayscale(img image.Image) *image.Gray {
	bounds := img.Bounds()
	gray := image.NewGray(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			gray.Set(x, y, color.GrayModel.Convert(img.At(x, y)))
		}
	}
	return gray
}

// MeanIntensity возвращает среднюю интенсивность пикселей (0-255)
func MeanIntensity(gray *image.Gray) float64 {
	bounds := gray.Bounds()
	total := bounds.Dx() * bounds.Dy()
	if total == 0 {
		return 0
	}

	sum := 0.0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			sum += float64(gray.GrayAt(x, y).Y)
		}
	}
	return sum / float64(total)
}

// Invert инвертирует полярность изображения
func Invert(gray *image.Gray) *image.Gray {
	bounds := gray.Bounds()
	inverted := image.NewGray(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			inverted.SetGray(x, y, color.Gray{Y: 255 - gray.GrayAt(x, y).Y})
		}
	}
	return inverted
}

// sharpenKernel ядро 3x3 повышения резкости
var sharpenKernel = [3][3]float64{
	{0, -1, 0},
	{-1, 5, -1},
	{0, -1, 0},
}

// Sharpen применяет свёртку повышения резкости. Края изображения
// остаются без изменений.
func Sharpen(gray *image.Gray) *image.Gray {
	bounds := gray.Bounds()
	sharpened := image.NewGray(bounds)
	copy(sharpened.Pix, gray.Pix)

	for y := bounds.Min.Y + 1; y < bounds.Max.Y-1; y++ {
		for x := bounds.Min.X + 1; x < bounds.Max.X-1; x++ {
			sum := 0.0
			for ky := -1; ky <= 1; ky++ {
				for kx := -1; kx <= 1; kx++ {
					sum += sharpenKernel[ky+1][kx+1] * float64(gray.GrayAt(x+kx, y+ky).Y)
				}
			}
			sharpened.SetGray(x, y, color.Gray{Y: clampByte(sum)})
		}
	}
	return sharpened
}

func clampByte(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
