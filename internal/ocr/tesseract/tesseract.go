// Package tesseract provides a Tesseract-backed implementation of the ocr
// boundary using the gosseract client.
package tesseract

import (
	"context"
	"fmt"

	"github.com/otiai10/gosseract/v2"

	"github.com/itswalshy/sbux.tipjar/internal/ocr"
)

// client is the slice of the gosseract API the engine uses. Tests substitute
// a fake so the adapter is exercised without a native Tesseract install.
type client interface {
	SetImageFromBytes(data []byte) error
	SetLanguage(languages ...string) error
	Text() (string, error)
	GetBoundingBoxes(level gosseract.PageIteratorLevel) ([]gosseract.BoundingBox, error)
	Close() error
}

// Engine implements ocr.Engine with a local Tesseract installation. A fresh
// client is created per request, so the engine is safe for concurrent use.
type Engine struct {
	newClient func() client
	languages []string
}

// New constructs a Tesseract-backed OCR engine. Language hints are BCP-47
// trained-data names (e.g. "eng"); none means the Tesseract default.
func New(languages ...string) *Engine {
	return &Engine{
		newClient: func() client { return gosseract.NewClient() },
		languages: languages,
	}
}

func (e *Engine) Name() string { return "tesseract" }

// Recognize runs OCR on a single encoded image and maps Tesseract's 0-100
// word confidences into [0,1].
func (e *Engine) Recognize(ctx context.Context, image []byte) (ocr.Result, error) {
	if err := ctx.Err(); err != nil {
		return ocr.Result{}, err
	}

	c := e.newClient()
	defer c.Close()

	if err := c.SetImageFromBytes(image); err != nil {
		return ocr.Result{}, fmt.Errorf("set image: %w", err)
	}
	if len(e.languages) > 0 {
		if err := c.SetLanguage(e.languages...); err != nil {
			return ocr.Result{}, fmt.Errorf("set languages: %w", err)
		}
	}

	text, err := c.Text()
	if err != nil {
		return ocr.Result{}, fmt.Errorf("recognize text: %w", err)
	}

	result := ocr.Result{Text: text}

	boxes, err := c.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		// The transcript alone is still useful; confidence just stays
		// unknown.
		return result, nil
	}
	for _, box := range boxes {
		conf := box.Confidence / 100
		if conf < 0 {
			conf = 0
		} else if conf > 1 {
			conf = 1
		}
		result.Words = append(result.Words, ocr.Word{Text: box.Word, Confidence: conf})
	}

	return result, nil
}
