// Package ocr defines the boundary to the OCR provider. The core treats the
// provider as a black box that turns an uploaded image into a flattened text
// transcript plus word-level confidence scores; the transcript feeds the
// extractor and the confidences are averaged into ParsedReport.Confidence.
package ocr

import (
	"context"
	"math"
)

// Word is a single recognized token with its confidence in [0,1].
type Word struct {
	Text       string
	Confidence float64
}

// Result captures OCR output for one submitted image.
type Result struct {
	// Text is the linearized transcript, line-oriented like the source
	// document.
	Text string

	// Words carries per-word confidences. May be empty when the provider
	// does not report them.
	Words []Word
}

// Engine is the OCR provider contract: one image in, one result out.
// Implementations must be safe for concurrent use by independent callers.
type Engine interface {
	Name() string
	Recognize(ctx context.Context, image []byte) (Result, error)
}

// MeanConfidence returns the arithmetic mean of the word confidences, rounded
// to two decimals. An empty word list means "confidence unknown" and yields
// nil rather than zero.
func MeanConfidence(words []Word) *float64 {
	if len(words) == 0 {
		return nil
	}
	sum := 0.0
	for _, w := range words {
		sum += w.Confidence
	}
	mean := math.Round(sum/float64(len(words))*100) / 100
	return &mean
}
