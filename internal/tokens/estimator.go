// Package tokens measures prompt text against a model token budget. It has
// two modes: exact subword tokenization with a process-wide per-model encoder
// cache, and a fast weighted-character heuristic for callers that do not need
// exactness.
package tokens

import (
	"fmt"
	"sync"
	"unicode"

	"github.com/pkoukk/tiktoken-go"
)

// Budget bounds how much rendered diff/code text may be sent per request.
type Budget struct {
	ModelTokenCeiling    int
	ReservedOutputTokens int
}

// Available computes the remaining input headroom after the prompt and the
// reserved output allowance, floored at zero. Zero is a normal signal
// meaning "do not call the model for this unit", never an error.
func (b Budget) Available(promptTokens int) int {
	remaining := b.ModelTokenCeiling - promptTokens - b.ReservedOutputTokens
	if remaining < 0 {
		return 0
	}
	return remaining
}

// encoders caches one tiktoken encoder per model name. Construction is
// idempotent, so a rare duplicate build under concurrent first use is
// harmless; reads are safe to share.
var encoders sync.Map

// CountTokens returns the exact token count of text for the given model.
func CountTokens(model, text string) (int, error) {
	enc, err := encoderFor(model)
	if err != nil {
		return 0, err
	}
	return len(enc.Encode(text, nil, nil)), nil
}

func encoderFor(model string) (*tiktoken.Tiktoken, error) {
	if cached, ok := encoders.Load(model); ok {
		return cached.(*tiktoken.Tiktoken), nil
	}

	enc, err := tiktoken.EncodingForModel(model)
	if err != nil {
		return nil, fmt.Errorf("failed to load encoder for model %s: %w", model, err)
	}

	actual, _ := encoders.LoadOrStore(model, enc)
	return actual.(*tiktoken.Tiktoken), nil
}

// EstimateTokens approximates the token count of text without a tokenizer.
// Wide-script runes (CJK and friends) tokenize to roughly one token each;
// narrow runes average about four characters per token.
func EstimateTokens(text string) int {
	wide := 0
	narrow := 0
	for _, r := range text {
		if isWideRune(r) {
			wide++
		} else {
			narrow++
		}
	}
	return wide + (narrow+3)/4
}

func isWideRune(r rune) bool {
	return unicode.Is(unicode.Han, r) ||
		unicode.Is(unicode.Hiragana, r) ||
		unicode.Is(unicode.Katakana, r) ||
		unicode.Is(unicode.Hangul, r)
}

// MeasurePrompt counts prompt tokens exactly when a model name is given,
// falling back to the heuristic when the model is unknown or its encoder
// cannot be built.
func MeasurePrompt(model, text string) int {
	if model != "" {
		if n, err := CountTokens(model, text); err == nil {
			return n
		}
	}
	return EstimateTokens(text)
}
