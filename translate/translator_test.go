package translate

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shahsyedai/rag-agent/schema"
)

type fakeLLM struct {
	response string
	err      error
	calls    int
}

func (f *fakeLLM) GenerateCompletion(_ context.Context, _ string) (string, error) {
	f.calls++
	return f.response, f.err
}

func TestTranslateEnglishQuestion(t *testing.T) {
	llm := &fakeLLM{response: "Urdu: وضو کیسے کریں؟"}
	tr := NewTranslator(llm)

	got := tr.TranslateForRetrieval(context.Background(), "How to perform wudu?", schema.ScriptEnglish)

	assert.True(t, got.NeedsTranslation)
	assert.Equal(t, "وضو کیسے کریں؟", got.RetrievalText)
	assert.False(t, got.Fallback)
	assert.Equal(t, 1, llm.calls)
}

func TestTranslateSkipsArabicScript(t *testing.T) {
	llm := &fakeLLM{response: "should not be called"}
	tr := NewTranslator(llm)

	got := tr.TranslateForRetrieval(context.Background(), "کیسے وضو کریں؟", schema.ScriptArabic)

	assert.False(t, got.NeedsTranslation)
	assert.Equal(t, "کیسے وضو کریں؟", got.RetrievalText)
	assert.Zero(t, llm.calls, "no translation call may happen for non-English scripts")
}

func TestTranslateParsesFirstLabeledLine(t *testing.T) {
	llm := &fakeLLM{response: "Some preamble\nUrdu: پہلا ترجمہ\nUrdu: دوسرا ترجمہ"}
	tr := NewTranslator(llm)

	got := tr.TranslateForRetrieval(context.Background(), "first?", schema.ScriptEnglish)

	assert.Equal(t, "پہلا ترجمہ", got.RetrievalText)
	assert.False(t, got.Fallback)
}

func TestTranslateWholeOutputFallback(t *testing.T) {
	llm := &fakeLLM{response: "  وضو کا طریقہ  "}
	tr := NewTranslator(llm)

	got := tr.TranslateForRetrieval(context.Background(), "how to do wudu", schema.ScriptEnglish)

	assert.Equal(t, "وضو کا طریقہ", got.RetrievalText)
	assert.True(t, got.Fallback)
}

func TestTranslateServiceFailureFallsBackToOriginal(t *testing.T) {
	llm := &fakeLLM{err: errors.New("quota exceeded")}
	tr := NewTranslator(llm)

	original := "How to perform wudu?"
	got := tr.TranslateForRetrieval(context.Background(), original, schema.ScriptEnglish)

	// Round-trip property: retrieval text equals the raw question exactly.
	assert.Equal(t, original, got.RetrievalText)
	assert.Contains(t, got.RawOutput, "Translation failed")
	assert.True(t, got.Fallback)
}

func TestTranslateEmptyLabelFallsThrough(t *testing.T) {
	llm := &fakeLLM{response: "Urdu:\nnothing else"}
	tr := NewTranslator(llm)

	got := tr.TranslateForRetrieval(context.Background(), "q?", schema.ScriptEnglish)

	// An empty labeled line is not a usable translation.
	assert.True(t, got.Fallback)
	assert.Equal(t, "Urdu:\nnothing else", got.RetrievalText)
}
