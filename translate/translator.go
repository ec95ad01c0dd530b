package translate

import (
	"context"
	"strings"

	"github.com/shahsyedai/rag-agent/common/logger"
	"github.com/shahsyedai/rag-agent/llm"
	"github.com/shahsyedai/rag-agent/metrics"
	"github.com/shahsyedai/rag-agent/prompts"
	"github.com/shahsyedai/rag-agent/schema"
)

// urduLabel marks the translation line in the model output.
const urduLabel = "Urdu:"

// Translator converts English questions into Urdu for retrieval against the
// Urdu-indexed corpus. Non-English questions pass through unchanged: the
// corpus is best matched in Urdu and Arabic-script input is assumed already
// aligned with it.
type Translator struct {
	provider llm.Provider
}

// NewTranslator creates a translator backed by the given LLM provider.
func NewTranslator(provider llm.Provider) *Translator {
	return &Translator{provider: provider}
}

// TranslateForRetrieval returns the text to embed for retrieval. It never
// returns an error: a failed translation falls back to the original question
// so the pipeline can still retrieve, just with worse recall.
func (t *Translator) TranslateForRetrieval(ctx context.Context, question string, script schema.Script) schema.Translation {
	if script != schema.ScriptEnglish {
		return schema.Translation{
			NeedsTranslation: false,
			RetrievalText:    question,
			RawOutput:        "Not needed - query already in target language",
		}
	}

	prompt, err := prompts.Translation.Render(map[string]string{"question": question})
	if err != nil {
		// Template drift; validated at startup so this should not happen.
		logger.Errorf("translate: render failed: %v", err)
		return softFail(question, err)
	}

	metrics.IncLLMCall("translation")
	raw, err := t.provider.GenerateCompletion(ctx, prompt)
	if err != nil {
		logger.Warnf("translate: llm call failed, falling back to original query: %v", err)
		metrics.IncError("translation")
		return softFail(question, err)
	}

	urdu, fallback := parseUrduLine(raw)
	if fallback {
		// Signals prompt drift: the model stopped honoring the labeled format.
		logger.Warnf("translate: no %q line in output, using whole response", urduLabel)
		metrics.IncTranslationFallback()
	}
	return schema.Translation{
		NeedsTranslation: true,
		RetrievalText:    urdu,
		RawOutput:        raw,
		Fallback:         fallback,
	}
}

func softFail(question string, err error) schema.Translation {
	return schema.Translation{
		NeedsTranslation: true,
		RetrievalText:    question,
		RawOutput:        "Translation failed: " + err.Error(),
		Fallback:         true,
	}
}

// parseUrduLine extracts the first "Urdu:"-labeled line. When no such line
// exists the whole trimmed output is used as the translation.
func parseUrduLine(raw string) (text string, fallback bool) {
	for _, line := range strings.Split(raw, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, urduLabel) {
			if v := strings.TrimSpace(strings.TrimPrefix(trimmed, urduLabel)); v != "" {
				return v, false
			}
		}
	}
	return strings.TrimSpace(raw), true
}
