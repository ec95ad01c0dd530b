package language

import (
	"strings"
	"unicode"

	"github.com/abadojack/whatlanggo"

	"github.com/shahsyedai/rag-agent/schema"
)

// DefaultArabicRatio is the Arabic-script character fraction above which a
// query is classified without consulting the statistical detector.
const DefaultArabicRatio = 0.3

// Detector classifies the script of a user query. It is deterministic, has no
// side effects and never fails: anything it cannot classify falls back to
// English, which only costs one extra translation call downstream.
type Detector struct {
	arabicRatio float64
}

// NewDetector creates a detector with the given Arabic-character ratio
// threshold; values outside (0,1] fall back to the default.
func NewDetector(arabicRatio float64) *Detector {
	if arabicRatio <= 0 || arabicRatio > 1 {
		arabicRatio = DefaultArabicRatio
	}
	return &Detector{arabicRatio: arabicRatio}
}

// Detect returns the script classification for text.
func (d *Detector) Detect(text string) schema.Script {
	runes := []rune(text)
	if len(strings.TrimSpace(text)) == 0 {
		// Treat empty input as already in the retrieval script so the
		// pipeline never spends a translation call on it.
		return schema.ScriptArabic
	}

	arabic := 0
	for _, r := range runes {
		if isArabicRune(r) {
			arabic++
		}
	}
	if float64(arabic) > float64(len(runes))*d.arabicRatio {
		return schema.ScriptArabic
	}

	stripped := stripPunctuation(text)
	if len([]rune(strings.TrimSpace(stripped))) < 3 {
		// Too little signal for the statistical detector.
		return schema.ScriptEnglish
	}

	switch whatlanggo.DetectLang(stripped) {
	case whatlanggo.Arb, whatlanggo.Urd, whatlanggo.Pes:
		return schema.ScriptArabic
	case whatlanggo.Eng:
		return schema.ScriptEnglish
	default:
		return schema.ScriptEnglish
	}
}

// isArabicRune reports whether r falls within the Arabic/Urdu Unicode blocks,
// including the presentation-form ranges.
func isArabicRune(r rune) bool {
	switch {
	case r >= 0x0600 && r <= 0x06FF:
		return true
	case r >= 0x0750 && r <= 0x077F:
		return true
	case r >= 0x08A0 && r <= 0x08FF:
		return true
	case r >= 0xFB50 && r <= 0xFDFF:
		return true
	case r >= 0xFE70 && r <= 0xFEFF:
		return true
	}
	return false
}

func stripPunctuation(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) || r == '_' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
