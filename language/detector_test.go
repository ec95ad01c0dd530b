package language

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shahsyedai/rag-agent/schema"
)

func TestDetectEnglish(t *testing.T) {
	d := NewDetector(0)

	assert.Equal(t, schema.ScriptEnglish, d.Detect("How to perform wudu?"))
	assert.Equal(t, schema.ScriptEnglish, d.Detect("What are the rules of fasting in Ramadan?"))
}

func TestDetectArabicScript(t *testing.T) {
	d := NewDetector(0)

	assert.Equal(t, schema.ScriptArabic, d.Detect("کیسے وضو کریں؟"))
	assert.Equal(t, schema.ScriptArabic, d.Detect("كيف تتوضأ؟"))
}

func TestDetectMixedUsesCharacterRatio(t *testing.T) {
	d := NewDetector(0.3)

	// Mostly Latin with a single Arabic word stays English.
	assert.Equal(t, schema.ScriptEnglish, d.Detect("what is the meaning of وضو in daily practice and worship"))
	// Mostly Arabic with one Latin word crosses the ratio.
	assert.Equal(t, schema.ScriptArabic, d.Detect("وضو کرنے کا طریقہ kya ہے"))
}

func TestDetectEmptyInput(t *testing.T) {
	d := NewDetector(0)

	// Empty and whitespace-only input must not trigger a translation call.
	assert.Equal(t, schema.ScriptArabic, d.Detect(""))
	assert.Equal(t, schema.ScriptArabic, d.Detect("   \t\n"))
}

func TestDetectTrivialInputDefaultsEnglish(t *testing.T) {
	d := NewDetector(0)

	assert.Equal(t, schema.ScriptEnglish, d.Detect("ok"))
	assert.Equal(t, schema.ScriptEnglish, d.Detect("?!"))
}

func TestDetectNeverPanicsOnOddInput(t *testing.T) {
	d := NewDetector(0)

	inputs := []string{
		strings.Repeat("؟", 100),
		"1234567890",
		"���",
		"🙂🙂🙂 prayer times",
	}
	for _, in := range inputs {
		got := d.Detect(in)
		assert.Contains(t, []schema.Script{schema.ScriptEnglish, schema.ScriptArabic}, got)
	}
}

func TestDetectRatioThresholdConfigurable(t *testing.T) {
	strict := NewDetector(0.9)

	// Half-Arabic text is below a 0.9 threshold; statistical detection decides.
	text := "وضو کا طریقہ how to do"
	got := strict.Detect(text)
	assert.Contains(t, []schema.Script{schema.ScriptEnglish, schema.ScriptArabic}, got)

	loose := NewDetector(0.1)
	assert.Equal(t, schema.ScriptArabic, loose.Detect(text))
}
