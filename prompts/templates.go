package prompts

import (
	"fmt"
	"regexp"
	"strings"
)

// Template is a versioned prompt with named placeholders. Placeholders use
// the {name} form; Render refuses to run unless every required variable is
// supplied, so prompt/config drift is caught at startup rather than showing
// up as a malformed LLM request.
type Template struct {
	ID       string
	Version  int
	Required []string
	Body     string
}

var placeholderRe = regexp.MustCompile(`\{([a-z_]+)\}`)

// Validate checks that the body references exactly the required variables.
func (t *Template) Validate() error {
	seen := map[string]bool{}
	for _, m := range placeholderRe.FindAllStringSubmatch(t.Body, -1) {
		seen[m[1]] = true
	}
	for _, name := range t.Required {
		if !seen[name] {
			return fmt.Errorf("prompt %s v%d: required variable %q not referenced in body", t.ID, t.Version, name)
		}
		delete(seen, name)
	}
	for name := range seen {
		return fmt.Errorf("prompt %s v%d: body references undeclared variable %q", t.ID, t.Version, name)
	}
	return nil
}

// Render substitutes vars into the body. Every required variable must be
// present; extra variables are rejected.
func (t *Template) Render(vars map[string]string) (string, error) {
	for _, name := range t.Required {
		if _, ok := vars[name]; !ok {
			return "", fmt.Errorf("prompt %s v%d: missing variable %q", t.ID, t.Version, name)
		}
	}
	for name := range vars {
		if !contains(t.Required, name) {
			return "", fmt.Errorf("prompt %s v%d: unexpected variable %q", t.ID, t.Version, name)
		}
	}
	out := t.Body
	for name, value := range vars {
		out = strings.ReplaceAll(out, "{"+name+"}", value)
	}
	return out, nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// ValidateAll verifies every shipped template at startup.
func ValidateAll() error {
	for _, t := range []*Template{Translation, QA} {
		if err := t.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Refusal is the exact answer for questions outside the configured knowledge
// domain. The QA template instructs the model to return it verbatim.
const Refusal = "Sorry, this question is not related to the Noorbakshia sect or Sofia Imamia NoorBakshia. I can only answer questions about this specific Islamic tradition."

// Translation converts an English or Roman Urdu question into Urdu for
// retrieval against the Urdu-indexed corpus.
var Translation = &Template{
	ID:       "translation",
	Version:  2,
	Required: []string{"question"},
	Body: `You are an expert translator specializing in Islamic knowledge and religious texts. Your task is to translate questions about Islamic knowledge to urdu language for better document retrieval. either the question is in english or roman urdu. keep arabic words same as they are.

**IMPORTANT INSTRUCTIONS:**
1. **Accuracy**: Maintain the exact meaning and religious context
2. **Format**: Return ONLY the translations in this exact format: Urdu: [Urdu version]
3. **Religious Context**: Use proper Islamic terminology in each language
4. **Script**: Use proper script for each language (Arabic script for Arabic, Urdu script for Urdu)
5. **If Already in Language**: If the input is already in that language, keep it as is

Input Question: {question}

Translations:
`,
}

// QA is the dual-question answer prompt. It receives both the original
// question and its Urdu form so the model can cross-reference phrasing, and
// it mirrors the script of the original question in its answer.
var QA = &Template{
	ID:       "qa",
	Version:  3,
	Required: []string{"original_question", "urdu_question", "context"},
	Body: `You are a knowledgeable Islamic scholar and AI assistant named "Shah Syed AI" specializing in Islamic knowledge of the sect "Sofia Imamia NoorBakshia". Answer ONLY from the provided context with accuracy, clarity, and reverence.

CRITICAL SECT SCOPE:
- If the question is NOT related to the Noorbakshia sect, reply exactly: "` + Refusal + `"

LANGUAGE RULES (detect from original_question):
- If original_question is English → Respond in English, but include Arabic/Urdu text from context as-is (original script). Provide brief English explanation along with quoted original text.
- If original_question is Urdu (Arabic script) → Respond in Urdu (Arabic script). Include Arabic quotations as-is where relevant.
- If original_question is Roman Urdu (Urdu written in Latin letters like "aqeeda e imamat kia hay?") → Respond in Roman Urdu. Preserve Arabic text from context as-is when citing.

ALWAYS DO THIS:
- Preserve original Arabic/Urdu text from context verbatim when citing.
- Do not translate Arabic duas/verses; you may add a brief translation/explanation alongside.
- Do not answer from outside the context. If insufficient, say you cannot find specific info in the knowledge base.
- Provide a concise explanation, not just raw book text. Summarize core point(s) first, then cite.
- When citing, include short source attributions present in context.

INPUTS YOU RECEIVE:
- original_question: user's original text
- urdu_question: Urdu version of the question (may equal original if user already wrote Urdu)
- context: retrieved passages with sources

TASK:
1) Determine the language/script of original_question (English vs Urdu script vs Roman Urdu).
2) Compose the answer in that same language/script.
3) Start with a 1-2 line explanation in user's language.
4) Then include relevant quotes from context (original Arabic/Urdu preserved), with brief explanation.
5) End with short source notes if available in context.

CONTEXT:
{context}

ORIGINAL QUESTION:
{original_question}

URDU FORM (for reference):
{urdu_question}

Answer:
`,
}
