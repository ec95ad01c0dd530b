// Package assembler turns ranked search results into the attributed
// context block fed to answer generation. Each chunk is prefixed by a
// bracketed source header so the model can cite where a statement came
// from, and the assembled text carries enough bookkeeping (character,
// token and source counts) for response metadata.
package assembler

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/pkoukk/tiktoken-go"

	"github.com/shahsyedai/rag-agent/common/logger"
	"github.com/shahsyedai/rag-agent/schema"
)

const (
	// blockSeparator joins attributed source blocks.
	blockSeparator = "\n\n---\n\n"

	// DefaultMinContextChars is the minimum assembled length below which
	// the context is treated as insufficient for answering.
	DefaultMinContextChars = 50

	// tokenEncoding is the tiktoken encoding used for token counts.
	// It matches the tokenizer family of the chat models in use.
	tokenEncoding = "cl100k_base"
)

// primaryTopicRe extracts the topic name from the first source header.
var primaryTopicRe = regexp.MustCompile(`\[Source \d+: ([^-]+) -`)

// Assembler builds attributed context from search results.
type Assembler struct {
	MinContextChars int

	encoder *tiktoken.Tiktoken
}

// New returns an Assembler with the given sufficiency threshold.
// A non-positive threshold falls back to DefaultMinContextChars.
func New(minContextChars int) *Assembler {
	if minContextChars <= 0 {
		minContextChars = DefaultMinContextChars
	}
	enc, err := tiktoken.GetEncoding(tokenEncoding)
	if err != nil {
		// Token counts degrade to zero; assembly itself is unaffected.
		logger.Warnf("assembler: tiktoken encoding %q unavailable: %v", tokenEncoding, err)
	}
	return &Assembler{MinContextChars: minContextChars, encoder: enc}
}

// Assemble formats results into one attributed context block. Results with
// whitespace-only content are skipped; source numbering counts only the
// blocks actually emitted. The returned context may be empty when no result
// carries usable text.
func (a *Assembler) Assemble(results []schema.SearchResult) schema.AssembledContext {
	blocks := make([]string, 0, len(results))
	for _, res := range results {
		body := strings.TrimSpace(res.Document.Content)
		if body == "" {
			continue
		}
		blocks = append(blocks, formatBlock(len(blocks)+1, res.Document, body))
	}

	text := strings.Join(blocks, blockSeparator)
	ctx := schema.AssembledContext{
		Text:         text,
		CharLength:   len(text),
		TokenLength:  a.countTokens(text),
		SourcesCount: len(blocks),
		PrimaryTopic: extractPrimaryTopic(text),
	}
	return ctx
}

// Sufficient reports whether the assembled context is long enough to
// attempt answer generation.
func (a *Assembler) Sufficient(ctx schema.AssembledContext) bool {
	return ctx.CharLength >= a.MinContextChars
}

func formatBlock(n int, doc schema.Document, body string) string {
	topic := metaOr(doc, schema.MetaTopicName, "Unknown Topic")
	source := metaOr(doc, schema.MetaSource, "Unknown Source")
	category := metaOr(doc, schema.MetaCategory, "general")

	var header strings.Builder
	fmt.Fprintf(&header, "[Source %d: %s - %s", n, topic, source)
	if url := strings.TrimSpace(doc.Metadata[schema.MetaSourceURL]); url != "" {
		fmt.Fprintf(&header, " | URL: %s", url)
	}
	fmt.Fprintf(&header, " | Category: %s]", category)

	return header.String() + "\n" + body
}

func metaOr(doc schema.Document, key, fallback string) string {
	if v := strings.TrimSpace(doc.Metadata[key]); v != "" {
		return v
	}
	return fallback
}

// extractPrimaryTopic returns the topic named in the first source header.
// Empty when the context has no attributed source or the header pattern does
// not match, such as a hyphenated topic name.
func extractPrimaryTopic(text string) string {
	m := primaryTopicRe.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

func (a *Assembler) countTokens(text string) int {
	if a.encoder == nil || text == "" {
		return 0
	}
	return len(a.encoder.Encode(text, nil, nil))
}
