// Package orchestrator sequences one question through the full pipeline:
// script classification, conditional translation, topic-filtered retrieval,
// context assembly and answer generation. The LLM budget per request is
// fixed at two calls worst case (translation for English input, generation
// when context suffices); every failure mode below an embedding failure
// degrades to a user-presentable answer instead of an error.
package orchestrator

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/shahsyedai/rag-agent/assembler"
	"github.com/shahsyedai/rag-agent/common/logger"
	"github.com/shahsyedai/rag-agent/language"
	"github.com/shahsyedai/rag-agent/llm"
	"github.com/shahsyedai/rag-agent/metrics"
	"github.com/shahsyedai/rag-agent/prompts"
	"github.com/shahsyedai/rag-agent/retriever"
	"github.com/shahsyedai/rag-agent/schema"
	"github.com/shahsyedai/rag-agent/translate"
)

// Fixed caller-facing messages. The insufficient-context message varies by
// topic-filter presence only; script mirroring is the generator's concern.
const (
	msgInsufficient      = "Sorry, I couldn't find relevant information in the knowledge base for this specific question."
	msgInsufficientTopic = "Sorry, I couldn't find relevant information in the knowledge base for this specific question in the selected topic."
	msgProcessingError   = "Sorry, an error occurred while processing your question. Please try again."

	warnInsufficient = "Context too short or empty"
)

// Orchestrator runs the question pipeline. All collaborators are injected
// at construction; the Orchestrator holds no connection state of its own
// and is safe for concurrent use.
type Orchestrator struct {
	detector   *language.Detector
	translator *translate.Translator
	retriever  retriever.Retriever
	assembler  *assembler.Assembler
	generator  llm.Provider
	topK       int
}

// New wires an Orchestrator from its stage implementations. topK bounds the
// nearest-neighbour count per retrieval; non-positive falls back to the
// retriever default.
func New(det *language.Detector, tr *translate.Translator, ret retriever.Retriever, asm *assembler.Assembler, gen llm.Provider, topK int) *Orchestrator {
	return &Orchestrator{
		detector:   det,
		translator: tr,
		retriever:  ret,
		assembler:  asm,
		generator:  gen,
		topK:       topK,
	}
}

// Process answers one question. It never returns an error to the caller:
// every internal failure surfaces as a natural-language answer with the
// error flagged in metadata.
func (o *Orchestrator) Process(ctx context.Context, req schema.Request) (resp schema.Response) {
	start := time.Now()
	meta := schema.Metadata{
		QueryID:     uuid.NewString(),
		TopicFilter: req.TopicFolder,
	}

	defer func() {
		if r := recover(); r != nil {
			logger.Errorf("orchestrator: panic processing query %s: %v", meta.QueryID, r)
			metrics.IncError("panic")
			resp = o.errorResponse(meta, start, "internal error")
		}
	}()

	logger.Infof("orchestrator: query %s start, topic=%q len=%d", meta.QueryID, req.TopicFolder, len(req.Question))

	// CLASSIFY
	stageStart := time.Now()
	script := o.detector.Detect(req.Question)
	meta.DetectedScript = script
	metrics.IncScript(string(script))
	metrics.ObserveStage("classify", stageStart)

	// TRANSLATE, only for English input
	stageStart = time.Now()
	translation := o.translator.TranslateForRetrieval(ctx, req.Question, script)
	meta.Translations = translation.RawOutput
	meta.TranslationFallback = translation.Fallback
	metrics.ObserveStage("translate", stageStart)

	// RETRIEVE
	stageStart = time.Now()
	results, err := o.retriever.Search(ctx, translation.RetrievalText, req.TopicFolder, o.topK)
	metrics.ObserveStage("retrieve", stageStart)
	if err != nil {
		// Embedding failures and unusable retrieval text land here; index
		// failures already degraded to an empty result set in the retriever.
		logger.Errorf("orchestrator: query %s retrieval aborted: %v", meta.QueryID, err)
		kind := "internal"
		if schema.IsEmbeddingError(err) {
			kind = "embedding"
		}
		metrics.IncError(kind)
		return o.errorResponse(meta, start, err.Error())
	}

	// CHECK_CONTEXT
	assembled := o.assembler.Assemble(results)
	meta.ContextLength = assembled.CharLength
	meta.ContextTokens = assembled.TokenLength
	meta.SourcesCount = assembled.SourcesCount
	if !o.assembler.Sufficient(assembled) {
		logger.Warnf("orchestrator: query %s insufficient context (%d chars, topic=%q)",
			meta.QueryID, assembled.CharLength, req.TopicFolder)
		metrics.IncInsufficientContext()
		meta.Warning = warnInsufficient
		meta.ProcessingTime = time.Since(start)
		return schema.Response{
			Answer:   insufficientMessage(req.TopicFolder),
			Metadata: meta,
		}
	}

	// GENERATE
	stageStart = time.Now()
	answer, err := o.generate(ctx, req.Question, translation.RetrievalText, assembled.Text)
	metrics.ObserveStage("generate", stageStart)
	if err != nil {
		logger.Errorf("orchestrator: query %s generation failed: %v", meta.QueryID, err)
		metrics.IncError("generation")
		genErr := &schema.GenerationError{Err: err}
		meta.Error = true
		meta.ErrorMessage = genErr.Error()
		meta.ProcessingTime = time.Since(start)
		return schema.Response{
			Answer:    "Sorry, an error occurred while generating the answer: " + err.Error(),
			TopicName: assembled.PrimaryTopic,
			Metadata:  meta,
		}
	}

	meta.ProcessingTime = time.Since(start)
	logger.Infof("orchestrator: query %s done in %s, topic=%q sources=%d",
		meta.QueryID, meta.ProcessingTime, assembled.PrimaryTopic, assembled.SourcesCount)
	return schema.Response{
		Answer:    answer,
		TopicName: assembled.PrimaryTopic,
		Metadata:  meta,
	}
}

// generate renders the dual-question prompt and runs the answer call. Both
// the original question and its retrieval form are supplied so the model
// can mirror the original script while matching Urdu context phrasing.
func (o *Orchestrator) generate(ctx context.Context, original, retrievalText, context_ string) (string, error) {
	prompt, err := prompts.QA.Render(map[string]string{
		"original_question": original,
		"urdu_question":     retrievalText,
		"context":           context_,
	})
	if err != nil {
		return "", err
	}
	metrics.IncLLMCall("generation")
	return o.generator.GenerateCompletion(ctx, prompt)
}

// errorResponse is the terminal error shape for hard failures. The answer
// stays caller-safe; the cause goes into metadata only.
func (o *Orchestrator) errorResponse(meta schema.Metadata, start time.Time, cause string) schema.Response {
	meta.Error = true
	meta.ErrorMessage = cause
	meta.ProcessingTime = time.Since(start)
	return schema.Response{
		Answer:   msgProcessingError,
		Metadata: meta,
	}
}

func insufficientMessage(topicFolder string) string {
	if topicFolder != "" && topicFolder != schema.TopicAll {
		return msgInsufficientTopic
	}
	return msgInsufficient
}
