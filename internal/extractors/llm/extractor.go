// Package llm implements a metadata extractor backed by a language model.
//
// The model's JSON answer is validated against a JSON Schema and merged
// with the vocabulary extractor's output. Any failure (timeout, service
// error, malformed or invalid JSON) falls back to the vocabulary result,
// so extraction never fails.
package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/xeipuuv/gojsonschema"

	"github.com/custodia-labs/sercha-jobs/internal/core/domain"
	"github.com/custodia-labs/sercha-jobs/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-jobs/internal/extractors/vocabulary"
	"github.com/custodia-labs/sercha-jobs/internal/logger"
)

// Name is the registry name of the LLM extractor.
const Name = "llm"

// DefaultTimeout bounds a single model call.
const DefaultTimeout = 30 * time.Second

// Postings are truncated to this many bytes before prompting.
const maxPromptText = 12_000

const (
	minSalary = 20_000
	maxSalary = 1_000_000
)

// Extractor extracts metadata with an LLM and falls back to a baseline extractor.
type Extractor struct {
	llm      driven.LLMService
	fallback driven.MetadataExtractor
	timeout  time.Duration
	schema   *gojsonschema.Schema
	system   string
	template string
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithTimeout sets the per-call model timeout.
func WithTimeout(d time.Duration) Option {
	return func(e *Extractor) {
		if d > 0 {
			e.timeout = d
		}
	}
}

// WithFallback replaces the baseline extractor.
func WithFallback(m driven.MetadataExtractor) Option {
	return func(e *Extractor) {
		if m != nil {
			e.fallback = m
		}
	}
}

// WithPrompts loads the system prompt and request template from store.
// A missing prompt or a template without exactly one %s keeps the built-in one.
func WithPrompts(store driven.PromptStore) Option {
	return func(e *Extractor) {
		if store == nil {
			return
		}
		if system, err := store.Load(driven.PromptExtractSystem); err == nil && strings.TrimSpace(system) != "" {
			e.system = system
		}
		template, err := store.Load(driven.PromptExtractMetadata)
		if err != nil {
			return
		}
		if strings.Count(template, "%s") != 1 || strings.Count(template, "%") != 1 {
			logger.Warn("llm extractor: prompt %q must contain exactly one %%s; using built-in prompt", driven.PromptExtractMetadata)
			return
		}
		e.template = template
	}
}

// DefaultPrompts returns the built-in prompts keyed by prompt name.
func DefaultPrompts() map[string]string {
	return map[string]string{
		driven.PromptExtractSystem:   systemPrompt,
		driven.PromptExtractMetadata: promptTemplate,
	}
}

// New creates an LLM extractor. The LLM service is required.
func New(llm driven.LLMService, opts ...Option) (*Extractor, error) {
	if llm == nil {
		return nil, fmt.Errorf("llm extractor: %w", domain.ErrLLMUnavailable)
	}

	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(outputSchema))
	if err != nil {
		return nil, fmt.Errorf("llm extractor: compile schema: %w", err)
	}

	e := &Extractor{
		llm:      llm,
		fallback: vocabulary.New(),
		timeout:  DefaultTimeout,
		schema:   schema,
		system:   systemPrompt,
		template: promptTemplate,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Name returns the extractor name.
func (e *Extractor) Name() string {
	return Name
}

// Extract returns the merged model and baseline metadata.
func (e *Extractor) Extract(ctx context.Context, text string) domain.ExtractedMetadata {
	base := e.fallback.Extract(ctx, text)
	if strings.TrimSpace(text) == "" {
		return base
	}

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	text = truncate(text, maxPromptText)

	raw, err := e.llm.Generate(ctx, fmt.Sprintf(e.template, text), driven.GenerateOptions{
		System:      e.system,
		MaxTokens:   1024,
		Temperature: 0,
		JSON:        true,
	})
	if err != nil {
		logger.Warn("llm extractor: %s: %v; using %s", e.llm.ModelName(), err, e.fallback.Name())
		return base
	}

	out, err := e.decode(raw)
	if err != nil {
		logger.Warn("llm extractor: %v; using %s", err, e.fallback.Name())
		return base
	}

	return merge(base, out)
}

type output struct {
	Skills     []string `json:"skills"`
	Experience struct {
		Years *int    `json:"years"`
		Level *string `json:"level"`
	} `json:"experience"`
	Salary     domain.SalaryInfo `json:"salary"`
	RemoteWork bool              `json:"remote_work"`
	Locations  []string          `json:"locations"`
	Education  []string          `json:"education"`
	Benefits   []string          `json:"benefits"`
}

func (e *Extractor) decode(raw string) (*output, error) {
	cleaned := cleanJSONBlock(raw)

	result, err := e.schema.Validate(gojsonschema.NewStringLoader(cleaned))
	if err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			msgs = append(msgs, desc.String())
		}
		return nil, fmt.Errorf("response does not match schema: %s", strings.Join(msgs, "; "))
	}

	var out output
	if err := json.Unmarshal([]byte(cleaned), &out); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &out, nil
}

// cleanJSONBlock strips markdown code fences some models add around JSON.
func cleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```")
	if idx := strings.Index(text, "\n"); idx >= 0 && !strings.Contains(text[:idx], "{") {
		text = text[idx+1:]
	}
	if idx := strings.LastIndex(text, "```"); idx >= 0 {
		text = text[:idx]
	}
	return strings.TrimSpace(text)
}

// merge prefers model values where they are plausible and keeps the
// baseline everywhere else. Lists are unions.
func merge(base domain.ExtractedMetadata, out *output) domain.ExtractedMetadata {
	merged := base
	merged.Skills = union(base.Skills, out.Skills)
	merged.Locations = union(base.Locations, out.Locations)
	merged.Education = union(base.Education, out.Education)
	merged.Benefits = union(base.Benefits, out.Benefits)
	merged.RemoteWork = base.RemoteWork || out.RemoteWork

	if merged.Experience.Years == nil && out.Experience.Years != nil {
		merged.Experience.Years = domain.IntPtr(*out.Experience.Years)
	}
	if out.Experience.Level != nil {
		if level := domain.ExperienceLevel(*out.Experience.Level); level.IsValid() {
			merged.Experience.Level = level
		}
	}

	if base.Salary.IsEmpty() && plausibleSalary(out.Salary) {
		merged.Salary = out.Salary
	}
	return merged
}

func plausibleSalary(s domain.SalaryInfo) bool {
	lo, hi, ok := s.Bounds()
	return ok && lo <= hi && lo >= minSalary && hi <= maxSalary
}

func union(a, b []string) []string {
	seen := make(map[string]struct{}, len(a)+len(b))
	out := make([]string, 0, len(a)+len(b))
	for _, list := range [][]string{a, b} {
		for _, v := range list {
			v = strings.ToLower(strings.TrimSpace(v))
			if v == "" {
				continue
			}
			if _, ok := seen[v]; ok {
				continue
			}
			seen[v] = struct{}{}
			out = append(out, v)
		}
	}
	sort.Strings(out)
	return out
}

// truncate cuts text to at most n bytes without splitting a rune.
func truncate(text string, n int) string {
	if len(text) <= n {
		return text
	}
	for n > 0 && !utf8.RuneStart(text[n]) {
		n--
	}
	return text[:n]
}
