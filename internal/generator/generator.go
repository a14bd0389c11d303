// Package generator orchestrates layout generation: cache lookup, the LLM
// call, parsing the returned markup into a block tree, allow-list filtering,
// attribute validation and serialization.
package generator

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"layoutberg/internal/ai"
	"layoutberg/internal/blocks"
	"layoutberg/internal/cache"
)

// LayoutClient is the slice of the AI client the generator needs.
type LayoutClient interface {
	GenerateLayout(ctx context.Context, prompt string, opts ai.Options) (*ai.Result, error)
}

// Metadata describes how a response was produced.
type Metadata struct {
	CacheKey    string     `json:"cache_key"`
	Cached      bool       `json:"cached"`
	Prompts     ai.Prompts `json:"prompts"`
	GeneratedAt time.Time  `json:"generated_at"`
}

// Response is the full generation result. Cached verbatim: a hit is
// returned byte-identical with no re-validation.
type Response struct {
	Blocks   []blocks.Block `json:"blocks"`
	HTML     string         `json:"html"`
	Raw      string         `json:"raw"`
	Usage    ai.Usage       `json:"usage"`
	Model    string         `json:"model"`
	Metadata Metadata       `json:"metadata"`
}

// Generator runs the generation pipeline. It performs no retries of its
// own: transient-failure handling lives entirely in the AI client.
type Generator struct {
	client LayoutClient
	cache  *cache.Manager
	allow  *blocks.AllowList
}

// New creates a generator. A nil allow-list means the default core list.
func New(client LayoutClient, cacheManager *cache.Manager, allow *blocks.AllowList) *Generator {
	if allow == nil {
		allow = blocks.DefaultAllowList()
	}
	return &Generator{client: client, cache: cacheManager, allow: allow}
}

// Generate produces a validated block layout for a prompt. Identical
// (prompt, options) pairs hit the cache while the entry is valid and cost
// zero HTTP calls.
func (g *Generator) Generate(ctx context.Context, userPrompt string, opts ai.Options) (*Response, error) {
	key := CacheKey(userPrompt, opts)

	if data, ok := g.cache.Get(ctx, key); ok {
		var cached Response
		if err := json.Unmarshal(data, &cached); err == nil {
			cached.Metadata.Cached = true
			slog.Debug("generation cache hit", "key", key)
			return &cached, nil
		}
		// A corrupt entry is treated as a miss.
		g.cache.Delete(ctx, key)
	}

	result, err := g.client.GenerateLayout(ctx, userPrompt, opts)
	if err != nil {
		// Client errors propagate untouched.
		return nil, err
	}

	raw := stripFences(result.Content)
	if !strings.Contains(raw, "<!-- wp:") {
		// Cheap pre-check before the expensive parse.
		return nil, ai.NewError("invalid_block_markup",
			"The AI response did not contain block markup. Try rephrasing your prompt.")
	}

	tree := blocks.Parse(raw)
	if len(tree) == 0 {
		return nil, ai.NewError("no_blocks_parsed",
			"No blocks could be parsed from the AI response.")
	}

	// Top-level freeform content is discarded before validation. Nested
	// levels only get attribute cleanup; they do not re-raise this error.
	named := tree[:0]
	for _, b := range tree {
		if !b.IsFreeform() {
			named = append(named, b)
		}
	}
	if len(named) == 0 {
		return nil, ai.NewError("no_valid_blocks",
			"The AI response contained no usable blocks.")
	}

	filtered := g.allow.Filter(named)
	if len(filtered) == 0 {
		return nil, ai.NewError("no_valid_blocks",
			"All generated blocks were outside the allowed set.")
	}

	validated := blocks.StripUnknownAttrs(filtered)

	resp := &Response{
		Blocks: validated,
		HTML:   blocks.RenderHTML(validated),
		Raw:    blocks.Serialize(validated),
		Usage:  result.Usage,
		Model:  result.Model,
		Metadata: Metadata{
			CacheKey:    key,
			Prompts:     result.Prompts,
			GeneratedAt: time.Now().UTC(),
		},
	}

	if data, err := json.Marshal(resp); err == nil {
		g.cache.Set(ctx, key, data)
	}

	return resp, nil
}

// CacheKey derives the flat cache key for a prompt and its options: a bare
// MD5 over the prompt plus a deterministic option serialization. No
// namespace or version tag, matching the flat TTL cache design.
func CacheKey(userPrompt string, opts ai.Options) string {
	serialized, _ := json.Marshal(opts)
	sum := md5.Sum([]byte(userPrompt + string(serialized)))
	return hex.EncodeToString(sum[:])
}

// fenceLine matches markdown code fence lines the models sometimes wrap
// output in despite instructions.
var fenceLine = regexp.MustCompile("(?m)^```[a-zA-Z]*[ \t]*$\n?")

// stripFences removes markdown code fences from raw model output.
func stripFences(content string) string {
	return strings.TrimSpace(fenceLine.ReplaceAllString(content, ""))
}
