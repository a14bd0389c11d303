package ai

// Provider identifies the external LLM vendor. Each provider has a distinct
// wire protocol; the codec is selected once from the model id and threaded
// through the request pipeline.
type Provider string

const (
	ProviderOpenAI Provider = "openai"
	ProviderClaude Provider = "claude"
)

// ModelConfig describes one model's capabilities and pricing. The table is
// static: every model id referenced by a request must resolve here or the
// request fails with invalid_model.
type ModelConfig struct {
	Provider      Provider
	ContextWindow int
	MaxOutput     int
	CostPer1KIn   float64
	CostPer1KOut  float64
	SupportsJSON  bool
	SupportsFuncs bool
}

// modelTable holds capability data per model id. Context windows and max
// output are the provider-published limits; costs are USD per 1K tokens.
var modelTable = map[string]ModelConfig{
	"gpt-3.5-turbo": {
		Provider:      ProviderOpenAI,
		ContextWindow: 16385,
		MaxOutput:     4096,
		CostPer1KIn:   0.0005,
		CostPer1KOut:  0.0015,
		SupportsJSON:  true,
		SupportsFuncs: true,
	},
	"gpt-4": {
		Provider:      ProviderOpenAI,
		ContextWindow: 8192,
		MaxOutput:     4096,
		CostPer1KIn:   0.03,
		CostPer1KOut:  0.06,
		SupportsFuncs: true,
	},
	"gpt-4-turbo": {
		Provider:      ProviderOpenAI,
		ContextWindow: 128000,
		MaxOutput:     4096,
		CostPer1KIn:   0.01,
		CostPer1KOut:  0.03,
		SupportsJSON:  true,
		SupportsFuncs: true,
	},
	"gpt-4o": {
		Provider:      ProviderOpenAI,
		ContextWindow: 128000,
		MaxOutput:     16384,
		CostPer1KIn:   0.0025,
		CostPer1KOut:  0.01,
		SupportsJSON:  true,
		SupportsFuncs: true,
	},
	"gpt-4o-mini": {
		Provider:      ProviderOpenAI,
		ContextWindow: 128000,
		MaxOutput:     16384,
		CostPer1KIn:   0.00015,
		CostPer1KOut:  0.0006,
		SupportsJSON:  true,
		SupportsFuncs: true,
	},
	"claude-3-opus-20240229": {
		Provider:      ProviderClaude,
		ContextWindow: 200000,
		MaxOutput:     4096,
		CostPer1KIn:   0.015,
		CostPer1KOut:  0.075,
	},
	"claude-3-sonnet-20240229": {
		Provider:      ProviderClaude,
		ContextWindow: 200000,
		MaxOutput:     4096,
		CostPer1KIn:   0.003,
		CostPer1KOut:  0.015,
	},
	"claude-3-haiku-20240307": {
		Provider:      ProviderClaude,
		ContextWindow: 200000,
		MaxOutput:     4096,
		CostPer1KIn:   0.00025,
		CostPer1KOut:  0.00125,
	},
	"claude-3-5-sonnet-20241022": {
		Provider:      ProviderClaude,
		ContextWindow: 200000,
		MaxOutput:     8192,
		CostPer1KIn:   0.003,
		CostPer1KOut:  0.015,
	},
}

const (
	// defaultTokenBuffer is reserved headroom between prompt and completion.
	defaultTokenBuffer = 500

	// minCompletionTokens is the floor below which a generation is refused
	// before any HTTP call: less than this cannot hold a usable layout.
	minCompletionTokens = 500

	// fallbackMaxTokens is used by CalculateMaxTokens when the model is
	// unknown. GenerateLayout rejects unknown models before reaching this;
	// the fallback only covers direct callers.
	fallbackMaxTokens = 2000
)

// GetModel looks up a model's capability data. The second return is false
// for unknown ids; callers must treat that as a hard invalid_model failure
// unless explicitly documented otherwise.
func GetModel(id string) (ModelConfig, bool) {
	cfg, ok := modelTable[id]
	return cfg, ok
}

// ModelIDs returns every known model id, for the models listing endpoint.
func ModelIDs() []string {
	ids := make([]string, 0, len(modelTable))
	for id := range modelTable {
		ids = append(ids, id)
	}
	return ids
}

// CalculateMaxTokens computes the safe completion budget for a request:
// min(contextWindow - promptTokens - buffer, maxOutput). A buffer of 0
// means the default of 500. Unknown models fall back to a flat 2000.
// The result may be negative; callers compare against minCompletionTokens.
func CalculateMaxTokens(modelID string, promptTokens, buffer int) int {
	if buffer == 0 {
		buffer = defaultTokenBuffer
	}
	cfg, ok := modelTable[modelID]
	if !ok {
		return fallbackMaxTokens
	}
	available := cfg.ContextWindow - promptTokens - buffer
	if available > cfg.MaxOutput {
		return cfg.MaxOutput
	}
	return available
}

// EstimateCost returns the USD cost of a call given token counts.
func EstimateCost(modelID string, inputTokens, outputTokens int) float64 {
	cfg, ok := modelTable[modelID]
	if !ok {
		return 0
	}
	return float64(inputTokens)/1000*cfg.CostPer1KIn +
		float64(outputTokens)/1000*cfg.CostPer1KOut
}
