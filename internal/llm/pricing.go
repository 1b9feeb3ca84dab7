package llm

// price is USD per million input and output tokens.
type price struct {
	in, out float64
}

// prices covers the default model of each provider plus common siblings.
var prices = map[string]price{
	"claude-haiku-4-5-20251001": {1, 5},
	"claude-haiku-4-5":          {1, 5},
	"claude-sonnet-4-20250514":  {3, 15},
	"gpt-4o":                    {2.5, 10},
	"gpt-4o-mini":               {0.15, 0.6},
	"gpt-4.1-mini":              {0.4, 1.6},
	"gemini-2.0-flash":          {0.1, 0.4},
	"gemini-2.5-flash":          {0.3, 2.5},
	"gemini-2.5-pro":            {1.25, 10},
}

// EstimateCost returns the USD cost of a call, and false for models
// without a known price.
func EstimateCost(model string, inputTokens, outputTokens int) (float64, bool) {
	p, ok := prices[model]
	if !ok {
		return 0, false
	}
	return float64(inputTokens)*p.in/1e6 + float64(outputTokens)*p.out/1e6, true
}
