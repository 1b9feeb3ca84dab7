package reading

import (
	"fmt"
	"strings"

	"github.com/abhisek/beautylens/internal/persona"
)

const systemPrompt = `You write short, warm personality readings for a quiz about how people perceive beauty. Speak directly to the reader in the second person. Be specific to their answers. Never mention scores, percentages or the quiz mechanics. Plain text only, no markdown.`

func buildUserMessage(in Input) string {
	var b strings.Builder

	if in.Nickname != "" {
		fmt.Fprintf(&b, "Reader: %s\n", in.Nickname)
	}
	fmt.Fprintf(&b, "Dominant lens: %s\n", in.Dominant.Title)
	fmt.Fprintf(&b, "Lens summary: %s\n", in.Dominant.Summary)
	fmt.Fprintf(&b, "How this lens perceives: %s\n", in.Dominant.Perception)
	fmt.Fprintf(&b, "Answered: %d of %d\n", in.Answered, in.Total)

	b.WriteString("\nVotes per lens:\n")
	for _, k := range persona.Keys() {
		fmt.Fprintf(&b, "- %s: %d\n", k, in.Tally.Get(k))
	}

	b.WriteString("\nChosen answers:\n")
	for _, c := range in.Choices {
		fmt.Fprintf(&b, "- [%s] %s\n  Chose: %s\n", c.Theme, c.Prompt, c.Option)
		if c.Analysis != "" {
			fmt.Fprintf(&b, "  Meaning: %s\n", c.Analysis)
		}
	}

	b.WriteString(`
Instructions:
1. Write a headline that captures this reader's way of seeing beauty.
2. Reflect on the pattern in their choices, including any answers that lean toward other lenses.
3. List two or three strengths of their lens.
4. Name one blind spot kindly, as an invitation rather than a criticism.`)

	return b.String()
}
