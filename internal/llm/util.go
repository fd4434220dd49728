package llm

import "strings"

// CleanText normalizes a free-text model reply: it removes markdown code fences,
// surrounding whitespace and one pair of wrapping quotes.
func CleanText(text string) string {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		// Skip potential language identifier on first line
		if idx := strings.Index(text, "\n"); idx >= 0 {
			firstLine := text[:idx]
			if len(firstLine) < 20 && !strings.Contains(firstLine, " ") {
				text = text[idx+1:]
			}
		}
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		text = strings.TrimSpace(text)
	}

	return strings.TrimSpace(stripQuotes(text))
}

// quotePairs are the opening and closing quotes models wrap replies in
var quotePairs = [][2]string{
	{`"`, `"`},
	{`'`, `'`},
	{"“", "”"},
	{"「", "」"},
	{"『", "』"},
}

func stripQuotes(text string) string {
	for _, q := range quotePairs {
		if len(text) >= len(q[0])+len(q[1]) && strings.HasPrefix(text, q[0]) && strings.HasSuffix(text, q[1]) {
			inner := text[len(q[0]) : len(text)-len(q[1])]
			// leave text alone when the quotes are not a single wrapping pair
			if strings.Contains(inner, q[0]) || strings.Contains(inner, q[1]) {
				return text
			}
			return inner
		}
	}
	return text
}
