package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain", "Led a team of five.", "Led a team of five."},
		{"whitespace", "  \n Led a team.\n\n", "Led a team."},
		{"double quotes", `"Led a team."`, "Led a team."},
		{"single quotes", `'Led a team.'`, "Led a team."},
		{"curly quotes", "“Led a team.”", "Led a team."},
		{"corner brackets", "「负责架构设计」", "负责架构设计"},
		{"inner quotes kept", `"Built" the "core" SDK`, `"Built" the "core" SDK`},
		{"two quoted parts kept", `"a" and "b"`, `"a" and "b"`},
		{"code fence", "```\nLed a team.\n```", "Led a team."},
		{"code fence with language", "```text\nLed a team.\n```", "Led a team."},
		{"lone quote", `"`, `"`},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanText(tt.input))
		})
	}
}

func TestChatMessages(t *testing.T) {
	msgs := chatMessages(Prompt{System: "coach", User: "polish"})
	assert.Len(t, msgs, 2)
	assert.Equal(t, "system", msgs[0].Role)
	assert.Equal(t, "user", msgs[1].Role)

	msgs = chatMessages(Prompt{User: "polish"})
	assert.Len(t, msgs, 1)
	assert.Equal(t, "polish", msgs[0].Content)
}
