package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tieubaoca/thinknotes-be/types"
)

type fakeAI struct {
	response string
	err      error
	prompt   string
}

func (f *fakeAI) GenerateText(ctx context.Context, prompt string) (string, error) {
	f.prompt = prompt
	return f.response, f.err
}

func TestGenerateStripsCodeFence(t *testing.T) {
	ai := &fakeAI{response: "```json\n{\"summary\":\"S\",\"flashcards\":[{\"question\":\"Q\",\"answer\":\"A\"}]}\n```"}
	svc := NewContentService(ai)

	content, err := svc.Generate(context.Background(), "some document text")
	require.NoError(t, err)
	assert.Equal(t, "S", content.Summary)
	require.Len(t, content.Flashcards, 1)
	assert.Equal(t, types.Flashcard{Question: "Q", Answer: "A"}, content.Flashcards[0])
	assert.Contains(t, ai.prompt, "some document text")
}

func TestGenerateNonJSONFallsBackToRawText(t *testing.T) {
	ai := &fakeAI{response: "not json at all"}
	svc := NewContentService(ai)

	content, err := svc.Generate(context.Background(), "text")
	require.NoError(t, err)
	assert.Equal(t, "not json at all", content.Summary)
	assert.Empty(t, content.Flashcards)
}

func TestGenerateAIErrorIsGenerationFailure(t *testing.T) {
	ai := &fakeAI{err: errors.New("upstream quota exceeded")}
	svc := NewContentService(ai)

	_, err := svc.Generate(context.Background(), "text")
	assert.ErrorIs(t, err, types.ErrGenerationFailed)
}

func TestGenerateNormalizesMixedFlashcards(t *testing.T) {
	ai := &fakeAI{response: `{
		"summary": "  padded  ",
		"flashcards": [
			{"question": "Q1", "answer": "A1"},
			["Q2", "A2"],
			"Q3: A3",
			"no separator here",
			{"question": "  ", "answer": ""},
			42
		]
	}`}
	svc := NewContentService(ai)

	content, err := svc.Generate(context.Background(), "text")
	require.NoError(t, err)
	assert.Equal(t, "padded", content.Summary)
	require.Len(t, content.Flashcards, 3)
	assert.Equal(t, types.Flashcard{Question: "Q1", Answer: "A1"}, content.Flashcards[0])
	assert.Equal(t, types.Flashcard{Question: "Q2", Answer: "A2"}, content.Flashcards[1])
	assert.Equal(t, types.Flashcard{Question: "Q3", Answer: "A3"}, content.Flashcards[2])
}

func TestGenerateKeepsOriginalEntriesWhenNothingNormalizes(t *testing.T) {
	ai := &fakeAI{response: `{"summary":"S","flashcards":[42, true]}`}
	svc := NewContentService(ai)

	content, err := svc.Generate(context.Background(), "text")
	require.NoError(t, err)
	require.Len(t, content.Flashcards, 2)
	assert.Equal(t, float64(42), content.Flashcards[0])
	assert.Equal(t, true, content.Flashcards[1])
}

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"bare json", `{"a":1}`, `{"a":1}`},
		{"fenced", "```\n{\"a\":1}\n```", "{\"a\":1}"},
		{"fenced json tag", "```json\n{\"a\":1}\n```", "{\"a\":1}"},
		{"fenced JSON uppercase", "```JSON\n{\"a\":1}\n```", "{\"a\":1}"},
		{"surrounding whitespace", "  \n```json\n{}\n```  ", "{}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := stripCodeFence(tt.in)
			assert.JSONEq(t, tt.want, got)
		})
	}
}

func TestCoerceFlashcardShapes(t *testing.T) {
	card, ok := CoerceFlashcard(map[string]any{"question": " Q ", "answer": " A "})
	require.True(t, ok)
	assert.Equal(t, types.Flashcard{Question: "Q", Answer: "A"}, card)

	card, ok = CoerceFlashcard(map[string]any{"question": "Q only"})
	require.True(t, ok)
	assert.Equal(t, "Q only", card.Question)

	_, ok = CoerceFlashcard(map[string]any{"question": "", "answer": "  "})
	assert.False(t, ok)

	card, ok = CoerceFlashcard([]any{"Q", "A", "extra ignored"})
	require.True(t, ok)
	assert.Equal(t, types.Flashcard{Question: "Q", Answer: "A"}, card)

	_, ok = CoerceFlashcard([]any{"lonely"})
	assert.False(t, ok)

	card, ok = CoerceFlashcard("What is Go: a language")
	require.True(t, ok)
	assert.Equal(t, types.Flashcard{Question: "What is Go", Answer: "a language"}, card)

	_, ok = CoerceFlashcard("no colon anywhere")
	assert.False(t, ok)

	_, ok = CoerceFlashcard(3.14)
	assert.False(t, ok)
}
