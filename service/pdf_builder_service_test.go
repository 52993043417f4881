package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tieubaoca/thinknotes-be/types"
)

func TestEscapePreserveBold(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "hello", "hello"},
		{"bold span", "a **b** c", "a <b>b</b> c"},
		{"markup inside bold", "**a<b>c**", "<b>a&lt;b&gt;c</b>"},
		{"ampersand", "fish & chips", "fish &amp; chips"},
		{"unmatched marker", "half **bold", "half **bold"},
		{"two spans", "**x** and **y**", "<b>x</b> and <b>y</b>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, escapePreserveBold(tt.in))
		})
	}
}

func TestSpansFromMarkup(t *testing.T) {
	spans := spansFromMarkup("a <b>b &amp; c</b> d")
	require.Len(t, spans, 3)
	assert.Equal(t, span{text: "a ", bold: false}, spans[0])
	assert.Equal(t, span{text: "b & c", bold: true}, spans[1])
	assert.Equal(t, span{text: " d", bold: false}, spans[2])

	// Dangling open tag stays literal text.
	spans = spansFromMarkup("before <b>never closed")
	require.Len(t, spans, 1)
	assert.False(t, spans[0].bold)
	assert.Equal(t, "before <b>never closed", spans[0].text)
}

func TestBuildProducesPDF(t *testing.T) {
	summary := "### Key Topics\n" +
		"An opening paragraph that spans\ntwo source lines.\n" +
		"\n" +
		"* first bullet with **bold** text\n" +
		"- second bullet\n" +
		"\n" +
		"Closing paragraph."
	flashcards := []any{
		types.Flashcard{Question: "What is tested?", Answer: "The renderer"},
		map[string]any{"question": "Q2", "answer": "A2"},
	}

	builder := NewPDFBuilderService()
	data, err := builder.Build(summary, flashcards)
	require.NoError(t, err)
	assert.True(t, len(data) > 500)
	assert.Equal(t, "%PDF-", string(data[:5]))
}

func TestBuildSurvivesGarbageFlashcards(t *testing.T) {
	builder := NewPDFBuilderService()
	data, err := builder.Build("summary", []any{42, nil, "no separator", []any{"only one"}})
	require.NoError(t, err)
	assert.Equal(t, "%PDF-", string(data[:5]))
}

func TestBuildEmptyContent(t *testing.T) {
	builder := NewPDFBuilderService()
	data, err := builder.Build("", nil)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-", string(data[:5]))
}
