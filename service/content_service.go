package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/tieubaoca/thinknotes-be/types"
)

const studyPrompt = `You are an AI study assistant. Read the provided study text and produce:

1. A clear, concise summary organized by topic headings. Use bullet points where helpful.
2. Exactly 10 flashcards in Question/Answer form.

Respond only in valid minified JSON in the following schema:
{
  "summary": "string (markdown allowed)",
  "flashcards": [
    {"question": "string", "answer": "string"},
    {"question": "string", "answer": "string"},
    {"question": "string", "answer": "string"},
    {"question": "string", "answer": "string"},
    {"question": "string", "answer": "string"},
    {"question": "string", "answer": "string"},
    {"question": "string", "answer": "string"},
    {"question": "string", "answer": "string"},
    {"question": "string", "answer": "string"},
    {"question": "string", "answer": "string"}
  ]
}

Here is the study text:
%s`

// ContentService asks the AI service for a summary and flashcards over the
// extracted document text, then normalizes the loosely-structured response.
type ContentService struct {
	ai AIService
}

func NewContentService(ai AIService) *ContentService {
	return &ContentService{
		ai: ai,
	}
}

// Generate sends the text upstream and parses the answer. A malformed
// response never fails the call: the raw text becomes the summary and the
// flashcards list is left empty. Only a transport/service failure is fatal.
func (s *ContentService) Generate(ctx context.Context, text string) (types.GeneratedContent, error) {
	raw, err := s.ai.GenerateText(ctx, fmt.Sprintf(studyPrompt, text))
	if err != nil {
		return types.GeneratedContent{}, fmt.Errorf("%w: %v", types.ErrGenerationFailed, err)
	}
	return parseGeneratedContent(raw), nil
}

func parseGeneratedContent(raw string) types.GeneratedContent {
	cleaned := stripCodeFence(raw)

	var parsed struct {
		Summary    string `json:"summary"`
		Flashcards []any  `json:"flashcards"`
	}
	if err := json.Unmarshal([]byte(cleaned), &parsed); err != nil {
		log.Println("AI response is not valid JSON, returning raw text:", err)
		return types.GeneratedContent{
			Summary:    raw,
			Flashcards: []any{},
		}
	}

	cards := NormalizeFlashcards(parsed.Flashcards)
	flashcards := make([]any, 0, len(cards))
	for _, card := range cards {
		flashcards = append(flashcards, card)
	}
	if len(cards) == 0 && len(parsed.Flashcards) > 0 {
		// Nothing matched an accepted shape. Returning the original
		// entries beats returning an empty list.
		flashcards = parsed.Flashcards
	}

	return types.GeneratedContent{
		Summary:    strings.TrimSpace(parsed.Summary),
		Flashcards: flashcards,
	}
}

// stripCodeFence removes a ``` or ```json wrapper when the model fences its
// answer instead of returning bare JSON.
func stripCodeFence(raw string) string {
	cleaned := strings.TrimSpace(raw)
	if !strings.HasPrefix(cleaned, "```") {
		return cleaned
	}
	cleaned = strings.Trim(cleaned, "`")
	if len(cleaned) >= 4 && strings.EqualFold(cleaned[:4], "json") {
		cleaned = strings.TrimLeft(cleaned[4:], " \t\r\n")
	}
	return cleaned
}

// NormalizeFlashcards reshapes loosely-typed flashcard entries into Flashcard
// values, discarding anything unusable.
func NormalizeFlashcards(raw []any) []types.Flashcard {
	cards := make([]types.Flashcard, 0, len(raw))
	for _, entry := range raw {
		if card, ok := CoerceFlashcard(entry); ok {
			cards = append(cards, card)
		}
	}
	return cards
}

// CoerceFlashcard accepts the shapes the model is known to produce: an
// object with question/answer keys (kept if either is non-empty), a pair
// (always kept), or a "question: answer" string. Anything else is rejected.
func CoerceFlashcard(entry any) (types.Flashcard, bool) {
	switch v := entry.(type) {
	case types.Flashcard:
		return v, v.Question != "" || v.Answer != ""
	case map[string]any:
		q := strings.TrimSpace(stringValue(v["question"]))
		a := strings.TrimSpace(stringValue(v["answer"]))
		if q == "" && a == "" {
			return types.Flashcard{}, false
		}
		return types.Flashcard{Question: q, Answer: a}, true
	case []any:
		if len(v) < 2 {
			return types.Flashcard{}, false
		}
		return types.Flashcard{
			Question: fmt.Sprint(v[0]),
			Answer:   fmt.Sprint(v[1]),
		}, true
	case string:
		parts := strings.SplitN(v, ":", 2)
		if len(parts) != 2 {
			return types.Flashcard{}, false
		}
		return types.Flashcard{
			Question: strings.TrimSpace(parts[0]),
			Answer:   strings.TrimSpace(parts[1]),
		}, true
	default:
		return types.Flashcard{}, false
	}
}

func stringValue(v any) string {
	s, _ := v.(string)
	return s
}
