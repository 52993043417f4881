package types

// Flashcard is a single question/answer study card.
type Flashcard struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// GeneratedContent is the structured output of one AI generation call.
//
// Flashcards normally holds Flashcard values. When normalization discards
// every entry of a non-empty upstream list, the raw decoded entries are kept
// instead so the caller still receives something; downstream consumers must
// shape-sniff each entry (see service.CoerceFlashcard).
type GeneratedContent struct {
	Summary    string `json:"summary"`
	Flashcards []any  `json:"flashcards"`
}
