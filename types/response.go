package types

type DataResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// StudyMaterialResponse is the upload endpoint's success body. PdfB64 is
// null when rendering was skipped or failed; PdfError explains a failure
// without voiding the generated text content.
type StudyMaterialResponse struct {
	Summary    string  `json:"summary"`
	Flashcards []any   `json:"flashcards"`
	PdfB64     *string `json:"pdf_b64"`
	PdfError   string  `json:"pdf_error,omitempty"`
}

// ProcessingStatus is streamed over the websocket upload endpoint as the
// pipeline moves between stages.
type ProcessingStatus struct {
	Stage   string `json:"stage"`
	Message string `json:"message"`
}
