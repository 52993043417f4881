package types

const (
	TypeWebsocketPing       = "ping"
	TypeWebsocketPong       = "pong"
	TypeWebsocketUpload     = "upload"
	TypeWebsocketProcessing = "processing"
	TypeWebsocketResult     = "result"
	TypeWebsocketError      = "error"
)

type WebsocketRequest struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

type WebSocketResponse struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

// WebsocketUploadPayload carries one document through the websocket upload
// flow. ReturnPDF defaults to true when omitted.
type WebsocketUploadPayload struct {
	Filename  string `json:"filename"`
	ReturnPDF *bool  `json:"return_pdf"`
	DataB64   string `json:"data_b64"`
}

type WebSocketErrorResponse struct {
	Message string `json:"message"`
}

// StageHandler receives pipeline stage notifications during processing.
type StageHandler func(stage, message string)
