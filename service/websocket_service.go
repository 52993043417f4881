package service

import (
	"encoding/base64"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/tieubaoca/thinknotes-be/types"
)

// WebSocketService runs the upload pipeline over a websocket so clients can
// watch the stages (extracting, generating, rendering) before the final
// payload arrives.
type WebSocketService struct {
	study    *StudyService
	upgrader websocket.Upgrader
}

func NewWebSocketService(study *StudyService) *WebSocketService {
	return &WebSocketService{
		study: study,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true // Allow all origins (adjust for production)
			},
		},
	}
}

func (s *WebSocketService) HandleUpload(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("Upgrade error:", err)
		return
	}
	defer conn.Close()

	// Base64 inflates the 10 MiB document cap by 4/3, plus envelope.
	conn.SetReadLimit(16 << 20)
	conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		messageType, p, err := conn.ReadMessage()
		if err != nil {
			return
		}
		var req types.WebsocketRequest
		if err := json.Unmarshal(p, &req); err != nil {
			conn.WriteMessage(messageType, []byte("Error processing message"))
			log.Println("Unmarshal error:", err)
			continue
		}
		payloadBytes, err := json.Marshal(req.Payload)
		if err != nil {
			conn.WriteMessage(messageType, []byte("Error processing message"))
			log.Println("Marshal error:", err)
			continue
		}

		switch req.Type {
		case types.TypeWebsocketUpload:
			var payload types.WebsocketUploadPayload
			if err := json.Unmarshal(payloadBytes, &payload); err != nil {
				s.writeError(conn, "Invalid upload payload")
				continue
			}
			s.handleUploadMessage(conn, r, payload)
		case types.TypeWebsocketPing:
			pongRes := types.WebSocketResponse{
				Type:    types.TypeWebsocketPong,
				Payload: nil,
			}
			if err := conn.WriteJSON(pongRes); err != nil {
				log.Println("Write error:", err)
			}
		default:
			log.Println("Invalid message type:", req.Type)
		}
	}
}

func (s *WebSocketService) handleUploadMessage(conn *websocket.Conn, r *http.Request, payload types.WebsocketUploadPayload) {
	data, err := base64.StdEncoding.DecodeString(payload.DataB64)
	if err != nil {
		s.writeError(conn, "Invalid base64 file data")
		return
	}
	wantPDF := payload.ReturnPDF == nil || *payload.ReturnPDF

	resp, err := s.study.ProcessWithStatus(r.Context(), data, payload.Filename, wantPDF,
		func(stage, message string) {
			conn.WriteJSON(types.WebSocketResponse{
				Type: types.TypeWebsocketProcessing,
				Payload: types.ProcessingStatus{
					Stage:   stage,
					Message: message,
				},
			})
		})
	if err != nil {
		s.writeError(conn, err.Error())
		return
	}

	result := types.WebSocketResponse{
		Type:    types.TypeWebsocketResult,
		Payload: resp,
	}
	if err := conn.WriteJSON(result); err != nil {
		log.Println("Write error:", err)
	}
}

func (s *WebSocketService) writeError(conn *websocket.Conn, message string) {
	res := types.WebSocketResponse{
		Type: types.TypeWebsocketError,
		Payload: types.WebSocketErrorResponse{
			Message: message,
		},
	}
	if err := conn.WriteJSON(res); err != nil {
		log.Println("Write error:", err)
	}
}
