package tutor

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/Vovarama1992/tutor-ai-bridge/internal/logger"
)

// StudentIDHeader carries the authenticated student id, set by the platform gateway.
const StudentIDHeader = "X-Student-Id"

const defaultMaxBody = 1 << 20

type Handler struct {
	svc     Service
	maxBody int64
	log     *logger.Logger
}

func NewHandler(svc Service, maxBody int64, log *logger.Logger) *Handler {
	if maxBody <= 0 {
		maxBody = defaultMaxBody
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &Handler{svc: svc, maxBody: maxBody, log: log}
}

type chatPayload struct {
	Message             string `json:"message"`
	ConversationHistory []Turn `json:"conversationHistory"`
}

type chatResponse struct {
	Response    string   `json:"response"`
	RequestType Category `json:"requestType,omitempty"`
}

// HandleChat: вход от фронта. Всегда 200, даже если всё сломалось.
func (h *Handler) HandleChat(w http.ResponseWriter, r *http.Request) {
	defer func() {
		if rec := recover(); rec != nil {
			h.log.Error("chat handler panic", "panic", rec)
			writeJSON(w, chatResponse{Response: DefaultReply})
		}
	}()

	var payload chatPayload
	body := http.MaxBytesReader(w, r.Body, h.maxBody)
	if err := json.NewDecoder(body).Decode(&payload); err != nil {
		h.log.Warn("invalid chat payload", "error", err)
		writeJSON(w, chatResponse{Response: DefaultReply})
		return
	}

	reply := h.svc.Reply(r.Context(), ChatRequest{
		StudentID: strings.TrimSpace(r.Header.Get(StudentIDHeader)),
		Message:   payload.Message,
		History:   payload.ConversationHistory,
	})

	writeJSON(w, chatResponse{Response: reply.Text, RequestType: reply.Category})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}
