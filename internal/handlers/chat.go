package handlers

import (
	"encoding/json"
	"net/http"

	logpkg "github.com/MayorChristopher/artificialfarm-sub000/internal/logger"
	"github.com/MayorChristopher/artificialfarm-sub000/internal/middleware"
	"github.com/MayorChristopher/artificialfarm-sub000/internal/models"
	"github.com/MayorChristopher/artificialfarm-sub000/internal/services/chatbot"
	"github.com/MayorChristopher/artificialfarm-sub000/internal/validation"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// ChatHandler handles chatbot requests
type ChatHandler struct {
	engine *chatbot.Engine
	logger *zap.Logger
}

// NewChatHandler creates a new chat handler
func NewChatHandler(engine *chatbot.Engine, logger *zap.Logger) *ChatHandler {
	return &ChatHandler{engine: engine, logger: logger}
}

// RegisterRoutes registers chat routes. The route serves both anonymous and
// authenticated callers; mount it behind optional auth.
func (h *ChatHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/chat", h.PostMessage).Methods("POST")
}

// ChatMessageRequest represents a chat message request
type ChatMessageRequest struct {
	Message string `json:"message" validate:"required,max=2000"`
}

// ChatMessageResponse carries the bot reply and whether the caller was
// recognized.
type ChatMessageResponse struct {
	Response      string `json:"response"`
	Authenticated bool   `json:"authenticated"`
}

// apologyMessage is the only failure text a chat caller ever sees.
const apologyMessage = "I'm sorry, I'm having trouble connecting right now. Please try again in a moment!"

// PostMessage produces a bot response for one user message. The engine
// degrades internally and never returns an error; a catastrophic failure
// surfaces here as a panic and is substituted with the apology message.
func (h *ChatHandler) PostMessage(w http.ResponseWriter, r *http.Request) {
	var req ChatMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Invalid request body")
		return
	}

	req.Message = validation.SanitizeText(req.Message)
	if err := validation.Validate.Struct(&req); err != nil {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "message is required and must be at most 2000 characters")
		return
	}

	user := middleware.UserFromContext(r)
	response := h.getResponse(r, req.Message, user)

	if ce := h.logger.Check(zap.DebugLevel, "chat_exchange"); ce != nil {
		ce.Write(
			zap.String("user_message", logpkg.SanitizeDebugContent(req.Message)),
			zap.String("bot_response", logpkg.SanitizeDebugContent(response)),
			zap.Bool("authenticated", user != nil),
		)
	}

	respondJSON(w, http.StatusOK, ChatMessageResponse{
		Response:      response,
		Authenticated: user != nil,
	})
}

func (h *ChatHandler) getResponse(r *http.Request, message string, user *models.User) (response string) {
	defer func() {
		if rec := recover(); rec != nil {
			h.logger.Error("chat_engine_panic", zap.Any("panic", rec))
			response = apologyMessage
		}
	}()
	return h.engine.GetResponse(r.Context(), message, user)
}
