package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/themizzi/uxverify/internal/models"
)

const defaultHost = "Commander"

// CreateRoomHandler handles POST /lobby/rooms
type CreateRoomHandler struct {
	lobby *LobbyHandler
}

// NewCreateRoomHandler creates a handler that re-renders the lobby dialog on invalid input
func NewCreateRoomHandler(lobby *LobbyHandler) *CreateRoomHandler {
	return &CreateRoomHandler{lobby: lobby}
}

// ServeHTTP validates the form, stores the room and redirects to the lobby
func (h *CreateRoomHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	form := CreateRoomForm{
		Name: r.PostForm.Get("name"),
		Map:  r.PostForm.Get("map"),
	}
	host := strings.TrimSpace(r.PostForm.Get("host"))
	if host == "" {
		host = defaultHost
	}

	maxPlayers, err := strconv.Atoi(r.PostForm.Get("max_players"))
	if err != nil {
		form.MaxPlayers = defaultMaxPlayers
		form.Error = models.ErrInvalidMaxPlayers.Error()
		h.lobby.render(w, http.StatusUnprocessableEntity, true, form)
		return
	}
	form.MaxPlayers = maxPlayers

	room, err := models.NewRoom(form.Name, form.Map, maxPlayers, host)
	if err != nil {
		form.Error = err.Error()
		h.lobby.render(w, http.StatusUnprocessableEntity, true, form)
		return
	}

	if err := h.lobby.rooms.CreateRoom(room); err != nil {
		h.lobby.logger.Error("failed to create room", zap.Error(err))
		http.Error(w, "Failed to create room", http.StatusInternalServerError)
		return
	}

	h.lobby.logger.Info("room created",
		zap.String("id", room.ID),
		zap.String("name", room.Name),
		zap.String("map", room.Map))
	http.Redirect(w, r, "/lobby", http.StatusSeeOther)
}

// RoomsAPIHandler serves the room list as JSON
type RoomsAPIHandler struct {
	rooms  RoomStore
	logger *zap.Logger
}

// NewRoomsAPIHandler creates a new rooms API handler
func NewRoomsAPIHandler(rooms RoomStore, logger *zap.Logger) *RoomsAPIHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RoomsAPIHandler{rooms: rooms, logger: logger}
}

// RoomsResponse is the body of GET /api/rooms
type RoomsResponse struct {
	Rooms []models.Room `json:"rooms"`
	Count int           `json:"count"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// ServeHTTP handles GET /api/rooms
func (h *RoomsAPIHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		sendErrorResponse(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	rooms := h.rooms.ListRooms()
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(RoomsResponse{Rooms: rooms, Count: len(rooms)}); err != nil {
		h.logger.Error("failed to encode rooms", zap.Error(err))
	}
}

// sendErrorResponse sends a JSON error response
func sendErrorResponse(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
	})
}
