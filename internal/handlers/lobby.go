package handlers

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/themizzi/uxverify/internal/models"
)

const defaultMaxPlayers = 8

// RoomStore defines the interface for lobby room storage
type RoomStore interface {
	CreateRoom(room *models.Room) error
	ListRooms() []models.Room
}

// CreateRoomForm holds the values of the create-room dialog
type CreateRoomForm struct {
	Name       string
	Map        string
	MaxPlayers int
	Error      string
}

// LobbyData represents the data passed to the lobby template
type LobbyData struct {
	Rooms      []models.Room
	ShowCreate bool
	Contract   Contract
	LabelledBy string
	Form       CreateRoomForm
	Maps       []string
	MinPlayers int
	MaxPlayers int
}

// LobbyHandler renders the room list and the create-room dialog
type LobbyHandler struct {
	template *template.Template
	rooms    RoomStore
	contract Contract
	logger   *zap.Logger
}

// NewLobbyHandler creates a new lobby handler
func NewLobbyHandler(fsys fs.FS, rooms RoomStore, contract Contract, logger *zap.Logger) (*LobbyHandler, error) {
	tmpl, err := template.New("lobby").
		Funcs(template.FuncMap{"upper": strings.ToUpper}).
		ParseFS(fsys, "partials.html", "lobby.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse template: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &LobbyHandler{
		template: tmpl,
		rooms:    rooms,
		contract: contract,
		logger:   logger,
	}, nil
}

// ServeHTTP handles GET /lobby; ?create=1 opens the dialog
func (h *LobbyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	showCreate := r.URL.Query().Get("create") == "1"
	h.render(w, http.StatusOK, showCreate, CreateRoomForm{
		Map:        models.Maps[0],
		MaxPlayers: defaultMaxPlayers,
	})
}

// render buffers the page so a template error never sends a partial body
func (h *LobbyHandler) render(w http.ResponseWriter, status int, showCreate bool, form CreateRoomForm) {
	data := LobbyData{
		Rooms:      h.rooms.ListRooms(),
		ShowCreate: showCreate,
		Contract:   h.contract,
		LabelledBy: h.contract.labelledBy(),
		Form:       form,
		Maps:       models.Maps,
		MinPlayers: models.MinPlayers,
		MaxPlayers: models.MaxPlayers,
	}

	var buf bytes.Buffer
	if err := h.template.ExecuteTemplate(&buf, "lobby.html", data); err != nil {
		h.logger.Error("failed to render lobby", zap.Error(err))
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}
