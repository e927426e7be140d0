package models

import (
	"errors"
	"sort"
	"strings"

	"github.com/google/uuid"
)

// RoomStatus represents the lobby state of a room
type RoomStatus string

// Room statuses
const (
	RoomStatusWaiting RoomStatus = "waiting"
	RoomStatusPlaying RoomStatus = "playing"
)

// Room limits
const (
	MinRoomNameLength = 3
	MinPlayers        = 2
	MaxPlayers        = 50
)

// Maps lists the maps a room can be created on
var Maps = []string{"World Map", "Europe", "Fractured Lands"}

// Room is a multiplayer room listed in the lobby
type Room struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Map        string     `json:"map"`
	MaxPlayers int        `json:"maxPlayers"`
	Players    []string   `json:"players"`
	Status     RoomStatus `json:"status"`
}

// Domain errors
var (
	ErrRoomNameTooShort  = errors.New("room name must be at least 3 characters")
	ErrUnknownMap        = errors.New("unknown map")
	ErrInvalidMaxPlayers = errors.New("max players must be between 2 and 50")
	ErrEmptyHost         = errors.New("host name cannot be empty")
)

// NewRoom creates a waiting room hosted by host
func NewRoom(name, mapName string, maxPlayers int, host string) (*Room, error) {
	name = strings.TrimSpace(name)
	if len([]rune(name)) < MinRoomNameLength {
		return nil, ErrRoomNameTooShort
	}
	if !knownMap(mapName) {
		return nil, ErrUnknownMap
	}
	if maxPlayers < MinPlayers || maxPlayers > MaxPlayers {
		return nil, ErrInvalidMaxPlayers
	}
	if strings.TrimSpace(host) == "" {
		return nil, ErrEmptyHost
	}

	return &Room{
		ID:         uuid.New().String(),
		Name:       name,
		Map:        mapName,
		MaxPlayers: maxPlayers,
		Players:    []string{host},
		Status:     RoomStatusWaiting,
	}, nil
}

// Joinable returns true if another player can enter the room
func (r *Room) Joinable() bool {
	return r.Status == RoomStatusWaiting && len(r.Players) < r.MaxPlayers
}

// SortRooms orders rooms by player count, fullest first
func SortRooms(rooms []Room) {
	sort.SliceStable(rooms, func(i, j int) bool {
		return len(rooms[i].Players) > len(rooms[j].Players)
	})
}

func knownMap(name string) bool {
	for _, m := range Maps {
		if m == name {
			return true
		}
	}
	return false
}
