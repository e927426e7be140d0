package repository

import (
	"errors"
	"fmt"
	"sync"

	"github.com/themizzi/uxverify/internal/models"
)

// ErrRoomExists is returned when a room id is already taken
var ErrRoomExists = errors.New("room already exists")

// RoomRepository keeps lobby rooms in memory for the fixture server.
// order holds ids in creation order so rooms with equal player counts keep it.
type RoomRepository struct {
	mu    sync.RWMutex
	rooms map[string]models.Room
	order []string
}

// NewRoomRepository creates an empty room repository
func NewRoomRepository() *RoomRepository {
	return &RoomRepository{
		rooms: make(map[string]models.Room),
	}
}

// CreateRoom stores a new room
func (r *RoomRepository) CreateRoom(room *models.Room) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.rooms[room.ID]; ok {
		return fmt.Errorf("%w: %s", ErrRoomExists, room.ID)
	}
	stored := *room
	stored.Players = append([]string(nil), room.Players...)
	r.rooms[room.ID] = stored
	r.order = append(r.order, room.ID)
	return nil
}

// ListRooms returns a copy of every room, fullest first, then oldest first
func (r *RoomRepository) ListRooms() []models.Room {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rooms := make([]models.Room, 0, len(r.order))
	for _, id := range r.order {
		room := r.rooms[id]
		room.Players = append([]string(nil), room.Players...)
		rooms = append(rooms, room)
	}
	models.SortRooms(rooms)
	return rooms
}

// Seed adds n generated rooms so the lobby shows a room list
func (r *RoomRepository) Seed(n int) error {
	for i := 0; i < n; i++ {
		mapName := models.Maps[i%len(models.Maps)]
		room, err := models.NewRoom(fmt.Sprintf("Operation %d", i+1), mapName, 8, fmt.Sprintf("Commander %d", i+1))
		if err != nil {
			return fmt.Errorf("failed to seed room %d: %w", i+1, err)
		}
		if err := r.CreateRoom(room); err != nil {
			return err
		}
	}
	return nil
}
