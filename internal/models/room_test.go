package models

import (
	"testing"
)

func TestNewRoom(t *testing.T) {
	tests := []struct {
		name       string
		roomName   string
		mapName    string
		maxPlayers int
		host       string
		wantErr    error
	}{
		{
			name:       "valid room",
			roomName:   "Valid Room",
			mapName:    "World Map",
			maxPlayers: 10,
			host:       "Tester",
		},
		{
			name:       "name too short",
			roomName:   "a",
			mapName:    "World Map",
			maxPlayers: 10,
			host:       "Tester",
			wantErr:    ErrRoomNameTooShort,
		},
		{
			name:       "name only whitespace",
			roomName:   "     ",
			mapName:    "Europe",
			maxPlayers: 10,
			host:       "Tester",
			wantErr:    ErrRoomNameTooShort,
		},
		{
			name:       "unknown map",
			roomName:   "Valid Room",
			mapName:    "Atlantis",
			maxPlayers: 10,
			host:       "Tester",
			wantErr:    ErrUnknownMap,
		},
		{
			name:       "too few players",
			roomName:   "Valid Room",
			mapName:    "Fractured Lands",
			maxPlayers: 1,
			host:       "Tester",
			wantErr:    ErrInvalidMaxPlayers,
		},
		{
			name:       "too many players",
			roomName:   "Valid Room",
			mapName:    "World Map",
			maxPlayers: 51,
			host:       "Tester",
			wantErr:    ErrInvalidMaxPlayers,
		},
		{
			name:       "empty host",
			roomName:   "Valid Room",
			mapName:    "World Map",
			maxPlayers: 10,
			host:       "",
			wantErr:    ErrEmptyHost,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			room, err := NewRoom(tt.roomName, tt.mapName, tt.maxPlayers, tt.host)

			if tt.wantErr != nil {
				if err != tt.wantErr {
					t.Errorf("NewRoom() error = %v, wantErr %v", err, tt.wantErr)
				}
				if room != nil {
					t.Error("Expected room to be nil when error occurs")
				}
				return
			}

			if err != nil {
				t.Fatalf("NewRoom() unexpected error = %v", err)
			}
			if room.ID == "" {
				t.Error("Room ID should not be empty")
			}
			if room.Status != RoomStatusWaiting {
				t.Errorf("Expected status %s, got %s", RoomStatusWaiting, room.Status)
			}
			if len(room.Players) != 1 || room.Players[0] != tt.host {
				t.Errorf("Expected host as only player, got %v", room.Players)
			}
		})
	}
}

func TestRoom_Joinable(t *testing.T) {
	room, err := NewRoom("Full House", "Europe", 2, "host")
	if err != nil {
		t.Fatal(err)
	}

	if !room.Joinable() {
		t.Error("Room with free seat should be joinable")
	}

	room.Players = append(room.Players, "guest")
	if room.Joinable() {
		t.Error("Full room should not be joinable")
	}

	room.Players = room.Players[:1]
	room.Status = RoomStatusPlaying
	if room.Joinable() {
		t.Error("Playing room should not be joinable")
	}
}

func TestSortRooms(t *testing.T) {
	rooms := []Room{
		{Name: "one", Players: []string{"a"}},
		{Name: "three", Players: []string{"a", "b", "c"}},
		{Name: "two", Players: []string{"a", "b"}},
	}

	SortRooms(rooms)

	want := []string{"three", "two", "one"}
	for i, name := range want {
		if rooms[i].Name != name {
			t.Errorf("position %d: expected %s, got %s", i, name, rooms[i].Name)
		}
	}
}
