package repository

import (
	"errors"
	"sync"
	"testing"

	"github.com/themizzi/uxverify/internal/models"
)

func TestRoomRepository_CreateAndList(t *testing.T) {
	// GIVEN
	repo := NewRoomRepository()
	small, _ := models.NewRoom("Small", "Europe", 4, "alice")
	big, _ := models.NewRoom("Big", "World Map", 8, "bob")
	big.Players = append(big.Players, "carol", "dave")

	// WHEN
	if err := repo.CreateRoom(small); err != nil {
		t.Fatalf("CreateRoom() error = %v", err)
	}
	if err := repo.CreateRoom(big); err != nil {
		t.Fatalf("CreateRoom() error = %v", err)
	}
	rooms := repo.ListRooms()

	// THEN
	if len(rooms) != 2 {
		t.Fatalf("expected 2 rooms, got %d", len(rooms))
	}
	if rooms[0].Name != "Big" {
		t.Errorf("expected fullest room first, got %s", rooms[0].Name)
	}
}

func TestRoomRepository_CreateRoom_Duplicate(t *testing.T) {
	repo := NewRoomRepository()
	room, _ := models.NewRoom("Alpha", "Europe", 4, "alice")

	if err := repo.CreateRoom(room); err != nil {
		t.Fatalf("CreateRoom() error = %v", err)
	}
	if err := repo.CreateRoom(room); !errors.Is(err, ErrRoomExists) {
		t.Errorf("expected ErrRoomExists, got %v", err)
	}
}

func TestRoomRepository_ListRooms_ReturnsCopies(t *testing.T) {
	repo := NewRoomRepository()
	room, _ := models.NewRoom("Alpha", "Europe", 4, "alice")
	_ = repo.CreateRoom(room)

	// Mutating the caller's room or the listed copy must not leak into the store
	room.Players[0] = "mallory"
	listed := repo.ListRooms()
	listed[0].Players[0] = "eve"

	if got := repo.ListRooms()[0].Players[0]; got != "alice" {
		t.Errorf("stored room was mutated, host = %s", got)
	}
}

func TestRoomRepository_Seed(t *testing.T) {
	tests := []struct {
		name string
		n    int
	}{
		{name: "none", n: 0},
		{name: "one", n: 1},
		{name: "wraps maps", n: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := NewRoomRepository()
			if err := repo.Seed(tt.n); err != nil {
				t.Fatalf("Seed() error = %v", err)
			}
			if got := len(repo.ListRooms()); got != tt.n {
				t.Errorf("expected %d rooms, got %d", tt.n, got)
			}
		})
	}
}

func TestRoomRepository_ConcurrentAccess(t *testing.T) {
	repo := NewRoomRepository()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			room, _ := models.NewRoom("Parallel", "Europe", 4, "host")
			_ = repo.CreateRoom(room)
		}()
		go func() {
			defer wg.Done()
			_ = repo.ListRooms()
		}()
	}
	wg.Wait()

	if got := len(repo.ListRooms()); got != 20 {
		t.Errorf("expected 20 rooms, got %d", got)
	}
}

func TestRoomRepository_ListRooms_KeepsCreationOrderForTies(t *testing.T) {
	// GIVEN six rooms with one player each
	repo := NewRoomRepository()
	if err := repo.Seed(6); err != nil {
		t.Fatalf("Seed() error = %v", err)
	}
	want := []string{"Operation 1", "Operation 2", "Operation 3", "Operation 4", "Operation 5", "Operation 6"}

	// WHEN the list is read repeatedly
	for call := 1; call <= 50; call++ {
		rooms := repo.ListRooms()

		// THEN it always comes back in creation order
		if len(rooms) != len(want) {
			t.Fatalf("expected %d rooms, got %d", len(want), len(rooms))
		}
		for i, name := range want {
			if rooms[i].Name != name {
				t.Fatalf("call %d: position %d is %q, want %q", call, i, rooms[i].Name, name)
			}
		}
	}
}

func TestRoomRepository_ListRooms_FullerRoomJumpsAhead(t *testing.T) {
	repo := NewRoomRepository()
	first, _ := models.NewRoom("First", "Europe", 8, "alice")
	second, _ := models.NewRoom("Second", "Europe", 8, "bob")
	third, _ := models.NewRoom("Third", "Europe", 8, "carol")
	third.Players = append(third.Players, "dave")
	for _, room := range []*models.Room{first, second, third} {
		if err := repo.CreateRoom(room); err != nil {
			t.Fatalf("CreateRoom() error = %v", err)
		}
	}

	rooms := repo.ListRooms()

	got := []string{rooms[0].Name, rooms[1].Name, rooms[2].Name}
	want := []string{"Third", "First", "Second"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("order = %v, want %v", got, want)
			break
		}
	}
}
