package cli

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/themizzi/uxverify/internal/config"
	"github.com/themizzi/uxverify/internal/handlers"
	"github.com/themizzi/uxverify/internal/repository"
	"github.com/themizzi/uxverify/templates"
)

// BuildFixtureDependencies creates the lobby fixture handlers over an in-memory room store
func BuildFixtureDependencies(cfg config.ServerConfig, contract handlers.Contract, logger *zap.Logger) (FixtureDependencies, error) {
	deps := FixtureDependencies{
		ServerConfig: cfg,
		Logger:       logger,
	}

	rooms := repository.NewRoomRepository()
	if err := rooms.Seed(cfg.SeedRooms); err != nil {
		return deps, err
	}

	homeHandler, err := handlers.NewHomeHandler(templates.FS, logger)
	if err != nil {
		return deps, fmt.Errorf("failed to create home handler: %w", err)
	}
	deps.HomeHandler = homeHandler

	lobbyHandler, err := handlers.NewLobbyHandler(templates.FS, rooms, contract, logger)
	if err != nil {
		return deps, fmt.Errorf("failed to create lobby handler: %w", err)
	}
	deps.LobbyHandler = lobbyHandler
	deps.CreateRoomHandler = handlers.NewCreateRoomHandler(lobbyHandler)
	deps.RoomsAPIHandler = handlers.NewRoomsAPIHandler(rooms, logger)

	return deps, nil
}
