package browser

import (
	"context"
	"errors"
	"testing"
)

func TestPlaywrightDriver_Open_CancelledContext(t *testing.T) {
	// GIVEN a run that was interrupted before the browser started
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// WHEN
	session, err := NewPlaywrightDriver().Open(ctx, Options{Width: 1280, Height: 720, Headless: true})

	// THEN nothing is downloaded or launched
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if session != nil {
		t.Error("expected no session")
	}
}
