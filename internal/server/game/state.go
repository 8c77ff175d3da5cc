package game

import (
	"time"

	"kniazhych/internal/kniazhych"
)

type GameState struct {
	ID        string
	State     *kniazhych.GameState
	CreatedAt time.Time
	UpdatedAt time.Time
}
