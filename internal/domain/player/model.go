package player

import (
	"fmt"
	"strings"
	"time"
)

// Player is keyed by (GameID, ID); ID is the stats API account id when known.
type Player struct {
	GameID    string
	ID        string
	Name      string
	TeamID    string
	Country   string
	AvatarURL string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (p Player) Validate() error {
	if strings.TrimSpace(p.GameID) == "" {
		return fmt.Errorf("player game id is required")
	}
	if strings.TrimSpace(p.ID) == "" {
		return fmt.Errorf("player id is required")
	}
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("player name is required")
	}
	return nil
}

type Filter struct {
	GameID string
	TeamID string
	Search string
	Limit  int
}
