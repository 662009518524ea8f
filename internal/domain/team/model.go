package team

import (
	"fmt"
	"strings"
	"time"
)

// Team is keyed by (GameID, ID). Imports create teams on first sight with a generated name.
type Team struct {
	GameID    string
	ID        string
	Name      string
	ShortName string
	LogoURL   string
	Region    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (t Team) Validate() error {
	if strings.TrimSpace(t.GameID) == "" {
		return fmt.Errorf("team game id is required")
	}
	if strings.TrimSpace(t.ID) == "" {
		return fmt.Errorf("team id is required")
	}
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("team name is required")
	}
	return nil
}

type Filter struct {
	GameID string
	Search string
	Limit  int
}
