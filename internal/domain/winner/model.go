package winner

import (
	"fmt"
	"strings"
	"time"
)

type Winner struct {
	ID           string
	TournamentID string
	Place        int
	TeamName     string
	Points       int
	Kills        int
	CreatedAt    time.Time
}

func (w Winner) Validate() error {
	if strings.TrimSpace(w.ID) == "" {
		return fmt.Errorf("winner id is required")
	}
	if strings.TrimSpace(w.TournamentID) == "" {
		return fmt.Errorf("winner tournament id is required")
	}
	if w.Place <= 0 {
		return fmt.Errorf("winner place must be > 0")
	}
	if strings.TrimSpace(w.TeamName) == "" {
		return fmt.Errorf("winner team name is required")
	}
	if w.Points < 0 || w.Kills < 0 {
		return fmt.Errorf("winner points and kills must be >= 0")
	}
	return nil
}
