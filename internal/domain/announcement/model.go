package announcement

import (
	"fmt"
	"strings"
	"time"
)

type Type string

const (
	TypeGeneral     Type = "general"
	TypeTournament  Type = "tournament"
	TypeMaintenance Type = "maintenance"
)

type Importance string

const (
	ImportanceLow    Importance = "low"
	ImportanceNormal Importance = "normal"
	ImportanceHigh   Importance = "high"
)

type Announcement struct {
	ID           string
	Title        string
	Body         string
	Type         Type
	Importance   Importance
	TournamentID string
	CreatedAt    time.Time
}

func (a *Announcement) ApplyDefaults() {
	if a.Type == "" {
		a.Type = TypeGeneral
	}
	if a.Importance == "" {
		a.Importance = ImportanceNormal
	}
}

func (a Announcement) Validate() error {
	if strings.TrimSpace(a.ID) == "" {
		return fmt.Errorf("announcement id is required")
	}
	if strings.TrimSpace(a.Title) == "" {
		return fmt.Errorf("announcement title is required")
	}
	if strings.TrimSpace(a.Body) == "" {
		return fmt.Errorf("announcement body is required")
	}
	switch a.Type {
	case TypeGeneral, TypeTournament, TypeMaintenance:
	default:
		return fmt.Errorf("invalid announcement type %q", a.Type)
	}
	switch a.Importance {
	case ImportanceLow, ImportanceNormal, ImportanceHigh:
	default:
		return fmt.Errorf("invalid announcement importance %q", a.Importance)
	}
	if a.Type == TypeTournament && a.TournamentID == "" {
		return fmt.Errorf("tournament announcement requires tournament id")
	}
	return nil
}

type Filter struct {
	Type         Type
	TournamentID string
	Limit        int
}
