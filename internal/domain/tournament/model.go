package tournament

import (
	"fmt"
	"strings"
	"time"
)

type EventType string

const (
	EventTournament EventType = "tournament"
	EventScrim      EventType = "scrim"
)

type Status string

const (
	StatusUpcoming  Status = "upcoming"
	StatusOngoing   Status = "ongoing"
	StatusCompleted Status = "completed"
)

type RegistrationStatus string

const (
	RegistrationOpen   RegistrationStatus = "open"
	RegistrationClosed RegistrationStatus = "closed"
)

type Mode string

const (
	ModeSolo  Mode = "solo"
	ModeDuo   Mode = "duo"
	ModeSquad Mode = "squad"
)

// Tournament is either a tournament or a scrim, told apart by EventType.
type Tournament struct {
	ID                 string
	GameID             string
	EventType          EventType
	Name               string
	Description        string
	BannerURL          string
	StartDate          *time.Time
	EndDate            *time.Time
	Status             Status
	RegistrationStatus RegistrationStatus
	Mode               Mode
	MatchType          string
	Perspective        string
	Tier               string
	PrizePool          float64
	RegistrationCharge float64
	Featured           bool
	MaxSlots           *int
	Region             string
	Rules              string
	ContactDiscord     string
	APIKeyRequired     bool
	APIProvider        string
	PUBGTournamentID   string
	CustomMatchMode    bool
	AllowNonCustom     bool
	CustomMatchIDs     []string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func (t *Tournament) ApplyDefaults() {
	if t.GameID == "" {
		t.GameID = "pubg"
	}
	if t.EventType == "" {
		t.EventType = EventTournament
	}
	if t.Status == "" {
		t.Status = StatusUpcoming
	}
	if t.RegistrationStatus == "" {
		t.RegistrationStatus = RegistrationClosed
	}
	if t.Mode == "" {
		t.Mode = ModeSquad
	}
	if t.MatchType == "" {
		t.MatchType = "classic"
	}
	if t.Perspective == "" {
		t.Perspective = "TPP"
	}
	t.CustomMatchIDs = CleanMatchIDs(t.CustomMatchIDs)
}

func (t Tournament) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return fmt.Errorf("tournament id is required")
	}
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("tournament name is required")
	}
	switch t.EventType {
	case EventTournament, EventScrim:
	default:
		return fmt.Errorf("invalid event type %q", t.EventType)
	}
	switch t.Status {
	case StatusUpcoming, StatusOngoing, StatusCompleted:
	default:
		return fmt.Errorf("invalid status %q", t.Status)
	}
	switch t.RegistrationStatus {
	case RegistrationOpen, RegistrationClosed:
	default:
		return fmt.Errorf("invalid registration status %q", t.RegistrationStatus)
	}
	switch t.Mode {
	case ModeSolo, ModeDuo, ModeSquad:
	default:
		return fmt.Errorf("invalid mode %q", t.Mode)
	}
	if t.Perspective != "TPP" && t.Perspective != "FPP" {
		return fmt.Errorf("invalid perspective %q", t.Perspective)
	}
	if t.PrizePool < 0 || t.RegistrationCharge < 0 {
		return fmt.Errorf("prize pool and registration charge must be >= 0")
	}
	if t.MaxSlots != nil && *t.MaxSlots <= 0 {
		return fmt.Errorf("max slots must be > 0")
	}
	if t.StartDate != nil && t.EndDate != nil && t.EndDate.Before(*t.StartDate) {
		return fmt.Errorf("end date must not be before start date")
	}

	return nil
}

// CleanMatchIDs trims ids, drops blanks and duplicates, keeping first-seen order.
func CleanMatchIDs(ids []string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
