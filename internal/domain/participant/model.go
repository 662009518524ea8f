package participant

import (
	"fmt"
	"strings"
	"time"
)

type Type string

const (
	TypeTeam   Type = "team"
	TypePlayer Type = "player"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

type PaymentStatus string

const (
	PaymentUnpaid   PaymentStatus = "unpaid"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
)

// Participant is a team or a solo player registered to a tournament.
type Participant struct {
	ID             string
	TournamentID   string
	Type           Type
	LinkedTeamID   string
	LinkedPlayerID string
	Status         Status
	PaymentStatus  PaymentStatus
	SlotNumber     *int
	Notes          string
	CreatedAt      time.Time
}

func (p *Participant) ApplyDefaults() {
	if p.Status == "" {
		p.Status = StatusPending
	}
	if p.PaymentStatus == "" {
		p.PaymentStatus = PaymentUnpaid
	}
}

func (p Participant) Validate() error {
	if strings.TrimSpace(p.ID) == "" {
		return fmt.Errorf("participant id is required")
	}
	if strings.TrimSpace(p.TournamentID) == "" {
		return fmt.Errorf("participant tournament id is required")
	}

	switch p.Type {
	case TypeTeam:
		if p.LinkedTeamID == "" || p.LinkedPlayerID != "" {
			return fmt.Errorf("team participant must link exactly one team")
		}
	case TypePlayer:
		if p.LinkedPlayerID == "" || p.LinkedTeamID != "" {
			return fmt.Errorf("player participant must link exactly one player")
		}
	default:
		return fmt.Errorf("invalid participant type %q", p.Type)
	}

	switch p.Status {
	case StatusPending, StatusApproved, StatusRejected:
	default:
		return fmt.Errorf("invalid participant status %q", p.Status)
	}
	switch p.PaymentStatus {
	case PaymentUnpaid, PaymentPaid, PaymentRefunded:
	default:
		return fmt.Errorf("invalid payment status %q", p.PaymentStatus)
	}
	if p.SlotNumber != nil && *p.SlotNumber <= 0 {
		return fmt.Errorf("slot number must be > 0")
	}

	return nil
}
