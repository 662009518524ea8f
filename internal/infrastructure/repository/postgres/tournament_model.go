package postgres

import (
	"database/sql"
	"time"

	"github.com/lib/pq"

	"github.com/birajlamsal/ApexGrid-Tournament-Platform/internal/domain/tournament"
)

var tournamentColumns = []string{
	"tournament_id", "game_id", "event_type", "name", "description", "banner_url", "start_date", "end_date",
	"status", "registration_status", "mode", "match_type", "perspective", "tier", "prize_pool",
	"registration_charge", "featured", "max_slots", "region", "rules", "contact_discord", "api_key_required",
	"api_provider", "pubg_tournament_id", "custom_match_mode", "allow_non_custom", "custom_match_ids",
	"created_at", "updated_at",
}

type tournamentTableModel struct {
	TournamentID       string         `db:"tournament_id"`
	GameID             string         `db:"game_id"`
	EventType          string         `db:"event_type"`
	Name               string         `db:"name"`
	Description        sql.NullString `db:"description"`
	BannerURL          sql.NullString `db:"banner_url"`
	StartDate          sql.NullTime   `db:"start_date"`
	EndDate            sql.NullTime   `db:"end_date"`
	Status             string         `db:"status"`
	RegistrationStatus string         `db:"registration_status"`
	Mode               string         `db:"mode"`
	MatchType          string         `db:"match_type"`
	Perspective        string         `db:"perspective"`
	Tier               sql.NullString `db:"tier"`
	PrizePool          float64        `db:"prize_pool"`
	RegistrationCharge float64        `db:"registration_charge"`
	Featured           bool           `db:"featured"`
	MaxSlots           sql.NullInt64  `db:"max_slots"`
	Region             sql.NullString `db:"region"`
	Rules              sql.NullString `db:"rules"`
	ContactDiscord     sql.NullString `db:"contact_discord"`
	APIKeyRequired     bool           `db:"api_key_required"`
	APIProvider        sql.NullString `db:"api_provider"`
	PUBGTournamentID   sql.NullString `db:"pubg_tournament_id"`
	CustomMatchMode    bool           `db:"custom_match_mode"`
	AllowNonCustom     bool           `db:"allow_non_custom"`
	CustomMatchIDs     pq.StringArray `db:"custom_match_ids"`
	CreatedAt          time.Time      `db:"created_at"`
	UpdatedAt          time.Time      `db:"updated_at"`
}

type tournamentWriteModel struct {
	TournamentID       string         `db:"tournament_id"`
	GameID             string         `db:"game_id"`
	EventType          string         `db:"event_type"`
	Name               string         `db:"name"`
	Description        *string        `db:"description"`
	BannerURL          *string        `db:"banner_url"`
	StartDate          sql.NullTime   `db:"start_date"`
	EndDate            sql.NullTime   `db:"end_date"`
	Status             string         `db:"status"`
	RegistrationStatus string         `db:"registration_status"`
	Mode               string         `db:"mode"`
	MatchType          string         `db:"match_type"`
	Perspective        string         `db:"perspective"`
	Tier               *string        `db:"tier"`
	PrizePool          float64        `db:"prize_pool"`
	RegistrationCharge float64        `db:"registration_charge"`
	Featured           bool           `db:"featured"`
	MaxSlots           sql.NullInt64  `db:"max_slots"`
	Region             *string        `db:"region"`
	Rules              *string        `db:"rules"`
	ContactDiscord     *string        `db:"contact_discord"`
	APIKeyRequired     bool           `db:"api_key_required"`
	APIProvider        *string        `db:"api_provider"`
	PUBGTournamentID   *string        `db:"pubg_tournament_id"`
	CustomMatchMode    bool           `db:"custom_match_mode"`
	AllowNonCustom     bool           `db:"allow_non_custom"`
	CustomMatchIDs     pq.StringArray `db:"custom_match_ids"`
}

func (m tournamentTableModel) toDomain() tournament.Tournament {
	return tournament.Tournament{
		ID:                 m.TournamentID,
		GameID:             m.GameID,
		EventType:          tournament.EventType(m.EventType),
		Name:               m.Name,
		Description:        nullStringValue(m.Description),
		BannerURL:          nullStringValue(m.BannerURL),
		StartDate:          nullTimePtr(m.StartDate),
		EndDate:            nullTimePtr(m.EndDate),
		Status:             tournament.Status(m.Status),
		RegistrationStatus: tournament.RegistrationStatus(m.RegistrationStatus),
		Mode:               tournament.Mode(m.Mode),
		MatchType:          m.MatchType,
		Perspective:        m.Perspective,
		Tier:               nullStringValue(m.Tier),
		PrizePool:          m.PrizePool,
		RegistrationCharge: m.RegistrationCharge,
		Featured:           m.Featured,
		MaxSlots:           nullIntPtr(m.MaxSlots),
		Region:             nullStringValue(m.Region),
		Rules:              nullStringValue(m.Rules),
		ContactDiscord:     nullStringValue(m.ContactDiscord),
		APIKeyRequired:     m.APIKeyRequired,
		APIProvider:        nullStringValue(m.APIProvider),
		PUBGTournamentID:   nullStringValue(m.PUBGTournamentID),
		CustomMatchMode:    m.CustomMatchMode,
		AllowNonCustom:     m.AllowNonCustom,
		CustomMatchIDs:     []string(m.CustomMatchIDs),
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
}

func newTournamentWriteModel(t tournament.Tournament) tournamentWriteModel {
	ids := t.CustomMatchIDs
	if ids == nil {
		ids = []string{}
	}
	return tournamentWriteModel{
		TournamentID:       t.ID,
		GameID:             t.GameID,
		EventType:          string(t.EventType),
		Name:               t.Name,
		Description:        nullableString(t.Description),
		BannerURL:          nullableString(t.BannerURL),
		StartDate:          timePtrToNull(t.StartDate),
		EndDate:            timePtrToNull(t.EndDate),
		Status:             string(t.Status),
		RegistrationStatus: string(t.RegistrationStatus),
		Mode:               string(t.Mode),
		MatchType:          t.MatchType,
		Perspective:        t.Perspective,
		Tier:               nullableString(t.Tier),
		PrizePool:          t.PrizePool,
		RegistrationCharge: t.RegistrationCharge,
		Featured:           t.Featured,
		MaxSlots:           intPtrToNull(t.MaxSlots),
		Region:             nullableString(t.Region),
		Rules:              nullableString(t.Rules),
		ContactDiscord:     nullableString(t.ContactDiscord),
		APIKeyRequired:     t.APIKeyRequired,
		APIProvider:        nullableString(t.APIProvider),
		PUBGTournamentID:   nullableString(t.PUBGTournamentID),
		CustomMatchMode:    t.CustomMatchMode,
		AllowNonCustom:     t.AllowNonCustom,
		CustomMatchIDs:     pq.StringArray(ids),
	}
}
