package postgres

import (
	"database/sql"
	"time"

	"github.com/birajlamsal/ApexGrid-Tournament-Platform/internal/domain/announcement"
	"github.com/birajlamsal/ApexGrid-Tournament-Platform/internal/domain/participant"
	"github.com/birajlamsal/ApexGrid-Tournament-Platform/internal/domain/winner"
)

type participantTableModel struct {
	ParticipantID  string         `db:"participant_id"`
	TournamentID   string         `db:"tournament_id"`
	Type           string         `db:"type"`
	LinkedTeamID   sql.NullString `db:"linked_team_id"`
	LinkedPlayerID sql.NullString `db:"linked_player_id"`
	Status         string         `db:"status"`
	PaymentStatus  string         `db:"payment_status"`
	SlotNumber     sql.NullInt64  `db:"slot_number"`
	Notes          sql.NullString `db:"notes"`
	CreatedAt      time.Time      `db:"created_at"`
}

type participantWriteModel struct {
	ParticipantID  string        `db:"participant_id"`
	TournamentID   string        `db:"tournament_id"`
	Type           string        `db:"type"`
	LinkedTeamID   *string       `db:"linked_team_id"`
	LinkedPlayerID *string       `db:"linked_player_id"`
	Status         string        `db:"status"`
	PaymentStatus  string        `db:"payment_status"`
	SlotNumber     sql.NullInt64 `db:"slot_number"`
	Notes          *string       `db:"notes"`
}

func (m participantTableModel) toDomain() participant.Participant {
	return participant.Participant{
		ID:             m.ParticipantID,
		TournamentID:   m.TournamentID,
		Type:           participant.Type(m.Type),
		LinkedTeamID:   nullStringValue(m.LinkedTeamID),
		LinkedPlayerID: nullStringValue(m.LinkedPlayerID),
		Status:         participant.Status(m.Status),
		PaymentStatus:  participant.PaymentStatus(m.PaymentStatus),
		SlotNumber:     nullIntPtr(m.SlotNumber),
		Notes:          nullStringValue(m.Notes),
		CreatedAt:      m.CreatedAt,
	}
}

func newParticipantWriteModel(p participant.Participant) participantWriteModel {
	return participantWriteModel{
		ParticipantID:  p.ID,
		TournamentID:   p.TournamentID,
		Type:           string(p.Type),
		LinkedTeamID:   nullableString(p.LinkedTeamID),
		LinkedPlayerID: nullableString(p.LinkedPlayerID),
		Status:         string(p.Status),
		PaymentStatus:  string(p.PaymentStatus),
		SlotNumber:     intPtrToNull(p.SlotNumber),
		Notes:          nullableString(p.Notes),
	}
}

type announcementTableModel struct {
	AnnouncementID string         `db:"announcement_id"`
	Title          string         `db:"title"`
	Body           string         `db:"body"`
	Type           string         `db:"type"`
	Importance     string         `db:"importance"`
	TournamentID   sql.NullString `db:"tournament_id"`
	CreatedAt      time.Time      `db:"created_at"`
}

type announcementWriteModel struct {
	AnnouncementID string  `db:"announcement_id"`
	Title          string  `db:"title"`
	Body           string  `db:"body"`
	Type           string  `db:"type"`
	Importance     string  `db:"importance"`
	TournamentID   *string `db:"tournament_id"`
}

func (m announcementTableModel) toDomain() announcement.Announcement {
	return announcement.Announcement{
		ID:           m.AnnouncementID,
		Title:        m.Title,
		Body:         m.Body,
		Type:         announcement.Type(m.Type),
		Importance:   announcement.Importance(m.Importance),
		TournamentID: nullStringValue(m.TournamentID),
		CreatedAt:    m.CreatedAt,
	}
}

func newAnnouncementWriteModel(a announcement.Announcement) announcementWriteModel {
	return announcementWriteModel{
		AnnouncementID: a.ID,
		Title:          a.Title,
		Body:           a.Body,
		Type:           string(a.Type),
		Importance:     string(a.Importance),
		TournamentID:   nullableString(a.TournamentID),
	}
}

type winnerTableModel struct {
	WinnerID     string    `db:"winner_id"`
	TournamentID string    `db:"tournament_id"`
	Place        int       `db:"place"`
	TeamName     string    `db:"team_name"`
	Points       int       `db:"points"`
	Kills        int       `db:"kills"`
	CreatedAt    time.Time `db:"created_at"`
}

type winnerWriteModel struct {
	WinnerID     string `db:"winner_id"`
	TournamentID string `db:"tournament_id"`
	Place        int    `db:"place"`
	TeamName     string `db:"team_name"`
	Points       int    `db:"points"`
	Kills        int    `db:"kills"`
}

func (m winnerTableModel) toDomain() winner.Winner {
	return winner.Winner{
		ID:           m.WinnerID,
		TournamentID: m.TournamentID,
		Place:        m.Place,
		TeamName:     m.TeamName,
		Points:       m.Points,
		Kills:        m.Kills,
		CreatedAt:    m.CreatedAt,
	}
}

func newWinnerWriteModel(w winner.Winner) winnerWriteModel {
	return winnerWriteModel{
		WinnerID:     w.ID,
		TournamentID: w.TournamentID,
		Place:        w.Place,
		TeamName:     w.TeamName,
		Points:       w.Points,
		Kills:        w.Kills,
	}
}
