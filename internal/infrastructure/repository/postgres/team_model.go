package postgres

import (
	"database/sql"
	"time"

	"github.com/birajlamsal/ApexGrid-Tournament-Platform/internal/domain/player"
	"github.com/birajlamsal/ApexGrid-Tournament-Platform/internal/domain/team"
)

type teamTableModel struct {
	GameID    string         `db:"game_id"`
	TeamID    string         `db:"team_id"`
	TeamName  string         `db:"team_name"`
	ShortName sql.NullString `db:"short_name"`
	LogoURL   sql.NullString `db:"logo_url"`
	Region    sql.NullString `db:"region"`
	CreatedAt time.Time      `db:"created_at"`
	UpdatedAt time.Time      `db:"updated_at"`
}

type teamWriteModel struct {
	GameID    string  `db:"game_id"`
	TeamID    string  `db:"team_id"`
	TeamName  string  `db:"team_name"`
	ShortName *string `db:"short_name"`
	LogoURL   *string `db:"logo_url"`
	Region    *string `db:"region"`
}

func (m teamTableModel) toDomain() team.Team {
	return team.Team{
		GameID:    m.GameID,
		ID:        m.TeamID,
		Name:      m.TeamName,
		ShortName: nullStringValue(m.ShortName),
		LogoURL:   nullStringValue(m.LogoURL),
		Region:    nullStringValue(m.Region),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

type playerTableModel struct {
	GameID     string         `db:"game_id"`
	PlayerID   string         `db:"player_id"`
	PlayerName string         `db:"player_name"`
	TeamID     sql.NullString `db:"team_id"`
	Country    sql.NullString `db:"country"`
	AvatarURL  sql.NullString `db:"avatar_url"`
	CreatedAt  time.Time      `db:"created_at"`
	UpdatedAt  time.Time      `db:"updated_at"`
}

type playerWriteModel struct {
	GameID     string  `db:"game_id"`
	PlayerID   string  `db:"player_id"`
	PlayerName string  `db:"player_name"`
	TeamID     *string `db:"team_id"`
	Country    *string `db:"country"`
	AvatarURL  *string `db:"avatar_url"`
}

func (m playerTableModel) toDomain() player.Player {
	return player.Player{
		GameID:    m.GameID,
		ID:        m.PlayerID,
		Name:      m.PlayerName,
		TeamID:    nullStringValue(m.TeamID),
		Country:   nullStringValue(m.Country),
		AvatarURL: nullStringValue(m.AvatarURL),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
