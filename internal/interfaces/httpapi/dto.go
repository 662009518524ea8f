package httpapi

import (
	"time"

	"github.com/birajlamsal/ApexGrid-Tournament-Platform/internal/domain/admin"
	"github.com/birajlamsal/ApexGrid-Tournament-Platform/internal/domain/announcement"
	"github.com/birajlamsal/ApexGrid-Tournament-Platform/internal/domain/leaderboard"
	"github.com/birajlamsal/ApexGrid-Tournament-Platform/internal/domain/participant"
	"github.com/birajlamsal/ApexGrid-Tournament-Platform/internal/domain/player"
	"github.com/birajlamsal/ApexGrid-Tournament-Platform/internal/domain/playerstats"
	"github.com/birajlamsal/ApexGrid-Tournament-Platform/internal/domain/team"
	"github.com/birajlamsal/ApexGrid-Tournament-Platform/internal/domain/teamstats"
	"github.com/birajlamsal/ApexGrid-Tournament-Platform/internal/domain/tournament"
	"github.com/birajlamsal/ApexGrid-Tournament-Platform/internal/domain/winner"
	"github.com/birajlamsal/ApexGrid-Tournament-Platform/internal/usecase"
)

type tournamentDTO struct {
	ID                 string     `json:"tournament_id"`
	GameID             string     `json:"game_id"`
	EventType          string     `json:"event_type"`
	Name               string     `json:"name"`
	Description        string     `json:"description,omitempty"`
	BannerURL          string     `json:"banner_url,omitempty"`
	StartDate          *time.Time `json:"start_date,omitempty"`
	EndDate            *time.Time `json:"end_date,omitempty"`
	Status             string     `json:"status"`
	RegistrationStatus string     `json:"registration_status"`
	Mode               string     `json:"mode"`
	MatchType          string     `json:"match_type"`
	Perspective        string     `json:"perspective"`
	Tier               string     `json:"tier,omitempty"`
	PrizePool          float64    `json:"prize_pool"`
	RegistrationCharge float64    `json:"registration_charge"`
	Featured           bool       `json:"featured"`
	MaxSlots           *int       `json:"max_slots,omitempty"`
	Region             string     `json:"region,omitempty"`
	Rules              string     `json:"rules,omitempty"`
	ContactDiscord     string     `json:"contact_discord,omitempty"`
	APIKeyRequired     bool       `json:"api_key_required"`
	APIProvider        string     `json:"api_provider,omitempty"`
	PUBGTournamentID   string     `json:"pubg_tournament_id,omitempty"`
	CustomMatchMode    bool       `json:"custom_match_mode"`
	AllowNonCustom     bool       `json:"allow_non_custom"`
	CustomMatchIDs     []string   `json:"custom_match_ids"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

type tournamentRequest struct {
	ID                 string     `json:"tournament_id" validate:"omitempty,max=100"`
	GameID             string     `json:"game_id" validate:"omitempty,max=50"`
	Name               string     `json:"name" validate:"required,max=200"`
	Description        string     `json:"description"`
	BannerURL          string     `json:"banner_url" validate:"omitempty,url"`
	StartDate          *time.Time `json:"start_date"`
	EndDate            *time.Time `json:"end_date"`
	Status             string     `json:"status" validate:"omitempty,oneof=upcoming ongoing completed"`
	RegistrationStatus string     `json:"registration_status" validate:"omitempty,oneof=open closed"`
	Mode               string     `json:"mode" validate:"omitempty,oneof=solo duo squad"`
	MatchType          string     `json:"match_type"`
	Perspective        string     `json:"perspective" validate:"omitempty,oneof=TPP FPP"`
	Tier               string     `json:"tier"`
	PrizePool          float64    `json:"prize_pool" validate:"gte=0"`
	RegistrationCharge float64    `json:"registration_charge" validate:"gte=0"`
	Featured           bool       `json:"featured"`
	MaxSlots           *int       `json:"max_slots" validate:"omitempty,gt=0"`
	Region             string     `json:"region"`
	Rules              string     `json:"rules"`
	ContactDiscord     string     `json:"contact_discord"`
	APIKeyRequired     bool       `json:"api_key_required"`
	APIProvider        string     `json:"api_provider"`
	PUBGTournamentID   string     `json:"pubg_tournament_id"`
	CustomMatchMode    bool       `json:"custom_match_mode"`
	AllowNonCustom     bool       `json:"allow_non_custom"`
	CustomMatchIDs     []string   `json:"custom_match_ids" validate:"omitempty,dive,max=100"`
}

func (r tournamentRequest) toDomain() tournament.Tournament {
	return tournament.Tournament{
		ID:                 r.ID,
		GameID:             r.GameID,
		Name:               r.Name,
		Description:        r.Description,
		BannerURL:          r.BannerURL,
		StartDate:          r.StartDate,
		EndDate:            r.EndDate,
		Status:             tournament.Status(r.Status),
		RegistrationStatus: tournament.RegistrationStatus(r.RegistrationStatus),
		Mode:               tournament.Mode(r.Mode),
		MatchType:          r.MatchType,
		Perspective:        r.Perspective,
		Tier:               r.Tier,
		PrizePool:          r.PrizePool,
		RegistrationCharge: r.RegistrationCharge,
		Featured:           r.Featured,
		MaxSlots:           r.MaxSlots,
		Region:             r.Region,
		Rules:              r.Rules,
		ContactDiscord:     r.ContactDiscord,
		APIKeyRequired:     r.APIKeyRequired,
		APIProvider:        r.APIProvider,
		PUBGTournamentID:   r.PUBGTournamentID,
		CustomMatchMode:    r.CustomMatchMode,
		AllowNonCustom:     r.AllowNonCustom,
		CustomMatchIDs:     r.CustomMatchIDs,
	}
}

func tournamentToDTO(v tournament.Tournament) tournamentDTO {
	ids := v.CustomMatchIDs
	if ids == nil {
		ids = []string{}
	}
	return tournamentDTO{
		ID:                 v.ID,
		GameID:             v.GameID,
		EventType:          string(v.EventType),
		Name:               v.Name,
		Description:        v.Description,
		BannerURL:          v.BannerURL,
		StartDate:          v.StartDate,
		EndDate:            v.EndDate,
		Status:             string(v.Status),
		RegistrationStatus: string(v.RegistrationStatus),
		Mode:               string(v.Mode),
		MatchType:          v.MatchType,
		Perspective:        v.Perspective,
		Tier:               v.Tier,
		PrizePool:          v.PrizePool,
		RegistrationCharge: v.RegistrationCharge,
		Featured:           v.Featured,
		MaxSlots:           v.MaxSlots,
		Region:             v.Region,
		Rules:              v.Rules,
		ContactDiscord:     v.ContactDiscord,
		APIKeyRequired:     v.APIKeyRequired,
		APIProvider:        v.APIProvider,
		PUBGTournamentID:   v.PUBGTournamentID,
		CustomMatchMode:    v.CustomMatchMode,
		AllowNonCustom:     v.AllowNonCustom,
		CustomMatchIDs:     ids,
		CreatedAt:          v.CreatedAt,
		UpdatedAt:          v.UpdatedAt,
	}
}

func tournamentsToDTO(items []tournament.Tournament) []tournamentDTO {
	out := make([]tournamentDTO, 0, len(items))
	for _, item := range items {
		out = append(out, tournamentToDTO(item))
	}
	return out
}

type teamDTO struct {
	GameID    string    `json:"game_id"`
	TeamID    string    `json:"team_id"`
	TeamName  string    `json:"team_name"`
	ShortName string    `json:"short_name,omitempty"`
	LogoURL   string    `json:"logo_url,omitempty"`
	Region    string    `json:"region,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type teamRequest struct {
	TeamID    string `json:"team_id" validate:"omitempty,max=100"`
	GameID    string `json:"game_id" validate:"omitempty,max=50"`
	TeamName  string `json:"team_name" validate:"required,max=120"`
	ShortName string `json:"short_name" validate:"omitempty,max=16"`
	LogoURL   string `json:"logo_url" validate:"omitempty,url"`
	Region    string `json:"region"`
}

func teamToDTO(v team.Team) teamDTO {
	return teamDTO{
		GameID:    v.GameID,
		TeamID:    v.ID,
		TeamName:  v.Name,
		ShortName: v.ShortName,
		LogoURL:   v.LogoURL,
		Region:    v.Region,
		CreatedAt: v.CreatedAt,
		UpdatedAt: v.UpdatedAt,
	}
}

type playerDTO struct {
	GameID     string    `json:"game_id"`
	PlayerID   string    `json:"player_id"`
	PlayerName string    `json:"player_name"`
	TeamID     string    `json:"team_id,omitempty"`
	Country    string    `json:"country,omitempty"`
	AvatarURL  string    `json:"avatar_url,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type playerRequest struct {
	PlayerID   string `json:"player_id" validate:"omitempty,max=100"`
	GameID     string `json:"game_id" validate:"omitempty,max=50"`
	PlayerName string `json:"player_name" validate:"required,max=120"`
	TeamID     string `json:"team_id"`
	Country    string `json:"country" validate:"omitempty,max=64"`
	AvatarURL  string `json:"avatar_url" validate:"omitempty,url"`
}

func playerToDTO(v player.Player) playerDTO {
	return playerDTO{
		GameID:     v.GameID,
		PlayerID:   v.ID,
		PlayerName: v.Name,
		TeamID:     v.TeamID,
		Country:    v.Country,
		AvatarURL:  v.AvatarURL,
		CreatedAt:  v.CreatedAt,
		UpdatedAt:  v.UpdatedAt,
	}
}

type participantDTO struct {
	ParticipantID  string    `json:"participant_id"`
	TournamentID   string    `json:"tournament_id"`
	Type           string    `json:"type"`
	LinkedTeamID   string    `json:"linked_team_id,omitempty"`
	LinkedPlayerID string    `json:"linked_player_id,omitempty"`
	Status         string    `json:"status"`
	PaymentStatus  string    `json:"payment_status"`
	SlotNumber     *int      `json:"slot_number,omitempty"`
	Notes          string    `json:"notes,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

type participantRequest struct {
	ParticipantID  string `json:"participant_id" validate:"omitempty,max=100"`
	TournamentID   string `json:"tournament_id" validate:"required"`
	Type           string `json:"type" validate:"required,oneof=team player"`
	LinkedTeamID   string `json:"linked_team_id"`
	LinkedPlayerID string `json:"linked_player_id"`
	Status         string `json:"status" validate:"omitempty,oneof=pending approved rejected"`
	PaymentStatus  string `json:"payment_status" validate:"omitempty,oneof=unpaid paid refunded"`
	SlotNumber     *int   `json:"slot_number" validate:"omitempty,gt=0"`
	Notes          string `json:"notes"`
}

func (r participantRequest) toDomain() participant.Participant {
	return participant.Participant{
		ID:             r.ParticipantID,
		TournamentID:   r.TournamentID,
		Type:           participant.Type(r.Type),
		LinkedTeamID:   r.LinkedTeamID,
		LinkedPlayerID: r.LinkedPlayerID,
		Status:         participant.Status(r.Status),
		PaymentStatus:  participant.PaymentStatus(r.PaymentStatus),
		SlotNumber:     r.SlotNumber,
		Notes:          r.Notes,
	}
}

func participantToDTO(v participant.Participant) participantDTO {
	return participantDTO{
		ParticipantID:  v.ID,
		TournamentID:   v.TournamentID,
		Type:           string(v.Type),
		LinkedTeamID:   v.LinkedTeamID,
		LinkedPlayerID: v.LinkedPlayerID,
		Status:         string(v.Status),
		PaymentStatus:  string(v.PaymentStatus),
		SlotNumber:     v.SlotNumber,
		Notes:          v.Notes,
		CreatedAt:      v.CreatedAt,
	}
}

func participantsToDTO(items []participant.Participant) []participantDTO {
	out := make([]participantDTO, 0, len(items))
	for _, item := range items {
		out = append(out, participantToDTO(item))
	}
	return out
}

type announcementDTO struct {
	AnnouncementID string    `json:"announcement_id"`
	Title          string    `json:"title"`
	Body           string    `json:"body"`
	Type           string    `json:"type"`
	Importance     string    `json:"importance"`
	TournamentID   string    `json:"tournament_id,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

type announcementRequest struct {
	AnnouncementID string `json:"announcement_id" validate:"omitempty,max=100"`
	Title          string `json:"title" validate:"required,max=200"`
	Body           string `json:"body" validate:"required"`
	Type           string `json:"type" validate:"omitempty,oneof=general tournament maintenance"`
	Importance     string `json:"importance" validate:"omitempty,oneof=low normal high"`
	TournamentID   string `json:"tournament_id"`
}

func (r announcementRequest) toDomain() announcement.Announcement {
	return announcement.Announcement{
		ID:           r.AnnouncementID,
		Title:        r.Title,
		Body:         r.Body,
		Type:         announcement.Type(r.Type),
		Importance:   announcement.Importance(r.Importance),
		TournamentID: r.TournamentID,
	}
}

func announcementToDTO(v announcement.Announcement) announcementDTO {
	return announcementDTO{
		AnnouncementID: v.ID,
		Title:          v.Title,
		Body:           v.Body,
		Type:           string(v.Type),
		Importance:     string(v.Importance),
		TournamentID:   v.TournamentID,
		CreatedAt:      v.CreatedAt,
	}
}

type winnerDTO struct {
	WinnerID     string    `json:"winner_id"`
	TournamentID string    `json:"tournament_id"`
	Place        int       `json:"place"`
	TeamName     string    `json:"team_name"`
	Points       int       `json:"points"`
	Kills        int       `json:"kills"`
	CreatedAt    time.Time `json:"created_at"`
}

type winnerRequest struct {
	WinnerID     string `json:"winner_id" validate:"omitempty,max=100"`
	TournamentID string `json:"tournament_id" validate:"required"`
	Place        int    `json:"place" validate:"required,gt=0"`
	TeamName     string `json:"team_name" validate:"required,max=120"`
	Points       int    `json:"points" validate:"gte=0"`
	Kills        int    `json:"kills" validate:"gte=0"`
}

func (r winnerRequest) toDomain() winner.Winner {
	return winner.Winner{
		ID:           r.WinnerID,
		TournamentID: r.TournamentID,
		Place:        r.Place,
		TeamName:     r.TeamName,
		Points:       r.Points,
		Kills:        r.Kills,
	}
}

func winnerToDTO(v winner.Winner) winnerDTO {
	return winnerDTO{
		WinnerID:     v.ID,
		TournamentID: v.TournamentID,
		Place:        v.Place,
		TeamName:     v.TeamName,
		Points:       v.Points,
		Kills:        v.Kills,
		CreatedAt:    v.CreatedAt,
	}
}

type playerStatsDTO struct {
	GameID          string  `json:"game_id"`
	PlayerID        string  `json:"player_id"`
	PlayerName      string  `json:"player_name"`
	Matches         int     `json:"matches"`
	Kills           int     `json:"kills"`
	Assists         int     `json:"assists"`
	DamageDealt     float64 `json:"damage_dealt"`
	HeadshotKills   int     `json:"headshot_kills"`
	Wins            int     `json:"wins"`
	AvgTimeSurvived float64 `json:"avg_time_survived"`
	BestRank        *int    `json:"best_rank,omitempty"`
}

func playerStatsToDTO(v playerstats.PlayerStats) playerStatsDTO {
	return playerStatsDTO{
		GameID:          v.GameID,
		PlayerID:        v.PlayerID,
		PlayerName:      v.PlayerName,
		Matches:         v.Matches,
		Kills:           v.Kills,
		Assists:         v.Assists,
		DamageDealt:     v.DamageDealt,
		HeadshotKills:   v.HeadshotKills,
		Wins:            v.Wins,
		AvgTimeSurvived: v.AvgTimeSurvived,
		BestRank:        v.BestRank,
	}
}

type teamStatsDTO struct {
	GameID   string  `json:"game_id"`
	TeamID   string  `json:"team_id"`
	TeamName string  `json:"team_name"`
	Matches  int     `json:"matches"`
	Wins     int     `json:"wins"`
	Kills    int     `json:"kills"`
	AvgRank  float64 `json:"avg_rank"`
}

func teamStatsToDTO(v teamstats.TeamStats) teamStatsDTO {
	return teamStatsDTO{
		GameID:   v.GameID,
		TeamID:   v.TeamID,
		TeamName: v.TeamName,
		Matches:  v.Matches,
		Wins:     v.Wins,
		Kills:    v.Kills,
		AvgRank:  v.AvgRank,
	}
}

type standingDTO struct {
	Position        int    `json:"position"`
	TeamID          string `json:"team_id"`
	TeamName        string `json:"team_name"`
	Matches         int    `json:"matches"`
	Wins            int    `json:"wins"`
	Kills           int    `json:"kills"`
	PlacementPoints int    `json:"placement_points"`
	KillPoints      int    `json:"kill_points"`
	TotalPoints     int    `json:"total_points"`
}

type leaderboardDTO struct {
	TournamentID string        `json:"tournament_id"`
	MatchCount   int           `json:"match_count"`
	Standings    []standingDTO `json:"standings"`
}

func leaderboardToDTO(v leaderboard.Board) leaderboardDTO {
	out := leaderboardDTO{
		TournamentID: v.TournamentID,
		MatchCount:   v.MatchCount,
		Standings:    make([]standingDTO, 0, len(v.Standings)),
	}
	for _, s := range v.Standings {
		out.Standings = append(out.Standings, standingDTO{
			Position:        s.Position,
			TeamID:          s.TeamID,
			TeamName:        s.TeamName,
			Matches:         s.Matches,
			Wins:            s.Wins,
			Kills:           s.Kills,
			PlacementPoints: s.PlacementPoints,
			KillPoints:      s.KillPoints,
			TotalPoints:     s.TotalPoints,
		})
	}
	return out
}

type importFailureDTO struct {
	Source  string `json:"source"`
	MatchID string `json:"match_id,omitempty"`
	Reason  string `json:"reason"`
}

type importReportDTO struct {
	Received       int                `json:"received"`
	Imported       int                `json:"imported"`
	Skipped        int                `json:"skipped"`
	MatchIDs       []string           `json:"match_ids"`
	Failures       []importFailureDTO `json:"failures"`
	DroppedColumns []string           `json:"dropped_columns"`
}

func importReportToDTO(v usecase.ImportReport) importReportDTO {
	out := importReportDTO{
		Received:       v.Received,
		Imported:       v.Imported,
		Skipped:        v.Skipped,
		MatchIDs:       v.MatchIDs,
		Failures:       make([]importFailureDTO, 0, len(v.Failures)),
		DroppedColumns: v.DroppedColumns,
	}
	if out.MatchIDs == nil {
		out.MatchIDs = []string{}
	}
	if out.DroppedColumns == nil {
		out.DroppedColumns = []string{}
	}
	for _, f := range v.Failures {
		out.Failures = append(out.Failures, importFailureDTO{Source: f.Source, MatchID: f.MatchID, Reason: f.Reason})
	}
	return out
}

type importMatchIDsRequest struct {
	GameID       string   `json:"game_id" validate:"omitempty,max=50"`
	Shard        string   `json:"shard" validate:"omitempty,max=32"`
	TournamentID string   `json:"tournament_id"`
	MatchIDs     []string `json:"match_ids" validate:"required,min=1,max=500,dive,required"`
}

type linkMatchesRequest struct {
	MatchIDs []string `json:"match_ids" validate:"required,min=1,max=500,dive,required"`
}

type backfillRequest struct {
	GameID string `json:"game_id" validate:"omitempty,max=50"`
}

type internalJobRequest struct {
	GameID       string `json:"game_id" validate:"omitempty,max=50"`
	Shard        string `json:"shard" validate:"omitempty,max=32"`
	TournamentID string `json:"tournament_id"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type tokenDTO struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}

func tokenToDTO(v admin.Token) tokenDTO {
	return tokenDTO{AccessToken: v.AccessToken, TokenType: "Bearer", ExpiresAt: v.ExpiresAt}
}
