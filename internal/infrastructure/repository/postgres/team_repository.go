package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/birajlamsal/ApexGrid-Tournament-Platform/internal/domain/team"
	qb "github.com/birajlamsal/ApexGrid-Tournament-Platform/internal/platform/querybuilder"
)

type TeamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) List(ctx context.Context, filter team.Filter) ([]team.Team, error) {
	conditions := make([]qb.Condition, 0, 2)
	if filter.GameID != "" {
		conditions = append(conditions, qb.Eq("game_id", filter.GameID))
	}
	if filter.Search != "" {
		conditions = append(conditions, qb.ILikeAny(filter.Search, "team_name", "COALESCE(short_name, '')", "team_id"))
	}

	query, args, err := qb.Select("*").From("teams").
		Where(conditions...).
		OrderBy("team_name", "team_id").
		Limit(limitOrDefault(filter.Limit, 200)).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select teams query: %w", err)
	}

	var rows []teamTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select teams: %w", err)
	}

	out := make([]team.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *TeamRepository) GetByID(ctx context.Context, gameID, teamID string) (team.Team, bool, error) {
	query, args, err := qb.Select("*").From("teams").
		Where(qb.Eq("game_id", gameID), qb.Eq("team_id", teamID)).
		ToSQL()
	if err != nil {
		return team.Team{}, false, fmt.Errorf("build get team by id query: %w", err)
	}

	var row teamTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return team.Team{}, false, nil
		}
		return team.Team{}, false, fmt.Errorf("get team by id: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *TeamRepository) Upsert(ctx context.Context, item team.Team) error {
	insert, err := qb.InsertModel("teams", teamWriteModel{
		GameID:    item.GameID,
		TeamID:    item.ID,
		TeamName:  item.Name,
		ShortName: nullableString(item.ShortName),
		LogoURL:   nullableString(item.LogoURL),
		Region:    nullableString(item.Region),
	})
	if err != nil {
		return fmt.Errorf("build upsert team query: %w", err)
	}
	query, args, err := insert.
		OnConflictDoUpdate("game_id", "team_id").
		SetOnConflict("updated_at = NOW()").
		ToSQL()
	if err != nil {
		return fmt.Errorf("build upsert team query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return writeError("upsert team", err)
	}
	return nil
}

func (r *TeamRepository) Delete(ctx context.Context, gameID, teamID string) (bool, error) {
	return deleteByKey(ctx, r.db, "teams", qb.Eq("game_id", gameID), qb.Eq("team_id", teamID))
}
