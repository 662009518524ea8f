package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/birajlamsal/ApexGrid-Tournament-Platform/internal/domain/participant"
	qb "github.com/birajlamsal/ApexGrid-Tournament-Platform/internal/platform/querybuilder"
)

type ParticipantRepository struct {
	db *sqlx.DB
}

func NewParticipantRepository(db *sqlx.DB) *ParticipantRepository {
	return &ParticipantRepository{db: db}
}

func (r *ParticipantRepository) ListByTournament(ctx context.Context, tournamentID string) ([]participant.Participant, error) {
	query, args, err := qb.Select("*").From("participants").
		Where(qb.Eq("tournament_id", tournamentID)).
		OrderBy("slot_number ASC NULLS LAST", "created_at ASC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select participants query: %w", err)
	}

	var rows []participantTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select participants: %w", err)
	}

	out := make([]participant.Participant, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *ParticipantRepository) GetByID(ctx context.Context, id string) (participant.Participant, bool, error) {
	query, args, err := qb.Select("*").From("participants").Where(qb.Eq("participant_id", id)).ToSQL()
	if err != nil {
		return participant.Participant{}, false, fmt.Errorf("build get participant query: %w", err)
	}

	var row participantTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return participant.Participant{}, false, nil
		}
		return participant.Participant{}, false, fmt.Errorf("get participant: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *ParticipantRepository) Create(ctx context.Context, item participant.Participant) error {
	return insertRow(ctx, r.db, "participants", newParticipantWriteModel(item))
}

func (r *ParticipantRepository) Update(ctx context.Context, item participant.Participant) (bool, error) {
	return updateRow(ctx, r.db, "participants", "participant_id", newParticipantWriteModel(item))
}

func (r *ParticipantRepository) Delete(ctx context.Context, id string) (bool, error) {
	return deleteByKey(ctx, r.db, "participants", qb.Eq("participant_id", id))
}
