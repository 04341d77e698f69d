package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"questledger/internal/model"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type quest struct {
	QuestID              int64          `db:"quest_id"`
	Title                string         `db:"title"`
	Description          string         `db:"description"`
	Reward               int64          `db:"reward"`
	Requirements         pq.StringArray `db:"requirements"`
	EstimatedTimeMinutes int            `db:"estimated_time_minutes"`
	IsActive             bool           `db:"is_active"`
	CreatedAt            time.Time      `db:"created_at"`
	EndDate              time.Time      `db:"end_date"`
}

func (q *quest) toModel() *model.Quest {
	return &model.Quest{
		ID:                   q.QuestID,
		Title:                q.Title,
		Description:          q.Description,
		Reward:               q.Reward,
		Requirements:         q.Requirements,
		EstimatedTimeMinutes: q.EstimatedTimeMinutes,
		IsActive:             q.IsActive,
		CreatedAt:            q.CreatedAt,
		EndDate:              q.EndDate,
	}
}

func (r *Repository) CreateQuest(ctx context.Context, q *model.Quest) (int64, error) {
	query, args, err := squirrel.
		Insert("quests").
		SetMap(map[string]interface{}{
			"title":                  q.Title,
			"description":            q.Description,
			"reward":                 q.Reward,
			"requirements":           pq.StringArray(q.Requirements),
			"estimated_time_minutes": q.EstimatedTimeMinutes,
			"is_active":              q.IsActive,
			"created_at":             q.CreatedAt,
			"end_date":               q.EndDate,
		}).
		Suffix("RETURNING quest_id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build quest insert query: %w", err)
	}

	var id int64
	err = r.db.GetContext(ctx, &id, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to insert quest: %w", err)
	}

	return id, nil
}

func (r *Repository) GetQuest(ctx context.Context, questID int64) (*model.Quest, error) {
	query, args, err := squirrel.
		Select("quest_id", "title", "description", "reward", "requirements",
			"estimated_time_minutes", "is_active", "created_at", "end_date").
		From("quests").
		Where(squirrel.Eq{"quest_id": questID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	var q quest
	err = r.db.GetContext(ctx, &q, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get quest: %w", err)
	}

	return q.toModel(), nil
}

func (r *Repository) ListQuests(ctx context.Context) ([]*model.Quest, error) {
	query, args, err := squirrel.
		Select("quest_id", "title", "description", "reward", "requirements",
			"estimated_time_minutes", "is_active", "created_at", "end_date").
		From("quests").
		OrderBy("quest_id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	var dbQuests []*quest
	err = r.db.SelectContext(ctx, &dbQuests, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list quests: %w", err)
	}

	quests := make([]*model.Quest, len(dbQuests))
	for i, q := range dbQuests {
		quests[i] = q.toModel()
	}

	return quests, nil
}

func (r *Repository) SetQuestActive(ctx context.Context, questID int64, active bool) error {
	query, args, err := squirrel.
		Update("quests").
		Set("is_active", active).
		Where(squirrel.Eq{"quest_id": questID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update quest: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}

	return nil
}

// CompleteQuest records a one-way completion for (user, quest). Progress rows
// only exist once completed, so a conflicting insert means a second attempt
// lost the race and AlreadyCompleted is reported instead.
func (r *Repository) CompleteQuest(ctx context.Context, userAddress string, questID int64, completedAt time.Time) error {
	return r.Transaction(ctx, func(tx *sqlx.Tx) error {
		progressQuery, args, err := squirrel.
			Insert("user_quest_progress").
			SetMap(map[string]interface{}{
				"user_address": userAddress,
				"quest_id":     questID,
				"completed":    true,
				"completed_at": completedAt,
			}).
			Suffix("ON CONFLICT (user_address, quest_id) DO NOTHING").
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build progress insert query: %w", err)
		}

		result, err := tx.ExecContext(ctx, progressQuery, args...)
		if err != nil {
			return fmt.Errorf("failed to insert quest progress: %w", err)
		}

		rows, err := result.RowsAffected()
		if err != nil {
			return err
		}
		if rows == 0 {
			return ErrAlreadyCompleted
		}

		statsQuery, statsArgs, err := squirrel.
			Insert("user_stats").
			Columns("user_address", "total_quests_completed").
			Values(userAddress, 1).
			Suffix("ON CONFLICT (user_address) DO UPDATE SET total_quests_completed = user_stats.total_quests_completed + 1").
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build stats upsert query: %w", err)
		}

		if _, err := tx.ExecContext(ctx, statsQuery, statsArgs...); err != nil {
			return fmt.Errorf("failed to update completion counter: %w", err)
		}

		return nil
	})
}

func (r *Repository) GetCompletedQuestIDs(ctx context.Context, userAddress string) ([]int64, error) {
	query, args, err := squirrel.
		Select("quest_id").
		From("user_quest_progress").
		Where(squirrel.Eq{
			"user_address": userAddress,
			"completed":    true,
		}).
		OrderBy("quest_id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	var ids []int64
	err = r.db.SelectContext(ctx, &ids, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get completed quest ids: %w", err)
	}

	return ids, nil
}

func (r *Repository) GetCompletionCount(ctx context.Context, userAddress string) (int, error) {
	query, args, err := squirrel.
		Select("total_quests_completed").
		From("user_stats").
		Where(squirrel.Eq{"user_address": userAddress}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, err
	}

	var count int
	err = r.db.GetContext(ctx, &count, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to get completion count: %w", err)
	}

	return count, nil
}
