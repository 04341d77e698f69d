package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"questledger/internal/model"

	"github.com/Masterminds/squirrel"
)

type dailyClaim struct {
	UserAddress   string     `db:"user_address"`
	LastClaimTime *time.Time `db:"last_claim_time"`
	Claimed       bool       `db:"claimed"`
}

// GetDailyClaim returns the claim record for the user. Records are created
// lazily on first claim, so an unknown user yields the never-claimed state
// rather than an error.
func (r *Repository) GetDailyClaim(ctx context.Context, userAddress string) (*model.DailyClaim, error) {
	query, args, err := squirrel.
		Select("user_address", "last_claim_time", "claimed").
		From("user_daily_claims").
		Where(squirrel.Eq{"user_address": userAddress}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	var claim dailyClaim
	err = r.db.GetContext(ctx, &claim, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &model.DailyClaim{UserAddress: userAddress}, nil
		}
		return nil, fmt.Errorf("failed to get daily claim: %w", err)
	}

	return &model.DailyClaim{
		UserAddress:   claim.UserAddress,
		LastClaimTime: claim.LastClaimTime,
		Claimed:       claim.Claimed,
	}, nil
}

// SetDailyClaimed performs the cooldown check and the timestamp update in a
// single statement so two racing claims cannot both pass the check. The loser
// matches zero rows and gets ErrCooldownActive.
func (r *Repository) SetDailyClaimed(ctx context.Context, userAddress string, claimedAt time.Time, cooldown time.Duration) error {
	query, args, err := squirrel.
		Insert("user_daily_claims").
		Columns("user_address", "last_claim_time", "claimed").
		Values(userAddress, claimedAt, true).
		Suffix(`ON CONFLICT (user_address) DO UPDATE
			SET last_claim_time = EXCLUDED.last_claim_time, claimed = TRUE
			WHERE user_daily_claims.last_claim_time <= EXCLUDED.last_claim_time - make_interval(secs => ?)`,
			cooldown.Seconds()).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build claim upsert query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to set daily claim: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrCooldownActive
	}

	return nil
}
