package repository

import (
	"context"
	"fmt"

	"product-catalog/internal/data/entity"
	"product-catalog/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// insertOptionValues writes values in one batch, keeping their order in position.
func insertOptionValues(ctx context.Context, tx pgx.Tx, values []*entity.OptionValue) error {
	if len(values) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	query := `INSERT INTO option_values (id, value, position, option_id, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6)`

	for _, v := range values {
		batch.Queue(query, v.ID, v.Value, v.Position, v.OptionID, v.CreatedAt, v.UpdatedAt)
	}

	results := tx.SendBatch(ctx, batch)
	defer results.Close()

	for i := 0; i < len(values); i++ {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("insert option value %d: %w", i, err)
		}
	}

	return nil
}

func deleteOptionValues(ctx context.Context, q database.Querier, optionID uuid.UUID) error {
	if _, err := q.Exec(ctx, `DELETE FROM option_values WHERE option_id = $1`, optionID); err != nil {
		return fmt.Errorf("delete values of option %s: %w", optionID.String(), err)
	}
	return nil
}

// findOptionValues loads the values of every given option, grouped by option id and ordered by position.
func findOptionValues(ctx context.Context, q database.Querier, optionIDs []uuid.UUID) (map[uuid.UUID][]*entity.OptionValue, error) {
	grouped := make(map[uuid.UUID][]*entity.OptionValue, len(optionIDs))
	if len(optionIDs) == 0 {
		return grouped, nil
	}

	rows, err := q.Query(ctx, `
		SELECT id, value, position, option_id, created_at, updated_at
		FROM option_values
		WHERE option_id = ANY($1)
		ORDER BY option_id, position
	`, optionIDs)
	if err != nil {
		return nil, fmt.Errorf("query option values: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var v entity.OptionValue
		if err := rows.Scan(&v.ID, &v.Value, &v.Position, &v.OptionID, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan option value: %w", err)
		}
		grouped[v.OptionID] = append(grouped[v.OptionID], &v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate option values: %w", err)
	}

	return grouped, nil
}
