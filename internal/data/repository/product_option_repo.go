package repository

import (
	"context"
	"errors"
	"fmt"

	"product-catalog/internal/data/entity"
	"product-catalog/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ProductOptionRepository interface {
	// Create stores the option and its values. It fails with ErrOptionLimitReached when the
	// product already holds entity.MaxOptionsPerProduct options.
	Create(ctx context.Context, option *entity.ProductOption) error
	FindByProductID(ctx context.Context, productID uuid.UUID) ([]*entity.ProductOption, error)
	FindByIDAndProductID(ctx context.Context, id, productID uuid.UUID) (*entity.ProductOption, error)
	CountByProductID(ctx context.Context, productID uuid.UUID) (int, error)
	// Update rewrites the option row and replaces its values with option.Values.
	Update(ctx context.Context, option *entity.ProductOption) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type productOptionRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewProductOptionRepository(db database.PgxIface, log *zap.Logger) ProductOptionRepository {
	return &productOptionRepository{
		db:  db,
		log: log.With(zap.String("repository", "product_option")),
	}
}

func (r *productOptionRepository) Create(ctx context.Context, option *entity.ProductOption) error {
	err := database.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		// the product row lock serialises concurrent creates for the same product
		var locked uuid.UUID
		err := tx.QueryRow(ctx, `SELECT id FROM products WHERE id = $1 FOR UPDATE`, option.ProductID).Scan(&locked)
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("lock product: %w", err)
		}

		var count int
		if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM product_options WHERE product_id = $1`, option.ProductID).Scan(&count); err != nil {
			return fmt.Errorf("count options: %w", err)
		}
		if count >= entity.MaxOptionsPerProduct {
			return ErrOptionLimitReached
		}

		_, err = tx.Exec(ctx, `
			INSERT INTO product_options (id, name, type, additional_price, product_id, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`,
			option.ID,
			option.Name,
			option.Type,
			option.AdditionalPrice,
			option.ProductID,
			option.CreatedAt,
			option.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert option: %w", err)
		}

		return insertOptionValues(ctx, tx, option.Values)
	})

	if errors.Is(err, ErrOptionLimitReached) || errors.Is(err, ErrNotFound) {
		return err
	}
	if err != nil {
		r.log.Error("Failed to create product option",
			zap.Error(err),
			zap.String("product_id", option.ProductID.String()),
		)
		return fmt.Errorf("create option %s: %w", option.Name, err)
	}

	return nil
}

func (r *productOptionRepository) FindByProductID(ctx context.Context, productID uuid.UUID) ([]*entity.ProductOption, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, type, additional_price, product_id, created_at, updated_at
		FROM product_options
		WHERE product_id = $1
		ORDER BY created_at, id
	`, productID)
	if err != nil {
		r.log.Error("Failed to list product options",
			zap.Error(err),
			zap.String("product_id", productID.String()),
		)
		return nil, fmt.Errorf("list options of product %s: %w", productID.String(), err)
	}
	defer rows.Close()

	options := make([]*entity.ProductOption, 0)
	for rows.Next() {
		option, err := scanProductOption(rows)
		if err != nil {
			r.log.Error("Failed to scan product option row", zap.Error(err))
			return nil, fmt.Errorf("scan option row: %w", err)
		}
		options = append(options, option)
	}
	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate option rows: %w", err)
	}

	if err := r.attachValues(ctx, options); err != nil {
		return nil, err
	}

	return options, nil
}

func (r *productOptionRepository) FindByIDAndProductID(ctx context.Context, id, productID uuid.UUID) (*entity.ProductOption, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, name, type, additional_price, product_id, created_at, updated_at
		FROM product_options
		WHERE id = $1 AND product_id = $2
	`, id, productID)

	option, err := scanProductOption(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find product option",
			zap.Error(err),
			zap.String("option_id", id.String()),
			zap.String("product_id", productID.String()),
		)
		return nil, fmt.Errorf("find option %s: %w", id.String(), err)
	}

	if err := r.attachValues(ctx, []*entity.ProductOption{option}); err != nil {
		return nil, err
	}

	return option, nil
}

func (r *productOptionRepository) CountByProductID(ctx context.Context, productID uuid.UUID) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM product_options WHERE product_id = $1`, productID).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count product options",
			zap.Error(err),
			zap.String("product_id", productID.String()),
		)
		return 0, fmt.Errorf("count options of product %s: %w", productID.String(), err)
	}
	return count, nil
}

func (r *productOptionRepository) Update(ctx context.Context, option *entity.ProductOption) error {
	err := database.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		result, err := tx.Exec(ctx, `
			UPDATE product_options
			SET name = $2, type = $3, additional_price = $4, updated_at = $5
			WHERE id = $1
		`,
			option.ID,
			option.Name,
			option.Type,
			option.AdditionalPrice,
			option.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("update option row: %w", err)
		}
		if result.RowsAffected() == 0 {
			return ErrNotFound
		}

		if err := deleteOptionValues(ctx, tx, option.ID); err != nil {
			return err
		}
		return insertOptionValues(ctx, tx, option.Values)
	})

	if errors.Is(err, ErrNotFound) {
		return fmt.Errorf("update option %s: %w", option.ID.String(), err)
	}
	if err != nil {
		r.log.Error("Failed to update product option",
			zap.Error(err),
			zap.String("option_id", option.ID.String()),
		)
		return fmt.Errorf("update option %s: %w", option.ID.String(), err)
	}

	return nil
}

func (r *productOptionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM product_options WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete product option",
			zap.Error(err),
			zap.String("option_id", id.String()),
		)
		return fmt.Errorf("delete option %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("delete option %s: %w", id.String(), ErrNotFound)
	}

	return nil
}

func (r *productOptionRepository) attachValues(ctx context.Context, options []*entity.ProductOption) error {
	ids := make([]uuid.UUID, 0, len(options))
	for _, o := range options {
		if o.Type == entity.OptionTypeSelect {
			ids = append(ids, o.ID)
		}
	}

	grouped, err := findOptionValues(ctx, r.db, ids)
	if err != nil {
		r.log.Error("Failed to load option values", zap.Error(err))
		return err
	}

	for _, o := range options {
		if o.Type == entity.OptionTypeSelect {
			o.Values = grouped[o.ID]
		}
	}
	return nil
}

func scanProductOption(row pgx.Row) (*entity.ProductOption, error) {
	var o entity.ProductOption
	err := row.Scan(
		&o.ID,
		&o.Name,
		&o.Type,
		&o.AdditionalPrice,
		&o.ProductID,
		&o.CreatedAt,
		&o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}
