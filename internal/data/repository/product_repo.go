package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"product-catalog/internal/data/entity"
	"product-catalog/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// ProductSortColumns maps the sort fields accepted from clients to columns.
var ProductSortColumns = map[string]string{
	"id":           "id",
	"name":         "name",
	"price":        "price",
	"shippingFee":  "shipping_fee",
	"registeredAt": "registered_at",
	"createdAt":    "created_at",
	"updatedAt":    "updated_at",
}

type ProductFilter struct {
	NameContains string
	OwnerID      *uuid.UUID
}

type ProductQuery struct {
	Filter    ProductFilter
	SortField string
	Desc      bool
	Limit     int
	Offset    int
}

type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	FindAll(ctx context.Context, q ProductQuery) ([]*entity.Product, error)
	Count(ctx context.Context, filter ProductFilter) (int64, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type productRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewProductRepository(db database.PgxIface, log *zap.Logger) ProductRepository {
	return &productRepository{
		db:  db,
		log: log.With(zap.String("repository", "product")),
	}
}

const productColumns = `id, name, description, price, shipping_fee, registered_at, user_id, created_at, updated_at`

func (r *productRepository) Create(ctx context.Context, product *entity.Product) error {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.Exec(ctx, query,
		product.ID,
		product.Name,
		product.Description,
		product.Price,
		product.ShippingFee,
		product.RegisteredAt,
		product.UserID,
		product.CreatedAt,
		product.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create product",
			zap.Error(err),
			zap.String("user_id", product.UserID.String()),
		)
		return fmt.Errorf("create product %s: %w", product.Name, err)
	}

	return nil
}

func (r *productRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	product, err := scanProduct(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find product by ID",
			zap.Error(err),
			zap.String("product_id", id.String()),
		)
		return nil, fmt.Errorf("find product by ID %s: %w", id.String(), err)
	}

	return product, nil
}

func (r *productRepository) FindAll(ctx context.Context, q ProductQuery) ([]*entity.Product, error) {
	column, ok := ProductSortColumns[q.SortField]
	if !ok {
		column = "id"
	}
	direction := "ASC"
	if q.Desc {
		direction = "DESC"
	}

	where, args := buildProductWhere(q.Filter)
	args = append(args, q.Limit, q.Offset)

	// id breaks ties so pages never overlap
	query := fmt.Sprintf(`SELECT %s FROM products %s ORDER BY %s %s, id ASC LIMIT $%d OFFSET $%d`,
		productColumns, where, column, direction, len(args)-1, len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to list products",
			zap.Error(err),
			zap.Int("limit", q.Limit),
			zap.Int("offset", q.Offset),
		)
		return nil, fmt.Errorf("list products limit %d offset %d: %w", q.Limit, q.Offset, err)
	}
	defer rows.Close()

	products := make([]*entity.Product, 0)
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			r.log.Error("Failed to scan product row", zap.Error(err))
			return nil, fmt.Errorf("scan product row: %w", err)
		}
		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate product rows: %w", err)
	}

	return products, nil
}

func (r *productRepository) Count(ctx context.Context, filter ProductFilter) (int64, error) {
	where, args := buildProductWhere(filter)

	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM products `+where, args...).Scan(&count); err != nil {
		r.log.Error("Failed to count products", zap.Error(err))
		return 0, fmt.Errorf("count products: %w", err)
	}

	return count, nil
}

func (r *productRepository) Update(ctx context.Context, product *entity.Product) error {
	query := `
		UPDATE products
		SET name = $2, description = $3, price = $4, shipping_fee = $5, updated_at = $6
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		product.ID,
		product.Name,
		product.Description,
		product.Price,
		product.ShippingFee,
		product.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to update product",
			zap.Error(err),
			zap.String("product_id", product.ID.String()),
		)
		return fmt.Errorf("update product %s: %w", product.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("update product %s: %w", product.ID.String(), ErrNotFound)
	}

	return nil
}

// Delete removes the product; options and their values go with it through ON DELETE CASCADE.
func (r *productRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete product",
			zap.Error(err),
			zap.String("product_id", id.String()),
		)
		return fmt.Errorf("delete product %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("delete product %s: %w", id.String(), ErrNotFound)
	}

	r.log.Info("Product deleted", zap.String("product_id", id.String()))
	return nil
}

func buildProductWhere(filter ProductFilter) (string, []any) {
	var conds []string
	var args []any

	if filter.NameContains != "" {
		args = append(args, escapeLike(strings.ToLower(filter.NameContains)))
		conds = append(conds, fmt.Sprintf(`LOWER(name) LIKE '%%' || $%d || '%%' ESCAPE '\'`, len(args)))
	}
	if filter.OwnerID != nil {
		args = append(args, *filter.OwnerID)
		conds = append(conds, fmt.Sprintf(`user_id = $%d`, len(args)))
	}

	if len(conds) == 0 {
		return "", args
	}
	return "WHERE " + strings.Join(conds, " AND "), args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.Price,
		&p.ShippingFee,
		&p.RegisteredAt,
		&p.UserID,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
