package repository

import (
	"context"
	"errors"

	"github.com/cinetick/cinetick/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresOrderRepository struct {
	db *pgxpool.Pool
}

func NewPostgresOrderRepository(db *pgxpool.Pool) *PostgresOrderRepository {
	return &PostgresOrderRepository{
		db: db,
	}
}

func (p *PostgresOrderRepository) Create(ctx context.Context, order *domain.Order) error {
	return runInTx(ctx, p.db, func(tx pgx.Tx) error {
		query := `
			INSERT INTO orders (id, email, phone, created_at, total)
			VALUES ($1, $2, $3, $4, $5)
		`

		_, err := tx.Exec(ctx, query, order.ID, order.Email, order.Phone, order.CreatedAt, order.Total)
		if err != nil {
			return err
		}

		rows := make([][]any, 0, len(order.Lines))
		for _, line := range order.Lines {
			rows = append(rows, []any{
				order.ID,
				line.FilmID,
				line.ScreeningID,
				line.Daytime,
				line.Row,
				line.Seat,
				line.Price,
			})
		}

		_, err = tx.CopyFrom(
			ctx,
			pgx.Identifier{"order_lines"},
			[]string{"order_id", "film_id", "screening_id", "daytime", "seat_row", "seat_num", "price"},
			pgx.CopyFromRows(rows),
		)
		if err != nil {
			return err
		}

		return nil
	})
}

func (p *PostgresOrderRepository) GetByIds(ctx context.Context, ids []string) ([]*domain.Order, error) {
	if len(ids) == 0 {
		return []*domain.Order{}, nil
	}

	query := `
		SELECT
			o.id, o.email, o.phone, o.created_at, o.total,
			l.film_id, l.screening_id, l.daytime, l.seat_row, l.seat_num, l.price
		FROM orders o
		JOIN order_lines l ON l.order_id = o.id
		WHERE o.id = ANY($1)
		ORDER BY o.created_at DESC, o.id, l.seat_row, l.seat_num
	`

	rows, err := p.db.Query(ctx, query, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]*domain.Order, 0, len(ids))
	byId := make(map[string]*domain.Order, len(ids))

	for rows.Next() {
		var order domain.Order
		var line domain.OrderLine

		err := rows.Scan(
			&order.ID,
			&order.Email,
			&order.Phone,
			&order.CreatedAt,
			&order.Total,
			&line.FilmID,
			&line.ScreeningID,
			&line.Daytime,
			&line.Row,
			&line.Seat,
			&line.Price,
		)
		if err != nil {
			return nil, err
		}

		existing, ok := byId[order.ID]
		if !ok {
			existing = &order
			byId[order.ID] = existing
			orders = append(orders, existing)
		}

		existing.Lines = append(existing.Lines, line)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}

func runInTx(ctx context.Context, db *pgxpool.Pool, fn func(tx pgx.Tx) error) error {
	var txOptions pgx.TxOptions

	tx, err := db.BeginTx(ctx, txOptions)
	if err != nil {
		return err
	}

	err = fn(tx)
	if err == nil {
		return tx.Commit(ctx)
	}

	rollbackErr := tx.Rollback(ctx)
	if rollbackErr != nil {
		return errors.Join(err, rollbackErr)
	}

	return err
}
