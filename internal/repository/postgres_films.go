package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/cinetick/cinetick/internal/domain"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresFilmRepository struct {
	db *pgxpool.Pool
}

func NewPostgresFilmRepository(db *pgxpool.Pool) *PostgresFilmRepository {
	return &PostgresFilmRepository{
		db: db,
	}
}

func (p *PostgresFilmRepository) GetAll(ctx context.Context, filters domain.FilmFilters) ([]*domain.Film, *domain.Metadata, error) {
	query := fmt.Sprintf(`SELECT count(*) OVER(), id, title, rating, director, tags, about, description, image, cover
		FROM films
		WHERE ((to_tsvector('english', title) @@ plainto_tsquery('english', $1)
			OR to_tsvector('english', description) @@ plainto_tsquery('english', $1))
			OR $1 = '')
		ORDER BY %s %s
		LIMIT $2 OFFSET $3`, filters.SortColumn(), filters.SortDirection())

	rows, err := p.db.Query(ctx, query, filters.Term, filters.Limit(), filters.Offset())
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	totalRecords := 0
	films := []*domain.Film{}

	for rows.Next() {
		var film domain.Film

		err := rows.Scan(
			&totalRecords,
			&film.ID,
			&film.Title,
			&film.Rating,
			&film.Director,
			&film.Tags,
			&film.About,
			&film.Description,
			&film.Image,
			&film.Cover,
		)

		if err != nil {
			return nil, nil, err
		}

		films = append(films, &film)
	}

	if err = rows.Err(); err != nil {
		return nil, nil, err
	}

	err = p.attachSchedules(ctx, films)
	if err != nil {
		return nil, nil, err
	}

	metadata := domain.NewMetadata(totalRecords, filters.Page, filters.PageSize)

	return films, metadata, nil
}

func (p *PostgresFilmRepository) GetById(ctx context.Context, id string) (*domain.Film, error) {
	query := `
		SELECT id, title, rating, director, tags, about, description, image, cover
		FROM films
		WHERE id = $1
	`

	var film domain.Film

	err := p.db.QueryRow(ctx, query, id).Scan(
		&film.ID,
		&film.Title,
		&film.Rating,
		&film.Director,
		&film.Tags,
		&film.About,
		&film.Description,
		&film.Image,
		&film.Cover,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrFilmNotFound
		}

		return nil, err
	}

	err = p.attachSchedules(ctx, []*domain.Film{&film})
	if err != nil {
		return nil, err
	}

	return &film, nil
}

func (p *PostgresFilmRepository) attachSchedules(ctx context.Context, films []*domain.Film) error {
	if len(films) == 0 {
		return nil
	}

	filmIds := make([]string, len(films))
	byId := make(map[string]*domain.Film, len(films))

	for i, film := range films {
		filmIds[i] = film.ID
		byId[film.ID] = film
	}

	query := `
		SELECT id, film_id, daytime, hall, row_count, seat_count, price, taken
		FROM screenings
		WHERE film_id = ANY($1)
		ORDER BY daytime
	`

	rows, err := p.db.Query(ctx, query, filmIds)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		screening, err := scanScreening(rows)
		if err != nil {
			return err
		}

		film := byId[screening.FilmID]
		film.Schedule = append(film.Schedule, *screening)
	}

	return rows.Err()
}

func (p *PostgresFilmRepository) Create(ctx context.Context, film *domain.Film) error {
	return runInTx(ctx, p.db, func(tx pgx.Tx) error {
		query := `
			INSERT INTO films (id, title, rating, director, tags, about, description, image, cover)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`

		_, err := tx.Exec(
			ctx,
			query,
			film.ID,
			film.Title,
			film.Rating,
			film.Director,
			film.Tags,
			film.About,
			film.Description,
			film.Image,
			film.Cover,
		)

		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
				return domain.ErrFilmAlreadyExists
			}

			return err
		}

		query = `
			INSERT INTO screenings (id, film_id, daytime, hall, row_count, seat_count, price, taken)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`

		for _, screening := range film.Schedule {
			_, err := tx.Exec(
				ctx,
				query,
				screening.ID,
				film.ID,
				screening.Daytime,
				screening.Hall,
				screening.Rows,
				screening.Seats,
				screening.Price,
				domain.SeatKeyStrings(screening.Taken),
			)
			if err != nil {
				return err
			}
		}

		return nil
	})
}

func (p *PostgresFilmRepository) GetScreening(ctx context.Context, key domain.ScreeningKey) (*domain.Screening, error) {
	query := `
		SELECT id, film_id, daytime, hall, row_count, seat_count, price, taken
		FROM screenings
		WHERE film_id = $1 AND id = $2
	`

	row := p.db.QueryRow(ctx, query, key.FilmID, key.ScreeningID)

	screening, err := scanScreening(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrScreeningNotFound
		}

		return nil, err
	}

	return screening, nil
}

// TryReserve appends the seat keys to the screening's taken set with a single
// conditional UPDATE: the append only happens when none of the keys is
// already present, so the check-and-insert is atomic in the database and the
// batch commits all-or-nothing.
func (p *PostgresFilmRepository) TryReserve(ctx context.Context, key domain.ScreeningKey, seats []domain.SeatKey) error {
	seatKeys := domain.SeatKeyStrings(seats)

	query := `
		UPDATE screenings
		SET taken = taken || $3
		WHERE film_id = $1 AND id = $2 AND NOT (taken && $3)
	`

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		tag, err := p.db.Exec(ctx, query, key.FilmID, key.ScreeningID, seatKeys)
		if err != nil {
			return err
		}

		if tag.RowsAffected() == 1 {
			return nil
		}

		// No row matched: the screening is missing or some keys collided.
		screening, err := p.GetScreening(ctx, key)
		if err != nil {
			return err
		}

		var conflicts []domain.SeatKey
		for _, seat := range seats {
			if screening.IsTaken(seat) {
				conflicts = append(conflicts, seat)
			}
		}

		if len(conflicts) > 0 {
			return &domain.ReservationConflictError{Screening: key, Seats: conflicts}
		}

		// The colliding seats were released between the update and the
		// read, so the conflict no longer exists. Try again.
	}
}

func (p *PostgresFilmRepository) Release(ctx context.Context, key domain.ScreeningKey, seats []domain.SeatKey) error {
	query := `
		UPDATE screenings
		SET taken = (
			SELECT coalesce(array_agg(t), '{}')
			FROM unnest(taken) AS t
			WHERE NOT (t = ANY($3))
		)
		WHERE film_id = $1 AND id = $2
	`

	tag, err := p.db.Exec(ctx, query, key.FilmID, key.ScreeningID, domain.SeatKeyStrings(seats))
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrScreeningNotFound
	}

	return nil
}

func scanScreening(row pgx.Row) (*domain.Screening, error) {
	var screening domain.Screening
	var taken []string

	err := row.Scan(
		&screening.ID,
		&screening.FilmID,
		&screening.Daytime,
		&screening.Hall,
		&screening.Rows,
		&screening.Seats,
		&screening.Price,
		&taken,
	)
	if err != nil {
		return nil, err
	}

	screening.Taken = make([]domain.SeatKey, 0, len(taken))

	for _, s := range taken {
		seat, err := domain.ParseSeatKey(s)
		if err != nil {
			return nil, fmt.Errorf("corrupt taken set on screening %s: %w", screening.ID, err)
		}

		screening.Taken = append(screening.Taken, seat)
	}

	return &screening, nil
}
