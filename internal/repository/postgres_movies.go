package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/movie-catalog/internal/domain"
)

const movieNameDateConstraint = "movies_name_date_key"

type PostgresMovieRepository struct {
	db *pgxpool.Pool
}

func NewPostgresMovieRepository(db *pgxpool.Pool) *PostgresMovieRepository {
	return &PostgresMovieRepository{
		db: db,
	}
}

func (p *PostgresMovieRepository) Create(ctx context.Context, input domain.NewMovie) (*domain.Movie, error) {
	var movie *domain.Movie

	err := runInTx(ctx, p.db, pgx.TxOptions{}, func(tx pgx.Tx) error {
		resolver := NewEntityResolver(tx)

		country, err := resolver.ResolveCountry(ctx, input.CountryCode)
		if err != nil {
			return err
		}

		genres, err := resolver.resolveRelation(ctx, domain.GenreKind, input.GenreNames, input.GenreIDs)
		if err != nil {
			return err
		}

		actors, err := resolver.resolveRelation(ctx, domain.ActorKind, input.ActorNames, input.ActorIDs)
		if err != nil {
			return err
		}

		languages, err := resolver.resolveRelation(ctx, domain.LanguageKind, input.LanguageNames, input.LanguageIDs)
		if err != nil {
			return err
		}

		query := `
			INSERT INTO movies (name, date, score, overview, status, budget, revenue, country_id)
			VALUES ($1, $2, $3, $4, $5::movie_status, $6, $7, $8)
			RETURNING id
		`

		var id int

		err = tx.QueryRow(
			ctx,
			query,
			input.Name,
			input.Date,
			input.Score,
			input.Overview,
			string(input.Status),
			input.Budget,
			input.Revenue,
			country.ID).Scan(&id)

		if err != nil {
			if isUniqueViolation(err, movieNameDateConstraint) {
				return domain.ErrMovieAlreadyExists
			}

			return err
		}

		links := map[domain.EntityKind][]domain.NamedEntity{
			domain.GenreKind:    genres,
			domain.ActorKind:    actors,
			domain.LanguageKind: languages,
		}

		for kind, entities := range links {
			err = linkEntities(ctx, tx, id, kind, entities)
			if err != nil {
				return err
			}
		}

		movie, err = getMovie(ctx, tx, id, true)
		return err
	})
	if err != nil {
		return nil, err
	}

	return movie, nil
}

// GetAll returns one page ordered by id together with the number of all movies.
func (p *PostgresMovieRepository) GetAll(ctx context.Context, pagination domain.Pagination) ([]*domain.Movie, int, error) {
	totalRecords := 0
	movies := []*domain.Movie{}

	err := runInTx(ctx, p.db, readOnlyTx, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `SELECT count(*) FROM movies`).Scan(&totalRecords)
		if err != nil {
			return err
		}

		query := `
			SELECT id, name, date, score
			FROM movies
			ORDER BY id ASC
			LIMIT $1 OFFSET $2
		`

		rows, err := tx.Query(ctx, query, pagination.Limit(), pagination.Offset())
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var movie domain.Movie

			err := rows.Scan(
				&movie.ID,
				&movie.Name,
				&movie.Date,
				&movie.Score,
			)
			if err != nil {
				return err
			}

			movies = append(movies, &movie)
		}

		return rows.Err()
	})
	if err != nil {
		return nil, 0, err
	}

	return movies, totalRecords, nil
}

// GetById loads the movie with its country and genres. Actors and languages
// are left empty.
func (p *PostgresMovieRepository) GetById(ctx context.Context, id int) (*domain.Movie, error) {
	if !domain.ValidID(id) {
		return nil, domain.ErrRecordNotFound
	}

	var movie *domain.Movie

	err := runInTx(ctx, p.db, readOnlyTx, func(tx pgx.Tx) error {
		var err error
		movie, err = getMovie(ctx, tx, id, false)
		return err
	})
	if err != nil {
		return nil, err
	}

	return movie, nil
}

func (p *PostgresMovieRepository) Update(ctx context.Context, id int, patch domain.MoviePatch) (*domain.Movie, error) {
	if !domain.ValidID(id) {
		return nil, domain.ErrRecordNotFound
	}

	var movie *domain.Movie

	err := runInTx(ctx, p.db, pgx.TxOptions{}, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `SELECT id FROM movies WHERE id = $1 FOR UPDATE`, id).Scan(&id)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domain.ErrRecordNotFound
			}

			return err
		}

		resolver := NewEntityResolver(tx)

		var (
			sets []string
			args []any
		)

		set := func(column string, value any) {
			args = append(args, value)
			sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
		}

		if patch.Name != nil {
			set("name", *patch.Name)
		}
		if patch.Date != nil {
			set("date", *patch.Date)
		}
		if patch.Score != nil {
			set("score", *patch.Score)
		}
		if patch.Overview != nil {
			set("overview", *patch.Overview)
		}
		if patch.Status != nil {
			args = append(args, string(*patch.Status))
			sets = append(sets, fmt.Sprintf("status = $%d::movie_status", len(args)))
		}
		if patch.Budget != nil {
			set("budget", *patch.Budget)
		}
		if patch.Revenue != nil {
			set("revenue", *patch.Revenue)
		}
		if patch.CountryID != nil {
			country, err := resolver.FindCountryByID(ctx, *patch.CountryID)
			if err != nil {
				if errors.Is(err, domain.ErrRecordNotFound) {
					return domain.ErrCountryNotFound
				}

				return err
			}

			set("country_id", country.ID)
		}

		if len(sets) > 0 {
			args = append(args, id)
			query := fmt.Sprintf(`UPDATE movies SET %s WHERE id = $%d`, strings.Join(sets, ", "), len(args))

			_, err = tx.Exec(ctx, query, args...)
			if err != nil {
				if isUniqueViolation(err, movieNameDateConstraint) {
					return domain.ErrMovieAlreadyExists
				}

				return err
			}
		}

		replacements := map[domain.EntityKind]*[]int{
			domain.GenreKind:    patch.GenreIDs,
			domain.ActorKind:    patch.ActorIDs,
			domain.LanguageKind: patch.LanguageIDs,
		}

		for kind, ids := range replacements {
			if ids == nil {
				continue
			}

			entities, err := resolver.FindNamedByIDs(ctx, kind, *ids)
			if err != nil {
				return err
			}

			err = replaceLinks(ctx, tx, id, kind, entities)
			if err != nil {
				return err
			}
		}

		movie, err = getMovie(ctx, tx, id, true)
		return err
	})
	if err != nil {
		return nil, err
	}

	return movie, nil
}

// Delete removes the movie and, through ON DELETE CASCADE, its links. Shared
// countries, genres, actors and languages are kept.
func (p *PostgresMovieRepository) Delete(ctx context.Context, id int) error {
	if !domain.ValidID(id) {
		return domain.ErrRecordNotFound
	}

	return runInTx(ctx, p.db, pgx.TxOptions{}, func(tx pgx.Tx) error {
		result, err := tx.Exec(ctx, `DELETE FROM movies WHERE id = $1`, id)
		if err != nil {
			return err
		}

		if result.RowsAffected() == 0 {
			return domain.ErrRecordNotFound
		}

		return nil
	})
}

func getMovie(ctx context.Context, q Querier, id int, withCast bool) (*domain.Movie, error) {
	query := `
		SELECT
			m.id,
			m.name,
			m.date,
			m.score,
			m.overview,
			m.status::text,
			m.budget,
			m.revenue,
			c.id,
			c.code,
			c.name
		FROM movies m
		JOIN countries c ON c.id = m.country_id
		WHERE m.id = $1
	`

	var (
		movie  domain.Movie
		status string
	)

	err := q.QueryRow(ctx, query, id).Scan(
		&movie.ID,
		&movie.Name,
		&movie.Date,
		&movie.Score,
		&movie.Overview,
		&status,
		&movie.Budget,
		&movie.Revenue,
		&movie.Country.ID,
		&movie.Country.Code,
		&movie.Country.Name,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	movie.Status = domain.MovieStatus(status)

	movie.Genres, err = getLinkedEntities(ctx, q, id, domain.GenreKind)
	if err != nil {
		return nil, err
	}

	if !withCast {
		return &movie, nil
	}

	movie.Actors, err = getLinkedEntities(ctx, q, id, domain.ActorKind)
	if err != nil {
		return nil, err
	}

	movie.Languages, err = getLinkedEntities(ctx, q, id, domain.LanguageKind)
	if err != nil {
		return nil, err
	}

	return &movie, nil
}

func getLinkedEntities(ctx context.Context, q Querier, movieID int, kind domain.EntityKind) ([]domain.NamedEntity, error) {
	rel := relationOf(kind)

	query := fmt.Sprintf(`
		SELECT e.id, e.name
		FROM %s e
		JOIN %s l ON l.%s = e.id
		WHERE l.movie_id = $1
		ORDER BY e.id`,
		pgx.Identifier{rel.table}.Sanitize(),
		pgx.Identifier{rel.linkTable}.Sanitize(),
		pgx.Identifier{rel.linkColumn}.Sanitize(),
	)

	rows, err := q.Query(ctx, query, movieID)
	if err != nil {
		return nil, err
	}

	return pgx.CollectRows(rows, pgx.RowToStructByPos[domain.NamedEntity])
}

func linkEntities(ctx context.Context, tx pgx.Tx, movieID int, kind domain.EntityKind, entities []domain.NamedEntity) error {
	entities = uniqueEntities(entities)
	if len(entities) == 0 {
		return nil
	}

	rel := relationOf(kind)

	rows := make([][]any, 0, len(entities))
	for _, entity := range entities {
		rows = append(rows, []any{movieID, entity.ID})
	}

	_, err := tx.CopyFrom(
		ctx,
		pgx.Identifier{rel.linkTable},
		[]string{"movie_id", rel.linkColumn},
		pgx.CopyFromRows(rows),
	)

	return err
}

func replaceLinks(ctx context.Context, tx pgx.Tx, movieID int, kind domain.EntityKind, entities []domain.NamedEntity) error {
	rel := relationOf(kind)

	query := fmt.Sprintf(`DELETE FROM %s WHERE movie_id = $1`, pgx.Identifier{rel.linkTable}.Sanitize())

	_, err := tx.Exec(ctx, query, movieID)
	if err != nil {
		return err
	}

	return linkEntities(ctx, tx, movieID, kind, entities)
}
