package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/metinatakli/movie-catalog/internal/domain"
)

type relation struct {
	table      string
	linkTable  string
	linkColumn string
}

var relations = map[domain.EntityKind]relation{
	domain.GenreKind:    {table: "genres", linkTable: "movie_genres", linkColumn: "genre_id"},
	domain.ActorKind:    {table: "actors", linkTable: "movie_actors", linkColumn: "actor_id"},
	domain.LanguageKind: {table: "languages", linkTable: "movie_languages", linkColumn: "language_id"},
}

func relationOf(kind domain.EntityKind) relation {
	rel, ok := relations[kind]
	if !ok {
		panic("unknown entity kind: " + kind.String())
	}

	return rel
}

// EntityResolver looks up countries, genres, actors and languages, creating
// them on first reference. It runs on whatever Querier it is given, so the
// movie repository passes its transaction in.
type EntityResolver struct {
	q Querier
}

func NewEntityResolver(q Querier) *EntityResolver {
	return &EntityResolver{
		q: q,
	}
}

// ResolveCountry returns the country with the given code, inserting it
// without a display name if it does not exist yet.
func (e *EntityResolver) ResolveCountry(ctx context.Context, code string) (*domain.Country, error) {
	_, err := e.q.Exec(ctx, `INSERT INTO countries (code) VALUES ($1) ON CONFLICT (code) DO NOTHING`, code)
	if err != nil {
		return nil, err
	}

	var country domain.Country

	err = e.q.QueryRow(ctx, `SELECT id, code, name FROM countries WHERE code = $1`, code).
		Scan(&country.ID, &country.Code, &country.Name)
	if err != nil {
		return nil, err
	}

	return &country, nil
}

// ResolveNamed returns one entity per name, in input order. Missing names are
// inserted with ON CONFLICT DO NOTHING, so a concurrent insert of the same name
// either commits first and is found by the lookup, or rolls back and ours wins.
func (e *EntityResolver) ResolveNamed(ctx context.Context, kind domain.EntityKind, names []string) ([]domain.NamedEntity, error) {
	rel := relationOf(kind)

	unique := uniqueStrings(names)
	if len(unique) == 0 {
		return []domain.NamedEntity{}, nil
	}

	table := pgx.Identifier{rel.table}.Sanitize()

	// sorted insert keeps lock order stable between overlapping requests
	insert := fmt.Sprintf(`
		INSERT INTO %s (name)
		SELECT n FROM unnest($1::text[]) AS n
		ORDER BY n
		ON CONFLICT (name) DO NOTHING`, table)

	_, err := e.q.Exec(ctx, insert, unique)
	if err != nil {
		return nil, err
	}

	rows, err := e.q.Query(ctx, fmt.Sprintf(`SELECT id, name FROM %s WHERE name = ANY($1)`, table), unique)
	if err != nil {
		return nil, err
	}

	found, err := pgx.CollectRows(rows, pgx.RowToStructByPos[domain.NamedEntity])
	if err != nil {
		return nil, err
	}

	byName := make(map[string]domain.NamedEntity, len(found))
	for _, entity := range found {
		byName[entity.Name] = entity
	}

	entities := make([]domain.NamedEntity, 0, len(unique))
	for _, name := range unique {
		entity, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("%s %q missing after insert", kind, name)
		}

		entities = append(entities, entity)
	}

	return entities, nil
}

// FindCountryByID returns domain.ErrRecordNotFound when no country has the id.
func (e *EntityResolver) FindCountryByID(ctx context.Context, id int) (*domain.Country, error) {
	if !domain.ValidID(id) {
		return nil, domain.ErrRecordNotFound
	}

	var country domain.Country

	err := e.q.QueryRow(ctx, `SELECT id, code, name FROM countries WHERE id = $1`, id).
		Scan(&country.ID, &country.Code, &country.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &country, nil
}

// FindNamedByIDs returns the existing entities among ids, ordered by id.
// Unknown ids, including ones outside the id column range, are dropped.
func (e *EntityResolver) FindNamedByIDs(ctx context.Context, kind domain.EntityKind, ids []int) ([]domain.NamedEntity, error) {
	rel := relationOf(kind)

	ids = storableIDs(ids)
	if len(ids) == 0 {
		return []domain.NamedEntity{}, nil
	}

	query := fmt.Sprintf(`SELECT id, name FROM %s WHERE id = ANY($1) ORDER BY id`, pgx.Identifier{rel.table}.Sanitize())

	rows, err := e.q.Query(ctx, query, ids)
	if err != nil {
		return nil, err
	}

	return pgx.CollectRows(rows, pgx.RowToStructByPos[domain.NamedEntity])
}

// resolveRelation merges entities given by name (created if missing) with
// existing entities given by id, without duplicates.
func (e *EntityResolver) resolveRelation(
	ctx context.Context,
	kind domain.EntityKind,
	names []string,
	ids []int) ([]domain.NamedEntity, error) {

	named, err := e.ResolveNamed(ctx, kind, names)
	if err != nil {
		return nil, err
	}

	byID, err := e.FindNamedByIDs(ctx, kind, ids)
	if err != nil {
		return nil, err
	}

	return uniqueEntities(append(named, byID...)), nil
}

func storableIDs(ids []int) []int {
	valid := make([]int, 0, len(ids))

	for _, id := range ids {
		if domain.ValidID(id) {
			valid = append(valid, id)
		}
	}

	return valid
}

func uniqueStrings(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	unique := make([]string, 0, len(values))

	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}

		seen[v] = struct{}{}
		unique = append(unique, v)
	}

	return unique
}

func uniqueEntities(entities []domain.NamedEntity) []domain.NamedEntity {
	seen := make(map[int]struct{}, len(entities))
	unique := make([]domain.NamedEntity, 0, len(entities))

	for _, entity := range entities {
		if _, ok := seen[entity.ID]; ok {
			continue
		}

		seen[entity.ID] = struct{}{}
		unique = append(unique, entity)
	}

	return unique
}
