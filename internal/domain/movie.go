package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type MovieStatus string

const (
	StatusReleased       MovieStatus = "Released"
	StatusPostProduction MovieStatus = "Post Production"
	StatusInProduction   MovieStatus = "In Production"
)

func (s MovieStatus) Valid() bool {
	switch s {
	case StatusReleased, StatusPostProduction, StatusInProduction:
		return true
	default:
		return false
	}
}

type Movie struct {
	ID        int
	Name      string
	Date      time.Time
	Score     decimal.Decimal
	Overview  string
	Status    MovieStatus
	Budget    decimal.Decimal
	Revenue   decimal.Decimal
	Country   Country
	Genres    []NamedEntity
	Actors    []NamedEntity
	Languages []NamedEntity
}

// NewMovie carries everything needed to insert a movie. Related entities given
// by name are created on first use, the ones given by id must already exist.
type NewMovie struct {
	Name          string
	Date          time.Time
	Score         decimal.Decimal
	Overview      string
	Status        MovieStatus
	Budget        decimal.Decimal
	Revenue       decimal.Decimal
	CountryCode   string
	GenreNames    []string
	ActorNames    []string
	LanguageNames []string
	GenreIDs      []int
	ActorIDs      []int
	LanguageIDs   []int
}

// MoviePatch holds the fields of a partial update. A nil field is left as it is.
// A non-nil relation slice replaces the whole relation set, an empty one clears it.
type MoviePatch struct {
	Name        *string
	Date        *time.Time
	Score       *decimal.Decimal
	Overview    *string
	Status      *MovieStatus
	Budget      *decimal.Decimal
	Revenue     *decimal.Decimal
	CountryID   *int
	GenreIDs    *[]int
	ActorIDs    *[]int
	LanguageIDs *[]int
}

type MovieRepository interface {
	Create(ctx context.Context, input NewMovie) (*Movie, error)
	GetAll(ctx context.Context, pagination Pagination) ([]*Movie, int, error)
	GetById(ctx context.Context, id int) (*Movie, error)
	Update(ctx context.Context, id int, patch MoviePatch) (*Movie, error)
	Delete(ctx context.Context, id int) error
}
