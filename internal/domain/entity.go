package domain

import "math"

// MaxID is the largest id the catalog tables can hold (SERIAL columns).
const MaxID = math.MaxInt32

// ValidID reports whether id can name a stored row.
func ValidID(id int) bool {
	return id >= 1 && id <= MaxID
}

// EntityKind names one of the catalog tables holding named entities.
type EntityKind string

const (
	GenreKind    EntityKind = "genre"
	ActorKind    EntityKind = "actor"
	LanguageKind EntityKind = "language"
)

func (k EntityKind) String() string {
	return string(k)
}

type Country struct {
	ID   int
	Code string
	Name *string
}

// NamedEntity is the shared shape of genres, actors and languages.
type NamedEntity struct {
	ID   int
	Name string
}
