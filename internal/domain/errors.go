package domain

import "errors"

var (
	ErrRecordNotFound     = errors.New("record not found")
	ErrMovieAlreadyExists = errors.New("a movie with the same name and release date already exists")
	ErrCountryNotFound    = errors.New("country not found")
)
