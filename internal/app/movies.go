package app

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/metinatakli/movie-catalog/api"
	"github.com/metinatakli/movie-catalog/internal/domain"
	"github.com/oapi-codegen/runtime/types"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 10
)

const (
	ErrMovieAlreadyExists = "A movie with the name '%s' and release date '%s' already exists."
	ErrMovieNameDateTaken = "Another movie with the same name and release date already exists."
	ErrUnknownCountry     = "country does not exist"
)

func (app *Application) ListMovies(w http.ResponseWriter, r *http.Request, params api.ListMoviesParams) {
	err := app.validator.Struct(params)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	pagination := toPagination(params)

	movies, total, err := app.movieRepo.GetAll(r.Context(), pagination)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := api.MovieListResponse{
		Items: toMovieListItems(movies),
		Page:  pagination.Page,
		Size:  pagination.PageSize,
		Total: total,
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) CreateMovie(w http.ResponseWriter, r *http.Request) {
	var input api.CreateMovieRequest

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	movie, err := app.movieRepo.Create(r.Context(), toNewMovie(input))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrMovieAlreadyExists):
			app.conflictResponse(w, r, fmt.Sprintf(ErrMovieAlreadyExists, input.Name, input.Date.String()))
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	app.metrics.moviesCreated.Add(r.Context(), 1,
		metric.WithAttributes(attribute.String("status", string(movie.Status))))

	app.contextGetLogger(r).Info("movie created", "movieId", movie.ID)

	headers := make(http.Header)
	headers.Set("Location", fmt.Sprintf("/movies/%d", movie.ID))

	err = app.writeJSON(w, http.StatusCreated, toMovieResponse(movie), headers)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetMovieById(w http.ResponseWriter, r *http.Request, movieId int) {
	if movieId < 1 {
		app.badRequestResponse(w, r, errors.New(ErrInvalidMovieId))
		return
	}
	if movieId > domain.MaxID {
		app.errorResponse(w, r, http.StatusNotFound, ErrMovieNotFound)
		return
	}

	movie, err := app.movieRepo.GetById(r.Context(), movieId)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.errorResponse(w, r, http.StatusNotFound, ErrMovieNotFound)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, toMovieDetailResponse(movie), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) UpdateMovie(w http.ResponseWriter, r *http.Request, movieId int) {
	if movieId < 1 {
		app.badRequestResponse(w, r, errors.New(ErrInvalidMovieId))
		return
	}
	if movieId > domain.MaxID {
		app.errorResponse(w, r, http.StatusNotFound, ErrMovieNotFound)
		return
	}

	var input api.UpdateMovieRequest

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	movie, err := app.movieRepo.Update(r.Context(), movieId, toMoviePatch(input))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.errorResponse(w, r, http.StatusNotFound, ErrMovieNotFound)
		case errors.Is(err, domain.ErrMovieAlreadyExists):
			app.conflictResponse(w, r, ErrMovieNameDateTaken)
		case errors.Is(err, domain.ErrCountryNotFound):
			app.validationErrorResponse(w, r, []api.ValidationError{
				{Field: "country_id", Issue: ErrUnknownCountry},
			})
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, toMovieResponse(movie), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) DeleteMovie(w http.ResponseWriter, r *http.Request, movieId int) {
	if movieId < 1 {
		app.badRequestResponse(w, r, errors.New(ErrInvalidMovieId))
		return
	}
	if movieId > domain.MaxID {
		app.errorResponse(w, r, http.StatusNotFound, ErrMovieNotFound)
		return
	}

	err := app.movieRepo.Delete(r.Context(), movieId)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.errorResponse(w, r, http.StatusNotFound, ErrMovieNotFound)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	app.metrics.moviesDeleted.Add(r.Context(), 1)

	w.WriteHeader(http.StatusNoContent)
}

func toPagination(params api.ListMoviesParams) domain.Pagination {
	pagination := domain.Pagination{
		Page:     DefaultPage,
		PageSize: DefaultPageSize,
	}

	if params.Page != nil {
		pagination.Page = *params.Page
	}
	if params.Size != nil {
		pagination.PageSize = *params.Size
	}

	return pagination
}

func toNewMovie(input api.CreateMovieRequest) domain.NewMovie {
	return domain.NewMovie{
		Name:          input.Name,
		Date:          input.Date.Time,
		Score:         input.Score,
		Overview:      *input.Overview,
		Status:        domain.MovieStatus(input.Status),
		Budget:        input.Budget,
		Revenue:       input.Revenue,
		CountryCode:   input.Country,
		GenreNames:    deref(input.Genres),
		ActorNames:    deref(input.Actors),
		LanguageNames: deref(input.Languages),
		GenreIDs:      deref(input.GenresIds),
		ActorIDs:      deref(input.ActorsIds),
		LanguageIDs:   deref(input.LanguagesIds),
	}
}

func toMoviePatch(input api.UpdateMovieRequest) domain.MoviePatch {
	patch := domain.MoviePatch{
		Name:        input.Name,
		Score:       input.Score,
		Overview:    input.Overview,
		Budget:      input.Budget,
		Revenue:     input.Revenue,
		CountryID:   input.CountryId,
		GenreIDs:    input.GenreIds,
		ActorIDs:    input.ActorIds,
		LanguageIDs: input.LanguageIds,
	}

	if input.Date != nil {
		patch.Date = &input.Date.Time
	}
	if input.Status != nil {
		status := domain.MovieStatus(*input.Status)
		patch.Status = &status
	}

	return patch
}

func toMovieListItems(movies []*domain.Movie) []api.MovieListItem {
	items := make([]api.MovieListItem, len(movies))

	for i, movie := range movies {
		items[i] = api.MovieListItem{
			Id:    movie.ID,
			Name:  movie.Name,
			Date:  types.Date{Time: movie.Date},
			Score: movie.Score.InexactFloat64(),
		}
	}

	return items
}

func toMovieDetailResponse(movie *domain.Movie) api.MovieDetailResponse {
	return api.MovieDetailResponse{
		Id:       movie.ID,
		Name:     movie.Name,
		Date:     types.Date{Time: movie.Date},
		Score:    movie.Score.InexactFloat64(),
		Overview: movie.Overview,
		Status:   api.MovieStatus(movie.Status),
		Budget:   movie.Budget.InexactFloat64(),
		Revenue:  movie.Revenue.InexactFloat64(),
		Country:  toApiCountry(movie.Country),
		Genres:   toApiNamedEntities(movie.Genres),
	}
}

func toMovieResponse(movie *domain.Movie) api.MovieResponse {
	return api.MovieResponse{
		Id:        movie.ID,
		Name:      movie.Name,
		Date:      types.Date{Time: movie.Date},
		Score:     movie.Score.InexactFloat64(),
		Overview:  movie.Overview,
		Status:    api.MovieStatus(movie.Status),
		Budget:    movie.Budget.InexactFloat64(),
		Revenue:   movie.Revenue.InexactFloat64(),
		Country:   toApiCountry(movie.Country),
		Genres:    toApiNamedEntities(movie.Genres),
		Actors:    toApiNamedEntities(movie.Actors),
		Languages: toApiNamedEntities(movie.Languages),
	}
}

func toApiCountry(country domain.Country) api.Country {
	return api.Country{
		Id:   country.ID,
		Code: country.Code,
		Name: country.Name,
	}
}

// toApiNamedEntities never returns nil so empty relations encode as [].
func toApiNamedEntities(entities []domain.NamedEntity) []api.NamedEntity {
	result := make([]api.NamedEntity, len(entities))

	for i, e := range entities {
		result[i] = api.NamedEntity{Id: e.ID, Name: e.Name}
	}

	return result
}

func deref[T any](p *[]T) []T {
	if p == nil {
		return nil
	}

	return *p
}
