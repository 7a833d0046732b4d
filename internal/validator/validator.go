package validator

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/metinatakli/movie-catalog/api"
	"github.com/metinatakli/movie-catalog/internal/domain"
	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/shopspring/decimal"
)

// MaxReleaseDateAhead is how far in the future a release date may lie.
const MaxReleaseDateAhead = 365 * 24 * time.Hour

const (
	ErrRequired    = "is required"
	ErrMin         = "must be at least %s"
	ErrMax         = "must be at most %s"
	ErrMinLength   = "must be at least %s characters long"
	ErrMaxLength   = "must be at most %s characters long"
	ErrDecimalGte  = "must be greater than or equal to %s"
	ErrDecimalLte  = "must be less than or equal to %s"
	ErrReleaseDate = "must not be more than 365 days in the future"
	ErrMovieStatus = "must be one of: Released, Post Production, In Production"
	ErrInvalid     = "is invalid"
)

// now is swapped in tests to pin the release date window.
var now = time.Now

func NewValidator() *validator.Validate {
	validator := validator.New(validator.WithRequiredStructEnabled())

	validator.RegisterTagNameFunc(jsonFieldName)

	validator.RegisterValidation("decimal_gte", validateDecimalGte)
	validator.RegisterValidation("decimal_lte", validateDecimalLte)
	validator.RegisterValidation("release_date", validateReleaseDate)
	validator.RegisterValidation("movie_status", validateMovieStatus)

	return validator
}

func jsonFieldName(field reflect.StructField) string {
	name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	if name == "" {
		return field.Name
	}

	return name
}

func fieldDecimal(fl validator.FieldLevel) (decimal.Decimal, decimal.Decimal, bool) {
	value, ok := fl.Field().Interface().(decimal.Decimal)
	if !ok {
		return decimal.Decimal{}, decimal.Decimal{}, false
	}

	bound, err := decimal.NewFromString(fl.Param())
	if err != nil {
		panic(fmt.Sprintf("invalid decimal bound %q on field %s", fl.Param(), fl.FieldName()))
	}

	return value, bound, true
}

func validateDecimalGte(fl validator.FieldLevel) bool {
	value, bound, ok := fieldDecimal(fl)
	return ok && value.GreaterThanOrEqual(bound)
}

func validateDecimalLte(fl validator.FieldLevel) bool {
	value, bound, ok := fieldDecimal(fl)
	return ok && value.LessThanOrEqual(bound)
}

func validateReleaseDate(fl validator.FieldLevel) bool {
	date, ok := fl.Field().Interface().(openapi_types.Date)
	if !ok {
		return false
	}

	today := now().UTC().Truncate(24 * time.Hour)

	return !date.Time.After(today.Add(MaxReleaseDateAhead))
}

func validateMovieStatus(fl validator.FieldLevel) bool {
	status, ok := fl.Field().Interface().(api.MovieStatus)
	if !ok {
		return false
	}

	return domain.MovieStatus(status).Valid()
}

// ValidationMessage converts validator errors into readable messages
func ValidationMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return ErrRequired
	case "min":
		if err.Kind() == reflect.String {
			return fmt.Sprintf(ErrMinLength, err.Param())
		}
		return fmt.Sprintf(ErrMin, err.Param())
	case "max":
		if err.Kind() == reflect.String {
			return fmt.Sprintf(ErrMaxLength, err.Param())
		}
		return fmt.Sprintf(ErrMax, err.Param())
	case "decimal_gte":
		return fmt.Sprintf(ErrDecimalGte, err.Param())
	case "decimal_lte":
		return fmt.Sprintf(ErrDecimalLte, err.Param())
	case "release_date":
		return ErrReleaseDate
	case "movie_status":
		return ErrMovieStatus
	default:
		return ErrInvalid
	}
}
