package services

import (
	"errors"
	"fmt"
	"math"
	"net/url"
	"reflect"
	"strconv"
	"strings"

	"casebackend/internal/domain"
	"casebackend/internal/domain/models"

	"github.com/go-playground/validator/v10"
)

const (
	DirectionAsc  = "asc"
	DirectionDesc = "desc"

	defaultListLimit = 10
	// DefaultMaxListLimit applies when the service is built without a cap.
	DefaultMaxListLimit = 100
)

// ListQuery is the validated listing request. Build it with ParseListQuery.
type ListQuery struct {
	Query string
	Sort  domain.Sort
	Page  int
	Limit int
}

// Window returns the offset/limit slice this query asks for. A page whose start
// does not fit in an int saturates to math.MaxInt, which is past any result set.
func (q ListQuery) Window() domain.Window {
	if q.Page <= 1 || q.Limit <= 0 {
		return domain.Window{Offset: 0, Limit: q.Limit}
	}
	if q.Page-1 > math.MaxInt/q.Limit {
		return domain.Window{Offset: math.MaxInt, Limit: q.Limit}
	}
	return domain.Window{Offset: q.Limit * (q.Page - 1), Limit: q.Limit}
}

type rawListParams struct {
	Query     string `form:"query"`
	Sort      string `form:"sort" validate:"oneof=id number type"`
	Ascending string `form:"ascending" validate:"oneof=asc desc"`
	Page      string `form:"page" validate:"number"`
	Limit     string `form:"limit" validate:"number"`
}

var listValidate = newListValidator()

func newListValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ParseListQuery validates raw listing params. Absent sort/ascending/page/limit
// default to id/asc/1/10; present but malformed values are reported per field.
// limit above maxLimit is rejected.
func ParseListQuery(values url.Values, maxLimit int) (ListQuery, error) {
	if maxLimit <= 0 {
		maxLimit = DefaultMaxListLimit
	}

	raw := rawListParams{
		Query:     values.Get("query"),
		Sort:      valueOr(values, "sort", string(domain.SortByID)),
		Ascending: valueOr(values, "ascending", DirectionAsc),
		Page:      valueOr(values, "page", "1"),
		Limit:     valueOr(values, "limit", strconv.Itoa(defaultListLimit)),
	}

	fields := domain.FieldErrors{}
	if err := listValidate.Struct(raw); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return ListQuery{}, err
		}
		for _, fe := range verrs {
			fields.Add(fe.Field(), fieldMessage(fe))
		}
	}

	page := parseBounded(fields, "page", raw.Page, 1, 0)
	limit := parseBounded(fields, "limit", raw.Limit, 1, maxLimit)

	if err := fields.OrNil(); err != nil {
		return ListQuery{}, err
	}

	return ListQuery{
		Query: raw.Query,
		Sort: domain.Sort{
			Field: domain.SortField(raw.Sort),
			Desc:  raw.Ascending == DirectionDesc,
		},
		Page:  page,
		Limit: limit,
	}, nil
}

// parseBounded converts an integer field and checks min (and max when > 0).
// Fields already rejected by struct validation are skipped.
func parseBounded(fields domain.FieldErrors, name, raw string, min, max int) int {
	if fields.Has(name) {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		fields.Add(name, "A valid integer is required.")
		return 0
	}
	if n < min {
		fields.Add(name, fmt.Sprintf("Ensure this value is greater than or equal to %d.", min))
		return 0
	}
	if max > 0 && n > max {
		fields.Add(name, fmt.Sprintf("Ensure this value is less than or equal to %d.", max))
		return 0
	}
	return n
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "oneof":
		return fmt.Sprintf("%q is not a valid choice.", fe.Value())
	case "number":
		return "A valid integer is required."
	default:
		return "Invalid value."
	}
}

func valueOr(values url.Values, key, fallback string) string {
	if v := strings.TrimSpace(values.Get(key)); v != "" {
		return v
	}
	return fallback
}

// ResolveStateLabel swaps query for a state code when it equals that state's
// display label exactly. Anything else passes through unchanged.
func ResolveStateLabel(query string, states []models.StateChoice) string {
	for _, s := range states {
		if query == s.Label {
			return s.Code
		}
	}
	return query
}
