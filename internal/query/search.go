// Package query turns request parameters into validated inputs for the
// discovery query. It does no I/O.
package query

import (
	"math"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"vidtube/internal/apperr"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// Direction follows the numeric flag clients send: 1 ascending, -1
// descending.
type Direction int

const (
	Ascending  Direction = 1
	Descending Direction = -1
)

func (d Direction) SQL() string {
	if d == Descending {
		return "DESC"
	}
	return "ASC"
}

// sortColumns maps the public sort keys to video columns. Anything not
// listed here is rejected, so the column can be placed in SQL directly.
var sortColumns = map[string]string{
	"createdAt": "created_at",
	"updatedAt": "updated_at",
	"views":     "views",
	"title":     "title",
	"duration":  "duration",
}

// Pagination is a validated page request. Offset always fits in an int.
type Pagination struct {
	Page  int `validate:"min=1"`
	Limit int `validate:"min=1,max=100"`
}

// Offset is the number of rows skipped before this page.
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Search is a validated discovery request.
type Search struct {
	Pagination
	Text      string
	OwnerID   *uuid.UUID
	SortKey   string    `validate:"oneof=createdAt updatedAt views title duration"`
	Direction Direction `validate:"oneof=1 -1"`
}

// SortColumn is the column SortKey maps to.
func (s Search) SortColumn() string {
	return sortColumns[s.SortKey]
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// ParsePagination reads page and limit. A page whose offset would not fit
// in an int is InvalidPage.
func ParsePagination(values url.Values) (Pagination, error) {
	p := Pagination{Page: DefaultPage, Limit: DefaultLimit}

	var err error
	if raw := strings.TrimSpace(values.Get("page")); raw != "" {
		if p.Page, err = strconv.Atoi(raw); err != nil {
			return Pagination{}, apperr.New(apperr.InvalidPage, "Invalid page number")
		}
	}
	if raw := strings.TrimSpace(values.Get("limit")); raw != "" {
		if p.Limit, err = strconv.Atoi(raw); err != nil {
			return Pagination{}, apperr.New(apperr.InvalidLimit, "Invalid limit")
		}
	}

	if err := getValidator().Struct(p); err != nil {
		return Pagination{}, translate(err)
	}
	if p.Page-1 > math.MaxInt/p.Limit {
		return Pagination{}, apperr.New(apperr.InvalidPage, "Page number is too large")
	}
	return p, nil
}

// ParseSearch reads query, userId, sortBy, sortType, page and limit.
func ParseSearch(values url.Values) (Search, error) {
	p, err := ParsePagination(values)
	if err != nil {
		return Search{}, err
	}
	s := Search{
		Pagination: p,
		Text:       values.Get("query"),
		SortKey:    "createdAt",
		Direction:  Ascending,
	}

	if raw := strings.TrimSpace(values.Get("sortBy")); raw != "" {
		s.SortKey = raw
	}
	if raw := strings.TrimSpace(values.Get("sortType")); raw != "" {
		dir, err := parseDirection(raw)
		if err != nil {
			return Search{}, err
		}
		s.Direction = dir
	}
	if raw := strings.TrimSpace(values.Get("userId")); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return Search{}, apperr.New(apperr.InvalidReference, "Invalid user ID")
		}
		s.OwnerID = &id
	}

	if err := getValidator().Struct(s); err != nil {
		return Search{}, translate(err)
	}
	return s, nil
}

func parseDirection(raw string) (Direction, error) {
	switch strings.ToLower(raw) {
	case "1", "asc", "ascending":
		return Ascending, nil
	case "-1", "desc", "descending":
		return Descending, nil
	}
	return 0, apperr.New(apperr.InvalidSort, "sortType must be 1 or -1")
}

// translate maps the first failing field to its error kind.
func translate(err error) error {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return apperr.New(apperr.InvalidInput, err.Error())
	}
	switch verrs[0].Field() {
	case "Page":
		return apperr.New(apperr.InvalidPage, "Invalid page number")
	case "Limit":
		return apperr.New(apperr.InvalidLimit, "Invalid limit")
	case "SortKey":
		return apperr.New(apperr.InvalidSort, "Unsupported sortBy field")
	case "Direction":
		return apperr.New(apperr.InvalidSort, "sortType must be 1 or -1")
	}
	return apperr.New(apperr.InvalidInput, verrs[0].Error())
}
