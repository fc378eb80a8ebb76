package utils

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	apperrors "equipment-dashboard/pkg/errors"
	"equipment-dashboard/pkg/types"
)

const (
	DefaultLimit = 20
	MaxLimit     = 200

	DateLayout = "2006-01-02"
)

// ParseFilterFromQuery reads page/limit/search/sort/filter[...] parameters.
// Supported sort forms: sort=field&order=desc, sort=-field, sort[field]=desc.
func ParseFilterFromQuery(values url.Values) types.Filter {
	filterReq := types.Filter{
		Sort:           make(map[string]string),
		Filter:         make(map[string]interface{}),
		Limit:          DefaultLimit,
		Page:           1,
		WithPagination: true,
	}

	if limitStr := values.Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
			if l > MaxLimit {
				filterReq.Limit = MaxLimit
			} else {
				filterReq.Limit = l
			}
		}
	}

	if pageStr := values.Get("page"); pageStr != "" {
		if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
			filterReq.Page = p
		}
	}
	filterReq.Offset = (filterReq.Page - 1) * filterReq.Limit

	if values.Get("withPagination") == "false" {
		filterReq.WithPagination = false
	}

	filterReq.Search = strings.TrimSpace(values.Get("search"))

	if sort := strings.TrimSpace(values.Get("sort")); sort != "" {
		direction := strings.ToLower(values.Get("order"))
		if strings.HasPrefix(sort, "-") {
			sort, direction = sort[1:], "desc"
		}
		if direction != "desc" {
			direction = "asc"
		}
		filterReq.Sort[sort] = direction
	}

	for key, vals := range values {
		if len(vals) == 0 || vals[0] == "" {
			continue
		}

		if strings.HasPrefix(key, "sort[") && strings.HasSuffix(key, "]") {
			field := key[5 : len(key)-1]
			direction := strings.ToLower(vals[0])
			if direction == "asc" || direction == "desc" {
				filterReq.Sort[field] = direction
			}
			continue
		}

		if strings.HasPrefix(key, "filter[") && strings.HasSuffix(key, "]") {
			field := key[7 : len(key)-1]
			if len(vals) > 1 {
				filterReq.Filter[field] = strings.Join(vals, ",")
			} else {
				filterReq.Filter[field] = vals[0]
			}
		}
	}

	return filterReq
}

// ParseOptionalDate parses a YYYY-MM-DD query value; empty input yields nil.
func ParseOptionalDate(name, value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return nil, apperrors.NewInvalidInputError("%s must be a date in YYYY-MM-DD format", name)
	}
	return &t, nil
}

func ParseID(raw string) (uint64, error) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, apperrors.NewInvalidInputError("invalid id %q", raw)
	}
	return id, nil
}
