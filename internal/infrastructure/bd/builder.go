package db

import (
	"fmt"
	"sort"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"equipment-dashboard/pkg/types"
)

// ApplyListParams adds equality filters, ordering and pagination to builder.
// Only fields present in allowedMap are used; the rest are silently ignored.
// Keys are visited in sorted order so the generated SQL is stable.
func ApplyListParams(builder sq.SelectBuilder, filter types.Filter, allowedMap map[string]string) sq.SelectBuilder {
	for _, jsonField := range sortedKeys(filter.Filter) {
		dbCol, ok := allowedMap[jsonField]
		if !ok {
			continue
		}
		val := filter.Filter[jsonField]

		if s, ok := val.(string); ok && strings.Contains(s, ",") {
			builder = builder.Where(sq.Eq{dbCol: strings.Split(s, ",")})
		} else {
			builder = builder.Where(sq.Eq{dbCol: val})
		}
	}

	for _, jsonField := range sortedKeys(filter.Sort) {
		dbCol, ok := allowedMap[jsonField]
		if !ok {
			continue
		}
		sqlDir := "ASC"
		if strings.ToLower(filter.Sort[jsonField]) == "desc" {
			sqlDir = "DESC"
		}
		builder = builder.OrderBy(fmt.Sprintf("%s %s", dbCol, sqlDir))
	}

	if filter.WithPagination {
		if filter.Limit > 0 {
			builder = builder.Limit(uint64(filter.Limit))
		}
		if filter.Offset >= 0 {
			builder = builder.Offset(uint64(filter.Offset))
		}
	}

	return builder
}

// HasSort reports whether filter carries at least one allow-listed sort field.
func HasSort(filter types.Filter, allowedMap map[string]string) bool {
	for field := range filter.Sort {
		if _, ok := allowedMap[field]; ok {
			return true
		}
	}
	return false
}

// ForCount strips ordering and pagination so the same filter can feed a COUNT query.
func ForCount(filter types.Filter) types.Filter {
	countFilter := filter
	countFilter.WithPagination = false
	countFilter.Sort = nil
	return countFilter
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
