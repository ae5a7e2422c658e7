package services

import "github.com/tbourn/go-news-backend/internal/repo"

// DefaultSortBy is the article sort column used when none is requested.
const DefaultSortBy = "created_at"

// ParseSort validates a requested sort column and direction against the
// closed whitelist. An empty sortBy means DefaultSortBy; an empty order means
// descending. Tokens are case-sensitive; anything outside the whitelist is
// ErrBadRequest.
func ParseSort(sortBy, order string) (column string, desc bool, err error) {
	column = sortBy
	if column == "" {
		column = DefaultSortBy
	}
	if _, ok := repo.ArticleSortColumns[column]; !ok {
		return "", false, ErrBadRequest
	}

	switch order {
	case "", "desc":
		desc = true
	case "asc":
		desc = false
	default:
		return "", false, ErrBadRequest
	}
	return column, desc, nil
}
