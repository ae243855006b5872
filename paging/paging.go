package paging

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
)

const (
	DefaultLimit = 50
	MaxLimit     = 500
)

var ErrInvalidCursor = errors.New("invalid cursor")

// Params holds the pagination parameters of a request.
type Params struct {
	Cursor string `json:"cursor" form:"cursor"`
	Limit  int    `json:"limit" form:"limit"`
}

// Result holds one page.
type Result[T any] struct {
	Items       []T    `json:"items"`
	Total       int    `json:"total"`
	NextCursor  string `json:"next,omitempty"`
	HasNextPage bool   `json:"has_next"`
}

// NormalizeParams clamps Limit into (0, MaxLimit].
func NormalizeParams(params Params) Params {
	if params.Limit <= 0 {
		params.Limit = DefaultLimit
	}
	if params.Limit > MaxLimit {
		params.Limit = MaxLimit
	}
	return params
}

// EncodeCursor encodes an offset as an opaque cursor.
func EncodeCursor(offset int) string {
	return base64.RawURLEncoding.EncodeToString([]byte(strconv.Itoa(offset)))
}

// DecodeCursor decodes a cursor. The empty cursor is offset 0.
func DecodeCursor(cursor string) (int, error) {
	if cursor == "" {
		return 0, nil
	}
	b, err := base64.RawURLEncoding.DecodeString(cursor)
	if err != nil {
		return 0, ErrInvalidCursor
	}
	offset, err := strconv.Atoi(string(b))
	if err != nil || offset < 0 {
		return 0, ErrInvalidCursor
	}
	return offset, nil
}

// PagingFunc returns up to limit items starting at offset plus the total.
type PagingFunc[T any] func(offset, limit int) (items []T, total int, err error)

// Paginate fetches one page through fn.
func Paginate[T any](params Params, fn PagingFunc[T]) (*Result[T], error) {
	params = NormalizeParams(params)
	offset, err := DecodeCursor(params.Cursor)
	if err != nil {
		return nil, err
	}

	items, total, err := fn(offset, params.Limit+1)
	if err != nil {
		return nil, fmt.Errorf("pagination error: %w", err)
	}

	res := &Result[T]{Items: items, Total: total}
	if len(items) > params.Limit {
		res.Items = items[:params.Limit]
		res.HasNextPage = true
		res.NextCursor = EncodeCursor(offset + params.Limit)
	}
	if res.Items == nil {
		res.Items = make([]T, 0)
	}
	return res, nil
}

// SliceFunc pages over an in-memory slice.
func SliceFunc[T any](all []T) PagingFunc[T] {
	return func(offset, limit int) ([]T, int, error) {
		if offset >= len(all) {
			return nil, len(all), nil
		}
		end := min(offset+limit, len(all))
		return all[offset:end], len(all), nil
	}
}
