package apiclient

import (
	"bytes"
	"encoding/json"

	"github.com/pkg/errors"
)

// ListPage is the normalized result of a list endpoint. The backend serves
// two shapes: large collections come back as a paginated envelope
// {items,total,page,per_page,pages}, small reference lists as a bare JSON
// array. Callers always see this one shape.
type ListPage[T any] struct {
	Items   []T
	Total   int64
	Page    int
	PerPage int
	Pages   int
}

type envelope[T any] struct {
	Items   []T   `json:"items"`
	Total   int64 `json:"total"`
	Page    int   `json:"page"`
	PerPage int   `json:"per_page"`
	Pages   int   `json:"pages"`
}

func unmarshal(data []byte, v any) error {
	return errors.Wrap(json.Unmarshal(data, v), "decode response")
}

// DecodeList normalizes either list shape into a ListPage.
func DecodeList[T any](data []byte) (ListPage[T], error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return ListPage[T]{}, errors.New("empty list response")
	}
	if trimmed[0] == '[' {
		var items []T
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return ListPage[T]{}, errors.Wrap(err, "decode bare list")
		}
		return ListPage[T]{Items: items, Total: int64(len(items)), Page: 1, PerPage: len(items), Pages: 1}, nil
	}
	var env envelope[T]
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return ListPage[T]{}, errors.Wrap(err, "decode list envelope")
	}
	return ListPage[T]{Items: env.Items, Total: env.Total, Page: env.Page, PerPage: env.PerPage, Pages: env.Pages}, nil
}
