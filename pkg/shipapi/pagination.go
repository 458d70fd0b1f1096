package shipapi

import (
	"context"
	"errors"
	"fmt"
)

// ErrNoMoreItems is returned by PageIterator.Next once every page is consumed.
var ErrNoMoreItems = errors.New("no more items")

// PageFetcher fetches one page of a cursor-paginated collection.
type PageFetcher[T any] func(ctx context.Context, params *ListParams) (Page[T], error)

// PageIterator walks a before_id paginated collection one item at a time.
type PageIterator[T any] struct {
	ctx      context.Context
	fetch    PageFetcher[T]
	idOf     func(T) string
	pageSize int

	items   []T
	index   int
	hasMore bool
	started bool
	lastID  string
}

// NewPageIterator creates an iterator. idOf returns the cursor ID of an item.
func NewPageIterator[T any](ctx context.Context, fetch PageFetcher[T], idOf func(T) string, pageSize int) *PageIterator[T] {
	return &PageIterator[T]{
		ctx:      ctx,
		fetch:    fetch,
		idOf:     idOf,
		pageSize: pageSize,
		hasMore:  true,
	}
}

// HasNext reports whether another item may be available.
func (it *PageIterator[T]) HasNext() bool {
	if it.index < len(it.items) {
		return true
	}

	return it.hasMore
}

// Next returns the next item, fetching the following page when needed.
func (it *PageIterator[T]) Next() (T, error) {
	var zero T

	if it.index >= len(it.items) {
		if !it.hasMore {
			return zero, ErrNoMoreItems
		}

		err := it.fetchPage()
		if err != nil {
			return zero, err
		}

		if len(it.items) == 0 {
			it.hasMore = false

			return zero, ErrNoMoreItems
		}
	}

	item := it.items[it.index]
	it.index++
	it.lastID = it.idOf(item)

	return item, nil
}

func (it *PageIterator[T]) fetchPage() error {
	params := NewListParams()
	if it.pageSize > 0 {
		params.WithPageSize(it.pageSize)
	}

	if it.started {
		params.WithBeforeID(it.lastID)
	}

	page, err := it.fetch(it.ctx, params)
	if err != nil {
		return fmt.Errorf("fetching page: %w", err)
	}

	it.started = true
	it.items = page.Items()
	it.index = 0
	it.hasMore = page.More()

	return nil
}

// CollectAll fetches every page and returns all items.
func CollectAll[T any](ctx context.Context, fetch PageFetcher[T], idOf func(T) string, pageSize int) ([]T, error) {
	iterator := NewPageIterator(ctx, fetch, idOf, pageSize)

	var all []T

	for iterator.HasNext() {
		item, err := iterator.Next()
		if errors.Is(err, ErrNoMoreItems) {
			break
		}

		if err != nil {
			return nil, err
		}

		all = append(all, item)
	}

	return all, nil
}
