package helper

import (
	"context"
	"time"

	"go-ecocidade/internal/database"
	"go-ecocidade/internal/repository/filter"

	"cloud.google.com/go/firestore"
)

// NotifyOnChanges blocks and calls fn for every change of the given kinds until the listener stops,
// fn returns an error or the context is done.
func NotifyOnChanges(ctx context.Context, db database.Client, query firestore.Query,
	where []filter.Where, fn func(firestore.DocumentChange, error) error, kinds ...firestore.DocumentChangeKind) {

	query = filter.Apply(query, where)
	events := db.NotifyOnChanges(ctx, query.Snapshots(ctx), kinds...)

	for e := range events {
		if e.Err != nil {
			fn(e.Change, e.Err)
			return
		}

		if err := fn(e.Change, nil); err != nil {
			return
		}
	}
}

// NonblockingWrite writes event on ch unless the timeout or the context expires first.
func NonblockingWrite[T any](ctx context.Context, timeout time.Duration, ch chan<- T, event T) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	select {
	case ch <- event:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
