package database

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Firestore rejects batches with more than 500 writes.
const maxBatchSize = 500

type snapEvent struct {
	snap *firestore.QuerySnapshot
	err  error
}

type snapCh chan snapEvent

type FirestoreClient struct {
	*firestore.Client
	writeTimeout time.Duration
}

func New(client *firestore.Client, writeTimeout time.Duration) FirestoreClient {
	if writeTimeout <= 0 {
		writeTimeout = time.Second * 120
	}
	return FirestoreClient{
		Client:       client,
		writeTimeout: writeTimeout,
	}
}

func isCtxErr(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	// The error is not always wrapped properly, so errors.Is() does not work
	return strings.Contains(err.Error(), "context canceled") || strings.Contains(err.Error(), "context deadline exceeded")
}

// NotifyOnChanges listens to the given SnapshotIterator and puts the changes of the requested kinds on the
// ChangeEvent channel. Listener errors are tolerated up to a cap, after which the last error is delivered
// and the channel is closed.
func (c FirestoreClient) NotifyOnChanges(ctx context.Context, it *firestore.QuerySnapshotIterator, kinds ...firestore.DocumentChangeKind) <-chan ChangeEvent {

	ch := make(chan ChangeEvent)
	errToleranceCap := 20
	errCnt := 0

	wanted := func(kind firestore.DocumentChangeKind) bool {
		for _, k := range kinds {
			if k == kind {
				return true
			}
		}
		return false
	}

	go func() {
		defer close(ch)

		eventCh := registerEventListener(ctx, it)
		for event := range eventCh {
			if event.err != nil {
				if isCtxErr(event.err) {
					return
				}

				log.Error().Err(event.err).Msg("error reading events")
				errCnt++
				if errCnt < errToleranceCap {
					continue
				}
				select {
				case ch <- ChangeEvent{Err: event.err}:
				case <-ctx.Done():
				}
				return
			}

			for _, change := range event.snap.Changes {
				if !wanted(change.Kind) || change.Doc == nil || !change.Doc.Exists() {
					continue
				}

				select {
				case ch <- ChangeEvent{Change: change}:
				case <-ctx.Done():
					return
				case <-time.After(time.Minute):
					log.Error().Str("doc", change.Doc.Ref.ID).Msg("timedout to deliver a change to the client")
				}
			}
		}
	}()

	return ch
}

// registerEventListener keeps the listener open until context is cancelled
func registerEventListener(ctx context.Context, it *firestore.QuerySnapshotIterator) <-chan snapEvent {

	threshold := 5
	retry := 0
	c := make(snapCh)
	go func() {
		defer close(c)
		defer it.Stop()

		for {
			snap, err := it.Next()
			if err == iterator.Done {
				return
			}

			select {
			case <-ctx.Done():
				return
			case c <- snapEvent{snap, err}:
				continue
			case <-time.After(time.Second * 10):
				log.Error().Msg("timedout to deliver a snapshot to the client")
				retry++
				if retry > threshold {
					return
				}
			}
		}
	}()

	return c
}

// IterDocs calls fn for every doc matched by query. Unlike a plain iteration it stops on the first
// read error, since a partially read catalog must not be served as a complete one.
func (c FirestoreClient) IterDocs(ctx context.Context, query firestore.Query, fn func(*firestore.DocumentSnapshot)) error {
	iter := query.Documents(ctx)
	defer iter.Stop()
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			return nil
		}
		if err != nil {
			return err
		}

		fn(doc)
	}
}

func (c FirestoreClient) GetDoc(ctx context.Context, docRef *firestore.DocumentRef) (*firestore.DocumentSnapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, c.writeTimeout)
	defer cancel()

	docSnapshot, err := docRef.Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, fmt.Errorf("%w: %s", ErrDocNotFound, docRef.Path)
	}
	if err != nil {
		return nil, err
	}

	if !docSnapshot.Exists() {
		return nil, fmt.Errorf("%w: %s", ErrDocNotFound, docRef.Path)
	}

	return docSnapshot, nil
}

func (c FirestoreClient) SetDoc(ctx context.Context, docRef *firestore.DocumentRef, data interface{}, opts ...firestore.SetOption) (_ *firestore.WriteResult, err error) {
	ctx, cancel := context.WithTimeout(ctx, c.writeTimeout)
	defer cancel()

	return docRef.Set(ctx, data, opts...)
}

func (c FirestoreClient) SetDocs(ctx context.Context, data []DataBatch) (_ []*firestore.WriteResult, err error) {
	ctx, cancel := context.WithTimeout(ctx, c.writeTimeout)
	defer cancel()

	results := make([]*firestore.WriteResult, 0, len(data))
	for start := 0; start < len(data); start += maxBatchSize {
		end := min(start+maxBatchSize, len(data))

		batch := c.Client.Batch()
		for _, item := range data[start:end] {
			batch.Set(item.DocRef, item.Data)
		}

		res, err := batch.Commit(ctx)
		if err != nil {
			return results, err
		}
		results = append(results, res...)
	}

	return results, nil
}

// DeleteColl deletes every doc of the collection. Sub-collections of those docs are left untouched.
func (c FirestoreClient) DeleteColl(ctx context.Context, collRef *firestore.CollectionRef) error {
	ctx, cancel := context.WithTimeout(ctx, c.writeTimeout)
	defer cancel()

	refs, err := collRef.DocumentRefs(ctx).GetAll()
	if err != nil {
		return fmt.Errorf("delete collection %s: %w", collRef.Path, err)
	}

	for start := 0; start < len(refs); start += maxBatchSize {
		end := min(start+maxBatchSize, len(refs))

		batch := c.Client.Batch()
		for _, ref := range refs[start:end] {
			batch.Delete(ref)
		}

		if _, err := batch.Commit(ctx); err != nil {
			return fmt.Errorf("delete collection %s: %w", collRef.Path, err)
		}
	}

	return nil
}
