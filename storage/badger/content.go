package badger

import (
	"context"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/arbor/core"
	"github.com/poiesic/arbor/storage"
)

// ContentRepository implements storage.ContentRepository for BadgerDB.
type ContentRepository struct {
	backend *Backend
	idSeq   *badger.Sequence
}

var _ storage.ContentRepository = (*ContentRepository)(nil)

// NewContentRepository creates a new ContentRepository.
func NewContentRepository(backend *Backend) (*ContentRepository, error) {
	idSeq, err := backend.GetSequence(contentIDSeq)
	if err != nil {
		return nil, err
	}

	return &ContentRepository{
		backend: backend,
		idSeq:   idSeq,
	}, nil
}

// Close releases the ID sequence.
func (r *ContentRepository) Close() error {
	return r.idSeq.Release()
}

// WithTransaction delegates to the backend.
func (r *ContentRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// AppendContent stores a consolidated record for the user.
func (r *ContentRepository) AppendContent(ctx context.Context, userID string, content *core.ConsolidatedContent) (core.ID, error) {
	if userID == "" {
		return 0, storage.ErrInvalidUser
	}

	var id core.ID
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		nextID, err := r.nextID()
		if err != nil {
			return err
		}
		id = nextID

		if content.CreatedAt.IsZero() {
			content.CreatedAt = time.Now().UTC()
		}

		value, err := storage.MarshalContent(content)
		if err != nil {
			return err
		}
		if err := tx.Set(makeContentKey(userID, id), value); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
	if err != nil {
		return 0, err
	}

	return id, nil
}

// ContentForUser retrieves all consolidated records for the user in
// insertion order.
func (r *ContentRepository) ContentForUser(ctx context.Context, userID string) ([]*core.ConsolidatedContent, error) {
	if userID == "" {
		return nil, storage.ErrInvalidUser
	}

	records := []*core.ConsolidatedContent{}
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makeUserContentPrefix(userID)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			err := iter.Item().Value(func(val []byte) error {
				content, err := storage.UnmarshalContent(val)
				if err != nil {
					return err
				}
				records = append(records, content)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	return records, nil
}

// nextID draws the next non-zero ID from the sequence.
func (r *ContentRepository) nextID() (core.ID, error) {
	nextID, err := r.idSeq.Next()
	if err != nil {
		return 0, err
	}
	// BadgerDB sequences can return 0 on first call, so we skip it
	if nextID == 0 {
		nextID, err = r.idSeq.Next()
		if err != nil {
			return 0, err
		}
	}
	return core.ID(nextID), nil
}
