package badger

import (
	"context"
	"errors"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/arbor/core"
	"github.com/poiesic/arbor/storage"
)

// ForestRepository implements storage.ForestRepository for BadgerDB.
type ForestRepository struct {
	backend *Backend
	idSeq   *badger.Sequence
}

var _ storage.ForestRepository = (*ForestRepository)(nil)

// NewForestRepository creates a new ForestRepository.
func NewForestRepository(backend *Backend) (*ForestRepository, error) {
	idSeq, err := backend.GetSequence(forestIDSeq)
	if err != nil {
		return nil, err
	}

	return &ForestRepository{
		backend: backend,
		idSeq:   idSeq,
	}, nil
}

// Close releases the ID sequence.
func (r *ForestRepository) Close() error {
	return r.idSeq.Release()
}

// WithTransaction delegates to the backend.
func (r *ForestRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// AppendForest stores a forest for the user.
func (r *ForestRepository) AppendForest(ctx context.Context, userID string, forest *core.Forest) (core.ID, error) {
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

		if forest.CreatedAt.IsZero() {
			forest.CreatedAt = time.Now().UTC()
		}

		value, err := storage.MarshalForest(forest)
		if err != nil {
			return err
		}
		if err := tx.Set(makeForestKey(userID, id), value); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
	if err != nil {
		return 0, err
	}

	return id, nil
}

// ForestsForUser retrieves all forests for the user in insertion order.
func (r *ForestRepository) ForestsForUser(ctx context.Context, userID string) ([]*core.Forest, error) {
	if userID == "" {
		return nil, storage.ErrInvalidUser
	}

	forests := []*core.Forest{}
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makeUserForestPrefix(userID)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			err := iter.Item().Value(func(val []byte) error {
				forest, err := storage.UnmarshalForest(val)
				if err != nil {
					return err
				}
				forests = append(forests, forest)
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

	return forests, nil
}

// GetForest retrieves a single forest by ID.
func (r *ForestRepository) GetForest(ctx context.Context, userID string, id core.ID) (*core.Forest, error) {
	if userID == "" {
		return nil, storage.ErrInvalidUser
	}

	var forest *core.Forest
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeForestKey(userID, id))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return storage.ErrNotFound
			}
			return err
		}
		return item.Value(func(val []byte) error {
			forest, err = storage.UnmarshalForest(val)
			return err
		})
	}, false)
	if err != nil {
		return nil, err
	}

	return forest, nil
}

// nextID draws the next non-zero ID from the sequence.
func (r *ForestRepository) nextID() (core.ID, error) {
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
