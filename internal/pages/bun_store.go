package pages

import (
	"context"
	"fmt"
	"time"

	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-composer/internal/identity"
)

// BunStore persists page documents in a SQL table through bun.
type BunStore struct {
	db   *bun.DB
	repo repository.Repository[*PageDocumentRecord]
	now  func() time.Time
}

var _ BatchStore = (*BunStore)(nil)

// NewBunStore constructs an uncached bun-backed store.
func NewBunStore(db *bun.DB) *BunStore {
	return NewBunStoreWithCache(db, nil, nil)
}

// NewBunStoreWithCache constructs a bun-backed store whose reads go through
// go-repository-cache when both cache arguments are set.
func NewBunStoreWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunStore {
	return &BunStore{
		db:   db,
		repo: wrapWithCache(NewPageDocumentRepository(db), cacheService, keySerializer),
		now:  time.Now,
	}
}

// EnsureSchema creates the documents table when missing.
func (s *BunStore) EnsureSchema(ctx context.Context) error {
	if s.db == nil {
		return fmt.Errorf("page store: database not configured")
	}
	_, err := s.db.NewCreateTable().Model((*PageDocumentRecord)(nil)).IfNotExists().Exec(ctx)
	return err
}

func (s *BunStore) Load(ctx context.Context, tenantID, slug string) (*PageDocument, error) {
	id := identity.PageDocumentUUID(tenantID, slug)
	record, err := s.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, tenantID, slug)
	}
	return record.document(), nil
}

func (s *BunStore) Save(ctx context.Context, doc *PageDocument) error {
	if doc == nil {
		return ErrDocumentRequired
	}
	return s.save(ctx, s.db, doc)
}

// SaveAll writes every document inside one transaction.
func (s *BunStore) SaveAll(ctx context.Context, docs ...*PageDocument) error {
	for _, doc := range docs {
		if doc == nil {
			return ErrDocumentRequired
		}
	}
	if s.db == nil {
		return fmt.Errorf("page store: database not configured")
	}
	return s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		for _, doc := range docs {
			if err := s.save(ctx, tx, doc); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *BunStore) save(ctx context.Context, db bun.IDB, doc *PageDocument) error {
	id := identity.PageDocumentUUID(doc.TenantID, doc.Slug)
	record := recordFromDocument(id, doc)
	if record.UpdatedAt.IsZero() {
		record.UpdatedAt = s.now().UTC()
	}

	_, err := s.repo.GetByIDTx(ctx, db, id.String())
	switch {
	case err == nil:
		_, err = s.repo.UpdateTx(ctx, db, record,
			repository.UpdateByID(id.String()),
			repository.UpdateColumns("version", "definition", "variants", "updated_at"),
		)
	case goerrors.IsCategory(err, repository.CategoryDatabaseNotFound):
		record.CreatedAt = record.UpdatedAt
		_, err = s.repo.CreateTx(ctx, db, record)
	}
	if err != nil {
		return fmt.Errorf("page store: save %s/%s: %w", doc.TenantID, doc.Slug, err)
	}
	return nil
}

func mapRepositoryError(err error, tenantID, slug string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return notFound(tenantID, slug)
	}
	return fmt.Errorf("page store: load %s/%s: %w", tenantID, slug, err)
}

func wrapWithCache[T any](base repository.Repository[T], cacheService cache.CacheService, keySerializer cache.KeySerializer) repository.Repository[T] {
	if cacheService == nil || keySerializer == nil {
		return base
	}
	return repositorycache.New(base, cacheService, keySerializer)
}
