package pages

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-slug"

	"github.com/goliatone/go-composer/blocks"
	"github.com/goliatone/go-composer/internal/layout"
	"github.com/goliatone/go-composer/internal/logging"
	"github.com/goliatone/go-composer/internal/variants"
	"github.com/goliatone/go-composer/pkg/interfaces"
)

// TextCodeStoreUnavailable tags retryable store failures.
const TextCodeStoreUnavailable = "PAGE_STORE_UNAVAILABLE"

// DefaultPageTypes are placed, in order, on a newly provisioned page.
var DefaultPageTypes = []string{variants.TypeHeader, variants.TypeHero, variants.TypeFooter}

// ServiceOption configures the page service.
type ServiceOption func(*service)

// WithClock overrides the clock used for UpdatedAt.
func WithClock(clock func() time.Time) ServiceOption {
	return func(s *service) {
		if clock != nil {
			s.now = clock
		}
	}
}

// WithIDGenerator overrides the generator for id-less instances.
func WithIDGenerator(ids IDGenerator) ServiceOption {
	return func(s *service) {
		if ids != nil {
			s.ids = ids
		}
	}
}

// WithLogger sets the service logger.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithBlockRegistry sets the registry used to find global block types and
// provisioning defaults.
func WithBlockRegistry(registry *variants.Registry) ServiceOption {
	return func(s *service) {
		if registry != nil {
			s.registry = registry
		}
	}
}

type service struct {
	store    Store
	registry *variants.Registry
	ids      IDGenerator
	now      func() time.Time
	logger   interfaces.Logger
}

var _ Service = (*service)(nil)

// NewService returns the page service over store.
func NewService(store Store, opts ...ServiceOption) Service {
	s := &service{
		store:  store,
		ids:    NewSyntheticIDs(),
		now:    time.Now,
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.registry == nil {
		registry, err := variants.NewBuiltinRegistry()
		if err != nil {
			panic(err)
		}
		s.registry = registry
	}
	return s
}

func (s *service) GetPageDefinition(ctx context.Context, tenantID, slug string) ([]blocks.ComponentInstance, error) {
	doc, err := s.LoadDocument(ctx, tenantID, slug)
	if err != nil {
		return nil, err
	}
	list := ConvertObjectToArray(doc.Definition, logging.WithPageContext(s.logger, doc.TenantID, doc.Slug))
	return layout.Flatten(layout.SplitByZone(list)), nil
}

func (s *service) LoadDocument(ctx context.Context, tenantID, slug string) (*PageDocument, error) {
	tenantID, slug, err := normalizeKey(tenantID, slug)
	if err != nil {
		return nil, err
	}

	doc, err := s.store.Load(ctx, tenantID, slug)
	if err != nil {
		return nil, s.storeError("load", tenantID, slug, err)
	}
	if doc.Definition == nil {
		doc.Definition = PageDefinition{}
	}

	globals, err := s.loadGlobals(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	doc.Variants = mergeVariants(doc.Variants, globals)
	return doc, nil
}

func (s *service) SavePageDefinition(ctx context.Context, req SavePageRequest) (*PageDocument, error) {
	tenantID, slug, err := normalizeKey(req.TenantID, req.Slug)
	if err != nil {
		return nil, err
	}
	logger := logging.WithPageContext(s.logger, tenantID, slug)

	version := 0
	if existing, err := s.store.Load(ctx, tenantID, slug); err == nil {
		version = existing.Version
	} else if !errors.Is(err, ErrPageNotFound) {
		return nil, s.storeError("load", tenantID, slug, err)
	}

	now := s.now().UTC()
	pageVariants, globalVariants := s.partitionVariants(req.Variants)

	list := layout.Flatten(layout.SplitByZone(req.Components))
	doc := &PageDocument{
		TenantID:   tenantID,
		Slug:       slug,
		Version:    version + 1,
		Definition: ConvertArrayToObject(list, s.ids),
		Variants:   pageVariants,
		UpdatedAt:  now,
	}
	docs := []*PageDocument{doc}
	if len(globalVariants) > 0 {
		globalsDoc, err := s.globalsDocument(ctx, tenantID, globalVariants, now)
		if err != nil {
			return nil, err
		}
		docs = append(docs, globalsDoc)
	}
	if err := s.saveDocuments(ctx, docs); err != nil {
		return nil, err
	}
	logger.Info("pages.saved", "version", doc.Version, "components", len(doc.Definition))

	out := doc.Clone()
	out.Variants = mergeVariants(out.Variants, globalVariants)
	return out, nil
}

func (s *service) Provision(ctx context.Context, tenantID, slug string) (*PageDocument, error) {
	doc, err := s.LoadDocument(ctx, tenantID, slug)
	if err == nil {
		return doc, nil
	}
	if !errors.Is(err, ErrPageNotFound) {
		return nil, err
	}

	components := make([]blocks.ComponentInstance, 0, len(DefaultPageTypes))
	payloads := VariantPayloads{}
	for idx, blockType := range DefaultPageTypes {
		descriptor, err := s.registry.Lookup(blockType)
		if err != nil {
			return nil, err
		}
		components = append(components, blocks.ComponentInstance{
			ID:        s.ids.NewID(descriptor.Type),
			Type:      descriptor.Type,
			VariantID: descriptor.DefaultVariant,
			Name:      descriptor.Name,
			Zone:      blocks.RootZone,
			Position:  idx,
		})
		if payloads[descriptor.Type] == nil {
			payloads[descriptor.Type] = map[string]blocks.Data{}
		}
		payloads[descriptor.Type][descriptor.DefaultVariant] = descriptor.DefaultPayload()
	}

	s.logger.Info("pages.provisioning", "tenant_id", tenantID, "slug", slug)
	return s.SavePageDefinition(ctx, SavePageRequest{
		TenantID:   tenantID,
		Slug:       slug,
		Components: components,
		Variants:   s.keepExistingGlobals(ctx, tenantID, payloads),
	})
}

// keepExistingGlobals drops default global payloads a tenant already has so
// provisioning a second page never resets the shared header or footer.
func (s *service) keepExistingGlobals(ctx context.Context, tenantID string, payloads VariantPayloads) VariantPayloads {
	globals, err := s.loadGlobals(ctx, tenantID)
	if err != nil || len(globals) == 0 {
		return payloads
	}
	for blockType, byVariant := range globals {
		for variantID := range byVariant {
			delete(payloads[blockType], variantID)
		}
		if len(payloads[blockType]) == 0 {
			delete(payloads, blockType)
		}
	}
	return payloads
}

func (s *service) loadGlobals(ctx context.Context, tenantID string) (VariantPayloads, error) {
	doc, err := s.store.Load(ctx, tenantID, GlobalsSlug)
	if err != nil {
		if errors.Is(err, ErrPageNotFound) {
			return nil, nil
		}
		return nil, s.storeError("load", tenantID, GlobalsSlug, err)
	}
	return doc.Variants, nil
}

func (s *service) globalsDocument(ctx context.Context, tenantID string, globals VariantPayloads, now time.Time) (*PageDocument, error) {
	version := 0
	existing, err := s.store.Load(ctx, tenantID, GlobalsSlug)
	switch {
	case err == nil:
		version = existing.Version
		globals = mergeVariants(existing.Variants, globals)
	case !errors.Is(err, ErrPageNotFound):
		return nil, s.storeError("load", tenantID, GlobalsSlug, err)
	}
	return &PageDocument{
		TenantID:   tenantID,
		Slug:       GlobalsSlug,
		Version:    version + 1,
		Definition: PageDefinition{},
		Variants:   globals,
		UpdatedAt:  now,
	}, nil
}

// saveDocuments writes the page document first. Batch stores write every
// document in one unit; other stores only write globals once the page is
// stored.
func (s *service) saveDocuments(ctx context.Context, docs []*PageDocument) error {
	page := docs[0]
	if batch, ok := s.store.(BatchStore); ok && len(docs) > 1 {
		if err := batch.SaveAll(ctx, docs...); err != nil {
			return s.storeError("save", page.TenantID, page.Slug, err)
		}
		return nil
	}
	for _, doc := range docs {
		if err := s.store.Save(ctx, doc); err != nil {
			return s.storeError("save", doc.TenantID, doc.Slug, err)
		}
	}
	return nil
}

func (s *service) partitionVariants(all VariantPayloads) (page VariantPayloads, global VariantPayloads) {
	page = VariantPayloads{}
	global = VariantPayloads{}
	for blockType, byVariant := range all.Clone() {
		descriptor, err := s.registry.Lookup(blockType)
		if err == nil && descriptor.Global {
			global[descriptor.Type] = byVariant
			continue
		}
		page[blockType] = byVariant
	}
	return page, global
}

func (s *service) storeError(op, tenantID, slug string, err error) error {
	if errors.Is(err, ErrPageNotFound) {
		return err
	}
	s.logger.Error("pages.store_failed", "op", op, "tenant_id", tenantID, "slug", slug, "error", err)
	wrapped := goerrors.WrapRetryable(fmt.Errorf("%w: %w", ErrStoreUnavailable, err), goerrors.CategoryExternal, "page store "+op+" failed").
		WithTextCode(TextCodeStoreUnavailable)
	// Wrap keeps the category of errors that already carry one.
	wrapped.Category = goerrors.CategoryExternal
	return wrapped
}

func mergeVariants(base, overlay VariantPayloads) VariantPayloads {
	out := base.Clone()
	if out == nil {
		out = VariantPayloads{}
	}
	for blockType, byVariant := range overlay {
		if out[blockType] == nil {
			out[blockType] = map[string]blocks.Data{}
		}
		for id, payload := range byVariant {
			out[blockType][id] = blocks.CloneData(payload)
		}
	}
	return out
}

func normalizeKey(tenantID, value string) (string, string, error) {
	tenantID = strings.TrimSpace(tenantID)
	if tenantID == "" {
		return "", "", ErrTenantRequired
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return "", "", ErrSlugRequired
	}
	if value == GlobalsSlug {
		return "", "", ErrSlugInvalid
	}
	normalized, err := slug.Default().Normalize(value)
	if err != nil || normalized != strings.ToLower(value) {
		return "", "", ErrSlugInvalid
	}
	return tenantID, normalized, nil
}
