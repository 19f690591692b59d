package editor

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/goliatone/go-composer/blocks"
	"github.com/goliatone/go-composer/internal/collision"
	"github.com/goliatone/go-composer/internal/dnd"
	"github.com/goliatone/go-composer/internal/geometry"
	"github.com/goliatone/go-composer/internal/layout"
	"github.com/goliatone/go-composer/internal/logging"
	"github.com/goliatone/go-composer/internal/movement"
	"github.com/goliatone/go-composer/internal/pages"
	"github.com/goliatone/go-composer/internal/variants"
	"github.com/goliatone/go-composer/pkg/interfaces"
)

// Option configures an Editor.
type Option func(*Editor)

// WithLogger sets the editor logger. The drag plugin logs through the same
// provider under the dnd module.
func WithLogger(provider interfaces.LoggerProvider) Option {
	return func(e *Editor) {
		if provider != nil {
			e.provider = provider
		}
	}
}

// WithClock overrides the clock used for drag timing.
func WithClock(clock func() time.Time) Option {
	return func(e *Editor) {
		if clock != nil {
			e.now = clock
		}
	}
}

// WithIDGenerator overrides the generator used by AddComponent.
func WithIDGenerator(ids pages.IDGenerator) Option {
	return func(e *Editor) {
		if ids != nil {
			e.ids = ids
		}
	}
}

// WithDragAxis sets the axis used to derive drag direction.
func WithDragAxis(axis geometry.Axis) Option {
	return func(e *Editor) { e.axis = axis }
}

// WithImpactOffset sets the midpoint hysteresis fraction.
func WithImpactOffset(fraction float64) Option {
	return func(e *Editor) { e.impactOffset = fraction }
}

// WithStrictDirections makes unknown drag directions deny impact.
func WithStrictDirections(strict bool) Option {
	return func(e *Editor) { e.strict = strict }
}

// WithZoneChange registers a callback for zone transitions during a drag.
// It runs while the editor is locked and must not call back into it.
func WithZoneChange(fn dnd.ChangeFunc) Option {
	return func(e *Editor) { e.onZoneChange = fn }
}

// WithCanvas sets the element drop targets are mounted in. Pointer samples
// are normalized against its scroll and scale, matching the shapes measured
// by RegisterDropTarget.
func WithCanvas(el geometry.Element) Option {
	return func(e *Editor) { e.canvas = el }
}

// WithoutProvisioning makes Open fail with pages.ErrPageNotFound instead of
// seeding a default page.
func WithoutProvisioning() Option {
	return func(e *Editor) { e.provision = false }
}

// Editor is one tenant's editing session for one page. It owns the ordered
// component lists, variant state and drag session. All methods are safe for
// concurrent use; Save does not block other calls while the store works.
type Editor struct {
	mu     sync.Mutex
	saveMu sync.Mutex

	service  pages.Service
	registry *variants.Registry
	tenantID string
	slug     string

	zones    layout.Zones
	payloads *variants.Payloads
	staging  *stagingArea

	targets *collision.Registry
	tracker *movement.Tracker
	plugin  *dnd.Plugin
	active  *dnd.Session
	canvas  geometry.Element

	version  int
	revision uint64
	saved    uint64

	ids          pages.IDGenerator
	now          func() time.Time
	axis         geometry.Axis
	impactOffset float64
	strict       bool
	onZoneChange dnd.ChangeFunc
	provision    bool
	provider     interfaces.LoggerProvider
	logger       interfaces.Logger
}

// Open loads the page, provisioning it when missing, and builds a session
// around it.
func Open(ctx context.Context, service pages.Service, registry *variants.Registry, tenantID, slug string, opts ...Option) (*Editor, error) {
	if service == nil {
		return nil, ErrServiceRequired
	}
	if registry == nil {
		builtin, err := variants.NewBuiltinRegistry()
		if err != nil {
			return nil, err
		}
		registry = builtin
	}

	e := &Editor{
		service:      service,
		registry:     registry,
		staging:      newStagingArea(),
		targets:      collision.NewRegistry(),
		ids:          pages.NewSyntheticIDs(),
		now:          time.Now,
		axis:         geometry.AxisY,
		impactOffset: collision.DefaultImpactOffset,
		provision:    true,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.logger = logging.WithPageContext(logging.EditorLogger(e.provider), tenantID, slug)
	e.tracker = movement.NewTracker(movement.WithClock(e.now))
	e.plugin = dnd.NewPlugin(e.targets, e.tracker,
		dnd.WithAxis(e.axis),
		dnd.WithImpactOffset(e.impactOffset),
		dnd.WithStrictDirections(e.strict),
		dnd.WithOnChange(e.onZoneChange),
		dnd.WithLogger(logging.DnDLogger(e.provider)),
	)
	e.payloads = variants.NewPayloads(registry, e.staging)

	doc, err := service.LoadDocument(ctx, tenantID, slug)
	if errors.Is(err, pages.ErrPageNotFound) && e.provision {
		doc, err = service.Provision(ctx, tenantID, slug)
	}
	if err != nil {
		return nil, err
	}

	e.tenantID = doc.TenantID
	e.slug = doc.Slug
	e.version = doc.Version
	e.payloads.Load(doc.Variants)

	list := pages.ConvertObjectToArray(doc.Definition, e.logger)
	e.zones = layout.SplitByZone(list)
	for _, item := range list {
		if _, err := e.ensureFor(item); err != nil {
			e.logger.Warn("editor.variant_skipped", "id", item.ID, "type", item.Type, "error", err)
		}
	}
	e.logger.Info("editor.opened", "version", e.version, "components", len(list))
	return e, nil
}

// TenantID returns the tenant that owns the page.
func (e *Editor) TenantID() string { return e.tenantID }

// Slug returns the page slug.
func (e *Editor) Slug() string { return e.slug }

// Targets returns the drop-target registry the host keeps in sync with its
// mounted zones.
func (e *Editor) Targets() *collision.Registry { return e.targets }

// SetCanvas replaces the element pointer samples are normalized against.
func (e *Editor) SetCanvas(el geometry.Element) {
	e.mu.Lock()
	e.canvas = el
	e.mu.Unlock()
}

// RegisterDropTarget mounts a drop zone measured from el. The id must be
// "root", a plain zone name or an "area:zone" pair.
func (e *Editor) RegisterDropTarget(id string, el geometry.Element, depth int) error {
	if err := dnd.ValidateZoneID(id); err != nil {
		return err
	}
	return e.targets.RegisterElement(strings.TrimSpace(id), el, depth)
}

// UpdateDropTarget re-measures a mounted drop zone after layout changes.
func (e *Editor) UpdateDropTarget(id string, el geometry.Element) error {
	return e.targets.UpdateElement(strings.TrimSpace(id), el)
}

// UnregisterDropTarget unmounts a drop zone.
func (e *Editor) UnregisterDropTarget(id string) {
	e.targets.Unregister(strings.TrimSpace(id))
}

// Registry returns the block type registry of the session.
func (e *Editor) Registry() *variants.Registry { return e.registry }

// Version returns the document version last loaded or saved.
func (e *Editor) Version() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.version
}

// Dirty reports whether there are edits not yet saved.
func (e *Editor) Dirty() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.revision != e.saved
}

// Components returns every placed component, root zone first.
func (e *Editor) Components() []blocks.ComponentInstance {
	e.mu.Lock()
	defer e.mu.Unlock()
	return layout.Flatten(e.zones)
}

// Zone returns the ordered components of one zone.
func (e *Editor) Zone(id string) []blocks.ComponentInstance {
	e.mu.Lock()
	defer e.mu.Unlock()
	return blocks.CloneList(e.zones[zoneKey(id)])
}

// ZoneIDs returns the ids of zones holding components.
func (e *Editor) ZoneIDs() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.zones.Keys()
}

func (e *Editor) touch() {
	e.revision++
}

func (e *Editor) locate(id string) (string, int, bool) {
	for zone, list := range e.zones {
		if idx := layout.IndexOf(list, id); idx >= 0 {
			return zone, idx, true
		}
	}
	return "", -1, false
}

func zoneKey(id string) string {
	if trimmed := strings.TrimSpace(id); trimmed != "" {
		return trimmed
	}
	return blocks.RootZone
}
