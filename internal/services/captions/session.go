package captions

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/salecaption/internal/common"
	"github.com/ternarybob/salecaption/internal/models"
	"github.com/ternarybob/salecaption/internal/services/dates"
	"github.com/ternarybob/salecaption/internal/services/extraction"
)

var (
	// ErrBusy is returned when an operation of a conflicting class is already running.
	ErrBusy = errors.New("another operation is in progress")
	// ErrStoreNotFound is returned for store keys missing from the catalog.
	ErrStoreNotFound = errors.New("store not found")
	// ErrItemNotFound is returned for unknown item IDs.
	ErrItemNotFound = errors.New("item not found")
)

// Session is one user's batch: the analyzed items, the catalog snapshot they are
// captioned against, the tone and the per-store continuity map.
// Items handed out are copies; mutations go through Session methods.
type Session struct {
	id        string
	logger    arbor.ILogger
	analyzer  *extraction.Analyzer
	generator *Generator
	resolver  *dates.Resolver

	mu             sync.Mutex
	catalog        *models.Catalog
	defaultStore   string
	tone           models.Tone
	continuity     map[string]string
	items          []*models.AnalyzedItem
	analyzing      bool
	batchRunning   bool
	itemGenerating bool
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithTone sets the initial caption tone.
func WithTone(tone models.Tone) SessionOption {
	return func(s *Session) { s.tone = tone }
}

// WithDefaultStore sets the store assigned to items whose store is not detected.
// Unknown keys are ignored.
func WithDefaultStore(key string) SessionOption {
	return func(s *Session) {
		if _, ok := s.catalog.Store(key); ok {
			s.defaultStore = key
		}
	}
}

// WithResolver sets the resolver that supplies "today".
func WithResolver(resolver *dates.Resolver) SessionOption {
	return func(s *Session) { s.resolver = resolver }
}

// NewSession creates an empty session over a catalog snapshot.
func NewSession(catalog *models.Catalog, analyzer *extraction.Analyzer, generator *Generator, logger arbor.ILogger, opts ...SessionOption) *Session {
	if catalog == nil {
		catalog = &models.Catalog{}
	}
	s := &Session{
		id:           common.NewSessionID(),
		logger:       logger,
		analyzer:     analyzer,
		generator:    generator,
		resolver:     dates.NewResolver(),
		catalog:      catalog,
		defaultStore: catalog.DefaultStoreKey(),
		tone:         models.ToneSimple,
		continuity:   make(map[string]string),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.WithCorrelationId(s.id)
	return s
}

// ID returns the session identifier used for log correlation.
func (s *Session) ID() string {
	return s.id
}

// Tone returns the current caption tone.
func (s *Session) Tone() models.Tone {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tone
}

// SetTone changes the caption tone for later generations.
func (s *Session) SetTone(tone models.Tone) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tone = tone
}

// DefaultStoreKey returns the store assigned to undetected items.
func (s *Session) DefaultStoreKey() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.defaultStore
}

// SetDefaultStore changes the store assigned to undetected items.
func (s *Session) SetDefaultStore(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.catalog.Store(key); !ok {
		return fmt.Errorf("%w: %s", ErrStoreNotFound, key)
	}
	s.defaultStore = key
	return nil
}

// Catalog returns the catalog snapshot captions are built against.
func (s *Session) Catalog() *models.Catalog {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.catalog
}

// UpdateCatalog swaps in a new catalog snapshot, for example after adding a custom store.
func (s *Session) UpdateCatalog(catalog *models.Catalog) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.catalog = catalog
	if _, ok := catalog.Store(s.defaultStore); !ok {
		s.defaultStore = catalog.DefaultStoreKey()
	}
}

// Continuity returns the last caption generated for a store in this session.
func (s *Session) Continuity(storeKey string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.continuity[storeKey]
}

// Items returns copies of the session items in upload order.
func (s *Session) Items() []models.AnalyzedItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.AnalyzedItem, len(s.items))
	for i, item := range s.items {
		out[i] = *cloneItem(item)
	}
	return out
}

// Item returns a copy of one item.
func (s *Session) Item(id string) (models.AnalyzedItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.indexOf(id)
	if idx < 0 {
		return models.AnalyzedItem{}, false
	}
	return *cloneItem(s.items[idx]), true
}

// ReplaceFiles discards the current items and continuity, then analyzes uploads in
// order. Per-file failures become diagnostics on the item.
func (s *Session) ReplaceFiles(ctx context.Context, uploads []extraction.Upload) error {
	release, err := s.acquire(&s.analyzing, &s.analyzing, &s.batchRunning, &s.itemGenerating)
	if err != nil {
		return err
	}
	defer release()

	s.mu.Lock()
	s.items = nil
	s.continuity = make(map[string]string)
	catalog := s.catalog
	defaultStore := s.defaultStore
	s.mu.Unlock()

	today := s.resolver.Today()
	items := make([]*models.AnalyzedItem, 0, len(uploads))
	for idx, upload := range uploads {
		if err := ctx.Err(); err != nil {
			return err
		}
		item := models.NewAnalyzedItem(upload.Name, idx, defaultStore, today)
		s.analyzer.Analyze(ctx, item, upload, catalog)
		items = append(items, item)
	}

	s.mu.Lock()
	s.items = items
	s.mu.Unlock()

	s.logger.Info().Int("files", len(items)).Msg("File analysis complete")
	return nil
}

// EditItem applies a user edit. Store keys must exist in the catalog; dates are
// reordered (with a diagnostic) when the edit leaves start after end.
// Edits are refused while analysis or generation runs.
func (s *Session) EditItem(id string, edit models.ItemEdit) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.analyzing || s.batchRunning || s.itemGenerating {
		return ErrBusy
	}
	idx := s.indexOf(id)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrItemNotFound, id)
	}
	if edit.StoreKey != nil {
		if _, ok := s.catalog.Store(*edit.StoreKey); !ok {
			return fmt.Errorf("%w: %s", ErrStoreNotFound, *edit.StoreKey)
		}
	}
	item := s.items[idx]
	if edit.Apply(item) {
		item.Diagnostics.Add(models.StageAnalysis, models.DiagnosticDatesReordered, "")
	}
	return nil
}

// SelectAll marks every item for batch generation.
func (s *Session) SelectAll() {
	s.setSelected(true)
}

// DeselectAll clears every batch selection.
func (s *Session) DeselectAll() {
	s.setSelected(false)
}

func (s *Session) setSelected(selected bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, item := range s.items {
		item.Selected = selected
	}
}

// RemoveFile drops one item. Continuity references are cleared because they may
// quote the removed item's caption.
func (s *Session) RemoveFile(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.analyzing || s.batchRunning || s.itemGenerating {
		return ErrBusy
	}
	idx := s.indexOf(id)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrItemNotFound, id)
	}
	s.items = append(s.items[:idx], s.items[idx+1:]...)
	s.continuity = make(map[string]string)
	return nil
}

// Reset clears all items and continuity references.
func (s *Session) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.analyzing || s.batchRunning || s.itemGenerating {
		return ErrBusy
	}
	s.items = nil
	s.continuity = make(map[string]string)
	return nil
}

// GenerateItem (re)generates the caption of one item.
func (s *Session) GenerateItem(ctx context.Context, id string) (models.AnalyzedItem, error) {
	release, err := s.acquire(&s.itemGenerating, &s.analyzing, &s.batchRunning, &s.itemGenerating)
	if err != nil {
		return models.AnalyzedItem{}, err
	}
	defer release()

	s.mu.Lock()
	idx := s.indexOf(id)
	if idx < 0 {
		s.mu.Unlock()
		return models.AnalyzedItem{}, fmt.Errorf("%w: %s", ErrItemNotFound, id)
	}
	work := cloneItem(s.items[idx])
	rc := s.runContext()
	s.mu.Unlock()

	s.generator.GenerateItem(ctx, rc, work)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.commit(rc, []*models.AnalyzedItem{work})
	if idx := s.indexOf(id); idx >= 0 {
		return *cloneItem(s.items[idx]), nil
	}
	return *cloneItem(work), nil
}

// GenerateBatch generates captions for every selected item.
func (s *Session) GenerateBatch(ctx context.Context) (BatchResult, error) {
	release, err := s.acquire(&s.batchRunning, &s.analyzing, &s.batchRunning, &s.itemGenerating)
	if err != nil {
		return BatchResult{}, err
	}
	defer release()

	s.mu.Lock()
	work := make([]*models.AnalyzedItem, 0, len(s.items))
	for _, item := range s.items {
		if item.Selected {
			work = append(work, cloneItem(item))
		}
	}
	rc := s.runContext()
	s.mu.Unlock()

	result, err := s.generator.GenerateBatch(ctx, rc, work)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.commit(rc, work)
	return result, err
}

// runContext snapshots the state a generation pass needs. Callers hold mu.
func (s *Session) runContext() *RunContext {
	continuity := make(map[string]string, len(s.continuity))
	for k, v := range s.continuity {
		continuity[k] = v
	}
	return &RunContext{
		Catalog:    s.catalog,
		Continuity: continuity,
		Tone:       s.tone,
		Day:        s.resolver.Today(),
	}
}

// commit copies the generation outcome of each work item onto the live item and
// stores the updated continuity map. Selection changes made meanwhile are kept.
// Callers hold mu.
func (s *Session) commit(rc *RunContext, work []*models.AnalyzedItem) {
	for _, w := range work {
		idx := s.indexOf(w.ID)
		if idx < 0 {
			continue
		}
		item := s.items[idx]
		item.Caption = w.Caption
		item.State = w.State
		item.Diagnostics.ResetStage(models.StageGeneration)
		for _, d := range w.Diagnostics {
			if d.Stage == models.StageGeneration {
				item.Diagnostics = append(item.Diagnostics, d)
			}
		}
	}
	s.continuity = rc.Continuity
}

// acquire sets flag when none of the conflicting flags is set.
func (s *Session) acquire(flag *bool, conflicts ...*bool) (func(), error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range conflicts {
		if *c {
			return nil, ErrBusy
		}
	}
	*flag = true
	return func() {
		s.mu.Lock()
		*flag = false
		s.mu.Unlock()
	}, nil
}

func (s *Session) indexOf(id string) int {
	for i, item := range s.items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

func cloneItem(item *models.AnalyzedItem) *models.AnalyzedItem {
	c := *item
	c.Diagnostics = append(models.Diagnostics(nil), item.Diagnostics...)
	return &c
}
