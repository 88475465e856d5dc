package catalog

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/glancehq/glance/internal/config"
	"github.com/glancehq/glance/internal/embedding"
	"github.com/glancehq/glance/internal/imaging"
	"github.com/glancehq/glance/internal/keyword"
	"github.com/glancehq/glance/internal/models"
	"github.com/glancehq/glance/internal/storage"
	"github.com/glancehq/glance/internal/vecmath"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// State describes the service lifecycle for the status endpoint.
type State string

const (
	// StateUninitialized means EnsureFresh has not run yet.
	StateUninitialized State = "uninitialized"
	// StateValidating means the first consistency check is in progress.
	StateValidating State = "validating"
	// StateReady means a snapshot is built and being served.
	StateReady State = "ready"
	// StateRebuilding means the catalog is being re-embedded. A
	// previously built snapshot, if any, keeps serving searches.
	StateRebuilding State = "rebuilding"
)

// Service keeps the vector index consistent with the catalog image
// directory and answers searches against it. Structural mutations
// (add, remove, rebuild) serialize on an internal lock; searches and
// listings run concurrently against the served snapshot.
type Service struct {
	cfg       *config.Config
	embedder  embedding.Embedder
	store     storage.ProductStore // optional; mirrors product metadata
	keywords  keyword.KeywordIndex // optional; powers the listing filter
	augmenter *imaging.Augmenter
	logger    *zap.Logger // optional; when set, logs rebuild and skip events

	mu       sync.Mutex // serializes structural mutations
	manifest *Manifest  // guarded by mu
	index    atomic.Pointer[Index]
	state    atomic.Value // State
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithLogger sets a logger for rebuild progress and skip warnings.
func WithLogger(l *zap.Logger) ServiceOption {
	return func(s *Service) { s.logger = l }
}

// WithStore sets a product metadata store. Names, categories, and
// prices recorded there survive full index rebuilds.
func WithStore(st storage.ProductStore) ServiceOption {
	return func(s *Service) { s.store = st }
}

// WithKeywordIndex sets a keyword index for the catalog listing's
// name/category filter.
func WithKeywordIndex(k keyword.KeywordIndex) ServiceOption {
	return func(s *Service) { s.keywords = k }
}

// NewService creates a catalog service over the given embedder and
// config. The service starts uninitialized; call EnsureFresh to load
// or build the index.
func NewService(cfg *config.Config, embedder embedding.Embedder, opts ...ServiceOption) *Service {
	s := &Service{
		cfg:      cfg,
		embedder: embedder,
		augmenter: imaging.NewAugmenter(imaging.AugmentConfig{
			HorizontalFlip: cfg.Search.HorizontalFlipOrDefault(),
			CenterCrop:     cfg.Search.CenterCropOrDefault(),
			CropRatio:      cfg.Search.CropRatio,
		}),
	}
	s.state.Store(StateUninitialized)
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns the current lifecycle state.
func (s *Service) State() State {
	return s.state.Load().(State)
}

func (s *Service) setState(st State) {
	s.state.Store(st)
}

// EnsureFresh checks the catalog directory against the manifest and
// rebuilds the index when they disagree. When they agree, the call is
// cheap and makes no embedder calls. The first call also adopts a
// previously persisted snapshot if one exists.
func (s *Service) EnsureFresh(ctx context.Context) error {
	return s.refresh(ctx, false)
}

// Rebuild re-embeds the whole catalog regardless of manifest
// consistency.
func (s *Service) Rebuild(ctx context.Context) error {
	return s.refresh(ctx, true)
}

func (s *Service) refresh(ctx context.Context, force bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.State() == StateUninitialized {
		s.setState(StateValidating)
	}

	if err := os.MkdirAll(s.cfg.Catalog.Dir, 0755); err != nil {
		s.restoreServingState()
		return fmt.Errorf("create catalog dir: %w", err)
	}
	files, err := scanCatalog(s.cfg.Catalog.Dir)
	if err != nil {
		s.restoreServingState()
		return err
	}

	if s.index.Load() == nil {
		s.loadPersisted()
	}

	if idx := s.index.Load(); idx != nil && s.manifest != nil && !force {
		reason := s.manifest.Diff(files, s.embedder.ModelID(), s.embedder.Dimensions())
		if reason == "" {
			s.setState(StateReady)
			return nil
		}
		if s.logger != nil {
			s.logger.Info("catalog drift detected", zap.String("reason", reason))
		}
	}

	s.setState(StateRebuilding)
	start := time.Now()
	idx, man, err := s.rebuild(ctx, files)
	if err != nil {
		s.restoreServingState()
		return fmt.Errorf("rebuild catalog: %w", err)
	}
	if err := idx.Save(s.cfg.Storage.SnapshotPath); err != nil {
		s.restoreServingState()
		return fmt.Errorf("save snapshot: %w", err)
	}
	if err := man.Save(s.cfg.Storage.ManifestPath); err != nil {
		s.restoreServingState()
		return fmt.Errorf("save manifest: %w", err)
	}
	s.index.Store(idx)
	s.manifest = man
	s.setState(StateReady)
	if s.logger != nil {
		s.logger.Info("catalog rebuilt",
			zap.Int("products", idx.Size()),
			zap.Int("files", len(files)),
			zap.Duration("took", time.Since(start)))
	}
	return nil
}

// restoreServingState returns the state to Ready when a prior snapshot
// is still being served. Without one the state is left where the
// failure happened so the status endpoint reports it.
func (s *Service) restoreServingState() {
	if s.index.Load() != nil {
		s.setState(StateReady)
	}
}

// loadPersisted adopts a previously saved snapshot and manifest pair.
// A missing, unreadable, or mismatched pair is treated as absent; the
// next rebuild overwrites whatever is on disk.
func (s *Service) loadPersisted() {
	idx, err := LoadIndex(s.cfg.Storage.SnapshotPath)
	if err != nil {
		if s.logger != nil {
			s.logger.Warn("discarding unreadable snapshot", zap.Error(err))
		}
		return
	}
	if idx == nil {
		return
	}
	if idx.Dimensions() != s.embedder.Dimensions() {
		if s.logger != nil {
			s.logger.Warn("discarding snapshot with wrong dimension",
				zap.Int("snapshot", idx.Dimensions()),
				zap.Int("model", s.embedder.Dimensions()))
		}
		return
	}
	man, err := LoadManifest(s.cfg.Storage.ManifestPath)
	if err != nil {
		if s.logger != nil {
			s.logger.Warn("discarding unreadable manifest", zap.Error(err))
		}
		return
	}
	if man == nil {
		// A snapshot without its manifest cannot be validated.
		return
	}
	s.index.Store(idx)
	s.manifest = man
	if s.logger != nil {
		s.logger.Info("loaded catalog snapshot", zap.Int("products", idx.Size()))
	}
}

// rebuild embeds every catalog file in batches and returns a fresh
// index and manifest. Files that cannot be decoded or that embed to a
// zero vector are skipped with a warning rather than failing the whole
// build; an embedder failure aborts it.
func (s *Service) rebuild(ctx context.Context, files map[string]FileStat) (*Index, *Manifest, error) {
	dim := s.embedder.Dimensions()
	idx, err := NewIndex(dim)
	if err != nil {
		return nil, nil, err
	}
	man := NewManifest(s.embedder.ModelID(), dim)

	// Oldest files first, ties by path, so insertion order (and with
	// it tie-breaking and listing order) tracks the directory's history
	// deterministically.
	paths := make([]string, 0, len(files))
	for p := range files {
		paths = append(paths, p)
	}
	sort.Slice(paths, func(i, j int) bool {
		if files[paths[i]].MTime != files[paths[j]].MTime {
			return files[paths[i]].MTime < files[paths[j]].MTime
		}
		return paths[i] < paths[j]
	})

	batchSize := s.cfg.Embedding.BatchSize
	if batchSize <= 0 {
		batchSize = 1
	}
	for startAt := 0; startAt < len(paths); startAt += batchSize {
		end := startAt + batchSize
		if end > len(paths) {
			end = len(paths)
		}
		if err := s.rebuildBatch(ctx, idx, man, paths[startAt:end], files); err != nil {
			return nil, nil, err
		}
	}
	return idx, man, nil
}

func (s *Service) rebuildBatch(ctx context.Context, idx *Index, man *Manifest, paths []string, files map[string]FileStat) error {
	imgs := make([]image.Image, 0, len(paths))
	kept := make([]string, 0, len(paths))
	for _, rel := range paths {
		img, err := imaging.DecodeFile(filepath.Join(s.cfg.Catalog.Dir, filepath.FromSlash(rel)))
		if err != nil {
			if s.logger != nil {
				s.logger.Warn("skipping undecodable catalog image", zap.String("path", rel), zap.Error(err))
			}
			// Skipped files are still recorded (with no product id) so
			// an unchanged bad file does not read as drift forever.
			man.Record(rel, "", files[rel])
			continue
		}
		imgs = append(imgs, img)
		kept = append(kept, rel)
	}
	if len(imgs) == 0 {
		return nil
	}
	vecs, err := s.embedder.EmbedBatch(ctx, imgs)
	if err != nil {
		return fmt.Errorf("embed batch: %w", err)
	}
	for i, rel := range kept {
		product := s.productForFile(ctx, rel, files[rel])
		if err := idx.Add(product, vecs[i]); err != nil {
			if errors.Is(err, vecmath.ErrDegenerateVector) {
				if s.logger != nil {
					s.logger.Warn("skipping degenerate embedding", zap.String("path", rel))
				}
				man.Record(rel, "", files[rel])
				continue
			}
			if errors.Is(err, ErrDuplicateID) {
				if s.logger != nil {
					s.logger.Warn("skipping file with duplicate product id",
						zap.String("path", rel), zap.String("id", product.ID))
				}
				man.Record(rel, "", files[rel])
				continue
			}
			return fmt.Errorf("index %s: %w", rel, err)
		}
		man.Record(rel, product.ID, files[rel])
		s.mirrorProduct(ctx, product)
	}
	return nil
}

// productForFile builds the Product for a catalog file, preferring
// metadata recorded by an earlier AddProduct so names, categories, and
// prices survive rebuilds. Without stored metadata the name is
// humanized from the file stem and CreatedAt taken from the file.
func (s *Service) productForFile(ctx context.Context, rel string, st FileStat) *models.Product {
	id := productIDForPath(rel)
	if s.store != nil {
		if p, err := s.store.Get(ctx, id); err == nil {
			p.ImagePath = rel
			return p
		}
	}
	return &models.Product{
		ID:        id,
		Name:      humanizeName(id),
		ImagePath: rel,
		CreatedAt: time.Unix(0, st.MTime).UTC(),
	}
}

// mirrorProduct pushes a product into the metadata store and keyword
// index. Mirrors are best-effort; a failed write is logged and the
// product stays searchable by image.
func (s *Service) mirrorProduct(ctx context.Context, p *models.Product) {
	if s.store != nil {
		if err := s.store.Upsert(ctx, p); err != nil && s.logger != nil {
			s.logger.Warn("product store upsert failed", zap.String("id", p.ID), zap.Error(err))
		}
	}
	if s.keywords != nil {
		if err := s.keywords.Index(ctx, p); err != nil && s.logger != nil {
			s.logger.Warn("keyword index failed", zap.String("id", p.ID), zap.Error(err))
		}
	}
}

// AddProduct decodes an uploaded image, stores it in the catalog
// directory as <id>.jpg, embeds it, and indexes it. The new product is
// immediately searchable and appears first in the catalog listing. The
// index and manifest are persisted before the call returns; on any
// persistence failure the add is rolled back.
func (s *Service) AddProduct(ctx context.Context, filename string, r io.Reader, input *models.ProductInput) (*models.Product, error) {
	if !imaging.IsSupportedExt(filename) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, strings.ToLower(filepath.Ext(filename)))
	}
	img, err := imaging.Decode(r)
	if err != nil {
		return nil, err
	}
	if input == nil {
		input = &models.ProductInput{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.index.Load()
	if idx == nil {
		return nil, ErrNotReady
	}

	id := strings.TrimSpace(input.ID)
	if id == "" {
		id = uuid.New().String()
	} else if err := validateProductID(id); err != nil {
		return nil, err
	}
	if _, ok := idx.Get(id); ok {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateID, id)
	}
	rel := id + ".jpg"
	abs := filepath.Join(s.cfg.Catalog.Dir, rel)
	if _, err := os.Stat(abs); err == nil {
		return nil, fmt.Errorf("%w: image file %s already exists", ErrDuplicateID, rel)
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		if stem := productIDForPath(filepath.Base(filename)); stem != "" {
			name = humanizeName(stem)
		} else {
			name = humanizeName(id)
		}
	}
	product := &models.Product{
		ID:        id,
		Name:      name,
		ImagePath: rel,
		Category:  input.Category,
		Price:     input.Price,
		CreatedAt: time.Now().UTC(),
	}

	vec, err := s.embedder.Embed(ctx, img)
	if err != nil {
		return nil, fmt.Errorf("embed upload: %w", err)
	}

	if err := writeJPEG(abs, img); err != nil {
		return nil, err
	}
	info, err := os.Stat(abs)
	if err != nil {
		os.Remove(abs)
		return nil, fmt.Errorf("stat catalog image: %w", err)
	}
	st := FileStat{Size: info.Size(), MTime: info.ModTime().UnixNano()}

	if err := idx.Add(product, vec); err != nil {
		os.Remove(abs)
		return nil, err
	}

	s.manifest.Record(rel, id, st)
	if err := s.manifest.Save(s.cfg.Storage.ManifestPath); err != nil {
		s.manifest.Forget(rel)
		s.rollbackAdd(idx, id, abs)
		return nil, fmt.Errorf("save manifest: %w", err)
	}
	if err := idx.Save(s.cfg.Storage.SnapshotPath); err != nil {
		s.manifest.Forget(rel)
		if saveErr := s.manifest.Save(s.cfg.Storage.ManifestPath); saveErr != nil && s.logger != nil {
			s.logger.Warn("manifest rollback failed", zap.Error(saveErr))
		}
		s.rollbackAdd(idx, id, abs)
		return nil, fmt.Errorf("save snapshot: %w", err)
	}

	s.mirrorProduct(ctx, product)
	if s.logger != nil {
		s.logger.Info("product added", zap.String("id", id), zap.String("path", rel))
	}
	return product, nil
}

// rollbackAdd undoes the in-memory and on-disk effects of an add whose
// persistence failed.
func (s *Service) rollbackAdd(idx *Index, id, abs string) {
	if err := idx.Remove(id); err != nil && s.logger != nil {
		s.logger.Warn("rollback index remove failed", zap.String("id", id), zap.Error(err))
	}
	if err := os.Remove(abs); err != nil && s.logger != nil {
		s.logger.Warn("rollback file delete failed", zap.String("path", abs), zap.Error(err))
	}
}

// RemoveProduct deletes a product's backing image and drops it from the
// index, manifest, metadata store, and keyword index. The file goes
// first: if persistence fails afterwards, the next consistency check
// sees the missing file and converges on the removal.
func (s *Service) RemoveProduct(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.index.Load()
	if idx == nil {
		return ErrNotReady
	}
	p, ok := idx.Get(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	rel := p.ImagePath
	abs := filepath.Join(s.cfg.Catalog.Dir, filepath.FromSlash(rel))

	if err := os.Remove(abs); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete catalog image: %w", err)
	}
	if err := idx.Remove(id); err != nil {
		return err
	}
	s.manifest.Forget(rel)
	if s.store != nil {
		if err := s.store.Delete(ctx, id); err != nil && s.logger != nil {
			s.logger.Warn("product store delete failed", zap.String("id", id), zap.Error(err))
		}
	}
	if s.keywords != nil {
		if err := s.keywords.Delete(ctx, id); err != nil && s.logger != nil {
			s.logger.Warn("keyword delete failed", zap.String("id", id), zap.Error(err))
		}
	}
	if err := s.manifest.Save(s.cfg.Storage.ManifestPath); err != nil {
		return fmt.Errorf("save manifest: %w", err)
	}
	if err := idx.Save(s.cfg.Storage.SnapshotPath); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	if s.logger != nil {
		s.logger.Info("product removed", zap.String("id", id), zap.String("path", rel))
	}
	return nil
}

// Search embeds the query image (with augmentation variants pooled
// into a single vector) and returns ranked matches plus the total
// number of catalog items meeting the confidence floor.
func (s *Service) Search(ctx context.Context, img image.Image, q *models.SearchQuery) (*models.SearchResponse, error) {
	idx := s.index.Load()
	if idx == nil {
		return nil, ErrNotReady
	}
	start := time.Now()

	vec, err := s.queryVector(ctx, img)
	if err != nil {
		return nil, err
	}

	params := models.SearchQuery{MinSimilarity: s.cfg.Search.MinSimilarity}
	if q != nil {
		params = *q
	}
	params.Normalize(s.cfg.Search.DefaultTopK, s.cfg.Search.MaxTopK)

	matches, total, err := idx.SearchWithCount(vec, params.TopK, params.MinSimilarity)
	if err != nil {
		return nil, err
	}
	return &models.SearchResponse{
		Matches:      matches,
		TotalMatches: total,
		QueryTime:    time.Since(start).Milliseconds(),
	}, nil
}

// queryVector embeds every augmentation variant of the query image and
// pools them into one unit vector. Every variant must embed; the mean
// of the normalized variants is normalized again.
func (s *Service) queryVector(ctx context.Context, img image.Image) ([]float32, error) {
	variants := s.augmenter.Variants(img)
	vecs, err := s.embedder.EmbedBatch(ctx, variants)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	for i := range vecs {
		if _, err := vecmath.Normalize(vecs[i]); err != nil {
			return nil, fmt.Errorf("query variant %d: %w", i, err)
		}
	}
	pooled, err := vecmath.MeanPool(vecs)
	if err != nil {
		return nil, err
	}
	if _, err := vecmath.Normalize(pooled); err != nil {
		return nil, fmt.Errorf("pooled query: %w", err)
	}
	return pooled, nil
}

// GetProduct returns the indexed product with the given id.
func (s *Service) GetProduct(id string) (*models.Product, error) {
	idx := s.index.Load()
	if idx == nil {
		return nil, ErrNotReady
	}
	p, ok := idx.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return p, nil
}

// ListPage returns one page of the catalog, most recently added first.
// A non-empty query narrows the page to keyword matches on name and
// category, best match first; without a keyword index the query is
// ignored. A page past the end yields an empty page, not an error.
func (s *Service) ListPage(ctx context.Context, page, pageSize int, query string) (*models.CatalogPage, error) {
	idx := s.index.Load()
	if idx == nil {
		return nil, ErrNotReady
	}
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = s.cfg.Catalog.DefaultPageSize
	}
	if pageSize > s.cfg.Catalog.MaxPageSize {
		pageSize = s.cfg.Catalog.MaxPageSize
	}

	items := idx.ProductsByRecency()
	if query != "" && s.keywords != nil {
		filtered, err := s.filterByKeyword(ctx, idx, query)
		if err != nil {
			return nil, err
		}
		items = filtered
	}

	total := len(items)
	totalPages := (total + pageSize - 1) / pageSize
	startAt := (page - 1) * pageSize
	if startAt >= total {
		items = []*models.Product{}
	} else {
		end := startAt + pageSize
		if end > total {
			end = total
		}
		items = items[startAt:end]
	}
	return &models.CatalogPage{
		Items:      items,
		Page:       page,
		PageSize:   pageSize,
		TotalItems: total,
		TotalPages: totalPages,
	}, nil
}

// filterByKeyword returns the indexed products matching the keyword
// query, bleve score order. Hits for products no longer indexed are
// dropped.
func (s *Service) filterByKeyword(ctx context.Context, idx *Index, query string) ([]*models.Product, error) {
	n, err := s.keywords.DocCount()
	if err != nil {
		return nil, fmt.Errorf("keyword doc count: %w", err)
	}
	if n == 0 {
		return []*models.Product{}, nil
	}
	hits, err := s.keywords.Search(ctx, query, int(n))
	if err != nil {
		return nil, fmt.Errorf("keyword search: %w", err)
	}
	out := make([]*models.Product, 0, len(hits))
	for _, h := range hits {
		if p, ok := idx.Get(h.ID); ok {
			out = append(out, p)
		}
	}
	return out, nil
}

// Stats reports index size, embedder identity, and configured search
// limits for the status endpoint and CLI.
func (s *Service) Stats() *models.Stats {
	st := &models.Stats{
		State:         string(s.State()),
		Dimension:     s.embedder.Dimensions(),
		ModelID:       s.embedder.ModelID(),
		DefaultTopK:   s.cfg.Search.DefaultTopK,
		MaxTopK:       s.cfg.Search.MaxTopK,
		MinSimilarity: s.cfg.Search.MinSimilarity,
	}
	if idx := s.index.Load(); idx != nil {
		st.ProductCount = idx.Size()
	}
	usage, err := storage.DiskUsageBytes(
		s.cfg.Catalog.Dir,
		s.cfg.Storage.SnapshotPath,
		s.cfg.Storage.ManifestPath,
		s.cfg.Storage.DatabasePath,
		s.cfg.Storage.BleveIndexPath,
	)
	if err == nil {
		st.DiskUsageBytes = usage
	} else if s.logger != nil {
		s.logger.Debug("disk usage unavailable", zap.Error(err))
	}
	return st
}

// scanCatalog walks the catalog directory and returns the identity of
// every supported image file, keyed by catalog-relative path with
// POSIX separators.
func scanCatalog(dir string) (map[string]FileStat, error) {
	files := make(map[string]FileStat)
	err := filepath.WalkDir(dir, func(p string, d os.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			return nil
		}
		if !imaging.IsSupportedExt(p) {
			return nil
		}
		// A name like ".png" has no stem to derive a product id from.
		if strings.TrimSuffix(d.Name(), filepath.Ext(d.Name())) == "" {
			return nil
		}
		// Resolve symlinks so only regular files are indexed.
		info, statErr := os.Stat(p)
		if statErr != nil || !info.Mode().IsRegular() {
			return nil
		}
		rel, relErr := filepath.Rel(dir, p)
		if relErr != nil {
			return relErr
		}
		files[filepath.ToSlash(rel)] = FileStat{Size: info.Size(), MTime: info.ModTime().UnixNano()}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan catalog: %w", err)
	}
	return files, nil
}

// writeJPEG re-encodes img to path as JPEG.
func writeJPEG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create catalog image: %w", err)
	}
	if err := imaging.EncodeJPEG(f, img); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("encode catalog image: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return fmt.Errorf("write catalog image: %w", err)
	}
	return nil
}

// productIDForPath derives a product id from a catalog-relative path:
// the file name without its extension.
func productIDForPath(rel string) string {
	base := path.Base(rel)
	return strings.TrimSuffix(base, path.Ext(base))
}

// validateProductID rejects ids that would escape the catalog
// directory when used as a file name.
func validateProductID(id string) error {
	if strings.ContainsAny(id, "/\\") || id == "." || id == ".." {
		return fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return nil
}

// humanizeName turns a file stem like "red_sneaker-01" into a display
// name like "Red Sneaker 01".
func humanizeName(stem string) string {
	s := strings.NewReplacer("_", " ", "-", " ").Replace(stem)
	s = strings.Join(strings.Fields(s), " ")
	if s == "" {
		return stem
	}
	return cases.Title(language.English).String(s)
}
