package catalog

import (
	"fmt"
	"sort"
	"sync"

	"github.com/glancehq/glance/internal/models"
	"github.com/glancehq/glance/internal/vecmath"
)

// entry pairs an indexed product with its insertion sequence. The
// sequence breaks ranking ties (oldest first) and orders the catalog
// listing (newest first). Sequences survive snapshot round-trips.
type entry struct {
	product *models.Product
	seq     uint64
}

// Index is an in-memory vector index over catalog products with a
// dense row-major matrix for bulk scoring. Row positions are internal:
// lookups go through the id map, and removals may move rows without
// changing any product's identity.
type Index struct {
	mu      sync.RWMutex
	dim     int
	matrix  []float32 // len(entries) * dim
	entries []entry
	byID    map[string]int
	nextSeq uint64
}

// NewIndex creates an empty index for vectors of the given dimension.
func NewIndex(dim int) (*Index, error) {
	if dim <= 0 {
		return nil, fmt.Errorf("dimensions must be positive")
	}
	return &Index{
		dim:  dim,
		byID: make(map[string]int),
	}, nil
}

// Dimensions returns the vector dimension.
func (ix *Index) Dimensions() int {
	return ix.dim
}

// Size returns the number of indexed products.
func (ix *Index) Size() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.entries)
}

// Add indexes product under vec. The vector is copied, then normalized
// in the copy. Returns ErrDimensionMismatch for a wrong-length vector,
// vecmath.ErrDegenerateVector for a zero vector, and ErrDuplicateID
// when the id is already present.
func (ix *Index) Add(product *models.Product, vec []float32) error {
	if product == nil || product.ID == "" {
		return fmt.Errorf("product id must not be empty")
	}
	if len(vec) != ix.dim {
		return fmt.Errorf("%w: got %d, expected %d", ErrDimensionMismatch, len(vec), ix.dim)
	}
	row := make([]float32, ix.dim)
	copy(row, vec)
	if _, err := vecmath.Normalize(row); err != nil {
		return err
	}

	ix.mu.Lock()
	defer ix.mu.Unlock()
	if _, ok := ix.byID[product.ID]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateID, product.ID)
	}
	ix.byID[product.ID] = len(ix.entries)
	ix.entries = append(ix.entries, entry{product: product, seq: ix.nextSeq})
	ix.nextSeq++
	ix.matrix = append(ix.matrix, row...)
	return nil
}

// Remove drops the product with the given id. The last row is swapped
// into the freed position, so removal costs O(dim).
func (ix *Index) Remove(id string) error {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	pos, ok := ix.byID[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	last := len(ix.entries) - 1
	if pos != last {
		copy(ix.matrix[pos*ix.dim:(pos+1)*ix.dim], ix.matrix[last*ix.dim:(last+1)*ix.dim])
		ix.entries[pos] = ix.entries[last]
		ix.byID[ix.entries[pos].product.ID] = pos
	}
	ix.entries = ix.entries[:last]
	ix.matrix = ix.matrix[:last*ix.dim]
	delete(ix.byID, id)
	return nil
}

// Get returns the indexed product with the given id.
func (ix *Index) Get(id string) (*models.Product, bool) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	pos, ok := ix.byID[id]
	if !ok {
		return nil, false
	}
	return ix.entries[pos].product, true
}

// Search returns the top-k products whose confidence meets
// minSimilarity (inclusive), sorted by confidence descending with ties
// broken by insertion order, oldest first.
func (ix *Index) Search(query []float32, topK int, minSimilarity float64) ([]*models.SearchMatch, error) {
	matches, _, err := ix.SearchWithCount(query, topK, minSimilarity)
	return matches, err
}

// CountAtThreshold returns how many products meet the confidence floor,
// independent of any top-k truncation. It scores exactly the way Search
// does, so the count never falls below the number of returned matches.
func (ix *Index) CountAtThreshold(query []float32, minSimilarity float64) (int, error) {
	_, total, err := ix.SearchWithCount(query, 0, minSimilarity)
	return total, err
}

// SearchWithCount combines Search and CountAtThreshold in one pass over
// a single consistent view of the index.
func (ix *Index) SearchWithCount(query []float32, topK int, minSimilarity float64) ([]*models.SearchMatch, int, error) {
	if len(query) != ix.dim {
		return nil, 0, fmt.Errorf("%w: got %d, expected %d", ErrDimensionMismatch, len(query), ix.dim)
	}

	ix.mu.RLock()
	defer ix.mu.RUnlock()

	hits := ix.scoreAbove(query, minSimilarity)
	total := len(hits)
	if topK <= 0 || total == 0 {
		return []*models.SearchMatch{}, total, nil
	}

	sort.Slice(hits, func(i, j int) bool {
		if hits[i].confidence != hits[j].confidence {
			return hits[i].confidence > hits[j].confidence
		}
		return hits[i].seq < hits[j].seq
	})

	if topK > len(hits) {
		topK = len(hits)
	}
	out := make([]*models.SearchMatch, topK)
	for i := 0; i < topK; i++ {
		out[i] = &models.SearchMatch{
			Product:    ix.entries[hits[i].pos].product,
			Confidence: hits[i].confidence,
			Rank:       i + 1,
		}
	}
	return out, total, nil
}

type scored struct {
	pos        int
	confidence float64
	seq        uint64
}

// scoreAbove scores every row against query and returns the rows
// meeting the confidence floor, unsorted. Callers hold the read lock.
func (ix *Index) scoreAbove(query []float32, minSimilarity float64) []scored {
	var out []scored
	for i := range ix.entries {
		row := ix.matrix[i*ix.dim : (i+1)*ix.dim]
		c := vecmath.Confidence(vecmath.CosineSimilarity(query, row))
		if c >= minSimilarity {
			out = append(out, scored{pos: i, confidence: c, seq: ix.entries[i].seq})
		}
	}
	return out
}

// ProductsByRecency returns all products, most recently added first.
func (ix *Index) ProductsByRecency() []*models.Product {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	ents := make([]entry, len(ix.entries))
	copy(ents, ix.entries)
	sort.Slice(ents, func(i, j int) bool { return ents[i].seq > ents[j].seq })

	out := make([]*models.Product, len(ents))
	for i, e := range ents {
		out[i] = e.product
	}
	return out
}
