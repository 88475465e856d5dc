package catalog

import (
	"bufio"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"github.com/glancehq/glance/internal/models"
)

// snapshotVersion identifies the on-disk snapshot layout.
const snapshotVersion = 1

// Save writes the index to path: version, dimension, entry count, next
// sequence, then per entry the sequence, product JSON, and vector bytes
// (little-endian). The write goes to a temp file renamed into place, so
// a crash never leaves a truncated snapshot, and a file lock beside the
// snapshot keeps concurrent processes from interleaving writes.
func (ix *Index) Save(path string) error {
	if path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create snapshot dir: %w", err)
	}

	fl := flock.New(path + ".lock")
	if err := fl.Lock(); err != nil {
		return fmt.Errorf("lock snapshot: %w", err)
	}
	defer fl.Unlock()

	ix.mu.RLock()
	defer ix.mu.RUnlock()

	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("create snapshot file: %w", err)
	}
	if err := ix.writeTo(f); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("sync snapshot: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("close snapshot: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replace snapshot: %w", err)
	}
	return nil
}

func (ix *Index) writeTo(f *os.File) error {
	w := bufio.NewWriter(f)
	if err := binary.Write(w, binary.LittleEndian, uint32(snapshotVersion)); err != nil {
		return fmt.Errorf("write version: %w", err)
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(ix.dim)); err != nil {
		return fmt.Errorf("write dimensions: %w", err)
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(len(ix.entries))); err != nil {
		return fmt.Errorf("write count: %w", err)
	}
	if err := binary.Write(w, binary.LittleEndian, ix.nextSeq); err != nil {
		return fmt.Errorf("write sequence: %w", err)
	}
	for i, e := range ix.entries {
		if err := binary.Write(w, binary.LittleEndian, e.seq); err != nil {
			return fmt.Errorf("write entry seq: %w", err)
		}
		productJSON, err := json.Marshal(e.product)
		if err != nil {
			return fmt.Errorf("marshal product %s: %w", e.product.ID, err)
		}
		if err := binary.Write(w, binary.LittleEndian, uint32(len(productJSON))); err != nil {
			return fmt.Errorf("write product len: %w", err)
		}
		if _, err := w.Write(productJSON); err != nil {
			return fmt.Errorf("write product: %w", err)
		}
		if _, err := w.Write(float32SliceToBytes(ix.matrix[i*ix.dim : (i+1)*ix.dim])); err != nil {
			return fmt.Errorf("write vector: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("flush snapshot: %w", err)
	}
	return nil
}

// LoadIndex reads a snapshot from path. A missing file returns
// (nil, nil); a corrupt or unreadable file returns an error, leaving
// the caller to rebuild.
func LoadIndex(path string) (*Index, error) {
	if path == "" {
		return nil, nil
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("open snapshot: %w", err)
	}
	defer f.Close()

	r := bufio.NewReader(f)
	var version, dim, count uint32
	var nextSeq uint64
	if err := binary.Read(r, binary.LittleEndian, &version); err != nil {
		return nil, fmt.Errorf("read version: %w", err)
	}
	if version != snapshotVersion {
		return nil, fmt.Errorf("unsupported snapshot version %d", version)
	}
	if err := binary.Read(r, binary.LittleEndian, &dim); err != nil {
		return nil, fmt.Errorf("read dimensions: %w", err)
	}
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return nil, fmt.Errorf("read count: %w", err)
	}
	if err := binary.Read(r, binary.LittleEndian, &nextSeq); err != nil {
		return nil, fmt.Errorf("read sequence: %w", err)
	}

	ix, err := NewIndex(int(dim))
	if err != nil {
		return nil, fmt.Errorf("snapshot dimensions invalid: %w", err)
	}
	ix.matrix = make([]float32, 0, int(count)*ix.dim)
	ix.entries = make([]entry, 0, count)
	vecBuf := make([]byte, ix.dim*4)
	var maxSeq uint64
	for i := uint32(0); i < count; i++ {
		var seq uint64
		if err := binary.Read(r, binary.LittleEndian, &seq); err != nil {
			return nil, fmt.Errorf("read entry seq: %w", err)
		}
		var productLen uint32
		if err := binary.Read(r, binary.LittleEndian, &productLen); err != nil {
			return nil, fmt.Errorf("read product len: %w", err)
		}
		productJSON := make([]byte, productLen)
		if _, err := io.ReadFull(r, productJSON); err != nil {
			return nil, fmt.Errorf("read product: %w", err)
		}
		var p models.Product
		if err := json.Unmarshal(productJSON, &p); err != nil {
			return nil, fmt.Errorf("unmarshal product: %w", err)
		}
		if p.ID == "" {
			return nil, fmt.Errorf("snapshot entry %d has empty product id", i)
		}
		if _, dup := ix.byID[p.ID]; dup {
			return nil, fmt.Errorf("snapshot has duplicate product id %s", p.ID)
		}
		if _, err := io.ReadFull(r, vecBuf); err != nil {
			return nil, fmt.Errorf("read vector: %w", err)
		}
		ix.byID[p.ID] = len(ix.entries)
		ix.entries = append(ix.entries, entry{product: &p, seq: seq})
		ix.matrix = append(ix.matrix, bytesToFloat32Slice(vecBuf)...)
		if seq >= maxSeq {
			maxSeq = seq + 1
		}
	}
	ix.nextSeq = nextSeq
	// Guard against a stale header: sequences must keep growing.
	if maxSeq > ix.nextSeq {
		ix.nextSeq = maxSeq
	}
	return ix, nil
}

func float32SliceToBytes(s []float32) []byte {
	const size = 4
	out := make([]byte, len(s)*size)
	for i, v := range s {
		binary.LittleEndian.PutUint32(out[i*size:(i+1)*size], math.Float32bits(v))
	}
	return out
}

func bytesToFloat32Slice(b []byte) []float32 {
	const size = 4
	out := make([]float32, len(b)/size)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*size : (i+1)*size]))
	}
	return out
}
