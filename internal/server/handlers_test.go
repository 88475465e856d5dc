package server

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/glancehq/glance/internal/catalog"
	"github.com/glancehq/glance/internal/config"
	"github.com/glancehq/glance/internal/models"
	"github.com/glancehq/glance/internal/vecmath"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// rgbEmbedder maps an image to a unit vector built from its top-left
// pixel, so solid test images land on known directions: identical
// colors embed identically and distinct primaries meet at cosine 0.5
// (confidence 0.75).
type rgbEmbedder struct{}

func (e *rgbEmbedder) Embed(_ context.Context, img image.Image) ([]float32, error) {
	r, g, b, _ := img.At(img.Bounds().Min.X, img.Bounds().Min.Y).RGBA()
	v := []float32{float32(r), float32(g), float32(b), 65535}
	return vecmath.Normalize(v)
}

func (e *rgbEmbedder) EmbedBatch(ctx context.Context, imgs []image.Image) ([][]float32, error) {
	out := make([][]float32, len(imgs))
	for i, img := range imgs {
		emb, err := e.Embed(ctx, img)
		if err != nil {
			return nil, err
		}
		out[i] = emb
	}
	return out, nil
}

func (e *rgbEmbedder) Dimensions() int { return 4 }
func (e *rgbEmbedder) ModelID() string { return "rgb" }
func (e *rgbEmbedder) Close() error    { return nil }

var (
	red  = color.NRGBA{R: 255, A: 255}
	blue = color.NRGBA{B: 255, A: 255}
)

func solid(c color.NRGBA) image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, 32, 32))
	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func pngBytes(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func writeImage(t *testing.T, dir, rel string, c color.NRGBA) {
	t.Helper()
	path := filepath.Join(dir, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, pngBytes(t, solid(c)), 0o644); err != nil {
		t.Fatal(err)
	}
}

// multipartBody builds a multipart form with an optional "image" file
// part plus extra fields and returns the body and content type.
func multipartBody(t *testing.T, filename string, content []byte, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if filename != "" {
		fw, err := mw.CreateFormFile("image", filename)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := fw.Write(content); err != nil {
			t.Fatal(err)
		}
	}
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatal(err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatal(err)
	}
	return &buf, mw.FormDataContentType()
}

func newTestServer(t *testing.T) (*Server, string) {
	t.Helper()
	dir := t.TempDir()
	cfg := &config.Config{}
	config.ApplyDefaults(cfg)
	cfg.Catalog.Dir = filepath.Join(dir, "catalog")
	cfg.Storage.SnapshotPath = filepath.Join(dir, "index.bin")
	cfg.Storage.ManifestPath = filepath.Join(dir, "manifest.json")
	cfg.Storage.DatabasePath = ""
	cfg.Storage.BleveIndexPath = ""
	svc := catalog.NewService(cfg, &rgbEmbedder{})
	return NewServer(svc, cfg, zap.NewNop()), cfg.Catalog.Dir
}

func mustFresh(t *testing.T, srv *Server) {
	t.Helper()
	if err := srv.catalog.EnsureFresh(context.Background()); err != nil {
		t.Fatal(err)
	}
}

func postMultipart(target string, body *bytes.Buffer, contentType string) *http.Request {
	r := httptest.NewRequest(http.MethodPost, target, body)
	r.Header.Set("Content-Type", contentType)
	return r
}

// withURLParam attaches a chi route parameter so handlers using
// chi.URLParam can be called directly.
func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestHandleSearch(t *testing.T) {
	srv, dir := newTestServer(t)
	writeImage(t, dir, "red.png", red)
	writeImage(t, dir, "blue.png", blue)
	mustFresh(t, srv)

	body, ct := multipartBody(t, "query.png", pngBytes(t, solid(red)), map[string]string{
		"min_similarity": "0",
	})
	w := httptest.NewRecorder()
	srv.handleSearch(w, postMultipart("/api/v1/search", body, ct))
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d, body: %s", w.Code, w.Body.String())
	}
	var resp models.SearchResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Matches) != 2 {
		t.Fatalf("matches: got %d, want 2", len(resp.Matches))
	}
	if resp.Matches[0].Product.ID != "red" || resp.Matches[1].Product.ID != "blue" {
		t.Errorf("order: got [%s %s]", resp.Matches[0].Product.ID, resp.Matches[1].Product.ID)
	}
	if resp.Matches[0].Confidence < 0.99 {
		t.Errorf("exact match confidence: got %f", resp.Matches[0].Confidence)
	}
	if resp.Matches[0].Rank != 1 || resp.Matches[1].Rank != 2 {
		t.Errorf("ranks: got %d, %d", resp.Matches[0].Rank, resp.Matches[1].Rank)
	}
	if resp.TotalMatches != 2 {
		t.Errorf("total_matches: got %d, want 2", resp.TotalMatches)
	}
}

func TestHandleSearch_DefaultMinSimilarity(t *testing.T) {
	srv, dir := newTestServer(t)
	writeImage(t, dir, "red.png", red)
	writeImage(t, dir, "blue.png", blue)
	mustFresh(t, srv)

	// No min_similarity field: the configured default (0.8) applies,
	// excluding the cross-color match at confidence 0.75.
	body, ct := multipartBody(t, "query.png", pngBytes(t, solid(red)), nil)
	w := httptest.NewRecorder()
	srv.handleSearch(w, postMultipart("/api/v1/search", body, ct))
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d, body: %s", w.Code, w.Body.String())
	}
	var resp models.SearchResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Matches) != 1 || resp.Matches[0].Product.ID != "red" {
		t.Errorf("matches: got %v", resp.Matches)
	}
	if resp.TotalMatches != 1 {
		t.Errorf("total_matches: got %d, want 1", resp.TotalMatches)
	}
}

func TestHandleSearch_TopKCapsMatches(t *testing.T) {
	srv, dir := newTestServer(t)
	writeImage(t, dir, "red.png", red)
	writeImage(t, dir, "blue.png", blue)
	mustFresh(t, srv)

	body, ct := multipartBody(t, "query.png", pngBytes(t, solid(red)), map[string]string{
		"top_k":          "1",
		"min_similarity": "0",
	})
	w := httptest.NewRecorder()
	srv.handleSearch(w, postMultipart("/api/v1/search", body, ct))
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d, body: %s", w.Code, w.Body.String())
	}
	var resp models.SearchResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Matches) != 1 {
		t.Errorf("matches: got %d, want 1", len(resp.Matches))
	}
	if resp.TotalMatches != 2 {
		t.Errorf("total_matches: got %d, want 2", resp.TotalMatches)
	}
}

func TestHandleSearch_BadRequests(t *testing.T) {
	srv, dir := newTestServer(t)
	writeImage(t, dir, "red.png", red)
	mustFresh(t, srv)

	noImage, noImageCT := multipartBody(t, "", nil, map[string]string{"top_k": "5"})
	garbage, garbageCT := multipartBody(t, "query.png", []byte("not an image"), nil)
	badTopK, badTopKCT := multipartBody(t, "query.png", pngBytes(t, solid(red)), map[string]string{
		"top_k": "many",
	})
	badSim, badSimCT := multipartBody(t, "query.png", pngBytes(t, solid(red)), map[string]string{
		"min_similarity": "high",
	})

	cases := []struct {
		name string
		body *bytes.Buffer
		ct   string
	}{
		{"missing image", noImage, noImageCT},
		{"undecodable image", garbage, garbageCT},
		{"bad top_k", badTopK, badTopKCT},
		{"bad min_similarity", badSim, badSimCT},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		srv.handleSearch(w, postMultipart("/api/v1/search", tc.body, tc.ct))
		if w.Code != http.StatusBadRequest {
			t.Errorf("%s: got %d, want 400", tc.name, w.Code)
		}
	}
}

func TestHandleSearch_NotReady(t *testing.T) {
	srv, _ := newTestServer(t)

	body, ct := multipartBody(t, "query.png", pngBytes(t, solid(red)), nil)
	w := httptest.NewRecorder()
	srv.handleSearch(w, postMultipart("/api/v1/search", body, ct))
	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("status: got %d, want 503", w.Code)
	}
}

func TestHandleAddProduct(t *testing.T) {
	srv, _ := newTestServer(t)
	mustFresh(t, srv)

	body, ct := multipartBody(t, "upload.png", pngBytes(t, solid(red)), map[string]string{
		"id":       "crimson-shoe",
		"name":     "Crimson Shoe",
		"category": "shoes",
		"price":    "79.99",
	})
	w := httptest.NewRecorder()
	srv.handleAddProduct(w, postMultipart("/api/v1/products", body, ct))
	if w.Code != http.StatusCreated {
		t.Fatalf("status: got %d, body: %s", w.Code, w.Body.String())
	}
	var p models.Product
	if err := json.NewDecoder(w.Body).Decode(&p); err != nil {
		t.Fatal(err)
	}
	if p.ID != "crimson-shoe" || p.Name != "Crimson Shoe" || p.Category != "shoes" || p.Price != 79.99 {
		t.Errorf("product: got %+v", p)
	}

	r := withURLParam(httptest.NewRequest(http.MethodGet, "/api/v1/products/crimson-shoe", nil), "id", "crimson-shoe")
	w = httptest.NewRecorder()
	srv.handleGetProduct(w, r)
	if w.Code != http.StatusOK {
		t.Errorf("get after add: got %d, body: %s", w.Code, w.Body.String())
	}
}

func TestHandleAddProduct_Duplicate(t *testing.T) {
	srv, _ := newTestServer(t)
	mustFresh(t, srv)

	for i, want := range []int{http.StatusCreated, http.StatusConflict} {
		body, ct := multipartBody(t, "upload.png", pngBytes(t, solid(red)), map[string]string{"id": "twin"})
		w := httptest.NewRecorder()
		srv.handleAddProduct(w, postMultipart("/api/v1/products", body, ct))
		if w.Code != want {
			t.Errorf("attempt %d: got %d, want %d", i+1, w.Code, want)
		}
	}
}

func TestHandleAddProduct_Rejections(t *testing.T) {
	srv, _ := newTestServer(t)
	mustFresh(t, srv)

	txt, txtCT := multipartBody(t, "report.txt", []byte("plain text"), nil)
	w := httptest.NewRecorder()
	srv.handleAddProduct(w, postMultipart("/api/v1/products", txt, txtCT))
	if w.Code != http.StatusUnsupportedMediaType {
		t.Errorf("unsupported extension: got %d, want 415", w.Code)
	}

	garbage, garbageCT := multipartBody(t, "upload.png", []byte("not an image"), nil)
	w = httptest.NewRecorder()
	srv.handleAddProduct(w, postMultipart("/api/v1/products", garbage, garbageCT))
	if w.Code != http.StatusBadRequest {
		t.Errorf("undecodable: got %d, want 400", w.Code)
	}

	badPrice, badPriceCT := multipartBody(t, "upload.png", pngBytes(t, solid(red)), map[string]string{
		"price": "free",
	})
	w = httptest.NewRecorder()
	srv.handleAddProduct(w, postMultipart("/api/v1/products", badPrice, badPriceCT))
	if w.Code != http.StatusBadRequest {
		t.Errorf("bad price: got %d, want 400", w.Code)
	}

	escape, escapeCT := multipartBody(t, "upload.png", pngBytes(t, solid(red)), map[string]string{
		"id": "../escape",
	})
	w = httptest.NewRecorder()
	srv.handleAddProduct(w, postMultipart("/api/v1/products", escape, escapeCT))
	if w.Code != http.StatusBadRequest {
		t.Errorf("invalid id: got %d, want 400", w.Code)
	}
}

func TestHandleDeleteProduct(t *testing.T) {
	srv, dir := newTestServer(t)
	writeImage(t, dir, "red.png", red)
	mustFresh(t, srv)

	r := withURLParam(httptest.NewRequest(http.MethodDelete, "/api/v1/products/red", nil), "id", "red")
	w := httptest.NewRecorder()
	srv.handleDeleteProduct(w, r)
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d, body: %s", w.Code, w.Body.String())
	}

	r = withURLParam(httptest.NewRequest(http.MethodDelete, "/api/v1/products/red", nil), "id", "red")
	w = httptest.NewRecorder()
	srv.handleDeleteProduct(w, r)
	if w.Code != http.StatusNotFound {
		t.Errorf("second delete: got %d, want 404", w.Code)
	}
}

func TestHandleGetProduct_NotFound(t *testing.T) {
	srv, _ := newTestServer(t)
	mustFresh(t, srv)

	r := withURLParam(httptest.NewRequest(http.MethodGet, "/api/v1/products/ghost", nil), "id", "ghost")
	w := httptest.NewRecorder()
	srv.handleGetProduct(w, r)
	if w.Code != http.StatusNotFound {
		t.Errorf("status: got %d, want 404", w.Code)
	}
}

func TestHandleCatalog(t *testing.T) {
	srv, dir := newTestServer(t)
	writeImage(t, dir, "red.png", red)
	writeImage(t, dir, "green.png", color.NRGBA{G: 255, A: 255})
	writeImage(t, dir, "blue.png", blue)
	mustFresh(t, srv)

	r := httptest.NewRequest(http.MethodGet, "/api/v1/catalog?page=1&page_size=2", nil)
	w := httptest.NewRecorder()
	srv.handleCatalog(w, r)
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d, body: %s", w.Code, w.Body.String())
	}
	var page models.CatalogPage
	if err := json.NewDecoder(w.Body).Decode(&page); err != nil {
		t.Fatal(err)
	}
	if len(page.Items) != 2 || page.TotalItems != 3 || page.TotalPages != 2 {
		t.Errorf("page: got %d items, %d total, %d pages", len(page.Items), page.TotalItems, page.TotalPages)
	}

	r = httptest.NewRequest(http.MethodGet, "/api/v1/catalog?page=2&page_size=2", nil)
	w = httptest.NewRecorder()
	srv.handleCatalog(w, r)
	if err := json.NewDecoder(w.Body).Decode(&page); err != nil {
		t.Fatal(err)
	}
	if len(page.Items) != 1 {
		t.Errorf("last page: got %d items, want 1", len(page.Items))
	}

	r = httptest.NewRequest(http.MethodGet, "/api/v1/catalog?page=9&page_size=2", nil)
	w = httptest.NewRecorder()
	srv.handleCatalog(w, r)
	if err := json.NewDecoder(w.Body).Decode(&page); err != nil {
		t.Fatal(err)
	}
	if len(page.Items) != 0 || page.TotalItems != 3 {
		t.Errorf("out of range page: got %d items, %d total", len(page.Items), page.TotalItems)
	}
}

func TestHandleCatalog_InvalidPage(t *testing.T) {
	srv, _ := newTestServer(t)
	mustFresh(t, srv)

	r := httptest.NewRequest(http.MethodGet, "/api/v1/catalog?page=first", nil)
	w := httptest.NewRecorder()
	srv.handleCatalog(w, r)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want 400", w.Code)
	}
}

func TestHandleStatus(t *testing.T) {
	srv, dir := newTestServer(t)
	writeImage(t, dir, "red.png", red)
	writeImage(t, dir, "blue.png", blue)
	mustFresh(t, srv)

	r := httptest.NewRequest(http.MethodGet, "/api/v1/status", nil)
	w := httptest.NewRecorder()
	srv.handleStatus(w, r)
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d, body: %s", w.Code, w.Body.String())
	}
	var stats models.Stats
	if err := json.NewDecoder(w.Body).Decode(&stats); err != nil {
		t.Fatal(err)
	}
	if stats.State != "ready" {
		t.Errorf("state: got %q, want ready", stats.State)
	}
	if stats.ProductCount != 2 {
		t.Errorf("product_count: got %d, want 2", stats.ProductCount)
	}
	if stats.Dimension != 4 || stats.ModelID != "rgb" {
		t.Errorf("embedder info: got dim %d model %q", stats.Dimension, stats.ModelID)
	}
}

func TestHandleRebuild(t *testing.T) {
	srv, dir := newTestServer(t)
	writeImage(t, dir, "red.png", red)
	mustFresh(t, srv)

	r := httptest.NewRequest(http.MethodPost, "/api/v1/rebuild", nil)
	w := httptest.NewRecorder()
	srv.handleRebuild(w, r)
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d, body: %s", w.Code, w.Body.String())
	}
	var stats models.Stats
	if err := json.NewDecoder(w.Body).Decode(&stats); err != nil {
		t.Fatal(err)
	}
	if stats.ProductCount != 1 || stats.State != "ready" {
		t.Errorf("after rebuild: got count %d state %q", stats.ProductCount, stats.State)
	}
}

func TestHandleHealth(t *testing.T) {
	srv, _ := newTestServer(t)
	r := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	srv.handleHealth(w, r)
	if w.Code != http.StatusOK {
		t.Errorf("status: got %d", w.Code)
	}
	var out map[string]string
	if err := json.NewDecoder(w.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if out["status"] != "ok" {
		t.Errorf("body: got %v", out)
	}
}
