package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/glancehq/glance/internal/catalog"
	"github.com/glancehq/glance/internal/embedding"
	"github.com/glancehq/glance/internal/imaging"
	"github.com/glancehq/glance/internal/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// maxUploadMemory bounds in-memory buffering of multipart uploads;
// larger files spill to disk.
const maxUploadMemory = 32 << 20

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	file, _, err := r.FormFile("image")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "image file is required")
		return
	}
	defer file.Close()

	// An absent min_similarity means the configured default; an
	// explicit 0 disables the confidence floor.
	query := &models.SearchQuery{MinSimilarity: s.config.Search.MinSimilarity}
	if v := r.FormValue("top_k"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			s.respondError(w, http.StatusBadRequest, "invalid top_k")
			return
		}
		query.TopK = n
	}
	if v := r.FormValue("min_similarity"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			s.respondError(w, http.StatusBadRequest, "invalid min_similarity")
			return
		}
		query.MinSimilarity = f
	}

	img, err := imaging.Decode(file)
	if err != nil {
		s.respondServiceError(w, "search decode failed", err)
		return
	}
	s.logger.Debug("search request",
		zap.Int("top_k", query.TopK), zap.Float64("min_similarity", query.MinSimilarity))
	response, err := s.catalog.Search(r.Context(), img, query)
	if err != nil {
		s.respondServiceError(w, "search failed", err)
		return
	}
	s.respondJSON(w, http.StatusOK, response)
}

func (s *Server) handleAddProduct(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "image file is required")
		return
	}
	defer file.Close()

	input := &models.ProductInput{
		ID:       r.FormValue("id"),
		Name:     r.FormValue("name"),
		Category: r.FormValue("category"),
	}
	if v := r.FormValue("price"); v != "" {
		p, err := strconv.ParseFloat(v, 64)
		if err != nil || p < 0 {
			s.respondError(w, http.StatusBadRequest, "invalid price")
			return
		}
		input.Price = p
	}
	s.logger.Debug("add product request",
		zap.String("filename", header.Filename), zap.String("id", input.ID))
	product, err := s.catalog.AddProduct(r.Context(), header.Filename, file, input)
	if err != nil {
		s.respondServiceError(w, "add product failed", err)
		return
	}
	s.respondJSON(w, http.StatusCreated, product)
}

func (s *Server) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	product, err := s.catalog.GetProduct(id)
	if err != nil {
		s.respondServiceError(w, "get product failed", err)
		return
	}
	s.respondJSON(w, http.StatusOK, product)
}

func (s *Server) handleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.logger.Debug("delete product request", zap.String("id", id))
	if err := s.catalog.RemoveProduct(r.Context(), id); err != nil {
		s.respondServiceError(w, "delete product failed", err)
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]string{"id": id, "status": "deleted"})
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	page, err := queryInt(r, "page", 1)
	if err != nil || page < 1 {
		s.respondError(w, http.StatusBadRequest, "invalid page")
		return
	}
	// page_size 0 means the configured default.
	pageSize, err := queryInt(r, "page_size", 0)
	if err != nil || pageSize < 0 {
		s.respondError(w, http.StatusBadRequest, "invalid page_size")
		return
	}
	listing, err := s.catalog.ListPage(r.Context(), page, pageSize, r.URL.Query().Get("query"))
	if err != nil {
		s.respondServiceError(w, "catalog listing failed", err)
		return
	}
	s.respondJSON(w, http.StatusOK, listing)
}

func (s *Server) handleRebuild(w http.ResponseWriter, r *http.Request) {
	s.logger.Debug("rebuild request")
	if err := s.catalog.Rebuild(r.Context()); err != nil {
		s.respondServiceError(w, "rebuild failed", err)
		return
	}
	s.respondJSON(w, http.StatusOK, s.catalog.Stats())
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, s.catalog.Stats())
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// respondServiceError maps catalog errors onto HTTP statuses. Client
// faults log at debug, everything unexpected at error.
func (s *Server) respondServiceError(w http.ResponseWriter, msg string, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, catalog.ErrNotReady):
		status = http.StatusServiceUnavailable
	case errors.Is(err, catalog.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, catalog.ErrDuplicateID):
		status = http.StatusConflict
	case errors.Is(err, catalog.ErrUnsupportedFormat):
		status = http.StatusUnsupportedMediaType
	case errors.Is(err, catalog.ErrInvalidID), errors.Is(err, imaging.ErrUndecodable):
		status = http.StatusBadRequest
	case errors.Is(err, embedding.ErrEmbed):
		status = http.StatusBadGateway
	}
	if status == http.StatusInternalServerError {
		s.logger.Error(msg, zap.Error(err))
	} else {
		s.logger.Debug(msg, zap.Error(err))
	}
	s.respondError(w, status, err.Error())
}

func queryInt(r *http.Request, key string, def int) (int, error) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return def, nil
	}
	return strconv.Atoi(v)
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
