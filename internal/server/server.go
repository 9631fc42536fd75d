// Package server exposes decoded models over a small REST API.
package server

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v5"
	"go.uber.org/zap"

	"github.com/arkavell/uefkit/internal/config"
	"github.com/arkavell/uefkit/pkg/uef"
)

// Server decodes uploaded model files and serves their contents.
type Server struct {
	cfg   *config.Config
	log   *zap.Logger
	store *ModelStore
	clock func() time.Time
}

// NewServer creates a Server. A nil store gets one sized from config.
func NewServer(cfg *config.Config, log *zap.Logger, store *ModelStore) *Server {
	if cfg == nil {
		cfg = config.Default()
	}
	if log == nil {
		log = zap.NewNop()
	}
	if store == nil {
		store = NewModelStore(cfg.Cache.Entries)
	}
	return &Server{
		cfg:   cfg,
		log:   log,
		store: store,
		clock: time.Now,
	}
}

func (s *Server) Register(e *echo.Echo) {
	e.GET("/healthz", s.handleHealth)

	e.POST("/v1/models", s.handleUploadModel)
	e.GET("/v1/models", s.handleListModels)
	e.GET("/v1/models/:id", s.handleGetModel)
	e.DELETE("/v1/models/:id", s.handleDeleteModel)
	e.GET("/v1/models/:id/lods/:index", s.handleGetLOD)
}

func (s *Server) handleHealth(c *echo.Context) error {
	return writeJSON(c, http.StatusOK, healthResp{
		Status: "ok",
		Models: s.store.Len(),
	})
}

func (s *Server) handleUploadModel(c *echo.Context) error {
	limit := int64(s.cfg.Server.MaxUploadMB) << 20
	if limit <= 0 {
		limit = 256 << 20
	}

	data, err := readUpload(c.Request(), limit)
	if err != nil {
		if errors.Is(err, errUploadTooLarge) {
			return writeError(c, http.StatusRequestEntityTooLarge, "invalid_request_error", err.Error())
		}
		return writeBadRequest(c, err.Error())
	}

	model, err := uef.Parse(data)
	if err != nil {
		return writeBadRequest(c, err.Error())
	}

	sum := summarize(model, len(data), s.clock())
	sum.ID = newModelID()
	s.store.Add(&storedModel{Summary: sum, Model: model})

	s.log.Info("stored model",
		zap.String("id", sum.ID),
		zap.String("name", sum.Name),
		zap.String("identifier", sum.Identifier),
		zap.Int("lods", len(sum.LODs)),
		zap.Int("bytes", sum.SizeBytes))

	return writeJSON(c, http.StatusCreated, sum)
}

func (s *Server) handleListModels(c *echo.Context) error {
	return writeJSON(c, http.StatusOK, map[string]any{
		"models": s.store.List(),
	})
}

func (s *Server) handleGetModel(c *echo.Context) error {
	rec, ok := s.store.Get(c.Param("id"))
	if !ok {
		return writeNotFound(c, "model not found")
	}
	return writeJSON(c, http.StatusOK, rec.Summary)
}

func (s *Server) handleDeleteModel(c *echo.Context) error {
	id := c.Param("id")
	if !s.store.Delete(id) {
		return writeNotFound(c, "model not found")
	}
	s.log.Info("deleted model", zap.String("id", id))
	return writeJSON(c, http.StatusOK, DeleteModelResp{ID: id, Deleted: true})
}

func (s *Server) handleGetLOD(c *echo.Context) error {
	rec, ok := s.store.Get(c.Param("id"))
	if !ok {
		return writeNotFound(c, "model not found")
	}

	index, err := strconv.Atoi(c.Param("index"))
	if err != nil || index < 0 || index >= len(rec.Model.LODs) {
		return writeNotFound(c, "lod not found")
	}

	scale := s.cfg.Import.Scale
	if q := c.QueryParam("scale"); q != "" {
		f, err := strconv.ParseFloat(q, 32)
		if err != nil || f <= 0 {
			return writeBadRequest(c, "scale must be a positive number")
		}
		scale = float32(f)
	}

	return writeJSON(c, http.StatusOK, geometryFor(&rec.Model.LODs[index], scale))
}
