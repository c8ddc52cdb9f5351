package handler

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"foodhub/internal/repo"
	"foodhub/internal/schema"
	"foodhub/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const msgInternal = "Internal server error"

// ResourceHandler exposes the five CRUD operations of one resource over HTTP.
type ResourceHandler interface {
	List(c *gin.Context)
	Get(c *gin.Context)
	Create(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
}

type resourceHandler[T any] struct {
	service service.ResourceService[T]
	name    string
	label   string
	logger  *zap.Logger
}

func NewResourceHandler[T any](svc service.ResourceService[T], logger *zap.Logger) ResourceHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	name := svc.Resource().Name
	return &resourceHandler[T]{
		service: svc,
		name:    name,
		label:   strings.ToUpper(name[:1]) + name[1:],
		logger:  logger.With(zap.String("resource", name)),
	}
}

// List returns every document of the resource
// @Summary List every document of a resource
// @Tags Resources
// @Produce json
// @Param resource path string true "users, products, orders or reviews"
// @Success 200 {array} object
// @Failure 500 {object} map[string]string
// @Router /{resource} [get]
func (h *resourceHandler[T]) List(c *gin.Context) {
	docs, err := h.service.List(c.Request.Context())
	if err != nil {
		h.fail(c, err, msgInternal)
		return
	}
	c.JSON(http.StatusOK, docs)
}

// @Summary Get one document
// @Tags Resources
// @Produce json
// @Param resource path string true "users, products, orders or reviews"
// @Param id path string true "24 character hex identifier"
// @Success 200 {object} object
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /{resource}/{id} [get]
func (h *resourceHandler[T]) Get(c *gin.Context) {
	doc, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err, msgInternal)
		return
	}
	c.JSON(http.StatusOK, doc)
}

// @Summary Create a document (session required)
// @Tags Resources
// @Accept json
// @Produce json
// @Param resource path string true "users, products, orders or reviews"
// @Success 201 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /{resource} [post]
func (h *resourceHandler[T]) Create(c *gin.Context) {
	payload, ok := bindPayload(c)
	if !ok {
		return
	}

	id, err := h.service.Create(c.Request.Context(), payload)
	if err != nil {
		h.fail(c, err, "Failed to create "+h.name)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":      h.label + " created successfully",
		h.name + "Id": id,
	})
}

// Update checks the id before reading the body.
// @Summary Update allow-listed fields (session required)
// @Tags Resources
// @Accept json
// @Produce json
// @Param resource path string true "users, products, orders or reviews"
// @Param id path string true "24 character hex identifier"
// @Success 200 {object} map[string]any
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /{resource}/{id} [put]
func (h *resourceHandler[T]) Update(c *gin.Context) {
	id := c.Param("id")
	if err := h.service.CheckID(id); err != nil {
		h.fail(c, err, msgInternal)
		return
	}

	payload, ok := bindPayload(c)
	if !ok {
		return
	}

	res, err := h.service.Update(c.Request.Context(), id, payload)
	if err != nil {
		h.fail(c, err, msgInternal)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":       h.label + " updated successfully",
		"matchedCount":  res.MatchedCount,
		"modifiedCount": res.ModifiedCount,
	})
}

// @Summary Delete a document (session required)
// @Tags Resources
// @Param resource path string true "users, products, orders or reviews"
// @Param id path string true "24 character hex identifier"
// @Success 204
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /{resource}/{id} [delete]
func (h *resourceHandler[T]) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err, msgInternal)
		return
	}
	c.Status(http.StatusNoContent)
}

// fail maps service errors onto status codes. persistence is the message
// used when the store did not acknowledge a write.
func (h *resourceHandler[T]) fail(c *gin.Context, err error, persistence string) {
	if se, ok := schema.AsError(err); ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": se.Message})
		return
	}

	switch {
	case errors.Is(err, repo.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": h.label + " not found"})
	case errors.Is(err, repo.ErrDuplicateKey) && h.service.Resource().Duplicate != "":
		c.JSON(http.StatusConflict, gin.H{"error": h.service.Resource().Duplicate})
	case errors.Is(err, repo.ErrPersistence):
		h.logger.Error("write not acknowledged", zap.Error(err), zap.String("path", c.FullPath()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": persistence})
	default:
		h.logger.Error("request failed", zap.Error(err), zap.String("path", c.FullPath()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": msgInternal})
	}
}

// bindPayload decodes the body as a JSON object. Numbers arrive as float64
// and an empty body reads as {}.
func bindPayload(c *gin.Context) (map[string]any, bool) {
	var payload map[string]any
	if err := c.ShouldBindJSON(&payload); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Request body must be a JSON object"})
		return nil, false
	}
	if payload == nil {
		payload = map[string]any{}
	}
	return payload, true
}
