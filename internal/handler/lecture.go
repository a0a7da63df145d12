package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/myrestapi/backend/internal/model"
	"github.com/myrestapi/backend/internal/service"
)

type LectureHandler struct {
	svc *service.LectureService
	log zerolog.Logger
}

func NewLectureHandler(svc *service.LectureService, log zerolog.Logger) *LectureHandler {
	return &LectureHandler{svc: svc, log: log}
}

// Get godoc
// @Summary Get a lecture
// @Tags lectures
// @Produce json
// @Security BearerAuth
// @Param id path int true "Lecture ID"
// @Success 200 {object} model.LectureResource
// @Failure 404 {object} map[string]string
// @Router /api/lectures/{id} [get]
func (h *LectureHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid lecture id"})
		return
	}

	lecture, canUpdate, err := h.svc.Get(c.Request.Context(), id, GetCurrentUser(c))
	if err != nil {
		h.writeError(c, err)
		return
	}

	resource := newLectureResource(lecture)
	if canUpdate {
		resource.Links["update-lecture"] = model.Link{Href: lectureSelfHref(lecture.ID)}
	}
	c.JSON(http.StatusOK, resource)
}

// List godoc
// @Summary List lectures
// @Tags lectures
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(0)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} model.PagedLectures
// @Router /api/lectures [get]
func (h *LectureHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "0"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))

	result, err := h.svc.List(c.Request.Context(), page, size)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, newPagedLectures(result, GetCurrentUser(c) != nil))
}

// Create godoc
// @Summary Create a lecture
// @Tags lectures
// @Accept json
// @Produce json
// @Param request body model.LectureRequest true "Lecture submission"
// @Success 201 {object} model.LectureResource
// @Failure 400 {object} model.ErrorsResource
// @Router /api/lectures [post]
func (h *LectureHandler) Create(c *gin.Context) {
	var req model.LectureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	lecture, err := h.svc.Create(c.Request.Context(), &req, GetCurrentUser(c))
	if err != nil {
		h.writeError(c, err)
		return
	}

	resource := newLectureResource(lecture)
	resource.Links["query-lectures"] = model.Link{Href: lecturesPath}
	resource.Links["update-lecture"] = model.Link{Href: lectureSelfHref(lecture.ID)}

	c.Header("Location", lectureSelfHref(lecture.ID))
	c.JSON(http.StatusCreated, resource)
}

// Update godoc
// @Summary Update a lecture
// @Tags lectures
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Lecture ID"
// @Param request body model.LectureRequest true "Lecture submission"
// @Success 200 {object} model.LectureResource
// @Failure 400 {object} model.ErrorsResource
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/lectures/{id} [put]
func (h *LectureHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid lecture id"})
		return
	}

	var req model.LectureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	lecture, err := h.svc.Update(c.Request.Context(), id, &req, GetCurrentUser(c))
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, newLectureResource(lecture))
}

func (h *LectureHandler) writeError(c *gin.Context, err error) {
	var vErr *service.ValidationError
	switch {
	case errors.As(err, &vErr):
		c.JSON(http.StatusBadRequest, newErrorsResource(vErr.Errors))
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	default:
		h.log.Error().Err(err).Msg("lecture request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
	}
}
