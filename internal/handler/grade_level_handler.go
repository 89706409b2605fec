package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/school-api/internal/service"
	appErrors "github.com/noah-isme/school-api/pkg/errors"
	"github.com/noah-isme/school-api/pkg/response"
)

// GradeLevelHandler handles grade level endpoints.
type GradeLevelHandler struct {
	service *service.GradeLevelService
}

// NewGradeLevelHandler constructs a grade level handler.
func NewGradeLevelHandler(svc *service.GradeLevelService) *GradeLevelHandler {
	return &GradeLevelHandler{service: svc}
}

// List godoc
// @Summary List grade levels
// @Tags GradeLevels
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.GradeLevel
// @Router /api/grade_levels [get]
func (h *GradeLevelHandler) List(c *gin.Context) {
	levels, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, levels)
}

// Get godoc
// @Summary Get grade level by id
// @Tags GradeLevels
// @Produce json
// @Security BearerAuth
// @Param id path int true "Grade level ID"
// @Success 200 {object} models.GradeLevel
// @Failure 404 {object} response.Envelope
// @Router /api/grade_levels/{id} [get]
func (h *GradeLevelHandler) Get(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	level, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, level)
}

// Create godoc
// @Summary Create a grade level
// @Tags GradeLevels
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body service.CreateGradeLevelRequest true "Grade level payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /api/grade_levels/create [post]
func (h *GradeLevelHandler) Create(c *gin.Context) {
	var req service.CreateGradeLevelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	level, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Grade level created successfully", level)
}

// Update godoc
// @Summary Update a grade level
// @Tags GradeLevels
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Grade level ID"
// @Param payload body service.CreateGradeLevelRequest true "Grade level payload"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /api/grade_levels/update/{id} [put]
func (h *GradeLevelHandler) Update(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	var req service.CreateGradeLevelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	if _, err := h.service.Update(c.Request.Context(), id, req); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Grade level updated successfully")
}

// Delete godoc
// @Summary Delete a grade level
// @Tags GradeLevels
// @Produce json
// @Security BearerAuth
// @Param id path int true "Grade level ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /api/grade_levels/{id} [delete]
func (h *GradeLevelHandler) Delete(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Grade level deleted successfully")
}
