package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lit-planner/scheduler-api/internal/dto"
	"github.com/lit-planner/scheduler-api/internal/service"
	appErrors "github.com/lit-planner/scheduler-api/pkg/errors"
	"github.com/lit-planner/scheduler-api/pkg/response"
)

// AssignmentHandler exposes shift assignment endpoints.
type AssignmentHandler struct {
	service *service.ShiftAssignmentService
}

// NewAssignmentHandler constructs an assignment handler.
func NewAssignmentHandler(svc *service.ShiftAssignmentService) *AssignmentHandler {
	return &AssignmentHandler{service: svc}
}

// ListByEmployee godoc
// @Summary List an employee's assignments
// @Tags Assignments
// @Produce json
// @Param employeeId path string true "Employee ID"
// @Success 200 {object} response.Envelope
// @Router /assignments/employee/{employeeId} [get]
func (h *AssignmentHandler) ListByEmployee(c *gin.Context) {
	assignments, err := h.service.ListByEmployee(c.Request.Context(), identityFromContext(c), c.Param("employeeId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, assignments, nil)
}

// ListByShift godoc
// @Summary List everyone assigned to a shift
// @Tags Assignments
// @Produce json
// @Param shiftId path string true "Shift ID"
// @Success 200 {object} response.Envelope
// @Router /assignments/shift/{shiftId} [get]
func (h *AssignmentHandler) ListByShift(c *gin.Context) {
	assignments, err := h.service.ListByShift(c.Request.Context(), c.Param("shiftId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, assignments, nil)
}

// CheckConflicts godoc
// @Summary Check an employee's schedule for conflicts in a window
// @Tags Assignments
// @Produce json
// @Param employeeId path string true "Employee ID"
// @Param start query string true "Window start (RFC3339)"
// @Param end query string true "Window end (RFC3339)"
// @Success 200 {object} response.Envelope
// @Router /assignments/employee/{employeeId}/conflicts [get]
func (h *AssignmentHandler) CheckConflicts(c *gin.Context) {
	start, err := time.Parse(time.RFC3339, c.Query("start"))
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid start time"))
		return
	}
	end, err := time.Parse(time.RFC3339, c.Query("end"))
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid end time"))
		return
	}

	conflicts, err := h.service.CheckConflicts(c.Request.Context(), c.Param("employeeId"), start, end)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, conflicts, nil)
}

// Assign godoc
// @Summary Assign an employee to a shift
// @Tags Assignments
// @Accept json
// @Produce json
// @Param payload body dto.AssignShiftRequest true "Assignment payload"
// @Success 201 {object} response.Envelope
// @Router /assignments [post]
func (h *AssignmentHandler) Assign(c *gin.Context) {
	var req dto.AssignShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	assignment, err := h.service.Assign(c.Request.Context(), identityFromContext(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, assignment)
}

// Remove godoc
// @Summary Remove an assignment
// @Tags Assignments
// @Param id path string true "Assignment ID"
// @Success 204
// @Router /assignments/{id} [delete]
func (h *AssignmentHandler) Remove(c *gin.Context) {
	if err := h.service.Remove(c.Request.Context(), identityFromContext(c), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
