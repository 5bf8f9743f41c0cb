package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lit-planner/scheduler-api/internal/dto"
	"github.com/lit-planner/scheduler-api/internal/models"
	appErrors "github.com/lit-planner/scheduler-api/pkg/errors"
	"github.com/lit-planner/scheduler-api/pkg/response"
)

// ProposalService is the workflow surface the handler depends on.
type ProposalService interface {
	Create(ctx context.Context, actor models.Identity, req dto.CreateShiftProposalRequest) (*models.ShiftProposal, error)
	Get(ctx context.Context, actor models.Identity, id string) (*models.ShiftProposal, error)
	ListMine(ctx context.Context, actor models.Identity) ([]models.ShiftProposal, error)
	ListAll(ctx context.Context, actor models.Identity) ([]models.ShiftProposal, error)
	Update(ctx context.Context, actor models.Identity, id string, req dto.UpdateShiftProposalRequest) (*models.ShiftProposal, error)
	Cancel(ctx context.Context, actor models.Identity, id string) (*models.ShiftProposal, error)
	Accept(ctx context.Context, actor models.Identity, id string) (*models.ShiftProposal, error)
	Reject(ctx context.Context, actor models.Identity, id string, req dto.RejectProposalRequest) (*models.ShiftProposal, error)
	ProposeAlternative(ctx context.Context, actor models.Identity, id string, req dto.AlternativeProposalRequest) (*models.ShiftProposal, error)
	ExportCSV(ctx context.Context, actor models.Identity) ([]byte, error)
}

// ProposalHandler exposes shift proposal workflow endpoints.
type ProposalHandler struct {
	service ProposalService
}

// NewProposalHandler constructs a proposal handler.
func NewProposalHandler(svc ProposalService) *ProposalHandler {
	return &ProposalHandler{service: svc}
}

// Create godoc
// @Summary Submit a shift proposal
// @Tags Proposals
// @Accept json
// @Produce json
// @Param payload body dto.CreateShiftProposalRequest true "Proposal payload"
// @Success 201 {object} response.Envelope
// @Router /proposals [post]
func (h *ProposalHandler) Create(c *gin.Context) {
	var req dto.CreateShiftProposalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	proposal, err := h.service.Create(c.Request.Context(), identityFromContext(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, proposal)
}

// Get godoc
// @Summary Get a shift proposal
// @Tags Proposals
// @Produce json
// @Param id path string true "Proposal ID"
// @Success 200 {object} response.Envelope
// @Router /proposals/{id} [get]
func (h *ProposalHandler) Get(c *gin.Context) {
	proposal, err := h.service.Get(c.Request.Context(), identityFromContext(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, proposal, nil)
}

// ListMine godoc
// @Summary List the caller's shift proposals
// @Tags Proposals
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /proposals/mine [get]
func (h *ProposalHandler) ListMine(c *gin.Context) {
	proposals, err := h.service.ListMine(c.Request.Context(), identityFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, proposals, nil)
}

// ListAll godoc
// @Summary List every shift proposal
// @Tags Proposals
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /proposals [get]
func (h *ProposalHandler) ListAll(c *gin.Context) {
	proposals, err := h.service.ListAll(c.Request.Context(), identityFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, proposals, nil)
}

// Update godoc
// @Summary Edit a pending shift proposal
// @Tags Proposals
// @Accept json
// @Produce json
// @Param id path string true "Proposal ID"
// @Param payload body dto.UpdateShiftProposalRequest true "Proposal payload"
// @Success 200 {object} response.Envelope
// @Router /proposals/{id} [put]
func (h *ProposalHandler) Update(c *gin.Context) {
	var req dto.UpdateShiftProposalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	proposal, err := h.service.Update(c.Request.Context(), identityFromContext(c), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, proposal, nil)
}

// Cancel godoc
// @Summary Withdraw a pending shift proposal
// @Tags Proposals
// @Produce json
// @Param id path string true "Proposal ID"
// @Success 200 {object} response.Envelope
// @Router /proposals/{id}/cancel [post]
func (h *ProposalHandler) Cancel(c *gin.Context) {
	proposal, err := h.service.Cancel(c.Request.Context(), identityFromContext(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, proposal, nil)
}

// Accept godoc
// @Summary Accept a shift proposal
// @Tags Proposals
// @Produce json
// @Param id path string true "Proposal ID"
// @Success 200 {object} response.Envelope
// @Router /proposals/{id}/accept [post]
func (h *ProposalHandler) Accept(c *gin.Context) {
	proposal, err := h.service.Accept(c.Request.Context(), identityFromContext(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, proposal, nil)
}

// Reject godoc
// @Summary Reject a shift proposal
// @Tags Proposals
// @Accept json
// @Produce json
// @Param id path string true "Proposal ID"
// @Param payload body dto.RejectProposalRequest false "Decision payload"
// @Success 200 {object} response.Envelope
// @Router /proposals/{id}/reject [post]
func (h *ProposalHandler) Reject(c *gin.Context) {
	var req dto.RejectProposalRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
			return
		}
	}
	proposal, err := h.service.Reject(c.Request.Context(), identityFromContext(c), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, proposal, nil)
}

// ProposeAlternative godoc
// @Summary Counter a shift proposal with an alternative
// @Tags Proposals
// @Accept json
// @Produce json
// @Param id path string true "Proposal ID"
// @Param payload body dto.AlternativeProposalRequest true "Alternative payload"
// @Success 200 {object} response.Envelope
// @Router /proposals/{id}/alternative [post]
func (h *ProposalHandler) ProposeAlternative(c *gin.Context) {
	var req dto.AlternativeProposalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	proposal, err := h.service.ProposeAlternative(c.Request.Context(), identityFromContext(c), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, proposal, nil)
}

// ExportCSV godoc
// @Summary Export every shift proposal as CSV
// @Tags Proposals
// @Produce text/csv
// @Success 200 {string} string "CSV payload"
// @Router /proposals/export [get]
func (h *ProposalHandler) ExportCSV(c *gin.Context) {
	data, err := h.service.ExportCSV(c.Request.Context(), identityFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	filename := fmt.Sprintf("proposals-%s.csv", time.Now().UTC().Format("20060102-150405"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/csv", data)
}
