package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lit-planner/scheduler-api/internal/dto"
	"github.com/lit-planner/scheduler-api/internal/models"
	appErrors "github.com/lit-planner/scheduler-api/pkg/errors"
	"github.com/lit-planner/scheduler-api/pkg/response"
)

// SwapService is the workflow surface the handler depends on.
type SwapService interface {
	Create(ctx context.Context, actor models.Identity, req dto.CreateSwapProposalRequest) (*models.SwapProposal, error)
	Get(ctx context.Context, actor models.Identity, id string) (*models.SwapProposal, error)
	ListMine(ctx context.Context, actor models.Identity) ([]models.SwapProposal, error)
	ListAll(ctx context.Context, actor models.Identity) ([]models.SwapProposal, error)
	Accept(ctx context.Context, actor models.Identity, id string, req dto.AcceptSwapRequest) (*models.SwapProposal, error)
	Decline(ctx context.Context, actor models.Identity, id string, req dto.DeclineSwapRequest) (*models.SwapProposal, error)
}

// SwapHandler exposes swap proposal workflow endpoints.
type SwapHandler struct {
	service SwapService
}

// NewSwapHandler constructs a swap handler.
func NewSwapHandler(svc SwapService) *SwapHandler {
	return &SwapHandler{service: svc}
}

// Create godoc
// @Summary Submit a swap proposal
// @Tags Swaps
// @Accept json
// @Produce json
// @Param payload body dto.CreateSwapProposalRequest true "Swap payload"
// @Success 201 {object} response.Envelope
// @Router /swaps [post]
func (h *SwapHandler) Create(c *gin.Context) {
	var req dto.CreateSwapProposalRequest
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
// @Summary Get a swap proposal
// @Tags Swaps
// @Produce json
// @Param id path string true "Swap proposal ID"
// @Success 200 {object} response.Envelope
// @Router /swaps/{id} [get]
func (h *SwapHandler) Get(c *gin.Context) {
	proposal, err := h.service.Get(c.Request.Context(), identityFromContext(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, proposal, nil)
}

// ListMine godoc
// @Summary List the caller's swap proposals
// @Tags Swaps
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /swaps/mine [get]
func (h *SwapHandler) ListMine(c *gin.Context) {
	proposals, err := h.service.ListMine(c.Request.Context(), identityFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, proposals, nil)
}

// ListAll godoc
// @Summary List every swap proposal
// @Tags Swaps
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /swaps [get]
func (h *SwapHandler) ListAll(c *gin.Context) {
	proposals, err := h.service.ListAll(c.Request.Context(), identityFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, proposals, nil)
}

// Accept godoc
// @Summary Accept a swap proposal and execute the exchange
// @Tags Swaps
// @Accept json
// @Produce json
// @Param id path string true "Swap proposal ID"
// @Param payload body dto.AcceptSwapRequest true "Counterparty payload"
// @Success 200 {object} response.Envelope
// @Router /swaps/{id}/accept [post]
func (h *SwapHandler) Accept(c *gin.Context) {
	var req dto.AcceptSwapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	proposal, err := h.service.Accept(c.Request.Context(), identityFromContext(c), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, proposal, nil)
}

// Decline godoc
// @Summary Decline a swap proposal
// @Tags Swaps
// @Accept json
// @Produce json
// @Param id path string true "Swap proposal ID"
// @Param payload body dto.DeclineSwapRequest false "Decision payload"
// @Success 200 {object} response.Envelope
// @Router /swaps/{id}/decline [post]
func (h *SwapHandler) Decline(c *gin.Context) {
	var req dto.DeclineSwapRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
			return
		}
	}
	proposal, err := h.service.Decline(c.Request.Context(), identityFromContext(c), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, proposal, nil)
}
