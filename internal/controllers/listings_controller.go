package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/MoathMalki/Integrated-web-project-for-apartment-rentals/internal/dtos"
	"github.com/MoathMalki/Integrated-web-project-for-apartment-rentals/internal/middleware"
	"github.com/MoathMalki/Integrated-web-project-for-apartment-rentals/internal/services"
	"github.com/MoathMalki/Integrated-web-project-for-apartment-rentals/internal/utils"
)

type ListingsController struct {
	listingService *services.ListingService
	validate       *validator.Validate
}

func NewListingsController(ls *services.ListingService) *ListingsController {
	return &ListingsController{
		listingService: ls,
		validate:       validator.New(),
	}
}

// ----------------------------------------------------------------
// POST /api/v1/flats
// ----------------------------------------------------------------
func (c *ListingsController) SubmitFlatHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ctxUserID := ctx.Value(middleware.ContextKeyUserID)
	if ctxUserID == nil {
		utils.RespondErrorWithCode(
			w, http.StatusUnauthorized, utils.ErrCodeUnauthorized,
			"No userID in context", nil, nil,
		)
		return
	}

	var body dtos.SubmitFlatRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeInvalidPayload,
			"Invalid JSON for flat submission payload", nil, err,
		)
		return
	}
	if err := c.validate.Struct(body); err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeValidation,
			err.Error(), nil, err,
		)
		return
	}

	flatID, err := c.listingService.Submit(ctx, ctxUserID.(string), body)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, dtos.SubmitFlatResponse{
		FlatID: flatID,
		Status: "PENDING_REVIEW",
	})
}

// ----------------------------------------------------------------
// GET /api/v1/flats/my
// ----------------------------------------------------------------
func (c *ListingsController) ListMyFlatsHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ctxUserID := ctx.Value(middleware.ContextKeyUserID)
	if ctxUserID == nil {
		utils.RespondErrorWithCode(
			w, http.StatusUnauthorized, utils.ErrCodeUnauthorized,
			"No userID in context", nil, nil,
		)
		return
	}

	resp, err := c.listingService.ListByOwner(ctx, ctxUserID.(string))
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// ----------------------------------------------------------------
// GET /api/v1/flats/pending
// ----------------------------------------------------------------
func (c *ListingsController) ListPendingFlatsHandler(w http.ResponseWriter, r *http.Request) {
	resp, err := c.listingService.ListPending(r.Context())
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// ----------------------------------------------------------------
// POST /api/v1/flats/approve
// ----------------------------------------------------------------
func (c *ListingsController) ApproveFlatHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ctxUserID := ctx.Value(middleware.ContextKeyUserID)
	if ctxUserID == nil {
		utils.RespondErrorWithCode(
			w, http.StatusUnauthorized, utils.ErrCodeUnauthorized,
			"No userID in context", nil, nil,
		)
		return
	}

	var body dtos.ApproveFlatRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeInvalidPayload,
			"Invalid JSON for approve payload", nil, err,
		)
		return
	}
	if err := c.validate.Struct(body); err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeValidation,
			err.Error(), nil, err,
		)
		return
	}

	reference, err := c.listingService.Approve(ctx, body.FlatID, ctxUserID.(string))
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, dtos.ApproveFlatResponse{
		FlatID:        body.FlatID,
		FlatReference: reference,
	})
}

// ----------------------------------------------------------------
// POST /api/v1/flats/reject
// ----------------------------------------------------------------
func (c *ListingsController) RejectFlatHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ctxUserID := ctx.Value(middleware.ContextKeyUserID)
	if ctxUserID == nil {
		utils.RespondErrorWithCode(
			w, http.StatusUnauthorized, utils.ErrCodeUnauthorized,
			"No userID in context", nil, nil,
		)
		return
	}

	var body dtos.RejectFlatRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeInvalidPayload,
			"Invalid JSON for reject payload", nil, err,
		)
		return
	}
	if err := c.validate.Struct(body); err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeValidation,
			err.Error(), nil, err,
		)
		return
	}

	if err := c.listingService.Reject(ctx, body.FlatID, ctxUserID.(string), body.Reason); err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "REJECTED"})
}
