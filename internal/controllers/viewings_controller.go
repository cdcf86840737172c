package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/MoathMalki/Integrated-web-project-for-apartment-rentals/internal/dtos"
	"github.com/MoathMalki/Integrated-web-project-for-apartment-rentals/internal/middleware"
	"github.com/MoathMalki/Integrated-web-project-for-apartment-rentals/internal/services"
	"github.com/MoathMalki/Integrated-web-project-for-apartment-rentals/internal/utils"
)

type ViewingsController struct {
	viewingService *services.ViewingService
	validate       *validator.Validate
}

func NewViewingsController(vs *services.ViewingService) *ViewingsController {
	return &ViewingsController{
		viewingService: vs,
		validate:       validator.New(),
	}
}

// ----------------------------------------------------------------
// POST /api/v1/viewings/claim
// ----------------------------------------------------------------
func (c *ViewingsController) ClaimSlotHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ctxUserID := ctx.Value(middleware.ContextKeyUserID)
	if ctxUserID == nil {
		utils.RespondErrorWithCode(
			w, http.StatusUnauthorized, utils.ErrCodeUnauthorized,
			"No userID in context", nil, nil,
		)
		return
	}

	var body dtos.ClaimSlotRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeInvalidPayload,
			"Invalid JSON for claim payload", nil, err,
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

	resp, err := c.viewingService.Claim(ctx, ctxUserID.(string), body.SlotID)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	// A lost race is 200 with claimed=false, not an error status.
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// ----------------------------------------------------------------
// GET /api/v1/flats/{flatID}/viewing-slots
// ----------------------------------------------------------------
func (c *ViewingsController) ListFlatSlotsHandler(w http.ResponseWriter, r *http.Request) {
	flatID, err := uuid.Parse(mux.Vars(r)["flatID"])
	if err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeInvalidPayload,
			"flatID must be a valid UUID", nil, err,
		)
		return
	}

	resp, err := c.viewingService.ListOpenByFlat(r.Context(), flatID)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// ----------------------------------------------------------------
// GET /api/v1/viewings/my
// ----------------------------------------------------------------
func (c *ViewingsController) ListMyViewingsHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ctxUserID := ctx.Value(middleware.ContextKeyUserID)
	if ctxUserID == nil {
		utils.RespondErrorWithCode(
			w, http.StatusUnauthorized, utils.ErrCodeUnauthorized,
			"No userID in context", nil, nil,
		)
		return
	}

	resp, err := c.viewingService.ListClaimsByCustomer(ctx, ctxUserID.(string))
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}
