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

type BasketController struct {
	basketService *services.BasketService
	validate      *validator.Validate
}

func NewBasketController(bs *services.BasketService) *BasketController {
	return &BasketController{
		basketService: bs,
		validate:      validator.New(),
	}
}

// ----------------------------------------------------------------
// POST /api/v1/basket
// ----------------------------------------------------------------
func (c *BasketController) HoldFlatHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ctxUserID := ctx.Value(middleware.ContextKeyUserID)
	if ctxUserID == nil {
		utils.RespondErrorWithCode(
			w, http.StatusUnauthorized, utils.ErrCodeUnauthorized,
			"No userID in context", nil, nil,
		)
		return
	}

	var body dtos.HoldFlatRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeInvalidPayload,
			"Invalid JSON for hold payload", nil, err,
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

	resp, err := c.basketService.Hold(ctx, ctxUserID.(string), body)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, resp)
}

// ----------------------------------------------------------------
// GET /api/v1/basket
// ----------------------------------------------------------------
func (c *BasketController) ListBasketHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ctxUserID := ctx.Value(middleware.ContextKeyUserID)
	if ctxUserID == nil {
		utils.RespondErrorWithCode(
			w, http.StatusUnauthorized, utils.ErrCodeUnauthorized,
			"No userID in context", nil, nil,
		)
		return
	}

	resp, err := c.basketService.List(ctx, ctxUserID.(string))
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// ----------------------------------------------------------------
// DELETE /api/v1/basket/{holdID}
// ----------------------------------------------------------------
func (c *BasketController) ReleaseHoldHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ctxUserID := ctx.Value(middleware.ContextKeyUserID)
	if ctxUserID == nil {
		utils.RespondErrorWithCode(
			w, http.StatusUnauthorized, utils.ErrCodeUnauthorized,
			"No userID in context", nil, nil,
		)
		return
	}

	holdID, err := uuid.Parse(mux.Vars(r)["holdID"])
	if err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeInvalidPayload,
			"holdID must be a valid UUID", nil, err,
		)
		return
	}

	if err := c.basketService.Release(ctx, ctxUserID.(string), holdID); err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "released"})
}

// ----------------------------------------------------------------
// POST /api/v1/basket/{holdID}/checkout
// ----------------------------------------------------------------
func (c *BasketController) CheckoutHoldHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ctxUserID := ctx.Value(middleware.ContextKeyUserID)
	if ctxUserID == nil {
		utils.RespondErrorWithCode(
			w, http.StatusUnauthorized, utils.ErrCodeUnauthorized,
			"No userID in context", nil, nil,
		)
		return
	}

	holdID, err := uuid.Parse(mux.Vars(r)["holdID"])
	if err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeInvalidPayload,
			"holdID must be a valid UUID", nil, err,
		)
		return
	}

	var body dtos.CheckoutHoldRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeInvalidPayload,
			"Invalid JSON for checkout payload", nil, err,
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

	resp, err := c.basketService.Checkout(ctx, ctxUserID.(string), holdID, body)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, resp)
}
