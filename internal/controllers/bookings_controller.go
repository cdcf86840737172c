package controllers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/MoathMalki/Integrated-web-project-for-apartment-rentals/internal/dtos"
	"github.com/MoathMalki/Integrated-web-project-for-apartment-rentals/internal/middleware"
	"github.com/MoathMalki/Integrated-web-project-for-apartment-rentals/internal/services"
	"github.com/MoathMalki/Integrated-web-project-for-apartment-rentals/internal/utils"
)

type BookingsController struct {
	bookingService      *services.BookingService
	availabilityService *services.AvailabilityService
	validate            *validator.Validate
}

func NewBookingsController(
	bs *services.BookingService,
	as *services.AvailabilityService,
) *BookingsController {
	return &BookingsController{
		bookingService:      bs,
		availabilityService: as,
		validate:            validator.New(),
	}
}

// ----------------------------------------------------------------
// POST /api/v1/rentals
// ----------------------------------------------------------------
func (c *BookingsController) BookRentalHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ctxUserID := ctx.Value(middleware.ContextKeyUserID)
	if ctxUserID == nil {
		utils.RespondErrorWithCode(
			w, http.StatusUnauthorized, utils.ErrCodeUnauthorized,
			"No userID in context", nil, nil,
		)
		return
	}

	var body dtos.BookRentalRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeInvalidPayload,
			"Invalid JSON for booking payload", nil, err,
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

	resp, err := c.bookingService.Book(ctx, ctxUserID.(string), body)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, resp)
}

// ----------------------------------------------------------------
// GET /api/v1/rentals/my
// ----------------------------------------------------------------
func (c *BookingsController) ListMyRentalsHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ctxUserID := ctx.Value(middleware.ContextKeyUserID)
	if ctxUserID == nil {
		utils.RespondErrorWithCode(
			w, http.StatusUnauthorized, utils.ErrCodeUnauthorized,
			"No userID in context", nil, nil,
		)
		return
	}

	resp, err := c.bookingService.ListByCustomer(ctx, ctxUserID.(string))
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// ----------------------------------------------------------------
// GET /api/v1/flats/{flatID}/availability?start=YYYY-MM-DD&end=YYYY-MM-DD
// ----------------------------------------------------------------
func (c *BookingsController) FlatAvailabilityHandler(w http.ResponseWriter, r *http.Request) {
	flatID, err := uuid.Parse(mux.Vars(r)["flatID"])
	if err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeInvalidPayload,
			"flatID must be a valid UUID", nil, err,
		)
		return
	}

	start, err := time.Parse("2006-01-02", r.URL.Query().Get("start"))
	if err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeInvalidPayload,
			"start must be a date in YYYY-MM-DD format", nil, err,
		)
		return
	}
	end, err := time.Parse("2006-01-02", r.URL.Query().Get("end"))
	if err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeInvalidPayload,
			"end must be a date in YYYY-MM-DD format", nil, err,
		)
		return
	}
	if end.Before(start) {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeInvalidPayload,
			"end must not be before start", nil, nil,
		)
		return
	}

	bookable, err := c.availabilityService.IsBookable(r.Context(), flatID, start, end)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.AvailabilityResponse{
		FlatID:   flatID,
		Bookable: bookable,
	})
}
