package routes

const (
	// Health
	Health = "/health"

	// Prometheus scrape endpoint
	Metrics = "/metrics"

	// Owner endpoints
	FlatsBase = "/api/v1/flats"
	FlatsMy   = "/api/v1/flats/my"

	// Manager review endpoints
	FlatsPending = "/api/v1/flats/pending"
	FlatsApprove = "/api/v1/flats/approve"
	FlatsReject  = "/api/v1/flats/reject"

	// Customer endpoints
	FlatAvailability = "/api/v1/flats/{flatID}/availability"
	FlatViewingSlots = "/api/v1/flats/{flatID}/viewing-slots"

	RentalsBase = "/api/v1/rentals"
	RentalsMy   = "/api/v1/rentals/my"

	ViewingsClaim = "/api/v1/viewings/claim"
	ViewingsMy    = "/api/v1/viewings/my"

	BasketBase     = "/api/v1/basket"
	BasketItem     = "/api/v1/basket/{holdID}"
	BasketCheckout = "/api/v1/basket/{holdID}/checkout"

	NotificationsBase = "/api/v1/notifications"
	NotificationsRead = "/api/v1/notifications/read"
)
