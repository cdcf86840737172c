package constants

// Listing submission rules
const (
	MinFlatPhotos = 3
	MaxFlatPhotos = 10

	// Flat references are 6-digit numeric strings; collisions are
	// expected at this size so the generator redraws up to this budget.
	FlatReferenceLength      = 6
	MaxReferenceDrawAttempts = 25
)

// Billing: partial months round up to whole 30-day units.
const DaysPerBillableMonth = 30

// Opaque payment tokens wrap the 9-digit card numbers the legacy
// system collected. No settlement happens anywhere in this service.
const CardNumberLength = 9

// Cron spec for the nightly tenancy roll-over (confirmed -> active -> completed).
const TenancyRolloverCronSpec = "5 0 * * *"
