package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/MoathMalki/Integrated-web-project-for-apartment-rentals/internal/metrics"
	"github.com/MoathMalki/Integrated-web-project-for-apartment-rentals/internal/models"
	"github.com/MoathMalki/Integrated-web-project-for-apartment-rentals/internal/utils"
)

// Prometheus collectors register globally, so the whole test binary
// shares one instance.
var testMetrics = metrics.NewRentalMetrics()

/* ------------------------------------------------------------------
   In-memory repository fakes. Each one reproduces the concurrency
   contract of its real counterpart under a mutex.
------------------------------------------------------------------ */

type fakeFlatRepo struct {
	mu    sync.Mutex
	flats map[uuid.UUID]*models.Flat
	refs  map[string]bool

	// First N ApproveAtomic calls fail as if the unique index caught a
	// duplicate reference.
	failApprovals int
}

func newFakeFlatRepo() *fakeFlatRepo {
	return &fakeFlatRepo{
		flats: make(map[uuid.UUID]*models.Flat),
		refs:  make(map[string]bool),
	}
}

func (r *fakeFlatRepo) Create(ctx context.Context, f *models.Flat) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *f
	cp.CreatedAt = time.Now()
	r.flats[f.ID] = &cp
	return nil
}

func (r *fakeFlatRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Flat, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.flats[id]
	if !ok {
		return nil, nil
	}
	cp := *f
	return &cp, nil
}

func (r *fakeFlatRepo) ListPendingReview(ctx context.Context) ([]*models.Flat, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Flat
	for _, f := range r.flats {
		if f.Status == models.FlatStatusPendingReview {
			cp := *f
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeFlatRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*models.Flat, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Flat
	for _, f := range r.flats {
		if f.OwnerID == ownerID {
			cp := *f
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeFlatRepo) ReferenceExists(ctx context.Context, reference string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.refs[reference], nil
}

func (r *fakeFlatRepo) ApproveAtomic(ctx context.Context, flatID, reviewerID uuid.UUID, reference string) (*models.Flat, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	f, ok := r.flats[flatID]
	if !ok {
		return nil, utils.ErrNotFound
	}
	if f.Status != models.FlatStatusPendingReview {
		return nil, utils.ErrInvalidTransition
	}
	if r.failApprovals > 0 {
		r.failApprovals--
		return nil, utils.ErrReferenceTaken
	}
	if r.refs[reference] {
		return nil, utils.ErrReferenceTaken
	}

	now := time.Now()
	f.Status = models.FlatStatusApproved
	f.FlatReference = &reference
	f.ApprovedBy = &reviewerID
	f.ReviewedAt = &now
	f.RowVersion++
	r.refs[reference] = true

	cp := *f
	return &cp, nil
}

func (r *fakeFlatRepo) RejectAtomic(ctx context.Context, flatID, reviewerID uuid.UUID, reason string) (*models.Flat, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	f, ok := r.flats[flatID]
	if !ok {
		return nil, utils.ErrNotFound
	}
	if f.Status != models.FlatStatusPendingReview {
		return nil, utils.ErrInvalidTransition
	}

	now := time.Now()
	f.Status = models.FlatStatusRejected
	f.RejectionReason = &reason
	f.RejectedBy = &reviewerID
	f.ReviewedAt = &now
	f.RowVersion++

	cp := *f
	return &cp, nil
}

type fakeTenancyRepo struct {
	mu        sync.Mutex
	tenancies []*models.Tenancy
	flats     *fakeFlatRepo
}

func newFakeTenancyRepo(flats *fakeFlatRepo) *fakeTenancyRepo {
	return &fakeTenancyRepo{flats: flats}
}

func (r *fakeTenancyRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Tenancy, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.tenancies {
		if t.ID == id {
			cp := *t
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeTenancyRepo) ListByFlat(ctx context.Context, flatID uuid.UUID) ([]*models.Tenancy, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Tenancy
	for _, t := range r.tenancies {
		if t.FlatID == flatID {
			cp := *t
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeTenancyRepo) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]*models.Tenancy, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Tenancy
	for _, t := range r.tenancies {
		if t.CustomerID == customerID && t.Status != models.TenancyStatusCancelled {
			cp := *t
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeTenancyRepo) overlapsLocked(flatID uuid.UUID, start, end time.Time) bool {
	for _, t := range r.tenancies {
		if t.FlatID != flatID || !t.Status.BlocksAvailability() {
			continue
		}
		if !t.StartDate.After(end) && !t.EndDate.Before(start) {
			return true
		}
	}
	return false
}

func (r *fakeTenancyRepo) HasBlockingOverlap(ctx context.Context, flatID uuid.UUID, start, end time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.overlapsLocked(flatID, start, end), nil
}

func (r *fakeTenancyRepo) ExistsCoveringDay(ctx context.Context, flatID uuid.UUID, day time.Time) (bool, error) {
	return r.HasBlockingOverlap(ctx, flatID, day, day)
}

func (r *fakeTenancyRepo) BookAtomic(ctx context.Context, t *models.Tenancy) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	flat, _ := r.flats.GetByID(ctx, t.FlatID)
	if flat == nil {
		return utils.ErrNotFound
	}
	if flat.Status != models.FlatStatusApproved {
		return utils.ErrFlatNotRentable
	}
	if r.overlapsLocked(t.FlatID, t.StartDate, t.EndDate) {
		return utils.ErrRangeUnavailable
	}

	cp := *t
	cp.CreatedAt = time.Now()
	r.tenancies = append(r.tenancies, &cp)
	return nil
}

func (r *fakeTenancyRepo) ActivateDue(ctx context.Context, today time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, t := range r.tenancies {
		if t.Status == models.TenancyStatusConfirmed && !t.StartDate.After(today) && !t.EndDate.Before(today) {
			t.Status = models.TenancyStatusActive
			n++
		}
	}
	return n, nil
}

func (r *fakeTenancyRepo) CompleteExpired(ctx context.Context, today time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, t := range r.tenancies {
		if t.Status.BlocksAvailability() && t.EndDate.Before(today) {
			t.Status = models.TenancyStatusCompleted
			n++
		}
	}
	return n, nil
}

type fakeSlotRepo struct {
	mu    sync.Mutex
	slots map[uuid.UUID]*models.ViewingSlot
}

func newFakeSlotRepo() *fakeSlotRepo {
	return &fakeSlotRepo{slots: make(map[uuid.UUID]*models.ViewingSlot)}
}

func (r *fakeSlotRepo) CreateBulk(ctx context.Context, slots []*models.ViewingSlot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range slots {
		cp := *s
		r.slots[s.ID] = &cp
	}
	return nil
}

func (r *fakeSlotRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.ViewingSlot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.slots[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *fakeSlotRepo) ListUpcomingByFlat(ctx context.Context, flatID uuid.UUID, from time.Time) ([]*models.ViewingSlot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.ViewingSlot
	for _, s := range r.slots {
		if s.FlatID == flatID && !s.SlotDate.Before(from) {
			cp := *s
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeSlotRepo) ListClaimedByCustomer(ctx context.Context, customerID uuid.UUID) ([]*models.ViewingSlot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.ViewingSlot
	for _, s := range r.slots {
		if s.ClaimedBy != nil && *s.ClaimedBy == customerID {
			cp := *s
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeSlotRepo) ClaimAtomic(ctx context.Context, slotID, customerID uuid.UUID, today time.Time) (*models.ViewingSlot, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.slots[slotID]
	if !ok || s.ClaimState != models.SlotOpen || s.SlotDate.Before(today) {
		return nil, false, nil
	}
	s.ClaimState = models.SlotClaimed
	s.ClaimedBy = &customerID
	s.RowVersion++
	cp := *s
	return &cp, true, nil
}

type fakeBasketRepo struct {
	mu    sync.Mutex
	holds map[uuid.UUID]map[uuid.UUID]*models.SoftHold // customer -> flat -> hold
}

func newFakeBasketRepo() *fakeBasketRepo {
	return &fakeBasketRepo{holds: make(map[uuid.UUID]map[uuid.UUID]*models.SoftHold)}
}

func (r *fakeBasketRepo) Upsert(ctx context.Context, hold *models.SoftHold) (*models.SoftHold, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	byFlat, ok := r.holds[hold.CustomerID]
	if !ok {
		byFlat = make(map[uuid.UUID]*models.SoftHold)
		r.holds[hold.CustomerID] = byFlat
	}
	if prev, ok := byFlat[hold.FlatID]; ok {
		hold.ID = prev.ID
		hold.CreatedAt = prev.CreatedAt
	}
	cp := *hold
	byFlat[hold.FlatID] = &cp
	return hold, nil
}

func (r *fakeBasketRepo) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]*models.SoftHold, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.SoftHold
	for _, h := range r.holds[customerID] {
		cp := *h
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeBasketRepo) GetByHoldID(ctx context.Context, customerID, holdID uuid.UUID) (*models.SoftHold, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, h := range r.holds[customerID] {
		if h.ID == holdID {
			cp := *h
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeBasketRepo) DeleteByHoldID(ctx context.Context, customerID, holdID uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for flatID, h := range r.holds[customerID] {
		if h.ID == holdID {
			delete(r.holds[customerID], flatID)
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeBasketRepo) DeleteByFlat(ctx context.Context, customerID, flatID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.holds[customerID], flatID)
	return nil
}

// fakeNotifier records deliveries. Safe for the goroutines the services
// fire notifications from.
type fakeNotifier struct {
	mu      sync.Mutex
	entries []string
}

func (n *fakeNotifier) Notify(ctx context.Context, userID uuid.UUID, title, body string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.entries = append(n.entries, title)
}
