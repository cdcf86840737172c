package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/MoathMalki/Integrated-web-project-for-apartment-rentals/internal/models"
	"github.com/MoathMalki/Integrated-web-project-for-apartment-rentals/internal/utils"
)

/* ------------------------------------------------------------------
   Public interface
------------------------------------------------------------------ */

type FlatRepository interface {
	Create(ctx context.Context, f *models.Flat) error

	GetByID(ctx context.Context, id uuid.UUID) (*models.Flat, error)
	ListPendingReview(ctx context.Context) ([]*models.Flat, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*models.Flat, error)

	ReferenceExists(ctx context.Context, reference string) (bool, error)

	// ApproveAtomic moves PENDING_REVIEW -> APPROVED and assigns the
	// reference in one guarded transition. The first of two concurrent
	// reviews wins; the loser gets ErrInvalidTransition.
	ApproveAtomic(ctx context.Context, flatID, reviewerID uuid.UUID, reference string) (*models.Flat, error)

	// RejectAtomic moves PENDING_REVIEW -> REJECTED with the reason.
	RejectAtomic(ctx context.Context, flatID, reviewerID uuid.UUID, reason string) (*models.Flat, error)
}

/* ------------------------------------------------------------------
   Implementation
------------------------------------------------------------------ */

type flatRepo struct {
	db DB
}

func NewFlatRepository(db DB) FlatRepository {
	return &flatRepo{db: db}
}

func baseSelectFlat() string {
	return `
        SELECT
            id, owner_id, location, address, monthly_cost,
            available_from, available_to,
            bedrooms, bathrooms, size_sqm, furnished,
            has_heating, has_air_conditioning, has_access_control,
            has_parking, has_playground, has_storage, has_backyard,
            rental_conditions, photo_count,
            status, flat_reference, rejection_reason,
            approved_by, rejected_by, reviewed_at,
            row_version, created_at, updated_at
        FROM flats
    `
}

func scanFlat(row pgx.Row) (*models.Flat, error) {
	var f models.Flat
	err := row.Scan(
		&f.ID,
		&f.OwnerID,
		&f.Location,
		&f.Address,
		&f.MonthlyCost,
		&f.AvailableFrom,
		&f.AvailableTo,
		&f.Bedrooms,
		&f.Bathrooms,
		&f.SizeSqm,
		&f.Furnished,
		&f.HasHeating,
		&f.HasAirConditioning,
		&f.HasAccessControl,
		&f.HasParking,
		&f.HasPlayground,
		&f.HasStorage,
		&f.HasBackyard,
		&f.RentalConditions,
		&f.PhotoCount,
		&f.Status,
		&f.FlatReference,
		&f.RejectionReason,
		&f.ApprovedBy,
		&f.RejectedBy,
		&f.ReviewedAt,
		&f.RowVersion,
		&f.CreatedAt,
		&f.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *flatRepo) Create(ctx context.Context, f *models.Flat) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO flats (
            id, owner_id, location, address, monthly_cost,
            available_from, available_to,
            bedrooms, bathrooms, size_sqm, furnished,
            has_heating, has_air_conditioning, has_access_control,
            has_parking, has_playground, has_storage, has_backyard,
            rental_conditions, photo_count, status,
            created_at, updated_at, row_version
        ) VALUES (
            $1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,
            $12,$13,$14,$15,$16,$17,$18,
            $19,$20,$21, NOW(), NOW(), 1
        )
    `,
		f.ID,
		f.OwnerID,
		f.Location,
		f.Address,
		f.MonthlyCost,
		f.AvailableFrom,
		f.AvailableTo,
		f.Bedrooms,
		f.Bathrooms,
		f.SizeSqm,
		f.Furnished,
		f.HasHeating,
		f.HasAirConditioning,
		f.HasAccessControl,
		f.HasParking,
		f.HasPlayground,
		f.HasStorage,
		f.HasBackyard,
		f.RentalConditions,
		f.PhotoCount,
		f.Status,
	)
	return err
}

func (r *flatRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Flat, error) {
	row := r.db.QueryRow(ctx, baseSelectFlat()+" WHERE id=$1", id)
	f, err := scanFlat(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return f, err
}

func (r *flatRepo) ListPendingReview(ctx context.Context) ([]*models.Flat, error) {
	rows, err := r.db.Query(ctx, baseSelectFlat()+" WHERE status=$1 ORDER BY created_at ASC", models.FlatStatusPendingReview)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectFlats(rows)
}

func (r *flatRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*models.Flat, error) {
	rows, err := r.db.Query(ctx, baseSelectFlat()+" WHERE owner_id=$1 ORDER BY created_at DESC", ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectFlats(rows)
}

func collectFlats(rows pgx.Rows) ([]*models.Flat, error) {
	var out []*models.Flat
	for rows.Next() {
		f, err := scanFlat(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

func (r *flatRepo) ReferenceExists(ctx context.Context, reference string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM flats WHERE flat_reference=$1)`, reference,
	).Scan(&exists)
	return exists, err
}

func (r *flatRepo) ApproveAtomic(
	ctx context.Context,
	flatID, reviewerID uuid.UUID,
	reference string,
) (*models.Flat, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			_ = tx.Commit(ctx)
		}
	}()

	row := tx.QueryRow(ctx, baseSelectFlat()+" WHERE id=$1 FOR UPDATE", flatID)
	f, err := scanFlat(row)
	if errors.Is(err, pgx.ErrNoRows) {
		err = utils.ErrNotFound
		return nil, err
	}
	if err != nil {
		return nil, err
	}
	if f.Status != models.FlatStatusPendingReview {
		err = utils.ErrInvalidTransition
		return nil, err
	}

	_, err = tx.Exec(ctx, `
        UPDATE flats
        SET status=$1,
            flat_reference=$2,
            approved_by=$3,
            reviewed_at=NOW(),
            row_version=row_version+1,
            updated_at=NOW()
        WHERE id=$4
    `, models.FlatStatusApproved, reference, reviewerID, flatID)
	if err != nil {
		// A concurrent approval of another flat may have taken this
		// reference between draw and commit; the unique index is the
		// backstop and the caller redraws.
		if IsUniqueViolation(err) {
			err = utils.ErrReferenceTaken
		}
		return nil, err
	}

	newRow := tx.QueryRow(ctx, baseSelectFlat()+" WHERE id=$1", flatID)
	return scanFlat(newRow)
}

func (r *flatRepo) RejectAtomic(
	ctx context.Context,
	flatID, reviewerID uuid.UUID,
	reason string,
) (*models.Flat, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			_ = tx.Commit(ctx)
		}
	}()

	row := tx.QueryRow(ctx, baseSelectFlat()+" WHERE id=$1 FOR UPDATE", flatID)
	f, err := scanFlat(row)
	if errors.Is(err, pgx.ErrNoRows) {
		err = utils.ErrNotFound
		return nil, err
	}
	if err != nil {
		return nil, err
	}
	if f.Status != models.FlatStatusPendingReview {
		err = utils.ErrInvalidTransition
		return nil, err
	}

	_, err = tx.Exec(ctx, `
        UPDATE flats
        SET status=$1,
            rejection_reason=$2,
            rejected_by=$3,
            reviewed_at=NOW(),
            row_version=row_version+1,
            updated_at=NOW()
        WHERE id=$4
    `, models.FlatStatusRejected, reason, reviewerID, flatID)
	if err != nil {
		return nil, err
	}

	newRow := tx.QueryRow(ctx, baseSelectFlat()+" WHERE id=$1", flatID)
	return scanFlat(newRow)
}
