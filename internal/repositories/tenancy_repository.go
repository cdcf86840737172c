package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/MoathMalki/Integrated-web-project-for-apartment-rentals/internal/models"
	"github.com/MoathMalki/Integrated-web-project-for-apartment-rentals/internal/utils"
)

type TenancyRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Tenancy, error)
	ListByFlat(ctx context.Context, flatID uuid.UUID) ([]*models.Tenancy, error)
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]*models.Tenancy, error)

	// HasBlockingOverlap reports whether any CONFIRMED/ACTIVE tenancy
	// for the flat intersects [start, end], closed-interval.
	HasBlockingOverlap(ctx context.Context, flatID uuid.UUID, start, end time.Time) (bool, error)

	// ExistsCoveringDay reports whether a CONFIRMED/ACTIVE tenancy
	// covers the given calendar day.
	ExistsCoveringDay(ctx context.Context, flatID uuid.UUID, day time.Time) (bool, error)

	// BookAtomic runs the overlap-check-then-insert inside a single
	// transaction holding a row lock on the flat, so two concurrent
	// bookings for overlapping ranges can never both commit.
	BookAtomic(ctx context.Context, t *models.Tenancy) error

	// Nightly roll-over. Both are bulk conditional updates.
	ActivateDue(ctx context.Context, today time.Time) (int64, error)
	CompleteExpired(ctx context.Context, today time.Time) (int64, error)
}

type tenancyRepo struct {
	db DB
}

func NewTenancyRepository(db DB) TenancyRepository {
	return &tenancyRepo{db: db}
}

func baseSelectTenancy() string {
	return `
        SELECT
            id, flat_id, customer_id, start_date, end_date,
            status, total_cost, payment_token,
            row_version, created_at, updated_at
        FROM tenancies
    `
}

func scanTenancy(row pgx.Row) (*models.Tenancy, error) {
	var t models.Tenancy
	err := row.Scan(
		&t.ID,
		&t.FlatID,
		&t.CustomerID,
		&t.StartDate,
		&t.EndDate,
		&t.Status,
		&t.TotalCost,
		&t.PaymentToken,
		&t.RowVersion,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *tenancyRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Tenancy, error) {
	row := r.db.QueryRow(ctx, baseSelectTenancy()+" WHERE id=$1", id)
	t, err := scanTenancy(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return t, err
}

func (r *tenancyRepo) ListByFlat(ctx context.Context, flatID uuid.UUID) ([]*models.Tenancy, error) {
	rows, err := r.db.Query(ctx, baseSelectTenancy()+" WHERE flat_id=$1 ORDER BY start_date", flatID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectTenancies(rows)
}

func (r *tenancyRepo) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]*models.Tenancy, error) {
	rows, err := r.db.Query(ctx,
		baseSelectTenancy()+" WHERE customer_id=$1 AND status = ANY($2) ORDER BY start_date DESC",
		customerID,
		[]string{
			string(models.TenancyStatusConfirmed),
			string(models.TenancyStatusActive),
			string(models.TenancyStatusCompleted),
		},
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectTenancies(rows)
}

func collectTenancies(rows pgx.Rows) ([]*models.Tenancy, error) {
	var out []*models.Tenancy
	for rows.Next() {
		t, err := scanTenancy(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

const blockingOverlapQuery = `
    SELECT EXISTS (
        SELECT 1 FROM tenancies
        WHERE flat_id=$1
          AND status = ANY($2)
          AND start_date <= $4
          AND end_date >= $3
    )
`

func blockingStatuses() []string {
	return []string{
		string(models.TenancyStatusConfirmed),
		string(models.TenancyStatusActive),
	}
}

func (r *tenancyRepo) HasBlockingOverlap(ctx context.Context, flatID uuid.UUID, start, end time.Time) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, blockingOverlapQuery,
		flatID, blockingStatuses(), start.Format("2006-01-02"), end.Format("2006-01-02"),
	).Scan(&exists)
	return exists, err
}

func (r *tenancyRepo) ExistsCoveringDay(ctx context.Context, flatID uuid.UUID, day time.Time) (bool, error) {
	d := day.Format("2006-01-02")
	var exists bool
	err := r.db.QueryRow(ctx, `
        SELECT EXISTS (
            SELECT 1 FROM tenancies
            WHERE flat_id=$1
              AND status = ANY($2)
              AND start_date <= $3
              AND end_date >= $3
        )
    `, flatID, blockingStatuses(), d).Scan(&exists)
	return exists, err
}

func (r *tenancyRepo) BookAtomic(ctx context.Context, t *models.Tenancy) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			_ = tx.Commit(ctx)
		}
	}()

	// The flat row lock is the serialization boundary for the
	// check-then-insert; all booking attempts for one flat queue here.
	var status models.FlatStatusType
	err = tx.QueryRow(ctx, `SELECT status FROM flats WHERE id=$1 FOR UPDATE`, t.FlatID).Scan(&status)
	if errors.Is(err, pgx.ErrNoRows) {
		err = utils.ErrNotFound
		return err
	}
	if err != nil {
		return err
	}
	if status != models.FlatStatusApproved {
		err = utils.ErrFlatNotRentable
		return err
	}

	var overlapping bool
	err = tx.QueryRow(ctx, blockingOverlapQuery,
		t.FlatID, blockingStatuses(),
		t.StartDate.Format("2006-01-02"), t.EndDate.Format("2006-01-02"),
	).Scan(&overlapping)
	if err != nil {
		return err
	}
	if overlapping {
		err = utils.ErrRangeUnavailable
		return err
	}

	_, err = tx.Exec(ctx, `
        INSERT INTO tenancies (
            id, flat_id, customer_id, start_date, end_date,
            status, total_cost, payment_token,
            created_at, updated_at, row_version
        ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8, NOW(), NOW(), 1)
    `,
		t.ID,
		t.FlatID,
		t.CustomerID,
		t.StartDate.Format("2006-01-02"),
		t.EndDate.Format("2006-01-02"),
		t.Status,
		t.TotalCost,
		t.PaymentToken,
	)
	return err
}

func (r *tenancyRepo) ActivateDue(ctx context.Context, today time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, `
        UPDATE tenancies
        SET status=$1, row_version=row_version+1, updated_at=NOW()
        WHERE status=$2
          AND start_date <= $3
          AND end_date >= $3
    `, models.TenancyStatusActive, models.TenancyStatusConfirmed, today.Format("2006-01-02"))
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *tenancyRepo) CompleteExpired(ctx context.Context, today time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, `
        UPDATE tenancies
        SET status=$1, row_version=row_version+1, updated_at=NOW()
        WHERE status = ANY($2)
          AND end_date < $3
    `, models.TenancyStatusCompleted,
		[]string{string(models.TenancyStatusConfirmed), string(models.TenancyStatusActive)},
		today.Format("2006-01-02"))
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
