package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/MoathMalki/Integrated-web-project-for-apartment-rentals/internal/models"
)

type ViewingSlotRepository interface {
	CreateBulk(ctx context.Context, slots []*models.ViewingSlot) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.ViewingSlot, error)
	ListUpcomingByFlat(ctx context.Context, flatID uuid.UUID, from time.Time) ([]*models.ViewingSlot, error)
	ListClaimedByCustomer(ctx context.Context, customerID uuid.UUID) ([]*models.ViewingSlot, error)

	// ClaimAtomic attempts the OPEN -> CLAIMED transition as one
	// conditional UPDATE. Under concurrent claims on the same slot the
	// database guarantees exactly one caller gets rows-affected = 1;
	// everyone else (and any claim on a past slot) gets (nil, false).
	ClaimAtomic(ctx context.Context, slotID, customerID uuid.UUID, today time.Time) (*models.ViewingSlot, bool, error)
}

type viewingSlotRepo struct {
	db DB
}

func NewViewingSlotRepository(db DB) ViewingSlotRepository {
	return &viewingSlotRepo{db: db}
}

func baseSelectSlot() string {
	return `
        SELECT
            id, flat_id, slot_date, slot_time, contact_number,
            claim_state, claimed_by,
            row_version, created_at, updated_at
        FROM viewing_slots
    `
}

func scanSlot(row pgx.Row) (*models.ViewingSlot, error) {
	var s models.ViewingSlot
	err := row.Scan(
		&s.ID,
		&s.FlatID,
		&s.SlotDate,
		&s.SlotTime,
		&s.ContactNumber,
		&s.ClaimState,
		&s.ClaimedBy,
		&s.RowVersion,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *viewingSlotRepo) CreateBulk(ctx context.Context, slots []*models.ViewingSlot) error {
	for _, s := range slots {
		_, err := r.db.Exec(ctx, `
            INSERT INTO viewing_slots (
                id, flat_id, slot_date, slot_time, contact_number,
                claim_state, created_at, updated_at, row_version
            ) VALUES ($1,$2,$3,$4,$5,$6, NOW(), NOW(), 1)
        `,
			s.ID,
			s.FlatID,
			s.SlotDate.Format("2006-01-02"),
			s.SlotTime,
			s.ContactNumber,
			models.SlotOpen,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *viewingSlotRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.ViewingSlot, error) {
	row := r.db.QueryRow(ctx, baseSelectSlot()+" WHERE id=$1", id)
	s, err := scanSlot(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return s, err
}

func (r *viewingSlotRepo) ListUpcomingByFlat(ctx context.Context, flatID uuid.UUID, from time.Time) ([]*models.ViewingSlot, error) {
	rows, err := r.db.Query(ctx,
		baseSelectSlot()+" WHERE flat_id=$1 AND slot_date >= $2 ORDER BY slot_date ASC, slot_time ASC",
		flatID, from.Format("2006-01-02"),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectSlots(rows)
}

func (r *viewingSlotRepo) ListClaimedByCustomer(ctx context.Context, customerID uuid.UUID) ([]*models.ViewingSlot, error) {
	rows, err := r.db.Query(ctx,
		baseSelectSlot()+" WHERE claimed_by=$1 ORDER BY slot_date ASC, slot_time ASC",
		customerID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectSlots(rows)
}

func collectSlots(rows pgx.Rows) ([]*models.ViewingSlot, error) {
	var out []*models.ViewingSlot
	for rows.Next() {
		s, err := scanSlot(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *viewingSlotRepo) ClaimAtomic(
	ctx context.Context,
	slotID, customerID uuid.UUID,
	today time.Time,
) (*models.ViewingSlot, bool, error) {
	row := r.db.QueryRow(ctx, `
        UPDATE viewing_slots
        SET claim_state=$1,
            claimed_by=$2,
            row_version=row_version+1,
            updated_at=NOW()
        WHERE id=$3
          AND claim_state=$4
          AND slot_date >= $5
        RETURNING
            id, flat_id, slot_date, slot_time, contact_number,
            claim_state, claimed_by,
            row_version, created_at, updated_at
    `,
		models.SlotClaimed,
		customerID,
		slotID,
		models.SlotOpen,
		today.Format("2006-01-02"),
	)

	s, err := scanSlot(row)
	if errors.Is(err, pgx.ErrNoRows) {
		// Already claimed, past date, or no such slot: a lost race is an
		// expected outcome here, not an error.
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return s, true, nil
}
