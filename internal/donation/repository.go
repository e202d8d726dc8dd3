package donation

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

const donationColumns = `id, donor_id, donor_name, donor_email, organization_id,
	kind, amount, item_name, quantity, description, status, admin_notes,
	needs_pickup, pickup_status, pickup_date, pickup_time, pickup_address,
	pickup_notes, created_at, updated_at`

func scanDonation(row interface{ Scan(...interface{}) error }) (*Donation, error) {
	var d Donation
	var orgID sql.NullString
	var amount sql.NullFloat64
	var itemName, description, adminNotes sql.NullString
	var quantity sql.NullInt64
	var pickupDate, pickupTime, pickupAddress, pickupNotes sql.NullString

	err := row.Scan(
		&d.ID,
		&d.DonorID,
		&d.DonorName,
		&d.DonorEmail,
		&orgID,
		&d.Kind,
		&amount,
		&itemName,
		&quantity,
		&description,
		&d.Status,
		&adminNotes,
		&d.NeedsPickup,
		&d.PickupStatus,
		&pickupDate,
		&pickupTime,
		&pickupAddress,
		&pickupNotes,
		&d.CreatedAt,
		&d.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if orgID.Valid {
		d.OrganizationID = &orgID.String
	}
	if amount.Valid {
		d.Amount = &amount.Float64
	}
	d.ItemName = itemName.String
	d.Quantity = int(quantity.Int64)
	d.Description = description.String
	d.AdminNotes = adminNotes.String
	d.PickupDate = pickupDate.String
	d.PickupTime = pickupTime.String
	d.PickupAddress = pickupAddress.String
	d.PickupNotes = pickupNotes.String
	return &d, nil
}

func (r *Repository) Create(ctx context.Context, req SubmitDonationRequest, donor DonorInfo) (*Donation, error) {
	pickupStatus := PickupNotRequired
	if req.NeedsPickup {
		pickupStatus = PickupScheduled
	}

	query := `
		INSERT INTO donations
		(id, donor_id, donor_name, donor_email, organization_id, kind, amount,
		 item_name, quantity, description, status, needs_pickup, pickup_status,
		 pickup_date, pickup_time, pickup_address, pickup_notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $18)
		RETURNING ` + donationColumns

	d, err := scanDonation(r.db.QueryRowContext(ctx, query,
		uuid.New(),
		donor.ID,
		donor.Name,
		donor.Email,
		req.OrganizationID,
		req.Kind,
		req.Amount,
		nullString(req.ItemName),
		nullInt(req.Quantity),
		nullString(req.Description),
		StatusPending,
		req.NeedsPickup,
		pickupStatus,
		nullString(req.PickupDate),
		nullString(req.PickupTime),
		nullString(req.PickupAddress),
		nullString(req.PickupNotes),
		time.Now(),
	))
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23503" { // foreign_key_violation on organization_id
				return nil, ErrUnknownOrganization
			}
		}
		return nil, fmt.Errorf("failed to insert donation: %w", err)
	}
	return d, nil
}

func (r *Repository) GetByID(ctx context.Context, id string) (*Donation, error) {
	query := `SELECT ` + donationColumns + ` FROM donations WHERE id = $1`

	d, err := scanDonation(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query donation: %w", err)
	}
	return d, nil
}

// UpdateStatus moves a pending, organization-owned donation to a terminal
// status. The WHERE clause is the guard: a zero-row result means the donation
// is missing, unclaimed or no longer pending, and the caller classifies which.
func (r *Repository) UpdateStatus(ctx context.Context, id string, status Status, adminNotes string) (*Donation, error) {
	query := `
		UPDATE donations
		SET status = $2, admin_notes = $3, updated_at = $4
		WHERE id = $1 AND status = 'PENDING' AND organization_id IS NOT NULL
		RETURNING ` + donationColumns

	d, err := scanDonation(r.db.QueryRowContext(ctx, query, id, status, nullString(adminNotes), time.Now()))
	if err == sql.ErrNoRows {
		return nil, errStaleWrite
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update donation status: %w", err)
	}
	return d, nil
}

// Claim atomically assigns a pool donation to an organization and approves
// it. Two concurrent claims race on the same conditional UPDATE; the row is
// matched exactly once, so exactly one caller wins and the loser gets
// errStaleWrite. There is deliberately no prior read.
func (r *Repository) Claim(ctx context.Context, id, organizationID string) (*Donation, error) {
	query := `
		UPDATE donations
		SET organization_id = $2, status = 'APPROVED', updated_at = $3
		WHERE id = $1 AND organization_id IS NULL AND status = 'PENDING'
		RETURNING ` + donationColumns

	d, err := scanDonation(r.db.QueryRowContext(ctx, query, id, organizationID, time.Now()))
	if err == sql.ErrNoRows {
		return nil, errStaleWrite
	}
	if err != nil {
		return nil, fmt.Errorf("failed to claim donation: %w", err)
	}
	return d, nil
}

func (r *Repository) UpdatePickupStatus(ctx context.Context, id string, pickupStatus PickupStatus) (*Donation, error) {
	query := `
		UPDATE donations
		SET pickup_status = $2, updated_at = $3
		WHERE id = $1
		RETURNING ` + donationColumns

	d, err := scanDonation(r.db.QueryRowContext(ctx, query, id, pickupStatus, time.Now()))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update pickup status: %w", err)
	}
	return d, nil
}

func (r *Repository) ListByOrganization(ctx context.Context, organizationID string, limit, offset int) ([]Donation, int, error) {
	return r.list(ctx,
		`WHERE organization_id = $1`,
		[]interface{}{organizationID}, limit, offset)
}

// ListPool returns unclaimed donations. The status filter is belt and braces:
// pool donations are PENDING by invariant.
func (r *Repository) ListPool(ctx context.Context, limit, offset int) ([]Donation, int, error) {
	return r.list(ctx,
		`WHERE organization_id IS NULL AND status = 'PENDING'`,
		nil, limit, offset)
}

func (r *Repository) ListByDonor(ctx context.Context, donorID string, limit, offset int) ([]Donation, int, error) {
	return r.list(ctx,
		`WHERE donor_id = $1`,
		[]interface{}{donorID}, limit, offset)
}

// ListNeedingPickup returns pickup-requesting donations visible to an
// organization: its own plus the pool. An empty organizationID means no
// scoping (super admin).
func (r *Repository) ListNeedingPickup(ctx context.Context, organizationID string, limit, offset int) ([]Donation, int, error) {
	if organizationID == "" {
		return r.list(ctx, `WHERE needs_pickup`, nil, limit, offset)
	}
	return r.list(ctx,
		`WHERE needs_pickup AND (organization_id = $1 OR organization_id IS NULL)`,
		[]interface{}{organizationID}, limit, offset)
}

func (r *Repository) ListAll(ctx context.Context, limit, offset int) ([]Donation, int, error) {
	return r.list(ctx, ``, nil, limit, offset)
}

func (r *Repository) list(ctx context.Context, where string, args []interface{}, limit, offset int) ([]Donation, int, error) {
	countQuery := `SELECT COUNT(*) FROM donations ` + where
	var totalCount int
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("failed to count donations: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT `+donationColumns+`
		FROM donations
		%s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, where, len(args)+1, len(args)+2)

	rows, err := r.db.QueryContext(ctx, query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query donations: %w", err)
	}
	defer rows.Close()

	var donations []Donation
	for rows.Next() {
		d, err := scanDonation(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan donation: %w", err)
		}
		donations = append(donations, *d)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating donations: %w", err)
	}

	return donations, totalCount, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullInt(i int) sql.NullInt64 {
	return sql.NullInt64{Int64: int64(i), Valid: i != 0}
}
