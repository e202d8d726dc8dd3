package organization

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
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

const orgColumns = "id, name, contact_email, contact_phone, address, owner_admin_id, status, created_at"

func scanOrganization(row interface{ Scan(...interface{}) error }) (*Organization, error) {
	var org Organization
	var contactEmail, contactPhone, address sql.NullString

	err := row.Scan(
		&org.ID,
		&org.Name,
		&contactEmail,
		&contactPhone,
		&address,
		&org.OwnerAdminID,
		&org.Status,
		&org.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	org.ContactEmail = contactEmail.String
	org.ContactPhone = contactPhone.String
	org.Address = address.String
	return &org, nil
}

func (r *Repository) CreateOrganization(ctx context.Context, req CreateOrganizationRequest) (*Organization, error) {
	query := `
		INSERT INTO organizations
		(id, name, contact_email, contact_phone, address, owner_admin_id, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, 'active', $7)
		RETURNING ` + orgColumns

	org, err := scanOrganization(r.db.QueryRowContext(ctx, query,
		uuid.New(),
		req.Name,
		req.ContactEmail,
		req.ContactPhone,
		req.Address,
		req.OwnerAdminID,
		time.Now(),
	))
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23505" { // unique_violation on owner_admin_id
				return nil, ErrOwnerConflict
			}
		}
		return nil, fmt.Errorf("failed to insert organization: %w", err)
	}

	return org, nil
}

func (r *Repository) GetOrganization(ctx context.Context, id string) (*Organization, error) {
	query := `
		SELECT ` + orgColumns + `
		FROM organizations
		WHERE id = $1 AND deleted_at IS NULL
	`

	org, err := scanOrganization(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query organization: %w", err)
	}
	return org, nil
}

// OrganizationIDByOwner returns the id of the organization owned by the given
// admin, or "" when the admin owns none. Implements auth.OrganizationLookup.
func (r *Repository) OrganizationIDByOwner(ctx context.Context, adminID string) (string, error) {
	query := `SELECT id FROM organizations WHERE owner_admin_id = $1 AND deleted_at IS NULL`

	var id string
	err := r.db.QueryRowContext(ctx, query, adminID).Scan(&id)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to query organization by owner: %w", err)
	}
	return id, nil
}

func (r *Repository) ListOrganizations(ctx context.Context, limit, offset int) ([]Organization, int, error) {
	var totalCount int
	countQuery := `SELECT COUNT(*) FROM organizations WHERE deleted_at IS NULL`
	if err := r.db.QueryRowContext(ctx, countQuery).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("failed to count organizations: %w", err)
	}

	query := `
		SELECT ` + orgColumns + `
		FROM organizations
		WHERE deleted_at IS NULL
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query organizations: %w", err)
	}
	defer rows.Close()

	var orgs []Organization
	for rows.Next() {
		org, err := scanOrganization(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan organization: %w", err)
		}
		orgs = append(orgs, *org)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating organizations: %w", err)
	}

	return orgs, totalCount, nil
}

func (r *Repository) UpdateOrganization(ctx context.Context, id string, req UpdateOrganizationRequest) (*Organization, error) {
	var updates []string
	var args []interface{}
	argIndex := 1

	appendUpdate := func(column string, value interface{}) {
		updates = append(updates, fmt.Sprintf("%s = $%d", column, argIndex))
		args = append(args, value)
		argIndex++
	}

	if req.Name != nil {
		appendUpdate("name", *req.Name)
	}
	if req.ContactEmail != nil {
		appendUpdate("contact_email", *req.ContactEmail)
	}
	if req.ContactPhone != nil {
		appendUpdate("contact_phone", *req.ContactPhone)
	}
	if req.Address != nil {
		appendUpdate("address", *req.Address)
	}

	if len(updates) == 0 {
		return nil, fmt.Errorf("no fields to update")
	}

	appendUpdate("updated_at", time.Now())
	args = append(args, id)

	query := fmt.Sprintf(`
		UPDATE organizations
		SET %s
		WHERE id = $%d AND deleted_at IS NULL
		RETURNING `+orgColumns,
		strings.Join(updates, ", "), argIndex)

	org, err := scanOrganization(r.db.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update organization: %w", err)
	}
	return org, nil
}

func (r *Repository) DeleteOrganization(ctx context.Context, id string) error {
	// Soft delete: keep the record, release nothing. Donations already claimed
	// by the organization keep their organization_id (ownership is one-way).
	query := `
		UPDATE organizations
		SET deleted_at = $1,
		    status = 'inactive',
		    updated_at = $1
		WHERE id = $2 AND deleted_at IS NULL
	`

	result, err := r.db.ExecContext(ctx, query, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to soft delete organization: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}

	return nil
}
