package donation

import "time"

// Status is the approval state of a donation. PENDING moves to APPROVED or
// REJECTED exactly once; both are terminal.
type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

// Valid reports whether the status is a known literal.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// PickupStatus tracks physical collection of donated items. It is independent
// of Status and only meaningful when the donation requested pickup.
type PickupStatus string

const (
	PickupNotRequired PickupStatus = "NOT_REQUIRED"
	PickupScheduled   PickupStatus = "SCHEDULED"
	PickupInProgress  PickupStatus = "IN_PROGRESS"
	PickupCompleted   PickupStatus = "COMPLETED"
	PickupCancelled   PickupStatus = "CANCELLED"
)

// Valid reports whether the pickup status is a known literal.
func (p PickupStatus) Valid() bool {
	switch p {
	case PickupNotRequired, PickupScheduled, PickupInProgress, PickupCompleted, PickupCancelled:
		return true
	}
	return false
}

// CanTransitionPickup reports whether a pickup status change is allowed.
// Transitions are currently unordered so admins can correct mistakes
// (e.g. COMPLETED back to SCHEDULED); tightening this is a product decision
// that only needs a change here.
func CanTransitionPickup(from, to PickupStatus) bool {
	return from.Valid() && to.Valid()
}

// Kind distinguishes monetary donations from donated goods.
type Kind string

const (
	KindMoney Kind = "MONEY"
	KindItems Kind = "ITEMS"
)

// Valid reports whether the kind is a known literal.
func (k Kind) Valid() bool {
	return k == KindMoney || k == KindItems
}

// Donation is the durable donation record. OrganizationID is nil while the
// donation sits in the shared pool; once set it never reverts.
type Donation struct {
	ID             string       `json:"id"`
	DonorID        string       `json:"donor_id"`
	DonorName      string       `json:"donor_name"`
	DonorEmail     string       `json:"donor_email"`
	OrganizationID *string      `json:"organization_id"`
	Kind           Kind         `json:"kind"`
	Amount         *float64     `json:"amount,omitempty"`
	ItemName       string       `json:"item_name,omitempty"`
	Quantity       int          `json:"quantity,omitempty"`
	Description    string       `json:"description,omitempty"`
	Status         Status       `json:"status"`
	AdminNotes     string       `json:"admin_notes,omitempty"`
	NeedsPickup    bool         `json:"needs_pickup"`
	PickupStatus   PickupStatus `json:"pickup_status"`
	PickupDate     string       `json:"pickup_date,omitempty"`
	PickupTime     string       `json:"pickup_time,omitempty"`
	PickupAddress  string       `json:"pickup_address,omitempty"`
	PickupNotes    string       `json:"pickup_notes,omitempty"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
}

// InPool reports whether the donation is unclaimed.
func (d *Donation) InPool() bool {
	return d.OrganizationID == nil
}

// Summary returns a short human-readable description used in responses and
// donor emails ("₹5000" for money, "Blankets x3" for items).
func (d *Donation) Summary() string {
	if d.Kind == KindMoney && d.Amount != nil {
		return "monetary donation"
	}
	return d.ItemName
}

// DonorInfo identifies the submitting donor. It is captured once at submit
// time from the authenticated caller, never re-derived inside the core.
type DonorInfo struct {
	ID    string
	Name  string
	Email string
}

// SubmitDonationRequest is the donor-facing create payload. OrganizationID
// empty means the donation goes into the shared pool.
type SubmitDonationRequest struct {
	Kind           Kind     `json:"kind" validate:"required,oneof=MONEY ITEMS"`
	OrganizationID *string  `json:"organization_id,omitempty" validate:"omitempty,uuid4"`
	Amount         *float64 `json:"amount,omitempty" validate:"omitempty,gt=0"`
	ItemName       string   `json:"item_name,omitempty"`
	Quantity       int      `json:"quantity,omitempty" validate:"omitempty,gt=0"`
	Description    string   `json:"description,omitempty"`
	NeedsPickup    bool     `json:"needs_pickup"`
	PickupDate     string   `json:"pickup_date,omitempty"`
	PickupTime     string   `json:"pickup_time,omitempty"`
	PickupAddress  string   `json:"pickup_address,omitempty"`
	PickupNotes    string   `json:"pickup_notes,omitempty"`
}

// DecideRequest carries an approve/reject decision on a pending donation.
type DecideRequest struct {
	Status     string `json:"status" validate:"required,oneof=APPROVED REJECTED"`
	AdminNotes string `json:"admin_notes,omitempty" validate:"max=2000"`
}

// ClaimRequest asks to take a pool donation for the caller's organization.
type ClaimRequest struct {
	DonationID string `json:"donation_id" validate:"required"`
}

// PickupUpdateRequest changes the pickup logistics state of a donation.
type PickupUpdateRequest struct {
	DonationID   string `json:"donation_id" validate:"required"`
	PickupStatus string `json:"pickup_status" validate:"required"`
}
