package messaging

import (
	"fmt"
	"time"
)

// Event routing keys as constants
const (
	EventDonationSubmitted     = "donation.submitted"
	EventDonationStatusChanged = "donation.status_changed"
	EventDonationClaimed       = "donation.claimed"
	EventDonationPickupUpdated = "donation.pickup_updated"
)

// BaseEvent contains common fields for all events
type BaseEvent struct {
	EventType   string    `json:"event_type"`
	EventID     string    `json:"event_id"`
	Timestamp   time.Time `json:"timestamp"`
	ServiceName string    `json:"service_name"`
}

// DonationSubmittedEvent is published when a donor creates a donation
type DonationSubmittedEvent struct {
	BaseEvent
	Data DonationSubmittedData `json:"data"`
}

type DonationSubmittedData struct {
	DonationID     string    `json:"donation_id"`
	DonorID        string    `json:"donor_id"`
	OrganizationID string    `json:"organization_id,omitempty"` // empty for pool donations
	Kind           string    `json:"kind"`
	NeedsPickup    bool      `json:"needs_pickup"`
	CreatedAt      time.Time `json:"created_at"`
}

// DonationStatusChangedEvent is published on an approve/reject decision
type DonationStatusChangedEvent struct {
	BaseEvent
	Data DonationStatusChangedData `json:"data"`
}

type DonationStatusChangedData struct {
	DonationID     string    `json:"donation_id"`
	DonorID        string    `json:"donor_id"`
	OrganizationID string    `json:"organization_id"`
	OldStatus      string    `json:"old_status"`
	NewStatus      string    `json:"new_status"`
	AdminNotes     string    `json:"admin_notes,omitempty"`
	ChangedAt      time.Time `json:"changed_at"`
}

// DonationClaimedEvent is published when a pool donation is claimed by an
// organization (which also approves it)
type DonationClaimedEvent struct {
	BaseEvent
	Data DonationClaimedData `json:"data"`
}

type DonationClaimedData struct {
	DonationID     string    `json:"donation_id"`
	DonorID        string    `json:"donor_id"`
	OrganizationID string    `json:"organization_id"`
	ClaimedBy      string    `json:"claimed_by"`
	ClaimedAt      time.Time `json:"claimed_at"`
}

// DonationPickupUpdatedEvent is published when pickup logistics change
type DonationPickupUpdatedEvent struct {
	BaseEvent
	Data DonationPickupUpdatedData `json:"data"`
}

type DonationPickupUpdatedData struct {
	DonationID      string    `json:"donation_id"`
	OrganizationID  string    `json:"organization_id,omitempty"`
	OldPickupStatus string    `json:"old_pickup_status"`
	NewPickupStatus string    `json:"new_pickup_status"`
	ChangedAt       time.Time `json:"changed_at"`
}

// NewBaseEvent creates a base event with common fields
func NewBaseEvent(eventType string) BaseEvent {
	return BaseEvent{
		EventType:   eventType,
		EventID:     fmt.Sprintf("%d", time.Now().UnixNano()),
		Timestamp:   time.Now().UTC(), // Explicitly set to UTC
		ServiceName: "donation-service",
	}
}
