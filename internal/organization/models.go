package organization

import "time"

// CreateOrganizationRequest represents the request to register a partner organization
type CreateOrganizationRequest struct {
	Name         string `json:"name"`
	ContactEmail string `json:"contact_email"`
	ContactPhone string `json:"contact_phone"`
	Address      string `json:"address"`
	OwnerAdminID string `json:"owner_admin_id"`
}

// UpdateOrganizationRequest carries optional field updates
type UpdateOrganizationRequest struct {
	Name         *string `json:"name,omitempty"`
	ContactEmail *string `json:"contact_email,omitempty"`
	ContactPhone *string `json:"contact_phone,omitempty"`
	Address      *string `json:"address,omitempty"`
}

// Organization is the partner organization record. Exactly one administrator
// account owns an organization; ownership drives donation authorization.
type Organization struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	ContactEmail string    `json:"contact_email"`
	ContactPhone string    `json:"contact_phone"`
	Address      string    `json:"address"`
	OwnerAdminID string    `json:"owner_admin_id"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}
