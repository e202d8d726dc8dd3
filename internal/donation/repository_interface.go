package donation

import "context"

// RepositoryInterface defines the contract for donation persistence.
// UpdateStatus and Claim are conditional writes: they return errStaleWrite
// when the donation's state no longer satisfies the precondition, which is
// how concurrent claims are resolved to exactly one winner.
type RepositoryInterface interface {
	Create(ctx context.Context, req SubmitDonationRequest, donor DonorInfo) (*Donation, error)
	GetByID(ctx context.Context, id string) (*Donation, error)
	UpdateStatus(ctx context.Context, id string, status Status, adminNotes string) (*Donation, error)
	Claim(ctx context.Context, id, organizationID string) (*Donation, error)
	UpdatePickupStatus(ctx context.Context, id string, pickupStatus PickupStatus) (*Donation, error)
	ListByOrganization(ctx context.Context, organizationID string, limit, offset int) ([]Donation, int, error)
	ListPool(ctx context.Context, limit, offset int) ([]Donation, int, error)
	ListByDonor(ctx context.Context, donorID string, limit, offset int) ([]Donation, int, error)
	ListNeedingPickup(ctx context.Context, organizationID string, limit, offset int) ([]Donation, int, error)
	ListAll(ctx context.Context, limit, offset int) ([]Donation, int, error)
}

// Ensure Repository implements RepositoryInterface
var _ RepositoryInterface = (*Repository)(nil)
