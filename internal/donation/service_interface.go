package donation

import (
	"context"

	"github.com/GiveHope-Foundation/donation-service/internal/auth"
	"github.com/GiveHope-Foundation/donation-service/internal/pagination"
)

// ServiceInterface defines the contract for donation business logic
type ServiceInterface interface {
	Submit(ctx context.Context, donor DonorInfo, req SubmitDonationRequest) (*Donation, error)
	Decide(ctx context.Context, actor auth.Actor, id string, req DecideRequest) (*Donation, error)
	Claim(ctx context.Context, actor auth.Actor, id string) (*Donation, error)
	UpdatePickup(ctx context.Context, actor auth.Actor, req PickupUpdateRequest) (*Donation, error)
	Get(ctx context.Context, actor auth.Actor, id string) (*Donation, error)
	ListForOrganization(ctx context.Context, actor auth.Actor, params pagination.Params) (*PaginatedDonations, error)
	ListPool(ctx context.Context, actor auth.Actor, params pagination.Params) (*PaginatedDonations, error)
	ListPickups(ctx context.Context, actor auth.Actor, params pagination.Params) (*PaginatedDonations, error)
	ListForDonor(ctx context.Context, donorID string, params pagination.Params) (*PaginatedDonations, error)
}

// Ensure Service implements ServiceInterface
var _ ServiceInterface = (*Service)(nil)
