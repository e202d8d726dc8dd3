package organization

import (
	"context"

	"github.com/GiveHope-Foundation/donation-service/internal/pagination"
)

// ServiceInterface defines the contract for organization business logic
type ServiceInterface interface {
	CreateOrganization(ctx context.Context, req CreateOrganizationRequest) (*Organization, error)
	GetOrganization(ctx context.Context, id string) (*Organization, error)
	ListOrganizations(ctx context.Context, params pagination.Params) (*PaginatedListResponse, error)
	UpdateOrganization(ctx context.Context, id string, req UpdateOrganizationRequest) (*Organization, error)
	DeleteOrganization(ctx context.Context, id string) error
}

// Ensure Service implements ServiceInterface
var _ ServiceInterface = (*Service)(nil)
