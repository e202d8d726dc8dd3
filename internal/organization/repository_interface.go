package organization

import "context"

// RepositoryInterface defines the contract for organization persistence
type RepositoryInterface interface {
	CreateOrganization(ctx context.Context, req CreateOrganizationRequest) (*Organization, error)
	GetOrganization(ctx context.Context, id string) (*Organization, error)
	OrganizationIDByOwner(ctx context.Context, adminID string) (string, error)
	ListOrganizations(ctx context.Context, limit, offset int) ([]Organization, int, error)
	UpdateOrganization(ctx context.Context, id string, req UpdateOrganizationRequest) (*Organization, error)
	DeleteOrganization(ctx context.Context, id string) error
}

// Ensure Repository implements RepositoryInterface
var _ RepositoryInterface = (*Repository)(nil)
