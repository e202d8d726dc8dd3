package organization

import (
	"context"
	"fmt"

	"github.com/GiveHope-Foundation/donation-service/internal/pagination"
)

type Service struct {
	repo RepositoryInterface
}

func NewService(repo RepositoryInterface) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreateOrganization(ctx context.Context, req CreateOrganizationRequest) (*Organization, error) {
	if req.Name == "" {
		return nil, ErrMissingName
	}
	if req.OwnerAdminID == "" {
		return nil, ErrMissingOwner
	}

	org, err := s.repo.CreateOrganization(ctx, req)
	if err != nil {
		return nil, err
	}

	return org, nil
}

func (s *Service) GetOrganization(ctx context.Context, id string) (*Organization, error) {
	org, err := s.repo.GetOrganization(ctx, id)
	if err != nil {
		return nil, err
	}
	return org, nil
}

// ListOrganizations retrieves organizations with pagination
func (s *Service) ListOrganizations(ctx context.Context, params pagination.Params) (*PaginatedListResponse, error) {
	params.Validate()

	orgs, totalCount, err := s.repo.ListOrganizations(ctx, params.Limit, params.CalculateOffset())
	if err != nil {
		return nil, fmt.Errorf("failed to list organizations: %w", err)
	}

	return &PaginatedListResponse{
		Success:       true,
		Organizations: orgs,
		Pagination:    params.CalculateMeta(totalCount),
	}, nil
}

func (s *Service) UpdateOrganization(ctx context.Context, id string, req UpdateOrganizationRequest) (*Organization, error) {
	org, err := s.repo.UpdateOrganization(ctx, id, req)
	if err != nil {
		return nil, err
	}
	return org, nil
}

func (s *Service) DeleteOrganization(ctx context.Context, id string) error {
	return s.repo.DeleteOrganization(ctx, id)
}
