package organization

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/GiveHope-Foundation/donation-service/internal/pagination"
)

// TestCreateOrganization_Success tests successful organization creation
func TestCreateOrganization_Success(t *testing.T) {
	mockRepo := &mockRepository{
		createOrgFunc: func(ctx context.Context, req CreateOrganizationRequest) (*Organization, error) {
			return &Organization{
				ID:           "org-123",
				Name:         req.Name,
				ContactEmail: req.ContactEmail,
				ContactPhone: req.ContactPhone,
				Address:      req.Address,
				OwnerAdminID: req.OwnerAdminID,
				Status:       "active",
				CreatedAt:    time.Now(),
			}, nil
		},
	}

	service := NewService(mockRepo)
	req := CreateOrganizationRequest{
		Name:         "Hope Shelter",
		ContactEmail: "contact@hopeshelter.org",
		ContactPhone: "+1234567890",
		Address:      "123 Relief St",
		OwnerAdminID: "admin-1",
	}

	org, err := service.CreateOrganization(context.Background(), req)

	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if org == nil {
		t.Fatal("Expected organization, got nil")
	}
	if org.Name != "Hope Shelter" {
		t.Errorf("Expected name 'Hope Shelter', got '%s'", org.Name)
	}
	if org.OwnerAdminID != "admin-1" {
		t.Errorf("Expected owner 'admin-1', got '%s'", org.OwnerAdminID)
	}
	if org.Status != "active" {
		t.Errorf("Expected status 'active', got '%s'", org.Status)
	}
}

// TestCreateOrganization_EmptyName tests validation for empty name
func TestCreateOrganization_EmptyName(t *testing.T) {
	service := NewService(&mockRepository{})

	req := CreateOrganizationRequest{
		Name:         "",
		OwnerAdminID: "admin-1",
	}

	org, err := service.CreateOrganization(context.Background(), req)

	if !errors.Is(err, ErrMissingName) {
		t.Errorf("Expected ErrMissingName, got: %v", err)
	}
	if org != nil {
		t.Error("Expected nil organization")
	}
}

// TestCreateOrganization_MissingOwner tests validation for missing owner
func TestCreateOrganization_MissingOwner(t *testing.T) {
	service := NewService(&mockRepository{})

	req := CreateOrganizationRequest{Name: "Hope Shelter"}

	org, err := service.CreateOrganization(context.Background(), req)

	if !errors.Is(err, ErrMissingOwner) {
		t.Errorf("Expected ErrMissingOwner, got: %v", err)
	}
	if org != nil {
		t.Error("Expected nil organization")
	}
}

// TestCreateOrganization_OwnerConflict tests the one-organization-per-admin rule
func TestCreateOrganization_OwnerConflict(t *testing.T) {
	mockRepo := &mockRepository{
		createOrgFunc: func(ctx context.Context, req CreateOrganizationRequest) (*Organization, error) {
			return nil, ErrOwnerConflict
		},
	}
	service := NewService(mockRepo)

	req := CreateOrganizationRequest{Name: "Second Shelter", OwnerAdminID: "admin-1"}

	_, err := service.CreateOrganization(context.Background(), req)

	if !errors.Is(err, ErrOwnerConflict) {
		t.Errorf("Expected ErrOwnerConflict, got: %v", err)
	}
}

// TestCreateOrganization_RepositoryError tests handling of repository errors
func TestCreateOrganization_RepositoryError(t *testing.T) {
	mockRepo := &mockRepository{
		createOrgFunc: func(ctx context.Context, req CreateOrganizationRequest) (*Organization, error) {
			return nil, errors.New("database connection failed")
		},
	}
	service := NewService(mockRepo)

	req := CreateOrganizationRequest{Name: "Hope Shelter", OwnerAdminID: "admin-1"}

	org, err := service.CreateOrganization(context.Background(), req)

	if err == nil {
		t.Error("Expected error, got nil")
	}
	if org != nil {
		t.Error("Expected nil organization")
	}
}

// TestGetOrganization_Success tests fetching an organization
func TestGetOrganization_Success(t *testing.T) {
	mockRepo := &mockRepository{
		getOrgFunc: func(ctx context.Context, id string) (*Organization, error) {
			return &Organization{ID: id, Name: "Hope Shelter"}, nil
		},
	}
	service := NewService(mockRepo)

	org, err := service.GetOrganization(context.Background(), "org-123")

	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if org.ID != "org-123" {
		t.Errorf("Expected ID 'org-123', got '%s'", org.ID)
	}
}

// TestGetOrganization_NotFound tests fetching a missing organization
func TestGetOrganization_NotFound(t *testing.T) {
	mockRepo := &mockRepository{
		getOrgFunc: func(ctx context.Context, id string) (*Organization, error) {
			return nil, ErrNotFound
		},
	}
	service := NewService(mockRepo)

	_, err := service.GetOrganization(context.Background(), "missing")

	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got: %v", err)
	}
}

// TestListOrganizations_Pagination tests paginated listing
func TestListOrganizations_Pagination(t *testing.T) {
	mockRepo := &mockRepository{
		listOrgsFunc: func(ctx context.Context, limit, offset int) ([]Organization, int, error) {
			if limit != 5 {
				t.Errorf("Expected limit 5, got %d", limit)
			}
			if offset != 5 {
				t.Errorf("Expected offset 5, got %d", offset)
			}
			return []Organization{{ID: "org-6"}}, 6, nil
		},
	}
	service := NewService(mockRepo)

	resp, err := service.ListOrganizations(context.Background(), pagination.Params{Page: 2, Limit: 5})

	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(resp.Organizations) != 1 {
		t.Errorf("Expected 1 organization, got %d", len(resp.Organizations))
	}
	if resp.Pagination.TotalRecords != 6 {
		t.Errorf("Expected 6 total records, got %d", resp.Pagination.TotalRecords)
	}
	if resp.Pagination.TotalPages != 2 {
		t.Errorf("Expected 2 total pages, got %d", resp.Pagination.TotalPages)
	}
	if resp.Pagination.HasNext {
		t.Error("Expected HasNext=false on last page")
	}
}

// TestListOrganizations_DefaultsApplied tests defaulting of invalid params
func TestListOrganizations_DefaultsApplied(t *testing.T) {
	mockRepo := &mockRepository{
		listOrgsFunc: func(ctx context.Context, limit, offset int) ([]Organization, int, error) {
			if limit != pagination.DefaultLimit {
				t.Errorf("Expected default limit %d, got %d", pagination.DefaultLimit, limit)
			}
			if offset != 0 {
				t.Errorf("Expected offset 0, got %d", offset)
			}
			return nil, 0, nil
		},
	}
	service := NewService(mockRepo)

	_, err := service.ListOrganizations(context.Background(), pagination.Params{Page: 0, Limit: -1})

	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
}

// TestUpdateOrganization_Success tests partial updates
func TestUpdateOrganization_Success(t *testing.T) {
	newName := "Renamed Shelter"
	mockRepo := &mockRepository{
		updateOrgFunc: func(ctx context.Context, id string, req UpdateOrganizationRequest) (*Organization, error) {
			return &Organization{ID: id, Name: *req.Name}, nil
		},
	}
	service := NewService(mockRepo)

	org, err := service.UpdateOrganization(context.Background(), "org-123", UpdateOrganizationRequest{Name: &newName})

	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if org.Name != "Renamed Shelter" {
		t.Errorf("Expected name 'Renamed Shelter', got '%s'", org.Name)
	}
}

// TestDeleteOrganization_NotFound tests deleting non-existent organization
func TestDeleteOrganization_NotFound(t *testing.T) {
	mockRepo := &mockRepository{
		deleteOrgFunc: func(ctx context.Context, id string) error {
			return ErrNotFound
		},
	}
	service := NewService(mockRepo)

	err := service.DeleteOrganization(context.Background(), "nonexistent")

	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got: %v", err)
	}
}

// Mock repository for testing
type mockRepository struct {
	createOrgFunc  func(ctx context.Context, req CreateOrganizationRequest) (*Organization, error)
	getOrgFunc     func(ctx context.Context, id string) (*Organization, error)
	orgByOwnerFunc func(ctx context.Context, adminID string) (string, error)
	listOrgsFunc   func(ctx context.Context, limit, offset int) ([]Organization, int, error)
	updateOrgFunc  func(ctx context.Context, id string, req UpdateOrganizationRequest) (*Organization, error)
	deleteOrgFunc  func(ctx context.Context, id string) error
}

func (m *mockRepository) CreateOrganization(ctx context.Context, req CreateOrganizationRequest) (*Organization, error) {
	if m.createOrgFunc != nil {
		return m.createOrgFunc(ctx, req)
	}
	return nil, errors.New("not implemented")
}

func (m *mockRepository) GetOrganization(ctx context.Context, id string) (*Organization, error) {
	if m.getOrgFunc != nil {
		return m.getOrgFunc(ctx, id)
	}
	return nil, errors.New("not implemented")
}

func (m *mockRepository) OrganizationIDByOwner(ctx context.Context, adminID string) (string, error) {
	if m.orgByOwnerFunc != nil {
		return m.orgByOwnerFunc(ctx, adminID)
	}
	return "", nil
}

func (m *mockRepository) ListOrganizations(ctx context.Context, limit, offset int) ([]Organization, int, error) {
	if m.listOrgsFunc != nil {
		return m.listOrgsFunc(ctx, limit, offset)
	}
	return nil, 0, errors.New("not implemented")
}

func (m *mockRepository) UpdateOrganization(ctx context.Context, id string, req UpdateOrganizationRequest) (*Organization, error) {
	if m.updateOrgFunc != nil {
		return m.updateOrgFunc(ctx, id, req)
	}
	return nil, errors.New("not implemented")
}

func (m *mockRepository) DeleteOrganization(ctx context.Context, id string) error {
	if m.deleteOrgFunc != nil {
		return m.deleteOrgFunc(ctx, id)
	}
	return errors.New("not implemented")
}
