// go:build integration
//go:build integration

package organization

import (
	"context"
	"errors"
	"testing"

	"github.com/GiveHope-Foundation/donation-service/internal/testutil"
)

// TestRepositoryCreateOrganization_Integration tests creating an organization with real database
func TestRepositoryCreateOrganization_Integration(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()
	defer testutil.CleanupTestDB(t, db)

	repo := NewRepository(db)

	req := CreateOrganizationRequest{
		Name:         "Hope Shelter",
		ContactEmail: "contact@hopeshelter.org",
		ContactPhone: "+1234567890",
		Address:      "123 Relief St",
		OwnerAdminID: "admin-1",
	}

	org, err := repo.CreateOrganization(context.Background(), req)

	if err != nil {
		t.Fatalf("CreateOrganization failed: %v", err)
	}

	if org.ID == "" {
		t.Error("Expected organization ID to be set")
	}
	if org.Name != req.Name {
		t.Errorf("Expected name %s, got %s", req.Name, org.Name)
	}
	if org.OwnerAdminID != "admin-1" {
		t.Errorf("Expected owner 'admin-1', got %s", org.OwnerAdminID)
	}
	if org.Status != "active" {
		t.Errorf("Expected status 'active', got %s", org.Status)
	}
}

// TestRepositoryCreateOrganization_OwnerConflict_Integration tests the unique owner constraint
func TestRepositoryCreateOrganization_OwnerConflict_Integration(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()
	defer testutil.CleanupTestDB(t, db)

	repo := NewRepository(db)

	first := CreateOrganizationRequest{Name: "First Shelter", OwnerAdminID: "admin-1"}
	if _, err := repo.CreateOrganization(context.Background(), first); err != nil {
		t.Fatalf("CreateOrganization failed: %v", err)
	}

	second := CreateOrganizationRequest{Name: "Second Shelter", OwnerAdminID: "admin-1"}
	_, err := repo.CreateOrganization(context.Background(), second)

	if !errors.Is(err, ErrOwnerConflict) {
		t.Errorf("Expected ErrOwnerConflict, got: %v", err)
	}
}

// TestRepositoryOrganizationIDByOwner_Integration tests ownership lookup
func TestRepositoryOrganizationIDByOwner_Integration(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()
	defer testutil.CleanupTestDB(t, db)

	repo := NewRepository(db)

	org, err := repo.CreateOrganization(context.Background(), CreateOrganizationRequest{
		Name:         "Hope Shelter",
		OwnerAdminID: "admin-1",
	})
	if err != nil {
		t.Fatalf("CreateOrganization failed: %v", err)
	}

	id, err := repo.OrganizationIDByOwner(context.Background(), "admin-1")
	if err != nil {
		t.Fatalf("OrganizationIDByOwner failed: %v", err)
	}
	if id != org.ID {
		t.Errorf("Expected %s, got %s", org.ID, id)
	}

	// An admin with no organization resolves to empty, not an error
	id, err = repo.OrganizationIDByOwner(context.Background(), "admin-without-org")
	if err != nil {
		t.Fatalf("OrganizationIDByOwner failed: %v", err)
	}
	if id != "" {
		t.Errorf("Expected empty organization ID, got %s", id)
	}
}

// TestRepositoryDeleteOrganization_Integration tests soft delete and ownership release
func TestRepositoryDeleteOrganization_Integration(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()
	defer testutil.CleanupTestDB(t, db)

	repo := NewRepository(db)

	org, err := repo.CreateOrganization(context.Background(), CreateOrganizationRequest{
		Name:         "Hope Shelter",
		OwnerAdminID: "admin-1",
	})
	if err != nil {
		t.Fatalf("CreateOrganization failed: %v", err)
	}

	if err := repo.DeleteOrganization(context.Background(), org.ID); err != nil {
		t.Fatalf("DeleteOrganization failed: %v", err)
	}

	_, err = repo.GetOrganization(context.Background(), org.ID)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound after delete, got: %v", err)
	}

	// The owner can register a new organization after the soft delete
	if _, err := repo.CreateOrganization(context.Background(), CreateOrganizationRequest{
		Name:         "New Shelter",
		OwnerAdminID: "admin-1",
	}); err != nil {
		t.Errorf("Expected owner to be released after delete, got: %v", err)
	}

	// Deleting again reports not found
	err = repo.DeleteOrganization(context.Background(), org.ID)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound for repeated delete, got: %v", err)
	}
}
