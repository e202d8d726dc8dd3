package donation

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/GiveHope-Foundation/donation-service/internal/auth"
	"github.com/GiveHope-Foundation/donation-service/internal/messaging"
	"github.com/GiveHope-Foundation/donation-service/internal/notify"
	"github.com/GiveHope-Foundation/donation-service/internal/pagination"
	"github.com/GiveHope-Foundation/donation-service/internal/telemetry"
	"github.com/go-playground/validator/v10"
)

// notifyTimeout bounds the background donor/admin email dispatch.
const notifyTimeout = 15 * time.Second

type Service struct {
	repo      RepositoryInterface
	publisher messaging.PublisherInterface
	notifier  notify.Notifier
	metrics   *telemetry.Metrics
	validate  *validator.Validate
}

func NewService(repo RepositoryInterface, publisher messaging.PublisherInterface, notifier notify.Notifier, metrics *telemetry.Metrics) *Service {
	return &Service{
		repo:      repo,
		publisher: publisher,
		notifier:  notifier,
		metrics:   metrics,
		validate:  validator.New(),
	}
}

// Submit creates a PENDING donation on behalf of the authenticated donor.
// With OrganizationID unset the donation goes into the shared pool.
func (s *Service) Submit(ctx context.Context, donor DonorInfo, req SubmitDonationRequest) (*Donation, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	switch req.Kind {
	case KindMoney:
		if req.Amount == nil {
			return nil, fmt.Errorf("%w: amount is required for monetary donations", ErrValidation)
		}
		if req.NeedsPickup {
			return nil, fmt.Errorf("%w: monetary donations cannot request pickup", ErrValidation)
		}
	case KindItems:
		if req.ItemName == "" {
			return nil, fmt.Errorf("%w: item name is required for item donations", ErrValidation)
		}
		if req.Quantity <= 0 {
			return nil, fmt.Errorf("%w: quantity is required for item donations", ErrValidation)
		}
		if req.Amount != nil {
			return nil, fmt.Errorf("%w: amount is only valid for monetary donations", ErrValidation)
		}
	}
	if req.NeedsPickup && req.PickupAddress == "" {
		return nil, fmt.Errorf("%w: pickup address is required when pickup is requested", ErrValidation)
	}

	d, err := s.repo.Create(ctx, req, donor)
	if err != nil {
		return nil, err
	}

	s.publishEvent(ctx, messaging.EventDonationSubmitted, messaging.DonationSubmittedEvent{
		BaseEvent: messaging.NewBaseEvent(messaging.EventDonationSubmitted),
		Data: messaging.DonationSubmittedData{
			DonationID:     d.ID,
			DonorID:        d.DonorID,
			OrganizationID: orgIDString(d.OrganizationID),
			Kind:           string(d.Kind),
			NeedsPickup:    d.NeedsPickup,
			CreatedAt:      d.CreatedAt,
		},
	})
	s.metrics.RecordSubmission(ctx, string(d.Kind), d.InPool())

	go s.dispatchNewDonationAlert(d)

	return d, nil
}

// Decide approves or rejects a pending, organization-owned donation.
// The repository write is conditional on the donation still being PENDING,
// so two racing decisions resolve to exactly one.
func (s *Service) Decide(ctx context.Context, actor auth.Actor, id string, req DecideRequest) (*Donation, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	d, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanManage(d.OrganizationID) {
		return nil, ErrForbidden
	}
	if d.InPool() {
		// Pool donations are claimed, not decided.
		return nil, ErrUnassigned
	}
	if d.Status != StatusPending {
		return nil, ErrNotPending
	}

	newStatus := Status(req.Status)
	updated, err := s.repo.UpdateStatus(ctx, id, newStatus, req.AdminNotes)
	if errors.Is(err, errStaleWrite) {
		return nil, s.classifyDecideFailure(ctx, id)
	}
	if err != nil {
		return nil, err
	}

	s.publishEvent(ctx, messaging.EventDonationStatusChanged, messaging.DonationStatusChangedEvent{
		BaseEvent: messaging.NewBaseEvent(messaging.EventDonationStatusChanged),
		Data: messaging.DonationStatusChangedData{
			DonationID:     updated.ID,
			DonorID:        updated.DonorID,
			OrganizationID: orgIDString(updated.OrganizationID),
			OldStatus:      string(StatusPending),
			NewStatus:      string(updated.Status),
			AdminNotes:     updated.AdminNotes,
			ChangedAt:      updated.UpdatedAt,
		},
	})
	s.metrics.RecordDecision(ctx, string(updated.Status))

	go s.dispatchStatusEmail(updated)

	return updated, nil
}

// Claim atomically transfers a pool donation to the actor's organization and
// approves it. A super admin owns no organization and therefore cannot claim.
func (s *Service) Claim(ctx context.Context, actor auth.Actor, id string) (*Donation, error) {
	if actor.IsSuperAdmin() {
		return nil, ErrNoOrganization
	}

	updated, err := s.repo.Claim(ctx, id, actor.OrganizationID)
	if errors.Is(err, errStaleWrite) {
		s.metrics.RecordClaim(ctx, false)
		return nil, s.classifyClaimFailure(ctx, id)
	}
	if err != nil {
		return nil, err
	}

	s.publishEvent(ctx, messaging.EventDonationClaimed, messaging.DonationClaimedEvent{
		BaseEvent: messaging.NewBaseEvent(messaging.EventDonationClaimed),
		Data: messaging.DonationClaimedData{
			DonationID:     updated.ID,
			DonorID:        updated.DonorID,
			OrganizationID: actor.OrganizationID,
			ClaimedBy:      actor.UserID,
			ClaimedAt:      updated.UpdatedAt,
		},
	})
	s.metrics.RecordClaim(ctx, true)

	// A claim auto-approves, so the donor gets the same confirmation as an
	// explicit approval.
	go s.dispatchStatusEmail(updated)

	return updated, nil
}

// UpdatePickup changes the pickup logistics state of a donation. Pickup
// tracking is independent of approval status but gated by the same
// authorization rule.
func (s *Service) UpdatePickup(ctx context.Context, actor auth.Actor, req PickupUpdateRequest) (*Donation, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	newStatus := PickupStatus(req.PickupStatus)
	if !newStatus.Valid() {
		return nil, ErrInvalidPickupStatus
	}

	d, err := s.repo.GetByID(ctx, req.DonationID)
	if err != nil {
		return nil, err
	}
	if !actor.CanManage(d.OrganizationID) {
		return nil, ErrForbidden
	}
	if !d.NeedsPickup && newStatus != PickupNotRequired {
		return nil, ErrPickupNotRequired
	}
	if !CanTransitionPickup(d.PickupStatus, newStatus) {
		return nil, ErrInvalidPickupStatus
	}

	updated, err := s.repo.UpdatePickupStatus(ctx, req.DonationID, newStatus)
	if err != nil {
		return nil, err
	}

	s.publishEvent(ctx, messaging.EventDonationPickupUpdated, messaging.DonationPickupUpdatedEvent{
		BaseEvent: messaging.NewBaseEvent(messaging.EventDonationPickupUpdated),
		Data: messaging.DonationPickupUpdatedData{
			DonationID:      updated.ID,
			OrganizationID:  orgIDString(updated.OrganizationID),
			OldPickupStatus: string(d.PickupStatus),
			NewPickupStatus: string(updated.PickupStatus),
			ChangedAt:       updated.UpdatedAt,
		},
	})
	s.metrics.RecordPickupUpdate(ctx, string(updated.PickupStatus))

	return updated, nil
}

// Get returns a single donation, applying the management authorization rule.
func (s *Service) Get(ctx context.Context, actor auth.Actor, id string) (*Donation, error) {
	d, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanManage(d.OrganizationID) {
		return nil, ErrForbidden
	}
	return d, nil
}

// ListForOrganization returns the donations owned by the actor's
// organization. A super admin sees every donation.
func (s *Service) ListForOrganization(ctx context.Context, actor auth.Actor, params pagination.Params) (*PaginatedDonations, error) {
	params.Validate()

	var (
		donations []Donation
		total     int
		err       error
	)
	if actor.IsSuperAdmin() {
		donations, total, err = s.repo.ListAll(ctx, params.Limit, params.CalculateOffset())
	} else {
		donations, total, err = s.repo.ListByOrganization(ctx, actor.OrganizationID, params.Limit, params.CalculateOffset())
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list donations: %w", err)
	}

	return paginated(donations, params, total), nil
}

// ListPool returns unclaimed donations available to any organization.
func (s *Service) ListPool(ctx context.Context, actor auth.Actor, params pagination.Params) (*PaginatedDonations, error) {
	params.Validate()

	donations, total, err := s.repo.ListPool(ctx, params.Limit, params.CalculateOffset())
	if err != nil {
		return nil, fmt.Errorf("failed to list pool donations: %w", err)
	}
	return paginated(donations, params, total), nil
}

// ListPickups returns pickup-requesting donations in the actor's scope.
func (s *Service) ListPickups(ctx context.Context, actor auth.Actor, params pagination.Params) (*PaginatedDonations, error) {
	params.Validate()

	donations, total, err := s.repo.ListNeedingPickup(ctx, actor.OrganizationID, params.Limit, params.CalculateOffset())
	if err != nil {
		return nil, fmt.Errorf("failed to list pickup donations: %w", err)
	}
	return paginated(donations, params, total), nil
}

// ListForDonor returns the donor's own donations.
func (s *Service) ListForDonor(ctx context.Context, donorID string, params pagination.Params) (*PaginatedDonations, error) {
	params.Validate()

	donations, total, err := s.repo.ListByDonor(ctx, donorID, params.Limit, params.CalculateOffset())
	if err != nil {
		return nil, fmt.Errorf("failed to list donor donations: %w", err)
	}
	return paginated(donations, params, total), nil
}

// classifyDecideFailure inspects a donation after a lost conditional status
// write to report why it failed. The read is informational only; the write
// already decided the outcome.
func (s *Service) classifyDecideFailure(ctx context.Context, id string) error {
	d, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if d.InPool() {
		return ErrUnassigned
	}
	if d.Status != StatusPending {
		return ErrNotPending
	}
	return fmt.Errorf("donation %s could not be updated", id)
}

// classifyClaimFailure inspects a donation after a lost claim to report why.
func (s *Service) classifyClaimFailure(ctx context.Context, id string) error {
	d, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !d.InPool() {
		return ErrAlreadyClaimed
	}
	if d.Status != StatusPending {
		return ErrNotPending
	}
	return fmt.Errorf("donation %s could not be claimed", id)
}

func (s *Service) publishEvent(ctx context.Context, routingKey string, event interface{}) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, routingKey, event); err != nil {
		log.Printf("Warning: failed to publish %s event: %v", routingKey, err)
	}
}

// dispatchStatusEmail notifies the donor about a decision. Runs in its own
// goroutine with a fresh context: the request that triggered it has already
// committed and must not be failed or delayed by mail delivery.
func (s *Service) dispatchStatusEmail(d *Donation) {
	if s.notifier == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
	defer cancel()

	err := s.notifier.SendStatusUpdate(ctx, notify.StatusUpdate{
		DonorName:  d.DonorName,
		DonorEmail: d.DonorEmail,
		DonationID: d.ID,
		Summary:    d.Summary(),
		NewStatus:  string(d.Status),
		AdminNotes: d.AdminNotes,
	})
	if err != nil {
		log.Printf("Warning: failed to send donor status email for donation %s: %v", d.ID, err)
		s.metrics.RecordNotificationFailure(ctx, "donor_status")
	}
}

func (s *Service) dispatchNewDonationAlert(d *Donation) {
	if s.notifier == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
	defer cancel()

	err := s.notifier.SendNewDonationAlert(ctx, notify.NewDonationAlert{
		DonorName:   d.DonorName,
		DonorEmail:  d.DonorEmail,
		DonationID:  d.ID,
		Summary:     d.Summary(),
		Description: d.Description,
	})
	if err != nil {
		log.Printf("Warning: failed to send new donation alert for donation %s: %v", d.ID, err)
		s.metrics.RecordNotificationFailure(ctx, "admin_alert")
	}
}

func paginated(donations []Donation, params pagination.Params, total int) *PaginatedDonations {
	if donations == nil {
		donations = []Donation{}
	}
	return &PaginatedDonations{
		Success:    true,
		Donations:  donations,
		Pagination: params.CalculateMeta(total),
	}
}

func orgIDString(orgID *string) string {
	if orgID == nil {
		return ""
	}
	return *orgID
}
