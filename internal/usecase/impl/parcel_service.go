// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"parceltrack/config"
	deliverycontext "parceltrack/internal/delivery/context"
	"parceltrack/internal/domain/entity"
	domainerrors "parceltrack/internal/domain/errors"
	"parceltrack/internal/domain/pricing"
	"parceltrack/internal/domain/repository"
	"parceltrack/internal/domain/service"
	"parceltrack/internal/domain/tracking"
	"parceltrack/internal/errors"
	"parceltrack/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

const adminListLimit = 100

// parcelService implements the ParcelUsecase interface. It orchestrates
// the issuer, the cost engine and the status state machine around atomic
// persistence, and fires the non-transactional side effects after commit.
type parcelService struct {
	txManager   repository.TransactionManager
	parcelRepo  repository.ParcelRepository
	statusRepo  repository.StatusUpdateRepository
	issuer      *tracking.Issuer
	costEngine  *pricing.Engine
	qrService   service.QRCodeService
	notifier    service.NotificationService
	publisher   service.EventPublisher
	broadcaster service.Broadcaster

	trackingBaseURL  string
	maxIssueAttempts int

	logger *slog.Logger
	now    func() time.Time
}

// ParcelServiceParams holds dependencies for parcelService, injected by Fx.
type ParcelServiceParams struct {
	fx.In

	TxManager   repository.TransactionManager
	ParcelRepo  repository.ParcelRepository
	StatusRepo  repository.StatusUpdateRepository
	Issuer      *tracking.Issuer
	CostEngine  *pricing.Engine
	QRService   service.QRCodeService
	Notifier    service.NotificationService
	Publisher   service.EventPublisher
	Broadcaster service.Broadcaster
	Config      *config.Config
	Logger      *slog.Logger
}

// NewParcelService is the constructor for parcelService. It receives all
// dependencies as interfaces.
func NewParcelService(params ParcelServiceParams) usecase.ParcelUsecase {
	return &parcelService{
		txManager:        params.TxManager,
		parcelRepo:       params.ParcelRepo,
		statusRepo:       params.StatusRepo,
		issuer:           params.Issuer,
		costEngine:       params.CostEngine,
		qrService:        params.QRService,
		notifier:         params.Notifier,
		publisher:        params.Publisher,
		broadcaster:      params.Broadcaster,
		trackingBaseURL:  params.Config.Shipping.PublicTrackingBaseURL,
		maxIssueAttempts: params.Config.Tracking.MaxIssueAttempts,
		logger:           params.Logger,
		now:              time.Now,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *parcelService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreateParcel books a new parcel. The four writes (two addresses, the
// parcel, the initial PENDING log entry) form one atomic unit; a
// tracking code collision re-issues and retries up to the configured
// bound before surfacing the conflict.
func (srv *parcelService) CreateParcel(ctx context.Context, principal entity.Principal, input *usecase.CreateParcelInput) (*entity.Parcel, error) {
	size, parcelType, payment, err := parseAttributes(input.Size, input.Type, input.PaymentType)
	if err != nil {
		return nil, err
	}
	if err := validatePayment(payment, input.CODAmount); err != nil {
		return nil, err
	}

	customerID, err := resolveCustomer(principal, input.CustomerID)
	if err != nil {
		return nil, err
	}

	now := srv.now()
	pickup := addressFromInput(&input.Pickup, now)
	delivery := addressFromInput(&input.Delivery, now)
	cost := srv.costEngine.Quote(size, input.WeightKg, pickup, delivery, parcelType)

	var created *entity.Parcel
	var initial *entity.StatusUpdate

	for attempt := 1; attempt <= srv.maxIssueAttempts; attempt++ {
		code := srv.issuer.Issue()

		parcel := &entity.Parcel{
			ID:               uuid.New(),
			TrackingCode:     code,
			Size:             size,
			Type:             parcelType,
			WeightKg:         input.WeightKg,
			PaymentType:      payment,
			CODAmount:        input.CODAmount,
			ShippingCost:     cost,
			Status:           entity.StatusPending,
			CustomerID:       customerID,
			PickupAddress:    pickup,
			DeliveryAddress:  delivery,
			PickupDate:       input.PickupDate,
			ExpectedDelivery: entity.ExpectedDeliveryFrom(input.PickupDate, now),
			QRCode:           srv.encodeTrackingQR(ctx, code),
			CreatedAt:        now,
			UpdatedAt:        now,
		}

		update := &entity.StatusUpdate{
			ID:        uuid.New(),
			ParcelID:  parcel.ID,
			Status:    entity.StatusPending,
			CreatedAt: now,
		}

		txErr := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
			addressRepo := repoFactory.NewAddressRepository()
			if err := addressRepo.CreateAddress(ctx, parcel.PickupAddress); err != nil {
				return err
			}
			if err := addressRepo.CreateAddress(ctx, parcel.DeliveryAddress); err != nil {
				return err
			}
			if err := repoFactory.NewParcelRepository().CreateParcel(ctx, parcel); err != nil {
				return err
			}

			return repoFactory.NewStatusUpdateRepository().CreateStatusUpdate(ctx, update)
		})
		if txErr == nil {
			created = parcel
			initial = update

			break
		}

		if errors.Is(txErr, domainerrors.ErrTrackingCodeConflict) {
			srv.log(ctx).Warn("Tracking code collision, re-issuing",
				slog.String("trackingCode", code),
				slog.Int("attempt", attempt),
			)

			continue
		}

		return nil, txErr
	}

	if created == nil {
		return nil, domainerrors.ErrTrackingCodeConflict.WrapMessage(
			fmt.Sprintf("could not issue a unique tracking code in %d attempts", srv.maxIssueAttempts))
	}

	srv.log(ctx).Info("Parcel created",
		slog.String("parcelID", created.ID.String()),
		slog.String("trackingCode", created.TrackingCode),
		slog.Float64("shippingCost", created.ShippingCost),
	)

	srv.emitStatusEvent(ctx, created, initial)
	if err := srv.notifier.NotifyParcelCreated(ctx, created); err != nil {
		srv.log(ctx).Warn("Parcel creation notification failed", slog.Any("error", err))
	}

	return created, nil
}

// ApplyTransition runs the guard chain and, on acceptance, atomically
// persists the parcel mutation together with exactly one status log
// entry. Guard order: delivered-immutability, agent assignment match,
// customer exclusion, graph reachability.
func (srv *parcelService) ApplyTransition(ctx context.Context, principal entity.Principal, parcelID uuid.UUID, input *usecase.TransitionInput) (*entity.Parcel, error) {
	target := entity.ParcelStatus(input.Target)
	if !target.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WithDetails(
			fmt.Sprintf("unknown target status %q", input.Target))
	}

	var parcel *entity.Parcel
	var update *entity.StatusUpdate

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		parcelRepo := repoFactory.NewParcelRepository()

		// The row lock serializes concurrent transitions on one parcel;
		// the loser re-reads committed state and fails its own guards.
		locked, err := parcelRepo.FindParcelByIDForUpdate(ctx, parcelID)
		if err != nil {
			if errors.Is(err, repository.ErrParcelNotFound) {
				return domainerrors.ErrParcelNotFound
			}

			return err
		}

		if err := evaluateGuards(locked, principal, target); err != nil {
			return err
		}

		if target == entity.StatusAssigned {
			if err := srv.assignAgent(ctx, repoFactory, locked, input.AgentID); err != nil {
				return err
			}
		}

		now := srv.now()
		locked.Status = target
		locked.UpdatedAt = now
		if target == entity.StatusDelivered {
			locked.DeliveredAt = &now
		}

		if err := parcelRepo.UpdateParcelStatus(ctx, locked); err != nil {
			return err
		}

		update = &entity.StatusUpdate{
			ID:        uuid.New(),
			ParcelID:  locked.ID,
			Status:    target,
			Note:      input.Note,
			AgentID:   actingAgent(principal),
			Latitude:  input.Latitude,
			Longitude: input.Longitude,
			CreatedAt: now,
		}
		if err := repoFactory.NewStatusUpdateRepository().CreateStatusUpdate(ctx, update); err != nil {
			return err
		}

		parcel = locked

		return nil
	})
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Parcel status changed",
		slog.String("parcelID", parcel.ID.String()),
		slog.String("trackingCode", parcel.TrackingCode),
		slog.String("status", parcel.Status.String()),
	)

	srv.emitStatusEvent(ctx, parcel, update)
	if err := srv.notifier.NotifyStatusChanged(ctx, parcel, update); err != nil {
		srv.log(ctx).Warn("Status change notification failed", slog.Any("error", err))
	}

	return parcel, nil
}

// GetParcel returns one parcel to an actor allowed to see it.
func (srv *parcelService) GetParcel(ctx context.Context, principal entity.Principal, parcelID uuid.UUID) (*entity.Parcel, error) {
	parcel, err := srv.parcelRepo.FindParcelByID(ctx, parcelID)
	if err != nil {
		if errors.Is(err, repository.ErrParcelNotFound) {
			return nil, domainerrors.ErrParcelNotFound
		}

		return nil, err
	}

	if !mayView(parcel, principal) {
		return nil, domainerrors.ErrForbidden.WrapMessage("parcel is not visible to this principal")
	}

	return parcel, nil
}

// ListParcels returns the parcels visible to the principal.
func (srv *parcelService) ListParcels(ctx context.Context, principal entity.Principal) ([]*entity.Parcel, error) {
	switch principal.Role {
	case entity.RoleCustomer:
		return srv.parcelRepo.ListParcelsByCustomer(ctx, principal.ID)
	case entity.RoleAgent:
		return srv.parcelRepo.ListParcelsByAgent(ctx, principal.ID)
	case entity.RoleAdmin:
		return srv.parcelRepo.ListRecentParcels(ctx, adminListLimit)
	default:
		return nil, domainerrors.ErrForbidden
	}
}

// DeleteParcel removes a parcel that has not yet entered transit.
// Deletion is an orchestration-level rule, not a state machine edge.
func (srv *parcelService) DeleteParcel(ctx context.Context, principal entity.Principal, parcelID uuid.UUID) error {
	if principal.IsAgent() {
		return domainerrors.ErrForbidden.WrapMessage("agents may not delete parcels")
	}

	return srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		parcelRepo := repoFactory.NewParcelRepository()

		parcel, err := parcelRepo.FindParcelByIDForUpdate(ctx, parcelID)
		if err != nil {
			if errors.Is(err, repository.ErrParcelNotFound) {
				return domainerrors.ErrParcelNotFound
			}

			return err
		}

		if principal.IsCustomer() && parcel.CustomerID != principal.ID {
			return domainerrors.ErrForbidden.WrapMessage("parcel belongs to another customer")
		}
		if !parcel.Status.Deletable() {
			return domainerrors.ErrParcelNotDeletable.WithDetails(
				fmt.Sprintf("parcel is %s", parcel.Status))
		}

		return parcelRepo.DeleteParcel(ctx, parcelID)
	})
}

// TrackParcel resolves a tracking code for public trackers.
func (srv *parcelService) TrackParcel(ctx context.Context, trackingCode string) (*usecase.TrackingResult, error) {
	if !srv.issuer.Validate(trackingCode) {
		return nil, domainerrors.ErrValidationFailed.WithDetails("malformed tracking code")
	}

	parcel, err := srv.parcelRepo.FindParcelByTrackingCode(ctx, trackingCode)
	if err != nil {
		if errors.Is(err, repository.ErrParcelNotFound) {
			return nil, domainerrors.ErrParcelNotFound
		}

		return nil, err
	}

	history, err := srv.statusRepo.ListStatusUpdatesByParcel(ctx, parcel.ID)
	if err != nil {
		return nil, err
	}

	return &usecase.TrackingResult{Parcel: parcel, History: history}, nil
}

// QuoteShipping computes the itemized cost breakdown without booking.
func (srv *parcelService) QuoteShipping(_ context.Context, input *usecase.QuoteInput) (*pricing.Breakdown, error) {
	size, parcelType, _, err := parseAttributes(input.Size, input.Type, string(entity.PaymentPrepaid))
	if err != nil {
		return nil, err
	}

	now := srv.now()

	return srv.costEngine.Breakdown(
		size,
		input.WeightKg,
		addressFromInput(&input.Pickup, now),
		addressFromInput(&input.Delivery, now),
		parcelType,
	), nil
}

// --- guards and helpers ---

// evaluateGuards applies the transition preconditions in contract order.
func evaluateGuards(parcel *entity.Parcel, principal entity.Principal, target entity.ParcelStatus) error {
	if parcel.Status.IsTerminal() {
		return domainerrors.ErrParcelDelivered
	}

	if principal.IsAgent() && !parcel.IsAssignedTo(principal.ID) {
		return domainerrors.ErrNotAssignedAgent
	}

	if principal.IsCustomer() {
		return domainerrors.ErrCustomerCannotTransition
	}

	allowed := parcel.Status.CanTransitionTo(target) ||
		(principal.IsAdmin() && parcel.Status.IsAdminOverride(target))
	if !allowed {
		return domainerrors.ErrInvalidTransition.WithDetails(
			fmt.Sprintf("%s -> %s", parcel.Status, target))
	}

	return nil
}

// assignAgent validates the target agent of an ASSIGNED transition and
// records the assignment on the parcel.
func (srv *parcelService) assignAgent(ctx context.Context, repoFactory repository.RepositoryFactory, parcel *entity.Parcel, agentID *uuid.UUID) error {
	if agentID == nil {
		return domainerrors.ErrValidationFailed.WithDetails("agent_id is required when assigning")
	}

	agent, err := repoFactory.NewAgentRepository().FindAgentByID(ctx, *agentID)
	if err != nil {
		if errors.Is(err, repository.ErrAgentNotFound) {
			return domainerrors.ErrAgentNotFound
		}

		return err
	}

	if !agent.Assignable() {
		return domainerrors.ErrAgentNotAssignable
	}

	parcel.AgentID = agentID

	return nil
}

// emitStatusEvent fans the committed transition out to live subscribers
// and the broker. Both paths are fire-and-forget.
func (srv *parcelService) emitStatusEvent(ctx context.Context, parcel *entity.Parcel, update *entity.StatusUpdate) {
	event := &service.StatusEvent{
		RequestID:    deliverycontext.GetRequestIDFromContext(ctx),
		ParcelID:     parcel.ID.String(),
		TrackingCode: parcel.TrackingCode,
		Status:       update.Status.String(),
		Note:         update.Note,
		Latitude:     update.Latitude,
		Longitude:    update.Longitude,
		OccurredAt:   update.CreatedAt,
	}
	if update.AgentID != nil {
		event.AgentID = update.AgentID.String()
	}

	srv.broadcaster.Publish(parcel.TrackingCode, event)

	if err := srv.publisher.PublishStatusEvent(ctx, event); err != nil {
		srv.log(ctx).Warn("Status event broker publish failed",
			slog.String("trackingCode", parcel.TrackingCode),
			slog.Any("error", err),
		)
	}
}

// encodeTrackingQR builds the public tracking URL QR image. Encoding
// failure must never block creation, so it degrades to no image.
func (srv *parcelService) encodeTrackingQR(ctx context.Context, trackingCode string) []byte {
	url := fmt.Sprintf("%s/%s", srv.trackingBaseURL, trackingCode)

	png, err := srv.qrService.GenerateTrackingQR(url)
	if err != nil {
		srv.log(ctx).Warn("Tracking QR encoding failed",
			slog.String("trackingCode", trackingCode),
			slog.Any("error", err),
		)

		return nil
	}

	return png
}

func parseAttributes(size, parcelType, payment string) (entity.ParcelSize, entity.ParcelType, entity.PaymentType, error) {
	s := entity.ParcelSize(size)
	if !s.IsValid() {
		return "", "", "", domainerrors.ErrValidationFailed.WithDetails(fmt.Sprintf("unknown size %q", size))
	}

	t := entity.ParcelType(parcelType)
	if !t.IsValid() {
		return "", "", "", domainerrors.ErrValidationFailed.WithDetails(fmt.Sprintf("unknown parcel type %q", parcelType))
	}

	p := entity.PaymentType(payment)
	if !p.IsValid() {
		return "", "", "", domainerrors.ErrValidationFailed.WithDetails(fmt.Sprintf("unknown payment type %q", payment))
	}

	return s, t, p, nil
}

// validatePayment enforces that a positive collection amount accompanies
// COD and nothing else.
func validatePayment(payment entity.PaymentType, codAmount *float64) error {
	if payment == entity.PaymentCOD {
		if codAmount == nil || *codAmount <= 0 {
			return domainerrors.ErrCODAmountRequired
		}

		return nil
	}

	if codAmount != nil {
		return domainerrors.ErrValidationFailed.WithDetails("cod_amount is only valid for COD parcels")
	}

	return nil
}

// resolveCustomer decides whom the booking belongs to. Customers always
// book for themselves; admins may book on behalf of a customer.
func resolveCustomer(principal entity.Principal, requested *uuid.UUID) (uuid.UUID, error) {
	if principal.IsCustomer() {
		return principal.ID, nil
	}

	if requested == nil {
		return uuid.Nil, domainerrors.ErrValidationFailed.WithDetails("customer_id is required for staff bookings")
	}

	return *requested, nil
}

// mayView reports whether the principal is allowed to read the parcel:
// admins see everything, customers their own bookings, agents the
// parcels assigned to them.
func mayView(parcel *entity.Parcel, principal entity.Principal) bool {
	switch principal.Role {
	case entity.RoleAdmin:
		return true
	case entity.RoleCustomer:
		return parcel.CustomerID == principal.ID
	case entity.RoleAgent:
		return parcel.IsAssignedTo(principal.ID)
	default:
		return false
	}
}

// actingAgent returns the status log attribution: the acting agent for
// agent transitions, nil for system or admin entries.
func actingAgent(principal entity.Principal) *uuid.UUID {
	if principal.IsAgent() {
		id := principal.ID
		return &id
	}

	return nil
}

func addressFromInput(input *usecase.AddressInput, now time.Time) *entity.Address {
	return &entity.Address{
		ID:           uuid.New(),
		Street:       input.Street,
		City:         input.City,
		State:        input.State,
		PostalCode:   input.PostalCode,
		Country:      input.Country,
		Latitude:     input.Latitude,
		Longitude:    input.Longitude,
		ContactPhone: input.ContactPhone,
		CreatedAt:    now,
	}
}
