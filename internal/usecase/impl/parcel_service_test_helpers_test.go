package impl

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"parceltrack/config"
	"parceltrack/internal/domain/pricing"
	"parceltrack/internal/domain/tracking"
	mockRepo "parceltrack/internal/mocks/repository"
	mockSvc "parceltrack/internal/mocks/service"
	"parceltrack/internal/usecase"

	"github.com/stretchr/testify/require"
)

// parcelServiceFixture wires a parcelService against mocks with a pinned
// clock and random source, so issued tracking codes are deterministic:
// PCL20250630000000, PCL20250630000001, ...
type parcelServiceFixture struct {
	parcelRepo  *mockRepo.MockParcelRepository
	addressRepo *mockRepo.MockAddressRepository
	statusRepo  *mockRepo.MockStatusUpdateRepository
	agentRepo   *mockRepo.MockAgentRepository
	qrService   *mockSvc.MockQRCodeService
	notifier    *mockSvc.MockNotificationService
	publisher   *mockSvc.MockEventPublisher
	broadcaster *mockSvc.RecordingBroadcaster
	service     usecase.ParcelUsecase
}

func newParcelServiceFixture(t *testing.T) *parcelServiceFixture {
	t.Helper()

	fixture := &parcelServiceFixture{
		parcelRepo:  mockRepo.NewMockParcelRepository(t),
		addressRepo: mockRepo.NewMockAddressRepository(t),
		statusRepo:  mockRepo.NewMockStatusUpdateRepository(t),
		agentRepo:   mockRepo.NewMockAgentRepository(t),
		qrService:   mockSvc.NewMockQRCodeService(t),
		notifier:    mockSvc.NewMockNotificationService(t),
		publisher:   mockSvc.NewMockEventPublisher(t),
		broadcaster: mockSvc.NewRecordingBroadcaster(),
	}

	var suffix int
	issuer, err := tracking.NewIssuer("PCL",
		tracking.WithClock(func() time.Time {
			return time.Date(2025, 6, 30, 12, 0, 0, 0, time.UTC)
		}),
		tracking.WithRand(func(int) int {
			suffix++

			return suffix - 1
		}),
	)
	require.NoError(t, err)

	cfg := &config.Config{
		Tracking: &config.TrackingConfig{Prefix: "PCL", MaxIssueAttempts: 5},
		Shipping: &config.ShippingConfig{
			MinimumCharge:         50,
			PublicTrackingBaseURL: "http://localhost:8080/track",
		},
	}

	fixture.service = NewParcelService(ParcelServiceParams{
		TxManager: &mockRepo.StubTransactionManager{
			Factory: &mockRepo.StubRepositoryFactory{
				ParcelRepo:  fixture.parcelRepo,
				AddressRepo: fixture.addressRepo,
				StatusRepo:  fixture.statusRepo,
				AgentRepo:   fixture.agentRepo,
			},
		},
		ParcelRepo:  fixture.parcelRepo,
		StatusRepo:  fixture.statusRepo,
		Issuer:      issuer,
		CostEngine:  pricing.NewEngine(cfg.Shipping.MinimumCharge),
		QRService:   fixture.qrService,
		Notifier:    fixture.notifier,
		Publisher:   fixture.publisher,
		Broadcaster: fixture.broadcaster,
		Config:      cfg,
		Logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	})

	return fixture
}

// validCreateInput books a small same-city document, which prices at the
// SMALL base of 80.
func validCreateInput() *usecase.CreateParcelInput {
	return &usecase.CreateParcelInput{
		Size:        "SMALL",
		Type:        "DOCUMENT",
		PaymentType: "PREPAID",
		Pickup: usecase.AddressInput{
			Street:  "12 Harbor Road",
			City:    "Lagos",
			State:   "Lagos",
			Country: "NG",
		},
		Delivery: usecase.AddressInput{
			Street:  "3 Market Lane",
			City:    "Lagos",
			State:   "Lagos",
			Country: "NG",
		},
	}
}
