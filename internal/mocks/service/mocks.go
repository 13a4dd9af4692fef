// Package service provides testify mocks for the domain service
// interfaces.
package service

import (
	"context"
	"sync"
	"testing"

	"parceltrack/internal/domain/entity"
	"parceltrack/internal/domain/service"

	"github.com/stretchr/testify/mock"
)

// MockQRCodeService is a mock of service.QRCodeService.
type MockQRCodeService struct {
	mock.Mock
}

func NewMockQRCodeService(t *testing.T) *MockQRCodeService {
	m := &MockQRCodeService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockQRCodeService) GenerateTrackingQR(trackingURL string) ([]byte, error) {
	args := m.Called(trackingURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]byte), args.Error(1)
}

// MockNotificationService is a mock of service.NotificationService.
type MockNotificationService struct {
	mock.Mock
}

func NewMockNotificationService(t *testing.T) *MockNotificationService {
	m := &MockNotificationService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockNotificationService) NotifyParcelCreated(ctx context.Context, parcel *entity.Parcel) error {
	args := m.Called(ctx, parcel)

	return args.Error(0)
}

func (m *MockNotificationService) NotifyStatusChanged(ctx context.Context, parcel *entity.Parcel, update *entity.StatusUpdate) error {
	args := m.Called(ctx, parcel, update)

	return args.Error(0)
}

// MockEventPublisher is a mock of service.EventPublisher.
type MockEventPublisher struct {
	mock.Mock
}

func NewMockEventPublisher(t *testing.T) *MockEventPublisher {
	m := &MockEventPublisher{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockEventPublisher) PublishStatusEvent(ctx context.Context, event *service.StatusEvent) error {
	args := m.Called(ctx, event)

	return args.Error(0)
}

func (m *MockEventPublisher) Close() error {
	args := m.Called()

	return args.Error(0)
}

// RecordingBroadcaster captures published events for assertion instead of
// fanning them out.
type RecordingBroadcaster struct {
	mu     sync.Mutex
	topics []string
	events []*service.StatusEvent
}

func NewRecordingBroadcaster() *RecordingBroadcaster {
	return &RecordingBroadcaster{}
}

func (b *RecordingBroadcaster) Join(_ string) service.TopicSubscription {
	return noopSubscription{}
}

func (b *RecordingBroadcaster) Publish(topic string, event *service.StatusEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.topics = append(b.topics, topic)
	b.events = append(b.events, event)
}

// Published returns the topics and events seen so far, in publish order.
func (b *RecordingBroadcaster) Published() ([]string, []*service.StatusEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()

	topics := make([]string, len(b.topics))
	copy(topics, b.topics)
	events := make([]*service.StatusEvent, len(b.events))
	copy(events, b.events)

	return topics, events
}

type noopSubscription struct{}

func (noopSubscription) Events() <-chan *service.StatusEvent { return nil }
func (noopSubscription) Close()                              {}
