package broadcast

import (
	"sync"
	"testing"
	"time"

	"parceltrack/internal/domain/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_PublishReachesJoinedSubscribers(t *testing.T) {
	hub := NewHub(nil)

	subA := hub.Join("PCL20250630000001")
	subB := hub.Join("PCL20250630000001")
	other := hub.Join("PCL20250630000002")
	defer subA.Close()
	defer subB.Close()
	defer other.Close()

	event := &service.StatusEvent{TrackingCode: "PCL20250630000001", Status: "IN_TRANSIT"}
	hub.Publish("PCL20250630000001", event)

	assert.Equal(t, event, <-subA.Events())
	assert.Equal(t, event, <-subB.Events())

	select {
	case unexpected := <-other.Events():
		t.Fatalf("subscriber of another topic received %v", unexpected)
	default:
	}
}

func TestHub_LateJoinerMissesPastEvents(t *testing.T) {
	hub := NewHub(nil)

	hub.Publish("PCL20250630000001", &service.StatusEvent{Status: "PENDING"})

	sub := hub.Join("PCL20250630000001")
	defer sub.Close()

	select {
	case unexpected := <-sub.Events():
		t.Fatalf("late joiner received past event %v", unexpected)
	default:
	}

	event := &service.StatusEvent{Status: "ASSIGNED"}
	hub.Publish("PCL20250630000001", event)
	assert.Equal(t, event, <-sub.Events())
}

func TestHub_SlowSubscriberDoesNotBlockPublish(t *testing.T) {
	hub := NewHub(nil)

	sub := hub.Join("PCL20250630000001")
	defer sub.Close()

	done := make(chan struct{})
	go func() {
		defer close(done)
		// Exceed the subscriber buffer without draining it.
		for range subscriberBufferSize * 2 {
			hub.Publish("PCL20250630000001", &service.StatusEvent{Status: "IN_TRANSIT"})
		}
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("publish blocked on a slow subscriber")
	}
}

func TestHub_CloseIsIdempotentAndLeavesTopic(t *testing.T) {
	hub := NewHub(nil)

	sub := hub.Join("PCL20250630000001")
	sub.Close()
	sub.Close()

	_, open := <-sub.Events()
	assert.False(t, open)

	// Publishing to an empty topic must not panic.
	hub.Publish("PCL20250630000001", &service.StatusEvent{Status: "DELIVERED"})
}

func TestHub_ConcurrentJoinPublishClose(t *testing.T) {
	hub := NewHub(nil)

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(2)

		go func() {
			defer wg.Done()
			sub := hub.Join("PCL20250630000001")
			for range 4 {
				select {
				case <-sub.Events():
				case <-time.After(10 * time.Millisecond):
				}
			}
			sub.Close()
		}()

		go func() {
			defer wg.Done()
			for range 16 {
				hub.Publish("PCL20250630000001", &service.StatusEvent{Status: "IN_TRANSIT"})
			}
		}()
	}

	finished := make(chan struct{})
	go func() {
		wg.Wait()
		close(finished)
	}()

	select {
	case <-finished:
	case <-time.After(5 * time.Second):
		t.Fatal("concurrent broadcast deadlocked")
	}

	require.NotPanics(t, func() {
		hub.Publish("PCL20250630000001", &service.StatusEvent{Status: "DELIVERED"})
	})
}
