package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/platform-admin-api/internal/dto"
)

func TestActivityStreamFanOut(t *testing.T) {
	stream := NewActivityStream(nil, "", testLogger())

	records, cancel := stream.Subscribe()
	defer cancel()

	stream.Publish(dto.ActivityResponse{ID: 1, ActivityType: "payment", Title: "New Payment"})

	select {
	case record := <-records:
		require.Equal(t, uint(1), record.ID)
		require.Equal(t, "payment", record.ActivityType)
	case <-time.After(time.Second):
		t.Fatal("expected record on subscriber channel")
	}
}

func TestActivityStreamCancelClosesChannel(t *testing.T) {
	stream := NewActivityStream(nil, "", testLogger())

	records, cancel := stream.Subscribe()
	cancel()

	_, open := <-records
	require.False(t, open)

	// Publishing after cancel must not panic or block.
	stream.Publish(dto.ActivityResponse{ID: 2})
}

func TestActivityStreamSlowConsumerDoesNotBlockPublish(t *testing.T) {
	stream := NewActivityStream(nil, "", testLogger())

	_, cancel := stream.Subscribe()
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < activityStreamBuffer*2; i++ {
			stream.Publish(dto.ActivityResponse{ID: uint(i)})
		}
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publish blocked on a slow consumer")
	}
}
