package events

import (
	"testing"

	"github.com/borgmon/race-alarm/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBusFanOut(t *testing.T) {
	b := NewBus()
	s1 := b.Subscribe()
	s2 := b.Subscribe()
	require.NotEqual(t, s1.ID, s2.ID)
	assert.Equal(t, 2, b.SubscriberCount())

	b.Publish(Dismissal{RaceID: "14:00-Ascot"})

	assert.Equal(t, Dismissal{RaceID: "14:00-Ascot"}, <-s1.C())
	assert.Equal(t, Dismissal{RaceID: "14:00-Ascot"}, <-s2.C())
}

func TestBusCloseStopsDelivery(t *testing.T) {
	b := NewBus()
	s := b.Subscribe()
	s.Close()
	s.Close()
	assert.Zero(t, b.SubscriberCount())

	b.Publish(Dismissal{RaceID: "14:00-Ascot"})
	_, ok := <-s.C()
	assert.False(t, ok)
}

func TestBusDropsWhenSubscriberIsFull(t *testing.T) {
	b := NewBus()
	s := b.Subscribe()
	for i := 0; i < subBufferSize+5; i++ {
		b.Publish(Dismissal{RaceID: models.RaceID("x")})
	}
	assert.Len(t, s.C(), subBufferSize)
}

func TestBusPublishWithoutSubscribers(t *testing.T) {
	assert.NotPanics(t, func() {
		NewBus().Publish(Dismissal{RaceID: "14:00-Ascot"})
	})
}
