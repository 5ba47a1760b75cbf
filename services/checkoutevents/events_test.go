package checkoutevents

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MarcGrol/storefront/lib/myerrors"
	"github.com/MarcGrol/storefront/lib/myevents"
)

type recordingService struct {
	placed []OrderPlaced
	failed []OrderFailed
}

func (s *recordingService) Subscribe(c context.Context) error {
	return nil
}

func (s *recordingService) OnOrderPlaced(c context.Context, topic string, event OrderPlaced) error {
	s.placed = append(s.placed, event)
	return nil
}

func (s *recordingService) OnOrderFailed(c context.Context, topic string, event OrderFailed) error {
	s.failed = append(s.failed, event)
	return nil
}

func pushRequest(t *testing.T, eventTypeName string, event any) string {
	payload, err := json.Marshal(event)
	assert.NoError(t, err)
	envelope, err := json.Marshal(myevents.EventEnvelope{
		UID:           "abc",
		Topic:         TopicName,
		AggregateUID:  "session-1",
		EventTypeName: eventTypeName,
		EventPayload:  string(payload),
	})
	assert.NoError(t, err)
	req, err := json.Marshal(myevents.PushRequest{
		Message: myevents.PushMessage{Data: envelope, ID: "1"},
	})
	assert.NoError(t, err)
	return string(req)
}

func TestDispatchEvent(t *testing.T) {
	c := context.TODO()

	t.Run("Order placed", func(t *testing.T) {
		// given
		service := &recordingService{}
		event := OrderPlaced{SessionUID: "session-1", OrderID: "42", ItemCount: 3, TotalAmount: "25"}

		// when
		err := DispatchEvent(c, strings.NewReader(pushRequest(t, event.GetEventTypeName(), event)), service)

		// then
		assert.NoError(t, err)
		assert.Equal(t, []OrderPlaced{event}, service.placed)
	})

	t.Run("Order failed", func(t *testing.T) {
		// given
		service := &recordingService{}
		event := OrderFailed{SessionUID: "session-1", Reason: "out of stock"}

		// when
		err := DispatchEvent(c, strings.NewReader(pushRequest(t, event.GetEventTypeName(), event)), service)

		// then
		assert.NoError(t, err)
		assert.Equal(t, []OrderFailed{event}, service.failed)
	})

	t.Run("Unknown event", func(t *testing.T) {
		// when
		err := DispatchEvent(c, strings.NewReader(pushRequest(t, "order.shipped", OrderFailed{})), &recordingService{})

		// then
		assert.Error(t, err)
		assert.Equal(t, http.StatusNotImplemented, myerrors.GetHTTPStatus(err))
	})

	t.Run("Garbage", func(t *testing.T) {
		// when
		err := DispatchEvent(c, strings.NewReader("{"), &recordingService{})

		// then
		assert.Equal(t, http.StatusBadRequest, myerrors.GetHTTPStatus(err))
	})
}
