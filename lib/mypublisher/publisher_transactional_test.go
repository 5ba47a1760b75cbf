package mypublisher

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/MarcGrol/storefront/lib/myevents"
	"github.com/MarcGrol/storefront/lib/mypubsub"
	"github.com/MarcGrol/storefront/lib/myqueue"
	"github.com/MarcGrol/storefront/lib/mystore"
	"github.com/MarcGrol/storefront/lib/mytime"
)

type somethingHappened struct {
	SessionUID string
	Amount     string
}

func (e somethingHappened) GetEventTypeName() string {
	return "order.somethingHappened"
}

func (e somethingHappened) GetAggregateName() string {
	return e.SessionUID
}

func setup(t *testing.T, ctrl *gomock.Controller) (context.Context, *mux.Router, *mystore.InMemoryStore[myevents.EventEnvelope], *mypubsub.MockPubSub, *myqueue.MockTaskQueuer, *transactionalPublisher) {
	c := context.TODO()
	outbox, _, err := mystore.NewInMemoryStore[myevents.EventEnvelope](c)
	assert.NoError(t, err)

	pubsub := mypubsub.NewMockPubSub(ctrl)
	queue := myqueue.NewMockTaskQueuer(ctrl)
	nower := mytime.NewMockNower(ctrl)
	nower.EXPECT().Now().Return(mytime.ExampleTime).AnyTimes()

	publisher := newTransactionalPublisher(outbox, pubsub, queue, nower)
	router := mux.NewRouter()
	publisher.RegisterEndpoints(c, router)

	return c, router, outbox, pubsub, queue, publisher
}

func TestTransactionalPublisher(t *testing.T) {
	event := somethingHappened{SessionUID: "session-1", Amount: "12.50"}

	t.Run("Publish stores envelope and enqueues trigger", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// given
		c, _, outbox, _, queue, publisher := setup(t, ctrl)
		var queued myqueue.Task
		queue.EXPECT().Enqueue(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, task myqueue.Task) error {
			queued = task
			return nil
		})

		// when
		err := publisher.Publish(c, "order", event)

		// then
		assert.NoError(t, err)
		envelopes, err := outbox.List(c)
		assert.NoError(t, err)
		assert.Len(t, envelopes, 1)
		assert.Equal(t, "order", envelopes[0].Topic)
		assert.Equal(t, "session-1", envelopes[0].AggregateUID)
		assert.Equal(t, "order.somethingHappened", envelopes[0].EventTypeName)
		assert.Equal(t, mytime.ExampleTime, envelopes[0].CreatedAt)
		assert.False(t, envelopes[0].Published)
		assert.Equal(t, "/pubsub/order/"+envelopes[0].UID, queued.WebhookURLPath)
	})

	t.Run("Same event yields same uid", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// given
		c, _, outbox, _, queue, publisher := setup(t, ctrl)
		queue.EXPECT().Enqueue(gomock.Any(), gomock.Any()).Return(nil).Times(2)

		// when
		assert.NoError(t, publisher.Publish(c, "order", event))
		assert.NoError(t, publisher.Publish(c, "order", event))

		// then
		envelopes, err := outbox.List(c)
		assert.NoError(t, err)
		assert.Len(t, envelopes, 1)
	})

	t.Run("Trigger publishes pending envelopes", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// given
		c, router, outbox, pubsub, queue, publisher := setup(t, ctrl)
		queue.EXPECT().Enqueue(gomock.Any(), gomock.Any()).Return(nil)
		assert.NoError(t, publisher.Publish(c, "order", event))
		var published string
		pubsub.EXPECT().Publish(gomock.Any(), "order", gomock.Any()).DoAndReturn(func(_ context.Context, _ string, data string) error {
			published = data
			return nil
		})

		// when
		request, err := http.NewRequest(http.MethodPut, "/pubsub/order/abc", nil)
		assert.NoError(t, err)
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, http.StatusOK, response.Code)
		envelope := myevents.EventEnvelope{}
		assert.NoError(t, json.Unmarshal([]byte(published), &envelope))
		assert.JSONEq(t, `{"SessionUID":"session-1","Amount":"12.50"}`, envelope.EventPayload)

		envelopes, err := outbox.List(c)
		assert.NoError(t, err)
		assert.Len(t, envelopes, 1)
		assert.True(t, envelopes[0].Published)
	})

	t.Run("Trigger skips already published envelopes", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// given
		c, router, outbox, _, _, _ := setup(t, ctrl)
		assert.NoError(t, outbox.Put(c, "done", myevents.EventEnvelope{UID: "done", Topic: "order", Published: true}))

		// when
		request, err := http.NewRequest(http.MethodPut, "/pubsub/order/done", nil)
		assert.NoError(t, err)
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, http.StatusOK, response.Code)
	})
}
