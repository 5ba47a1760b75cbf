package checkoutevents

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/MarcGrol/storefront/lib/myerrors"
	"github.com/MarcGrol/storefront/lib/myevents"
)

const (
	TopicName       = "order"
	orderPlacedName = TopicName + ".placed"
	orderFailedName = TopicName + ".failed"
)

type OrderEventService interface {
	Subscribe(c context.Context) error
	OnOrderPlaced(c context.Context, topic string, event OrderPlaced) error
	OnOrderFailed(c context.Context, topic string, event OrderFailed) error
}

func DispatchEvent(c context.Context, reader io.Reader, service OrderEventService) error {
	envelope, err := myevents.ParseEventEnvelope(reader)
	if err != nil {
		return myerrors.NewInvalidInputError(err)
	}

	switch envelope.EventTypeName {
	case orderPlacedName:
		event := OrderPlaced{}
		err := json.Unmarshal([]byte(envelope.EventPayload), &event)
		if err != nil {
			return myerrors.NewInvalidInputError(err)
		}
		return service.OnOrderPlaced(c, envelope.Topic, event)
	case orderFailedName:
		event := OrderFailed{}
		err := json.Unmarshal([]byte(envelope.EventPayload), &event)
		if err != nil {
			return myerrors.NewInvalidInputError(err)
		}
		return service.OnOrderFailed(c, envelope.Topic, event)
	default:
		return myerrors.NewNotImplementedError(fmt.Errorf("unknown event type %q", envelope.EventTypeName))
	}
}

type OrderPlaced struct {
	SessionUID  string
	CheckoutUID string
	OrderID     string
	ItemCount   int
	TotalAmount string
}

func (e OrderPlaced) GetEventTypeName() string {
	return orderPlacedName
}

func (e OrderPlaced) GetAggregateName() string {
	return e.SessionUID
}

type OrderFailed struct {
	SessionUID  string
	CheckoutUID string
	Reason      string
}

func (e OrderFailed) GetEventTypeName() string {
	return orderFailedName
}

func (e OrderFailed) GetAggregateName() string {
	return e.SessionUID
}
