package shop

import (
	"context"
	"fmt"
	"net/http"

	"github.com/MarcGrol/storefront/lib/mycontext"
	"github.com/MarcGrol/storefront/lib/myhttp"
	"github.com/MarcGrol/storefront/lib/mylog"
	"github.com/MarcGrol/storefront/services/checkoutevents"
)

func (s *webService) Subscribe(c context.Context) error {
	err := s.publisher.CreateTopic(c, checkoutevents.TopicName)
	if err != nil {
		return fmt.Errorf("error creating topic %s: %s", checkoutevents.TopicName, err)
	}

	err = s.subscriber.Subscribe(c, checkoutevents.TopicName, s.publicURL+"/checkout/event")
	if err != nil {
		return fmt.Errorf("error subscribing to topic %s: %s", checkoutevents.TopicName, err)
	}

	return nil
}

func (s *webService) handleEventEnvelope() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		err := checkoutevents.DispatchEvent(c, r.Body, s)
		if err != nil {
			errorWriter.WriteError(c, w, 4, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, myhttp.SuccessResponse{
			Message: "Successfully processed event",
		})
	}
}

func (s *webService) OnOrderPlaced(c context.Context, topic string, event checkoutevents.OrderPlaced) error {
	s.logger.Log(c, event.SessionUID, mylog.SeverityInfo, "Order %q placed: %d items, total %s", event.OrderID, event.ItemCount, event.TotalAmount)

	return nil
}

func (s *webService) OnOrderFailed(c context.Context, topic string, event checkoutevents.OrderFailed) error {
	s.logger.Log(c, event.SessionUID, mylog.SeverityWarn, "Order of checkout %s failed: %s", event.CheckoutUID, event.Reason)

	return nil
}
