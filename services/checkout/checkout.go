package checkout

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/MarcGrol/storefront/lib/myevents"
	"github.com/MarcGrol/storefront/lib/mylog"
	"github.com/MarcGrol/storefront/services/cart"
	"github.com/MarcGrol/storefront/services/checkoutevents"
	"github.com/MarcGrol/storefront/services/orderapi"
)

// Checkout turns the cart of one session into an order.
type Checkout struct {
	mu         sync.Mutex
	status     Status
	sessionUID string
	cart       *cart.Cart
	auth       Authenticator
	service    *Service
}

// Result is the single outcome of one checkout attempt.
type Result struct {
	Status       Status
	Confirmation orderapi.OrderConfirmation
	Err          error
}

// Enter is called whenever the checkout view is (re-)entered.
// A submission in flight keeps its status until it completes.
func (co *Checkout) Enter() {
	co.mu.Lock()
	defer co.mu.Unlock()

	if co.status.State == StateSubmitting {
		return
	}
	co.status = Status{State: StateIdle}
}

func (co *Checkout) Status() Status {
	co.mu.Lock()
	defer co.mu.Unlock()

	return co.status
}

// Checkout submits the cart and waits for the outcome.
func (co *Checkout) Checkout(c context.Context) Result {
	return <-co.Start(c)
}

// Start submits the cart in the background. The returned channel yields exactly one Result.
// Without credentials nothing is sent and the Result carries ErrNotAuthenticated.
func (co *Checkout) Start(c context.Context) <-chan Result {
	resultChannel := make(chan Result, 1)

	token := ""
	if co.auth.IsAuthenticated(c) {
		token = co.auth.Token(c)
	}
	if token == "" {
		co.service.metrics.observe(outcomeNotAuthenticated, 0)
		co.service.logger.Log(c, co.sessionUID, mylog.SeverityInfo, "Checkout refused: not authenticated")
		resultChannel <- Result{Status: co.Status(), Err: ErrNotAuthenticated}
		close(resultChannel)
		return resultChannel
	}

	co.mu.Lock()
	if co.status.State == StateSubmitting {
		status := co.status
		co.mu.Unlock()
		resultChannel <- Result{Status: status, Err: ErrSubmissionInProgress}
		close(resultChannel)
		return resultChannel
	}
	co.status = Status{State: StateSubmitting}
	co.mu.Unlock()

	// What is submitted is fixed here: later cart changes do not affect this order.
	req := orderapi.NewOrderRequest(co.cart.Snapshot())
	checkoutUID := co.service.uuider.Create()

	co.service.logger.Log(c, co.sessionUID, mylog.SeverityInfo, "Checkout %s started with %d items", checkoutUID, req.ItemCount())

	go func() {
		defer close(resultChannel)
		resultChannel <- co.submit(c, checkoutUID, token, req)
	}()

	return resultChannel
}

func (co *Checkout) submit(c context.Context, checkoutUID string, token string, req orderapi.OrderRequest) Result {
	started := time.Now()

	confirmation, err := co.callSubmit(c, token, req)
	if err != nil {
		return co.fail(c, checkoutUID, err, started)
	}

	return co.succeed(c, checkoutUID, req, confirmation, started)
}

// callSubmit turns a panicking order submitter into a failed submission.
func (co *Checkout) callSubmit(c context.Context, token string, req orderapi.OrderRequest) (confirmation orderapi.OrderConfirmation, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic during submission: %v", r)
		}
	}()

	return co.service.orders.SubmitOrder(c, token, req)
}

func (co *Checkout) succeed(c context.Context, checkoutUID string, req orderapi.OrderRequest, confirmation orderapi.OrderConfirmation, started time.Time) Result {
	status := Status{State: StateSucceeded}

	co.mu.Lock()
	co.cart.Clear()
	co.status = status
	co.mu.Unlock()

	co.service.metrics.observe(outcomeSucceeded, time.Since(started).Seconds())
	co.service.logger.Log(c, co.sessionUID, mylog.SeverityInfo, "Checkout %s succeeded (order-id: %q)", checkoutUID, confirmation.OrderID)

	co.publish(c, checkoutevents.OrderPlaced{
		SessionUID:  co.sessionUID,
		CheckoutUID: checkoutUID,
		OrderID:     confirmation.OrderID,
		ItemCount:   req.ItemCount(),
		TotalAmount: req.Total().StringFixed(2),
	})

	return Result{
		Status:       status,
		Confirmation: confirmation,
	}
}

func (co *Checkout) fail(c context.Context, checkoutUID string, cause error, started time.Time) Result {
	reason := cause.Error()
	status := Status{State: StateFailed, Reason: reason}

	co.mu.Lock()
	co.status = status
	co.mu.Unlock()

	co.service.metrics.observe(outcomeFailed, time.Since(started).Seconds())
	co.service.logger.Log(c, co.sessionUID, mylog.SeverityWarn, "Checkout %s failed: %s", checkoutUID, reason)

	co.publish(c, checkoutevents.OrderFailed{
		SessionUID:  co.sessionUID,
		CheckoutUID: checkoutUID,
		Reason:      reason,
	})

	return Result{
		Status: status,
		Err:    &SubmissionError{Reason: reason, Err: cause},
	}
}

// publish never changes the outcome of a checkout.
func (co *Checkout) publish(c context.Context, event myevents.Event) {
	defer func() {
		if r := recover(); r != nil {
			co.service.logger.Log(c, co.sessionUID, mylog.SeverityError, "Panic publishing %s: %v", event.GetEventTypeName(), r)
		}
	}()

	err := co.service.publisher.Publish(c, checkoutevents.TopicName, event)
	if err != nil {
		co.service.logger.Log(c, co.sessionUID, mylog.SeverityError, "Error publishing %s: %s", event.GetEventTypeName(), err)
	}
}
