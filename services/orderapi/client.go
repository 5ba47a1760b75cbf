package orderapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/MarcGrol/storefront/lib/myerrors"
	"github.com/MarcGrol/storefront/lib/myhttpclient"
	"github.com/MarcGrol/storefront/lib/mylog"
)

// Client submits orders to the remote order endpoint.
type Client struct {
	sender  myhttpclient.HTTPSender
	baseURL string
	logger  mylog.Logger
}

func NewClient(sender myhttpclient.HTTPSender, baseURL string) *Client {
	return &Client{
		sender:  sender,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		logger:  mylog.New("orderapi"),
	}
}

// SubmitOrder sends the order exactly once. Any error carries the http status of the failure.
func (c *Client) SubmitOrder(ctx context.Context, accessToken string, req OrderRequest) (OrderConfirmation, error) {
	body, err := json.Marshal(toDTO(req))
	if err != nil {
		return OrderConfirmation{}, myerrors.NewInternalError(fmt.Errorf("error marshalling order request: %s", err))
	}

	httpStatus, respBody, err := c.sender.Send(ctx, http.MethodPost, c.baseURL+"/orders", accessToken, body)
	if err != nil {
		return OrderConfirmation{}, myerrors.NewUnavailableError(fmt.Errorf("order service unreachable: %s", err))
	}

	if httpStatus < 200 || httpStatus >= 300 {
		return OrderConfirmation{}, myerrors.FromHTTPStatus(httpStatus, fmt.Errorf("order rejected: %s", errorMessage(httpStatus, respBody)))
	}

	return parseConfirmation(respBody), nil
}

func errorMessage(httpStatus int, body []byte) string {
	errResp := errorResponseDTO{}
	err := json.Unmarshal(body, &errResp)
	if err == nil && errResp.Error != "" {
		return errResp.Error
	}

	text := strings.TrimSpace(string(body))
	if text != "" && len(text) <= 200 {
		return text
	}
	return fmt.Sprintf("http status %d", httpStatus)
}

// parseConfirmation accepts any body: the order endpoint is not obliged to return an id.
func parseConfirmation(body []byte) OrderConfirmation {
	resp := orderResponseDTO{}
	err := json.Unmarshal(body, &resp)
	if err != nil {
		return OrderConfirmation{}
	}

	orderID := rawToString(resp.OrderID)
	if orderID == "" {
		orderID = rawToString(resp.ID)
	}
	return OrderConfirmation{OrderID: orderID}
}

func rawToString(raw json.RawMessage) string {
	s := strings.TrimSpace(string(raw))
	if s == "null" {
		return ""
	}
	unquoted, err := strconv.Unquote(s)
	if err == nil {
		return unquoted
	}
	return s
}
