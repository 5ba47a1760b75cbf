package orderapi

import (
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/MarcGrol/storefront/services/cart"
)

type OrderLine struct {
	ProductID cart.ProductID
	Quantity  int
	UnitPrice decimal.Decimal
}

// OrderRequest lists the lines in cart order.
type OrderRequest struct {
	Lines []OrderLine
}

// OrderConfirmation is what the order endpoint returns on success. OrderID may be empty.
type OrderConfirmation struct {
	OrderID string
}

func NewOrderRequest(snapshot cart.Snapshot) OrderRequest {
	lines := make([]OrderLine, 0, len(snapshot))
	for _, li := range snapshot {
		lines = append(lines, OrderLine{
			ProductID: li.ProductID,
			Quantity:  li.Quantity,
			UnitPrice: li.UnitPrice,
		})
	}
	return OrderRequest{
		Lines: lines,
	}
}

func (r OrderRequest) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range r.Lines {
		total = total.Add(l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	return total
}

func (r OrderRequest) ItemCount() int {
	count := 0
	for _, l := range r.Lines {
		count += l.Quantity
	}
	return count
}

// wire format of the order endpoint

type orderItemDTO struct {
	ProductID int64
	Quantity  int
	Price     json.Number
}

type orderRequestDTO struct {
	Items []orderItemDTO `json:"items"`
}

type orderResponseDTO struct {
	ID      json.RawMessage
	OrderID json.RawMessage
}

type errorResponseDTO struct {
	Error string `json:"error"`
}

func toDTO(req OrderRequest) orderRequestDTO {
	items := make([]orderItemDTO, 0, len(req.Lines))
	for _, l := range req.Lines {
		items = append(items, orderItemDTO{
			ProductID: int64(l.ProductID),
			Quantity:  l.Quantity,
			Price:     json.Number(l.UnitPrice.String()),
		})
	}
	return orderRequestDTO{
		Items: items,
	}
}
