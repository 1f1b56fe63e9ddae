package handler

import (
	"github.com/shopspring/decimal"

	"github.com/xenking/shopcart/internal/domain/cart"
	"github.com/xenking/shopcart/internal/domain/order"
)

// Wire representations. Prices travel as JSON numbers; domain code keeps
// them as decimals.

type itemDTO struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

type orderDTO struct {
	OrderID         string    `json:"orderId"`
	UserID          string    `json:"userId"`
	Items           []itemDTO `json:"items"`
	TotalAmount     float64   `json:"totalAmount"`
	DiscountApplied bool      `json:"discountApplied"`
	DiscountCode    string    `json:"discountCode,omitempty"`
	NewDiscountCode string    `json:"newDiscountCode,omitempty"`
}

func toItemDTO(it cart.Item) itemDTO {
	return itemDTO{
		ProductID: it.ProductID,
		Name:      it.Name,
		Price:     it.Price.InexactFloat64(),
		Quantity:  it.Quantity,
	}
}

func toItemDTOs(items []cart.Item) []itemDTO {
	out := make([]itemDTO, len(items))
	for i, it := range items {
		out[i] = toItemDTO(it)
	}
	return out
}

func (d itemDTO) toDomain() cart.Item {
	return cart.Item{
		ProductID: d.ProductID,
		Name:      d.Name,
		Price:     decimal.NewFromFloat(d.Price),
		Quantity:  d.Quantity,
	}
}

func toOrderDTO(o *order.Order) orderDTO {
	return orderDTO{
		OrderID:         o.OrderID,
		UserID:          o.UserID,
		Items:           toItemDTOs(o.Items),
		TotalAmount:     o.TotalAmount.InexactFloat64(),
		DiscountApplied: o.DiscountApplied,
		DiscountCode:    o.DiscountCode,
		NewDiscountCode: o.NewDiscountCode,
	}
}

func toOrderDTOs(orders []order.Order) []orderDTO {
	out := make([]orderDTO, len(orders))
	for i := range orders {
		out[i] = toOrderDTO(&orders[i])
	}
	return out
}
