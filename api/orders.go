package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/prem2230/food-delivery-app-client/models"
)

type OrderItemRequest struct {
	FoodItemID string  `json:"foodItemId"`
	Quantity   int     `json:"quantity"`
	Price      float64 `json:"price"`
}

type PlaceOrderRequest struct {
	Items           []OrderItemRequest `json:"items"`
	TotalAmount     float64            `json:"totalAmount"`
	DeliveryAddress string             `json:"deliveryAddress"`
}

// PlaceOrder creates a new order for the authenticated customer.
func (c *Client) PlaceOrder(ctx context.Context, req PlaceOrderRequest) (*models.Order, error) {
	var resp struct {
		Order models.Order `json:"order"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/v1/orders", nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp.Order, nil
}

// ListMyOrders returns the authenticated customer's orders, newest
// first.
func (c *Client) ListMyOrders(ctx context.Context) ([]models.Order, error) {
	var resp struct {
		Orders []models.Order `json:"orders"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/v1/orders/my-orders", nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Orders, nil
}

// CancelOrder cancels an order. The backend only allows this while the
// order is still pending.
func (c *Client) CancelOrder(ctx context.Context, orderID string) (*models.Order, error) {
	var resp struct {
		Order models.Order `json:"order"`
	}
	path := "/api/v1/orders/" + url.PathEscape(orderID) + "/cancel"
	if err := c.do(ctx, http.MethodPut, path, nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Order, nil
}
