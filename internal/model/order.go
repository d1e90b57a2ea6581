package model

import "encoding/json"

// OrderStatusPending is the status sent with every new order.
const OrderStatusPending = "pending"

// OrderRequest is the payload posted to the backend to create an order.
type OrderRequest struct {
	Items  []OrderItemRequest `json:"items"`
	Total  float64            `json:"total"`
	Status string             `json:"status"`
}

// OrderItemRequest represents a single item in an order request.
type OrderItemRequest struct {
	ProductID string  `json:"product"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// OrderResponse is the backend's answer to an order creation.
// Backends answer either {"id": ...} or {"success": true, "order_id": ...}.
type OrderResponse struct {
	ID          ID     `json:"id"`
	Success     bool   `json:"success"`
	WhatsAppURL string `json:"whatsapp_url,omitempty"`
	Message     string `json:"message,omitempty"`
}

// UnmarshalJSON normalizes the order id from either shape.
func (r *OrderResponse) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID          ID     `json:"id"`
		OrderID     ID     `json:"order_id"`
		Success     *bool  `json:"success"`
		WhatsAppURL string `json:"whatsapp_url"`
		Message     string `json:"message"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	r.ID = raw.ID
	if r.ID == "" {
		r.ID = raw.OrderID
	}
	r.Success = r.ID != ""
	if raw.Success != nil {
		r.Success = *raw.Success
	}
	r.WhatsAppURL = raw.WhatsAppURL
	r.Message = raw.Message

	return nil
}
