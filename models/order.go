package models

const (
	OrderStatusPending   = "pending"
	OrderStatusCooking   = "cooking"
	OrderStatusReady     = "ready"
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"
)

// ValidOrderStatus reports whether s is one of the known order states.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusCooking, OrderStatusReady,
		OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// OrderItem is a line of a placed order. Name, price and total are
// denormalized at submission time; later dish edits do not rewrite history.
type OrderItem struct {
	DishID    string  `json:"dish_id"`
	DishName  string  `json:"dish_name"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
	Total     float64 `json:"total"`
	ImagePath string  `json:"image_path"`
}

type Order struct {
	ID         string      `json:"id"`
	Items      []OrderItem `json:"items"`
	TotalPrice float64     `json:"total_price"`
	Status     string      `json:"status"`
	Timestamp  string      `json:"timestamp"`
	UpdatedAt  string      `json:"updated_at,omitempty"`
	Note       string      `json:"note"`
}

type OrderItemRequest struct {
	DishID   string  `json:"dish_id"`
	Quantity FlexInt `json:"quantity"`
}

type CreateOrderRequest struct {
	Items []OrderItemRequest `json:"items"`
	Note  string             `json:"note"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}
