package models

// CartLineItem is one dish entry in a cart. DishName, Price and ImagePath
// are denormalized display copies; the dish record stays authoritative.
type CartLineItem struct {
	DishID    string  `json:"dish_id"`
	DishName  string  `json:"dish_name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	ImagePath string  `json:"image_path"`
}

// CartCandidate is the loosely shaped add-to-cart payload. Clients send
// either id or dish_id, and either name or dish_name; quantity and price
// arrive as numbers or strings.
type CartCandidate struct {
	ID        string    `json:"id"`
	DishID    string    `json:"dish_id"`
	Name      string    `json:"name"`
	DishName  string    `json:"dish_name"`
	Price     FlexFloat `json:"price"`
	Quantity  FlexInt   `json:"quantity"`
	ImagePath string    `json:"image_path"`
	Replace   bool      `json:"replace"`
	Remove    bool      `json:"remove"`
}

type CartView struct {
	Items      []CartLineItem `json:"items"`
	TotalItems int            `json:"total_items"`
	TotalPrice float64        `json:"total_price"`
}

type UpdateQuantityRequest struct {
	Quantity FlexInt `json:"quantity"`
}

type CheckoutRequest struct {
	Note string `json:"note"`
}
