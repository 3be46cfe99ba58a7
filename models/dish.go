package models

type Dish struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	Price       float64  `json:"price"`
	Description string   `json:"description"`
	Ingredients []string `json:"ingredients"`
	Steps       []string `json:"steps"`
	ImagePath   string   `json:"image_path"`
	Timestamp   string   `json:"timestamp"`
}

// DishWithRating decorates a dish with review-derived fields for list and
// detail responses. AvgRating is nil when the dish has no reviews yet.
type DishWithRating struct {
	Dish
	AvgRating    *float64 `json:"avg_rating"`
	LatestReview *string  `json:"latest_review"`
	Reviews      []Review `json:"reviews,omitempty"`
}

type CreateDishRequest struct {
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Price       FlexFloat `json:"price"`
	Description string    `json:"description"`
	Ingredients []string  `json:"ingredients"`
	Steps       []string  `json:"steps"`
	ImagePath   string    `json:"image_path"`
}

// UpdateDishRequest carries a partial dish update; nil fields are left
// untouched. The dish id itself is never updatable.
type UpdateDishRequest struct {
	Name        *string    `json:"name"`
	Category    *string    `json:"category"`
	Price       *FlexFloat `json:"price"`
	Description *string    `json:"description"`
	Ingredients *[]string  `json:"ingredients"`
	Steps       *[]string  `json:"steps"`
	ImagePath   *string    `json:"image_path"`
}
