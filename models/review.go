package models

type Review struct {
	ID         string   `json:"id"`
	DishID     string   `json:"dish_id"`
	Rating     int      `json:"rating"`
	Comment    string   `json:"comment"`
	ImagePaths []string `json:"image_paths"`
	UserName   string   `json:"user_name"`
	Timestamp  string   `json:"timestamp"`
	UpdatedAt  string   `json:"updated_at,omitempty"`
}

type CreateReviewRequest struct {
	DishID     string   `json:"dish_id"`
	Rating     FlexInt  `json:"rating"`
	Comment    string   `json:"comment"`
	ImagePaths []string `json:"image_paths"`
	UserName   string   `json:"user_name"`
}

// UpdateReviewRequest carries a partial review update. The review id and
// dish id are never updatable; new image paths are appended, not replaced.
type UpdateReviewRequest struct {
	Rating     *FlexInt `json:"rating"`
	Comment    *string  `json:"comment"`
	UserName   *string  `json:"user_name"`
	ImagePaths []string `json:"image_paths"`
}
