package repository

import (
	"encoding/json"

	"github.com/Theo-jobs/family-ordering-system/models"
)

// storedLineItem is the wire form of a cart snapshot entry. Quantity and
// price stay flexible because old snapshots carry them as strings.
type storedLineItem struct {
	DishID    string           `json:"dish_id"`
	DishName  string           `json:"dish_name"`
	Price     models.FlexFloat `json:"price"`
	Quantity  models.FlexInt   `json:"quantity"`
	ImagePath string           `json:"image_path"`
}

// encodeCart serializes a snapshot, forcing every quantity to a positive
// integer (default 1) before it reaches durable storage.
func encodeCart(items []models.CartLineItem) ([]byte, error) {
	out := make([]models.CartLineItem, len(items))
	for i, it := range items {
		if it.Quantity < 1 {
			it.Quantity = 1
		}
		out[i] = it
	}
	return json.Marshal(out)
}

// decodeCart parses a stored snapshot, coercing each quantity to an
// integer (default 1) and each price to a float (default 0).
func decodeCart(raw []byte) ([]models.CartLineItem, error) {
	var stored []storedLineItem
	if err := json.Unmarshal(raw, &stored); err != nil {
		return nil, err
	}

	items := make([]models.CartLineItem, 0, len(stored))
	for _, s := range stored {
		items = append(items, models.CartLineItem{
			DishID:    s.DishID,
			DishName:  s.DishName,
			Price:     s.Price.FloatOr(0),
			Quantity:  s.Quantity.IntOr(1),
			ImagePath: s.ImagePath,
		})
	}
	return items, nil
}
