package models

// CategoryBreakdown is the derived category → subcategory view served by
// GET /catalog/categories. It is computed from products on demand and
// cached; nothing here is stored.
type CategoryBreakdown struct {
	Category      string   `json:"category"`
	State         string   `json:"state"`
	SubCategories []string `json:"sub_categories"`
	Products      int      `json:"products"`
}
