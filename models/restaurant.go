package models

type Restaurant struct {
	ID           string  `json:"_id"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	Address      string  `json:"address"`
	Cuisine      string  `json:"cuisine"`
	Rating       float64 `json:"rating"`
	DeliveryTime string  `json:"deliveryTime"`
	DeliveryFee  float64 `json:"deliveryFee"`
	Image        string  `json:"image,omitempty"`
	IsActive     bool    `json:"isActive"`
}

type MenuItem struct {
	ID           string  `json:"_id"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	Price        float64 `json:"price"`
	Category     string  `json:"category"`
	Image        string  `json:"image,omitempty"`
	IsAvailable  bool    `json:"isAvailable"`
	RestaurantID string  `json:"restaurantId"`
}

// CartItem is a menu item selected into the basket. Quantity is always
// at least 1; an item dropping to 0 is removed from the cart instead.
type CartItem struct {
	MenuItem
	Quantity int `json:"quantity"`
}
