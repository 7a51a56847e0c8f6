package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/prem2230/food-delivery-app-client/models"
)

// RestaurantFilter narrows a restaurant listing. Zero values mean no
// filtering.
type RestaurantFilter struct {
	Cuisine string
	Search  string
}

// ListRestaurants returns the restaurant catalog. Works anonymously.
func (c *Client) ListRestaurants(ctx context.Context, filter *RestaurantFilter) ([]models.Restaurant, error) {
	query := url.Values{}
	if filter != nil {
		if filter.Cuisine != "" {
			query.Set("cuisine", filter.Cuisine)
		}
		if filter.Search != "" {
			query.Set("search", filter.Search)
		}
	}
	var resp struct {
		Restaurants []models.Restaurant `json:"restaurants"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/v1/restaurants", query, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Restaurants, nil
}

// GetRestaurant returns a single restaurant by id.
func (c *Client) GetRestaurant(ctx context.Context, id string) (*models.Restaurant, error) {
	var resp struct {
		Restaurant models.Restaurant `json:"restaurant"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/v1/restaurants/"+url.PathEscape(id), nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Restaurant, nil
}

// ListMenuItems returns a restaurant's menu, optionally filtered by
// category. Works anonymously.
func (c *Client) ListMenuItems(ctx context.Context, restaurantID, category string) ([]models.MenuItem, error) {
	query := url.Values{}
	if category != "" {
		query.Set("category", category)
	}
	var resp struct {
		FoodItems []models.MenuItem `json:"foodItems"`
	}
	path := "/api/v1/fooditem/restaurant/" + url.PathEscape(restaurantID)
	if err := c.do(ctx, http.MethodGet, path, query, nil, &resp); err != nil {
		return nil, err
	}
	return resp.FoodItems, nil
}
