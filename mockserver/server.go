// Package mockserver is an in-memory development backend implementing
// the same HTTP contract the client speaks, so the client and its
// stores can be exercised without the production service.
package mockserver

import (
	"net/http"
	"sync"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/prem2230/food-delivery-app-client/config"
	"github.com/prem2230/food-delivery-app-client/models"
)

type account struct {
	user         models.User
	passwordHash []byte
}

type storedOrder struct {
	order      models.Order
	customerID string
}

// Server holds all backend state in memory. Zero persistence: state
// lives as long as the process.
type Server struct {
	mu          sync.Mutex
	secret      []byte
	byEmail     map[string]*account
	byID        map[string]*account
	restaurants []models.Restaurant
	menus       map[string][]models.MenuItem
	orders      []*storedOrder
}

func New() *Server {
	s := &Server{
		secret:  config.JWTSecret(),
		byEmail: make(map[string]*account),
		byID:    make(map[string]*account),
		menus:   make(map[string][]models.MenuItem),
	}
	s.seed()
	return s
}

// seed loads a small catalog so the client has something to browse.
func (s *Server) seed() {
	pizza := models.Restaurant{
		ID:           uuid.NewString(),
		Name:         "Napoli Express",
		Description:  "Wood-fired pizza and fresh pasta",
		Address:      "12 Via Roma",
		Cuisine:      "Italian",
		Rating:       4.6,
		DeliveryTime: "30-40 min",
		DeliveryFee:  2.5,
		IsActive:     true,
	}
	curry := models.Restaurant{
		ID:           uuid.NewString(),
		Name:         "Spice Route",
		Description:  "South Indian kitchen",
		Address:      "48 Market Street",
		Cuisine:      "Indian",
		Rating:       4.3,
		DeliveryTime: "25-35 min",
		DeliveryFee:  1.5,
		IsActive:     true,
	}
	s.restaurants = []models.Restaurant{pizza, curry}
	s.menus[pizza.ID] = []models.MenuItem{
		{ID: uuid.NewString(), Name: "Margherita", Description: "Tomato, mozzarella, basil", Price: 9.5, Category: "Pizza", IsAvailable: true, RestaurantID: pizza.ID},
		{ID: uuid.NewString(), Name: "Diavola", Description: "Spicy salami", Price: 11.0, Category: "Pizza", IsAvailable: true, RestaurantID: pizza.ID},
		{ID: uuid.NewString(), Name: "Tiramisu", Description: "House made", Price: 5.0, Category: "Dessert", IsAvailable: true, RestaurantID: pizza.ID},
	}
	s.menus[curry.ID] = []models.MenuItem{
		{ID: uuid.NewString(), Name: "Masala Dosa", Description: "Crisp dosa with potato filling", Price: 7.0, Category: "Mains", IsAvailable: true, RestaurantID: curry.ID},
		{ID: uuid.NewString(), Name: "Sambar Idli", Description: "Steamed idli in sambar", Price: 5.5, Category: "Mains", IsAvailable: true, RestaurantID: curry.ID},
	}
}

// Handler builds the gin engine with the canonical /api/v1 routes.
func (s *Server) Handler() http.Handler {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.Default())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "Food Delivery Mock API",
		})
	})

	v1 := r.Group("/api/v1")
	{
		v1.POST("/users/register", s.register)
		v1.POST("/users/login", s.login)
		v1.GET("/users/profile", s.authRequired(), s.profile)

		v1.GET("/restaurants", s.listRestaurants)
		v1.GET("/restaurants/:id", s.getRestaurant)
		v1.GET("/fooditem/restaurant/:restaurantId", s.listMenuItems)

		v1.POST("/orders", s.authRequired(), s.placeOrder)
		v1.GET("/orders/my-orders", s.authRequired(), s.myOrders)
		v1.PUT("/orders/:id/cancel", s.authRequired(), s.cancelOrder)
	}
	return r
}
