package mockserver

import (
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/prem2230/food-delivery-app-client/models"
	"github.com/prem2230/food-delivery-app-client/statemachine"
)

type registerRequest struct {
	Name     string          `json:"name" binding:"required"`
	Email    string          `json:"email" binding:"required,email"`
	Password string          `json:"password" binding:"required,min=6"`
	Role     models.UserRole `json:"role" binding:"required"`
	Number   string          `json:"number" binding:"required"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (s *Server) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}
	if req.Role != models.RoleCustomer && req.Role != models.RoleOwner {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid role. Must be: customer or owner"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.byEmail[req.Email]; exists {
		c.JSON(http.StatusConflict, gin.H{"success": false, "message": "Email already registered"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to hash password"})
		return
	}

	acct := &account{
		user: models.User{
			ID:     uuid.NewString(),
			Name:   req.Name,
			Email:  req.Email,
			Role:   req.Role,
			Number: req.Number,
		},
		passwordHash: hash,
	}
	s.byEmail[req.Email] = acct
	s.byID[acct.user.ID] = acct

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Account created successfully",
		"user":    acct.user,
	})
}

func (s *Server) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	s.mu.Lock()
	acct, ok := s.byEmail[req.Email]
	s.mu.Unlock()
	if !ok || bcrypt.CompareHashAndPassword(acct.passwordHash, []byte(req.Password)) != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid email or password"})
		return
	}

	token, err := s.generateToken(acct.user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Login successful",
		"token":   token,
		"user":    acct.user,
	})
}

func (s *Server) profile(c *gin.Context) {
	s.mu.Lock()
	acct, ok := s.byID[callerID(c)]
	s.mu.Unlock()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": acct.user})
}

func (s *Server) listRestaurants(c *gin.Context) {
	cuisine := strings.ToLower(c.Query("cuisine"))
	search := strings.ToLower(c.Query("search"))

	s.mu.Lock()
	defer s.mu.Unlock()
	restaurants := make([]models.Restaurant, 0, len(s.restaurants))
	for _, r := range s.restaurants {
		if cuisine != "" && !strings.Contains(strings.ToLower(r.Cuisine), cuisine) {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(r.Name), search) {
			continue
		}
		restaurants = append(restaurants, r)
	}
	c.JSON(http.StatusOK, gin.H{"count": len(restaurants), "restaurants": restaurants})
}

func (s *Server) getRestaurant(c *gin.Context) {
	id := c.Param("id")
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.restaurants {
		if r.ID == id {
			c.JSON(http.StatusOK, gin.H{"restaurant": r})
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Restaurant not found"})
}

func (s *Server) listMenuItems(c *gin.Context) {
	restaurantID := c.Param("restaurantId")
	category := c.Query("category")

	s.mu.Lock()
	defer s.mu.Unlock()
	menu, ok := s.menus[restaurantID]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Restaurant not found"})
		return
	}
	items := make([]models.MenuItem, 0, len(menu))
	for _, item := range menu {
		if category != "" && item.Category != category {
			continue
		}
		items = append(items, item)
	}
	c.JSON(http.StatusOK, gin.H{"count": len(items), "foodItems": items})
}

type placeOrderRequest struct {
	Items []struct {
		FoodItemID string  `json:"foodItemId" binding:"required"`
		Quantity   int     `json:"quantity" binding:"required,min=1"`
		Price      float64 `json:"price"`
	} `json:"items" binding:"required,min=1"`
	TotalAmount     float64 `json:"totalAmount"`
	DeliveryAddress string  `json:"deliveryAddress" binding:"required"`
}

func (s *Server) placeOrder(c *gin.Context) {
	var req placeOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var items []models.OrderItem
	restaurantID := ""
	for _, reqItem := range req.Items {
		menuItem, ok := s.findMenuItem(reqItem.FoodItemID)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Menu item not found: " + reqItem.FoodItemID})
			return
		}
		if restaurantID == "" {
			restaurantID = menuItem.RestaurantID
		}
		items = append(items, models.OrderItem{
			ID:       menuItem.ID,
			Name:     menuItem.Name,
			Price:    reqItem.Price,
			Quantity: reqItem.Quantity,
		})
	}

	order := models.Order{
		ID:              uuid.NewString(),
		Items:           items,
		TotalAmount:     req.TotalAmount,
		Status:          models.StatusPending,
		DeliveryAddress: req.DeliveryAddress,
		CreatedAt:       time.Now().UTC(),
		RestaurantID:    restaurantID,
	}
	s.orders = append(s.orders, &storedOrder{order: order, customerID: callerID(c)})

	c.JSON(http.StatusCreated, gin.H{"message": "Order placed successfully", "order": order})
}

func (s *Server) myOrders(c *gin.Context) {
	customerID := callerID(c)
	s.mu.Lock()
	defer s.mu.Unlock()
	orders := make([]models.Order, 0)
	for _, o := range s.orders {
		if o.customerID == customerID {
			orders = append(orders, o.order)
		}
	}
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
	c.JSON(http.StatusOK, gin.H{"count": len(orders), "orders": orders})
}

func (s *Server) cancelOrder(c *gin.Context) {
	orderID := c.Param("id")
	customerID := callerID(c)

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, o := range s.orders {
		if o.order.ID != orderID {
			continue
		}
		if o.customerID != customerID {
			c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "This order does not belong to you"})
			return
		}
		if err := statemachine.CanTransition(o.order.Status, models.StatusCancelled, statemachine.ActorCustomer); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"success": false, "message": "Cannot cancel order: " + err.Error()})
			return
		}
		o.order.Status = models.StatusCancelled
		c.JSON(http.StatusOK, gin.H{"message": "Order cancelled successfully", "order": o.order})
		return
	}
	c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Order not found"})
}

// findMenuItem looks an item up across all menus. Callers must hold
// s.mu.
func (s *Server) findMenuItem(id string) (models.MenuItem, bool) {
	for _, menu := range s.menus {
		for _, item := range menu {
			if item.ID == id {
				return item, true
			}
		}
	}
	return models.MenuItem{}, false
}
