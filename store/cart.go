package store

import (
	"encoding/json"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/prem2230/food-delivery-app-client/models"
	"github.com/prem2230/food-delivery-app-client/storage"
)

// cartBlob is the persisted shape of the cart.
type cartBlob struct {
	Items []models.CartItem `json:"items"`
}

// CartStore maintains the order basket. Mutations are total over their
// input domain: unknown ids are no-ops, never errors. Every mutation
// persists the item list to the backing store. The cart is independent
// of the session and is not cleared on logout.
type CartStore struct {
	mu    sync.Mutex
	store storage.Store
	items []models.CartItem
}

func NewCartStore(st storage.Store) *CartStore {
	c := &CartStore{store: st}
	c.rehydrate()
	return c
}

func (c *CartStore) rehydrate() {
	raw, ok, err := c.store.Get(storage.KeyCart)
	if err != nil || !ok {
		return
	}
	var blob cartBlob
	if json.Unmarshal([]byte(raw), &blob) != nil {
		return
	}
	c.items = blob.Items
}

// AddItem puts a menu item in the cart. An item already present has
// its quantity incremented by 1; its first-seen name and price are
// kept even if the input differs. New items append with quantity 1,
// preserving insertion order.
func (c *CartStore) AddItem(item models.MenuItem) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.items[i].ID == item.ID {
			c.items[i].Quantity++
			c.persistLocked()
			return
		}
	}
	c.items = append(c.items, models.CartItem{MenuItem: item, Quantity: 1})
	c.persistLocked()
}

// RemoveItem drops the item with the given id. No-op if absent.
func (c *CartStore) RemoveItem(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.removeLocked(id)
	c.persistLocked()
}

// UpdateQuantity sets an item's quantity to exactly quantity. A
// quantity of zero or less removes the item. No-op if the id is
// absent.
func (c *CartStore) UpdateQuantity(id string, quantity int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if quantity <= 0 {
		c.removeLocked(id)
		c.persistLocked()
		return
	}
	for i := range c.items {
		if c.items[i].ID == id {
			c.items[i].Quantity = quantity
			break
		}
	}
	c.persistLocked()
}

// ClearCart empties the basket.
func (c *CartStore) ClearCart() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
	c.persistLocked()
}

// Items returns a copy of the basket in insertion order.
func (c *CartStore) Items() []models.CartItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	items := make([]models.CartItem, len(c.items))
	copy(items, c.items)
	return items
}

// Total is the sum of price times quantity over the basket, recomputed
// on every read so it can never drift from the item list.
func (c *CartStore) Total() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	total := decimal.Zero
	for _, item := range c.items {
		line := decimal.NewFromFloat(item.Price).Mul(decimal.NewFromInt(int64(item.Quantity)))
		total = total.Add(line)
	}
	f, _ := total.Float64()
	return f
}

func (c *CartStore) removeLocked(id string) {
	kept := c.items[:0]
	for _, item := range c.items {
		if item.ID != id {
			kept = append(kept, item)
		}
	}
	c.items = kept
}

// persistLocked writes the item list; the in-memory list stays
// authoritative if the write fails. Callers must hold c.mu.
func (c *CartStore) persistLocked() {
	data, err := json.Marshal(cartBlob{Items: c.items})
	if err != nil {
		return
	}
	_ = c.store.Set(storage.KeyCart, string(data))
}
