// Command foodclient is a thin command-line front end over the client
// state layer: it wires config, the backing store, the API client and
// the two stores together, then dispatches one subcommand per run.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/prem2230/food-delivery-app-client/api"
	"github.com/prem2230/food-delivery-app-client/config"
	"github.com/prem2230/food-delivery-app-client/models"
	"github.com/prem2230/food-delivery-app-client/statemachine"
	"github.com/prem2230/food-delivery-app-client/storage"
	"github.com/prem2230/food-delivery-app-client/store"
)

const usage = `usage: foodclient <command> [args]

  register -name N -email E -password P [-role customer|owner] [-number PHONE]
  login -email E -password P
  logout
  whoami
  restaurants [-cuisine C] [-search S]
  menu <restaurant-id> [-category C]
  cart add <restaurant-id> <item-id>
  cart remove <item-id>
  cart set <item-id> <quantity>
  cart show
  cart clear
  checkout -address A
  orders
  cancel <order-id>
`

type app struct {
	client  *api.Client
	session *store.SessionStore
	cart    *store.CartStore
}

func main() {
	log.SetFlags(0)
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg := config.Load()
	st, err := storage.OpenSQLite(cfg.StatePath)
	if err != nil {
		log.Fatalf("open state store: %v", err)
	}

	client := api.NewClient(cfg.APIBaseURL, store.TokenFromStore(st))
	a := &app{
		client:  client,
		session: store.NewSessionStore(client, st),
		cart:    store.NewCartStore(st),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	a.session.Initialize(ctx)

	if err := a.run(ctx, os.Args[1], os.Args[2:]); err != nil {
		log.Fatalf("error: %v", err)
	}
}

func (a *app) run(ctx context.Context, command string, args []string) error {
	switch command {
	case "register":
		return a.register(ctx, args)
	case "login":
		return a.login(ctx, args)
	case "logout":
		a.session.Logout()
		fmt.Println("Logged out.")
		return nil
	case "whoami":
		return a.whoami()
	case "restaurants":
		return a.restaurants(ctx, args)
	case "menu":
		return a.menu(ctx, args)
	case "cart":
		return a.cartCmd(ctx, args)
	case "checkout":
		return a.checkout(ctx, args)
	case "orders":
		return a.orders(ctx)
	case "cancel":
		return a.cancel(ctx, args)
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", command)
	}
}

func (a *app) register(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	name := fs.String("name", "", "display name")
	email := fs.String("email", "", "email address")
	password := fs.String("password", "", "password")
	role := fs.String("role", "customer", "customer or owner")
	number := fs.String("number", "", "phone number")
	fs.Parse(args)

	err := a.session.Register(ctx, store.Registration{
		Name:     *name,
		Email:    *email,
		Password: *password,
		Role:     models.UserRole(*role),
		Number:   *number,
	})
	if err != nil {
		return err
	}
	fmt.Println("Registered and logged in.")
	return nil
}

func (a *app) login(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "email address")
	password := fs.String("password", "", "password")
	fs.Parse(args)

	if err := a.session.Login(ctx, store.Credentials{Email: *email, Password: *password}); err != nil {
		return err
	}
	sess := a.session.Session()
	fmt.Printf("Logged in as %s (%s)\n", sess.User.Name, sess.User.Email)
	return nil
}

func (a *app) whoami() error {
	sess := a.session.Session()
	if !sess.IsAuthenticated || sess.User == nil {
		fmt.Println("Not logged in.")
		return nil
	}
	fmt.Printf("%s <%s> role=%s\n", sess.User.Name, sess.User.Email, sess.User.Role)
	return nil
}

func (a *app) restaurants(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("restaurants", flag.ExitOnError)
	cuisine := fs.String("cuisine", "", "filter by cuisine")
	search := fs.String("search", "", "search by name")
	fs.Parse(args)

	list, err := a.client.ListRestaurants(ctx, &api.RestaurantFilter{Cuisine: *cuisine, Search: *search})
	if err != nil {
		return err
	}
	for _, r := range list {
		fmt.Printf("%s  %s (%s) ★%.1f — %s\n", r.ID, r.Name, r.Cuisine, r.Rating, r.DeliveryTime)
	}
	return nil
}

func (a *app) menu(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("menu: restaurant id required")
	}
	fs := flag.NewFlagSet("menu", flag.ExitOnError)
	category := fs.String("category", "", "filter by category")
	fs.Parse(args[1:])

	items, err := a.client.ListMenuItems(ctx, args[0], *category)
	if err != nil {
		return err
	}
	for _, item := range items {
		fmt.Printf("%s  %-20s %8.2f  [%s]\n", item.ID, item.Name, item.Price, item.Category)
	}
	return nil
}

func (a *app) cartCmd(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("cart: subcommand required (add|remove|set|show|clear)")
	}
	switch args[0] {
	case "add":
		if len(args) < 3 {
			return fmt.Errorf("cart add: restaurant id and item id required")
		}
		items, err := a.client.ListMenuItems(ctx, args[1], "")
		if err != nil {
			return err
		}
		for _, item := range items {
			if item.ID == args[2] {
				a.cart.AddItem(item)
				fmt.Printf("Added %s.\n", item.Name)
				return nil
			}
		}
		return fmt.Errorf("item %s not on that menu", args[2])
	case "remove":
		if len(args) < 2 {
			return fmt.Errorf("cart remove: item id required")
		}
		a.cart.RemoveItem(args[1])
		return nil
	case "set":
		if len(args) < 3 {
			return fmt.Errorf("cart set: item id and quantity required")
		}
		qty, err := strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("cart set: bad quantity %q", args[2])
		}
		a.cart.UpdateQuantity(args[1], qty)
		return nil
	case "show":
		for _, item := range a.cart.Items() {
			fmt.Printf("%dx %-20s %8.2f\n", item.Quantity, item.Name, item.Price*float64(item.Quantity))
		}
		fmt.Printf("Total: %.2f\n", a.cart.Total())
		return nil
	case "clear":
		a.cart.ClearCart()
		return nil
	default:
		return fmt.Errorf("cart: unknown subcommand %q", args[0])
	}
}

func (a *app) checkout(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("checkout", flag.ExitOnError)
	address := fs.String("address", "", "delivery address")
	fs.Parse(args)

	items := a.cart.Items()
	if len(items) == 0 {
		return fmt.Errorf("cart is empty")
	}
	req := api.PlaceOrderRequest{
		TotalAmount:     a.cart.Total(),
		DeliveryAddress: *address,
	}
	for _, item := range items {
		req.Items = append(req.Items, api.OrderItemRequest{
			FoodItemID: item.ID,
			Quantity:   item.Quantity,
			Price:      item.Price,
		})
	}

	order, err := a.client.PlaceOrder(ctx, req)
	if err != nil {
		// cart stays intact so the order can be retried
		return err
	}
	a.cart.ClearCart()
	fmt.Printf("Order %s placed, total %.2f.\n", order.ID, order.TotalAmount)
	return nil
}

func (a *app) orders(ctx context.Context) error {
	orders, err := a.client.ListMyOrders(ctx)
	if err != nil {
		return err
	}
	for _, o := range orders {
		line := fmt.Sprintf("%s  %-16s %8.2f  %s", o.ID, o.Status, o.TotalAmount, o.CreatedAt.Format(time.RFC822))
		if statemachine.CanCancel(o.Status) {
			line += "  (cancellable)"
		}
		fmt.Println(line)
	}
	return nil
}

func (a *app) cancel(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("cancel: order id required")
	}
	order, err := a.client.CancelOrder(ctx, args[0])
	if err != nil {
		return err
	}
	fmt.Printf("Order %s is now %s.\n", order.ID, order.Status)
	return nil
}
