// Package statemachine defines the order lifecycle shared by the
// client and the development server: which status follows which, and
// which actor may drive the change.
package statemachine

import (
	"errors"

	"github.com/prem2230/food-delivery-app-client/models"
)

const (
	ActorCustomer = "customer"
	ActorOwner    = "owner"
)

// Transition defines a valid state change and who can perform it
type Transition struct {
	From  models.OrderStatus
	To    models.OrderStatus
	Actor string
}

// validTransitions is the authoritative state machine definition
var validTransitions = []Transition{
	// Customer can only cancel while the order is still pending
	{From: models.StatusPending, To: models.StatusCancelled, Actor: ActorCustomer},
	// Restaurant owner drives the order forward
	{From: models.StatusPending, To: models.StatusConfirmed, Actor: ActorOwner},
	{From: models.StatusPending, To: models.StatusCancelled, Actor: ActorOwner},
	{From: models.StatusConfirmed, To: models.StatusPreparing, Actor: ActorOwner},
	{From: models.StatusPreparing, To: models.StatusOutForDelivery, Actor: ActorOwner},
	{From: models.StatusOutForDelivery, To: models.StatusDelivered, Actor: ActorOwner},
}

type transitionKey struct {
	From  models.OrderStatus
	To    models.OrderStatus
	Actor string
}

// Build a lookup map for O(1) validation
var transitionMap = func() map[transitionKey]bool {
	m := make(map[transitionKey]bool)
	for _, t := range validTransitions {
		m[transitionKey{t.From, t.To, t.Actor}] = true
	}
	return m
}()

// ValidTransitionsFrom returns all valid next states from a given state
func ValidTransitionsFrom(status models.OrderStatus) []models.OrderStatus {
	var nexts []models.OrderStatus
	seen := map[models.OrderStatus]bool{}
	for _, t := range validTransitions {
		if t.From == status && !seen[t.To] {
			nexts = append(nexts, t.To)
			seen[t.To] = true
		}
	}
	return nexts
}

// CanTransition checks if a given actor can move from one state to another
func CanTransition(from, to models.OrderStatus, actor string) error {
	key := transitionKey{From: from, To: to, Actor: actor}
	if transitionMap[key] {
		return nil
	}
	return errors.New(
		"invalid transition: " + string(from) + " -> " + string(to) +
			" is not allowed for actor '" + actor + "'",
	)
}

// CanCancel reports whether the customer may still cancel an order in
// the given status.
func CanCancel(status models.OrderStatus) bool {
	return CanTransition(status, models.StatusCancelled, ActorCustomer) == nil
}
