package models

import "errors"

// Domain error kinds. Repositories and services wrap these with context;
// handlers map them onto HTTP statuses with errors.Is.
var (
	// ErrNotFound is returned when a referenced customer, seller, product,
	// cart or payment does not exist (or does not belong to the caller).
	ErrNotFound = errors.New("record not found")

	// ErrConflict is returned on duplicate identifiers or attempts to edit
	// purchased cart items.
	ErrConflict = errors.New("record conflict")

	// ErrInsufficientInventory is returned when a checkout would drive a
	// product's quantity negative. The whole checkout is rolled back.
	ErrInsufficientInventory = errors.New("insufficient inventory")

	// ErrEmptyCart is returned when a checkout finds no unpurchased items.
	ErrEmptyCart = errors.New("cart has no unpurchased items")
)
