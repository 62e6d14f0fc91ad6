package services

import (
	"fmt"
	"log"

	"bazaar/internal/models"
	"bazaar/internal/repositories"
)

// CheckoutPublisher publishes checkout events to the message broker.
type CheckoutPublisher interface {
	PublishCheckoutCompleted(event map[string]interface{}) error
}

// OrderService handles cart edits, checkout and payment lookups.
type OrderService struct {
	orderRepo repositories.OrderRepository
	publisher CheckoutPublisher
}

// NewOrderService creates a new OrderService.
func NewOrderService(orderRepo repositories.OrderRepository, publisher CheckoutPublisher) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		publisher: publisher,
	}
}

// GetCart retrieves the cart of a customer with items and products.
func (s *OrderService) GetCart(customerID string) (*models.Cart, error) {
	return s.orderRepo.GetCartByCustomerID(customerID)
}

// AddItem puts a product into the customer's cart; re-adding an unpurchased
// product replaces its wished quantity.
func (s *OrderService) AddItem(customerID, productID string, quantity int) (*models.CartItem, error) {
	if quantity <= 0 {
		return nil, fmt.Errorf("quantity must be positive, got %d", quantity)
	}
	cart, err := s.orderRepo.GetCartByCustomerID(customerID)
	if err != nil {
		return nil, err
	}
	return s.orderRepo.AddItem(cart.ID, productID, quantity)
}

// UpdateItemQuantity changes the wished quantity of an unpurchased item.
func (s *OrderService) UpdateItemQuantity(customerID, productID string, quantity int) error {
	if quantity <= 0 {
		return fmt.Errorf("quantity must be positive, got %d", quantity)
	}
	cart, err := s.orderRepo.GetCartByCustomerID(customerID)
	if err != nil {
		return err
	}
	return s.orderRepo.UpdateItemQuantity(cart.ID, productID, quantity)
}

// RemoveItem drops an unpurchased item from the customer's cart.
func (s *OrderService) RemoveItem(customerID, productID string) error {
	cart, err := s.orderRepo.GetCartByCustomerID(customerID)
	if err != nil {
		return err
	}
	return s.orderRepo.RemoveItem(cart.ID, productID)
}

// Checkout runs the atomic cart-to-payment transition and publishes a
// checkout.completed event on success. Publishing is best-effort: the
// database is the ledger of record, so a broker failure is logged and the
// payment stands.
func (s *OrderService) Checkout(customerID, cartID, paymentType string) (*models.Payment, error) {
	if paymentType == "" {
		return nil, fmt.Errorf("payment type is required")
	}

	payment, err := s.orderRepo.Checkout(customerID, cartID, paymentType)
	if err != nil {
		return nil, err
	}

	if s.publisher != nil {
		event := map[string]interface{}{
			"paymentID":   payment.ID,
			"customerID":  payment.CustomerID,
			"cartID":      payment.CartID,
			"paymentType": payment.PaymentType,
			"total":       payment.TotalAmount.String(),
		}
		if err := s.publisher.PublishCheckoutCompleted(event); err != nil {
			log.Printf("Warning: failed to publish checkout event for payment %s: %v", payment.ID, err)
		}
	} else {
		log.Println("Checkout publisher is not configured. Skipping event publication.")
	}

	return payment, nil
}

// GetPaymentByID retrieves one payment.
func (s *OrderService) GetPaymentByID(id string) (*models.Payment, error) {
	return s.orderRepo.GetPaymentByID(id)
}

// GetPaymentHistory retrieves all payments of a customer.
func (s *OrderService) GetPaymentHistory(customerID string) ([]models.Payment, error) {
	return s.orderRepo.GetPaymentsByCustomerID(customerID)
}
