package services

import (
	"fmt"
	"log"
	"time"

	"bazaar/internal/models"
	"bazaar/internal/repositories"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"
)

// Subject roles carried in JWT claims.
const (
	RoleCustomer = "customer"
	RoleSeller   = "seller"
)

// AuthService handles registration and login for customers and sellers.
type AuthService struct {
	customerRepo repositories.CustomerRepository
	sellerRepo   repositories.SellerRepository
	jwtSecret    []byte
	tokenDurat   time.Duration // Duration for which JWT is valid
}

// NewAuthService creates a new AuthService.
func NewAuthService(customerRepo repositories.CustomerRepository, sellerRepo repositories.SellerRepository, jwtSecret string) *AuthService {
	return &AuthService{
		customerRepo: customerRepo,
		sellerRepo:   sellerRepo,
		jwtSecret:    []byte(jwtSecret),
		tokenDurat:   24 * time.Hour, // Token valid for 24 hours
	}
}

// RegisterCustomer hashes the password and persists the customer together
// with their cart.
func (s *AuthService) RegisterCustomer(customer *models.Customer) error {
	if existing, err := s.customerRepo.GetByPhone(customer.Phone); err == nil && existing != nil {
		return fmt.Errorf("phone '%s' already registered: %w", customer.Phone, models.ErrConflict)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(customer.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	customer.Password = string(hashedPassword) // Store the hashed password

	if err := s.customerRepo.Create(customer); err != nil {
		return fmt.Errorf("failed to register customer: %w", err)
	}
	return nil
}

// RegisterSeller hashes the password and persists the seller with its phone
// numbers.
func (s *AuthService) RegisterSeller(seller *models.Seller) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(seller.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	seller.Password = string(hashedPassword)

	if err := s.sellerRepo.Create(seller); err != nil {
		return fmt.Errorf("failed to register seller: %w", err)
	}
	return nil
}

// LoginCustomer authenticates a customer by ID and returns a JWT token.
func (s *AuthService) LoginCustomer(customerID, password string) (string, error) {
	customer, err := s.customerRepo.GetByID(customerID)
	if err != nil {
		// Do not reveal whether the ID exists
		return "", fmt.Errorf("invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(customer.Password), []byte(password)); err != nil {
		return "", fmt.Errorf("invalid credentials")
	}
	return s.issueToken(customer.ID, RoleCustomer)
}

// LoginSeller authenticates a seller by ID and returns a JWT token.
func (s *AuthService) LoginSeller(sellerID, password string) (string, error) {
	seller, err := s.sellerRepo.GetByID(sellerID)
	if err != nil {
		return "", fmt.Errorf("invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(seller.Password), []byte(password)); err != nil {
		return "", fmt.Errorf("invalid credentials")
	}
	return s.issueToken(seller.ID, RoleSeller)
}

func (s *AuthService) issueToken(subjectID, role string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"subject_id": subjectID,
		"role":       role,
		"exp":        time.Now().Add(s.tokenDurat).Unix(), // Token expiration time
		"iat":        time.Now().Unix(),                   // Issued at time
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return tokenString, nil
}

// ValidateToken parses and validates a JWT token, returning the claims if valid.
func (s *AuthService) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Validate the alg is what we expect:
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})

	if err != nil {
		log.Printf("Token validation error: %v", err)
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, fmt.Errorf("invalid token")
}
