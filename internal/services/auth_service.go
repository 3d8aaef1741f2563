package services

import (
	"fmt"
	"log"
	"time"

	"jaba/internal/models"
	"jaba/internal/repositories"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"
)

// AuthService issues and validates the tokens that carry the caller
// principal into the API. It stands in for the external identity provider:
// the governance core never sees credentials, only the principal string.
type AuthService struct {
	credentialRepo repositories.CredentialRepository
	jwtSecret      []byte
	tokenDurat     time.Duration // Duration for which JWT is valid
}

// NewAuthService creates a new AuthService.
func NewAuthService(credentialRepo repositories.CredentialRepository, jwtSecret string) *AuthService {
	return &AuthService{
		credentialRepo: credentialRepo,
		jwtSecret:      []byte(jwtSecret),
		tokenDurat:     24 * time.Hour, // Token valid for 24 hours
	}
}

// RegisterPrincipal stores a hashed credential for a new principal.
func (s *AuthService) RegisterPrincipal(principal, password string) error {
	if principal == "" || password == "" {
		return fmt.Errorf("principal and password are required")
	}
	if existing, err := s.credentialRepo.GetByPrincipal(principal); err == nil && existing != nil {
		return fmt.Errorf("principal '%s' already registered", principal)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	credential := models.Credential{
		Principal:    principal,
		PasswordHash: string(hashedPassword),
	}
	if err := s.credentialRepo.Create(&credential); err != nil {
		return fmt.Errorf("failed to register principal: %w", err)
	}
	return nil
}

// Login authenticates a principal and returns a JWT token if successful.
func (s *AuthService) Login(principal, password string) (string, error) {
	credential, err := s.credentialRepo.GetByPrincipal(principal)
	if err != nil {
		// Do not reveal whether the principal exists
		return "", fmt.Errorf("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(credential.PasswordHash), []byte(password)); err != nil {
		return "", fmt.Errorf("invalid credentials")
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"principal": principal,
		"exp":       time.Now().Add(s.tokenDurat).Unix(), // Token expiration time
		"iat":       time.Now().Unix(),                   // Issued at time
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
