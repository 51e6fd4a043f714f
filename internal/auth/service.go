package auth

import (
	"errors"
	"fmt"
	"time"

	"employee-portal/internal/config"
	"employee-portal/internal/database/models"
	apperrors "employee-portal/internal/errors"

	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

// AuthClaims represents JWT token claims
type AuthClaims struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// AuthService issues and validates tokens and owns the login/register logic
type AuthService struct {
	db     *gorm.DB
	secret []byte
	expiry time.Duration
}

// NewAuthService creates a new auth service
func NewAuthService(db *gorm.DB, cfg *config.Config) *AuthService {
	expiry := time.Duration(cfg.JWTExpiryHours) * time.Hour
	if expiry <= 0 {
		expiry = 24 * time.Hour
	}
	return &AuthService{
		db:     db,
		secret: []byte(cfg.JWTSecret),
		expiry: expiry,
	}
}

// Login verifies credentials and returns a signed token with the account
func (s *AuthService) Login(username, password string) (string, *models.User, error) {
	var user models.User
	if err := s.db.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, apperrors.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if !user.CheckPassword(password) {
		return "", nil, apperrors.ErrInvalidCredentials
	}

	token, err := s.GenerateJWT(&user)
	if err != nil {
		return "", nil, err
	}
	return token, &user, nil
}

// RegisterRequest carries the fields to create a login account together with
// its employee record
type RegisterRequest struct {
	Username   string `json:"username" validate:"required,min=3,max=50"`
	Password   string `json:"password" validate:"required,min=6"`
	Role       string `json:"role" validate:"required,oneof=admin employee"`
	FirstName  string `json:"first_name" validate:"required"`
	LastName   string `json:"last_name" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Phone      string `json:"phone"`
	Department string `json:"department"`
	Position   string `json:"position"`
	HireDate   string `json:"hire_date"`
}

// Register creates the user and its employee record in one transaction
func (s *AuthService) Register(req *RegisterRequest) (*models.User, error) {
	var count int64
	s.db.Model(&models.User{}).Where("username = ?", req.Username).Count(&count)
	if count > 0 {
		return nil, apperrors.ErrUserExists
	}
	s.db.Model(&models.Employee{}).Where("email = ?", req.Email).Count(&count)
	if count > 0 {
		return nil, apperrors.ErrEmployeeExists
	}

	user := &models.User{Username: req.Username, Role: req.Role}
	if err := user.SetPassword(req.Password); err != nil {
		return nil, err
	}

	hireDate := req.HireDate
	if hireDate == "" {
		hireDate = time.Now().Format("2006-01-02")
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		employee := &models.Employee{
			UserID:     user.ID,
			FirstName:  req.FirstName,
			LastName:   req.LastName,
			Email:      req.Email,
			Phone:      req.Phone,
			Department: req.Department,
			Position:   req.Position,
			HireDate:   hireDate,
			Status:     models.StatusActive,
		}
		return tx.Create(employee).Error
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// GenerateJWT signs an HS256 token for the account
func (s *AuthService) GenerateJWT(user *models.User) (string, error) {
	now := time.Now()
	claims := &AuthClaims{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// ValidateJWT parses and verifies a token, returning its claims
func (s *AuthService) ValidateJWT(tokenString string) (*AuthClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AuthClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*AuthClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, fmt.Errorf("invalid token claims")
}

// CurrentUser loads the account behind a set of claims
func (s *AuthService) CurrentUser(claims *AuthClaims) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, claims.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}
