package service

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/libas-next/internal/cache"
	"github.com/libas-next/internal/config"
	"github.com/libas-next/internal/constants"
	"github.com/libas-next/internal/logger"
	"github.com/libas-next/internal/models"
	"github.com/libas-next/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserAuthService owns registration, login and token handling. On
// authentication it folds the guest session cart into the user's cart.
type UserAuthService struct {
	cfg          *config.Config
	userRepo     repository.UserRepository
	cartRepo     repository.CartRepository
	wishlistRepo repository.WishlistRepository
}

// NewUserAuthService creates the auth service.
func NewUserAuthService(
	cfg *config.Config,
	userRepo repository.UserRepository,
	cartRepo repository.CartRepository,
	wishlistRepo repository.WishlistRepository,
) *UserAuthService {
	return &UserAuthService{
		cfg:          cfg,
		userRepo:     userRepo,
		cartRepo:     cartRepo,
		wishlistRepo: wishlistRepo,
	}
}

// UserJWTClaims are the token claims issued to storefront users.
type UserJWTClaims struct {
	UserID       uint   `json:"user_id"`
	Username     string `json:"username"`
	Role         string `json:"role"`
	TokenVersion uint64 `json:"token_version"`
	jwt.RegisteredClaims
}

// RegisterInput is the signup request.
type RegisterInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	Address  string `json:"address"`
	Phone    string `json:"phone"`
}

// GenerateUserJWT signs a token for a user.
func (s *UserAuthService) GenerateUserJWT(user *models.User, expireHours int) (string, time.Time, error) {
	resolvedHours := expireHours
	if resolvedHours <= 0 {
		resolvedHours = resolveUserJWTExpireHours(s.cfg.UserJWT)
	}
	expiresAt := time.Now().Add(time.Duration(resolvedHours) * time.Hour)
	claims := UserJWTClaims{
		UserID:       user.ID,
		Username:     user.Username,
		Role:         user.Role,
		TokenVersion: user.TokenVersion,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.cfg.UserJWT.SecretKey))
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// ParseUserJWT validates a token and returns its claims.
func (s *UserAuthService) ParseUserJWT(tokenString string) (*UserJWTClaims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	claims := &UserJWTClaims{}
	token, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.UserJWT.SecretKey), nil
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(*UserJWTClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.New("invalid token")
}

// Register creates an account, seeds its wishlist and claims the guest
// session cart.
func (s *UserAuthService) Register(input RegisterInput, sessionID string) (*models.User, string, time.Time, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}
	email, err := normalizeEmail(input.Email)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if err := validatePassword(s.cfg.Security.PasswordPolicy, input.Password); err != nil {
		return nil, "", time.Time{}, err
	}

	if existing, err := s.userRepo.GetByUsername(username); err != nil {
		return nil, "", time.Time{}, err
	} else if existing != nil {
		return nil, "", time.Time{}, ErrUsernameTaken
	}
	if existing, err := s.userRepo.GetByEmail(email); err != nil {
		return nil, "", time.Time{}, err
	} else if existing != nil {
		return nil, "", time.Time{}, ErrEmailTaken
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.bcryptCost())
	if err != nil {
		return nil, "", time.Time{}, err
	}

	now := time.Now()
	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hashedPassword),
		FullName:     strings.TrimSpace(input.FullName),
		Address:      input.Address,
		Phone:        strings.TrimSpace(input.Phone),
		Role:         constants.UserRoleCustomer,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.userRepo.Create(user); err != nil {
		// The pre-checks race with concurrent registrations; the unique
		// indexes win, so re-read to name the conflicting field.
		return nil, "", time.Time{}, s.classifyRegisterConflict(username, email, err)
	}

	if err := s.wishlistRepo.Create(&models.Wishlist{UserID: user.ID}); err != nil {
		logger.Warnw("register_wishlist_create_failed", "user_id", user.ID, "error", err)
	}
	if err := s.AttachSessionCart(user.ID, sessionID); err != nil {
		logger.Warnw("register_cart_attach_failed", "user_id", user.ID, "error", err)
	}

	token, expiresAt, err := s.GenerateUserJWT(user, 0)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	user.LastLoginAt = &now
	if err := s.userRepo.Update(user); err != nil {
		return nil, "", time.Time{}, err
	}
	_ = cache.SetUserAuthState(context.Background(), cache.BuildUserAuthState(user))

	return user, token, expiresAt, nil
}

// Login authenticates by username or email and claims the guest session
// cart.
func (s *UserAuthService) Login(identifier, password, sessionID string, rememberMe bool) (*models.User, string, time.Time, error) {
	identifier = strings.TrimSpace(identifier)
	user, err := s.userRepo.GetByUsername(identifier)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if user == nil {
		user, err = s.userRepo.GetByEmail(strings.ToLower(identifier))
		if err != nil {
			return nil, "", time.Time{}, err
		}
	}
	if user == nil {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}

	if err := s.AttachSessionCart(user.ID, sessionID); err != nil {
		logger.Warnw("login_cart_attach_failed", "user_id", user.ID, "error", err)
	}

	expireHours := resolveUserJWTExpireHours(s.cfg.UserJWT)
	if rememberMe {
		expireHours = resolveRememberMeExpireHours(s.cfg.UserJWT)
	}
	token, expiresAt, err := s.GenerateUserJWT(user, expireHours)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	now := time.Now()
	user.LastLoginAt = &now
	if err := s.userRepo.Update(user); err != nil {
		return nil, "", time.Time{}, err
	}
	_ = cache.SetUserAuthState(context.Background(), cache.BuildUserAuthState(user))

	return user, token, expiresAt, nil
}

// AttachSessionCart folds the guest session cart into the user's cart.
// An unowned session cart is claimed outright; when the user already has
// a cart the two line sets are merged and the session cart is dropped.
func (s *UserAuthService) AttachSessionCart(userID uint, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	sessionCart, err := s.cartRepo.GetBySessionID(sessionID)
	if err != nil {
		return err
	}
	if sessionCart == nil || sessionCart.UserID != nil {
		return nil
	}

	userCart, err := s.cartRepo.GetByUserID(userID)
	if err != nil {
		return err
	}
	if userCart == nil {
		return s.cartRepo.AssignUser(sessionCart.ID, userID)
	}
	if userCart.ID == sessionCart.ID {
		return nil
	}

	guestLines, err := s.cartRepo.ListItems(sessionCart.ID)
	if err != nil {
		return err
	}
	userLines, err := s.cartRepo.ListItems(userCart.ID)
	if err != nil {
		return err
	}
	merged := MergeCartLines(guestLines, userLines)

	return models.DB.Transaction(func(tx *gorm.DB) error {
		cartRepo := s.cartRepo.WithTx(tx)
		if err := cartRepo.ClearItems(userCart.ID); err != nil {
			return err
		}
		for i := range merged {
			line := merged[i]
			line.CartID = userCart.ID
			if err := cartRepo.UpsertLine(&line); err != nil {
				return err
			}
		}
		return cartRepo.Delete(sessionCart.ID)
	})
}

// Logout revokes every outstanding token for the user.
func (s *UserAuthService) Logout(userID uint) error {
	if err := s.userRepo.BumpTokenVersion(userID); err != nil {
		return err
	}
	return cache.DelUserAuthState(context.Background(), userID)
}

// GetProfile fetches the account record.
func (s *UserAuthService) GetProfile(userID uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// UpdateProfile replaces the account's contact fields.
func (s *UserAuthService) UpdateProfile(userID uint, fullName, address, phone string) (*models.User, error) {
	user, err := s.GetProfile(userID)
	if err != nil {
		return nil, err
	}
	if err := s.userRepo.UpdateFields(user.ID, map[string]interface{}{
		"full_name": strings.TrimSpace(fullName),
		"address":   address,
		"phone":     strings.TrimSpace(phone),
	}); err != nil {
		return nil, err
	}
	return s.GetProfile(userID)
}

// ChangePassword verifies the current password, stores the new hash and
// revokes outstanding tokens.
func (s *UserAuthService) ChangePassword(userID uint, currentPassword, newPassword string) error {
	user, err := s.GetProfile(userID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)); err != nil {
		return ErrInvalidCredentials
	}
	if err := validatePassword(s.cfg.Security.PasswordPolicy, newPassword); err != nil {
		return err
	}
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), s.bcryptCost())
	if err != nil {
		return err
	}
	if err := s.userRepo.UpdateFields(user.ID, map[string]interface{}{
		"password_hash": string(hashedPassword),
	}); err != nil {
		return err
	}
	return s.Logout(user.ID)
}

// classifyRegisterConflict maps a failed user insert back onto the
// uniqueness sentinels by re-reading both indexed columns.
func (s *UserAuthService) classifyRegisterConflict(username, email string, createErr error) error {
	if existing, err := s.userRepo.GetByUsername(username); err == nil && existing != nil {
		return ErrUsernameTaken
	}
	if existing, err := s.userRepo.GetByEmail(email); err == nil && existing != nil {
		return ErrEmailTaken
	}
	return createErr
}

func (s *UserAuthService) bcryptCost() int {
	cost := s.cfg.Security.BcryptCost
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return bcrypt.DefaultCost
	}
	return cost
}

func normalizeEmail(email string) (string, error) {
	trimmed := strings.TrimSpace(strings.ToLower(email))
	if trimmed == "" {
		return "", ErrInvalidEmail
	}
	addr, err := mail.ParseAddress(trimmed)
	if err != nil || addr.Address != trimmed {
		return "", ErrInvalidEmail
	}
	return trimmed, nil
}

func resolveUserJWTExpireHours(cfg config.JWTConfig) int {
	if cfg.ExpireHours > 0 {
		return cfg.ExpireHours
	}
	return 24
}

func resolveRememberMeExpireHours(cfg config.JWTConfig) int {
	if cfg.RememberMeExpireHours > 0 {
		return cfg.RememberMeExpireHours
	}
	return 168
}
