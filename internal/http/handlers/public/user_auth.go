package public

import (
	"time"

	"github.com/libas-next/internal/http/response"
	"github.com/libas-next/internal/models"
	"github.com/libas-next/internal/service"

	"github.com/gin-gonic/gin"
)

// UserRegisterRequest is the signup payload.
type UserRegisterRequest struct {
	Username    string `json:"username" binding:"required"`
	Email       string `json:"email" binding:"required"`
	Password    string `json:"password" binding:"required"`
	FullName    string `json:"full_name"`
	Address     string `json:"address"`
	Phone       string `json:"phone"`
	CaptchaID   string `json:"captcha_id"`
	CaptchaCode string `json:"captcha_code"`
}

// UserLoginRequest is the login payload. Identifier accepts a username
// or an email.
type UserLoginRequest struct {
	Identifier  string `json:"identifier" binding:"required"`
	Password    string `json:"password" binding:"required"`
	RememberMe  bool   `json:"remember_me"`
	CaptchaID   string `json:"captcha_id"`
	CaptchaCode string `json:"captcha_code"`
}

// UpdateProfileRequest is the profile payload.
type UpdateProfileRequest struct {
	FullName string `json:"full_name"`
	Address  string `json:"address"`
	Phone    string `json:"phone"`
}

// ChangePasswordRequest is the password change payload.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required"`
}

type authSessionView struct {
	User      *models.User `json:"user"`
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
}

// UserRegister creates an account and signs the session in.
func (h *Handler) UserRegister(c *gin.Context) {
	var req UserRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "username, email and password are required", err)
		return
	}
	if err := h.CaptchaService.Verify(service.CaptchaSceneRegister, req.CaptchaID, req.CaptchaCode); err != nil {
		respondWithMappedError(c, err, authErrorRules, response.CodeInternal, "captcha verification failed")
		return
	}

	user, token, expiresAt, err := h.UserAuthService.Register(service.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
		Address:  req.Address,
		Phone:    req.Phone,
	}, getSessionID(c))
	if err != nil {
		respondWithMappedError(c, err, authErrorRules, response.CodeInternal, "registration failed")
		return
	}
	response.Created(c, authSessionView{User: user, Token: token, ExpiresAt: expiresAt})
}

// UserLogin authenticates and folds the guest cart into the account.
func (h *Handler) UserLogin(c *gin.Context) {
	var req UserLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "identifier and password are required", err)
		return
	}
	if err := h.CaptchaService.Verify(service.CaptchaSceneLogin, req.CaptchaID, req.CaptchaCode); err != nil {
		respondWithMappedError(c, err, authErrorRules, response.CodeInternal, "captcha verification failed")
		return
	}

	user, token, expiresAt, err := h.UserAuthService.Login(req.Identifier, req.Password, getSessionID(c), req.RememberMe)
	if err != nil {
		respondWithMappedError(c, err, authErrorRules, response.CodeInternal, "login failed")
		return
	}
	response.Success(c, authSessionView{User: user, Token: token, ExpiresAt: expiresAt})
}

// UserLogout revokes every token issued to the user.
func (h *Handler) UserLogout(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	if err := h.UserAuthService.Logout(uid); err != nil {
		respondError(c, response.CodeInternal, "logout failed", err)
		return
	}
	response.Success(c, gin.H{"logged_out": true})
}

// GetCurrentUser returns the authenticated account.
func (h *Handler) GetCurrentUser(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	user, err := h.UserAuthService.GetProfile(uid)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to fetch profile", err)
		return
	}
	response.Success(c, user)
}

// UpdateUserProfile replaces the account's contact fields.
func (h *Handler) UpdateUserProfile(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	user, err := h.UserAuthService.UpdateProfile(uid, req.FullName, req.Address, req.Phone)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to update profile", err)
		return
	}
	response.Success(c, user)
}

// ChangeUserPassword rotates the password and revokes old tokens.
func (h *Handler) ChangeUserPassword(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "current and new password are required", err)
		return
	}
	if err := h.UserAuthService.ChangePassword(uid, req.CurrentPassword, req.NewPassword); err != nil {
		respondWithMappedError(c, err, authErrorRules, response.CodeInternal, "failed to change password")
		return
	}
	response.Success(c, gin.H{"changed": true})
}
