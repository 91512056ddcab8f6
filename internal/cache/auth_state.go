package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/libas-next/internal/models"
)

const authStateCacheTTL = 10 * time.Minute

// UserAuthState is the server-side auth snapshot cached per user so the
// auth middleware can check token revocation without a database read.
// TokenInvalidBefore is a Unix second timestamp, 0 when unset.
type UserAuthState struct {
	UserID             uint   `json:"user_id"`
	Role               string `json:"role"`
	TokenVersion       uint64 `json:"token_version"`
	TokenInvalidBefore int64  `json:"token_invalid_before"`
	UpdatedAt          int64  `json:"updated_at"`
}

func userAuthStateKey(userID uint) string {
	return fmt.Sprintf("auth:user:%d", userID)
}

// BuildUserAuthState builds the snapshot from a user row.
func BuildUserAuthState(user *models.User) *UserAuthState {
	if user == nil {
		return nil
	}
	state := &UserAuthState{
		UserID:       user.ID,
		Role:         user.Role,
		TokenVersion: user.TokenVersion,
		UpdatedAt:    time.Now().Unix(),
	}
	if user.TokenInvalidBefore != nil {
		state.TokenInvalidBefore = user.TokenInvalidBefore.Unix()
	}
	return state
}

// GetUserAuthState reads the cached snapshot.
func GetUserAuthState(ctx context.Context, userID uint) (*UserAuthState, bool, error) {
	if userID == 0 {
		return nil, false, nil
	}
	var state UserAuthState
	hit, err := GetJSON(ctx, userAuthStateKey(userID), &state)
	if err != nil || !hit {
		return nil, hit, err
	}
	return &state, true, nil
}

// SetUserAuthState writes the snapshot.
func SetUserAuthState(ctx context.Context, state *UserAuthState) error {
	if state == nil || state.UserID == 0 {
		return nil
	}
	return SetJSON(ctx, userAuthStateKey(state.UserID), state, authStateCacheTTL)
}

// DelUserAuthState drops the snapshot, forcing a database reload.
func DelUserAuthState(ctx context.Context, userID uint) error {
	if userID == 0 {
		return nil
	}
	return Del(ctx, userAuthStateKey(userID))
}
