package authUtils

import (
	"strconv"
	"time"

	"communityfix-be/config"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const resetTokenTTL = time.Hour

// CreateResetToken stores a fresh password-reset token for the user with a
// one-hour TTL and returns it. The token value maps to the user ID so the
// reset handler can resolve who is resetting without trusting client input.
func CreateResetToken(userID string) (string, error) {
	token := uuid.NewString()
	err := config.RedisClient.Set(config.Ctx, "pwdreset:token:"+token, userID, resetTokenTTL).Err()
	if err != nil {
		return "", err
	}
	return token, nil
}

// ConsumeResetToken resolves and deletes a reset token in one step, so a
// token cannot be replayed. Returns the user ID it was issued for, or
// ok=false when the token is unknown or expired.
func ConsumeResetToken(token string) (string, bool, error) {
	userID, err := config.RedisClient.GetDel(config.Ctx, "pwdreset:token:"+token).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return userID, true, nil
}

// StampPasswordReset records the moment a user's credential changed. Auth
// tokens issued before this moment are rejected by the auth middleware,
// which is how a reset signs out every existing session of the user.
func StampPasswordReset(userID string) error {
	now := strconv.FormatInt(time.Now().Unix(), 10)
	return config.RedisClient.Set(config.Ctx, "pwdreset:stamp:"+userID, now, 72*time.Hour).Err()
}

// TokenIssuedBeforeReset reports whether a token issued at issuedAt predates
// the user's last password reset. Without a Redis client (tests, minimal dev
// setups) no stamp exists and every token passes.
func TokenIssuedBeforeReset(userID string, issuedAt int64) bool {
	if config.RedisClient == nil {
		return false
	}
	val, err := config.RedisClient.Get(config.Ctx, "pwdreset:stamp:"+userID).Result()
	if err != nil {
		return false
	}
	stamp, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return false
	}
	return issuedAt < stamp
}
