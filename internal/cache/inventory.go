package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	ProfileKeyPrefix = "user:%d:profile"
)

const (
	ProfileTTL = 5 * time.Minute
)

// ProfileKey holds the cached UserSummary of a user.
func ProfileKey(userID uint) string {
	return fmt.Sprintf(ProfileKeyPrefix, userID)
}

func InvalidateProfile(ctx context.Context, userID uint) {
	Invalidate(ctx, ProfileKey(userID))
}
