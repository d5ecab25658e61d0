package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix        = "user:%s"
	ThreadKeyPrefix      = "thread:%s"
	CommunityCatalogKey  = "communities:all"
	HashtagFeedKeyPrefix = "feed:tag:%s"
)

const (
	UserTTL             = 5 * time.Minute
	ThreadTTL           = 2 * time.Minute
	CommunityCatalogTTL = 30 * time.Minute
	HashtagFeedTTL      = 1 * time.Minute
)

func UserKey(email string) string {
	return fmt.Sprintf(UserKeyPrefix, email)
}

func ThreadKey(communityName string) string {
	return fmt.Sprintf(ThreadKeyPrefix, communityName)
}

func HashtagFeedKey(tag string) string {
	return fmt.Sprintf(HashtagFeedKeyPrefix, tag)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, email string) {
	Invalidate(ctx, UserKey(email))
}

func InvalidateThread(ctx context.Context, communityName string) {
	Invalidate(ctx, ThreadKey(communityName))
}

func InvalidateCommunityCatalog(ctx context.Context) {
	Invalidate(ctx, CommunityCatalogKey)
}
