package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"visioncare/models"

	"github.com/go-redis/redis/v8"
)

const ViewerSessionPrefix = "viewerSession:"

// SessionTTL is how long a resolved viewer stays cached; it matches the
// token lifetime so a valid token always finds its session or rebuilds it.
const SessionTTL = 24 * time.Hour

// SaveViewerSession stores the resolved viewer under the token hash. The
// viewer (role plus linked patient/specialist) is resolved once at sign-in;
// every later request reads it back instead of re-fetching the profile.
func SaveViewerSession(client *redis.Client, tokenHash string, viewer models.Viewer) error {
	data, err := json.Marshal(viewer)
	if err != nil {
		return fmt.Errorf("failed to marshal viewer session: %w", err)
	}
	ctx := context.Background()
	if err := client.Set(ctx, ViewerSessionPrefix+tokenHash, data, SessionTTL).Err(); err != nil {
		return fmt.Errorf("failed to save viewer session: %w", err)
	}
	return nil
}

// GetViewerSession retrieves a cached viewer. Returns redis.Nil (wrapped)
// on a cache miss; callers fall back to a database rebuild.
func GetViewerSession(client *redis.Client, tokenHash string) (*models.Viewer, error) {
	ctx := context.Background()
	data, err := client.Get(ctx, ViewerSessionPrefix+tokenHash).Result()
	if err != nil {
		return nil, err
	}
	var viewer models.Viewer
	if err := json.Unmarshal([]byte(data), &viewer); err != nil {
		return nil, fmt.Errorf("failed to unmarshal viewer session: %w", err)
	}
	return &viewer, nil
}

// DeleteViewerSession removes a viewer session (sign-out, role change).
func DeleteViewerSession(client *redis.Client, tokenHash string) error {
	ctx := context.Background()
	return client.Del(ctx, ViewerSessionPrefix+tokenHash).Err()
}
