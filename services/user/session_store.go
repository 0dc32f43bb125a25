package user

import (
	"visioncare/models"
	"visioncare/utils"

	"github.com/go-redis/redis/v8"
)

// RedisSessionStore is the production SessionStore, backed by the auth
// Redis database.
type RedisSessionStore struct {
	Client *redis.Client
}

func (r RedisSessionStore) Save(tokenHash string, viewer models.Viewer) error {
	return utils.SaveViewerSession(r.Client, tokenHash, viewer)
}

func (r RedisSessionStore) Delete(tokenHash string) error {
	return utils.DeleteViewerSession(r.Client, tokenHash)
}
