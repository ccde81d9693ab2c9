package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/yourusername/trivia-game/internal/domain/entity"
	apperrors "github.com/yourusername/trivia-game/internal/pkg/errors"
)

const sessionKeyPrefix = "game:session:"

// SessionRepo реализует repository.GameSessionRepository поверх Redis.
// Снапшот игры хранится как JSON-блоб под ключом game:session:<id>
// с TTL, равным времени жизни игровой сессии.
type SessionRepo struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// NewSessionRepo создает новый репозиторий игровых сессий
func NewSessionRepo(client redis.UniversalClient, ttl time.Duration) (*SessionRepo, error) {
	if client == nil {
		return nil, fmt.Errorf("Redis client cannot be nil for SessionRepo")
	}
	return &SessionRepo{
		client: client,
		ttl:    ttl,
	}, nil
}

// Save сохраняет снапшот игры, продлевая TTL сессии
func (r *SessionRepo) Save(ctx context.Context, sessionID string, game *entity.TriviaGame) error {
	data, err := json.Marshal(game)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, sessionKey(sessionID), data, r.ttl).Err()
}

// Load читает снапшот игры; для отсутствующей или истекшей сессии
// возвращает apperrors.ErrNotFound
func (r *SessionRepo) Load(ctx context.Context, sessionID string) (*entity.TriviaGame, error) {
	data, err := r.client.Get(ctx, sessionKey(sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}

	game := entity.NewTriviaGame()
	if err := json.Unmarshal(data, game); err != nil {
		return nil, err
	}
	return game, nil
}

// Delete удаляет снапшот игры
func (r *SessionRepo) Delete(ctx context.Context, sessionID string) error {
	return r.client.Del(ctx, sessionKey(sessionID)).Err()
}

func sessionKey(sessionID string) string {
	return sessionKeyPrefix + sessionID
}
