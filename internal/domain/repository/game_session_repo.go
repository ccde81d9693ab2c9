package repository

import (
	"context"

	"github.com/yourusername/trivia-game/internal/domain/entity"
)

// GameSessionRepository определяет методы хранения снапшотов игры между
// stateless HTTP-запросами. Хранилище трактуется как непрозрачный
// key-value store: один снапшот на идентификатор сессии.
//
// Load для отсутствующей сессии возвращает apperrors.ErrNotFound —
// вызывающий код трактует это как пустую (сразу завершённую) игру.
type GameSessionRepository interface {
	Save(ctx context.Context, sessionID string, game *entity.TriviaGame) error
	Load(ctx context.Context, sessionID string) (*entity.TriviaGame, error)
	Delete(ctx context.Context, sessionID string) error
}
