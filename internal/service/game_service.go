package service

import (
	"context"
	"errors"
	"log"

	"github.com/yourusername/trivia-game/internal/domain/entity"
	"github.com/yourusername/trivia-game/internal/domain/repository"
	apperrors "github.com/yourusername/trivia-game/internal/pkg/errors"
)

// QuestionProvider поставляет вопросы для новой игры
type QuestionProvider interface {
	FetchQuestions(ctx context.Context, amount int, category *int, difficulty string) ([]entity.Question, error)
}

// GameService реализует жизненный цикл одной игровой попытки поверх пары
// load-at-entry / save-at-exit вокруг каждого запроса. Известное
// ограничение: параллельные запросы одной сессии могут затереть изменения
// друг друга — блокировок нет, последний save выигрывает.
type GameService struct {
	sessionRepo  repository.GameSessionRepository
	provider     QuestionProvider
	timeLimitSec int
}

// NewGameService создает новый игровой сервис
func NewGameService(sessionRepo repository.GameSessionRepository, provider QuestionProvider, timeLimitSec int) *GameService {
	return &GameService{
		sessionRepo:  sessionRepo,
		provider:     provider,
		timeLimitSec: timeLimitSec,
	}
}

// StartGame сбрасывает предыдущую попытку, загружает вопросы у провайдера
// и сохраняет новую игру. При любой ошибке провайдера состояние не
// сохраняется: неудачный старт не оставляет частично созданной игры.
func (s *GameService) StartGame(ctx context.Context, sessionID string, amount int, category *int, difficulty string) error {
	questions, err := s.provider.FetchQuestions(ctx, amount, category, difficulty)
	if err != nil {
		log.Printf("[GameService] Не удалось загрузить вопросы (amount=%d): %v", amount, err)
		return err
	}

	game := entity.NewTriviaGame()
	game.Start(questions)
	game.Category = category
	game.Difficulty = difficulty

	return s.sessionRepo.Save(ctx, sessionID, game)
}

// LoadGame восстанавливает игру из хранилища сессий.
// Отсутствующая или истекшая сессия трактуется как пустая игра
// (без вопросов, т.е. сразу завершённая) — это не ошибка.
func (s *GameService) LoadGame(ctx context.Context, sessionID string) (*entity.TriviaGame, error) {
	game, err := s.sessionRepo.Load(ctx, sessionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return entity.NewTriviaGame(), nil
		}
		return nil, err
	}
	return game, nil
}

// AnswerResult — итог проверки ответа для JSON-ответа обработчика
type AnswerResult struct {
	Correct  bool            `json:"correct"`
	Progress entity.Progress `json:"progress"`
	Complete bool            `json:"complete"`
}

// SubmitAnswer проверяет ответ текущего вопроса и, если игра ещё не
// завершена, переводит её к следующему вопросу и сохраняет снапшот.
// Progress снимается до сдвига индекса, а Complete выставляется только
// когда сессия уже была завершена к моменту проверки — поведение исходной
// версии сохранено.
func (s *GameService) SubmitAnswer(ctx context.Context, sessionID, answer string) (*AnswerResult, error) {
	game, err := s.LoadGame(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	result := &AnswerResult{
		Correct:  game.CheckAnswer(answer),
		Progress: game.GetProgress(),
	}

	if game.IsComplete() {
		result.Complete = true
		return result, nil
	}

	game.NextQuestion()
	if err := s.sessionRepo.Save(ctx, sessionID, game); err != nil {
		return nil, err
	}
	return result, nil
}

// TimeLeft возвращает оставшиеся секунды текущего вопроса по
// сконфигурированному лимиту
func (s *GameService) TimeLeft(game *entity.TriviaGame) int {
	return game.TimeLeft(s.timeLimitSec)
}
