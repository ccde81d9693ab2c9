package handler

import (
	"log"
	"net/http"
	"strconv"
	"strings"
	"unicode"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/trivia-game/internal/domain/entity"
	"github.com/yourusername/trivia-game/internal/middleware"
	"github.com/yourusername/trivia-game/internal/service"
)

// Categories — каталог категорий Open Trivia DB, отображаемый на стартовой
// странице. Идентификаторы соответствуют категориям провайдера.
var Categories = map[int]string{
	9:  "Общие знания",
	10: "Книги",
	11: "Фильмы",
	12: "Музыка",
	13: "Мюзиклы и театры",
	14: "Телевидение",
	15: "Видеоигры",
	17: "Наука и природа",
	18: "Компьютеры",
	19: "Математика",
	20: "Мифология",
	21: "Спорт",
	22: "География",
	23: "История",
	24: "Политика",
	25: "Искусство",
	26: "Знаменитости",
	27: "Животные",
	28: "Транспорт",
}

// GameHandler обрабатывает страницы и действия игры
type GameHandler struct {
	gameService      *service.GameService
	defaultQuestions int
}

// NewGameHandler создает новый обработчик игры
func NewGameHandler(gameService *service.GameService, defaultQuestions int) *GameHandler {
	return &GameHandler{
		gameService:      gameService,
		defaultQuestions: defaultQuestions,
	}
}

// Home отображает стартовую страницу с выбором категории, сложности
// и количества вопросов
func (h *GameHandler) Home(c *gin.Context) {
	c.HTML(http.StatusOK, "home.html", gin.H{
		"categories":       Categories,
		"defaultQuestions": h.defaultQuestions,
	})
}

// Start обрабатывает форму начала игры. Любая невалидность входных данных
// или отказ провайдера приводят к редиректу на стартовую страницу без
// создания игры.
func (h *GameHandler) Start(c *gin.Context) {
	sessionID := middleware.SessionID(c)

	amount := h.defaultQuestions
	if raw := c.PostForm("questions"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.Redirect(http.StatusFound, "/")
			return
		}
		amount = parsed
	}

	var category *int
	if raw := c.PostForm("category"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			c.Redirect(http.StatusFound, "/")
			return
		}
		category = &parsed
	}

	difficulty := c.PostForm("difficulty")
	if !isValidDifficulty(difficulty) {
		c.Redirect(http.StatusFound, "/")
		return
	}

	if err := h.gameService.StartGame(c.Request.Context(), sessionID, amount, category, difficulty); err != nil {
		log.Printf("[GameHandler] Не удалось начать игру: %v", err)
		c.Redirect(http.StatusFound, "/")
		return
	}

	c.Redirect(http.StatusFound, "/play")
}

// Play отображает текущий вопрос, прогресс и оставшееся время.
// Завершённая игра уводит на результат, отсутствующая — на старт.
func (h *GameHandler) Play(c *gin.Context) {
	sessionID := middleware.SessionID(c)

	game, err := h.gameService.LoadGame(c.Request.Context(), sessionID)
	if err != nil {
		log.Printf("[GameHandler] Не удалось загрузить игру: %v", err)
		c.Redirect(http.StatusFound, "/")
		return
	}

	if game.IsComplete() {
		c.Redirect(http.StatusFound, "/result")
		return
	}

	question := game.CurrentQuestion()
	if question == nil {
		c.Redirect(http.StatusFound, "/")
		return
	}

	// Правильный ответ остаётся на сервере: шаблон получает только
	// текст и перемешанные варианты.
	c.HTML(http.StatusOK, "play.html", gin.H{
		"question": question.Text,
		"answers":  question.Answers,
		"progress": game.GetProgress(),
		"timeLeft": h.gameService.TimeLeft(game),
	})
}

// Answer проверяет отправленный ответ и возвращает JSON с результатом
// и обновлённым прогрессом
func (h *GameHandler) Answer(c *gin.Context) {
	sessionID := middleware.SessionID(c)

	result, err := h.gameService.SubmitAnswer(c.Request.Context(), sessionID, c.PostForm("answer"))
	if err != nil {
		log.Printf("[GameHandler] Не удалось обработать ответ: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process answer"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// Result отображает итог завершённой игры; незавершённая игра
// возвращает игрока на текущий вопрос
func (h *GameHandler) Result(c *gin.Context) {
	sessionID := middleware.SessionID(c)

	game, err := h.gameService.LoadGame(c.Request.Context(), sessionID)
	if err != nil {
		log.Printf("[GameHandler] Не удалось загрузить игру: %v", err)
		c.Redirect(http.StatusFound, "/")
		return
	}

	if !game.IsComplete() {
		c.Redirect(http.StatusFound, "/play")
		return
	}

	c.HTML(http.StatusOK, "result.html", gin.H{
		"score":      game.Score,
		"total":      game.TotalQuestions,
		"category":   categoryName(game.Category),
		"difficulty": difficultyName(game.Difficulty),
	})
}

// isValidDifficulty проверяет значение фильтра сложности из формы;
// пустая строка означает "любая сложность"
func isValidDifficulty(difficulty string) bool {
	switch difficulty {
	case "", entity.DifficultyEasy, entity.DifficultyMedium, entity.DifficultyHard:
		return true
	default:
		return false
	}
}

// categoryName возвращает отображаемое имя категории
func categoryName(category *int) string {
	if category != nil {
		if name, ok := Categories[*category]; ok {
			return name
		}
	}
	return "Все категории"
}

// difficultyName возвращает отображаемое имя сложности
func difficultyName(difficulty string) string {
	if difficulty == "" {
		return "Любая"
	}
	return capitalize(difficulty)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	return string(unicode.ToUpper(runes[0])) + strings.ToLower(string(runes[1:]))
}
