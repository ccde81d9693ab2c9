package entity

import (
	"math/rand"
)

// Уровни сложности, которые возвращает провайдер вопросов
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// Question представляет вопрос викторины, полученный от провайдера.
// Запись неизменяема после загрузки: порядок ответов — это представление,
// вычисляемое заново при каждом чтении (см. View), а не часть состояния.
type Question struct {
	Text             string   `json:"text"`
	CorrectAnswer    string   `json:"correct_answer"`
	IncorrectAnswers []string `json:"incorrect_answers"`
	Difficulty       string   `json:"difficulty"`
}

// AnswerView — эфемерное представление вопроса для страницы игры:
// текст и перемешанные варианты. Правильный ответ не покидает сервер,
// проверка выполняется только на стороне обработчика.
type AnswerView struct {
	Text    string
	Answers []string
	Correct string `json:"-"`
}

// View возвращает представление вопроса со свежеперемешанными вариантами
// (неправильные ответы + правильный). Перемешивание выполняется при каждом
// вызове и не кешируется в сессии.
func (q *Question) View() *AnswerView {
	answers := make([]string, 0, len(q.IncorrectAnswers)+1)
	answers = append(answers, q.IncorrectAnswers...)
	answers = append(answers, q.CorrectAnswer)
	rand.Shuffle(len(answers), func(i, j int) {
		answers[i], answers[j] = answers[j], answers[i]
	})
	return &AnswerView{
		Text:    q.Text,
		Answers: answers,
		Correct: q.CorrectAnswer,
	}
}

// Points возвращает стоимость вопроса по его сложности:
// easy=1, medium=2, hard=3. Двухуровневое умолчание сохранено из исходной
// версии: отсутствующая сложность считается "medium" (2 очка), а
// присутствующая, но нераспознанная, даёт 1 очко.
func (q *Question) Points() int {
	difficulty := q.Difficulty
	if difficulty == "" {
		difficulty = DifficultyMedium
	}
	switch difficulty {
	case DifficultyEasy:
		return 1
	case DifficultyMedium:
		return 2
	case DifficultyHard:
		return 3
	default:
		return 1
	}
}
