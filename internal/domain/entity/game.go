package entity

import "time"

// Progress — сводка позиции и счёта для отображения.
// Current — 1-базный номер текущего вопроса; после ответа на последний
// вопрос он может временно превышать Total (до редиректа на результат),
// вызывающий код обязан это допускать.
type Progress struct {
	Current int `json:"current"`
	Total   int `json:"total"`
	Score   int `json:"score"`
}

// TriviaGame — состояние одной игровой попытки.
// Значение целиком сериализуется в хранилище сессий в конце запроса и
// восстанавливается в начале следующего; между запросами ничего не живёт
// в памяти процесса.
//
// Инварианты:
//   - 0 <= CurrentIndex <= len(Questions), индекс только растёт;
//   - Score только растёт;
//   - игра завершена тогда и только тогда, когда CurrentIndex >= len(Questions)
//     (игра без вопросов завершена сразу);
//   - Questions не изменяются после загрузки.
type TriviaGame struct {
	Questions         []Question `json:"questions"`
	CurrentIndex      int        `json:"current_index"`
	Score             int        `json:"score"`
	TotalQuestions    int        `json:"total"`
	Category          *int       `json:"category"`
	Difficulty        string     `json:"difficulty"`
	QuestionStartedAt *time.Time `json:"start_time"`
}

// NewTriviaGame создает пустую (сброшенную) игру
func NewTriviaGame() *TriviaGame {
	g := &TriviaGame{}
	g.Reset()
	return g
}

// Reset полностью очищает состояние предыдущей попытки.
// Ни счёт, ни список вопросов не должны протекать между попытками.
func (g *TriviaGame) Reset() {
	g.Questions = nil
	g.CurrentIndex = 0
	g.Score = 0
	g.TotalQuestions = 0
	g.Category = nil
	g.Difficulty = ""
	g.QuestionStartedAt = nil
}

// Start устанавливает загруженные вопросы и запускает таймер первого
// вопроса. Провайдер может вернуть меньше вопросов, чем было запрошено —
// это допустимо, TotalQuestions всегда равен фактической длине списка.
func (g *TriviaGame) Start(questions []Question) {
	g.Questions = questions
	g.TotalQuestions = len(questions)
	g.CurrentIndex = 0
	g.Score = 0
	now := time.Now()
	g.QuestionStartedAt = &now
}

// CurrentQuestion возвращает представление текущего вопроса или nil,
// если текущего вопроса нет (индекс за пределами списка). Варианты
// ответов перемешиваются заново при каждом вызове.
func (g *TriviaGame) CurrentQuestion() *AnswerView {
	if g.CurrentIndex < 0 || g.CurrentIndex >= len(g.Questions) {
		return nil
	}
	return g.Questions[g.CurrentIndex].View()
}

// CheckAnswer сравнивает ответ с правильным ответом текущего вопроса
// (точное строковое равенство). Пустой ответ или исчерпанный индекс —
// false без побочных эффектов. Индекс не сдвигается: переход к следующему
// вопросу — отдельная операция NextQuestion.
//
// Повторный вызов для того же неотвеченного вопроса снова начислит очки —
// поведение исходной версии сохранено намеренно; HTTP-поток всегда
// сдвигает индекс сразу после проверки, поэтому из UI это недостижимо.
func (g *TriviaGame) CheckAnswer(answer string) bool {
	if answer == "" || g.CurrentIndex >= len(g.Questions) {
		return false
	}
	question := &g.Questions[g.CurrentIndex]
	if answer != question.CorrectAnswer {
		return false
	}
	g.Score += question.Points()
	return true
}

// NextQuestion сдвигает индекс на следующий вопрос и перезапускает таймер.
// Выход за границы здесь не проверяется: IsComplete и CurrentQuestion
// безопасно обрабатывают индекс, равный длине списка.
func (g *TriviaGame) NextQuestion() {
	g.CurrentIndex++
	now := time.Now()
	g.QuestionStartedAt = &now
}

// TimeLeft возвращает оставшиеся секунды на текущий вопрос (не меньше 0).
// Если таймер ещё не запущен, возвращается полный лимит. Значение
// информационное, для отображения обратного отсчёта: сервер не форсирует
// проигрыш по истечении времени.
func (g *TriviaGame) TimeLeft(limitSec int) int {
	if g.QuestionStartedAt == nil {
		return limitSec
	}
	elapsed := int(time.Since(*g.QuestionStartedAt).Seconds())
	if left := limitSec - elapsed; left > 0 {
		return left
	}
	return 0
}

// IsComplete сообщает, отвечены ли все вопросы
func (g *TriviaGame) IsComplete() bool {
	return g.CurrentIndex >= len(g.Questions)
}

// GetProgress возвращает сводку позиции и счёта
func (g *TriviaGame) GetProgress() Progress {
	return Progress{
		Current: g.CurrentIndex + 1,
		Total:   g.TotalQuestions,
		Score:   g.Score,
	}
}
