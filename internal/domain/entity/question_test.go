package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuestion_Points(t *testing.T) {
	// Двухуровневое умолчание сохранено из исходной версии: отсутствующая
	// сложность считается "medium" (2 очка), а присутствующая, но
	// нераспознанная — даёт 1 очко.
	testCases := []struct {
		name       string
		difficulty string
		expected   int
	}{
		{"easy", DifficultyEasy, 1},
		{"medium", DifficultyMedium, 2},
		{"hard", DifficultyHard, 3},
		{"отсутствующая сложность — как medium", "", 2},
		{"нераспознанная сложность — 1 очко", "impossible", 1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			question := &Question{Difficulty: tc.difficulty}
			assert.Equal(t, tc.expected, question.Points())
		})
	}
}

func TestQuestion_View_ContainsAllAnswers(t *testing.T) {
	// Arrange
	question := &Question{
		Text:             "Столица Казахстана?",
		CorrectAnswer:    "Астана",
		IncorrectAnswers: []string{"Алматы", "Шымкент", "Караганда"},
	}

	// Act
	view := question.View()

	// Assert: множество ответов неизменно независимо от порядка
	require.NotNil(t, view)
	assert.Equal(t, question.Text, view.Text)
	assert.Equal(t, question.CorrectAnswer, view.Correct)
	assert.ElementsMatch(t, []string{"Астана", "Алматы", "Шымкент", "Караганда"}, view.Answers,
		"Представление должно содержать правильный ответ и все неправильные")
}

func TestQuestion_View_ReshufflesPerCall(t *testing.T) {
	// Порядок ответов — представление, вычисляемое при каждом чтении.
	// Два вызова могут дать разный порядок, но не обязаны; проверяем,
	// что на достаточном числе вызовов встречается более одного порядка.
	question := &Question{
		CorrectAnswer:    "A",
		IncorrectAnswers: []string{"B", "C", "D"},
	}

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		view := question.View()
		key := ""
		for _, answer := range view.Answers {
			key += answer
		}
		seen[key] = true
	}

	assert.Greater(t, len(seen), 1, "Перемешивание должно давать разные порядки ответов")
}

func TestQuestion_View_DoesNotMutateQuestion(t *testing.T) {
	// Arrange
	question := &Question{
		CorrectAnswer:    "A",
		IncorrectAnswers: []string{"B", "C", "D"},
	}

	// Act
	for i := 0; i < 10; i++ {
		question.View()
	}

	// Assert: вопрос неизменяем, перемешивается только копия
	assert.Equal(t, []string{"B", "C", "D"}, question.IncorrectAnswers,
		"View не должен изменять порядок неправильных ответов вопроса")
	assert.Equal(t, "A", question.CorrectAnswer)
}

func TestQuestion_View_SingleAnswer(t *testing.T) {
	// Вырожденный случай: вопрос без неправильных ответов
	question := &Question{CorrectAnswer: "A"}

	view := question.View()

	assert.Equal(t, []string{"A"}, view.Answers)
}
