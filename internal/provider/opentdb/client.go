package opentdb

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/yourusername/trivia-game/internal/domain/entity"
	apperrors "github.com/yourusername/trivia-game/internal/pkg/errors"
)

// Client — клиент Open Trivia DB (https://opentdb.com/api.php).
// Выполняется ровно одна попытка запроса без ретраев; повторный вызов —
// забота вызывающего кода.
type Client struct {
	apiURL     string
	httpClient *http.Client
}

// NewClient создает клиент провайдера вопросов
func NewClient(apiURL string, timeout time.Duration) *Client {
	return &Client{
		apiURL: apiURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// providerResponse — сырой ответ провайдера. response_code != 0 означает
// отказ (недопустимые фильтры, нехватка вопросов и т.п.).
type providerResponse struct {
	ResponseCode int              `json:"response_code"`
	Results      []providerRecord `json:"results"`
}

// providerRecord — запись вопроса в том виде, в котором её отдаёт провайдер.
// Все строки приходят в percent-кодировке (encode=url3986) и декодируются
// на этой границе в типизированный entity.Question.
type providerRecord struct {
	Question         string   `json:"question"`
	CorrectAnswer    string   `json:"correct_answer"`
	IncorrectAnswers []string `json:"incorrect_answers"`
	Difficulty       string   `json:"difficulty"`
}

// FetchQuestions запрашивает amount вопросов с множественным выбором,
// опционально фильтруя по категории и сложности. Провайдер может вернуть
// меньше вопросов, чем запрошено — это не ошибка.
func (c *Client) FetchQuestions(ctx context.Context, amount int, category *int, difficulty string) ([]entity.Question, error) {
	params := url.Values{}
	params.Set("amount", strconv.Itoa(amount))
	params.Set("type", "multiple")
	params.Set("encode", "url3986")
	if category != nil {
		params.Set("category", strconv.Itoa(*category))
	}
	if difficulty != "" {
		params.Set("difficulty", difficulty)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrProviderUnavailable, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	var payload providerResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", apperrors.ErrProviderUnavailable, err)
	}
	if payload.ResponseCode != 0 {
		return nil, fmt.Errorf("%w: response_code=%d", apperrors.ErrProviderRejected, payload.ResponseCode)
	}

	questions := make([]entity.Question, 0, len(payload.Results))
	for _, rec := range payload.Results {
		question, err := rec.toQuestion()
		if err != nil {
			return nil, fmt.Errorf("%w: malformed question record: %v", apperrors.ErrProviderUnavailable, err)
		}
		questions = append(questions, question)
	}
	return questions, nil
}

// toQuestion декодирует percent-кодировку полей записи и валидирует её
func (rec providerRecord) toQuestion() (entity.Question, error) {
	text, err := decodeField(rec.Question)
	if err != nil {
		return entity.Question{}, err
	}
	correct, err := decodeField(rec.CorrectAnswer)
	if err != nil {
		return entity.Question{}, err
	}
	if text == "" || correct == "" {
		return entity.Question{}, fmt.Errorf("question text and correct answer are required")
	}

	incorrect := make([]string, 0, len(rec.IncorrectAnswers))
	for _, raw := range rec.IncorrectAnswers {
		answer, err := decodeField(raw)
		if err != nil {
			return entity.Question{}, err
		}
		incorrect = append(incorrect, answer)
	}

	difficulty, err := decodeField(rec.Difficulty)
	if err != nil {
		return entity.Question{}, err
	}

	return entity.Question{
		Text:             text,
		CorrectAnswer:    correct,
		IncorrectAnswers: incorrect,
		Difficulty:       difficulty,
	}, nil
}

// decodeField снимает RFC 3986 percent-кодировку.
// PathUnescape, а не QueryUnescape: '+' в url3986 — литеральный символ.
func decodeField(raw string) (string, error) {
	return url.PathUnescape(raw)
}
