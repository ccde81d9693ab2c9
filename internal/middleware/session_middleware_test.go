package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSessionRouter(m *SessionMiddleware) (*gin.Engine, *string) {
	gin.SetMode(gin.TestMode)
	var capturedID string
	router := gin.New()
	router.Use(m.EnsureSession())
	router.GET("/", func(c *gin.Context) {
		capturedID = SessionID(c)
		c.Status(http.StatusOK)
	})
	return router, &capturedID
}

func TestSessionMiddleware_IssuesCookieForNewVisitor(t *testing.T) {
	// Arrange
	m := NewSessionMiddleware("trivia_session", []byte("test-key"), time.Hour, false)
	router, capturedID := newSessionRouter(m)

	// Act
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	// Assert
	assert.NotEmpty(t, *capturedID, "Новому посетителю должен выдаваться идентификатор сессии")

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1, "Новому посетителю должна выставляться кука")
	cookie := cookies[0]
	assert.Equal(t, "trivia_session", cookie.Name)
	assert.True(t, cookie.HttpOnly, "Сессионная кука должна быть HttpOnly")
	assert.NotEqual(t, *capturedID, cookie.Value,
		"В куке лежит подписанный токен, а не сырой идентификатор")
}

func TestSessionMiddleware_ReusesValidCookie(t *testing.T) {
	// Arrange: первый запрос получает куку
	m := NewSessionMiddleware("trivia_session", []byte("test-key"), time.Hour, false)
	router, capturedID := newSessionRouter(m)

	first := httptest.NewRecorder()
	router.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/", nil))
	firstID := *capturedID
	cookie := first.Result().Cookies()[0]

	// Act: второй запрос приносит ту же куку
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)
	second := httptest.NewRecorder()
	router.ServeHTTP(second, req)

	// Assert: идентификатор сессии стабилен между запросами
	assert.Equal(t, firstID, *capturedID, "Валидная кука должна сохранять идентификатор сессии")
	assert.Empty(t, second.Result().Cookies(), "Валидная кука не должна перевыпускаться")
}

func TestSessionMiddleware_RejectsTamperedCookie(t *testing.T) {
	// Arrange: кука подписана другим ключом
	issuer := NewSessionMiddleware("trivia_session", []byte("other-key"), time.Hour, false)
	issuerRouter, _ := newSessionRouter(issuer)
	rec := httptest.NewRecorder()
	issuerRouter.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	foreignCookie := rec.Result().Cookies()[0]

	m := NewSessionMiddleware("trivia_session", []byte("test-key"), time.Hour, false)
	router, capturedID := newSessionRouter(m)

	// Act
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(foreignCookie)
	second := httptest.NewRecorder()
	router.ServeHTTP(second, req)

	// Assert: чужая подпись — просто новая сессия, не ошибка
	assert.NotEmpty(t, *capturedID, "Невалидная кука должна приводить к новой сессии")
	require.Len(t, second.Result().Cookies(), 1, "Невалидная кука должна перевыпускаться")
}

func TestSessionMiddleware_RejectsGarbageCookie(t *testing.T) {
	// Arrange
	m := NewSessionMiddleware("trivia_session", []byte("test-key"), time.Hour, false)
	router, capturedID := newSessionRouter(m)

	// Act
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "trivia_session", Value: "not-a-jwt"})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	// Assert
	assert.NotEmpty(t, *capturedID, "Мусорная кука должна приводить к новой сессии")
	assert.Len(t, rec.Result().Cookies(), 1)
}
