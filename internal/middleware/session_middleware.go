package middleware

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// Ключ контекста Gin, под которым EnsureSession сохраняет идентификатор сессии
const sessionContextKey = "session_id"

// SessionClaims — полезная нагрузка подписанной сессионной куки
type SessionClaims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

// SessionMiddleware выдает и проверяет подписанную (HS256) куку с
// идентификатором игровой сессии. Кука — единственный ключ к снапшоту
// игры в хранилище; невалидная, истекшая или отсутствующая кука не
// является ошибкой — игроку просто выдаётся новая сессия.
type SessionMiddleware struct {
	cookieName string
	signingKey []byte
	ttl        time.Duration
	secure     bool
}

// NewSessionMiddleware создает middleware игровых сессий
func NewSessionMiddleware(cookieName string, signingKey []byte, ttl time.Duration, secure bool) *SessionMiddleware {
	return &SessionMiddleware{
		cookieName: cookieName,
		signingKey: signingKey,
		ttl:        ttl,
		secure:     secure,
	}
}

// EnsureSession гарантирует наличие идентификатора сессии в контексте
// запроса, выписывая новую куку при необходимости
func (m *SessionMiddleware) EnsureSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := ""
		if raw, err := c.Cookie(m.cookieName); err == nil {
			sessionID = m.parseSessionID(raw)
		}

		if sessionID == "" {
			sessionID = uuid.NewString()
			if err := m.issueCookie(c, sessionID); err != nil {
				log.Printf("[SessionMiddleware] Не удалось выписать сессионную куку: %v", err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "session unavailable"})
				c.Abort()
				return
			}
		}

		c.Set(sessionContextKey, sessionID)
		c.Next()
	}
}

// parseSessionID проверяет подпись куки и извлекает идентификатор сессии.
// Любая невалидность (подпись, алгоритм, срок) возвращает пустую строку.
func (m *SessionMiddleware) parseSessionID(raw string) string {
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.signingKey, nil
	})
	if err != nil || !token.Valid {
		return ""
	}
	return claims.SessionID
}

// issueCookie подписывает идентификатор сессии и устанавливает куку
func (m *SessionMiddleware) issueCookie(c *gin.Context, sessionID string) error {
	now := time.Now()
	claims := &SessionClaims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.signingKey)
	if err != nil {
		return err
	}

	http.SetCookie(c.Writer, &http.Cookie{
		Name:     m.cookieName,
		Value:    signed,
		Path:     "/",
		MaxAge:   int(m.ttl.Seconds()),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// SessionID возвращает идентификатор сессии, установленный EnsureSession
func SessionID(c *gin.Context) string {
	return c.GetString(sessionContextKey)
}
