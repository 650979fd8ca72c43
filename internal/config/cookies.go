package config

import (
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const SessionCookieName = "game_session"

type Cookies struct {
	Domain   string
	Path     string
	Secure   bool
	SameSite http.SameSite
	jwt      *JWT
}

type SessionClaims struct {
	GameSessionId int64 `json:"game_session_id"`
	jwt.RegisteredClaims
}

func NewSessionClaims(gameSessionId int64, lifetime time.Duration) *SessionClaims {
	now := time.Now()
	return &SessionClaims{
		GameSessionId: gameSessionId,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(lifetime)),
		},
	}
}

func parseSameSite(s string) (http.SameSite, error) {
	switch strings.ToUpper(s) {
	case "DEFAULT":
		return http.SameSiteDefaultMode, nil
	case "LAX":
		return http.SameSiteLaxMode, nil
	case "STRICT":
		return http.SameSiteStrictMode, nil
	case "NONE":
		return http.SameSiteNoneMode, nil
	default:
		return 0, fmt.Errorf("COOKIES_SAMESITE must be one of DEFAULT, LAX, STRICT, NONE")
	}
}

func NewCookies(j *JWT) (*Cookies, error) {
	development := Development()

	secure := !development
	if secureStr, ok := os.LookupEnv("COOKIES_SECURE"); ok {
		secure = secureStr != "0"
	}

	sameSite := http.SameSiteStrictMode
	if development {
		sameSite = http.SameSiteLaxMode
	}
	if sameSiteStr, ok := os.LookupEnv("COOKIES_SAMESITE"); ok {
		var err error
		if sameSite, err = parseSameSite(sameSiteStr); err != nil {
			return nil, err
		}
	}

	path := BasePath()
	if path == "" {
		path = "/"
	}

	cookies := &Cookies{
		Domain:   os.Getenv("COOKIES_DOMAIN"),
		Path:     path,
		Secure:   secure,
		SameSite: sameSite,
		jwt:      j,
	}

	return cookies, nil
}

func (c *Cookies) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Path:     c.Path,
		Value:    "delete",
		MaxAge:   -1,
		HttpOnly: true,
		Domain:   c.Domain,
		Secure:   c.Secure,
		SameSite: c.SameSite,
	})
}

func (c *Cookies) sessionCookie(gameSessionId int64) (*http.Cookie, error) {
	claims := NewSessionClaims(gameSessionId, c.jwt.tokenLifetime)
	token, err := c.jwt.Sign(claims)
	if err != nil {
		return nil, fmt.Errorf("unable to sign session token: %w", err)
	}
	cookie := &http.Cookie{
		Name:     SessionCookieName,
		Path:     c.Path,
		Value:    token,
		Expires:  claims.ExpiresAt.Time,
		HttpOnly: true,
		Domain:   c.Domain,
		Secure:   c.Secure,
		SameSite: c.SameSite,
	}
	return cookie, nil
}

// Refresh issues a new signed cookie binding the browser to the session.
func (c *Cookies) Refresh(w http.ResponseWriter, gameSessionId int64) error {
	cookie, err := c.sessionCookie(gameSessionId)
	if err != nil {
		return err
	}
	http.SetCookie(w, cookie)
	return nil
}

// RefreshHeader is [Cookies.Refresh] for responses whose headers are not
// written through a ResponseWriter, such as websocket handshakes.
func (c *Cookies) RefreshHeader(gameSessionId int64) (http.Header, error) {
	cookie, err := c.sessionCookie(gameSessionId)
	if err != nil {
		return nil, err
	}
	header := http.Header{}
	header.Add("Set-Cookie", cookie.String())
	return header, nil
}

func (c *Cookies) ParseSessionClaims(r *http.Request) (*SessionClaims, error) {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		return nil, err
	}
	token, err := c.jwt.ParseWithClaims(cookie.Value, &SessionClaims{})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*SessionClaims)
	if !ok {
		return nil, fmt.Errorf("malformed claims")
	}
	return claims, nil
}
