package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/njprem/thirdplace_finder_web/internal/util"
)

const flashCookieName = "flash"

const (
	FlashSuccess = "success"
	FlashError   = "error"
	FlashInfo    = "info"
)

type Flash struct {
	Kind    string
	Message string
}

// FlashStore carries one notice across a redirect in a short lived signed
// cookie.
type FlashStore struct {
	signer *util.JWTManager
	secure bool
}

func NewFlashStore(signer *util.JWTManager, secure bool) *FlashStore {
	return &FlashStore{signer: signer, secure: secure}
}

func (s *FlashStore) Set(c echo.Context, kind, message string) {
	if message == "" {
		return
	}
	token, err := s.signer.SignFlash(kind, message)
	if err != nil {
		c.Logger().Errorf("sign flash: %v", err)
		return
	}
	c.SetCookie(s.cookie(token, 60))
}

// Pop returns the pending notice, if any, and clears it.
func (s *FlashStore) Pop(c echo.Context) *Flash {
	cookie, err := c.Cookie(flashCookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}
	c.SetCookie(s.cookie("", -1))
	claims, err := s.signer.ParseFlash(cookie.Value)
	if err != nil {
		return nil
	}
	return &Flash{Kind: claims.Kind, Message: claims.Message}
}

func (s *FlashStore) cookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     flashCookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	}
}
