package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/njprem/thirdplace_finder_web/internal/logging"
	"github.com/njprem/thirdplace_finder_web/internal/repository/ports"
	"github.com/njprem/thirdplace_finder_web/internal/service"
	"github.com/njprem/thirdplace_finder_web/internal/util"
)

const (
	contextBrowserKey   = "browser_id"
	contextFavoritesKey = "favorites"

	browserCookieName = "browser_id"
	cookieMaxAge      = 365 * 24 * time.Hour
)

// FavoritesResolver picks the favorites list that serves the current request.
type FavoritesResolver func(c echo.Context) *service.FavoriteService

// BrowserIdentity gives every browser a stable random id kept in a cookie.
// It scopes per-browser favorites and live updates.
func BrowserIdentity(secure bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := ""
			if cookie, err := c.Cookie(browserCookieName); err == nil {
				if parsed, err := uuid.Parse(strings.TrimSpace(cookie.Value)); err == nil {
					id = parsed.String()
				}
			}
			if id == "" {
				id = uuid.NewString()
				c.SetCookie(&http.Cookie{
					Name:     browserCookieName,
					Value:    id,
					Path:     "/",
					MaxAge:   int(cookieMaxAge.Seconds()),
					HttpOnly: true,
					Secure:   secure,
					SameSite: http.SameSiteLaxMode,
				})
			}
			c.Set(contextBrowserKey, id)
			return next(c)
		}
	}
}

func BrowserID(c echo.Context) string {
	id, _ := c.Get(contextBrowserKey).(string)
	return id
}

func WithFavorites(resolve FavoritesResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(contextFavoritesKey, resolve(c))
			return next(c)
		}
	}
}

func CurrentFavorites(c echo.Context) (*service.FavoriteService, bool) {
	favorites, ok := c.Get(contextFavoritesKey).(*service.FavoriteService)
	return favorites, ok && favorites != nil
}

// SharedFavorites serves one list to every browser, as when favorites live in
// Postgres, MinIO or process memory.
func SharedFavorites(favorites *service.FavoriteService) FavoritesResolver {
	return func(echo.Context) *service.FavoriteService {
		return favorites
	}
}

// CookieFavorites keeps each browser's list in a signed cookie. The service
// is built per request and scoped to the browser id.
func CookieFavorites(signer *util.JWTManager, hub *service.FavoriteHub, secure bool) FavoritesResolver {
	return func(c echo.Context) *service.FavoriteService {
		storage := &cookieFavoriteStorage{c: c, signer: signer, secure: secure}
		return service.NewFavoriteService(storage, hub, BrowserID(c))
	}
}

type cookieFavoriteStorage struct {
	c      echo.Context
	signer *util.JWTManager
	secure bool
}

func (s *cookieFavoriteStorage) Get(ctx context.Context, key string) ([]int64, error) {
	cookie, err := s.c.Cookie(key)
	if err != nil || strings.TrimSpace(cookie.Value) == "" {
		return nil, ports.ErrNotFound
	}
	ids, err := s.signer.ParseFavorites(cookie.Value)
	if err != nil {
		// A cookie we cannot verify reads as an empty list.
		logging.FromContext(ctx).Warn("discarding favorites cookie", zap.Error(err))
		return nil, nil
	}
	return ids, nil
}

func (s *cookieFavoriteStorage) Put(_ context.Context, key string, placeIDs []int64) error {
	token, err := s.signer.SignFavorites(placeIDs)
	if err != nil {
		return err
	}
	s.c.SetCookie(&http.Cookie{
		Name:     key,
		Value:    token,
		Path:     "/",
		MaxAge:   int(cookieMaxAge.Seconds()),
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}
