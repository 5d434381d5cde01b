package http

import (
	"net/url"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/bytedance/sonic"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/njprem/thirdplace_finder_web/internal/logging"
)

const (
	requestBodyLogKey  = "http.request.body.summary"
	responseBodyLogKey = "http.response.body.summary"
	maxLoggedBody      = 2048
	maxLoggedKeys      = 12
)

var redactedKeys = []string{"password", "secret", "token"}

func registerLogging(e *echo.Echo, logger *zap.Logger) {
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			reqID := c.Response().Header().Get(echo.HeaderXRequestID)
			scoped := logger.With(zap.String("request_id", reqID))
			req := c.Request()
			c.SetRequest(req.WithContext(logging.WithLogger(req.Context(), scoped)))
			return next(c)
		}
	})

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogLatency:   true,
		LogError:     true,
		LogRequestID: true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("request_id", v.RequestID),
				zap.String("browser_id", browserIDOrAnonymous(c)),
				zap.Int64("latency_ms", v.Latency.Milliseconds()),
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
			}
			if summary := c.Get(requestBodyLogKey); summary != nil {
				fields = append(fields, zap.Any("request_body", summary))
			}
			if summary := c.Get(responseBodyLogKey); summary != nil {
				fields = append(fields, zap.Any("response_body", summary))
			}
			if v.Error != nil {
				fields = append(fields, zap.Error(v.Error))
			}

			switch {
			case v.Status >= 500:
				logger.Error("request", fields...)
			case v.Status >= 400:
				logger.Warn("request", fields...)
			default:
				logger.Info("request", fields...)
			}
			return nil
		},
	}))

	e.Use(middleware.BodyDumpWithConfig(middleware.BodyDumpConfig{
		Skipper: func(c echo.Context) bool {
			return c.Path() == favoriteEventsPath
		},
		Handler: func(c echo.Context, reqBody, resBody []byte) {
			if summary := sanitizeBody(reqBody, c.Request().Header.Get(echo.HeaderContentType)); summary != nil {
				c.Set(requestBodyLogKey, summary)
			}
			if summary := sanitizeBody(resBody, c.Response().Header().Get(echo.HeaderContentType)); summary != nil {
				c.Set(responseBodyLogKey, summary)
			}
		},
	}))
}

func browserIDOrAnonymous(c echo.Context) string {
	if id := BrowserID(c); id != "" {
		return id
	}
	return "anonymous"
}

// sanitizeBody reduces a body to something safe and small enough to log.
// Rendered pages are reported by size only.
func sanitizeBody(body []byte, contentType string) interface{} {
	if len(body) == 0 {
		return nil
	}
	lowered := strings.ToLower(strings.TrimSpace(contentType))

	switch {
	case strings.HasPrefix(lowered, "text/html"):
		return map[string]interface{}{"_html_bytes": len(body)}
	case strings.HasPrefix(lowered, "application/json"):
		var data interface{}
		if err := sonic.Unmarshal(body, &data); err == nil {
			return limitSize(sanitizeJSON(data, ""))
		}
	case strings.HasPrefix(lowered, "application/x-www-form-urlencoded"):
		if values, err := url.ParseQuery(string(body)); err == nil && len(values) > 0 {
			fields := make(map[string]interface{}, len(values))
			for key, vals := range values {
				lowerKey := strings.ToLower(key)
				items := make([]interface{}, 0, len(vals))
				for _, v := range vals {
					items = append(items, sanitizeString(v, lowerKey))
				}
				if len(items) == 1 {
					fields[key] = items[0]
				} else {
					fields[key] = items
				}
			}
			return limitSize(fields)
		}
	}

	if containsBinaryBytes(body) {
		return "binary"
	}
	return clampString(string(body))
}

func sanitizeJSON(value interface{}, keyHint string) interface{} {
	switch v := value.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(v))
		for key, val := range v {
			out[key] = sanitizeJSON(val, strings.ToLower(key))
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(v))
		for i, item := range v {
			out[i] = sanitizeJSON(item, keyHint)
		}
		return out
	case string:
		return sanitizeString(v, keyHint)
	default:
		return v
	}
}

func sanitizeString(value, keyHint string) string {
	if isRedacted(keyHint) {
		return "redacted"
	}
	if containsBinaryBytes([]byte(value)) {
		return "binary"
	}
	return clampString(value)
}

func isRedacted(key string) bool {
	if key == "" {
		return false
	}
	for _, marker := range redactedKeys {
		if strings.Contains(key, marker) {
			return true
		}
	}
	return false
}

// limitSize keeps small payloads intact and replaces large ones with the
// first few keys or items.
func limitSize(value interface{}) interface{} {
	buf, err := sonic.Marshal(value)
	if err != nil || len(buf) <= maxLoggedBody {
		return value
	}
	switch v := value.(type) {
	case map[string]interface{}:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		if len(keys) > maxLoggedKeys {
			keys = keys[:maxLoggedKeys]
		}
		preview := make(map[string]interface{}, len(keys))
		for _, k := range keys {
			if s, ok := v[k].(string); ok {
				preview[k] = clampString(s)
				continue
			}
			preview[k] = "...(omitted)..."
		}
		return map[string]interface{}{"_truncated": true, "_preview": preview, "_total_fields": len(v)}
	case []interface{}:
		return map[string]interface{}{"_truncated": true, "_total_items": len(v)}
	default:
		return map[string]interface{}{"_truncated": true}
	}
}

func containsBinaryBytes(data []byte) bool {
	for len(data) > 0 {
		r, size := utf8.DecodeRune(data)
		if r == utf8.RuneError && size == 1 {
			return true
		}
		if !unicode.IsPrint(r) && !unicode.IsSpace(r) {
			return true
		}
		data = data[size:]
	}
	return false
}

func clampString(value string) string {
	if len(value) <= maxLoggedBody {
		return value
	}
	truncated := value[:maxLoggedBody]
	for !utf8.ValidString(truncated) && len(truncated) > 0 {
		truncated = truncated[:len(truncated)-1]
	}
	return truncated + "...(truncated)"
}
