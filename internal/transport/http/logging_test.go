package http

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSanitizeBody_FormRedactsSecrets(t *testing.T) {
	got := sanitizeBody([]byte("place_name=Blue+Bottle&api_token=abc"), "application/x-www-form-urlencoded")
	fields, ok := got.(map[string]interface{})
	require.True(t, ok)
	require.Equal(t, "Blue Bottle", fields["place_name"])
	require.Equal(t, "redacted", fields["api_token"])
}

func TestSanitizeBody_JSONNested(t *testing.T) {
	got := sanitizeBody([]byte(`{"favorites":[1,2],"session":{"secret":"x"}}`), "application/json; charset=UTF-8")
	fields, ok := got.(map[string]interface{})
	require.True(t, ok)
	require.Len(t, fields["favorites"], 2)
	require.Equal(t, map[string]interface{}{"secret": "redacted"}, fields["session"])
}

func TestSanitizeBody_HTMLReportsSizeOnly(t *testing.T) {
	body := []byte("<html><body>" + strings.Repeat("x", 100) + "</body></html>")
	got := sanitizeBody(body, "text/html; charset=UTF-8")
	require.Equal(t, map[string]interface{}{"_html_bytes": len(body)}, got)
}

func TestSanitizeBody_TruncatesLargePayloads(t *testing.T) {
	got := sanitizeBody([]byte(`{"note":"`+strings.Repeat("a", 3*maxLoggedBody)+`"}`), "application/json")
	fields, ok := got.(map[string]interface{})
	require.True(t, ok)
	require.Equal(t, true, fields["_truncated"])

	require.Nil(t, sanitizeBody(nil, "application/json"))
	require.Equal(t, "binary", sanitizeBody([]byte{0xff, 0xfe, 0x00}, "application/octet-stream"))
}

func TestNewTemplateRenderer_ParsesEveryPage(t *testing.T) {
	r, err := NewTemplateRenderer()
	require.NoError(t, err)
	for _, name := range pageTemplates {
		require.Contains(t, r.pages, name)
	}
	require.Error(t, r.Render(&strings.Builder{}, "missing", Page{}, nil))
}
