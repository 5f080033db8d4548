package session

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_Issue_Attributes(t *testing.T) {
	m := NewManager(Config{Name: "shop_session"})

	c := m.Issue("tok-123")

	assert.Equal(t, "shop_session", c.Name)
	assert.Equal(t, "tok-123", c.Value)
	assert.Equal(t, PathAPI, c.Path)
	assert.Equal(t, 86400, c.MaxAge)
	assert.True(t, c.HttpOnly)
	assert.False(t, c.Secure)
	assert.Equal(t, http.SameSiteLaxMode, c.SameSite)
	assert.Empty(t, c.Domain)
}

func TestManager_Issue_DomainAndSecure(t *testing.T) {
	m := NewManager(Config{Name: "shop_session", Domain: ".shop.example.com", Secure: true})

	c := m.Issue("tok")

	assert.Equal(t, ".shop.example.com", c.Domain)
	assert.True(t, c.Secure)
}

func TestManager_Issue_WireFormat(t *testing.T) {
	m := NewManager(Config{Name: "shop_session"})

	w := httptest.NewRecorder()
	http.SetCookie(w, m.Issue("tok-123"))

	header := w.Header().Get("Set-Cookie")
	assert.Contains(t, header, "shop_session=tok-123")
	assert.Contains(t, header, "Path=/api")
	assert.Contains(t, header, "Max-Age=86400")
	assert.Contains(t, header, "HttpOnly")
	assert.Contains(t, header, "SameSite=Lax")
	assert.NotContains(t, header, "Domain=")
	assert.NotContains(t, header, "Secure")
}

func TestManager_Invalidate_WireFormat(t *testing.T) {
	m := NewManager(Config{Name: "shop_session"})

	w := httptest.NewRecorder()
	http.SetCookie(w, m.Invalidate(PathAPI))

	header := w.Header().Get("Set-Cookie")
	assert.Contains(t, header, "shop_session=;")
	assert.Contains(t, header, "Max-Age=0")
	assert.Contains(t, header, "Path=/api")
}

func TestManager_InvalidateAll_CoversBothPaths(t *testing.T) {
	m := NewManager(Config{Name: "shop_session"})

	cookies := m.InvalidateAll()
	require.Len(t, cookies, 2)

	paths := []string{cookies[0].Path, cookies[1].Path}
	assert.Contains(t, paths, PathAPI)
	assert.Contains(t, paths, PathRoot)
	for _, c := range cookies {
		assert.Empty(t, c.Value)
		assert.Negative(t, c.MaxAge)
	}
}

func TestManager_InvalidateAll_TwoSetCookieHeaders(t *testing.T) {
	m := NewManager(Config{Name: "shop_session"})

	w := httptest.NewRecorder()
	for _, c := range m.InvalidateAll() {
		http.SetCookie(w, c)
	}

	headers := w.Header().Values("Set-Cookie")
	require.Len(t, headers, 2)
	for _, h := range headers {
		assert.Contains(t, h, "Max-Age=0")
		assert.True(t, strings.HasPrefix(h, "shop_session=;"), "header %q", h)
	}
}

func TestManager_InvalidationMirrorsIssuanceAttributes(t *testing.T) {
	m := NewManager(Config{Name: "shop_session", Domain: ".shop.example.com", Secure: true})

	issued := m.Issue("tok")
	cleared := m.Invalidate(PathAPI)

	assert.Equal(t, issued.Name, cleared.Name)
	assert.Equal(t, issued.Domain, cleared.Domain)
	assert.Equal(t, issued.Secure, cleared.Secure)
	assert.Equal(t, issued.HttpOnly, cleared.HttpOnly)
	assert.Equal(t, issued.SameSite, cleared.SameSite)
}
