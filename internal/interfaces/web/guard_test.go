package web_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fuenr/myteam-web/internal/interfaces/web"
)

func TestResolve(t *testing.T) {
	cases := []struct {
		name          string
		path          string
		authenticated bool
		want          web.Decision
	}{
		{"login sin sesión se sirve", "/login", false, web.Decision{Allow: true}},
		{"login con sesión rebota al dashboard", "/login", true, web.Decision{Redirect: "/dashboard"}},
		{"registro alcanzable sin sesión", "/register", false, web.Decision{Allow: true}},
		{"registro alcanzable con sesión", "/register", true, web.Decision{Allow: true}},
		{"subruta de registro alcanzable", "/register/company", false, web.Decision{Allow: true}},
		{"dashboard sin sesión rebota a login", "/dashboard", false, web.Decision{Redirect: "/login"}},
		{"dashboard con sesión se sirve", "/dashboard", true, web.Decision{Allow: true}},
		{"ficha de usuario protegida", "/users/abc", false, web.Decision{Redirect: "/login"}},
		{"ficha de usuario con sesión", "/users/abc", true, web.Decision{Allow: true}},
		{"vacaciones con sesión", "/vacations/new", true, web.Decision{Allow: true}},
		{"ruta desconocida sin sesión", "/loquesea", false, web.Decision{Redirect: "/login"}},
		{"ruta desconocida con sesión", "/loquesea", true, web.Decision{Redirect: "/dashboard"}},
		{"raíz sin sesión", "/", false, web.Decision{Redirect: "/login"}},
		{"raíz con sesión", "/", true, web.Decision{Redirect: "/dashboard"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, web.Resolve(tc.path, tc.authenticated))
		})
	}
}
