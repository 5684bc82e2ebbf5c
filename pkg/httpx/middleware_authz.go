package httpx

import (
	"net/http"
	"strings"
)

// RequireAnyRole gates a protected operation on a declared role allow-list.
// The caller must already be authenticated by AuthnMiddleware; a role
// outside the list is rejected with 403 before the handler runs.
func RequireAnyRole(allowed ...string) Middleware {
	want := make(map[string]struct{}, len(allowed))
	for _, role := range allowed {
		want[role] = struct{}{}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			have := RoleFromContext(r.Context())
			if _, ok := want[have]; !ok {
				writeRoleError(w, allowed...)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func writeRoleError(w http.ResponseWriter, allowed ...string) {
	w.Header().Set("WWW-Authenticate", `Bearer error="insufficient_scope", scope="`+strings.Join(allowed, " ")+`"`)
	WriteError(w, http.StatusForbidden, "forbidden", "insufficient permissions")
}
