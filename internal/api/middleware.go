package api

import (
	"net/http"
)

// errorHandler recovers panics from downstream handlers and converts
// them into a 500 response.
func (s *UroomApp) errorHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				s.log.Println("recovered from panic:", rec)
				errResp := NewInternalServerError(nil)
				s.writeJson(w, errResp.StatusCode, errResp)
			}
		}()

		next.ServeHTTP(w, r)
	})
}

// authMiddleware validates the session cookie and checks the token's
// user against the store's current user. A token left over from a
// previous session is rejected rather than silently acting as the new
// user.
func (s *UroomApp) authMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(tokenCookieKey)
		if err != nil {
			errResp := NewUnauthorizedError()
			s.writeJson(w, errResp.StatusCode, errResp)
			return
		}

		userId, err := s.extractUserIdFromToken(cookie.Value)
		if err != nil {
			s.log.Println("auth:", err)
			errResp := NewUnauthorizedError()
			s.writeJson(w, errResp.StatusCode, errResp)
			return
		}

		current, ok := s.store.CurrentUser()
		if !ok || current.Id != userId {
			errResp := NewUnauthorizedError()
			s.writeJson(w, errResp.StatusCode, errResp)
			return
		}

		w.Header().Set("Cache-Control", "no-store")
		next(w, r.WithContext(WithUserId(r.Context(), userId)))
	}
}

// onboardedMiddleware gates room and profile endpoints behind a
// completed profile, mirroring the client-side route guard.
func (s *UroomApp) onboardedMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !s.store.IsOnboarded() {
			errResp := NewForbiddenError()
			s.writeJson(w, errResp.StatusCode, errResp)
			return
		}

		next(w, r)
	}
}
