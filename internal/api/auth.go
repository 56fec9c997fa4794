package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt"

	"github.com/uroom/uroom-server/internal/stats"
	"github.com/uroom/uroom-server/internal/store"
	"github.com/uroom/uroom-server/internal/types"
)

const (
	defaultJwtExpiration = time.Hour * 24
	tokenCookieKey       = "token"

	userIdClaim = "user-id"
	expClaim    = "exp"
)

type contextKey string

const userIdKey contextKey = "user-id"

func UserId(ctx context.Context) (string, bool) {
	userId, ok := ctx.Value(userIdKey).(string)
	return userId, ok
}

func WithUserId(ctx context.Context, userId string) context.Context {
	return context.WithValue(ctx, userIdKey, userId)
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type OnboardingRequest struct {
	Name         string   `json:"name"`
	Major        string   `json:"major"`
	Year         string   `json:"year"`
	Interests    []string `json:"interests"`
	Skills       []string `json:"skills"`
	PortfolioUrl string   `json:"portfolio_url"`
}

// SessionResponse is what auth endpoints hand back: the current user
// plus the onboarded flag the router needs for its guards.
type SessionResponse struct {
	User      types.User `json:"user"`
	Onboarded bool       `json:"onboarded"`
}

// login sets the store's current user. The password is required to be
// present but is otherwise ignored; this mirrors the demo auth stub in
// the store.
func (s *UroomApp) login(w http.ResponseWriter, r *http.Request) {
	var lr LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&lr); err != nil {
		errResp := NewBadRequestError()
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	if lr.Email == "" || lr.Password == "" {
		errResp := NewBadRequestError()
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	s.store.Login(lr.Email, lr.Password)

	user, ok := s.store.CurrentUser()
	if !ok {
		errResp := NewInternalServerError(fmt.Errorf("no current user after login"))
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	token, err := s.createJwtForSession(user, defaultJwtExpiration)
	if err != nil {
		errResp := NewInternalServerError(err)
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	http.SetCookie(w, createJwtCookie(token, defaultJwtExpiration))
	s.stats.Incr(stats.SessionsStarted)

	s.writeJson(w, http.StatusOK, SessionResponse{
		User:      user,
		Onboarded: s.store.IsOnboarded(),
	})
}

func (s *UroomApp) register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errResp := NewBadRequestError()
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	if req.Email == "" || req.Password == "" {
		errResp := NewBadRequestError()
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	if !s.store.Signup(req.Email, req.Password) {
		errResp := NewConflictError("email already registered")
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	user, ok := s.store.CurrentUser()
	if !ok {
		errResp := NewInternalServerError(fmt.Errorf("no current user after signup"))
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	token, err := s.createJwtForSession(user, defaultJwtExpiration)
	if err != nil {
		errResp := NewInternalServerError(err)
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	http.SetCookie(w, createJwtCookie(token, defaultJwtExpiration))
	s.stats.Incr(stats.SessionsStarted)

	s.writeJson(w, http.StatusCreated, SessionResponse{
		User:      user,
		Onboarded: s.store.IsOnboarded(),
	})
}

func (s *UroomApp) session(w http.ResponseWriter, r *http.Request) {
	user, ok := s.store.CurrentUser()
	if !ok {
		errResp := NewUnauthorizedError()
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	s.writeJson(w, http.StatusOK, SessionResponse{
		User:      user,
		Onboarded: s.store.IsOnboarded(),
	})
}

func (s *UroomApp) logout(w http.ResponseWriter, _ *http.Request) {
	s.store.Logout()

	// instruct browser to delete cookie by overwriting it with an expired token
	http.SetCookie(w, createJwtCookie("", time.Duration(time.Unix(0, 0).Unix())))
	w.WriteHeader(http.StatusNoContent)
}

func (s *UroomApp) completeOnboarding(w http.ResponseWriter, r *http.Request) {
	var req OnboardingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errResp := NewBadRequestError()
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	if req.Name == "" || req.Major == "" || req.Year == "" {
		errResp := NewBadRequestError()
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	user, res := s.store.CompleteOnboarding(store.ProfileParams{
		Name:         req.Name,
		Major:        req.Major,
		Year:         req.Year,
		Interests:    req.Interests,
		Skills:       req.Skills,
		PortfolioUrl: req.PortfolioUrl,
	})
	if res != store.OpApplied {
		errResp := NewUnauthorizedError()
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	s.writeJson(w, http.StatusOK, SessionResponse{
		User:      user,
		Onboarded: true,
	})
}

func createJwtCookie(tokenString string, exp time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     tokenCookieKey,
		Value:    tokenString,
		Path:     "/",
		Expires:  time.Now().Add(exp),
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	}
}

func (s *UroomApp) createJwtForSession(user types.User, exp time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		userIdClaim: user.Id,
		expClaim:    time.Now().Add(exp).Unix(),
	})

	return token.SignedString(s.signingKey)
}

func (s *UroomApp) verifyToken(tokenString string) (*jwt.Token, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		return s.signingKey, nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	return token, nil
}

func (s *UroomApp) extractUserIdFromToken(tokenString string) (string, error) {
	token, err := s.verifyToken(tokenString)
	if err != nil {
		return "", fmt.Errorf("verify token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", fmt.Errorf("invalid token claims")
	}

	userId, ok := claims[userIdClaim].(string)
	if !ok || userId == "" {
		return "", fmt.Errorf("invalid user id claim")
	}

	return userId, nil
}
