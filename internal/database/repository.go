package database

import (
	"github.com/uroom/uroom-server/internal/types"
)

// Storage keys mirrored by the session repository. These are the only
// two values the server persists; all domain collections live in memory.
const (
	UserKey      = "uroom_user"
	OnboardedKey = "uroom_onboarded"
)

// Session is the saved state restored at startup. User is nil when no
// user was saved or when the saved value could not be decoded.
type Session struct {
	User      *types.User
	Onboarded bool
}

type SessionRepository interface {
	Ping() error
	LoadSession() (Session, error)
	SaveUser(user types.User) error
	DeleteUser() error
	SaveOnboarded(onboarded bool) error
	Close() error
}
