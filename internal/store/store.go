package store

import (
	"log"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/teris-io/shortid"

	"github.com/uroom/uroom-server/internal/database"
	"github.com/uroom/uroom-server/internal/types"
)

// OpResult reports the outcome of a mutation. Operations that the
// reference behavior silently swallowed (no current user, duplicate
// join) are explicit variants so callers and tests can assert on them.
type OpResult int

const (
	OpApplied OpResult = iota
	OpAlreadyMember
	OpNotAuthenticated
)

func (r OpResult) String() string {
	switch r {
	case OpApplied:
		return "applied"
	case OpAlreadyMember:
		return "already a member"
	case OpNotAuthenticated:
		return "not authenticated"
	default:
		return "unknown"
	}
}

// AppStore is the single source of truth for all domain collections and
// the authenticated identity. Every operation is atomic under the
// store's lock; queries are plain linear scans, which is plenty at this
// scale. Collections are append-only except members, which supports
// removal on leave.
type AppStore struct {
	log      *log.Logger
	sessions database.SessionRepository

	mu          sync.RWMutex
	currentUser *types.User
	onboarded   bool
	users       []types.User
	rooms       []types.Room
	members     []types.RoomMember
	messages    []types.Message
	outputs     []types.RoomOutput
	templates   []types.MissionTemplate
}

// NewAppStore populates the collections from seed and restores the
// saved session, if any. sessions may be nil, in which case nothing is
// persisted. A failed session load is recoverable: the store starts
// unauthenticated instead of aborting.
func NewAppStore(logger *log.Logger, sessions database.SessionRepository, seed Seed) *AppStore {
	s := &AppStore{
		log:       logger,
		sessions:  sessions,
		users:     append([]types.User(nil), seed.Users...),
		rooms:     append([]types.Room(nil), seed.Rooms...),
		members:   append([]types.RoomMember(nil), seed.Members...),
		messages:  append([]types.Message(nil), seed.Messages...),
		outputs:   append([]types.RoomOutput(nil), seed.Outputs...),
		templates: append([]types.MissionTemplate(nil), seed.Templates...),
	}

	if sessions != nil {
		sess, err := sessions.LoadSession()
		if err != nil {
			logger.Println("load session:", err)
		} else {
			s.currentUser = sess.User
			s.onboarded = sess.Onboarded
		}
	}

	return s
}

// Login authenticates by email only. The password is deliberately
// ignored: this is a demo auth stub, not a security mechanism. Unknown
// emails get a fresh user record, so the call always succeeds.
func (s *AppStore) Login(email, password string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.users {
		if s.users[i].Email == email {
			u := s.users[i]
			s.currentUser = &u
			s.persistUser()
			return true
		}
	}

	u := s.addUser(email)
	s.currentUser = &u
	s.onboarded = false
	s.persistUser()
	s.persistOnboarded()
	return true
}

// Signup registers a new user. It fails only when the email is already
// registered, leaving all state unchanged in that case.
func (s *AppStore) Signup(email, password string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.users {
		if s.users[i].Email == email {
			return false
		}
	}

	u := s.addUser(email)
	s.currentUser = &u
	s.onboarded = false
	s.persistUser()
	s.persistOnboarded()
	return true
}

// Logout clears the current user and the onboarded flag. Collections
// are untouched.
func (s *AppStore) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.currentUser = nil
	s.onboarded = false
	s.persistUser()
	s.persistOnboarded()
}

// ProfileParams carries the fields settable through onboarding.
type ProfileParams struct {
	Name         string
	Major        string
	Year         string
	Interests    []string
	Skills       []string
	PortfolioUrl string
}

// CompleteOnboarding applies the profile to the current user, mirrors
// it into the users collection and marks the session onboarded.
// Snapshots already taken on members, messages and outputs are not
// touched.
func (s *AppStore) CompleteOnboarding(params ProfileParams) (types.User, OpResult) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.currentUser == nil {
		return types.User{}, OpNotAuthenticated
	}

	s.currentUser.Name = params.Name
	s.currentUser.Major = params.Major
	s.currentUser.Year = params.Year
	s.currentUser.Interests = append([]string(nil), params.Interests...)
	s.currentUser.Skills = append([]string(nil), params.Skills...)
	s.currentUser.PortfolioUrl = params.PortfolioUrl

	for i := range s.users {
		if s.users[i].Id == s.currentUser.Id {
			s.users[i] = *s.currentUser
			break
		}
	}

	s.onboarded = true
	s.persistUser()
	s.persistOnboarded()

	return *s.currentUser, OpApplied
}

func (s *AppStore) CurrentUser() (types.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.currentUser == nil {
		return types.User{}, false
	}
	return *s.currentUser, true
}

func (s *AppStore) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currentUser != nil
}

func (s *AppStore) IsOnboarded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.onboarded
}

// addUser synthesizes a user for an email nobody has registered yet:
// name is the local part of the address, the avatar a deterministic
// placeholder keyed by email. Caller must hold the write lock.
func (s *AppStore) addUser(email string) types.User {
	name, _, _ := strings.Cut(email, "@")
	u := types.User{
		Id:        newId(),
		Name:      name,
		Email:     email,
		Interests: []string{},
		Skills:    []string{},
		Avatar:    "https://api.dicebear.com/7.x/avataaars/svg?seed=" + email,
	}

	s.users = append(s.users, u)
	return u
}

// persistUser mirrors the current-user key: written when set, deleted
// when cleared. Persistence failures are logged, never fatal.
func (s *AppStore) persistUser() {
	if s.sessions == nil {
		return
	}

	var err error
	if s.currentUser != nil {
		err = s.sessions.SaveUser(*s.currentUser)
	} else {
		err = s.sessions.DeleteUser()
	}
	if err != nil {
		s.log.Println("persist user:", err)
	}
}

func (s *AppStore) persistOnboarded() {
	if s.sessions == nil {
		return
	}

	if err := s.sessions.SaveOnboarded(s.onboarded); err != nil {
		s.log.Println("persist onboarded:", err)
	}
}

// newId returns a collision-resistant opaque identifier. The reference
// behavior derived ids from the wall clock, which collides under rapid
// successive calls (room creation immediately followed by the creator's
// auto-join); shortid fixes that.
func newId() string {
	id, err := shortid.Generate()
	if err != nil {
		return strconv.FormatInt(time.Now().UnixNano(), 10)
	}
	return id
}

func now() time.Time {
	return time.Now().UTC()
}
