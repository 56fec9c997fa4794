package store

import (
	"slices"

	"github.com/uroom/uroom-server/internal/types"
)

type CreateRoomParams struct {
	Title           string
	Description     string
	Category        types.Category
	VibeTags        []types.VibeTag
	RolesNeeded     []types.Role
	Date            string
	Time            string
	Location        string
	MaxParticipants int
	IsPopUp         bool
}

type AddOutputParams struct {
	RoomId   string
	Title    string
	Link     string
	ImageUrl string
}

// CreateRoom assigns an id and creation timestamp, prepends the room to
// the collection (most-recent-first ordering) and, when a user is
// signed in, auto-joins the creator with no chosen role.
func (s *AppStore) CreateRoom(params CreateRoomParams) types.Room {
	s.mu.Lock()
	defer s.mu.Unlock()

	room := types.Room{
		Id:              newId(),
		Title:           params.Title,
		Description:     params.Description,
		Category:        params.Category,
		VibeTags:        append([]types.VibeTag(nil), params.VibeTags...),
		RolesNeeded:     append([]types.Role(nil), params.RolesNeeded...),
		Date:            params.Date,
		Time:            params.Time,
		Location:        params.Location,
		MaxParticipants: params.MaxParticipants,
		CreatedAt:       now(),
		IsPopUp:         params.IsPopUp,
	}
	if s.currentUser != nil {
		room.CreatedBy = s.currentUser.Id
	}

	s.rooms = append([]types.Room{room}, s.rooms...)

	if s.currentUser != nil {
		s.members = append(s.members, types.RoomMember{
			Id:       newId(),
			RoomId:   room.Id,
			UserId:   s.currentUser.Id,
			User:     *s.currentUser,
			JoinedAt: now(),
		})
	}

	return room
}

// JoinRoom adds a membership for the current user, snapshotting the
// user record at join time. At most one membership may exist per
// (room, user); a duplicate join is reported, not applied.
func (s *AppStore) JoinRoom(roomId string, role types.Role) (types.RoomMember, OpResult) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.currentUser == nil {
		return types.RoomMember{}, OpNotAuthenticated
	}

	for i := range s.members {
		if s.members[i].RoomId == roomId && s.members[i].UserId == s.currentUser.Id {
			return types.RoomMember{}, OpAlreadyMember
		}
	}

	member := types.RoomMember{
		Id:         newId(),
		RoomId:     roomId,
		UserId:     s.currentUser.Id,
		User:       *s.currentUser,
		RoleChosen: role,
		JoinedAt:   now(),
	}
	s.members = append(s.members, member)

	return member, OpApplied
}

// LeaveRoom removes the current user's membership in the room, if any.
func (s *AppStore) LeaveRoom(roomId string) OpResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.currentUser == nil {
		return OpNotAuthenticated
	}

	s.members = slices.DeleteFunc(s.members, func(m types.RoomMember) bool {
		return m.RoomId == roomId && m.UserId == s.currentUser.Id
	})

	return OpApplied
}

// SendMessage appends a message snapshotting the current user.
func (s *AppStore) SendMessage(roomId, text string) (types.Message, OpResult) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.currentUser == nil {
		return types.Message{}, OpNotAuthenticated
	}

	msg := types.Message{
		Id:        newId(),
		RoomId:    roomId,
		UserId:    s.currentUser.Id,
		User:      *s.currentUser,
		Text:      text,
		CreatedAt: now(),
	}
	s.messages = append(s.messages, msg)

	return msg, OpApplied
}

// AddOutput appends a room output snapshotting the current user.
func (s *AppStore) AddOutput(params AddOutputParams) (types.RoomOutput, OpResult) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.currentUser == nil {
		return types.RoomOutput{}, OpNotAuthenticated
	}

	output := types.RoomOutput{
		Id:        newId(),
		RoomId:    params.RoomId,
		UserId:    s.currentUser.Id,
		User:      *s.currentUser,
		Title:     params.Title,
		Link:      params.Link,
		ImageUrl:  params.ImageUrl,
		CreatedAt: now(),
	}
	s.outputs = append(s.outputs, output)

	return output, OpApplied
}
