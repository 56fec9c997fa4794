package store

import (
	"slices"
	"strings"

	"github.com/uroom/uroom-server/internal/types"
)

// RoomFilter narrows the room listing. Zero-valued fields match
// everything; list fields match when any element matches.
type RoomFilter struct {
	Categories []types.Category
	Vibes      []types.VibeTag
	Roles      []types.Role
	Search     string
}

func (f RoomFilter) matches(room types.Room) bool {
	if len(f.Categories) > 0 && !slices.Contains(f.Categories, room.Category) {
		return false
	}

	if len(f.Vibes) > 0 {
		match := false
		for _, v := range room.VibeTags {
			if slices.Contains(f.Vibes, v) {
				match = true
				break
			}
		}
		if !match {
			return false
		}
	}

	if len(f.Roles) > 0 {
		match := false
		for _, r := range room.RolesNeeded {
			if slices.Contains(f.Roles, r) {
				match = true
				break
			}
		}
		if !match {
			return false
		}
	}

	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(room.Title), needle) &&
			!strings.Contains(strings.ToLower(room.Description), needle) {
			return false
		}
	}

	return true
}

// Rooms returns the rooms matching filter in collection order, i.e.
// most-recently-created first.
func (s *AppStore) Rooms(filter RoomFilter) []types.Room {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rooms := make([]types.Room, 0, len(s.rooms))
	for _, r := range s.rooms {
		if filter.matches(r) {
			rooms = append(rooms, r)
		}
	}
	return rooms
}

func (s *AppStore) RoomById(roomId string) (types.Room, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, r := range s.rooms {
		if r.Id == roomId {
			return r, true
		}
	}
	return types.Room{}, false
}

// RoomMembers returns the room's members in insertion order.
func (s *AppStore) RoomMembers(roomId string) []types.RoomMember {
	s.mu.RLock()
	defer s.mu.RUnlock()

	members := make([]types.RoomMember, 0)
	for _, m := range s.members {
		if m.RoomId == roomId {
			members = append(members, m)
		}
	}
	return members
}

// RoomMessages returns the room's messages in insertion (chronological)
// order.
func (s *AppStore) RoomMessages(roomId string) []types.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()

	messages := make([]types.Message, 0)
	for _, m := range s.messages {
		if m.RoomId == roomId {
			messages = append(messages, m)
		}
	}
	return messages
}

// RoomOutputs returns the room's outputs in insertion order.
func (s *AppStore) RoomOutputs(roomId string) []types.RoomOutput {
	s.mu.RLock()
	defer s.mu.RUnlock()

	outputs := make([]types.RoomOutput, 0)
	for _, o := range s.outputs {
		if o.RoomId == roomId {
			outputs = append(outputs, o)
		}
	}
	return outputs
}

// UserRooms returns the rooms the user is a member of, in room
// collection order (most-recently-created first, not join order).
func (s *AppStore) UserRooms(userId string) []types.Room {
	s.mu.RLock()
	defer s.mu.RUnlock()

	memberOf := make(map[string]struct{})
	for _, m := range s.members {
		if m.UserId == userId {
			memberOf[m.RoomId] = struct{}{}
		}
	}

	rooms := make([]types.Room, 0, len(memberOf))
	for _, r := range s.rooms {
		if _, ok := memberOf[r.Id]; ok {
			rooms = append(rooms, r)
		}
	}
	return rooms
}

// UserOutputs returns the outputs authored by the user in insertion
// order.
func (s *AppStore) UserOutputs(userId string) []types.RoomOutput {
	s.mu.RLock()
	defer s.mu.RUnlock()

	outputs := make([]types.RoomOutput, 0)
	for _, o := range s.outputs {
		if o.UserId == userId {
			outputs = append(outputs, o)
		}
	}
	return outputs
}

// IsUserInRoom reports whether the current user has a membership in the
// room. It is false when nobody is signed in.
func (s *AppStore) IsUserInRoom(roomId string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.currentUser == nil {
		return false
	}

	for _, m := range s.members {
		if m.RoomId == roomId && m.UserId == s.currentUser.Id {
			return true
		}
	}
	return false
}

func (s *AppStore) UserById(userId string) (types.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Id == userId {
			return u, true
		}
	}
	return types.User{}, false
}

func (s *AppStore) Users() []types.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]types.User(nil), s.users...)
}

// MissionTemplates returns the static pop-up room presets.
func (s *AppStore) MissionTemplates() []types.MissionTemplate {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]types.MissionTemplate(nil), s.templates...)
}
