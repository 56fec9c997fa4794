package api

import (
	"encoding/json"
	"net/http"

	"github.com/uroom/uroom-server/internal/stats"
	"github.com/uroom/uroom-server/internal/store"
	"github.com/uroom/uroom-server/internal/types"
)

type CreateRoomRequest struct {
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	Category        string   `json:"category"`
	VibeTags        []string `json:"vibe_tags"`
	RolesNeeded     []string `json:"roles_needed"`
	Date            string   `json:"date"`
	Time            string   `json:"time"`
	Location        string   `json:"location"`
	MaxParticipants int      `json:"max_participants"`
	IsPopUp         bool     `json:"is_pop_up"`
}

type JoinRequest struct {
	Role string `json:"role"`
}

type MessageRequest struct {
	Text string `json:"text"`
}

type OutputRequest struct {
	Title    string `json:"title"`
	Link     string `json:"link"`
	ImageUrl string `json:"image_url"`
}

func (s *UroomApp) writeJson(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Println("failed to write response:", err)
	}
}

func (s *UroomApp) listRooms(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	var filter store.RoomFilter
	for _, c := range query["category"] {
		filter.Categories = append(filter.Categories, types.Category(c))
	}
	for _, v := range query["vibe"] {
		filter.Vibes = append(filter.Vibes, types.VibeTag(v))
	}
	for _, ro := range query["role"] {
		filter.Roles = append(filter.Roles, types.Role(ro))
	}
	filter.Search = query.Get("q")

	s.writeJson(w, http.StatusOK, s.store.Rooms(filter))
}

func (s *UroomApp) createRoom(w http.ResponseWriter, r *http.Request) {
	var req CreateRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errResp := NewBadRequestError()
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	if req.Title == "" || req.Category == "" || len(req.RolesNeeded) == 0 {
		errResp := NewBadRequestError()
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	params := store.CreateRoomParams{
		Title:           req.Title,
		Description:     req.Description,
		Category:        types.Category(req.Category),
		Date:            req.Date,
		Time:            req.Time,
		Location:        req.Location,
		MaxParticipants: req.MaxParticipants,
		IsPopUp:         req.IsPopUp,
	}
	for _, v := range req.VibeTags {
		params.VibeTags = append(params.VibeTags, types.VibeTag(v))
	}
	for _, ro := range req.RolesNeeded {
		params.RolesNeeded = append(params.RolesNeeded, types.Role(ro))
	}

	room := s.store.CreateRoom(params)
	s.stats.Incr(stats.RoomsCreated)

	s.writeJson(w, http.StatusCreated, room)
}

func (s *UroomApp) getRoom(w http.ResponseWriter, r *http.Request) {
	room, ok := s.store.RoomById(r.PathValue("id"))
	if !ok {
		errResp := NewNotFoundError()
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	s.writeJson(w, http.StatusOK, room)
}

func (s *UroomApp) getRoomMembers(w http.ResponseWriter, r *http.Request) {
	roomId := r.PathValue("id")
	if _, ok := s.store.RoomById(roomId); !ok {
		errResp := NewNotFoundError()
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	s.writeJson(w, http.StatusOK, s.store.RoomMembers(roomId))
}

func (s *UroomApp) joinRoom(w http.ResponseWriter, r *http.Request) {
	roomId := r.PathValue("id")
	if _, ok := s.store.RoomById(roomId); !ok {
		errResp := NewNotFoundError()
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	var req JoinRequest
	if r.Body != nil {
		// role is optional, an empty or absent body means no role chosen
		json.NewDecoder(r.Body).Decode(&req)
	}

	member, res := s.store.JoinRoom(roomId, types.Role(req.Role))
	switch res {
	case store.OpApplied:
		s.stats.Incr(stats.MembersJoined)
		s.cs.NotifyMembership(roomId, member.User, true)
		s.writeJson(w, http.StatusCreated, member)
	case store.OpAlreadyMember:
		errResp := NewConflictError("already a member of this room")
		s.writeJson(w, errResp.StatusCode, errResp)
	default:
		errResp := NewUnauthorizedError()
		s.writeJson(w, errResp.StatusCode, errResp)
	}
}

func (s *UroomApp) leaveRoom(w http.ResponseWriter, r *http.Request) {
	roomId := r.PathValue("id")
	if _, ok := s.store.RoomById(roomId); !ok {
		errResp := NewNotFoundError()
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	user, _ := s.store.CurrentUser()
	if res := s.store.LeaveRoom(roomId); res != store.OpApplied {
		errResp := NewUnauthorizedError()
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	s.cs.NotifyMembership(roomId, user, false)
	w.WriteHeader(http.StatusNoContent)
}

func (s *UroomApp) getRoomMessages(w http.ResponseWriter, r *http.Request) {
	roomId := r.PathValue("id")
	if _, ok := s.store.RoomById(roomId); !ok {
		errResp := NewNotFoundError()
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	s.writeJson(w, http.StatusOK, s.store.RoomMessages(roomId))
}

func (s *UroomApp) sendMessage(w http.ResponseWriter, r *http.Request) {
	roomId := r.PathValue("id")
	if _, ok := s.store.RoomById(roomId); !ok {
		errResp := NewNotFoundError()
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	if !s.store.IsUserInRoom(roomId) {
		errResp := NewForbiddenError()
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	var req MessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Text == "" {
		errResp := NewBadRequestError()
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	message, res := s.store.SendMessage(roomId, req.Text)
	if res != store.OpApplied {
		errResp := NewUnauthorizedError()
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	s.stats.Incr(stats.MessagesSent)
	s.writeJson(w, http.StatusCreated, message)
}

func (s *UroomApp) getRoomOutputs(w http.ResponseWriter, r *http.Request) {
	roomId := r.PathValue("id")
	if _, ok := s.store.RoomById(roomId); !ok {
		errResp := NewNotFoundError()
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	s.writeJson(w, http.StatusOK, s.store.RoomOutputs(roomId))
}

func (s *UroomApp) addOutput(w http.ResponseWriter, r *http.Request) {
	roomId := r.PathValue("id")
	if _, ok := s.store.RoomById(roomId); !ok {
		errResp := NewNotFoundError()
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	if !s.store.IsUserInRoom(roomId) {
		errResp := NewForbiddenError()
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	var req OutputRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Title == "" || req.Link == "" {
		errResp := NewBadRequestError()
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	output, res := s.store.AddOutput(store.AddOutputParams{
		RoomId:   roomId,
		Title:    req.Title,
		Link:     req.Link,
		ImageUrl: req.ImageUrl,
	})
	if res != store.OpApplied {
		errResp := NewUnauthorizedError()
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	s.stats.Incr(stats.OutputsAdded)
	s.cs.NotifyOutput(output)
	s.writeJson(w, http.StatusCreated, output)
}

func (s *UroomApp) getUserRooms(w http.ResponseWriter, r *http.Request) {
	userId := r.PathValue("id")
	if _, ok := s.store.UserById(userId); !ok {
		errResp := NewNotFoundError()
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	s.writeJson(w, http.StatusOK, s.store.UserRooms(userId))
}

func (s *UroomApp) getUserOutputs(w http.ResponseWriter, r *http.Request) {
	userId := r.PathValue("id")
	if _, ok := s.store.UserById(userId); !ok {
		errResp := NewNotFoundError()
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	s.writeJson(w, http.StatusOK, s.store.UserOutputs(userId))
}

func (s *UroomApp) getTemplates(w http.ResponseWriter, _ *http.Request) {
	s.writeJson(w, http.StatusOK, s.store.MissionTemplates())
}
