package types

import (
	"time"
)

// Category classifies a room's creative mission.
type Category string

const (
	CategoryFilmVideo       Category = "Film & Video"
	CategoryPhotography     Category = "Photography"
	CategoryDesign          Category = "Design"
	CategoryTechCode        Category = "Tech & Code"
	CategoryWriting         Category = "Writing"
	CategoryMusicAudio      Category = "Music & Audio"
	CategoryPortfolioReview Category = "Portfolio Review"
	CategoryHackathon       Category = "Hackathon"
)

// VibeTag is a descriptive mood label attached to a room.
type VibeTag string

const (
	VibeChill            VibeTag = "Chill"
	VibeSerious          VibeTag = "Serious"
	VibeBeginnerFriendly VibeTag = "Beginner-friendly"
	VibePortfolioFocused VibeTag = "Portfolio-focused"
)

// Role is a contribution slot a room seeks to fill and a skill a user can claim.
type Role string

const (
	RoleActor     Role = "Actor"
	RoleCamera    Role = "Camera"
	RoleEditor    Role = "Editor"
	RoleDesigner  Role = "Designer"
	RoleDeveloper Role = "Developer"
	RoleWriter    Role = "Writer"
	RoleDirector  Role = "Director"
	RoleProducer  Role = "Producer"
)

type User struct {
	Id           string   `json:"id"`
	Name         string   `json:"name"`
	Email        string   `json:"email"`
	Major        string   `json:"major"`
	Year         string   `json:"year"`
	Interests    []string `json:"interests"`
	Skills       []string `json:"skills"`
	PortfolioUrl string   `json:"portfolio_url,omitempty"`
	Avatar       string   `json:"avatar,omitempty"`
}

type Room struct {
	Id              string    `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	Category        Category  `json:"category"`
	VibeTags        []VibeTag `json:"vibe_tags"`
	RolesNeeded     []Role    `json:"roles_needed"`
	Date            string    `json:"date"`
	Time            string    `json:"time"`
	Location        string    `json:"location"`
	MaxParticipants int       `json:"max_participants"`
	CreatedBy       string    `json:"created_by"`
	CreatedAt       time.Time `json:"created_at"`
	IsPopUp         bool      `json:"is_pop_up,omitempty"`
}

// RoomMember records a user's membership in a room. User is a snapshot
// taken at join time and is never updated retroactively.
type RoomMember struct {
	Id         string    `json:"id"`
	RoomId     string    `json:"room_id"`
	UserId     string    `json:"user_id"`
	User       User      `json:"user"`
	RoleChosen Role      `json:"role_chosen,omitempty"`
	JoinedAt   time.Time `json:"joined_at"`
}

type Message struct {
	Id        string    `json:"id"`
	RoomId    string    `json:"room_id"`
	UserId    string    `json:"user_id"`
	User      User      `json:"user"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

type RoomOutput struct {
	Id        string    `json:"id"`
	RoomId    string    `json:"room_id"`
	UserId    string    `json:"user_id"`
	User      User      `json:"user"`
	Title     string    `json:"title"`
	Link      string    `json:"link"`
	ImageUrl  string    `json:"image_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// MissionTemplate is a static preset used to pre-fill pop-up room creation.
type MissionTemplate struct {
	Id             string    `json:"id"`
	Title          string    `json:"title"`
	Category       Category  `json:"category"`
	Description    string    `json:"description"`
	SuggestedRoles []Role    `json:"suggested_roles"`
	SuggestedVibes []VibeTag `json:"suggested_vibes"`
}
