package store

import (
	"time"

	"github.com/uroom/uroom-server/internal/types"
)

// Seed holds the initial collections the store is bootstrapped with.
// Tests typically pass a zero Seed to start from an empty dataset.
type Seed struct {
	Users     []types.User
	Rooms     []types.Room
	Members   []types.RoomMember
	Messages  []types.Message
	Outputs   []types.RoomOutput
	Templates []types.MissionTemplate
}

func seedTime(s string) time.Time {
	t, _ := time.Parse(time.RFC3339, s)
	return t
}

// DefaultSeed returns the demo dataset the app ships with.
func DefaultSeed() Seed {
	users := []types.User{
		{
			Id:        "u-maya",
			Name:      "Maya Chen",
			Email:     "maya@state.edu",
			Major:     "Film Production",
			Year:      "Junior",
			Interests: []string{"Short films", "Documentaries", "Festivals"},
			Skills:    []string{"Director", "Editor"},
			Avatar:    "https://api.dicebear.com/7.x/avataaars/svg?seed=maya@state.edu",
		},
		{
			Id:           "u-dev",
			Name:         "Dev Patel",
			Email:        "dev@state.edu",
			Major:        "Computer Science",
			Year:         "Senior",
			Interests:    []string{"Hackathons", "Game jams", "Open source"},
			Skills:       []string{"Developer"},
			PortfolioUrl: "https://devpatel.dev",
			Avatar:       "https://api.dicebear.com/7.x/avataaars/svg?seed=dev@state.edu",
		},
		{
			Id:        "u-sam",
			Name:      "Sam Okafor",
			Email:     "sam@state.edu",
			Major:     "Graphic Design",
			Year:      "Sophomore",
			Interests: []string{"Branding", "Zines", "Photography"},
			Skills:    []string{"Designer", "Camera"},
			Avatar:    "https://api.dicebear.com/7.x/avataaars/svg?seed=sam@state.edu",
		},
	}

	rooms := []types.Room{
		{
			Id:              "r-shortfilm",
			Title:           "60-Second Horror Short",
			Description:     "One location, one actor, one hour of editing. Let's see what we can pull off before midterms.",
			Category:        types.CategoryFilmVideo,
			VibeTags:        []types.VibeTag{types.VibeChill, types.VibeBeginnerFriendly},
			RolesNeeded:     []types.Role{types.RoleActor, types.RoleCamera, types.RoleEditor},
			Date:            "2025-10-03",
			Time:            "7:00 PM",
			Location:        "Media Lab, Room 204",
			MaxParticipants: 5,
			CreatedBy:       "u-maya",
			CreatedAt:       seedTime("2025-09-28T18:30:00Z"),
		},
		{
			Id:              "r-hacknight",
			Title:           "API Mashup Hack Night",
			Description:     "Build something dumb and wonderful with public APIs. Pizza on me if we ship by 11.",
			Category:        types.CategoryHackathon,
			VibeTags:        []types.VibeTag{types.VibeSerious, types.VibePortfolioFocused},
			RolesNeeded:     []types.Role{types.RoleDeveloper, types.RoleDesigner},
			Date:            "2025-10-05",
			Time:            "6:00 PM",
			Location:        "Engineering Commons",
			MaxParticipants: 8,
			CreatedBy:       "u-dev",
			CreatedAt:       seedTime("2025-09-27T14:00:00Z"),
		},
		{
			Id:              "r-goldenhour",
			Title:           "Golden Hour Portrait Walk",
			Description:     "Portraits around the quad while the light is good. Bring any camera, phones count.",
			Category:        types.CategoryPhotography,
			VibeTags:        []types.VibeTag{types.VibeChill},
			RolesNeeded:     []types.Role{types.RoleCamera, types.RoleEditor},
			Date:            "2025-10-02",
			Time:            "5:30 PM",
			Location:        "Main Quad Fountain",
			MaxParticipants: 6,
			CreatedBy:       "u-sam",
			CreatedAt:       seedTime("2025-09-26T09:15:00Z"),
		},
	}

	members := []types.RoomMember{
		{Id: "m-1", RoomId: "r-shortfilm", UserId: "u-maya", User: users[0], JoinedAt: seedTime("2025-09-28T18:30:00Z")},
		{Id: "m-2", RoomId: "r-shortfilm", UserId: "u-sam", User: users[2], RoleChosen: types.RoleCamera, JoinedAt: seedTime("2025-09-28T20:10:00Z")},
		{Id: "m-3", RoomId: "r-hacknight", UserId: "u-dev", User: users[1], JoinedAt: seedTime("2025-09-27T14:00:00Z")},
		{Id: "m-4", RoomId: "r-goldenhour", UserId: "u-sam", User: users[2], JoinedAt: seedTime("2025-09-26T09:15:00Z")},
	}

	messages := []types.Message{
		{Id: "msg-1", RoomId: "r-shortfilm", UserId: "u-maya", User: users[0], Text: "Script is two pages, mostly screaming. Thoughts?", CreatedAt: seedTime("2025-09-28T19:00:00Z")},
		{Id: "msg-2", RoomId: "r-shortfilm", UserId: "u-sam", User: users[2], Text: "I can bring the gimbal if we're doing hallway shots.", CreatedAt: seedTime("2025-09-28T20:12:00Z")},
		{Id: "msg-3", RoomId: "r-hacknight", UserId: "u-dev", User: users[1], Text: "Leaning towards the transit API. Anyone know the campus shuttle feed?", CreatedAt: seedTime("2025-09-27T15:40:00Z")},
	}

	outputs := []types.RoomOutput{
		{
			Id:        "o-1",
			RoomId:    "r-goldenhour",
			UserId:    "u-sam",
			User:      users[2],
			Title:     "Quad portraits, first edit",
			Link:      "https://photos.example.edu/albums/golden-hour-01",
			CreatedAt: seedTime("2025-09-26T21:00:00Z"),
		},
	}

	templates := []types.MissionTemplate{
		{
			Id:             "t-short",
			Title:          "60-Minute Short Film",
			Category:       types.CategoryFilmVideo,
			Description:    "Write, shoot and cut a one-minute film in a single sitting.",
			SuggestedRoles: []types.Role{types.RoleDirector, types.RoleActor, types.RoleCamera, types.RoleEditor},
			SuggestedVibes: []types.VibeTag{types.VibeChill, types.VibeBeginnerFriendly},
		},
		{
			Id:             "t-photowalk",
			Title:          "Golden Hour Photo Walk",
			Category:       types.CategoryPhotography,
			Description:    "Chase the light around campus and swap edits after.",
			SuggestedRoles: []types.Role{types.RoleCamera, types.RoleEditor},
			SuggestedVibes: []types.VibeTag{types.VibeChill},
		},
		{
			Id:             "t-logosprint",
			Title:          "Logo Design Sprint",
			Category:       types.CategoryDesign,
			Description:    "Pick a fake brand, sketch ten marks, vote on one, polish it.",
			SuggestedRoles: []types.Role{types.RoleDesigner},
			SuggestedVibes: []types.VibeTag{types.VibePortfolioFocused},
		},
		{
			Id:             "t-minihack",
			Title:          "Two-Hour Mini Hackathon",
			Category:       types.CategoryTechCode,
			Description:    "One API, one feature, demo or it didn't happen.",
			SuggestedRoles: []types.Role{types.RoleDeveloper, types.RoleDesigner},
			SuggestedVibes: []types.VibeTag{types.VibeSerious},
		},
		{
			Id:             "t-openmic",
			Title:          "Flash Fiction Open Mic",
			Category:       types.CategoryWriting,
			Description:    "Everyone writes for 30 minutes, everyone reads, nobody apologizes.",
			SuggestedRoles: []types.Role{types.RoleWriter},
			SuggestedVibes: []types.VibeTag{types.VibeChill, types.VibeBeginnerFriendly},
		},
	}

	return Seed{
		Users:     users,
		Rooms:     rooms,
		Members:   members,
		Messages:  messages,
		Outputs:   outputs,
		Templates: templates,
	}
}
