package igdb

import "time"

// Game is a projection of the IGDB games schema (nullable fields as pointers).
// Only the fields a method asked for are populated. Rating is 0-100 and
// FirstReleaseDate is unix seconds.
type Game struct {
	ID                   int64               `json:"id"`
	Name                 string              `json:"name"`
	Slug                 string              `json:"slug"`
	Summary              *string             `json:"summary,omitempty"`
	Storyline            *string             `json:"storyline,omitempty"`
	Rating               *float64            `json:"rating,omitempty"`
	RatingCount          *int                `json:"rating_count,omitempty"`
	FirstReleaseDate     *int64              `json:"first_release_date,omitempty"`
	Cover                *Image              `json:"cover,omitempty"`
	Genres               []Genre             `json:"genres,omitempty"`
	Platforms            []Platform          `json:"platforms,omitempty"`
	Screenshots          []Image             `json:"screenshots,omitempty"`
	Videos               []Video             `json:"videos,omitempty"`
	AgeRatings           []AgeRating         `json:"age_ratings,omitempty"`
	GameModes            []GameMode          `json:"game_modes,omitempty"`
	PlayerPerspectives   []PlayerPerspective `json:"player_perspectives,omitempty"`
	Websites             []Website           `json:"websites,omitempty"`
	SimilarGames         []Game              `json:"similar_games,omitempty"`
	DLCs                 []Game              `json:"dlcs,omitempty"`
	Expansions           []Game              `json:"expansions,omitempty"`
	StandaloneExpansions []Game              `json:"standalone_expansions,omitempty"`
}

// ReleaseDate returns the first release date, false if unknown
func (g *Game) ReleaseDate() (time.Time, bool) {
	if g.FirstReleaseDate == nil {
		return time.Time{}, false
	}
	return time.Unix(*g.FirstReleaseDate, 0).UTC(), true
}

// ReleaseYear returns the first release year, 0 if unknown
func (g *Game) ReleaseYear() int {
	t, ok := g.ReleaseDate()
	if !ok {
		return 0
	}
	return t.Year()
}

// Image is a cover, screenshot or logo
type Image struct {
	ID      int64   `json:"id"`
	ImageID string  `json:"image_id"`
	URL     *string `json:"url,omitempty"`
	Width   *int    `json:"width,omitempty"`
	Height  *int    `json:"height,omitempty"`
}

// Genre represents an IGDB genre
type Genre struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Platform represents an IGDB platform
type Platform struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Slug         string  `json:"slug"`
	Abbreviation *string `json:"abbreviation,omitempty"`
	PlatformLogo *Image  `json:"platform_logo,omitempty"`
}

// Video is a YouTube video attached to a game
type Video struct {
	ID      int64   `json:"id"`
	Name    *string `json:"name,omitempty"`
	VideoID string  `json:"video_id"` // YouTube id
}

// AgeRating is a rating board classification (ESRB, PEGI, ...)
type AgeRating struct {
	ID       int64 `json:"id"`
	Category *int  `json:"category,omitempty"` // rating board
	Rating   *int  `json:"rating,omitempty"`   // board-specific rating enum
}

// GameMode represents single player, multiplayer, co-op, ...
type GameMode struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// PlayerPerspective represents first person, third person, ...
type PlayerPerspective struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Website is an external link for a game
type Website struct {
	ID       int64  `json:"id"`
	Category *int   `json:"category,omitempty"`
	URL      string `json:"url"`
	Trusted  *bool  `json:"trusted,omitempty"`
}

// CacheStats reports the current response cache contents
type CacheStats struct {
	Size int      `json:"size"`
	Keys []string `json:"keys"`
}
