package igdb

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

const (
	EndpointGames     = "games"
	EndpointGenres    = "genres"
	EndpointPlatforms = "platforms"
)

const (
	defaultSearchLimit = 10
	defaultListLimit   = 20
	genreListLimit     = 50
	platformListLimit  = 200
)

// Categories excluded from popular listings: dlc_addon, expansion, standalone_expansion
const nonBaseCategories = "(1,2,4)"

// Field lists per view. Each method asks only for what its view renders.
var (
	searchFields = []string{
		"id", "name", "slug", "rating", "first_release_date",
		"cover.image_id", "platforms.name", "platforms.abbreviation",
	}

	cardFields = []string{
		"id", "name", "slug", "summary", "rating", "rating_count", "first_release_date",
		"cover.image_id", "genres.name", "genres.slug", "platforms.name", "platforms.abbreviation",
	}

	detailFields = []string{
		"id", "name", "slug", "summary", "storyline", "rating", "rating_count", "first_release_date",
		"cover.image_id", "cover.width", "cover.height",
		"genres.name", "genres.slug",
		"platforms.name", "platforms.slug", "platforms.abbreviation",
		"screenshots.image_id", "screenshots.width", "screenshots.height",
		"videos.name", "videos.video_id",
		"age_ratings.category", "age_ratings.rating",
		"game_modes.name", "game_modes.slug",
		"player_perspectives.name", "player_perspectives.slug",
		"websites.category", "websites.url", "websites.trusted",
		"similar_games.name", "similar_games.slug", "similar_games.cover.image_id",
		"dlcs.name", "dlcs.slug", "dlcs.cover.image_id",
		"expansions.name", "expansions.slug", "expansions.cover.image_id",
		"standalone_expansions.name", "standalone_expansions.slug", "standalone_expansions.cover.image_id",
	}

	genreFields    = []string{"id", "name", "slug"}
	platformFields = []string{"id", "name", "slug", "abbreviation", "platform_logo.image_id"}
)

// SearchGames finds main games (no editions) matching a title, best rated first
func (c *Client) SearchGames(ctx context.Context, query string, limit int) ([]Game, error) {
	term := strings.TrimSpace(query)
	if term == "" {
		return nil, validationError("search query must not be empty")
	}

	q := NewQuery().
		Search(term).
		Fields(searchFields...).
		Where("category = 0", "version_parent = null").
		Sort("rating", Desc).
		Limit(clampLimit(limit, defaultSearchLimit))
	return c.games(ctx, q)
}

// GetPopularGames returns well-rated base games with more than 100 ratings
func (c *Client) GetPopularGames(ctx context.Context, limit int) ([]Game, error) {
	q := NewQuery().
		Fields(cardFields...).
		Where("rating_count > 100", "category != "+nonBaseCategories, "version_parent = null").
		Sort("rating", Desc).
		Limit(clampLimit(limit, defaultListLimit))
	return c.games(ctx, q)
}

// GetGameByID returns the game with the given id, or nil if there is none
func (c *Client) GetGameByID(ctx context.Context, id int64) (*Game, error) {
	if id <= 0 {
		return nil, validationError("game id must be a positive integer, got %d", id)
	}

	q := NewQuery().Fields(detailFields...).Where(fmt.Sprintf("id = %d", id)).Limit(1)
	return c.game(ctx, q)
}

// GetGameBySlug returns the game with the given slug, or nil if there is none
func (c *Client) GetGameBySlug(ctx context.Context, slug string) (*Game, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, validationError("slug must not be empty")
	}

	q := NewQuery().Fields(detailFields...).Where(`slug = "` + EscapeString(slug) + `"`).Limit(1)
	return c.game(ctx, q)
}

// GetGamesByGenre lists base games in a genre, best rated first
func (c *Client) GetGamesByGenre(ctx context.Context, genreID int64, limit int) ([]Game, error) {
	if genreID <= 0 {
		return nil, validationError("genre id must be a positive integer, got %d", genreID)
	}

	q := NewQuery().
		Fields(cardFields...).
		Where(fmt.Sprintf("genres = (%d)", genreID), "version_parent = null").
		Sort("rating", Desc).
		Limit(clampLimit(limit, defaultListLimit))
	return c.games(ctx, q)
}

// GetGamesByPlatform lists base games released on a platform, best rated first
func (c *Client) GetGamesByPlatform(ctx context.Context, platformID int64, limit int) ([]Game, error) {
	if platformID <= 0 {
		return nil, validationError("platform id must be a positive integer, got %d", platformID)
	}

	q := NewQuery().
		Fields(cardFields...).
		Where(fmt.Sprintf("platforms = (%d)", platformID), "version_parent = null").
		Sort("rating", Desc).
		Limit(clampLimit(limit, defaultListLimit))
	return c.games(ctx, q)
}

// GetGenres lists all genres by name
func (c *Client) GetGenres(ctx context.Context) ([]Genre, error) {
	q := NewQuery().Fields(genreFields...).Sort("name", Asc).Limit(genreListLimit)
	body, err := c.request(ctx, EndpointGenres, q.String())
	if err != nil {
		return nil, err
	}
	return decode[Genre](EndpointGenres, body)
}

// GetPlatforms lists all platforms by name
func (c *Client) GetPlatforms(ctx context.Context) ([]Platform, error) {
	q := NewQuery().Fields(platformFields...).Sort("name", Asc).Limit(platformListLimit)
	body, err := c.request(ctx, EndpointPlatforms, q.String())
	if err != nil {
		return nil, err
	}
	return decode[Platform](EndpointPlatforms, body)
}

func (c *Client) games(ctx context.Context, q *Query) ([]Game, error) {
	body, err := c.request(ctx, EndpointGames, q.String())
	if err != nil {
		return nil, err
	}
	return decode[Game](EndpointGames, body)
}

func (c *Client) game(ctx context.Context, q *Query) (*Game, error) {
	games, err := c.games(ctx, q)
	if err != nil {
		return nil, err
	}
	if len(games) == 0 {
		return nil, nil
	}
	return &games[0], nil
}

func decode[T any](endpoint string, body json.RawMessage) ([]T, error) {
	out := []T{}
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, &Error{Kind: ErrUpstream, Endpoint: endpoint, Msg: "decode response", Err: err}
	}
	return out, nil
}
