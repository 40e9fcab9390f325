package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/briangreenhill/questhub/igdb"
)

// commonOpts is what every command needs to talk to igdb
type commonOpts struct {
	ctx    context.Context
	client *igdb.Client
	out    io.Writer
}

type clientCommand interface {
	setCommon(commonOpts)
}

func (c *commonOpts) setCommon(o commonOpts) { *c = o }

func (c *commonOpts) print(v any) error {
	enc := json.NewEncoder(c.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

type searchCmd struct {
	commonOpts
	Limit int `long:"limit" short:"l" description:"max results, 0 for the default"`
	Args  struct {
		Query []string `positional-arg-name:"query" required:"1"`
	} `positional-args:"yes"`
}

func (s *searchCmd) Execute(_ []string) error {
	games, err := s.client.SearchGames(s.ctx, strings.Join(s.Args.Query, " "), s.Limit)
	if err != nil {
		return err
	}
	return s.print(games)
}

type popularCmd struct {
	commonOpts
	Limit int `long:"limit" short:"l" description:"max results, 0 for the default"`
}

func (p *popularCmd) Execute(_ []string) error {
	games, err := p.client.GetPopularGames(p.ctx, p.Limit)
	if err != nil {
		return err
	}
	return p.print(games)
}

type gameCmd struct {
	commonOpts
	Args struct {
		Ref string `positional-arg-name:"id|slug"`
	} `positional-args:"yes" required:"yes"`
}

func (g *gameCmd) Execute(_ []string) error {
	var (
		game *igdb.Game
		err  error
	)
	if id, convErr := strconv.ParseInt(g.Args.Ref, 10, 64); convErr == nil {
		game, err = g.client.GetGameByID(g.ctx, id)
	} else {
		game, err = g.client.GetGameBySlug(g.ctx, g.Args.Ref)
	}
	if err != nil {
		return err
	}
	if game == nil {
		return fmt.Errorf("game %q not found", g.Args.Ref)
	}
	return g.print(game)
}

type genresCmd struct {
	commonOpts
}

func (g *genresCmd) Execute(_ []string) error {
	genres, err := g.client.GetGenres(g.ctx)
	if err != nil {
		return err
	}
	return g.print(genres)
}

type platformsCmd struct {
	commonOpts
}

func (p *platformsCmd) Execute(_ []string) error {
	platforms, err := p.client.GetPlatforms(p.ctx)
	if err != nil {
		return err
	}
	return p.print(platforms)
}

type genreGamesCmd struct {
	commonOpts
	Limit int `long:"limit" short:"l" description:"max results, 0 for the default"`
	Args  struct {
		ID int64 `positional-arg-name:"genre-id"`
	} `positional-args:"yes" required:"yes"`
}

func (g *genreGamesCmd) Execute(_ []string) error {
	games, err := g.client.GetGamesByGenre(g.ctx, g.Args.ID, g.Limit)
	if err != nil {
		return err
	}
	return g.print(games)
}

type platformGamesCmd struct {
	commonOpts
	Limit int `long:"limit" short:"l" description:"max results, 0 for the default"`
	Args  struct {
		ID int64 `positional-arg-name:"platform-id"`
	} `positional-args:"yes" required:"yes"`
}

func (p *platformGamesCmd) Execute(_ []string) error {
	games, err := p.client.GetGamesByPlatform(p.ctx, p.Args.ID, p.Limit)
	if err != nil {
		return err
	}
	return p.print(games)
}

type queryCmd struct {
	commonOpts
	Args struct {
		Endpoint string   `positional-arg-name:"endpoint" required:"yes"`
		Payload  []string `positional-arg-name:"payload" required:"1"`
	} `positional-args:"yes"`
}

func (q *queryCmd) Execute(_ []string) error {
	raw, err := q.client.MakeCustomRequest(q.ctx, q.Args.Endpoint, strings.Join(q.Args.Payload, " "))
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return fmt.Errorf("format response: %w", err)
	}
	buf.WriteByte('\n')
	_, err = buf.WriteTo(q.out)
	return err
}

type cacheCmd struct {
	commonOpts
	Clear bool `long:"clear" description:"drop every cached response"`
}

func (c *cacheCmd) Execute(_ []string) error {
	if c.Clear {
		c.client.ClearCache()
	}
	return c.print(c.client.CacheStats())
}
