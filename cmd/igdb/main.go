// cmd/igdb/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog"

	"github.com/briangreenhill/questhub/cache"
	"github.com/briangreenhill/questhub/igdb"
	"github.com/briangreenhill/questhub/internal/logging"
)

type options struct {
	ClientID     string        `long:"client-id" env:"IGDB_CLIENT_ID" description:"twitch client id"`
	ClientSecret string        `long:"client-secret" env:"IGDB_CLIENT_SECRET" description:"twitch client secret"`
	BaseURL      string        `long:"base-url" env:"IGDB_BASE_URL" default:"https://api.igdb.com/v4" description:"igdb api base url"`
	TokenURL     string        `long:"token-url" env:"IGDB_TOKEN_URL" default:"https://id.twitch.tv/oauth2/token" description:"twitch oauth2 token url"`
	CacheDir     string        `long:"cache-dir" env:"IGDB_CACHE_DIR" description:"persist responses on disk across runs (opt-in, default cache is in-process only)"`
	CacheTTL     time.Duration `long:"cache-ttl" env:"IGDB_CACHE_TTL" default:"5m" description:"response cache ttl"`
	Timeout      time.Duration `long:"timeout" default:"30s" description:"overall command timeout"`
	Dbg          bool          `long:"dbg" env:"DEBUG" description:"debug logging"`

	Search        searchCmd        `command:"search" description:"search games by name"`
	Popular       popularCmd       `command:"popular" description:"list highly rated games"`
	Game          gameCmd          `command:"game" description:"show one game by id or slug"`
	Genres        genresCmd        `command:"genres" description:"list genres"`
	Platforms     platformsCmd     `command:"platforms" description:"list platforms"`
	GenreGames    genreGamesCmd    `command:"genre-games" description:"list games of a genre"`
	PlatformGames platformGamesCmd `command:"platform-games" description:"list games on a platform"`
	Query         queryCmd         `command:"query" description:"send a raw apicalypse query"`
	Cache         cacheCmd         `command:"cache" description:"show or clear cached responses"`
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			fmt.Fprintln(os.Stdout, flagsErr.Message)
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// run parses args and executes the selected command, writing results to stdout
func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	var opts options
	p := flags.NewParser(&opts, flags.HelpFlag|flags.PassDoubleDash)
	p.CommandHandler = func(command flags.Commander, args []string) error {
		if command == nil {
			return nil
		}

		level := "warn"
		if opts.Dbg {
			level = "debug"
		}
		logger := logging.NewWithWriter(stderr, logging.Config{Format: "console", Level: level})

		c, ok := command.(clientCommand)
		if !ok {
			return command.Execute(args)
		}

		client, err := newClient(opts, logger)
		if err != nil {
			return err
		}

		cmdCtx, cancel := context.WithTimeout(ctx, opts.Timeout)
		defer cancel()

		c.setCommon(commonOpts{ctx: cmdCtx, client: client, out: stdout})
		return command.Execute(args)
	}

	_, err := p.ParseArgs(args)
	return err
}

func newClient(opts options, logger zerolog.Logger) (*igdb.Client, error) {
	clientOpts := []igdb.Option{
		igdb.WithBaseURL(opts.BaseURL),
		igdb.WithTokenURL(opts.TokenURL),
		igdb.WithCacheTTL(opts.CacheTTL),
		igdb.WithLogger(logger),
	}

	if opts.CacheDir != "" {
		fc, err := cache.NewFileCache(opts.CacheDir)
		if err != nil {
			return nil, fmt.Errorf("open cache dir: %w", err)
		}
		logger.Debug().Str("dir", fc.Dir()).Msg("using file cache")
		clientOpts = append(clientOpts, igdb.WithCache(fc))
	}

	return igdb.New(opts.ClientID, opts.ClientSecret, clientOpts...), nil
}
