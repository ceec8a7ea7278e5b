// reelmatch is the command line client for the ReelMatch API: auth,
// movie browsing and swiping, friends and profiles.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"reelmatch/config"
	"reelmatch/internal/client"
	"reelmatch/internal/domain/service"
	"reelmatch/internal/errors"
	"reelmatch/internal/infra/keystore"
	logs "reelmatch/internal/infra/log"
	"reelmatch/internal/infra/transport"
	"reelmatch/internal/session"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	app, err := newApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := runSubcommand(ctx, app); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// app bundles everything a subcommand needs.
type app struct {
	client *client.Client
	logger *slog.Logger
	out    io.Writer
}

func newApp() (*app, error) {
	cfg, err := config.New()
	if err != nil {
		// no config file around; defaults are enough for the CLI
		cfg = config.Default()
	}

	logger, err := logs.New(logs.Params{Config: cfg})
	if err != nil {
		return nil, err
	}

	// An empty path keeps tokens in memory for this process only.
	var store service.TokenStore
	if path := expandHome(cfg.TokenStore.Path); path != "" {
		store, err = keystore.NewFileStore(path)
		if err != nil {
			return nil, err
		}
	} else {
		store = keystore.NewMemoryStore()
	}

	sess := session.NewController(store, logger)
	go watchSession(sess)

	tr, err := transport.New(cfg, logger)
	if err != nil {
		return nil, err
	}

	return &app{
		client: client.New(tr, sess, logger),
		logger: logger,
		out:    os.Stdout,
	}, nil
}

// expandHome resolves a leading "~/" against the user's home directory so
// the shipped config can point at a per-user token file.
func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}

// watchSession prints a notice when the server rejects the stored
// credentials mid-command.
func watchSession(sess *session.Controller) {
	for event := range sess.Subscribe() {
		if event.Reason == session.ReasonUnauthorized {
			fmt.Fprintln(os.Stderr, "session expired, please log in again")
		}
	}
}

func runSubcommand(ctx context.Context, app *app) error {
	args := os.Args[2:]

	switch os.Args[1] {
	case "signup":
		return app.runSignup(ctx, args)
	case "login":
		return app.runLogin(ctx, args)
	case "logout":
		return app.runLogout()
	case "me":
		return app.runMe(ctx)
	case "refresh":
		return app.runRefresh(ctx)
	case "movies":
		return app.runMovies(ctx)
	case "movie":
		return app.runMovie(ctx, args)
	case "add-movie":
		return app.runAddMovie(ctx, args)
	case "update-movie":
		return app.runUpdateMovie(ctx, args)
	case "delete-movie":
		return app.runDeleteMovie(ctx, args)
	case "recommend":
		return app.runRecommend(ctx, args)
	case "swipe":
		return app.runSwipe(ctx, args)
	case "favorite":
		return app.runFavorite(ctx, args)
	case "dislike":
		return app.runDislike(ctx, args)
	case "status":
		return app.runStatus(ctx, args)
	case "activity":
		return app.runActivity(ctx)
	case "cast":
		return app.runCast(ctx, args)
	case "friends":
		return app.runFriends(ctx)
	case "requests":
		return app.runRequests(ctx)
	case "add-friend":
		return app.runAddFriend(ctx, args)
	case "accept":
		return app.runAccept(ctx, args)
	case "block":
		return app.runBlock(ctx, args)
	case "suggestions":
		return app.runSuggestions(ctx)
	case "profile":
		return app.runProfile(ctx, args)
	case "update-profile":
		return app.runUpdateProfile(ctx, args)
	default:
		printUsage()

		return errors.New("unknown subcommand")
	}
}

// printJSON renders command output as indented JSON.
func (a *app) printJSON(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")

	return errors.WithStack(enc.Encode(v))
}

func printUsage() {
	fmt.Println("Usage: reelmatch <command> [options]")
	fmt.Println("")
	fmt.Println("Auth:")
	fmt.Println("  signup          Create an account and sign in")
	fmt.Println("  login           Sign in with email and password")
	fmt.Println("  logout          Drop the stored tokens")
	fmt.Println("  me              Show the current account")
	fmt.Println("  refresh         Refresh the access token")
	fmt.Println("")
	fmt.Println("Movies:")
	fmt.Println("  movies          List the catalog")
	fmt.Println("  movie           Show one movie")
	fmt.Println("  add-movie       Add a movie to the catalog")
	fmt.Println("  update-movie    Change a movie's fields")
	fmt.Println("  delete-movie    Remove a movie")
	fmt.Println("  recommend       Show recommendations")
	fmt.Println("  swipe           Record a like/dislike swipe")
	fmt.Println("  favorite        Mark or unmark a favorite")
	fmt.Println("  dislike         Mark or unmark a dislike")
	fmt.Println("  status          Set a watch status")
	fmt.Println("  activity        Show your swipe history")
	fmt.Println("  cast            Show a movie's cast")
	fmt.Println("")
	fmt.Println("Friends:")
	fmt.Println("  friends         List your friends")
	fmt.Println("  requests        List pending friend requests")
	fmt.Println("  add-friend      Send a friend request")
	fmt.Println("  accept          Accept a friend request")
	fmt.Println("  block           Block a user")
	fmt.Println("  suggestions     Show people with similar taste")
	fmt.Println("")
	fmt.Println("Profiles:")
	fmt.Println("  profile         Show a profile")
	fmt.Println("  update-profile  Update your profile")
	fmt.Println("")
	fmt.Println("Use 'reelmatch <command> -h' for more information about a command.")
}
