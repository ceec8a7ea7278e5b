package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/uuid"

	"reelmatch/internal/domain/entity"
	"reelmatch/internal/errors"
)

func parseMovieID(raw string) (uuid.UUID, error) {
	if raw == "" {
		return uuid.Nil, errors.New("--id flag is required")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, errors.Wrap(err, "invalid movie id")
	}
	return id, nil
}

func (a *app) runMovies(ctx context.Context) error {
	movies, err := a.client.ListMovies(ctx)
	if err != nil {
		return err
	}

	return a.printJSON(movies)
}

func (a *app) runMovie(ctx context.Context, args []string) error {
	cmd := flag.NewFlagSet("movie", flag.ExitOnError)
	rawID := cmd.String("id", "", "Movie id")
	if err := cmd.Parse(args); err != nil {
		return errors.Wrap(err, "failed to parse movie flags")
	}

	id, err := parseMovieID(*rawID)
	if err != nil {
		return err
	}

	movie, err := a.client.GetMovie(ctx, id)
	if err != nil {
		return err
	}

	return a.printJSON(movie)
}

func (a *app) runAddMovie(ctx context.Context, args []string) error {
	cmd := flag.NewFlagSet("add-movie", flag.ExitOnError)
	title := cmd.String("title", "", "Movie title")
	overview := cmd.String("overview", "", "Short synopsis")
	releaseDate := cmd.String("release-date", "", "Release date (YYYY-MM-DD)")
	rating := cmd.Float64("rating", 0, "Rating from 0 to 10")
	if err := cmd.Parse(args); err != nil {
		return errors.Wrap(err, "failed to parse add-movie flags")
	}

	payload := entity.MovieCreate{Title: *title}
	if *overview != "" {
		payload.Overview = overview
	}
	if *releaseDate != "" {
		payload.ReleaseDate = releaseDate
	}
	if *rating > 0 {
		payload.Rating = rating
	}

	movie, err := a.client.CreateMovie(ctx, payload)
	if err != nil {
		return err
	}

	return a.printJSON(movie)
}

func (a *app) runUpdateMovie(ctx context.Context, args []string) error {
	cmd := flag.NewFlagSet("update-movie", flag.ExitOnError)
	rawID := cmd.String("id", "", "Movie id")
	title := cmd.String("title", "", "New title")
	overview := cmd.String("overview", "", "New synopsis")
	rating := cmd.Float64("rating", -1, "New rating from 0 to 10")
	if err := cmd.Parse(args); err != nil {
		return errors.Wrap(err, "failed to parse update-movie flags")
	}

	id, err := parseMovieID(*rawID)
	if err != nil {
		return err
	}

	var payload entity.MovieUpdate
	if *title != "" {
		payload.Title = title
	}
	if *overview != "" {
		payload.Overview = overview
	}
	if *rating >= 0 {
		payload.Rating = rating
	}

	movie, err := a.client.UpdateMovie(ctx, id, payload)
	if err != nil {
		return err
	}

	return a.printJSON(movie)
}

func (a *app) runDeleteMovie(ctx context.Context, args []string) error {
	cmd := flag.NewFlagSet("delete-movie", flag.ExitOnError)
	rawID := cmd.String("id", "", "Movie id")
	if err := cmd.Parse(args); err != nil {
		return errors.Wrap(err, "failed to parse delete-movie flags")
	}

	id, err := parseMovieID(*rawID)
	if err != nil {
		return err
	}

	if err := a.client.DeleteMovie(ctx, id); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "deleted")

	return nil
}

func (a *app) runRecommend(ctx context.Context, args []string) error {
	cmd := flag.NewFlagSet("recommend", flag.ExitOnError)
	limit := cmd.Int("limit", 20, "Maximum number of recommendations")
	if err := cmd.Parse(args); err != nil {
		return errors.Wrap(err, "failed to parse recommend flags")
	}

	movies, err := a.client.Recommendations(ctx, *limit)
	if err != nil {
		return err
	}

	return a.printJSON(movies)
}

func (a *app) runSwipe(ctx context.Context, args []string) error {
	cmd := flag.NewFlagSet("swipe", flag.ExitOnError)
	rawID := cmd.String("id", "", "Movie id")
	direction := cmd.String("direction", "like", "Swipe direction: like or dislike")
	if err := cmd.Parse(args); err != nil {
		return errors.Wrap(err, "failed to parse swipe flags")
	}

	id, err := parseMovieID(*rawID)
	if err != nil {
		return err
	}

	// swipes are recorded against the authenticated account
	user, err := a.client.CurrentUser(ctx)
	if err != nil {
		return err
	}

	if err := a.client.Swipe(ctx, id, user.ID, entity.SwipeDirection(*direction)); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "swiped %s\n", *direction)

	return nil
}

func (a *app) runFavorite(ctx context.Context, args []string) error {
	cmd := flag.NewFlagSet("favorite", flag.ExitOnError)
	rawID := cmd.String("id", "", "Movie id")
	remove := cmd.Bool("remove", false, "Remove the favorite mark instead")
	if err := cmd.Parse(args); err != nil {
		return errors.Wrap(err, "failed to parse favorite flags")
	}

	id, err := parseMovieID(*rawID)
	if err != nil {
		return err
	}

	if err := a.client.SetFavorite(ctx, id, !*remove); err != nil {
		return err
	}

	if *remove {
		fmt.Fprintln(a.out, "favorite removed")
	} else {
		fmt.Fprintln(a.out, "favorited")
	}

	return nil
}

func (a *app) runDislike(ctx context.Context, args []string) error {
	cmd := flag.NewFlagSet("dislike", flag.ExitOnError)
	rawID := cmd.String("id", "", "Movie id")
	remove := cmd.Bool("remove", false, "Remove the dislike mark instead")
	if err := cmd.Parse(args); err != nil {
		return errors.Wrap(err, "failed to parse dislike flags")
	}

	id, err := parseMovieID(*rawID)
	if err != nil {
		return err
	}

	if err := a.client.SetDislike(ctx, id, !*remove); err != nil {
		return err
	}

	if *remove {
		fmt.Fprintln(a.out, "dislike removed")
	} else {
		fmt.Fprintln(a.out, "disliked")
	}

	return nil
}

func (a *app) runStatus(ctx context.Context, args []string) error {
	cmd := flag.NewFlagSet("status", flag.ExitOnError)
	rawID := cmd.String("id", "", "Movie id")
	status := cmd.String("status", "", "Watch status, e.g. watched or watchlist")
	if err := cmd.Parse(args); err != nil {
		return errors.Wrap(err, "failed to parse status flags")
	}

	id, err := parseMovieID(*rawID)
	if err != nil {
		return err
	}
	if *status == "" {
		return errors.New("--status flag is required")
	}

	if err := a.client.UpdateStatus(ctx, id, *status); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "status set to %s\n", *status)

	return nil
}

func (a *app) runActivity(ctx context.Context) error {
	activity, err := a.client.Activity(ctx)
	if err != nil {
		return err
	}

	return a.printJSON(activity)
}

func (a *app) runCast(ctx context.Context, args []string) error {
	cmd := flag.NewFlagSet("cast", flag.ExitOnError)
	rawID := cmd.String("id", "", "Movie id")
	if err := cmd.Parse(args); err != nil {
		return errors.Wrap(err, "failed to parse cast flags")
	}

	id, err := parseMovieID(*rawID)
	if err != nil {
		return err
	}

	cast, err := a.client.Cast(ctx, id)
	if err != nil {
		return err
	}

	return a.printJSON(cast)
}
