package main

import (
	"context"
	"flag"

	"github.com/google/uuid"

	"reelmatch/internal/domain/entity"
	"reelmatch/internal/errors"
)

func (a *app) runProfile(ctx context.Context, args []string) error {
	cmd := flag.NewFlagSet("profile", flag.ExitOnError)
	rawUser := cmd.String("user", "", "User id (defaults to the current account)")
	if err := cmd.Parse(args); err != nil {
		return errors.Wrap(err, "failed to parse profile flags")
	}

	var userID uuid.UUID
	if *rawUser != "" {
		parsed, err := uuid.Parse(*rawUser)
		if err != nil {
			return errors.Wrap(err, "invalid user id")
		}
		userID = parsed
	} else {
		me, err := a.client.CurrentUser(ctx)
		if err != nil {
			return err
		}
		userID = me.ID
	}

	profile, err := a.client.Profile(ctx, userID)
	if err != nil {
		return err
	}

	return a.printJSON(profile)
}

func (a *app) runUpdateProfile(ctx context.Context, args []string) error {
	cmd := flag.NewFlagSet("update-profile", flag.ExitOnError)
	bio := cmd.String("bio", "", "Profile bio")
	location := cmd.String("location", "", "Location")
	avatar := cmd.String("avatar", "", "Avatar URL")
	birthdate := cmd.String("birthdate", "", "Birthdate (YYYY-MM-DD)")
	if err := cmd.Parse(args); err != nil {
		return errors.Wrap(err, "failed to parse update-profile flags")
	}

	var payload entity.ProfileUpdate
	if *bio != "" {
		payload.Bio = bio
	}
	if *location != "" {
		payload.Location = location
	}
	if *avatar != "" {
		payload.AvatarURL = avatar
	}
	if *birthdate != "" {
		payload.Birthdate = birthdate
	}

	me, err := a.client.CurrentUser(ctx)
	if err != nil {
		return err
	}

	profile, err := a.client.UpdateProfile(ctx, me.ID, payload)
	if err != nil {
		return err
	}

	return a.printJSON(profile)
}
