package main

import (
	"context"
	"flag"

	"github.com/google/uuid"

	"reelmatch/internal/errors"
)

func (a *app) runFriends(ctx context.Context) error {
	friends, err := a.client.Friends(ctx)
	if err != nil {
		return err
	}

	return a.printJSON(friends)
}

func (a *app) runRequests(ctx context.Context) error {
	requests, err := a.client.FriendRequests(ctx)
	if err != nil {
		return err
	}

	return a.printJSON(requests)
}

func (a *app) runAddFriend(ctx context.Context, args []string) error {
	cmd := flag.NewFlagSet("add-friend", flag.ExitOnError)
	rawUser := cmd.String("user", "", "User id to befriend")
	if err := cmd.Parse(args); err != nil {
		return errors.Wrap(err, "failed to parse add-friend flags")
	}
	if *rawUser == "" {
		return errors.New("--user flag is required")
	}

	addresseeID, err := uuid.Parse(*rawUser)
	if err != nil {
		return errors.Wrap(err, "invalid user id")
	}

	me, err := a.client.CurrentUser(ctx)
	if err != nil {
		return err
	}

	friend, err := a.client.CreateFriendRequest(ctx, me.ID, addresseeID)
	if err != nil {
		return err
	}

	return a.printJSON(friend)
}

func (a *app) runAccept(ctx context.Context, args []string) error {
	cmd := flag.NewFlagSet("accept", flag.ExitOnError)
	rawID := cmd.String("id", "", "Friend request id")
	if err := cmd.Parse(args); err != nil {
		return errors.Wrap(err, "failed to parse accept flags")
	}
	if *rawID == "" {
		return errors.New("--id flag is required")
	}

	friendshipID, err := uuid.Parse(*rawID)
	if err != nil {
		return errors.Wrap(err, "invalid friend request id")
	}

	friend, err := a.client.AcceptFriend(ctx, friendshipID)
	if err != nil {
		return err
	}

	return a.printJSON(friend)
}

func (a *app) runBlock(ctx context.Context, args []string) error {
	cmd := flag.NewFlagSet("block", flag.ExitOnError)
	rawID := cmd.String("id", "", "Friend relation id")
	if err := cmd.Parse(args); err != nil {
		return errors.Wrap(err, "failed to parse block flags")
	}
	if *rawID == "" {
		return errors.New("--id flag is required")
	}

	friendshipID, err := uuid.Parse(*rawID)
	if err != nil {
		return errors.Wrap(err, "invalid friend relation id")
	}

	friend, err := a.client.BlockFriend(ctx, friendshipID)
	if err != nil {
		return err
	}

	return a.printJSON(friend)
}

func (a *app) runSuggestions(ctx context.Context) error {
	suggestions, err := a.client.FriendSuggestions(ctx)
	if err != nil {
		return err
	}

	return a.printJSON(suggestions)
}
