package stub

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reelmatch/internal/domain/entity"
)

func TestStore_UserLifecycle(t *testing.T) {
	s := NewStore()

	user, err := s.CreateUser("ada@example.com", "ada", "correct-horse-battery")
	require.NoError(t, err)
	assert.Equal(t, "ada", user.Username)

	// a default profile is created with the account
	profile, ok := s.Profile(user.ID)
	require.True(t, ok)
	assert.Equal(t, user.ID, profile.UserID)

	_, err = s.CreateUser("ada@example.com", "ada2", "another-password")
	assert.ErrorIs(t, err, ErrEmailTaken)

	_, err = s.Authenticate("ada@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	got, err := s.Authenticate("ada@example.com", "correct-horse-battery")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
}

func TestStore_SessionsAreOpaque(t *testing.T) {
	s := NewStore()
	user, err := s.CreateUser("ada@example.com", "ada", "correct-horse-battery")
	require.NoError(t, err)

	token := s.CreateSession(user.ID)
	require.NotEmpty(t, token)

	resolved, ok := s.ResolveSession(token)
	require.True(t, ok)
	assert.Equal(t, user.ID, resolved)

	_, ok = s.ResolveSession("unknown")
	assert.False(t, ok)
}

func TestStore_RecommendationsExcludeSeenMovies(t *testing.T) {
	s := NewStore()
	user, err := s.CreateUser("ada@example.com", "ada", "correct-horse-battery")
	require.NoError(t, err)

	movies := s.ListMovies()
	require.GreaterOrEqual(t, len(movies), 3)

	require.NoError(t, s.SetFavorite(user.ID, movies[0].ID, true))
	require.NoError(t, s.AddSwipe(user.ID, movies[1].ID, entity.SwipeDislike))

	recs := s.Recommendations(user.ID, 10)
	for _, rec := range recs {
		assert.NotEqual(t, movies[0].ID, rec.ID)
		assert.NotEqual(t, movies[1].ID, rec.ID)
	}
	require.NotEmpty(t, recs)

	// most popular first
	for i := 1; i < len(recs); i++ {
		require.NotNil(t, recs[i-1].Popularity)
		require.NotNil(t, recs[i].Popularity)
		assert.GreaterOrEqual(t, *recs[i-1].Popularity, *recs[i].Popularity)
	}
}

func TestStore_RecommendationsSortNilPopularityLast(t *testing.T) {
	s := NewStore()
	user, err := s.CreateUser("ada@example.com", "ada", "correct-horse-battery")
	require.NoError(t, err)

	unrated := s.CreateMovie(entity.MovieCreate{Title: "Unrated Premiere"})
	require.Nil(t, unrated.Popularity)
	chartTopper := s.CreateMovie(entity.MovieCreate{
		Title:      "Chart Topper",
		Popularity: ptr(999.0),
	})

	recs := s.Recommendations(user.ID, 0)
	require.NotEmpty(t, recs)

	assert.Equal(t, chartTopper.ID, recs[0].ID)
	assert.Equal(t, unrated.ID, recs[len(recs)-1].ID)
	for i := 1; i < len(recs); i++ {
		assert.GreaterOrEqual(t, popularityOf(recs[i-1]), popularityOf(recs[i]))
	}
}

func TestStore_FriendRelationIsUniquePerPair(t *testing.T) {
	s := NewStore()
	ada, err := s.CreateUser("ada@example.com", "ada", "correct-horse-battery")
	require.NoError(t, err)
	bob, err := s.CreateUser("bob@example.com", "bob", "hunter-two-electric")
	require.NoError(t, err)

	fr, err := s.CreateFriendRequest(ada.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.FriendPending, fr.Status)

	_, err = s.CreateFriendRequest(ada.ID, bob.ID)
	assert.ErrorIs(t, err, ErrRelationExists)

	// the reverse direction counts as the same relation
	_, err = s.CreateFriendRequest(bob.ID, ada.ID)
	assert.ErrorIs(t, err, ErrRelationExists)

	accepted, err := s.UpdateFriendStatus(fr.ID, entity.FriendAccepted)
	require.NoError(t, err)
	assert.Equal(t, entity.FriendAccepted, accepted.Status)
}

func TestStore_SuggestionsRankByOverlap(t *testing.T) {
	s := NewStore()
	movies := s.ListMovies()
	require.GreaterOrEqual(t, len(movies), 3)

	me, err := s.CreateUser("me@example.com", "me", "correct-horse-battery")
	require.NoError(t, err)
	twin, err := s.CreateUser("twin@example.com", "twin", "correct-horse-battery")
	require.NoError(t, err)
	stranger, err := s.CreateUser("odd@example.com", "odd", "correct-horse-battery")
	require.NoError(t, err)

	require.NoError(t, s.SetFavorite(me.ID, movies[0].ID, true))
	require.NoError(t, s.SetFavorite(me.ID, movies[1].ID, true))
	// twin shares both favorites, stranger shares one
	require.NoError(t, s.SetFavorite(twin.ID, movies[0].ID, true))
	require.NoError(t, s.SetFavorite(twin.ID, movies[1].ID, true))
	require.NoError(t, s.SetFavorite(stranger.ID, movies[0].ID, true))
	require.NoError(t, s.SetFavorite(stranger.ID, movies[2].ID, true))

	suggestions := s.Suggestions(me.ID)
	require.Len(t, suggestions, 2)
	assert.Equal(t, twin.ID, suggestions[0].UserID)
	assert.Equal(t, stranger.ID, suggestions[1].UserID)
	assert.Greater(t, suggestions[0].SimilarityScore, suggestions[1].SimilarityScore)
	assert.NotEmpty(t, suggestions[0].TopGenres)

	// an existing relation removes the candidate
	_, err = s.CreateFriendRequest(me.ID, twin.ID)
	require.NoError(t, err)
	suggestions = s.Suggestions(me.ID)
	require.Len(t, suggestions, 1)
	assert.Equal(t, stranger.ID, suggestions[0].UserID)
}

func TestStore_DeleteMovieClearsMarks(t *testing.T) {
	s := NewStore()
	user, err := s.CreateUser("ada@example.com", "ada", "correct-horse-battery")
	require.NoError(t, err)

	movie := s.CreateMovie(entity.MovieCreate{Title: "Disposable"})
	require.NoError(t, s.SetFavorite(user.ID, movie.ID, true))

	require.NoError(t, s.DeleteMovie(movie.ID))
	_, ok := s.Movie(movie.ID)
	assert.False(t, ok)
	assert.ErrorIs(t, s.DeleteMovie(movie.ID), ErrNotFound)

	// favoriting a deleted movie fails
	assert.ErrorIs(t, s.SetFavorite(user.ID, movie.ID, true), ErrNotFound)
}

func TestStore_UpdateMovieAppliesPartialFields(t *testing.T) {
	s := NewStore()
	movie := s.CreateMovie(entity.MovieCreate{Title: "Draft", Rating: ptr(5.0)})

	title := "Final Cut"
	updated, err := s.UpdateMovie(movie.ID, entity.MovieUpdate{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "Final Cut", updated.Title)
	require.NotNil(t, updated.Rating)
	assert.Equal(t, 5.0, *updated.Rating)

	_, err = s.UpdateMovie(uuid.New(), entity.MovieUpdate{Title: &title})
	assert.ErrorIs(t, err, ErrNotFound)
}
