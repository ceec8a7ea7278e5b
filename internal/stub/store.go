// Package stub is an in-memory ReelMatch backend used for local
// development and integration tests. It speaks the same wire protocol
// as the production API: bearer-token auth, snake_case JSON, a
// {"detail": ...} error body, 201 on create and 204 on delete.
package stub

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"reelmatch/internal/domain/entity"
	"reelmatch/internal/errors"
)

// Store errors. Handlers translate these to HTTP statuses.
var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotFound           = errors.New("not found")
	ErrRelationExists     = errors.New("friend request already exists")
)

type userRecord struct {
	user         entity.User
	passwordHash []byte
}

type swipeRecord struct {
	userID    uuid.UUID
	movieID   uuid.UUID
	direction entity.SwipeDirection
	createdAt time.Time
}

// Store is the whole backend state behind one mutex. Plenty for a dev
// server; nothing here survives a restart.
type Store struct {
	mu sync.RWMutex

	users      map[uuid.UUID]*userRecord
	emailIndex map[string]uuid.UUID
	profiles   map[uuid.UUID]*entity.Profile

	// refresh token -> user. Opaque tokens, never rotated on refresh.
	sessions map[string]uuid.UUID

	movies     map[uuid.UUID]*entity.Movie
	movieOrder []uuid.UUID

	favorites map[uuid.UUID]map[uuid.UUID]struct{}
	dislikes  map[uuid.UUID]map[uuid.UUID]struct{}
	statuses  map[uuid.UUID]map[uuid.UUID]string
	swipes    []swipeRecord

	friends map[uuid.UUID]*entity.Friend
}

// NewStore returns an empty store pre-seeded with a small catalog.
func NewStore() *Store {
	s := &Store{
		users:      make(map[uuid.UUID]*userRecord),
		emailIndex: make(map[string]uuid.UUID),
		profiles:   make(map[uuid.UUID]*entity.Profile),
		sessions:   make(map[string]uuid.UUID),
		movies:     make(map[uuid.UUID]*entity.Movie),
		favorites:  make(map[uuid.UUID]map[uuid.UUID]struct{}),
		dislikes:   make(map[uuid.UUID]map[uuid.UUID]struct{}),
		statuses:   make(map[uuid.UUID]map[uuid.UUID]string),
		friends:    make(map[uuid.UUID]*entity.Friend),
	}
	s.seed()
	return s
}

func (s *Store) seed() {
	catalog := []entity.MovieCreate{
		{Title: "The Long Rain", Overview: ptr("A weather station crew waits out a storm that never ends."), ReleaseDate: ptr("1997-04-12"), Rating: ptr(7.8), Popularity: ptr(41.2), Genres: []string{"drama", "sci-fi"}},
		{Title: "Night Ferry", Overview: ptr("Two strangers cross the harbor every night at the same hour."), ReleaseDate: ptr("2012-09-30"), Rating: ptr(6.9), Popularity: ptr(35.7), Genres: []string{"romance", "drama"}},
		{Title: "Paper Compass", Overview: ptr("A cartographer maps a city that keeps rearranging itself."), ReleaseDate: ptr("2020-02-14"), Rating: ptr(8.1), Popularity: ptr(58.3), Genres: []string{"fantasy", "mystery"}},
	}
	for _, payload := range catalog {
		movie := movieFromCreate(payload)
		s.movies[movie.ID] = &movie
		s.movieOrder = append(s.movieOrder, movie.ID)
	}
}

func ptr[T any](v T) *T { return &v }

// popularityOf treats a missing popularity as zero so unrated movies sort last.
func popularityOf(m entity.Movie) float64 {
	if m.Popularity == nil {
		return 0
	}
	return *m.Popularity
}

func movieFromCreate(payload entity.MovieCreate) entity.Movie {
	return entity.Movie{
		ID:          uuid.New(),
		TMDBID:      payload.TMDBID,
		Title:       payload.Title,
		Overview:    payload.Overview,
		ReleaseDate: payload.ReleaseDate,
		Rating:      payload.Rating,
		Popularity:  payload.Popularity,
		PosterURL:   payload.PosterURL,
		BackdropURL: payload.BackdropURL,
		Genres:      payload.Genres,
		Keywords:    payload.Keywords,
	}
}

// CreateUser registers a user, hashes the password and creates the
// default profile.
func (s *Store) CreateUser(email, username, password string) (entity.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return entity.User{}, errors.Wrap(err, "hash password")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.emailIndex[email]; exists {
		return entity.User{}, ErrEmailTaken
	}

	user := entity.User{
		ID:        uuid.New(),
		Email:     email,
		Username:  username,
		CreatedAt: time.Now().UTC(),
	}
	s.users[user.ID] = &userRecord{user: user, passwordHash: hash}
	s.emailIndex[email] = user.ID
	s.profiles[user.ID] = &entity.Profile{
		ID:        uuid.New(),
		UserID:    user.ID,
		UpdatedAt: user.CreatedAt,
	}

	return user, nil
}

// Authenticate checks the password against the stored bcrypt hash.
func (s *Store) Authenticate(email, password string) (entity.User, error) {
	s.mu.RLock()
	id, ok := s.emailIndex[email]
	var rec *userRecord
	if ok {
		rec = s.users[id]
	}
	s.mu.RUnlock()

	if rec == nil {
		return entity.User{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(rec.passwordHash, []byte(password)); err != nil {
		return entity.User{}, ErrInvalidCredentials
	}
	return rec.user, nil
}

// User returns a user by id.
func (s *Store) User(id uuid.UUID) (entity.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.users[id]
	if !ok {
		return entity.User{}, false
	}
	return rec.user, true
}

// CreateSession mints an opaque refresh token bound to the user.
func (s *Store) CreateSession(userID uuid.UUID) string {
	token := uuid.NewString() + uuid.NewString()

	s.mu.Lock()
	s.sessions[token] = userID
	s.mu.Unlock()

	return token
}

// ResolveSession maps a refresh token back to its user.
func (s *Store) ResolveSession(refreshToken string) (uuid.UUID, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.sessions[refreshToken]
	return id, ok
}

// ListMovies returns the catalog in insertion order.
func (s *Store) ListMovies() []entity.Movie {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]entity.Movie, 0, len(s.movieOrder))
	for _, id := range s.movieOrder {
		out = append(out, *s.movies[id])
	}
	return out
}

// Movie returns a movie by id.
func (s *Store) Movie(id uuid.UUID) (entity.Movie, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	movie, ok := s.movies[id]
	if !ok {
		return entity.Movie{}, false
	}
	return *movie, true
}

// CreateMovie adds a movie to the catalog.
func (s *Store) CreateMovie(payload entity.MovieCreate) entity.Movie {
	movie := movieFromCreate(payload)

	s.mu.Lock()
	s.movies[movie.ID] = &movie
	s.movieOrder = append(s.movieOrder, movie.ID)
	s.mu.Unlock()

	return movie
}

// UpdateMovie applies non-nil fields of the update to the movie.
func (s *Store) UpdateMovie(id uuid.UUID, payload entity.MovieUpdate) (entity.Movie, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	movie, ok := s.movies[id]
	if !ok {
		return entity.Movie{}, ErrNotFound
	}

	if payload.Title != nil {
		movie.Title = *payload.Title
	}
	if payload.Overview != nil {
		movie.Overview = payload.Overview
	}
	if payload.ReleaseDate != nil {
		movie.ReleaseDate = payload.ReleaseDate
	}
	if payload.Rating != nil {
		movie.Rating = payload.Rating
	}
	if payload.Popularity != nil {
		movie.Popularity = payload.Popularity
	}
	if payload.PosterURL != nil {
		movie.PosterURL = payload.PosterURL
	}
	if payload.BackdropURL != nil {
		movie.BackdropURL = payload.BackdropURL
	}

	return *movie, nil
}

// DeleteMovie removes a movie and its per-user marks.
func (s *Store) DeleteMovie(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.movies[id]; !ok {
		return ErrNotFound
	}
	delete(s.movies, id)
	for i, mid := range s.movieOrder {
		if mid == id {
			s.movieOrder = append(s.movieOrder[:i], s.movieOrder[i+1:]...)
			break
		}
	}
	for _, marks := range s.favorites {
		delete(marks, id)
	}
	for _, marks := range s.dislikes {
		delete(marks, id)
	}
	return nil
}

// SetFavorite records or clears a favorite mark. Repeats are no-ops.
func (s *Store) SetFavorite(userID, movieID uuid.UUID, favorite bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if favorite {
		if _, ok := s.movies[movieID]; !ok {
			return ErrNotFound
		}
		if s.favorites[userID] == nil {
			s.favorites[userID] = make(map[uuid.UUID]struct{})
		}
		s.favorites[userID][movieID] = struct{}{}
		return nil
	}

	delete(s.favorites[userID], movieID)
	return nil
}

// SetDislike records or clears a dislike mark. Repeats are no-ops.
func (s *Store) SetDislike(userID, movieID uuid.UUID, disliked bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if disliked {
		if _, ok := s.movies[movieID]; !ok {
			return ErrNotFound
		}
		if s.dislikes[userID] == nil {
			s.dislikes[userID] = make(map[uuid.UUID]struct{})
		}
		s.dislikes[userID][movieID] = struct{}{}
		return nil
	}

	delete(s.dislikes[userID], movieID)
	return nil
}

// UpsertStatus sets the user's watch status for a movie.
func (s *Store) UpsertStatus(userID, movieID uuid.UUID, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.movies[movieID]; !ok {
		return ErrNotFound
	}
	if s.statuses[userID] == nil {
		s.statuses[userID] = make(map[uuid.UUID]string)
	}
	s.statuses[userID][movieID] = status
	return nil
}

// AddSwipe appends a swipe to the user's history.
func (s *Store) AddSwipe(userID, movieID uuid.UUID, direction entity.SwipeDirection) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.movies[movieID]; !ok {
		return ErrNotFound
	}
	s.swipes = append(s.swipes, swipeRecord{
		userID:    userID,
		movieID:   movieID,
		direction: direction,
		createdAt: time.Now().UTC(),
	})
	return nil
}

// Activity returns the user's swipes, newest first, with the movie
// embedded when it still exists.
func (s *Store) Activity(userID uuid.UUID) []entity.ActivityItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]entity.ActivityItem, 0)
	for i := len(s.swipes) - 1; i >= 0; i-- {
		sw := s.swipes[i]
		if sw.userID != userID {
			continue
		}
		item := entity.ActivityItem{
			MovieID:   sw.movieID,
			Direction: sw.direction,
			CreatedAt: sw.createdAt,
		}
		if movie, ok := s.movies[sw.movieID]; ok {
			copied := *movie
			item.Movie = &copied
		}
		out = append(out, item)
	}
	return out
}

// Recommendations returns movies the user has not acted on yet, most
// popular first.
func (s *Store) Recommendations(userID uuid.UUID, limit int) []entity.Movie {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[uuid.UUID]struct{})
	for movieID := range s.favorites[userID] {
		seen[movieID] = struct{}{}
	}
	for movieID := range s.dislikes[userID] {
		seen[movieID] = struct{}{}
	}
	for _, sw := range s.swipes {
		if sw.userID == userID {
			seen[sw.movieID] = struct{}{}
		}
	}

	out := make([]entity.Movie, 0)
	for _, id := range s.movieOrder {
		if _, ok := seen[id]; ok {
			continue
		}
		out = append(out, *s.movies[id])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return popularityOf(out[i]) > popularityOf(out[j])
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// ListFriends returns every relation the user participates in.
func (s *Store) ListFriends(userID uuid.UUID) []entity.Friend {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]entity.Friend, 0)
	for _, fr := range s.friends {
		if fr.RequesterID == userID || fr.AddresseeID == userID {
			out = append(out, *fr)
		}
	}
	sortFriends(out)
	return out
}

// PendingRequests returns pending relations addressed to the user.
func (s *Store) PendingRequests(userID uuid.UUID) []entity.Friend {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]entity.Friend, 0)
	for _, fr := range s.friends {
		if fr.AddresseeID == userID && fr.Status == entity.FriendPending {
			out = append(out, *fr)
		}
	}
	sortFriends(out)
	return out
}

func sortFriends(friends []entity.Friend) {
	sort.Slice(friends, func(i, j int) bool {
		return friends[i].CreatedAt.Before(friends[j].CreatedAt)
	})
}

// CreateFriendRequest makes a pending relation. At most one relation
// can exist between two users, regardless of direction.
func (s *Store) CreateFriendRequest(requesterID, addresseeID uuid.UUID) (entity.Friend, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[addresseeID]; !ok {
		return entity.Friend{}, ErrNotFound
	}
	for _, fr := range s.friends {
		if (fr.RequesterID == requesterID && fr.AddresseeID == addresseeID) ||
			(fr.RequesterID == addresseeID && fr.AddresseeID == requesterID) {
			return entity.Friend{}, ErrRelationExists
		}
	}

	now := time.Now().UTC()
	fr := &entity.Friend{
		ID:          uuid.New(),
		RequesterID: requesterID,
		AddresseeID: addresseeID,
		Status:      entity.FriendPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.friends[fr.ID] = fr
	return *fr, nil
}

// Friend returns a relation by id.
func (s *Store) Friend(id uuid.UUID) (entity.Friend, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	fr, ok := s.friends[id]
	if !ok {
		return entity.Friend{}, false
	}
	return *fr, true
}

// UpdateFriendStatus transitions a relation.
func (s *Store) UpdateFriendStatus(id uuid.UUID, status entity.FriendStatus) (entity.Friend, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fr, ok := s.friends[id]
	if !ok {
		return entity.Friend{}, ErrNotFound
	}
	fr.Status = status
	fr.UpdatedAt = time.Now().UTC()
	return *fr, nil
}

// Suggestions ranks users the caller has no relation with by overlap of
// liked movies. In production this comes from precomputed match
// scores; here Jaccard over favorites plus like-swipes is close
// enough for a dev server.
func (s *Store) Suggestions(userID uuid.UUID) []entity.FriendSuggestion {
	s.mu.RLock()
	defer s.mu.RUnlock()

	excluded := map[uuid.UUID]struct{}{userID: {}}
	for _, fr := range s.friends {
		if fr.RequesterID == userID || fr.AddresseeID == userID {
			excluded[fr.RequesterID] = struct{}{}
			excluded[fr.AddresseeID] = struct{}{}
		}
	}

	mine := s.likedSet(userID)
	out := make([]entity.FriendSuggestion, 0)
	for otherID, rec := range s.users {
		if _, skip := excluded[otherID]; skip {
			continue
		}
		theirs := s.likedSet(otherID)
		score := jaccard(mine, theirs)
		if score == 0 {
			continue
		}
		out = append(out, entity.FriendSuggestion{
			UserID:          otherID,
			Username:        rec.user.Username,
			Email:           rec.user.Email,
			SimilarityScore: score,
			TopGenres:       s.topGenres(theirs),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].SimilarityScore > out[j].SimilarityScore
	})
	return out
}

func (s *Store) likedSet(userID uuid.UUID) map[uuid.UUID]struct{} {
	liked := make(map[uuid.UUID]struct{})
	for movieID := range s.favorites[userID] {
		liked[movieID] = struct{}{}
	}
	for _, sw := range s.swipes {
		if sw.userID == userID && sw.direction == entity.SwipeLike {
			liked[sw.movieID] = struct{}{}
		}
	}
	return liked
}

func jaccard(a, b map[uuid.UUID]struct{}) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	shared := 0
	for id := range a {
		if _, ok := b[id]; ok {
			shared++
		}
	}
	union := len(a) + len(b) - shared
	return float64(shared) / float64(union)
}

func (s *Store) topGenres(liked map[uuid.UUID]struct{}) []string {
	counts := make(map[string]int)
	for movieID := range liked {
		movie, ok := s.movies[movieID]
		if !ok {
			continue
		}
		for _, genre := range movie.Genres {
			counts[genre]++
		}
	}
	genres := make([]string, 0, len(counts))
	for genre := range counts {
		genres = append(genres, genre)
	}
	sort.Slice(genres, func(i, j int) bool {
		if counts[genres[i]] != counts[genres[j]] {
			return counts[genres[i]] > counts[genres[j]]
		}
		return genres[i] < genres[j]
	})
	if len(genres) > 3 {
		genres = genres[:3]
	}
	return genres
}

// Profile returns the profile for a user id.
func (s *Store) Profile(userID uuid.UUID) (entity.Profile, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	profile, ok := s.profiles[userID]
	if !ok {
		return entity.Profile{}, false
	}
	return *profile, true
}

// UpdateProfile applies non-nil fields of the update.
func (s *Store) UpdateProfile(userID uuid.UUID, payload entity.ProfileUpdate) (entity.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	profile, ok := s.profiles[userID]
	if !ok {
		return entity.Profile{}, ErrNotFound
	}
	if payload.AvatarURL != nil {
		profile.AvatarURL = payload.AvatarURL
	}
	if payload.Bio != nil {
		profile.Bio = payload.Bio
	}
	if payload.Location != nil {
		profile.Location = payload.Location
	}
	if payload.Birthdate != nil {
		profile.Birthdate = payload.Birthdate
	}
	profile.UpdatedAt = time.Now().UTC()
	return *profile, nil
}
