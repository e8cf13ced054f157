package handlers_test

import (
	"context"
	"sort"
	"time"

	"github.com/gin-gonic/gin"

	"tripplanner/database"
	"tripplanner/handlers"
)

var testSecret = []byte("test-secret")

// stubStore is an in-memory handlers.Store with the same ordering and
// ownership semantics as the Postgres implementation.
type stubStore struct {
	users   map[string]*database.User // keyed by email
	trips   []database.Trip
	seq     int
	pingErr error
}

func newStubStore() *stubStore {
	return &stubStore{users: make(map[string]*database.User)}
}

func (s *stubStore) CreateUser(ctx context.Context, u *database.User) error {
	if _, ok := s.users[u.Email]; ok {
		return database.ErrDuplicateEmail
	}
	u.CreatedAt = s.nextTime()
	cp := *u
	s.users[u.Email] = &cp
	return nil
}

func (s *stubStore) GetUserByEmail(ctx context.Context, email string) (*database.User, error) {
	u, ok := s.users[email]
	if !ok {
		return nil, database.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *stubStore) CreateTrip(ctx context.Context, t *database.Trip) error {
	t.CreatedAt = s.nextTime()
	s.trips = append(s.trips, *t)
	return nil
}

func (s *stubStore) ListTripsByOwner(ctx context.Context, ownerID string) ([]database.Trip, error) {
	owned := []database.Trip{}
	for _, t := range s.trips {
		if t.UserID == ownerID {
			owned = append(owned, t)
		}
	}
	sort.Slice(owned, func(i, j int) bool {
		return owned[i].CreatedAt.After(owned[j].CreatedAt)
	})
	return owned, nil
}

func (s *stubStore) GetTripOwned(ctx context.Context, ownerID, tripID string) (*database.Trip, error) {
	for _, t := range s.trips {
		if t.ID == tripID && t.UserID == ownerID {
			cp := t
			return &cp, nil
		}
	}
	return nil, database.ErrNotFound
}

func (s *stubStore) DeleteTripOwned(ctx context.Context, ownerID, tripID string) error {
	for i, t := range s.trips {
		if t.ID == tripID && t.UserID == ownerID {
			s.trips = append(s.trips[:i], s.trips[i+1:]...)
			return nil
		}
	}
	return database.ErrNotFound
}

func (s *stubStore) Ping(ctx context.Context) error {
	return s.pingErr
}

// nextTime hands out strictly increasing timestamps so newest-first ordering
// is observable even across rapid creates.
func (s *stubStore) nextTime() time.Time {
	s.seq++
	return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC).Add(time.Duration(s.seq) * time.Second)
}

type stubGenerator struct {
	text  string
	err   error
	calls int
}

func (g *stubGenerator) GenerateItinerary(ctx context.Context, destination string, days int, companions string, budget float64) (string, error) {
	g.calls++
	if g.err != nil {
		return "", g.err
	}
	return g.text, nil
}

func newTestRouter(store handlers.Store, gen handlers.Generator) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers.New(store, gen, testSecret).RegisterRoutes(r)
	return r
}
