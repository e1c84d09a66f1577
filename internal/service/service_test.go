package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/deppfellow/lightbnb/internal/errs"
	"github.com/deppfellow/lightbnb/internal/model"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

func intPtr(n int) *int { return &n }

var nop = zerolog.Nop()

type fakePropertyStore struct {
	listings  []model.PropertyListing
	err       error
	calls     int
	lastLimit int
	added     *model.NewProperty
}

func (f *fakePropertyStore) GetAllProperties(_ context.Context, _ model.FilterOptions, limit int) ([]model.PropertyListing, error) {
	f.calls++
	f.lastLimit = limit
	return f.listings, f.err
}

func (f *fakePropertyStore) AddProperty(_ context.Context, p model.NewProperty) (*model.Property, error) {
	f.added = &p
	return &model.Property{ID: 1, OwnerID: p.OwnerID, Title: p.Title}, f.err
}

type fakeCache struct {
	entries     map[string][]model.PropertyListing
	getErr      error
	invalidated int
}

func (f *fakeCache) Get(_ context.Context, _ model.FilterOptions, limit int) (string, []model.PropertyListing, bool, error) {
	if f.getErr != nil {
		return "", nil, false, f.getErr
	}
	key := fmt.Sprintf("%d:%d", f.invalidated, limit)
	l, ok := f.entries[key]
	return key, l, ok, nil
}

func (f *fakeCache) Set(_ context.Context, key string, listings []model.PropertyListing) error {
	f.entries[key] = listings
	return nil
}

func (f *fakeCache) Invalidate(context.Context) error {
	f.invalidated++
	return nil
}

func newPropertyService(store PropertyStore, cache SearchCache) *PropertyService {
	return &PropertyService{
		store:  store,
		cache:  cache,
		limits: limits{defaultLimit: 10, maxLimit: 50},
		logger: &nop,
	}
}

func TestLimitsClamp(t *testing.T) {
	l := limits{defaultLimit: 10, maxLimit: 50}
	tests := map[int]int{0: 10, -1: 10, 5: 5, 50: 50, 51: 50}
	for in, want := range tests {
		if got := l.clamp(in); got != want {
			t.Fatalf("clamp(%d) = %d, want %d", in, got, want)
		}
	}

	if got := (limits{}).clamp(0); got != 10 {
		t.Fatalf("unconfigured limits should fall back to 10, got %d", got)
	}
}

func TestPropertyService_SearchValidates(t *testing.T) {
	store := &fakePropertyStore{}
	svc := newPropertyService(store, nil)

	_, err := svc.Search(context.Background(), model.FilterOptions{MinimumRating: intPtr(9)}, 10)

	var appErr *errs.Error
	if !errors.As(err, &appErr) || appErr.Status != http.StatusBadRequest {
		t.Fatalf("expected bad request, got %v", err)
	}
	if store.calls != 0 {
		t.Fatal("invalid options must not reach the store")
	}
}

func TestPropertyService_SearchClampsLimit(t *testing.T) {
	store := &fakePropertyStore{listings: []model.PropertyListing{}}
	svc := newPropertyService(store, nil)

	if _, err := svc.Search(context.Background(), model.FilterOptions{}, 1000); err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if store.lastLimit != 50 {
		t.Fatalf("expected limit clamped to 50, got %d", store.lastLimit)
	}
}

func TestPropertyService_SearchUsesCache(t *testing.T) {
	store := &fakePropertyStore{listings: []model.PropertyListing{{Property: model.Property{ID: 1}}}}
	cache := &fakeCache{entries: map[string][]model.PropertyListing{}}
	svc := newPropertyService(store, cache)

	for i := 0; i < 2; i++ {
		got, err := svc.Search(context.Background(), model.FilterOptions{}, 10)
		if err != nil {
			t.Fatalf("search failed: %v", err)
		}
		if len(got) != 1 {
			t.Fatalf("expected one listing, got %d", len(got))
		}
	}
	if store.calls != 1 {
		t.Fatalf("expected the second search to hit the cache, store called %d times", store.calls)
	}
}

func TestPropertyService_SearchCacheFailureFallsThrough(t *testing.T) {
	store := &fakePropertyStore{listings: []model.PropertyListing{}}
	cache := &fakeCache{entries: map[string][]model.PropertyListing{}, getErr: errors.New("redis down")}
	svc := newPropertyService(store, cache)

	if _, err := svc.Search(context.Background(), model.FilterOptions{}, 10); err != nil {
		t.Fatalf("cache failure must not fail the search: %v", err)
	}
	if store.calls != 1 {
		t.Fatal("expected the store to be queried")
	}
}

func TestPropertyService_SearchPropagatesQueryErrors(t *testing.T) {
	queryErr := errs.NewQueryExecutionError("getAllProperties", errors.New("boom"), nil)
	svc := newPropertyService(&fakePropertyStore{err: queryErr}, nil)

	_, err := svc.Search(context.Background(), model.FilterOptions{}, 10)
	if !errs.IsQueryExecution(err) {
		t.Fatalf("expected QueryExecutionError, got %v", err)
	}
}

func TestPropertyService_CreateInvalidatesCache(t *testing.T) {
	store := &fakePropertyStore{}
	cache := &fakeCache{entries: map[string][]model.PropertyListing{"0:10": {}}}
	svc := newPropertyService(store, cache)

	_, err := svc.Create(context.Background(), model.NewProperty{
		OwnerID:           1,
		Title:             "Cozy",
		ThumbnailPhotoURL: "t.jpg",
		CoverPhotoURL:     "c.jpg",
		CostPerNight:      10000,
		Street:            "1 Main St",
		City:              "Vancouver",
		Province:          "BC",
		PostCode:          "V5K",
		Country:           "Canada",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if cache.invalidated != 1 {
		t.Fatalf("expected one invalidation, got %d", cache.invalidated)
	}
	if store.added == nil || store.added.Title != "Cozy" {
		t.Fatal("expected property to reach the store")
	}
}

func TestPropertyService_CreateValidates(t *testing.T) {
	store := &fakePropertyStore{}
	svc := newPropertyService(store, nil)

	if _, err := svc.Create(context.Background(), model.NewProperty{Title: "No owner"}); err == nil {
		t.Fatal("expected validation error")
	}
	if store.added != nil {
		t.Fatal("invalid property must not reach the store")
	}
}

type fakeUserStore struct {
	users map[string]*model.User
	added *model.NewUser
}

func (f *fakeUserStore) GetUserWithEmail(_ context.Context, email string) (*model.User, error) {
	return f.users[model.NormalizeEmail(email)], nil
}

func (f *fakeUserStore) GetUserWithID(_ context.Context, id int) (*model.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserStore) AddUser(_ context.Context, u model.NewUser) (*model.User, error) {
	f.added = &u
	return &model.User{ID: 2, Name: u.Name, Email: model.NormalizeEmail(u.Email), Password: u.Password}, nil
}

type fakeEnqueuer struct {
	to  string
	err error
}

func (f *fakeEnqueuer) EnqueueWelcomeEmail(_ context.Context, to, _ string) error {
	f.to = to
	return f.err
}

func newUserService(store UserStore, jobs WelcomeEnqueuer) *UserService {
	return &UserService{store: store, jobs: jobs, hashCost: bcrypt.MinCost, logger: &nop}
}

func TestUserService_RegisterHashesPassword(t *testing.T) {
	store := &fakeUserStore{}
	jobs := &fakeEnqueuer{}
	svc := newUserService(store, jobs)

	user, err := svc.Register(context.Background(), model.NewUser{Name: "Ada", Email: "Ada@example.com", Password: "password"})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if store.added.Password == "password" {
		t.Fatal("password must be hashed before storage")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("password")); err != nil {
		t.Fatalf("stored hash does not match: %v", err)
	}
	if jobs.to != "ada@example.com" {
		t.Fatalf("expected welcome email for ada@example.com, got %q", jobs.to)
	}
}

func TestUserService_RegisterIgnoresEnqueueFailure(t *testing.T) {
	svc := newUserService(&fakeUserStore{}, &fakeEnqueuer{err: errors.New("redis down")})

	if _, err := svc.Register(context.Background(), model.NewUser{Name: "Ada", Email: "ada@example.com", Password: "pw"}); err != nil {
		t.Fatalf("enqueue failure must not fail registration: %v", err)
	}
}

func TestUserService_RegisterValidates(t *testing.T) {
	store := &fakeUserStore{}
	svc := newUserService(store, nil)

	_, err := svc.Register(context.Background(), model.NewUser{Name: "Ada", Email: "nope", Password: "pw"})
	if errs.Public(err).Status != http.StatusBadRequest {
		t.Fatalf("expected bad request, got %v", err)
	}
	if store.added != nil {
		t.Fatal("invalid user must not reach the store")
	}
}

func TestUserService_GetNotFound(t *testing.T) {
	svc := newUserService(&fakeUserStore{users: map[string]*model.User{
		"ada@example.com": {ID: 1, Name: "Ada", Email: "ada@example.com"},
	}}, nil)

	if u, err := svc.GetByEmail(context.Background(), "ADA@example.com"); err != nil || u.ID != 1 {
		t.Fatalf("expected ada, got %+v, %v", u, err)
	}

	_, err := svc.GetByID(context.Background(), 99)
	public := errs.Public(err)
	if public.Status != http.StatusNotFound || public.Code != "USER_NOT_FOUND" {
		t.Fatalf("expected USER_NOT_FOUND, got %+v", public)
	}
}

type fakeReservationStore struct {
	lastLimit int
}

func (f *fakeReservationStore) GetAllReservations(_ context.Context, _ int, limit int) ([]model.GuestReservation, error) {
	f.lastLimit = limit
	return []model.GuestReservation{}, nil
}

func TestReservationService_ListForGuest(t *testing.T) {
	store := &fakeReservationStore{}
	svc := &ReservationService{store: store, limits: limits{defaultLimit: 10, maxLimit: 50}}

	if _, err := svc.ListForGuest(context.Background(), 0, 10); errs.Public(err).Status != http.StatusBadRequest {
		t.Fatalf("expected bad request for guest 0, got %v", err)
	}

	if _, err := svc.ListForGuest(context.Background(), 1, 0); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if store.lastLimit != 10 {
		t.Fatalf("expected default limit 10, got %d", store.lastLimit)
	}
}
