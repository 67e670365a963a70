// Copyright (c) 2026 Metaversitas. All rights reserved.
// Author: Metaversitas Team

package auth_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/Metaversitas/Metaversitas-2.0/internal/platform/apperr"
	"github.com/Metaversitas/Metaversitas-2.0/internal/platform/dberr"
	"github.com/Metaversitas/Metaversitas-2.0/internal/platform/middleware"
	"github.com/Metaversitas/Metaversitas-2.0/internal/platform/sec"
	"github.com/Metaversitas/Metaversitas-2.0/internal/profile"
	"github.com/Metaversitas/Metaversitas-2.0/internal/session"
	"github.com/Metaversitas/Metaversitas-2.0/internal/users/auth"
)

const (
	testPassword    = "Alpha!2345678"
	testLiveVersion = "1.4.0"
	testOldVersion  = "1.3.9"
)

// # In-memory Stores

type memoryUsers struct {
	mu      sync.Mutex
	byID    map[string]*auth.User
	byEmail map[string]string
}

func newMemoryUsers() *memoryUsers {
	return &memoryUsers{byID: map[string]*auth.User{}, byEmail: map[string]string{}}
}

func (m *memoryUsers) FindByID(_ context.Context, id string) (*auth.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	user, ok := m.byID[id]
	if !ok {
		return nil, fmt.Errorf("memory_find_user: %w", dberr.ErrNotFound)
	}
	copied := *user
	return &copied, nil
}

func (m *memoryUsers) FindByEmail(ctx context.Context, email string) (*auth.User, error) {
	m.mu.Lock()
	id, ok := m.byEmail[email]
	m.mu.Unlock()

	if !ok {
		return nil, fmt.Errorf("memory_find_user: %w", dberr.ErrNotFound)
	}
	return m.FindByID(ctx, id)
}

func (m *memoryUsers) Create(_ context.Context, user *auth.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.byEmail[user.Email]; exists {
		return apperr.UserAlreadyExists()
	}
	copied := *user
	m.byID[user.ID] = &copied
	m.byEmail[user.Email] = user.ID
	return nil
}

func (m *memoryUsers) GetFunctionalRole(_ context.Context, userID string) (sec.UserRole, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	user, ok := m.byID[userID]
	if !ok {
		return "", fmt.Errorf("memory_get_role: %w", dberr.ErrNotFound)
	}
	return user.Role, nil
}

func (m *memoryUsers) UpdatePassword(_ context.Context, userID, newHash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	user, ok := m.byID[userID]
	if !ok {
		return fmt.Errorf("memory_update_password: %w", dberr.ErrNotFound)
	}
	user.PasswordHash = newHash
	return nil
}

type memoryGames struct {
	mu       sync.Mutex
	versions map[string]bool
	lookups  int
}

func (m *memoryGames) IsLive(_ context.Context, version string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.lookups++
	live, ok := m.versions[version]
	if !ok {
		return false, fmt.Errorf("memory_game_version: %w", dberr.ErrNotFound)
	}
	return live, nil
}

func (m *memoryGames) Lookups() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lookups
}

// profilesFromUsers derives a student profile for every stored account.
type profilesFromUsers struct {
	users *memoryUsers
}

func (p profilesFromUsers) Get(ctx context.Context, userID string) (*profile.Profile, error) {
	user, err := p.users.FindByID(ctx, userID)
	if err != nil {
		return nil, apperr.ProfileUnavailable(err)
	}

	return &profile.Profile{
		UserID:           user.ID,
		InGameNickname:   user.Nickname,
		FullName:         "Alice Liddell",
		Gender:           sec.GenderFemale,
		UniversityID:     1,
		UniversityName:   "Universitas Metaversitas",
		FacultyID:        7,
		FacultyName:      "Fakultas Ilmu Komputer",
		UserUniversityID: 21,
		UniversityRole:   sec.UniversityRoleStudent,
		UserRole:         user.Role,
		RoleReferenceID:  "student-21",
	}, nil
}

// # Fixture

type fixture struct {
	server   *miniredis.Miniredis
	users    *memoryUsers
	games    *memoryGames
	kdf      *sec.KDF
	manager  *session.Manager
	cookies  *session.CookieAdapter
	service  *auth.Service
	gate     *middleware.Gate
	profiles profilesFromUsers
	router   http.Handler
}

func testKDF() *sec.KDF {
	return sec.NewKDF(2, sec.KDFParams{Time: 1, MemoryKiB: 64, Parallelism: 1, KeyLen: 16, SaltLen: 8})
}

func newFixture(t *testing.T, photonAPIKey string) *fixture {
	t.Helper()

	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	codec, err := sec.NewBearerCodec("auth-test-secret", 10*time.Minute)
	require.NoError(t, err)

	manager, err := session.NewManager(session.NewRedisCredentialStore(client), codec, session.Options{SessionLifetime: time.Hour})
	require.NoError(t, err)

	users := newMemoryUsers()
	games := &memoryGames{versions: map[string]bool{testLiveVersion: true, testOldVersion: false}}
	gameVersions := auth.NewGameVersionService(games, auth.NewGameVersionCache(client), time.Hour)

	kdf := testKDF()
	service := auth.NewService(users, kdf, manager, gameVersions, photonAPIKey)
	cookies := session.NewCookieAdapter(true, "")
	profiles := profilesFromUsers{users: users}
	gate := middleware.NewGate(manager, cookies, profiles, service)

	handler := auth.NewHandler(service, manager, cookies, session.NewPhotonAdapter(), profiles, gate)

	return &fixture{
		server:   server,
		users:    users,
		games:    games,
		kdf:      kdf,
		manager:  manager,
		cookies:  cookies,
		service:  service,
		gate:     gate,
		profiles: profiles,
		router:   handler.Routes(),
	}
}

// seedUser stores an account directly, bypassing registration.
func (f *fixture) seedUser(t *testing.T, email, nickname string) *auth.User {
	t.Helper()

	hash, err := f.kdf.Hash(context.Background(), testPassword)
	require.NoError(t, err)

	user := &auth.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		Nickname:     nickname,
		Role:         sec.RoleUser,
	}
	require.NoError(t, f.users.Create(context.Background(), user))
	return user
}

func (f *fixture) do(method, target string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	var payload bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&payload).Encode(body)
	}

	request := httptest.NewRequest(method, target, &payload)
	request.Header.Set("Content-Type", "application/json")
	for _, cookie := range cookies {
		request.AddCookie(cookie)
	}

	recorder := httptest.NewRecorder()
	f.router.ServeHTTP(recorder, request)
	return recorder
}

func loginBody(email, password string) map[string]any {
	return map[string]any{"user": map[string]any{"email": email, "password": password}}
}

func decode(t *testing.T, recorder *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body), recorder.Body.String())
	return body
}

func cookieNamed(recorder *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, cookie := range recorder.Result().Cookies() {
		if cookie.Name == name {
			return cookie
		}
	}
	return nil
}
