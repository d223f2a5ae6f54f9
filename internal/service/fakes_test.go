package service_test

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/aaronipollock/memory-palace-sub001/internal/domain"
	"github.com/aaronipollock/memory-palace-sub001/internal/repository"
)

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*domain.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user, ok := r.users[id]; ok {
		clone := *user
		return &clone, nil
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Username == username {
			clone := *user
			return &clone, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) UpdateLastLogin(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	now := time.Now()
	user.LastLoginAt = &now
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

type fakePalaceRepo struct {
	mu      sync.Mutex
	palaces map[string]*domain.MemoryPalace
}

func newFakePalaceRepo() *fakePalaceRepo {
	return &fakePalaceRepo{palaces: make(map[string]*domain.MemoryPalace)}
}

func (r *fakePalaceRepo) Create(_ context.Context, palace *domain.MemoryPalace) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *palace
	r.palaces[palace.ID] = &clone
	return nil
}

func (r *fakePalaceRepo) GetByID(_ context.Context, id string) (*domain.MemoryPalace, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if palace, ok := r.palaces[id]; ok {
		clone := *palace
		return &clone, nil
	}
	return nil, repository.ErrNotFound
}

func (r *fakePalaceRepo) GetByOwner(_ context.Context, ownerID string) ([]*domain.MemoryPalace, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.MemoryPalace
	for _, palace := range r.palaces {
		if palace.OwnerID == ownerID {
			clone := *palace
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *fakePalaceRepo) Update(_ context.Context, palace *domain.MemoryPalace) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.palaces[palace.ID]; !ok {
		return repository.ErrNotFound
	}
	clone := *palace
	r.palaces[palace.ID] = &clone
	return nil
}

func (r *fakePalaceRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.palaces[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.palaces, id)
	return nil
}

func (r *fakePalaceRepo) DeleteByOwner(_ context.Context, ownerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, palace := range r.palaces {
		if palace.OwnerID == ownerID {
			delete(r.palaces, id)
		}
	}
	return nil
}

type fakeRoomRepo struct {
	mu    sync.Mutex
	rooms map[string]*domain.CustomRoom
}

func newFakeRoomRepo() *fakeRoomRepo {
	return &fakeRoomRepo{rooms: make(map[string]*domain.CustomRoom)}
}

func (r *fakeRoomRepo) Create(_ context.Context, room *domain.CustomRoom) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *room
	r.rooms[room.ID] = &clone
	return nil
}

func (r *fakeRoomRepo) GetByID(_ context.Context, id string) (*domain.CustomRoom, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if room, ok := r.rooms[id]; ok {
		clone := *room
		return &clone, nil
	}
	return nil, repository.ErrNotFound
}

func (r *fakeRoomRepo) GetByOwner(_ context.Context, ownerID string) ([]*domain.CustomRoom, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.CustomRoom
	for _, room := range r.rooms {
		if room.OwnerID == ownerID {
			clone := *room
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *fakeRoomRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rooms[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.rooms, id)
	return nil
}

func (r *fakeRoomRepo) DeleteByOwner(_ context.Context, ownerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, room := range r.rooms {
		if room.OwnerID == ownerID {
			delete(r.rooms, id)
		}
	}
	return nil
}

// fakeImageClient replays scripted results and records prompts and the
// interleaving of delays and calls.
type fakeImageClient struct {
	results []imageResult
	prompts []string
	events  *[]string
}

type imageResult struct {
	url string
	err error
}

func (c *fakeImageClient) Generate(_ context.Context, prompt string) (string, error) {
	c.prompts = append(c.prompts, prompt)
	if c.events != nil {
		*c.events = append(*c.events, "call")
	}

	if len(c.results) == 0 {
		return "", fmt.Errorf("no scripted result for call %d", len(c.prompts))
	}

	result := c.results[0]
	c.results = c.results[1:]
	return result.url, result.err
}

type fakeUploader struct {
	keys []string
}

func (u *fakeUploader) Upload(_ context.Context, key, _ string, _ []byte) (string, error) {
	u.keys = append(u.keys, key)
	return "https://cdn.test/" + key, nil
}

// sleepRecorder captures requested delays instead of waiting.
type sleepRecorder struct {
	delays []time.Duration
	events *[]string
}

func (s *sleepRecorder) sleep(_ context.Context, d time.Duration) error {
	s.delays = append(s.delays, d)
	if s.events != nil {
		*s.events = append(*s.events, "sleep")
	}
	return nil
}
