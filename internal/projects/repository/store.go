package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/Busrapehlivan/project-advisor/internal/kv"
	"github.com/Busrapehlivan/project-advisor/internal/logging"
	"github.com/Busrapehlivan/project-advisor/internal/projects/domain"
)

// DefaultKey is the slot the collection has always been stored under.
const DefaultKey = "user_projects"

// ReadPolicy decides what List does with a collection that cannot be decoded.
type ReadPolicy string

const (
	// ReadLenient treats an unreadable collection as empty.
	ReadLenient ReadPolicy = "lenient"
	// ReadStrict surfaces domain.ErrStorageRead to the caller.
	ReadStrict ReadPolicy = "strict"
)

// WriteMode decides how concurrent read-modify-write calls are coordinated.
type WriteMode string

const (
	// WriteUnsynchronized performs no coordination. Two mutations that both read
	// before either writes lose one of the updates (last write wins on the
	// whole collection).
	WriteUnsynchronized WriteMode = "unsynchronized"
	// WriteSerialized runs every mutation under one store-owned mutex.
	WriteSerialized WriteMode = "serialized"
)

type Options struct {
	Key        string
	ReadPolicy ReadPolicy
	WriteMode  WriteMode
	Now        func() time.Time
}

// ProjectStore persists the whole project collection as one JSON array under a
// single key. Every mutation rewrites the full array.
type ProjectStore struct {
	kv     kv.Store
	key    string
	strict bool
	mu     sync.Locker
	now    func() time.Time
}

func NewProjectStore(store kv.Store, opts Options) *ProjectStore {
	s := &ProjectStore{
		kv:     store,
		key:    opts.Key,
		strict: opts.ReadPolicy == ReadStrict,
		mu:     noLock{},
		now:    opts.Now,
	}
	if s.key == "" {
		s.key = DefaultKey
	}
	if opts.WriteMode == WriteSerialized {
		s.mu = &sync.Mutex{}
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// Load reads and decodes the collection. A missing slot is an empty collection;
// anything unreadable is reported as domain.ErrStorageRead regardless of policy.
func (s *ProjectStore) Load(ctx context.Context) ([]domain.Project, error) {
	raw, err := s.kv.Get(ctx, s.key)
	if errors.Is(err, kv.ErrNotFound) {
		return []domain.Project{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrStorageRead, err)
	}

	var projects []domain.Project
	if err := json.Unmarshal(raw, &projects); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %w", domain.ErrStorageRead, s.key, err)
	}
	if projects == nil {
		projects = []domain.Project{}
	}
	return projects, nil
}

// List returns the collection in stored order. Under the lenient policy a read
// failure is logged and an empty collection returned.
func (s *ProjectStore) List(ctx context.Context) ([]domain.Project, error) {
	projects, err := s.Load(ctx)
	if err == nil {
		return projects, nil
	}
	if s.strict {
		return nil, err
	}
	logging.New(ctx).LogWarnf("list_projects", "treating unreadable collection as empty: %v", err)
	return []domain.Project{}, nil
}

func (s *ProjectStore) Count(ctx context.Context) (int, error) {
	projects, err := s.List(ctx)
	if err != nil {
		return 0, err
	}
	return len(projects), nil
}

// GetByID scans the collection and returns domain.ErrProjectNotFound when no
// project has the id.
func (s *ProjectStore) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	projects, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range projects {
		if projects[i].ID == id {
			return &projects[i], nil
		}
	}
	return nil, domain.ErrProjectNotFound
}

// Save replaces the project with the same id in place, or appends it after
// filling in a missing id and createdAt. It returns the updated collection.
func (s *ProjectStore) Save(ctx context.Context, p domain.Project) ([]domain.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	projects, _, err := s.save(ctx, p)
	return projects, err
}

// Create is Save for callers that need the stored project, including the
// generated id and createdAt.
func (s *ProjectStore) Create(ctx context.Context, p domain.Project) (*domain.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	projects, idx, err := s.save(ctx, p)
	if err != nil {
		return nil, err
	}
	saved := projects[idx]
	return &saved, nil
}

// UpdateTaskStatus sets completed on the task with taskID. An unknown task id
// leaves the list unchanged and is not an error.
func (s *ProjectStore) UpdateTaskStatus(ctx context.Context, projectID string, taskID int, completed bool) (*domain.Project, error) {
	return s.updateTask(ctx, projectID, taskID, func(bool) bool { return completed })
}

// ToggleTaskStatus flips completed on the task with taskID. The read and the
// write happen under the same lock, so serialized stores never lose a toggle.
func (s *ProjectStore) ToggleTaskStatus(ctx context.Context, projectID string, taskID int) (*domain.Project, error) {
	return s.updateTask(ctx, projectID, taskID, func(completed bool) bool { return !completed })
}

func (s *ProjectStore) updateTask(ctx context.Context, projectID string, taskID int, next func(bool) bool) (*domain.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	updated := current.Clone()
	found := false
	if updated.Result != nil {
		for i := range updated.Result.TaskList {
			if updated.Result.TaskList[i].ID == taskID {
				updated.Result.TaskList[i].Completed = next(updated.Result.TaskList[i].Completed)
				found = true
			}
		}
	}
	if !found {
		return &updated, nil
	}

	if _, _, err := s.save(ctx, updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// save expects s.mu to be held.
func (s *ProjectStore) save(ctx context.Context, p domain.Project) ([]domain.Project, int, error) {
	if err := validate(p); err != nil {
		return nil, 0, err
	}

	projects, err := s.List(ctx)
	if err != nil {
		return nil, 0, err
	}

	idx := -1
	for i := range projects {
		if p.ID != "" && projects[i].ID == p.ID {
			idx = i
			break
		}
	}

	if idx >= 0 {
		projects[idx] = p
	} else {
		if p.ID == "" {
			p.ID = s.newID(projects)
		}
		if p.CreatedAt.IsZero() {
			p.CreatedAt = s.now().UTC()
		}
		projects = append(projects, p)
		idx = len(projects) - 1
	}

	data, err := json.Marshal(projects)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: encode: %w", domain.ErrStorageWrite, err)
	}
	if err := s.kv.Set(ctx, s.key, data); err != nil {
		logging.New(ctx).LogError("save_project", err)
		return nil, 0, fmt.Errorf("%w: %w", domain.ErrStorageWrite, err)
	}
	return projects, idx, nil
}

// newID is the creation time in Unix milliseconds, bumped past ids already taken
// by projects created within the same millisecond.
func (s *ProjectStore) newID(projects []domain.Project) string {
	taken := make(map[string]bool, len(projects))
	for i := range projects {
		taken[projects[i].ID] = true
	}
	n := s.now().UnixMilli()
	for taken[strconv.FormatInt(n, 10)] {
		n++
	}
	return strconv.FormatInt(n, 10)
}

func validate(p domain.Project) error {
	if p.Result == nil {
		return fmt.Errorf("%w: result required", domain.ErrInvalidProject)
	}
	if strings.TrimSpace(p.ProjectIdea) == "" {
		return fmt.Errorf("%w: projectIdea required", domain.ErrInvalidProject)
	}
	return nil
}

type noLock struct{}

func (noLock) Lock()   {}
func (noLock) Unlock() {}
