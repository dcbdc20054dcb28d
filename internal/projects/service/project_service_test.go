package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Busrapehlivan/project-advisor/internal/kv"
	"github.com/Busrapehlivan/project-advisor/internal/projects/domain"
	"github.com/Busrapehlivan/project-advisor/internal/projects/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubEvaluator struct {
	res   *domain.EvaluationResult
	err   error
	calls int
	idea  string
	level domain.SkillLevel
}

func (s *stubEvaluator) Evaluate(_ context.Context, idea string, level domain.SkillLevel) (*domain.EvaluationResult, error) {
	s.calls++
	s.idea = idea
	s.level = level
	return s.res, s.err
}

func okResult() *domain.EvaluationResult {
	return &domain.EvaluationResult{
		Evaluation:      "Feasible",
		Recommendations: "Ship an MVP",
		FlowDiagram:     "Input -> Evaluate -> Tasks",
		TaskList: []domain.Task{
			{ID: 1, Task: "Design"},
			{ID: 2, Task: "Build"},
		},
	}
}

func setupService(t *testing.T, ev *stubEvaluator) (*ProjectService, *repository.ProjectStore) {
	t.Helper()
	tick := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store := repository.NewProjectStore(kv.NewMemory(), repository.Options{
		Now: func() time.Time {
			tick = tick.Add(time.Second)
			return tick
		},
	})
	return NewProjectService(store, ev), store
}

func TestProjectService_Submit(t *testing.T) {
	ctx := context.Background()

	t.Run("persists evaluated project", func(t *testing.T) {
		ev := &stubEvaluator{res: okResult()}
		svc, store := setupService(t, ev)

		p, err := svc.Submit(ctx, "  Budget planner  ", "orta")
		require.NoError(t, err)
		assert.NotEmpty(t, p.ID)
		assert.Equal(t, "Budget planner", p.ProjectIdea)
		assert.Equal(t, domain.SkillIntermediate, p.SkillLevel)
		assert.False(t, p.CreatedAt.IsZero())
		assert.Equal(t, "Budget planner", ev.idea)
		assert.Equal(t, domain.SkillIntermediate, ev.level)

		stored, err := store.GetByID(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, okResult(), stored.Result)
	})

	t.Run("blank idea is rejected before evaluation", func(t *testing.T) {
		ev := &stubEvaluator{res: okResult()}
		svc, _ := setupService(t, ev)

		_, err := svc.Submit(ctx, "   ", "Beginner")
		assert.ErrorIs(t, err, domain.ErrInvalidProject)
		assert.Equal(t, 0, ev.calls)
	})

	t.Run("unknown skill level", func(t *testing.T) {
		ev := &stubEvaluator{res: okResult()}
		svc, _ := setupService(t, ev)

		_, err := svc.Submit(ctx, "idea", "Guru")
		assert.ErrorIs(t, err, domain.ErrInvalidSkillLevel)
		assert.Equal(t, 0, ev.calls)
	})

	t.Run("evaluation failure writes nothing", func(t *testing.T) {
		ev := &stubEvaluator{err: errors.New("connection reset")}
		svc, store := setupService(t, ev)

		_, err := svc.Submit(ctx, "idea", "Advanced")
		assert.ErrorIs(t, err, domain.ErrEvaluation)

		n, err := store.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 0, n)
	})

	t.Run("nil result is an evaluation failure", func(t *testing.T) {
		svc, _ := setupService(t, &stubEvaluator{})
		_, err := svc.Submit(ctx, "idea", "Advanced")
		assert.ErrorIs(t, err, domain.ErrEvaluation)
	})
}

func TestProjectService_List(t *testing.T) {
	ctx := context.Background()
	svc, _ := setupService(t, &stubEvaluator{res: okResult()})

	first, err := svc.Submit(ctx, "first", "Beginner")
	require.NoError(t, err)
	second, err := svc.Submit(ctx, "second", "Beginner")
	require.NoError(t, err)

	projects, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, projects, 2)
	assert.Equal(t, second.ID, projects[0].ID)
	assert.Equal(t, first.ID, projects[1].ID)

	n, err := svc.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestProjectService_Tasks(t *testing.T) {
	ctx := context.Background()
	svc, _ := setupService(t, &stubEvaluator{res: okResult()})
	p, err := svc.Submit(ctx, "idea", "Beginner")
	require.NoError(t, err)

	t.Run("toggle flips", func(t *testing.T) {
		got, err := svc.ToggleTask(ctx, p.ID, 2)
		require.NoError(t, err)
		assert.True(t, got.Result.TaskList[1].Completed)

		got, err = svc.ToggleTask(ctx, p.ID, 2)
		require.NoError(t, err)
		assert.False(t, got.Result.TaskList[1].Completed)
	})

	t.Run("set status", func(t *testing.T) {
		got, err := svc.SetTaskStatus(ctx, p.ID, 1, true)
		require.NoError(t, err)
		assert.True(t, got.Result.TaskList[0].Completed)
		assert.Equal(t, 1, domain.ProgressOf(got).Completed)
	})

	t.Run("toggle unknown task is a no-op", func(t *testing.T) {
		before, err := svc.Get(ctx, p.ID)
		require.NoError(t, err)
		got, err := svc.ToggleTask(ctx, p.ID, 404)
		require.NoError(t, err)
		assert.Equal(t, before.Result.TaskList, got.Result.TaskList)
	})

	t.Run("unknown project", func(t *testing.T) {
		_, err := svc.ToggleTask(ctx, "missing", 1)
		assert.ErrorIs(t, err, domain.ErrProjectNotFound)
		_, err = svc.SetTaskStatus(ctx, "missing", 1, true)
		assert.ErrorIs(t, err, domain.ErrProjectNotFound)
	})
}

// slowKV delays reads so concurrent toggles overlap.
type slowKV struct {
	kv.Store
}

func (s slowKV) Get(ctx context.Context, key string) ([]byte, error) {
	time.Sleep(2 * time.Millisecond)
	return s.Store.Get(ctx, key)
}

func TestProjectService_ToggleTask_Serialized(t *testing.T) {
	ctx := context.Background()
	store := repository.NewProjectStore(slowKV{Store: kv.NewMemory()}, repository.Options{
		WriteMode: repository.WriteSerialized,
	})
	svc := NewProjectService(store, &stubEvaluator{res: okResult()})

	p, err := svc.Submit(ctx, "Recipe planner", "Beginner")
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.ToggleTask(ctx, p.ID, 1)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got, err := svc.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.False(t, got.Result.TaskList[0].Completed)
}
