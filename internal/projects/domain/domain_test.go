package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSkillLevel(t *testing.T) {
	cases := map[string]SkillLevel{
		"Beginner":     SkillBeginner,
		" beginner ":   SkillBeginner,
		"Başlangıç":    SkillBeginner,
		"Intermediate": SkillIntermediate,
		"Orta":         SkillIntermediate,
		"ADVANCED":     SkillAdvanced,
		"İleri":        SkillAdvanced,
		"ileri":        SkillAdvanced,
	}
	for in, want := range cases {
		got, err := ParseSkillLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
		assert.True(t, got.Valid())
	}

	_, err := ParseSkillLevel("expert")
	assert.ErrorIs(t, err, ErrInvalidSkillLevel)
	assert.False(t, SkillLevel("expert").Valid())
}

func TestProgressOf(t *testing.T) {
	p := &Project{Result: &EvaluationResult{TaskList: []Task{
		{ID: 1, Completed: true},
		{ID: 2},
		{ID: 3},
	}}}
	assert.Equal(t, Progress{Completed: 1, Total: 3, Percent: 33}, ProgressOf(p))

	p.Result.TaskList[1].Completed = true
	assert.Equal(t, 67, ProgressOf(p).Percent)

	assert.Equal(t, Progress{}, ProgressOf(&Project{Result: &EvaluationResult{}}))
	assert.Equal(t, Progress{}, ProgressOf(&Project{}))
}

func TestTruncateIdea(t *testing.T) {
	short := "A small idea"
	assert.Equal(t, short, TruncateIdea(short))

	long := strings.Repeat("ş", 61)
	got := TruncateIdea(long)
	assert.Equal(t, strings.Repeat("ş", 60)+"...", got)
}

func TestClone(t *testing.T) {
	p := Project{ID: "1", Result: &EvaluationResult{TaskList: []Task{{ID: 1}}}}
	c := p.Clone()
	c.Result.TaskList[0].Completed = true
	c.Result.Evaluation = "changed"

	assert.False(t, p.Result.TaskList[0].Completed)
	assert.Empty(t, p.Result.Evaluation)
	assert.Nil(t, Project{}.Clone().Result)
}

func TestSummarize(t *testing.T) {
	p := &Project{ID: "9", ProjectIdea: "idea", SkillLevel: SkillAdvanced, Result: &EvaluationResult{TaskList: []Task{{ID: 1, Completed: true}}}}
	s := Summarize(p)
	assert.Equal(t, "9", s.ID)
	assert.Equal(t, "idea", s.Idea)
	assert.Equal(t, 100, s.Progress.Percent)
}
