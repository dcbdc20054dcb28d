package evaluator

import (
	"testing"

	"github.com/Busrapehlivan/project-advisor/internal/projects/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractResult(t *testing.T) {
	t.Run("plain JSON", func(t *testing.T) {
		res, err := ExtractResult(`{"evaluation":"Good","recommendations":"Use Go","flowDiagram":"A -> B",
			"taskList":[{"id":1,"task":"Design","completed":false},{"id":2,"task":"Build","completed":false}]}`)
		require.NoError(t, err)
		assert.Equal(t, "Good", res.Evaluation)
		assert.Equal(t, "Use Go", res.Recommendations)
		assert.Equal(t, "A -> B", res.FlowDiagram)
		assert.Equal(t, []domain.Task{{ID: 1, Task: "Design"}, {ID: 2, Task: "Build"}}, res.TaskList)
	})

	t.Run("wrapped in prose and code fences", func(t *testing.T) {
		text := "Sure! Here is the evaluation:\n```json\n{\"evaluation\":\"Fine\",\"taskList\":[]}\n```\nGood luck!"
		res, err := ExtractResult(text)
		require.NoError(t, err)
		assert.Equal(t, "Fine", res.Evaluation)
		assert.Empty(t, res.TaskList)
	})

	t.Run("nested braces inside strings", func(t *testing.T) {
		res, err := ExtractResult(`x {"evaluation":"use {curly} braces","flowDiagram":"{a}->{b}"} y`)
		require.NoError(t, err)
		assert.Equal(t, "use {curly} braces", res.Evaluation)
		assert.Equal(t, "{a}->{b}", res.FlowDiagram)
	})

	t.Run("missing task list becomes empty", func(t *testing.T) {
		res, err := ExtractResult(`{"evaluation":"ok"}`)
		require.NoError(t, err)
		assert.NotNil(t, res.TaskList)
	})

	t.Run("renumbers repeated ids", func(t *testing.T) {
		res, err := ExtractResult(`{"evaluation":"ok","taskList":[{"id":1,"task":"a"},{"id":1,"task":"b"},{"task":"c"}]}`)
		require.NoError(t, err)
		assert.Equal(t, []int{1, 2, 3}, []int{res.TaskList[0].ID, res.TaskList[1].ID, res.TaskList[2].ID})
		assert.Equal(t, "b", res.TaskList[1].Task)
	})

	t.Run("keeps distinct ids as returned", func(t *testing.T) {
		res, err := ExtractResult(`{"evaluation":"ok","taskList":[{"id":10,"task":"a"},{"id":3,"task":"b"}]}`)
		require.NoError(t, err)
		assert.Equal(t, 10, res.TaskList[0].ID)
		assert.Equal(t, 3, res.TaskList[1].ID)
	})

	failures := map[string]string{
		"no braces":        "I cannot help with that.",
		"only closing":     "} nope",
		"reversed":         "} and then {",
		"truncated":        `{"evaluation":"Good","taskList":[{"id":1,"task":"Des`,
		"truncated tail":   `{"evaluation":"Good","taskList":[{"id":1}]`,
		"not an object":    `{"evaluation": }`,
		"empty evaluation": `{"evaluation":"  ","taskList":[]}`,
		"wrong types":      `{"evaluation":"ok","taskList":"none"}`,
		"empty":            "",
	}
	for name, text := range failures {
		t.Run("fails closed: "+name, func(t *testing.T) {
			res, err := ExtractResult(text)
			assert.ErrorIs(t, err, domain.ErrEvaluation)
			assert.Nil(t, res)
		})
	}
}

func TestBuildPrompt(t *testing.T) {
	p := BuildPrompt("A recipe app", domain.SkillIntermediate)
	assert.Contains(t, p, `I'm a Intermediate level developer`)
	assert.Contains(t, p, `"A recipe app"`)
	assert.Contains(t, p, `"taskList"`)
	assert.Contains(t, p, `"flowDiagram"`)
}
