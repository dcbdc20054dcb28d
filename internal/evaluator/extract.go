package evaluator

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Busrapehlivan/project-advisor/internal/projects/domain"
)

// ExtractResult pulls the JSON object out of free-form model output. It takes
// everything from the first '{' to the last '}' and decodes it. Any failure is
// reported as domain.ErrEvaluation; a partial result is never returned.
func ExtractResult(text string) (*domain.EvaluationResult, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end < start {
		return nil, fmt.Errorf("%w: no JSON object in response", domain.ErrEvaluation)
	}

	var res domain.EvaluationResult
	if err := json.Unmarshal([]byte(text[start:end+1]), &res); err != nil {
		return nil, fmt.Errorf("%w: decode response: %w", domain.ErrEvaluation, err)
	}
	if strings.TrimSpace(res.Evaluation) == "" {
		return nil, fmt.Errorf("%w: response has no evaluation", domain.ErrEvaluation)
	}
	if res.TaskList == nil {
		res.TaskList = []domain.Task{}
	}
	renumberIfAmbiguous(res.TaskList)
	return &res, nil
}

// renumberIfAmbiguous assigns ids 1..n in order when the model returned
// missing or repeated task ids.
func renumberIfAmbiguous(tasks []domain.Task) {
	seen := make(map[int]bool, len(tasks))
	ok := true
	for _, t := range tasks {
		if t.ID <= 0 || seen[t.ID] {
			ok = false
			break
		}
		seen[t.ID] = true
	}
	if ok {
		return
	}
	for i := range tasks {
		tasks[i].ID = i + 1
	}
}
