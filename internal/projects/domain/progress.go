package domain

import (
	"math"
	"time"
	"unicode/utf8"
)

const summaryIdeaLen = 60

type Progress struct {
	Completed int `json:"completed"`
	Total     int `json:"total"`
	Percent   int `json:"percent"`
}

// ProgressOf counts completed tasks. Percent is rounded and 0 for an empty list.
func ProgressOf(p *Project) Progress {
	tasks := p.Tasks()
	out := Progress{Total: len(tasks)}
	for _, t := range tasks {
		if t.Completed {
			out.Completed++
		}
	}
	if out.Total > 0 {
		out.Percent = int(math.Round(float64(out.Completed) / float64(out.Total) * 100))
	}
	return out
}

// Summary is the list view of a project.
type Summary struct {
	ID         string     `json:"id"`
	Idea       string     `json:"projectIdea"`
	SkillLevel SkillLevel `json:"skillLevel"`
	CreatedAt  time.Time  `json:"createdAt"`
	Progress   Progress   `json:"progress"`
}

func Summarize(p *Project) Summary {
	return Summary{
		ID:         p.ID,
		Idea:       TruncateIdea(p.ProjectIdea),
		SkillLevel: p.SkillLevel,
		CreatedAt:  p.CreatedAt,
		Progress:   ProgressOf(p),
	}
}

// TruncateIdea shortens long ideas to 60 runes followed by "...".
func TruncateIdea(idea string) string {
	if utf8.RuneCountInString(idea) <= summaryIdeaLen {
		return idea
	}
	r := []rune(idea)
	return string(r[:summaryIdeaLen]) + "..."
}
