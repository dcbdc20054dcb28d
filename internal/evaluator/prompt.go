package evaluator

import (
	"fmt"

	"github.com/Busrapehlivan/project-advisor/internal/projects/domain"
)

const promptTemplate = `I'm a %s level developer with the following project idea: "%s".
Please evaluate this idea and provide:
1. A brief evaluation of the idea (feasibility, complexity, etc.)
2. Recommendations for implementation
3. A detailed task list with steps to complete the project
4. A simple flow diagram description of the project structure

Format your response as a JSON object with the following structure:
{
  "evaluation": "Your evaluation here",
  "recommendations": "Your recommendations here",
  "taskList": [
    {"id": 1, "task": "Task description", "completed": false},
    {"id": 2, "task": "Task description", "completed": false}
  ],
  "flowDiagram": "Description of flow diagram here"
}`

// BuildPrompt renders the instruction sent to the model.
func BuildPrompt(idea string, level domain.SkillLevel) string {
	return fmt.Sprintf(promptTemplate, level, idea)
}
