package domain

import (
	"fmt"
	"strings"
)

type SkillLevel string

const (
	SkillBeginner     SkillLevel = "Beginner"
	SkillIntermediate SkillLevel = "Intermediate"
	SkillAdvanced     SkillLevel = "Advanced"
)

// Accepted labels, including the Turkish ones sent by the mobile client.
var skillAliases = map[string]SkillLevel{
	"beginner":     SkillBeginner,
	"başlangıç":    SkillBeginner,
	"intermediate": SkillIntermediate,
	"orta":         SkillIntermediate,
	"advanced":     SkillAdvanced,
	"i\u0307leri":  SkillAdvanced,
	"ileri":        SkillAdvanced,
}

// ParseSkillLevel normalises a user supplied label.
func ParseSkillLevel(s string) (SkillLevel, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if lvl, ok := skillAliases[key]; ok {
		return lvl, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidSkillLevel, s)
}

func (s SkillLevel) Valid() bool {
	switch s {
	case SkillBeginner, SkillIntermediate, SkillAdvanced:
		return true
	}
	return false
}
