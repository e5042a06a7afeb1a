package matching

import "strings"

const (
	// relatedSkillCredit is the share of a requirement covered by an
	// ecosystem-adjacent skill instead of the literal one.
	relatedSkillCredit = 0.6
	// skillSaturation is the coverage at which the skill score peaks.
	skillSaturation = 0.8
)

type skillMatch struct {
	score   float64
	known   bool
	matched []string
	related []string
	missing []string
}

type userSkill struct {
	name      string
	canonical string
}

func collectSkills(skills []string) []userSkill {
	out := make([]userSkill, 0, len(skills))
	seen := make(map[string]bool, len(skills))
	for _, skill := range skills {
		name := strings.TrimSpace(skill)
		canonical := canonicalSkill(name)
		if canonical == "" || seen[canonical] {
			continue
		}
		seen[canonical] = true
		out = append(out, userSkill{name: name, canonical: canonical})
	}
	return out
}

func phraseHasSkill(phrase, canonical string) bool {
	for _, variant := range skillVariants(canonical) {
		if containsTerm(phrase, variant) {
			return true
		}
	}
	return false
}

func phraseHasRelated(phrase, canonical string) bool {
	for related := range relatedSkills[canonical] {
		if phraseHasSkill(phrase, related) {
			return true
		}
	}
	return false
}

// skillScore measures how many requirement phrases the user's skills cover.
func skillScore(user User, job Job) skillMatch {
	phrases := splitRequirements(job.Requirements)
	skills := collectSkills(user.Skills)
	if len(phrases) == 0 || len(skills) == 0 {
		return skillMatch{score: neutralScore}
	}

	matched := make(map[string]bool)
	related := make(map[string]bool)
	var missing []string
	var credit float64

	for _, phrase := range phrases {
		exact := false
		for _, skill := range skills {
			if phraseHasSkill(phrase, skill.canonical) {
				matched[skill.canonical] = true
				exact = true
			}
		}
		if exact {
			credit++
			continue
		}

		adjacent := false
		for _, skill := range skills {
			if phraseHasRelated(phrase, skill.canonical) {
				related[skill.canonical] = true
				adjacent = true
			}
		}
		if adjacent {
			credit += relatedSkillCredit
			continue
		}

		missing = append(missing, phrase)
	}

	result := skillMatch{
		score:   min(1.0, credit/float64(len(phrases))/skillSaturation),
		known:   true,
		missing: missing,
	}
	for _, skill := range skills {
		switch {
		case matched[skill.canonical]:
			result.matched = append(result.matched, skill.name)
		case related[skill.canonical]:
			result.related = append(result.related, skill.name)
		}
	}

	return result
}
