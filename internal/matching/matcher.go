package matching

import (
	"fmt"
	"math"
	"strings"
)

// Weights of each dimension in the final percentage. They sum to 1.
const (
	fieldWeight      = 0.40
	skillsWeight     = 0.30
	experienceWeight = 0.15
	locationWeight   = 0.15
)

// CalculateJobMatch scores how well the user fits the job.
// It never fails: missing values contribute a neutral sub-score.
func CalculateJobMatch(user User, job Job) MatchResult {
	field, fieldMatch, specMatch := fieldScore(user, job)
	skills := skillScore(user, job)
	experience, distance, experienceKnown := experienceScore(user, job)
	location, locMatch := locationScore(user, job)

	total := fieldWeight*field +
		skillsWeight*skills.score +
		experienceWeight*experience +
		locationWeight*location

	return MatchResult{
		MatchPercentage: toPercentage(total),
		Breakdown: Breakdown{
			Field:      field,
			Skills:     skills.score,
			Experience: experience,
			Location:   location,
		},
		MatchedSkills:       skills.matched,
		RelatedSkills:       skills.related,
		MissingRequirements: skills.missing,
		Reasons: []string{
			fieldReason(fieldMatch, specMatch),
			skillReason(skills),
			experienceReason(distance, experienceKnown),
			locationReason(locMatch),
		},
	}
}

func toPercentage(total float64) int {
	pct := math.Round(total * 100)
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return int(pct)
}

func fieldReason(field, spec categoryMatch) string {
	switch {
	case field == categoryExact && spec == categoryExact:
		return "Field and specialization match"
	case field == categoryUnknown && spec == categoryUnknown:
		return "Field not specified"
	case field == categoryUnrelated:
		return "Field does not match"
	default:
		return fmt.Sprintf("Field %s, specialization %s", field, spec)
	}
}

func skillReason(s skillMatch) string {
	if !s.known {
		return "Skills or requirements not specified"
	}

	var parts []string
	switch {
	case s.score >= 0.7:
		parts = append(parts, "Strong skill match")
	case s.score >= 0.4:
		parts = append(parts, "Moderate skill match")
	case s.score > 0:
		parts = append(parts, "Weak skill match")
	default:
		return "No skill matches"
	}

	if len(s.matched) > 0 {
		parts = append(parts, fmt.Sprintf("matched: %s", strings.Join(s.matched, ", ")))
	}
	if len(s.related) > 0 {
		parts = append(parts, fmt.Sprintf("related: %s", strings.Join(s.related, ", ")))
	}

	return strings.Join(parts, "; ")
}

func experienceReason(distance int, known bool) string {
	switch {
	case !known:
		return "Experience not specified"
	case distance == 0:
		return "Experience level matches"
	case distance > 0:
		return fmt.Sprintf("Experience above the requested level by %d bucket(s)", distance)
	default:
		return fmt.Sprintf("Experience below the requested level by %d bucket(s)", -distance)
	}
}

func locationReason(m locationMatch) string {
	if m == locationUnknown {
		return "Location not specified"
	}
	return "Location: " + m.String()
}
