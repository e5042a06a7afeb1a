package matching

import (
	"strconv"
	"strings"
	"unicode"
)

// Scores by bucket distance; positive distance means the user has more
// experience than the job asks for.
const (
	experienceExact       = 1.0
	experienceOneAbove    = 0.7
	experienceOneBelow    = 0.6
	experienceTwoApart    = 0.25
	experienceFarApart    = 0.05
	experienceUnspecified = neutralScore
)

func experienceKey(label string) string {
	key := strings.ToLower(label)
	key = strings.Join(strings.Fields(key), "")
	for _, suffix := range []string{"years", "year", "yrs", "yr"} {
		key = strings.TrimSuffix(key, suffix)
	}
	return strings.NewReplacer("–", "-", "—", "-", "_", "").Replace(key)
}

var bucketKeys = func() map[string]int {
	out := make(map[string]int, len(experienceBuckets))
	for idx, bucket := range experienceBuckets {
		out[experienceKey(bucket.label)] = idx
	}
	return out
}()

// experienceBucket resolves a label to its index in experienceBuckets.
// It returns -1 when the label is empty or cannot be resolved.
func experienceBucket(label string) int {
	key := experienceKey(label)
	if key == "" {
		return -1
	}
	if idx, ok := bucketKeys[key]; ok {
		return idx
	}
	if idx, ok := aliasBucket(key); ok {
		return idx
	}

	years, ok := firstNumber(key)
	if !ok {
		return -1
	}
	idx := 0
	for i, bucket := range experienceBuckets {
		if years >= bucket.lower {
			idx = i
		}
	}
	return idx
}

// aliasBucket resolves descriptive levels such as "Senior Level" or
// "Graduate / Entry". Each separated part is tried with and without a
// trailing "level".
func aliasBucket(key string) (int, bool) {
	key = strings.NewReplacer("-", "", ".", "").Replace(key)
	parts := strings.FieldsFunc(key, func(r rune) bool {
		return r == '/' || r == ',' || r == '|' || r == '&'
	})
	for _, part := range parts {
		for _, candidate := range []string{part, strings.TrimSuffix(part, "level")} {
			if idx, ok := experienceAliases[candidate]; ok {
				return idx, true
			}
		}
	}
	return 0, false
}

func firstNumber(s string) (int, bool) {
	start := strings.IndexFunc(s, unicode.IsDigit)
	if start < 0 {
		return 0, false
	}
	end := start
	for end < len(s) && unicode.IsDigit(rune(s[end])) {
		end++
	}
	n, err := strconv.Atoi(s[start:end])
	if err != nil {
		return 0, false
	}
	return n, true
}

// experienceScore compares bucket proximity. The second value is the
// distance in buckets and is meaningful only when the third is true.
func experienceScore(user User, job Job) (float64, int, bool) {
	have := experienceBucket(user.YearsOfExperience)
	want := experienceBucket(job.ExperienceLevel)
	if have < 0 || want < 0 {
		return experienceUnspecified, 0, false
	}

	distance := have - want
	switch {
	case distance == 0:
		return experienceExact, distance, true
	case distance == 1:
		return experienceOneAbove, distance, true
	case distance == -1:
		return experienceOneBelow, distance, true
	case distance == 2 || distance == -2:
		return experienceTwoApart, distance, true
	default:
		return experienceFarApart, distance, true
	}
}
