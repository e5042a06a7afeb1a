package matching

import "strings"

const (
	locationSameCity      = 1.0
	locationSameProvince  = 0.85
	locationOtherProvince = 0.1
	locationUnspecified   = neutralScore
)

type locationMatch int

const (
	locationUnknown locationMatch = iota
	locationCity
	locationProvince
	locationElsewhere
)

func (m locationMatch) String() string {
	switch m {
	case locationCity:
		return "same city"
	case locationProvince:
		return "same province"
	case locationElsewhere:
		return "different province"
	default:
		return "unspecified"
	}
}

var knownProvinces = func() map[string]bool {
	out := make(map[string]bool)
	for _, p := range provinceAliases {
		out[p] = true
	}
	for _, p := range cityProvinces {
		out[p] = true
	}
	return out
}()

func normalizeProvince(province string) string {
	p := strings.TrimSpace(strings.TrimSuffix(normalizeName(province), " province"))
	if alias, ok := provinceAliases[p]; ok {
		return alias
	}
	return p
}

// resolveProvince prefers a known explicit province, then the city lookup,
// then whatever explicit province was given.
func resolveProvince(city, province string) string {
	p := normalizeProvince(province)
	if knownProvinces[p] {
		return p
	}
	if fromCity, ok := cityProvinces[normalizeName(city)]; ok {
		return fromCity
	}
	return p
}

func locationScore(user User, job Job) (float64, locationMatch) {
	userCity, jobCity := normalizeName(user.City), normalizeName(job.City)
	if userCity != "" && userCity == jobCity {
		return locationSameCity, locationCity
	}

	userProvince := resolveProvince(user.City, user.Province)
	jobProvince := resolveProvince(job.City, job.Province)
	switch {
	case userProvince == "" || jobProvince == "":
		return locationUnspecified, locationUnknown
	case userProvince == jobProvince:
		return locationSameProvince, locationProvince
	default:
		return locationOtherProvince, locationElsewhere
	}
}
