package matching

const (
	fieldPartWeight          = 0.6
	specializationPartWeight = 0.4

	exactCategoryScore         = 1.0
	relatedCategoryScore       = 0.7
	siblingSpecializationScore = 0.3
	neutralScore               = 0.5
)

type categoryMatch int

const (
	categoryUnknown categoryMatch = iota
	categoryExact
	categoryRelated
	categoryUnrelated
)

func (m categoryMatch) String() string {
	switch m {
	case categoryExact:
		return "exact"
	case categoryRelated:
		return "related"
	case categoryUnrelated:
		return "unrelated"
	default:
		return "unspecified"
	}
}

func compareCategory(a, b string, related map[string]map[string]bool) categoryMatch {
	a, b = normalizeName(a), normalizeName(b)
	switch {
	case a == "" || b == "":
		return categoryUnknown
	case a == b:
		return categoryExact
	case related[a][b]:
		return categoryRelated
	default:
		return categoryUnrelated
	}
}

// fieldScore rates the user's field and specialization against the job's.
func fieldScore(user User, job Job) (float64, categoryMatch, categoryMatch) {
	field := compareCategory(user.Field, job.JobField, relatedFields)
	spec := compareCategory(user.SubField, job.Specialization, relatedSpecializations)

	var fieldPart float64
	switch field {
	case categoryExact:
		fieldPart = exactCategoryScore
	case categoryRelated:
		fieldPart = relatedCategoryScore
	case categoryUnknown:
		fieldPart = neutralScore
	}

	var specPart float64
	switch spec {
	case categoryExact:
		specPart = exactCategoryScore
	case categoryRelated:
		specPart = relatedCategoryScore
	case categoryUnknown:
		specPart = neutralScore
	case categoryUnrelated:
		if field == categoryExact || field == categoryRelated {
			specPart = siblingSpecializationScore
		}
	}

	return fieldPartWeight*fieldPart + specializationPartWeight*specPart, field, spec
}
