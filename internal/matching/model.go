// Package matching scores job postings against a candidate profile.
//
// The scorer is a fixed-rule heuristic: four sub-scores (field and
// specialization, skills, experience, location) are combined with constant
// weights into a percentage. It holds no state between calls.
package matching

// User is a candidate profile. Empty strings mean the value is unknown.
type User struct {
	ID                string       `json:"id" validate:"required"`
	Name              string       `json:"name"`
	Email             string       `json:"email"`
	Field             string       `json:"field"`
	SubField          string       `json:"subField"`
	Skills            []string     `json:"skills"`
	YearsOfExperience string       `json:"yearsOfExperience"`
	Province          string       `json:"province"`
	City              string       `json:"city"`
	Summary           string       `json:"summary"`
	Experience        []Experience `json:"experience"`
	Education         []Education  `json:"education"`
}

type Experience struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Duration    string `json:"duration"`
	Description string `json:"description"`
}

type Education struct {
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	Year        string `json:"year"`
}

// Job is a job posting. Status is not used for scoring.
type Job struct {
	ID              string `json:"id" validate:"required"`
	Title           string `json:"title"`
	CompanyName     string `json:"companyName"`
	JobField        string `json:"jobField"`
	Specialization  string `json:"specialization"`
	Requirements    string `json:"requirements"`
	ExperienceLevel string `json:"experienceLevel"`
	Description     string `json:"description"`
	City            string `json:"city"`
	Province        string `json:"province"`
	Status          string `json:"status"`
}

// Breakdown holds per-dimension sub-scores, each in [0, 1].
type Breakdown struct {
	Field      float64 `json:"field"`
	Skills     float64 `json:"skills"`
	Experience float64 `json:"experience"`
	Location   float64 `json:"location"`
}

// MatchResult is the outcome of scoring one user against one job.
type MatchResult struct {
	MatchPercentage     int       `json:"matchPercentage"`
	Breakdown           Breakdown `json:"breakdown"`
	MatchedSkills       []string  `json:"matchedSkills,omitempty"`
	RelatedSkills       []string  `json:"relatedSkills,omitempty"`
	MissingRequirements []string  `json:"missingRequirements,omitempty"`
	Reasons             []string  `json:"reasons,omitempty"`
}
