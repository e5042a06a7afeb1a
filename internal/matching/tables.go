package matching

// Lookup tables used by the sub-scorers. Relations are declared one way here
// and symmetrized at package init; nothing mutates them afterwards.

var fieldRelations = map[string][]string{
	"information technology": {"computer science", "software engineering", "computer engineering", "data science", "information systems"},
	"computer science":       {"software engineering", "data science", "computer engineering", "mathematics"},
	"engineering":            {"computer engineering", "electrical engineering", "mechanical engineering", "civil engineering"},
	"finance":                {"accounting", "economics", "banking", "investment"},
	"accounting":             {"auditing", "taxation"},
	"marketing":              {"sales", "advertising", "communications", "public relations"},
	"business":               {"management", "business administration", "finance", "marketing"},
	"healthcare":             {"medicine", "nursing", "pharmacy", "public health"},
	"education":              {"teaching", "training"},
	"human resources":        {"recruitment", "administration"},
	"law":                    {"legal", "compliance"},
	"hospitality":            {"tourism", "food and beverage"},
	"logistics":              {"supply chain", "transport"},
	"media":                  {"journalism", "communications", "design"},
	"design":                 {"graphic design"},
}

var specializationRelations = map[string][]string{
	"web development":        {"software development", "frontend development", "backend development", "full stack development", "mobile development"},
	"software development":   {"backend development", "mobile development", "devops", "quality assurance"},
	"frontend development":   {"full stack development", "ui ux design"},
	"backend development":    {"full stack development", "devops", "database administration"},
	"data science":           {"data analysis", "machine learning", "business intelligence", "data engineering"},
	"data analysis":          {"business intelligence"},
	"network administration": {"system administration", "cybersecurity", "cloud computing", "technical support"},
	"system administration":  {"devops", "cloud computing", "technical support"},
	"cybersecurity":          {"information security"},
	"digital marketing":      {"social media marketing", "content marketing", "seo"},
	"financial analysis":     {"investment banking", "financial planning"},
	"recruitment":            {"talent acquisition"},
}

// skillAliases groups spellings of the same skill; the first entry is canonical.
var skillAliases = [][]string{
	{"javascript", "js", "ecmascript"},
	{"typescript", "ts"},
	{"node.js", "nodejs", "node"},
	{"react", "react.js", "reactjs"},
	{"vue", "vue.js", "vuejs"},
	{"angular", "angularjs", "angular.js"},
	{"next.js", "nextjs"},
	{"go", "golang"},
	{"postgresql", "postgres"},
	{"kubernetes", "k8s"},
	{"c#", "csharp"},
	{"c++", "cpp"},
	{".net", "dotnet"},
	{"ci/cd", "cicd", "ci cd"},
	{"machine learning", "ml"},
	{"aws", "amazon web services"},
	{"google cloud", "gcp"},
	{"excel", "microsoft excel", "ms excel"},
	{"rest", "rest api", "restful"},
}

// skillRelations lists ecosystem-adjacent skills by canonical name.
var skillRelations = map[string][]string{
	"javascript":         {"react", "node.js", "typescript", "vue", "angular", "express", "jquery", "next.js"},
	"typescript":         {"angular", "react", "node.js"},
	"react":              {"redux", "next.js", "react native"},
	"node.js":            {"express", "nestjs"},
	"python":             {"django", "flask", "fastapi", "pandas", "numpy"},
	"java":               {"spring", "spring boot", "kotlin", "hibernate"},
	"kotlin":             {"android"},
	"swift":              {"ios", "objective-c"},
	"c#":                 {".net", "asp.net"},
	"sql":                {"mysql", "postgresql", "sql server", "oracle", "sqlite"},
	"mysql":              {"postgresql"},
	"aws":                {"azure", "google cloud"},
	"docker":             {"kubernetes"},
	"html":               {"css"},
	"php":                {"laravel"},
	"ruby":               {"rails"},
	"machine learning":   {"tensorflow", "pytorch", "data science"},
	"excel":              {"power bi", "data analysis"},
	"accounting":         {"bookkeeping", "financial reporting"},
	"project management": {"agile", "scrum"},
}

// experienceBuckets is the ordered experience vocabulary shared by users and jobs.
var experienceBuckets = []struct {
	label string
	lower int
}{
	{"0-1 years", 0},
	{"1-2 years", 1},
	{"2-3 years", 2},
	{"3-5 years", 3},
	{"5-7 years", 5},
	{"7-10 years", 7},
	{"10+ years", 10},
}

// experienceAliases maps descriptive levels to a bucket index.
var experienceAliases = map[string]int{
	"noexperience": 0,
	"lessthan1":    0,
	"entrylevel":   0,
	"entry":        0,
	"graduate":     0,
	"internship":   0,
	"junior":       1,
	"intermediate": 3,
	"midlevel":     3,
	"senior":       4,
	"midsenior":    4,
	"lead":         5,
	"principal":    5,
	"expert":       5,
	"executive":    6,
	"morethan10":   6,
}

var provinceAliases = map[string]string{
	"gp":                "gauteng",
	"wc":                "western cape",
	"ec":                "eastern cape",
	"kzn":               "kwazulu natal",
	"fs":                "free state",
	"nw":                "north west",
	"nc":                "northern cape",
	"lp":                "limpopo",
	"mp":                "mpumalanga",
	"natal":             "kwazulu natal",
	"orange free state": "free state",
}

var cityProvinces = map[string]string{
	"johannesburg":     "gauteng",
	"pretoria":         "gauteng",
	"tshwane":          "gauteng",
	"soweto":           "gauteng",
	"sandton":          "gauteng",
	"midrand":          "gauteng",
	"centurion":        "gauteng",
	"randburg":         "gauteng",
	"roodepoort":       "gauteng",
	"benoni":           "gauteng",
	"boksburg":         "gauteng",
	"germiston":        "gauteng",
	"kempton park":     "gauteng",
	"vereeniging":      "gauteng",
	"cape town":        "western cape",
	"stellenbosch":     "western cape",
	"paarl":            "western cape",
	"george":           "western cape",
	"bellville":        "western cape",
	"worcester":        "western cape",
	"durban":           "kwazulu natal",
	"pietermaritzburg": "kwazulu natal",
	"richards bay":     "kwazulu natal",
	"umhlanga":         "kwazulu natal",
	"newcastle":        "kwazulu natal",
	"port elizabeth":   "eastern cape",
	"gqeberha":         "eastern cape",
	"east london":      "eastern cape",
	"mthatha":          "eastern cape",
	"bloemfontein":     "free state",
	"welkom":           "free state",
	"polokwane":        "limpopo",
	"tzaneen":          "limpopo",
	"mbombela":         "mpumalanga",
	"nelspruit":        "mpumalanga",
	"witbank":          "mpumalanga",
	"emalahleni":       "mpumalanga",
	"kimberley":        "northern cape",
	"upington":         "northern cape",
	"mahikeng":         "north west",
	"rustenburg":       "north west",
	"potchefstroom":    "north west",
}

var (
	relatedFields          = symmetrize(fieldRelations, normalizeName)
	relatedSpecializations = symmetrize(specializationRelations, normalizeName)
	relatedSkills          = symmetrize(skillRelations, canonicalSkill)

	// skillVariantsByCanonical lists every spelling of a canonical skill.
	skillVariantsByCanonical = buildSkillVariants()
)

func symmetrize(relations map[string][]string, normalize func(string) string) map[string]map[string]bool {
	out := make(map[string]map[string]bool, len(relations)*2)
	link := func(a, b string) {
		if out[a] == nil {
			out[a] = make(map[string]bool)
		}
		out[a][b] = true
	}

	for from, targets := range relations {
		a := normalize(from)
		for _, to := range targets {
			b := normalize(to)
			if a == b {
				continue
			}
			link(a, b)
			link(b, a)
		}
	}

	return out
}

func buildSkillVariants() map[string][]string {
	out := make(map[string][]string, len(skillAliases))
	for _, group := range skillAliases {
		canonical := normalizeSkill(group[0])
		for _, alias := range group {
			out[canonical] = append(out[canonical], normalizeSkill(alias))
		}
	}
	return out
}
