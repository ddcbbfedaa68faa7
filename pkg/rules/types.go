package rules

// Category classifies a template file
type Category string

const (
	CategoryRules           Category = "rules"
	CategorySkills          Category = "skills"
	CategoryDocsSpec        Category = "docs-spec"
	CategoryDocsProcess     Category = "docs-process"
	CategorySingletonConfig Category = "singleton-config"
)

// Categories lists every category in materialization order
var Categories = []Category{
	CategoryDocsSpec,
	CategoryDocsProcess,
	CategorySingletonConfig,
	CategorySkills,
	CategoryRules,
}

// Policy holds the fixed attributes of a category
type Policy struct {
	// Substitutable means placeholders are applied when staging and materializing
	Substitutable bool
	// RefreshOnUpdate means an existing file is overwritten on update runs
	RefreshOnUpdate bool
}

var policies = map[Category]Policy{
	CategoryRules:           {Substitutable: true, RefreshOnUpdate: true},
	CategorySkills:          {Substitutable: true, RefreshOnUpdate: true},
	CategoryDocsSpec:        {Substitutable: false, RefreshOnUpdate: false},
	CategoryDocsProcess:     {Substitutable: false, RefreshOnUpdate: false},
	CategorySingletonConfig: {Substitutable: true, RefreshOnUpdate: true},
}

// PolicyOf returns the static attributes of a category. Unknown categories
// get the zero policy: verbatim and never refreshed.
func PolicyOf(c Category) Policy {
	return policies[c]
}

// Valid reports whether c is one of the known categories
func (c Category) Valid() bool {
	_, ok := policies[c]
	return ok
}

func (c Category) String() string {
	return string(c)
}
