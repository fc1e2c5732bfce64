package fund

import "strings"

// Category is the coarse label assigned to a scheme from its name.
type Category string

const (
	CategoryAll      Category = "All Funds"
	CategoryEquity   Category = "Equity"
	CategoryDebt     Category = "Debt"
	CategoryHybrid   Category = "Hybrid"
	CategorySolution Category = "Solution Oriented"
	CategoryOther    Category = "Other"
)

// Categories lists the selectable categories in display order.
var Categories = []Category{
	CategoryAll,
	CategoryEquity,
	CategoryDebt,
	CategoryHybrid,
	CategorySolution,
	CategoryOther,
}

type keywordTier struct {
	category Category
	keywords []string
}

// classification order matters: the first tier with a matching keyword wins
var tiers = []keywordTier{
	{CategoryEquity, []string{"equity", "growth", "midcap", "largecap", "smallcap", "multicap"}},
	{CategoryDebt, []string{"debt", "income", "bond", "gilt", "liquid", "money market"}},
	{CategoryHybrid, []string{"hybrid", "balanced", "aggressive", "conservative"}},
	{CategorySolution, []string{"retirement", "children", "pension"}},
}

// Classify assigns a category to a scheme name by case-insensitive keyword
// matching. Names matching no keyword are CategoryOther.
func Classify(schemeName string) Category {
	name := strings.ToLower(schemeName)
	for _, tier := range tiers {
		for _, kw := range tier.keywords {
			if strings.Contains(name, kw) {
				return tier.category
			}
		}
	}
	return CategoryOther
}

// ParseCategory resolves a user supplied category name. Matching is
// case-insensitive and also accepts the first word of a label, so
// "solution" selects CategorySolution and "all" selects CategoryAll.
func ParseCategory(s string) (Category, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return CategoryAll, true
	}
	for _, c := range Categories {
		label := strings.ToLower(string(c))
		if s == label || s == strings.Fields(label)[0] {
			return c, true
		}
	}
	return "", false
}

// Matches reports whether a summary belongs to the category.
// CategoryAll matches every summary.
func (c Category) Matches(s Summary) bool {
	return c == CategoryAll || s.Category == string(c)
}
