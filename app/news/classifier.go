package news

import "strings"

// classifierRule maps a keyword set to a category. Rules are evaluated in
// order and the first match wins, so overlapping keywords resolve to the
// earlier rule.
type classifierRule struct {
	category Category
	keywords []string
}

var classifierRules = []classifierRule{
	{CategoryAI, []string{"ai", "machine learning", "artificial intelligence", "gpt", "openai"}},
	{CategoryStartups, []string{"startup", "funding", "business", "venture", "acquisition"}},
	{CategoryCybersecurity, []string{"security", "hack", "breach", "cyber", "privacy"}},
	{CategoryHardware, []string{"hardware", "device", "chip", "processor"}},
	{CategorySoftwareDev, []string{"software", "programming", "developer", "code"}},
}

// Classify assigns a category to an article based on its title and
// description. Total and deterministic: every input maps to exactly one
// category, defaulting to CategoryOther.
func Classify(title, description string) Category {
	text := strings.ToLower(title + " " + description)

	for _, rule := range classifierRules {
		for _, keyword := range rule.keywords {
			if strings.Contains(text, keyword) {
				return rule.category
			}
		}
	}

	return CategoryOther
}
