package services

import "strings"

// ScoreRecipe counts the pantry ingredients that appear anywhere in the
// recipe's ingredient text, ignoring case. Matching is by substring, so
// "egg" also matches "eggplant".
func ScoreRecipe(ingredients string, pantry []string) int {
	if len(pantry) == 0 || ingredients == "" {
		return 0
	}
	text := strings.ToLower(ingredients)
	score := 0
	for _, p := range pantry {
		if p == "" {
			continue
		}
		if strings.Contains(text, strings.ToLower(p)) {
			score++
		}
	}
	return score
}
