package codegen

import "strings"

// ToSnakeCase converts PascalCase or camelCase to snake_case, keeping
// acronyms together ("OrderID" -> "order_id", "HTTPPort" -> "http_port").
func ToSnakeCase(s string) string {
	var result strings.Builder
	runes := []rune(s)

	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if i > 0 && r >= 'A' && r <= 'Z' {
			prevUpper := runes[i-1] >= 'A' && runes[i-1] <= 'Z'
			nextLower := i+1 < len(runes) && runes[i+1] >= 'a' && runes[i+1] <= 'z'
			if !prevUpper || nextLower {
				result.WriteRune('_')
			}
		}
		result.WriteRune(r)
	}

	return strings.ToLower(result.String())
}

// UnitKey returns the generated file name for a wrapper.
func UnitKey(name, suffix string) string {
	return ToSnakeCase(name) + suffix
}

// article returns "an" for names starting with a vowel sound letter.
func article(name string) string {
	if name == "" {
		return "a"
	}
	switch name[0] {
	case 'A', 'E', 'I', 'O', 'U', 'a', 'e', 'i', 'o', 'u':
		return "an"
	}
	return "a"
}

// DeclarationKey is the file name for name when its UnitKey is already taken
// in the package: the declaration name as written, plus the suffix. Go names
// are unique per package, so it only collides with an all-lowercase sibling.
func (s *Synthesizer) DeclarationKey(name string) string {
	return name + s.fileSuffix
}
