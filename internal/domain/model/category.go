package model

// Category classifies an event. The set is closed; anything the remote
// store delivers outside it collapses to CategoryPersonal.
type Category string

// The seven known categories.
const (
	CategoryPersonal Category = "personal"
	CategoryStudy    Category = "study"
	CategoryHealth   Category = "health"
	CategoryBirthday Category = "birthday"
	CategoryMeeting  Category = "meeting"
	CategoryTravel   Category = "travel"
	CategoryOther    Category = "other"
)

// categoryColors maps each category to its display accent.
var categoryColors = map[Category]string{
	CategoryPersonal: "#8b5cf6",
	CategoryStudy:    "#3b82f6",
	CategoryHealth:   "#10b981",
	CategoryBirthday: "#ec4899",
	CategoryMeeting:  "#f59e0b",
	CategoryTravel:   "#06b6d4",
	CategoryOther:    "#6b7280",
}

// ParseCategory maps a raw string onto the closed enumeration,
// falling back to CategoryPersonal for unknown or missing values.
func ParseCategory(s string) Category {
	c := Category(s)
	if _, ok := categoryColors[c]; ok {
		return c
	}
	return CategoryPersonal
}

// Color returns the display accent for the category. Unknown values
// get the personal accent, matching ParseCategory's fallback.
func (c Category) Color() string {
	if color, ok := categoryColors[c]; ok {
		return color
	}
	return categoryColors[CategoryPersonal]
}

// String implements fmt.Stringer.
func (c Category) String() string {
	return string(c)
}
