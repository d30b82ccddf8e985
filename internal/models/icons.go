package models

// Icon is a validated reference into the icon set the UI ships with.
type Icon struct {
	Name string `json:"name"`
}

// FallbackIcon is returned for icon names outside the known set, so an
// unknown name renders as a generic glyph instead of nothing.
var FallbackIcon = Icon{Name: "MoreHorizontal"}

var knownIcons = map[string]struct{}{
	"Utensils":       {},
	"Film":           {},
	"Car":            {},
	"ShoppingBag":    {},
	"FileText":       {},
	"MoreHorizontal": {},
	"Briefcase":      {},
	"Home":           {},
	"Heart":          {},
	"Plane":          {},
	"GraduationCap":  {},
	"Gift":           {},
}

// ResolveIcon maps a stored icon name to a known icon, falling back to
// FallbackIcon for unknown names.
func ResolveIcon(name string) Icon {
	if _, ok := knownIcons[name]; ok {
		return Icon{Name: name}
	}
	return FallbackIcon
}

// KnownIcon reports whether the name is part of the shipped icon set.
func KnownIcon(name string) bool {
	_, ok := knownIcons[name]
	return ok
}
