package models

// BatteryCategory groups batteries stored under one data directory
type BatteryCategory struct {
	Name        string         `json:"name"`
	Slug        string         `json:"slug"` // "lithium-ion"
	Description string         `json:"description"`
	Batteries   []*BatterySpec `json:"batteries"`
}

// CategoryInfo is the static metadata of a category, without its batteries
type CategoryInfo struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

// Categories is the fixed, ordered set of catalog categories.
// Membership of a battery is decided by the directory it is stored in.
var Categories = []CategoryInfo{
	{
		Name:        "Traditional Batteries",
		Slug:        "traditional",
		Description: "Standard alkaline, carbon-zinc, and NiMH batteries in common sizes like AA, AAA, C, D, and 9V.",
	},
	{
		Name:        "Lithium-ion Batteries",
		Slug:        "lithium-ion",
		Description: "Rechargeable lithium-ion cells in various cylindrical formats like 18650, 21700, and others.",
	},
	{
		Name:        "Button Cells",
		Slug:        "button-cells",
		Description: "Coin-shaped batteries including CR2032, AG13, LR44 and other watch/electronics batteries.",
	},
	{
		Name:        "Camera Batteries",
		Slug:        "camera",
		Description: "Specialized lithium batteries for film and digital cameras, including vintage and professional formats.",
	},
	{
		Name:        "Hearing Aid Batteries",
		Slug:        "hearing-aid",
		Description: "Zinc-air batteries for hearing aids and medical devices, featuring air-activated chemistry and color-coding.",
	},
}

// LookupCategory returns the metadata for a category slug
func LookupCategory(slug string) (CategoryInfo, bool) {
	for _, c := range Categories {
		if c.Slug == slug {
			return c, true
		}
	}
	return CategoryInfo{}, false
}
