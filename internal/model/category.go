package model

// Category is the closed set of buckets a message can be filed under.
type Category string

// Category constants. The set is closed: anything a provider returns that is
// not one of the first four collapses to CategoryOther.
const (
	CategoryExpense  Category = "EXPENSE"
	CategoryTask     Category = "TASK"
	CategoryNote     Category = "NOTE"
	CategoryPlanning Category = "PLANNING"
	CategoryOther    Category = "OTHER"
)

// ParseCategory maps a raw provider string onto the closed category set.
// Unknown or empty values become CategoryOther rather than an error so a
// sloppy model response still produces a usable classification.
func ParseCategory(raw string) Category {
	switch Category(raw) {
	case CategoryExpense, CategoryTask, CategoryNote, CategoryPlanning, CategoryOther:
		return Category(raw)
	default:
		return CategoryOther
	}
}

// Persistable reports whether the category maps to a stored record kind.
// PLANNING and OTHER are reply-only.
func (c Category) Persistable() bool {
	switch c {
	case CategoryExpense, CategoryTask, CategoryNote:
		return true
	default:
		return false
	}
}
