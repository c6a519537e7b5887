package m_rounding_tier

// Field name constants for the rounding_tiers table.
// Rows of one category are ordered by position; the last position is unbounded.
// Every row of a category carries the same version.
const (
	TableName = "rounding_tiers"

	Category  = "category"
	Position  = "position"
	MaxPrice  = "max_price"
	Unit      = "unit"
	Version   = "version"
	UpdatedAt = "updated_at"
)

var Columns = []string{Category, Position, MaxPrice, Unit, Version}
