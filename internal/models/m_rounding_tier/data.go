package m_rounding_tier

import (
	"math/big"

	"cloud.google.com/go/spanner"
)

// Data represents a row of the rounding_tiers table.
type Data struct {
	Category string              `spanner:"category"`
	Position int64               `spanner:"position"`
	MaxPrice spanner.NullNumeric `spanner:"max_price"`
	Unit     big.Rat             `spanner:"unit"`
	Version  int64               `spanner:"version"`
}
