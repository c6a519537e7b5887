package m_custom_option

import "cloud.google.com/go/spanner"

// Data represents a row of the half_product_custom_options table.
// OptionValues holds a JSON array of {"name": string, "price": string|number|null}.
type Data struct {
	HalfProductID string           `spanner:"half_product_id"`
	OptionID      string           `spanner:"option_id"`
	Name          string           `spanner:"name"`
	OptionValues  spanner.NullJSON `spanner:"option_values"`
}
