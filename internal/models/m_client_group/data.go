package m_client_group

// Data represents a row of the client_groups table. Discounts are percentages 0-100.
type Data struct {
	GroupID          string `spanner:"group_id"`
	Name             string `spanner:"name"`
	GeneralDiscount  int64  `spanner:"general_discount"`
	PremiumDiscount  int64  `spanner:"premium_discount"`
	ImportedDiscount int64  `spanner:"imported_discount"`
}
