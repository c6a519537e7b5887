package m_client_group

// Field name constants for the client_groups table.
const (
	TableName = "client_groups"

	GroupID          = "group_id"
	Name             = "name"
	GeneralDiscount  = "general_discount"
	PremiumDiscount  = "premium_discount"
	ImportedDiscount = "imported_discount"
)

var Columns = []string{GroupID, Name, GeneralDiscount, PremiumDiscount, ImportedDiscount}
