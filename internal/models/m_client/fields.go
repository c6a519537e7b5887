package m_client

// Field name constants for the clients table.
const (
	TableName = "clients"

	ClientID = "client_id"
	Name     = "name"
	GroupID  = "group_id"
)
