package m_client

import "cloud.google.com/go/spanner"

// Data represents a row of the clients table.
type Data struct {
	ClientID string             `spanner:"client_id"`
	Name     string             `spanner:"name"`
	GroupID  spanner.NullString `spanner:"group_id"`
}
