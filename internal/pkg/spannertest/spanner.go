// Package spannertest provides emulator helpers for integration tests.
package spannertest

import (
	"context"
	"fmt"
	"os"
	"testing"

	"cloud.google.com/go/spanner"
	"github.com/stretchr/testify/require"
)

// Tables are cleaned children first.
var Tables = []string{
	"outbox_events",
	"rounding_tiers",
	"price_tiers",
	"group_override_prices",
	"clients",
	"client_groups",
	"half_product_custom_options",
	"half_product_specifications",
	"half_products",
	"product_options",
	"products",
}

// Setup creates a client against the test database and empties every table.
// Tests are skipped when SPANNER_EMULATOR_HOST is unset.
func Setup(t *testing.T) *spanner.Client {
	t.Helper()

	if os.Getenv("SPANNER_EMULATOR_HOST") == "" {
		t.Skip("SPANNER_EMULATOR_HOST not set")
	}

	client, err := spanner.NewClient(context.Background(), Database())
	require.NoError(t, err, "failed to create Spanner client")

	Clean(t, client)
	t.Cleanup(func() {
		Clean(t, client)
		client.Close()
	})
	return client
}

// Database returns the test database path.
func Database() string {
	if db := os.Getenv("SPANNER_TEST_DATABASE"); db != "" {
		return db
	}
	return "projects/test-project/instances/test-instance/databases/pricing-test"
}

// Clean deletes all rows of every table.
func Clean(t *testing.T, client *spanner.Client) {
	t.Helper()

	muts := make([]*spanner.Mutation, 0, len(Tables))
	for _, table := range Tables {
		muts = append(muts, spanner.Delete(table, spanner.AllKeys()))
	}
	_, err := client.Apply(context.Background(), muts)
	require.NoError(t, err, "failed to clean database")
}

// Apply writes fixture mutations.
func Apply(t *testing.T, client *spanner.Client, muts ...*spanner.Mutation) {
	t.Helper()
	_, err := client.Apply(context.Background(), muts)
	require.NoError(t, err, "failed to apply fixtures")
}

// AssertRowCount asserts the number of rows in a table.
func AssertRowCount(t *testing.T, client *spanner.Client, table string, expected int) {
	t.Helper()

	iter := client.Single().Query(context.Background(), spanner.Statement{
		SQL: fmt.Sprintf("SELECT COUNT(*) FROM %s", table),
	})
	defer iter.Stop()

	row, err := iter.Next()
	require.NoError(t, err, "failed to query row count")

	var count int64
	require.NoError(t, row.Columns(&count), "failed to parse count")
	require.Equal(t, int64(expected), count, "unexpected row count in table %s", table)
}
