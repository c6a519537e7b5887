package committer

import (
	"context"
	"testing"

	"cloud.google.com/go/spanner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommitPlan_Add(t *testing.T) {
	plan := NewPlan()
	assert.True(t, plan.IsEmpty())

	first := spanner.Delete("price_tiers", spanner.Key{"half-1"}.AsPrefix())
	second := spanner.Insert("price_tiers", []string{"half_product_id", "tier_id"}, []interface{}{"half-1", "t1"})

	plan.Add(first)
	plan.Add(nil)
	plan.AddMultiple([]*spanner.Mutation{second, nil})

	require.Equal(t, 2, plan.Count())
	assert.Same(t, first, plan.Mutations()[0])
	assert.Same(t, second, plan.Mutations()[1])
	assert.False(t, plan.IsEmpty())
}

func TestCommitter_ApplyEmptyPlan(t *testing.T) {
	// An empty plan never reaches the client.
	c := NewCommitter(nil)
	assert.NoError(t, c.Apply(context.Background(), NewPlan()))
}
