// Package committer implements the Golden Mutation Pattern for Spanner transactions.
//
// Repositories never write. They return *spanner.Mutation values which a usecase
// collects into a CommitPlan together with the outbox rows of the same change:
//
//	plan := committer.NewPlan()
//	plan.Add(overrideRepo.UpsertMut(key, price))
//	plan.Add(outboxRepo.InsertMut(outboxEvent))
//	return committer.Apply(ctx, plan)
//
// A plan is applied in one Spanner commit, so a batch such as a rounding table
// rewrite is either fully visible or not at all.
package committer

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"
)

// ErrVersionMismatch is returned when the guarded rows changed since they were read.
var ErrVersionMismatch = errors.New("concurrent modification detected")

// VersionCheck guards a read-modify-write plan with optimistic locking.
// Statement must return a single INT64 column holding the current version.
type VersionCheck struct {
	Key       string
	Statement spanner.Statement
	Expected  int64
}

// CommitPlan is a typed wrapper around Spanner mutations for the Golden Mutation Pattern.
// It collects mutations from multiple sources and applies them atomically.
type CommitPlan struct {
	mutations []*spanner.Mutation
}

// NewPlan creates a new empty CommitPlan.
func NewPlan() *CommitPlan {
	return &CommitPlan{
		mutations: make([]*spanner.Mutation, 0),
	}
}

// Add adds a mutation to the plan.
// Nil mutations are silently ignored for convenience.
func (cp *CommitPlan) Add(mut *spanner.Mutation) {
	if mut != nil {
		cp.mutations = append(cp.mutations, mut)
	}
}

// AddMultiple adds multiple mutations to the plan, preserving their order.
func (cp *CommitPlan) AddMultiple(muts []*spanner.Mutation) {
	for _, mut := range muts {
		cp.Add(mut)
	}
}

// Mutations returns all collected mutations.
func (cp *CommitPlan) Mutations() []*spanner.Mutation {
	return cp.mutations
}

// IsEmpty returns true if the plan has no mutations.
func (cp *CommitPlan) IsEmpty() bool {
	return len(cp.mutations) == 0
}

// Count returns the number of mutations in the plan.
func (cp *CommitPlan) Count() int {
	return len(cp.mutations)
}

// Committer provides transaction execution for CommitPlans.
type Committer struct {
	client *spanner.Client
}

// NewCommitter creates a new Committer.
func NewCommitter(client *spanner.Client) *Committer {
	return &Committer{client: client}
}

// Apply executes the CommitPlan atomically. Mutations are applied in the order they
// were added, so a range delete followed by inserts of the same keys is valid.
func (c *Committer) Apply(ctx context.Context, plan *CommitPlan) error {
	if plan.IsEmpty() {
		return nil
	}

	if _, err := c.client.Apply(ctx, plan.Mutations()); err != nil {
		return fmt.Errorf("failed to apply commit plan: %w", err)
	}

	return nil
}

// ApplyWithVersionCheck executes the CommitPlan only if the version read by check
// inside the transaction still equals check.Expected. The read locks the guarded
// rows, so a concurrent writer either commits first and fails this check, or waits.
func (c *Committer) ApplyWithVersionCheck(ctx context.Context, check VersionCheck, plan *CommitPlan) error {
	if plan.IsEmpty() {
		return nil
	}

	_, err := c.client.ReadWriteTransaction(ctx, func(ctx context.Context, txn *spanner.ReadWriteTransaction) error {
		current, err := readVersion(ctx, txn, check.Statement)
		if err != nil {
			return fmt.Errorf("failed to read version of %s: %w", check.Key, err)
		}
		if current != check.Expected {
			return fmt.Errorf("%w: %s expected version %d, got %d", ErrVersionMismatch, check.Key, check.Expected, current)
		}
		return txn.BufferWrite(plan.Mutations())
	})
	if err != nil {
		if errors.Is(err, ErrVersionMismatch) {
			return err
		}
		return fmt.Errorf("failed to apply commit plan with version check: %w", err)
	}

	return nil
}

func readVersion(ctx context.Context, txn *spanner.ReadWriteTransaction, stmt spanner.Statement) (int64, error) {
	iter := txn.Query(ctx, stmt)
	defer iter.Stop()

	row, err := iter.Next()
	if err == iterator.Done {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	var version int64
	if err := row.Columns(&version); err != nil {
		return 0, err
	}
	return version, nil
}
