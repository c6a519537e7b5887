package main

import (
	"time"

	"cloud.google.com/go/spanner"

	"github.com/light-bringer/pricing-service/internal/models/m_outbox"
	"github.com/light-bringer/pricing-service/internal/pkg/query"
)

type retentionPolicy struct {
	Status string
	Cutoff time.Time
}

// retentionPolicies returns one policy per terminal status.
func retentionPolicies(now time.Time, completedDays, failedDays int) []retentionPolicy {
	days := map[string]int{
		m_outbox.StatusCompleted: completedDays,
		m_outbox.StatusFailed:    failedDays,
	}
	policies := make([]retentionPolicy, 0, len(m_outbox.TerminalStatuses))
	for _, status := range m_outbox.TerminalStatuses {
		policies = append(policies, retentionPolicy{
			Status: status,
			Cutoff: now.UTC().AddDate(0, 0, -days[status]),
		})
	}
	return policies
}

func (p retentionPolicy) base() *query.Builder {
	return query.From(m_outbox.TableName).
		Where(query.Eq(m_outbox.Status, p.Status)).
		Where(query.Lt(m_outbox.ProcessedAt, p.Cutoff))
}

func (p retentionPolicy) countStatement() spanner.Statement {
	return p.base().Select("COUNT(*)").Build()
}

func (p retentionPolicy) batchStatement(batch int64) spanner.Statement {
	return p.base().
		Select(m_outbox.EventID).
		OrderBy(m_outbox.ProcessedAt, query.Asc).
		Limit(batch).
		Build()
}
