package repo

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/spanner"
	"google.golang.org/grpc/codes"

	"github.com/light-bringer/pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/pricing-service/internal/models/m_client"
	"github.com/light-bringer/pricing-service/internal/models/m_client_group"
)

// ClientRepo implements ClientDirectory for Spanner.
type ClientRepo struct {
	client *spanner.Client
}

// NewClientRepo creates a new ClientRepo.
func NewClientRepo(client *spanner.Client) *ClientRepo {
	return &ClientRepo{client: client}
}

var _ contracts.ClientDirectory = (*ClientRepo)(nil)

// rowReader is satisfied by both single-use and multi-use read transactions.
type rowReader interface {
	ReadRow(ctx context.Context, table string, key spanner.Key, columns []string) (*spanner.Row, error)
}

// GroupForClient resolves the client's group. Missing rows are not errors.
func (r *ClientRepo) GroupForClient(ctx context.Context, clientID string) (*domain.ClientGroup, bool, error) {
	txn := r.client.ReadOnlyTransaction()
	defer txn.Close()

	row, err := txn.ReadRow(ctx, m_client.TableName, spanner.Key{clientID}, []string{m_client.ClientID, m_client.Name, m_client.GroupID})
	if err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read client: %w", err)
	}

	var data m_client.Data
	if err := row.ToStruct(&data); err != nil {
		return nil, false, fmt.Errorf("failed to parse client: %w", err)
	}
	if !data.GroupID.Valid || data.GroupID.StringVal == "" {
		return nil, false, nil
	}

	group, err := readGroup(ctx, txn, data.GroupID.StringVal)
	if errors.Is(err, domain.ErrGroupNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return group, true, nil
}

// GetGroup retrieves a client group by ID.
func (r *ClientRepo) GetGroup(ctx context.Context, groupID string) (*domain.ClientGroup, error) {
	return readGroup(ctx, r.client.Single(), groupID)
}

func readGroup(ctx context.Context, rr rowReader, groupID string) (*domain.ClientGroup, error) {
	row, err := rr.ReadRow(ctx, m_client_group.TableName, spanner.Key{groupID}, m_client_group.Columns)
	if err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			return nil, domain.ErrGroupNotFound
		}
		return nil, fmt.Errorf("failed to read client group: %w", err)
	}

	var data m_client_group.Data
	if err := row.ToStruct(&data); err != nil {
		return nil, fmt.Errorf("failed to parse client group: %w", err)
	}
	return groupFromData(&data)
}
