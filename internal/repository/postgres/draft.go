package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"dresscircle-checkout/internal/domain"
	"dresscircle-checkout/internal/repository"
)

type draftOrderRepository struct {
	db *sql.DB
}

func NewDraftOrderRepository(db *sql.DB) repository.DraftOrderRepository {
	return &draftOrderRepository{db: db}
}

// marshalItems is the single place the persisted item shape is produced.
func marshalItems(draft *domain.DraftOrder) ([]byte, []byte, error) {
	items, err := json.Marshal(draft.Items)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal rental items: %w", err)
	}
	services, err := json.Marshal(draft.PhotographyItems)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal photography items: %w", err)
	}
	return items, services, nil
}

func unmarshalItems(draft *domain.DraftOrder, items, services []byte) error {
	if len(items) > 0 {
		if err := json.Unmarshal(items, &draft.Items); err != nil {
			return fmt.Errorf("failed to unmarshal rental items: %w", err)
		}
	}
	if len(services) > 0 {
		if err := json.Unmarshal(services, &draft.PhotographyItems); err != nil {
			return fmt.Errorf("failed to unmarshal photography items: %w", err)
		}
	}
	return nil
}

func (r *draftOrderRepository) Create(ctx context.Context, draft *domain.DraftOrder) error {
	items, services, err := marshalItems(draft)
	if err != nil {
		return err
	}
	query := `INSERT INTO draft_orders (customer_id, status, items, photography_items, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, NOW(), NOW()) RETURNING id`
	if draft.Status == "" {
		draft.Status = domain.DraftStatusBuilding
	}
	return r.db.QueryRowContext(ctx, query, draft.CustomerID, draft.Status, items, services).Scan(&draft.ID)
}

func (r *draftOrderRepository) GetByCustomer(ctx context.Context, customerID int32) (*domain.DraftOrder, error) {
	query := `SELECT id, customer_id, status, items, photography_items, created_on, updated_on
	          FROM draft_orders WHERE customer_id = $1`

	draft := &domain.DraftOrder{}
	var items, services []byte
	var createdOn, updatedOn time.Time
	err := r.db.QueryRowContext(ctx, query, customerID).Scan(
		&draft.ID, &draft.CustomerID, &draft.Status, &items, &services, &createdOn, &updatedOn)
	if err == sql.ErrNoRows {
		return nil, domain.ErrDraftNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := unmarshalItems(draft, items, services); err != nil {
		return nil, err
	}
	draft.CreatedOn = createdOn.Format("2006-01-02")
	draft.UpdatedOn = updatedOn.Format("2006-01-02")
	return draft, nil
}

func (r *draftOrderRepository) SaveItems(ctx context.Context, draft *domain.DraftOrder) error {
	items, services, err := marshalItems(draft)
	if err != nil {
		return err
	}
	query := `UPDATE draft_orders SET items = $1, photography_items = $2, updated_on = NOW() WHERE id = $3`
	res, err := r.db.ExecContext(ctx, query, items, services, draft.ID)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrDraftNotFound
	}
	return nil
}

func (r *draftOrderRepository) BeginSubmission(ctx context.Context, draftID int32) error {
	// The conditional update is the whole submission guard: only one caller
	// can win the BUILDING -> SUBMITTING transition.
	query := `UPDATE draft_orders SET status = $1, updated_on = NOW() WHERE id = $2 AND status = $3`
	res, err := r.db.ExecContext(ctx, query, domain.DraftStatusSubmitting, draftID, domain.DraftStatusBuilding)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrSubmissionInFlight
	}
	return nil
}

func (r *draftOrderRepository) EndSubmission(ctx context.Context, draftID int32) error {
	query := `UPDATE draft_orders SET status = $1, updated_on = NOW() WHERE id = $2 AND status = $3`
	_, err := r.db.ExecContext(ctx, query, domain.DraftStatusBuilding, draftID, domain.DraftStatusSubmitting)
	return err
}

func (r *draftOrderRepository) Delete(ctx context.Context, draftID int32) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM draft_orders WHERE id = $1`, draftID)
	return err
}

func (r *draftOrderRepository) DeleteStale(ctx context.Context, updatedBefore time.Time) (int64, error) {
	query := `DELETE FROM draft_orders WHERE status = $1 AND updated_on < $2`
	res, err := r.db.ExecContext(ctx, query, domain.DraftStatusBuilding, updatedBefore)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *draftOrderRepository) ReleaseStuck(ctx context.Context, submittingSince time.Time) (int64, error) {
	query := `UPDATE draft_orders SET status = $1, updated_on = NOW() WHERE status = $2 AND updated_on < $3`
	res, err := r.db.ExecContext(ctx, query, domain.DraftStatusBuilding, domain.DraftStatusSubmitting, submittingSince)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
