package bookingapi

import (
	"context"
	"net/http"

	"github.com/metinatakli/cinex-booking/internal/domain"
)

func (c *Client) ListCombos(ctx context.Context, sessionID string) (*domain.ComboList, error) {
	const op = "list combos"

	path, err := c.sessionPath(op, sessionID, "combos")
	if err != nil {
		return nil, err
	}

	var resp comboListResponse

	err = c.do(ctx, call{
		op:        op,
		kind:      kindCombos,
		method:    http.MethodGet,
		path:      path,
		out:       &resp,
		retryable: true,
	})
	if err != nil {
		return nil, err
	}

	return &domain.ComboList{
		Combos:        toDomainCombos(resp.Combos),
		TotalQuantity: resp.TotalQuantity,
	}, nil
}

// UpsertCombos sets the quantity of each given combo. Quantities are
// last-write-wins; totals come from the booking API.
func (c *Client) UpsertCombos(ctx context.Context, sessionID string, items []domain.ComboItem) (*domain.ComboList, error) {
	const op = "upsert combos"

	path, err := c.sessionPath(op, sessionID, "combos")
	if err != nil {
		return nil, err
	}

	input := upsertCombosRequest{Items: toComboItems(items)}

	err = c.validate(op, input)
	if err != nil {
		return nil, err
	}

	var resp comboListResponse

	err = c.do(ctx, call{
		op:     op,
		kind:   kindCombos,
		method: http.MethodPost,
		path:   path,
		body:   input,
		out:    &resp,
	})
	if err != nil {
		return nil, err
	}

	return &domain.ComboList{
		Combos:        toDomainCombos(resp.Combos),
		TotalQuantity: resp.TotalQuantity,
	}, nil
}

func (c *Client) ReplaceCombos(ctx context.Context, sessionID string, items []domain.ComboItem) (*domain.ComboReplaceResult, error) {
	const op = "replace combos"

	path, err := c.sessionPath(op, sessionID, "combos")
	if err != nil {
		return nil, err
	}

	input := replaceCombosRequest{Items: toComboItems(items)}

	err = c.validate(op, input)
	if err != nil {
		return nil, err
	}

	var resp comboReplaceResponse

	err = c.do(ctx, call{
		op:     op,
		kind:   kindCombos,
		method: http.MethodPut,
		path:   path,
		body:   input,
		out:    &resp,
	})
	if err != nil {
		return nil, err
	}

	return &domain.ComboReplaceResult{
		TotalUnits: resp.TotalUnits,
		ComboIDs:   resp.ComboIDs,
	}, nil
}

func (c *Client) RemoveCombo(ctx context.Context, sessionID string, serviceID int) (*domain.ComboRemoveResult, error) {
	const op = "remove combo"

	err := requireSessionID(op, sessionID)
	if err != nil {
		return nil, err
	}

	if serviceID < 1 {
		return nil, &APIError{Op: op, Err: errServiceID}
	}

	path, err := comboPath(sessionID, serviceID)
	if err != nil {
		return nil, &APIError{Op: op, Err: errServiceID}
	}

	var resp comboRemoveResponse

	err = c.do(ctx, call{
		op:     op,
		kind:   kindCombos,
		method: http.MethodDelete,
		path:   path,
		out:    &resp,
	})
	if err != nil {
		return nil, err
	}

	return &domain.ComboRemoveResult{
		RemovedServiceID: resp.RemovedServiceID,
		TotalUnits:       resp.TotalUnits,
		ComboIDs:         resp.ComboIDs,
	}, nil
}
