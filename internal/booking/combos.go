package booking

import (
	"context"

	"github.com/metinatakli/cinex-booking/internal/domain"
)

func (f *Flow) ListCombos(ctx context.Context) (*domain.ComboList, error) {
	var result *domain.ComboList

	err := f.read(ctx, func(sessionID string) (err error) {
		result, err = f.api.ListCombos(ctx, sessionID)
		return err
	})

	return result, err
}

func (f *Flow) UpsertCombos(ctx context.Context, items []domain.ComboItem) (*domain.ComboList, error) {
	var result *domain.ComboList

	err := f.mutate(ctx, func(sessionID string) (err error) {
		result, err = f.api.UpsertCombos(ctx, sessionID, items)
		return err
	})

	return result, err
}

func (f *Flow) ReplaceCombos(ctx context.Context, items []domain.ComboItem) (*domain.ComboReplaceResult, error) {
	var result *domain.ComboReplaceResult

	err := f.mutate(ctx, func(sessionID string) (err error) {
		result, err = f.api.ReplaceCombos(ctx, sessionID, items)
		return err
	})

	return result, err
}

func (f *Flow) RemoveCombo(ctx context.Context, serviceID int) (*domain.ComboRemoveResult, error) {
	var result *domain.ComboRemoveResult

	err := f.mutate(ctx, func(sessionID string) (err error) {
		result, err = f.api.RemoveCombo(ctx, sessionID, serviceID)
		return err
	})

	return result, err
}
