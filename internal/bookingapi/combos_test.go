package bookingapi

import (
	"context"
	"net/http"

	"github.com/google/go-cmp/cmp"
	"github.com/metinatakli/cinex-booking/internal/domain"
	"github.com/shopspring/decimal"
)

func (s *ClientTestSuite) TestListCombos() {
	s.fake.reset(respondJSON(http.StatusOK, comboListResponse{
		Combos: []comboResponse{
			{ServiceID: 3, Name: "Popcorn", Quantity: 2, UnitPrice: decimal.RequireFromString("4.50"), Total: decimal.RequireFromString("9.00")},
			{ServiceID: 5, Name: "Soda", Quantity: 1, UnitPrice: decimal.RequireFromString("2.00"), Total: decimal.RequireFromString("2.00")},
		},
		TotalQuantity: 3,
	}))

	list, err := s.client.ListCombos(context.Background(), testSessionID)
	s.Require().NoError(err)

	want := &domain.ComboList{
		Combos: []domain.ComboSelection{
			{ServiceID: 3, Name: "Popcorn", Quantity: 2, UnitPrice: decimal.RequireFromString("4.5"), Total: decimal.RequireFromString("9")},
			{ServiceID: 5, Name: "Soda", Quantity: 1, UnitPrice: decimal.RequireFromString("2"), Total: decimal.RequireFromString("2")},
		},
		TotalQuantity: 3,
	}
	if diff := cmp.Diff(want, list, decimalComparer); diff != "" {
		s.T().Errorf("combo list mismatch (-want +got):\n%s", diff)
	}

	s.Equal(http.MethodGet, s.fake.last().Method)
	s.Equal("/api/booking/sessions/{sessionId}/combos", s.fake.last().Pattern)
}

func (s *ClientTestSuite) TestUpsertCombos() {
	s.fake.reset(respondJSON(http.StatusOK, comboListResponse{TotalQuantity: 4}))

	list, err := s.client.UpsertCombos(context.Background(), testSessionID, []domain.ComboItem{
		{ServiceID: 3, Quantity: 4},
	})
	s.Require().NoError(err)

	s.Equal(4, list.TotalQuantity)
	s.Equal(http.MethodPost, s.fake.last().Method)
	s.JSONEq(`{"items":[{"serviceId":3,"quantity":4}]}`, string(s.fake.last().Body))
}

func (s *ClientTestSuite) TestUpsertCombosValidation() {
	tests := []struct {
		name  string
		items []domain.ComboItem
	}{
		{name: "should reject an empty list", items: []domain.ComboItem{}},
		{name: "should reject a zero quantity", items: []domain.ComboItem{{ServiceID: 3, Quantity: 0}}},
		{name: "should reject a non-positive service id", items: []domain.ComboItem{{ServiceID: -1, Quantity: 1}}},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.fake.reset(nil)

			_, err := s.client.UpsertCombos(context.Background(), testSessionID, tt.items)

			s.ErrorIs(err, domain.ErrValidation)
			s.Empty(s.fake.calls())
		})
	}
}

func (s *ClientTestSuite) TestReplaceCombos() {
	s.fake.reset(respondJSON(http.StatusOK, comboReplaceResponse{TotalUnits: 3, ComboIDs: []int{3, 5}}))

	result, err := s.client.ReplaceCombos(context.Background(), testSessionID, []domain.ComboItem{
		{ServiceID: 3, Quantity: 2},
		{ServiceID: 5, Quantity: 1},
	})
	s.Require().NoError(err)

	s.Equal(&domain.ComboReplaceResult{TotalUnits: 3, ComboIDs: []int{3, 5}}, result)
	s.Equal(http.MethodPut, s.fake.last().Method)
}

func (s *ClientTestSuite) TestRemoveCombo() {
	s.Run("should delete the combo by service id", func() {
		s.fake.reset(respondJSON(http.StatusOK, comboRemoveResponse{RemovedServiceID: 3, TotalUnits: 1, ComboIDs: []int{5}}))

		result, err := s.client.RemoveCombo(context.Background(), testSessionID, 3)
		s.Require().NoError(err)

		s.Equal(&domain.ComboRemoveResult{RemovedServiceID: 3, TotalUnits: 1, ComboIDs: []int{5}}, result)

		req := s.fake.last()
		s.Equal(http.MethodDelete, req.Method)
		s.Equal("/api/booking/sessions/"+testSessionID+"/combos/3", req.Path)
	})

	s.Run("should reject a non-positive service id", func() {
		s.fake.reset(nil)

		_, err := s.client.RemoveCombo(context.Background(), testSessionID, 0)

		s.ErrorIs(err, domain.ErrValidation)
		s.Empty(s.fake.calls())
	})

	s.Run("should report an unknown combo as a validation error", func() {
		s.fake.reset(respondJSON(http.StatusConflict, errorBody{}))

		_, err := s.client.RemoveCombo(context.Background(), testSessionID, 3)

		s.ErrorIs(err, domain.ErrValidation)
	})
}
