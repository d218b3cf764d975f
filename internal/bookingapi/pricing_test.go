package bookingapi

import (
	"context"
	"net/http"

	"github.com/google/go-cmp/cmp"
	"github.com/metinatakli/cinex-booking/internal/domain"
	"github.com/shopspring/decimal"
)

func (s *ClientTestSuite) TestPreviewPricing() {
	voucher := "SUMMER10"

	tests := []struct {
		name        string
		voucherCode *string
		wantBody    string
	}{
		{name: "should preview without a voucher", voucherCode: nil, wantBody: `{}`},
		{name: "should preview a hypothetical voucher", voucherCode: &voucher, wantBody: `{"voucherCode":"SUMMER10"}`},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.fake.reset(respondJSON(http.StatusOK, pricingPreviewResponse{
				SeatsSubtotal:  decimal.RequireFromString("20.00"),
				CombosSubtotal: decimal.RequireFromString("9.00"),
				DiscountAmount: decimal.RequireFromString("2.90"),
				Total:          decimal.RequireFromString("26.10"),
				Currency:       "USD",
			}))

			preview, err := s.client.PreviewPricing(context.Background(), testSessionID, tt.voucherCode)
			s.Require().NoError(err)

			want := &domain.PricingPreview{
				SeatsSubtotal:  decimal.RequireFromString("20"),
				CombosSubtotal: decimal.RequireFromString("9"),
				DiscountAmount: decimal.RequireFromString("2.9"),
				Total:          decimal.RequireFromString("26.1"),
				Currency:       "USD",
			}
			if diff := cmp.Diff(want, preview, decimalComparer); diff != "" {
				s.T().Errorf("preview mismatch (-want +got):\n%s", diff)
			}

			req := s.fake.last()
			s.Equal("/api/booking/sessions/{sessionId}/pricing/preview", req.Pattern)
			s.JSONEq(tt.wantBody, string(req.Body))
		})
	}
}

func (s *ClientTestSuite) TestApplyVoucher() {
	s.Run("should return the recomputed pricing", func() {
		s.fake.reset(respondJSON(http.StatusOK, applyCouponResponse{
			AppliedVoucher: "SUMMER10",
			DiscountAmount: decimal.RequireFromString("2.90"),
			Pricing:        pricingResponse{Total: decimal.RequireFromString("26.10"), Currency: "USD"},
			ExpiresAt:      testExpiresAt,
		}))

		result, err := s.client.ApplyVoucher(context.Background(), testSessionID, "SUMMER10")
		s.Require().NoError(err)

		s.Equal("SUMMER10", result.AppliedVoucher)
		s.True(result.DiscountAmount.Equal(decimal.RequireFromString("2.9")))
		s.True(result.Pricing.Total.Equal(decimal.RequireFromString("26.1")))
		s.Equal("/api/booking/sessions/{sessionId}/pricing/apply-coupon", s.fake.last().Pattern)
	})

	s.Run("should map a rejected code to voucher invalid", func() {
		s.fake.reset(respondJSON(http.StatusUnprocessableEntity, errorBody{Message: "voucher expired"}))

		result, err := s.client.ApplyVoucher(context.Background(), testSessionID, "EXPIRED1")

		s.Nil(result)
		s.ErrorIs(err, domain.ErrVoucherInvalid)
		s.Len(s.fake.calls(), 1)
	})

	s.Run("should reject a malformed code locally", func() {
		s.fake.reset(nil)

		_, err := s.client.ApplyVoucher(context.Background(), testSessionID, "no spaces allowed")

		s.ErrorIs(err, domain.ErrValidation)
		s.Empty(s.fake.calls())
	})
}

func (s *ClientTestSuite) TestSetAndRemoveVoucher() {
	s.fake.reset(respondJSON(http.StatusOK, voucherResponse{VoucherCode: "SUMMER10"}))

	code, err := s.client.SetVoucher(context.Background(), testSessionID, "SUMMER10")
	s.Require().NoError(err)
	s.Equal("SUMMER10", code)
	s.Equal(http.MethodPut, s.fake.last().Method)
	s.Equal("/api/booking/sessions/{sessionId}/voucher", s.fake.last().Pattern)

	s.fake.reset(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	err = s.client.RemoveVoucher(context.Background(), testSessionID)
	s.Require().NoError(err)
	s.Equal(http.MethodDelete, s.fake.last().Method)
	s.Empty(s.fake.last().Body)
}
