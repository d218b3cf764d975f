package mocks

import (
	"context"

	"github.com/metinatakli/cinex-booking/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockBookingAPI struct {
	mock.Mock
}

var _ domain.BookingAPI = (*MockBookingAPI)(nil)

func (m *MockBookingAPI) CreateSession(ctx context.Context, showtimeID int) (*domain.BookingSession, error) {
	args := m.Called(ctx, showtimeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BookingSession), args.Error(1)
}

func (m *MockBookingAPI) GetSession(ctx context.Context, sessionID string) (*domain.BookingSession, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BookingSession), args.Error(1)
}

func (m *MockBookingAPI) TouchSession(ctx context.Context, sessionID string) (*domain.TouchResult, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TouchResult), args.Error(1)
}

func (m *MockBookingAPI) DeleteSession(ctx context.Context, sessionID string) (*domain.DeleteResult, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DeleteResult), args.Error(1)
}

func (m *MockBookingAPI) LockSeats(ctx context.Context, sessionID string, seatIDs []int) (*domain.SeatLockResult, error) {
	args := m.Called(ctx, sessionID, seatIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SeatLockResult), args.Error(1)
}

func (m *MockBookingAPI) ReleaseSeats(ctx context.Context, sessionID string, seatIDs []int) (*domain.SeatLockResult, error) {
	args := m.Called(ctx, sessionID, seatIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SeatLockResult), args.Error(1)
}

func (m *MockBookingAPI) ReplaceSeats(ctx context.Context, sessionID string, seatIDs []int) (*domain.SeatLockResult, error) {
	args := m.Called(ctx, sessionID, seatIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SeatLockResult), args.Error(1)
}

func (m *MockBookingAPI) ListCombos(ctx context.Context, sessionID string) (*domain.ComboList, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ComboList), args.Error(1)
}

func (m *MockBookingAPI) UpsertCombos(ctx context.Context, sessionID string, items []domain.ComboItem) (*domain.ComboList, error) {
	args := m.Called(ctx, sessionID, items)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ComboList), args.Error(1)
}

func (m *MockBookingAPI) ReplaceCombos(ctx context.Context, sessionID string, items []domain.ComboItem) (*domain.ComboReplaceResult, error) {
	args := m.Called(ctx, sessionID, items)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ComboReplaceResult), args.Error(1)
}

func (m *MockBookingAPI) RemoveCombo(ctx context.Context, sessionID string, serviceID int) (*domain.ComboRemoveResult, error) {
	args := m.Called(ctx, sessionID, serviceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ComboRemoveResult), args.Error(1)
}

func (m *MockBookingAPI) PreviewPricing(ctx context.Context, sessionID string, voucherCode *string) (*domain.PricingPreview, error) {
	args := m.Called(ctx, sessionID, voucherCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PricingPreview), args.Error(1)
}

func (m *MockBookingAPI) ApplyVoucher(ctx context.Context, sessionID string, voucherCode string) (*domain.VoucherResult, error) {
	args := m.Called(ctx, sessionID, voucherCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VoucherResult), args.Error(1)
}

func (m *MockBookingAPI) SetVoucher(ctx context.Context, sessionID string, voucherCode string) (string, error) {
	args := m.Called(ctx, sessionID, voucherCode)
	return args.String(0), args.Error(1)
}

func (m *MockBookingAPI) RemoveVoucher(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

func (m *MockBookingAPI) CreateCheckout(ctx context.Context, sessionID string, req domain.CheckoutRequest) (*domain.Checkout, error) {
	args := m.Called(ctx, sessionID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Checkout), args.Error(1)
}
