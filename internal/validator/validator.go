package validator

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/metinatakli/cinex-booking/internal/domain"
)

const (
	ErrRequired       = "is required"
	ErrMinLength      = "must contain at least %s items"
	ErrMaxLength      = "must contain at most %s items"
	ErrGreaterThan    = "must be greater than %s"
	ErrUnique         = "must not contain duplicates"
	ErrURL            = "must be a valid absolute URL"
	ErrVoucherCode    = "must be 3 to 32 letters, digits, '-' or '_'"
	ErrProvider       = "must be one of stripe, paypal, vnpay, momo"
	ErrDefaultInvalid = "is invalid"
)

var voucherCodeRgx = regexp.MustCompile(`^[A-Za-z0-9_-]{3,32}$`)

func NewValidator() *validator.Validate {
	validator := validator.New(validator.WithRequiredStructEnabled())

	// report fields by their JSON names
	validator.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	validator.RegisterValidation("voucher_code", validateVoucherCode)
	validator.RegisterValidation("payment_provider", validatePaymentProvider)

	return validator
}

func validateVoucherCode(fl validator.FieldLevel) bool {
	return voucherCodeRgx.MatchString(fl.Field().String())
}

func validatePaymentProvider(fl validator.FieldLevel) bool {
	switch domain.PaymentProvider(fl.Field().String()) {
	case domain.PaymentProviderStripe,
		domain.PaymentProviderPayPal,
		domain.PaymentProviderVNPay,
		domain.PaymentProviderMoMo:
		return true
	default:
		return false
	}
}

// ValidationMessage converts validator errors into readable messages
func ValidationMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return ErrRequired
	case "min":
		return fmt.Sprintf(ErrMinLength, err.Param())
	case "max":
		return fmt.Sprintf(ErrMaxLength, err.Param())
	case "gt":
		return fmt.Sprintf(ErrGreaterThan, err.Param())
	case "unique":
		return ErrUnique
	case "url":
		return ErrURL
	case "voucher_code":
		return ErrVoucherCode
	case "payment_provider":
		return ErrProvider
	default:
		return ErrDefaultInvalid
	}
}
