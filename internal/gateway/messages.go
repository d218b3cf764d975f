package gateway

import (
	"net/http"

	"golang.org/x/text/language"
)

type messageKey int

const (
	msgAuthenticationRequired messageKey = iota
	msgNoActiveSession
	msgSessionClosed
	msgSessionExpired
	msgShowtimeUnavailable
	msgSeatUnavailable
	msgVoucherInvalid
	msgPaymentProvider
	msgValidation
	msgUpstream
)

// The first language is the fallback.
var supportedLanguages = []language.Tag{
	language.English,
	language.Vietnamese,
}

var languageMatcher = language.NewMatcher(supportedLanguages)

// messages are indexed like supportedLanguages.
var messages = map[messageKey][]string{
	msgAuthenticationRequired: {
		"Please sign in again to continue booking",
		"Vui lòng đăng nhập lại để tiếp tục đặt vé",
	},
	msgNoActiveSession: {
		"There is no booking in progress, please pick a showtime",
		"Chưa có phiên đặt vé nào, vui lòng chọn suất chiếu",
	},
	msgSessionClosed: {
		"This booking has already gone to payment and can no longer be changed",
		"Đơn đặt vé đã chuyển sang thanh toán và không thể thay đổi",
	},
	msgSessionExpired: {
		"Your booking session has expired, please start again",
		"Phiên đặt vé đã hết hạn, vui lòng bắt đầu lại",
	},
	msgShowtimeUnavailable: {
		"This showtime is no longer available for booking",
		"Suất chiếu này không còn mở bán",
	},
	msgSeatUnavailable: {
		"One or more seats were just taken, please choose other seats",
		"Một hoặc nhiều ghế vừa có người chọn, vui lòng chọn ghế khác",
	},
	msgVoucherInvalid: {
		"The voucher code is invalid or has expired",
		"Mã giảm giá không hợp lệ hoặc đã hết hạn",
	},
	msgPaymentProvider: {
		"The payment provider could not start the payment, please try another method",
		"Cổng thanh toán không thể khởi tạo giao dịch, vui lòng thử phương thức khác",
	},
	msgValidation: {
		"The request is invalid",
		"Yêu cầu không hợp lệ",
	},
	msgUpstream: {
		"Booking is temporarily unavailable, please try again shortly",
		"Hệ thống đặt vé tạm thời gián đoạn, vui lòng thử lại sau",
	},
}

// localize picks the message for the best match of the request's
// Accept-Language header.
func localize(r *http.Request, key messageKey) string {
	idx := 0

	tags, _, err := language.ParseAcceptLanguage(r.Header.Get("Accept-Language"))
	if err == nil && len(tags) > 0 {
		_, idx, _ = languageMatcher.Match(tags...)
	}

	return messages[key][idx]
}
