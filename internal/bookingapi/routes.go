package bookingapi

import (
	"github.com/oapi-codegen/runtime"
)

// Routes of the booking API, relative to the client's base URL.
//
//	POST   /sessions                              create
//	GET    /sessions/{id}                         detail
//	DELETE /sessions/{id}                         delete
//	POST   /sessions/{id}/touch                   extend expiry
//	POST   /sessions/{id}/seats                   lock seats
//	DELETE /sessions/{id}/seats                   release seats
//	PUT    /sessions/{id}/seats                   replace seats
//	GET    /sessions/{id}/combos                  list combos
//	POST   /sessions/{id}/combos                  upsert combos
//	PUT    /sessions/{id}/combos                  replace combos
//	DELETE /sessions/{id}/combos/{serviceId}      remove one combo
//	POST   /sessions/{id}/pricing/preview         pricing preview
//	POST   /sessions/{id}/pricing/apply-coupon    apply voucher
//	PUT    /sessions/{id}/voucher                 set voucher
//	DELETE /sessions/{id}/voucher                 remove voucher
//	POST   /sessions/{id}/checkout                checkout
const sessionsPath = "/sessions"

func sessionPath(sessionID string, suffix ...string) (string, error) {
	param, err := runtime.StyleParamWithLocation("simple", false, "sessionId", runtime.ParamLocationPath, sessionID)
	if err != nil {
		return "", err
	}

	path := sessionsPath + "/" + param
	for _, s := range suffix {
		path += "/" + s
	}

	return path, nil
}

func comboPath(sessionID string, serviceID int) (string, error) {
	param, err := runtime.StyleParamWithLocation("simple", false, "serviceId", runtime.ParamLocationPath, serviceID)
	if err != nil {
		return "", err
	}

	return sessionPath(sessionID, "combos", param)
}
