package gateway

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
)

const maxRequestBodyBytes = 1 << 20

var errEmptyBody = errors.New("body must not be empty")

type contextKey string

const loggerContextKey = contextKey("logger")

func (app *Application) writeJSON(w http.ResponseWriter, status int, data any, headers http.Header) error {
	js, err := json.Marshal(data)
	if err != nil {
		return err
	}

	for key, value := range headers {
		w.Header()[key] = value
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(js)

	return nil
}

func (app *Application) readJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodyBytes)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	err := dec.Decode(dst)
	if err != nil {
		var syntaxError *json.SyntaxError
		var unmarshalTypeError *json.UnmarshalTypeError
		var invalidUnmarshalError *json.InvalidUnmarshalError
		var maxBytesError *http.MaxBytesError

		switch {
		case errors.As(err, &syntaxError):
			return fmt.Errorf("body contains badly-formed JSON (at character %d)", syntaxError.Offset)

		case errors.Is(err, io.ErrUnexpectedEOF):
			return errors.New("body contains badly-formed JSON")

		case errors.As(err, &unmarshalTypeError):
			if unmarshalTypeError.Field != "" {
				return fmt.Errorf("body contains incorrect JSON type for field %q", unmarshalTypeError.Field)
			}
			return fmt.Errorf("body contains incorrect JSON type (at character %d)", unmarshalTypeError.Offset)

		case errors.Is(err, io.EOF):
			return errEmptyBody

		case strings.HasPrefix(err.Error(), "json: unknown field "):
			fieldName := strings.TrimPrefix(err.Error(), "json: unknown field ")
			return fmt.Errorf("body contains unknown key %s", fieldName)

		case errors.As(err, &maxBytesError):
			return fmt.Errorf("body must not be larger than %d bytes", maxBytesError.Limit)

		case errors.As(err, &invalidUnmarshalError):
			panic(err)

		default:
			return err
		}
	}

	err = dec.Decode(&struct{}{})
	if !errors.Is(err, io.EOF) {
		return errors.New("body must only contain a single JSON value")
	}

	return nil
}

// readInput decodes and validates the request body into dst, writing the
// error response itself. It reports whether the handler may go on.
func (app *Application) readInput(w http.ResponseWriter, r *http.Request, dst any) bool {
	return app.decodeInput(w, r, dst, false)
}

// readOptionalInput is readInput for a body the caller may leave out. An
// empty body leaves dst at its zero value.
func (app *Application) readOptionalInput(w http.ResponseWriter, r *http.Request, dst any) bool {
	return app.decodeInput(w, r, dst, true)
}

func (app *Application) decodeInput(w http.ResponseWriter, r *http.Request, dst any, optional bool) bool {
	err := app.readJSON(w, r, dst)
	if err != nil && !(optional && errors.Is(err, errEmptyBody)) {
		app.badRequestResponse(w, r, err)
		return false
	}

	err = app.validator.Struct(dst)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return false
	}

	return true
}

func (app *Application) contextGetLogger(r *http.Request) *slog.Logger {
	logger, ok := r.Context().Value(loggerContextKey).(*slog.Logger)
	if !ok {
		return app.logger
	}

	return logger
}

// intPathParam binds a simple-style integer path parameter the way
// generated chi wrappers do.
func (app *Application) intPathParam(name string, next func(w http.ResponseWriter, r *http.Request, value int)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var value int

		err := runtime.BindStyledParameterWithOptions("simple", name, chi.URLParam(r, name), &value,
			runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
		if err != nil {
			app.badRequestResponse(w, r, fmt.Errorf("invalid format for parameter %s", name))
			return
		}

		next(w, r, value)
	}
}
