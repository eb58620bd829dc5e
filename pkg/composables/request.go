package composables

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/mnicoli13/programmazione-web-2/pkg/constants"
	"github.com/mnicoli13/programmazione-web-2/pkg/shared"
)

var (
	ErrNoLogger        = errors.New("logger not found")
	ErrInvalidPassword = errors.New("invalid password")
)

type Params struct {
	IP            string
	UserAgent     string
	Authenticated bool
	Request       *http.Request
	Writer        http.ResponseWriter
}

// UseParams returns the request parameters from the context.
// If the parameters are not found, the second return value will be false.
func UseParams(ctx context.Context) (*Params, bool) {
	params, ok := ctx.Value(constants.ParamsKey).(*Params)
	return params, ok
}

// WithParams returns a new context with the request parameters.
func WithParams(ctx context.Context, params *Params) context.Context {
	return context.WithValue(ctx, constants.ParamsKey, params)
}

// UseLogger returns the request-scoped logger from the context and falls
// back to the standard logger so library code never has to nil-check.
func UseLogger(ctx context.Context) *logrus.Entry {
	logger, ok := ctx.Value(constants.LoggerKey).(*logrus.Entry)
	if !ok {
		return logrus.NewEntry(logrus.StandardLogger())
	}
	return logger
}

// UseAuthenticated reports whether the current request carries a valid
// session.
func UseAuthenticated(ctx context.Context) bool {
	params, ok := UseParams(ctx)
	if !ok {
		return false
	}
	return params.Authenticated
}

// UseIP returns the IP address from the context.
// If the IP address is not found, the second return value will be false.
func UseIP(ctx context.Context) (string, bool) {
	params, ok := UseParams(ctx)
	if !ok {
		return "", false
	}
	return params.IP, true
}

// UseUserAgent returns the user agent from the context.
// If the user agent is not found, the second return value will be false.
func UseUserAgent(ctx context.Context) (string, bool) {
	params, ok := UseParams(ctx)
	if !ok {
		return "", false
	}
	return params.UserAgent, true
}

func UseFlash(w http.ResponseWriter, r *http.Request, name string) ([]byte, error) {
	c, err := r.Cookie(name)
	if err != nil {
		switch {
		case errors.Is(err, http.ErrNoCookie):
			queryValue := r.URL.Query().Get(name)
			if queryValue != "" {
				return []byte(queryValue), nil
			}
			return nil, nil
		default:
			return nil, err
		}
	}
	val, err := base64.URLEncoding.DecodeString(c.Value)
	if err != nil {
		return nil, err
	}
	dc := &http.Cookie{Name: name, MaxAge: -1, Expires: time.Unix(1, 0)}
	http.SetCookie(w, dc)
	return val, nil
}

func UseForm[T comparable](v T, r *http.Request) (T, error) {
	if err := r.ParseForm(); err != nil {
		return v, err
	}
	return v, shared.Decoder.Decode(v, r.Form)
}

const maxFormMemory = 32 << 20

// UseMultipartForm decodes multipart and url-encoded bodies alike; the
// vehicle modals submit FormData, the auth forms submit url-encoded.
func UseMultipartForm[T comparable](v T, r *http.Request) (T, error) {
	if err := r.ParseMultipartForm(maxFormMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return v, err
	}
	return v, shared.Decoder.Decode(v, r.Form)
}
