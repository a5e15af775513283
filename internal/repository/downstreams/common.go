package downstreams

import (
	"context"
	"errors"
	"net/http"
	"time"

	aurestbreaker "github.com/StephanHCB/go-autumn-restclient-circuitbreaker/implementation/breaker"
	aurestclientapi "github.com/StephanHCB/go-autumn-restclient/api"
	auresthttpclient "github.com/StephanHCB/go-autumn-restclient/implementation/httpclient"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-http-utils/headers"

	"github.com/kenawards/reg-membership-service/internal/restapi/common"
)

var (
	ErrDownStreamUnavailable = errors.New("downstream unavailable - see log for details")
)

func requestIDFromContext(ctx context.Context) string {
	return common.GetRequestID(ctx)
}

type ctxKeyBearerToken struct{}

// ContextWithBearerToken stores a bearer token so BearerTokenRequestManipulator
// can pick it up per request. Tokens are short lived, the client fetches one
// for every push initiation.
func ContextWithBearerToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, ctxKeyBearerToken{}, token)
}

func BearerTokenRequestManipulator() aurestclientapi.RequestManipulatorCallback {
	return func(ctx context.Context, r *http.Request) {
		if token, ok := ctx.Value(ctxKeyBearerToken{}).(string); ok {
			r.Header.Add(headers.Authorization, "Bearer "+token)
		}
		r.Header.Add(middleware.RequestIDHeader, requestIDFromContext(ctx))
	}
}

func BasicAuthRequestManipulator(username string, password string) aurestclientapi.RequestManipulatorCallback {
	return func(ctx context.Context, r *http.Request) {
		r.SetBasicAuth(username, password)
		r.Header.Add(middleware.RequestIDHeader, requestIDFromContext(ctx))
	}
}

func ClientWith(requestManipulator aurestclientapi.RequestManipulatorCallback, circuitBreakerName string) (aurestclientapi.Client, error) {
	httpClient, err := auresthttpclient.New(0, nil, requestManipulator)
	if err != nil {
		return nil, err
	}

	requestLoggingClient := NewRequestLoggingWrapper(httpClient)

	circuitBreakerClient := aurestbreaker.New(requestLoggingClient,
		circuitBreakerName,
		10,
		2*time.Minute,
		30*time.Second,
		15*time.Second,
	)

	return circuitBreakerClient, nil
}

func ErrByStatus(err error, status int) error {
	if err != nil {
		return err
	}
	if status >= 300 {
		return ErrDownStreamUnavailable
	}
	return nil
}
