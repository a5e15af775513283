package common

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/kenawards/reg-membership-service/internal/apierrors"
	"github.com/kenawards/reg-membership-service/internal/logging"
)

type testRequest struct {
	Counter int
}

type testResponse struct {
	Counter int
}

func setupHandler(ep Endpoint[testRequest, testResponse], rh RequestHandler[testRequest], resph ResponseHandler[testResponse]) http.HandlerFunc {
	return CreateHandler(ep, rh, resph)
}

func TestCreateHandler(t *testing.T) {
	tReq := &testRequest{
		Counter: 0,
	}
	tRes := &testResponse{
		Counter: 0,
	}

	workingRequestHandler := func(r *http.Request) (*testRequest, error) {
		tReq.Counter++
		return tReq, nil
	}

	workingResponseHandler := func(ctx context.Context, res *testResponse, w http.ResponseWriter) error {
		res.Counter++
		return nil
	}

	tests := []struct {
		name                    string
		endpoint                Endpoint[testRequest, testResponse]
		reqHandler              RequestHandler[testRequest]
		respHandler             ResponseHandler[testResponse]
		expectedRequestCounter  int
		expectedResponseCounter int
		expectedStatus          int
	}{
		{
			name:       "Should do nothing when no request handler was provided",
			reqHandler: nil,
			endpoint: func(ctx context.Context, request *testRequest, logger logging.Logger) (*testResponse, error) {
				return tRes, nil
			},
			respHandler:             workingResponseHandler,
			expectedRequestCounter:  0,
			expectedResponseCounter: 0,
			expectedStatus:          http.StatusInternalServerError,
		},
		{
			name: "Should do nothing when no response handler was provided",
			endpoint: func(ctx context.Context, request *testRequest, logger logging.Logger) (*testResponse, error) {
				return tRes, nil
			},
			reqHandler:              workingRequestHandler,
			respHandler:             nil,
			expectedRequestCounter:  0,
			expectedResponseCounter: 0,
			expectedStatus:          http.StatusInternalServerError,
		},
		{
			name: "Should return bad request when request validation failed",
			endpoint: func(ctx context.Context, request *testRequest, logger logging.Logger) (*testResponse, error) {
				return tRes, nil
			},
			reqHandler: func(r *http.Request) (*testRequest, error) {
				tReq.Counter++
				return nil, errors.New("error error error")
			},
			respHandler:             workingResponseHandler,
			expectedRequestCounter:  1,
			expectedResponseCounter: 0,
			expectedStatus:          http.StatusBadRequest,
		},
		{
			name: "Should return internal server error when endpoint returns a plain error",
			endpoint: func(ctx context.Context, request *testRequest, logger logging.Logger) (*testResponse, error) {
				return nil, errors.New("endpoint failed")
			},
			reqHandler:              workingRequestHandler,
			respHandler:             workingResponseHandler,
			expectedRequestCounter:  1,
			expectedResponseCounter: 0,
			expectedStatus:          http.StatusInternalServerError,
		},
		{
			name: "Should map a bad request api status",
			endpoint: func(ctx context.Context, request *testRequest, logger logging.Logger) (*testResponse, error) {
				return nil, apierrors.NewBadRequest("invalid amount")
			},
			reqHandler:              workingRequestHandler,
			respHandler:             workingResponseHandler,
			expectedRequestCounter:  1,
			expectedResponseCounter: 0,
			expectedStatus:          http.StatusBadRequest,
		},
		{
			name: "Should map a not found api status",
			endpoint: func(ctx context.Context, request *testRequest, logger logging.Logger) (*testResponse, error) {
				return nil, apierrors.NewNotFound("no such thing")
			},
			reqHandler:              workingRequestHandler,
			respHandler:             workingResponseHandler,
			expectedRequestCounter:  1,
			expectedResponseCounter: 0,
			expectedStatus:          http.StatusNotFound,
		},
		{
			name: "Should map a conflict api status",
			endpoint: func(ctx context.Context, request *testRequest, logger logging.Logger) (*testResponse, error) {
				return nil, apierrors.NewConflict("already there")
			},
			reqHandler:              workingRequestHandler,
			respHandler:             workingResponseHandler,
			expectedRequestCounter:  1,
			expectedResponseCounter: 0,
			expectedStatus:          http.StatusConflict,
		},
		{
			name: "Should map a forbidden api status",
			endpoint: func(ctx context.Context, request *testRequest, logger logging.Logger) (*testResponse, error) {
				return nil, apierrors.NewForbidden("not allowed")
			},
			reqHandler:              workingRequestHandler,
			respHandler:             workingResponseHandler,
			expectedRequestCounter:  1,
			expectedResponseCounter: 0,
			expectedStatus:          http.StatusForbidden,
		},
		{
			name: "Should return internal server error when response handler returns an error",
			endpoint: func(ctx context.Context, request *testRequest, logger logging.Logger) (*testResponse, error) {
				return tRes, nil
			},
			reqHandler: workingRequestHandler,
			respHandler: func(ctx context.Context, res *testResponse, w http.ResponseWriter) error {
				res.Counter++
				return errors.New("error sending response")
			},
			expectedRequestCounter:  1,
			expectedResponseCounter: 1,
			expectedStatus:          http.StatusInternalServerError,
		},
		{
			name: "Should successfully return result when nothing failed",
			endpoint: func(ctx context.Context, request *testRequest, logger logging.Logger) (*testResponse, error) {
				return tRes, nil
			},
			reqHandler: workingRequestHandler,
			respHandler: func(ctx context.Context, res *testResponse, w http.ResponseWriter) error {
				res.Counter++
				require.NoError(t, json.NewEncoder(w).Encode(res))
				return nil
			},
			expectedRequestCounter:  1,
			expectedResponseCounter: 1,
			expectedStatus:          http.StatusOK,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tReq.Counter = 0
			tRes.Counter = 0
			router := chi.NewRouter()
			router.Get("/", setupHandler(tc.endpoint, tc.reqHandler, tc.respHandler))

			srv := httptest.NewServer(router)
			defer srv.Close()

			req, err := http.NewRequestWithContext(context.TODO(), http.MethodGet, fmt.Sprintf("%s/", srv.URL), nil)
			require.NoError(t, err)

			cl := &http.Client{
				Timeout: time.Second * 10,
			}

			resp, err := cl.Do(req)
			require.NoError(t, err)
			require.NotNil(t, resp)

			_, err = io.ReadAll(resp.Body)
			require.NoError(t, err)
			require.NoError(t, resp.Body.Close())

			require.Equal(t, tc.expectedRequestCounter, tReq.Counter)
			require.Equal(t, tc.expectedResponseCounter, tRes.Counter)

			require.Equal(t, tc.expectedStatus, resp.StatusCode)
		})
	}
}
