package common

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-http-utils/headers"

	"github.com/kenawards/reg-membership-service/internal/restapi/media"
)

// EncodeWithStatus writes a json response body with the provided status code.
func EncodeWithStatus[T any](status int, value *T, w http.ResponseWriter) error {
	w.Header().Add(headers.ContentType, media.ContentTypeApplicationJson)
	w.WriteHeader(status)

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(value); err != nil {
		return fmt.Errorf("could not encode response: %w", err)
	}

	return nil
}
