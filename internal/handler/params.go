package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
)

// pathParam binds a required simple-style path parameter the way generated
// oapi-codegen wrappers do, so percent-encoded trip IDs decode once.
func pathParam(r *http.Request, name string) (string, error) {
	var v string
	err := runtime.BindStyledParameterWithOptions("simple", name, chi.URLParam(r, name), &v,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return "", fmt.Errorf("invalid format for parameter %s: %w", name, err)
	}
	return v, nil
}

// pathParams binds several path parameters in order.
func pathParams(r *http.Request, names ...string) ([]string, error) {
	out := make([]string, len(names))
	for i, name := range names {
		v, err := pathParam(r, name)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// queryParam binds an optional form-style query parameter into dest, which
// must be a pointer to a pointer so absence leaves it nil.
func queryParam(r *http.Request, name string, dest any) error {
	if err := runtime.BindQueryParameter("form", true, false, name, r.URL.Query(), dest); err != nil {
		return fmt.Errorf("invalid format for parameter %s: %w", name, err)
	}
	return nil
}

var errNoBody = errors.New("request body is required")

// decodeBody decodes a JSON request body into dest.
func decodeBody(r *http.Request, dest any) error {
	if r.Body == nil || r.Body == http.NoBody {
		return errNoBody
	}
	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return err
		}
		if errors.Is(err, io.EOF) {
			return errNoBody
		}
		return fmt.Errorf("malformed request body: %w", err)
	}
	return nil
}
