package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
)

// maxBodyBytes caps request bodies; every endpoint here takes small JSON
// documents.
const maxBodyBytes = 1 << 20

var errBadBody = errors.New("malformed request body")

// decodeJSON reads a JSON request body into dst. Unknown fields are
// rejected so client typos fail loudly instead of silently dropping fields.
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return errBadBody
	}
	return nil
}
