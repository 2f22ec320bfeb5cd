package server

import (
	"encoding/json"
	"net/http"

	"github.com/matzehuels/justify/pkg/errors"
	"github.com/matzehuels/justify/pkg/justified"
	"github.com/matzehuels/justify/pkg/render/sink"
)

// errorBody is the JSON body of every error response.
type errorBody struct {
	Error string      `json:"error"`
	Code  errors.Code `json:"code"`
}

func notFound(format string, args ...any) error {
	return errors.New(errors.ErrCodeNotFound, format, args...)
}

// writeError answers with the status for err's code.
func writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	writeJSON(w, errors.HTTPStatus(err), errorBody{Error: errors.UserMessage(err), Code: code})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeLayout(w http.ResponseWriter, res justified.Result) {
	data, err := sink.RenderJSON(res)
	if err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "encode layout"))
		return
	}
	writeBody(w, "application/json", data)
}

func writeBody(w http.ResponseWriter, contentType string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
