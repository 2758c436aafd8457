package ioweb

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/cardlab/cardlab/pkg/errcode"
	"github.com/cardlab/cardlab/pkg/filter"
	"github.com/cardlab/cardlab/pkg/schema"
	"github.com/gnames/gn"
	"github.com/go-chi/chi/v5"
)

// errorDetail is one entry of a 422 response.
type errorDetail struct {
	Loc []string `json:"loc"`
	Msg string   `json:"msg"`
}

// deleted answers deletes whose clients expect a JSON body.
type deleted struct {
	OK      bool                  `json:"ok"`
	ID      uint                  `json:"id"`
	Cascade *schema.CascadeReport `json:"cascade,omitempty"`
}

var markup = strings.NewReplacer("<em>", "", "</em>", "")

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeDetail(w http.ResponseWriter, code int, detail any) {
	writeJSON(w, code, map[string]any{"detail": detail})
}

// writeError maps lab errors to status codes and the detail format of
// the editor.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var paramErr *filter.ParamError
	if errors.As(err, &paramErr) {
		writeDetail(w, http.StatusUnprocessableEntity, []errorDetail{{
			Loc: []string{"query", paramErr.Param},
			Msg: paramErr.Msg,
		}})
		return
	}

	var gnErr *gn.Error
	if !errors.As(err, &gnErr) {
		slog.Error("Request failed",
			"id", requestIDFrom(r.Context()), "path", r.URL.Path, "error", err)
		writeDetail(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	msg := markup.Replace(fmt.Sprintf(gnErr.Msg, gnErr.Vars...))
	switch gnErr.Code {
	case errcode.ValidationError:
		var verr *schema.ValidationError
		if errors.As(gnErr.Err, &verr) {
			writeDetail(w, http.StatusUnprocessableEntity, fieldDetails(verr))
			return
		}
		writeDetail(w, http.StatusUnprocessableEntity, msg)
	case errcode.NotFoundError:
		writeDetail(w, http.StatusNotFound, msg)
	case errcode.ConflictError:
		writeDetail(w, http.StatusConflict, msg)
	case errcode.BadRequestError:
		writeDetail(w, http.StatusBadRequest, msg)
	default:
		slog.Error("Request failed",
			"id", requestIDFrom(r.Context()), "path", r.URL.Path, "error", err)
		writeDetail(w, http.StatusInternalServerError, msg)
	}
}

func fieldDetails(verr *schema.ValidationError) []errorDetail {
	res := make([]errorDetail, 0, len(verr.Fields))
	for _, v := range verr.Fields {
		res = append(res, errorDetail{
			Loc: []string{"body", v.Field},
			Msg: fmt.Sprintf("%s %s", v.Field, v.Msg),
		})
	}
	return res
}

func decodeJSON(w http.ResponseWriter, r *http.Request, out any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	if err := json.NewDecoder(r.Body).Decode(out); err != nil {
		return BadRequestError("Malformed JSON body", err)
	}
	return nil
}

func idParam(r *http.Request) (uint, error) {
	return uintParam(r, "id")
}

func versionParam(r *http.Request) (int, error) {
	v, err := uintParam(r, "version")
	return int(v), err
}

func uintParam(r *http.Request, name string) (uint, error) {
	s := chi.URLParam(r, name)
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil || n == 0 {
		if err == nil {
			err = errors.New("zero")
		}
		return 0, BadRequestError(
			fmt.Sprintf("Path parameter %s must be a positive integer, got %q", name, s),
			err,
		)
	}
	return uint(n), nil
}

// idVersion reads both path parameters of version endpoints.
func idVersion(r *http.Request) (uint, int, error) {
	id, err := idParam(r)
	if err != nil {
		return 0, 0, err
	}
	v, err := versionParam(r)
	if err != nil {
		return 0, 0, err
	}
	return id, v, nil
}
