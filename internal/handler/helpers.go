package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/dukerupert/flexidiet/internal/model"
	"github.com/dukerupert/flexidiet/internal/store"
	"github.com/dukerupert/flexidiet/internal/units"
	"github.com/dukerupert/flexidiet/internal/validation"
)

const maxBodyBytes = 1 << 20

// writeJSON encodes v before writing the header so an unencodable value
// becomes a 500 instead of an empty success.
func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		slog.Error("encode response", "status", status, "error", err)
		data = []byte(`{"error":"failed to encode response"}`)
		status = http.StatusInternalServerError
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(append(data, '\n'))
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

type validationResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

func parseIDParam(r *http.Request) (int64, error) {
	idStr := r.PathValue("id")
	return strconv.ParseInt(idStr, 10, 64)
}

// decode reads a JSON body into dst and validates it. On failure it writes
// the response and returns false.
func decode(w http.ResponseWriter, r *http.Request, v *validation.Validator, dst any) bool {
	return decodeBody(w, r, v, dst, false)
}

// decodeOptional is decode for endpoints whose body may be omitted.
func decodeOptional(w http.ResponseWriter, r *http.Request, v *validation.Validator, dst any) bool {
	return decodeBody(w, r, v, dst, true)
}

func decodeBody(w http.ResponseWriter, r *http.Request, v *validation.Validator, dst any, allowEmpty bool) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if !(allowEmpty && errors.Is(err, io.EOF)) {
			writeError(w, http.StatusBadRequest, "invalid JSON")
			return false
		}
	}
	if err := v.Validate(dst); err != nil {
		var verr *validation.Error
		if errors.As(err, &verr) {
			writeJSON(w, http.StatusBadRequest, validationResponse{Error: "validation failed", Fields: verr.Fields})
			return false
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

// measurementSystem reads the configured system, defaulting to metric.
func measurementSystem(ss *store.SettingsStore) string {
	v, err := ss.Get(model.SettingMeasurementSystem)
	if err != nil || v != units.SystemImperial {
		return units.SystemMetric
	}
	return v
}
