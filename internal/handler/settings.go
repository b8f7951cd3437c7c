package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/dukerupert/flexidiet/internal/model"
	"github.com/dukerupert/flexidiet/internal/store"
	"github.com/dukerupert/flexidiet/internal/validation"
	"github.com/dukerupert/flexidiet/internal/websocket"
)

// settingRules maps each editable setting to its validation tag.
var settingRules = map[string]string{
	model.SettingPremiumEnabledGlobally: "oneof=true false",
	model.SettingAdminEmail:             "omitempty,email",
	model.SettingMeasurementSystem:      "oneof=metric imperial",
}

type SettingsHandler struct {
	settingsStore *store.SettingsStore
	hub           *websocket.Hub
	validator     *validation.Validator
	logger        *slog.Logger
}

func NewSettingsHandler(ss *store.SettingsStore, hub *websocket.Hub, v *validation.Validator, logger *slog.Logger) *SettingsHandler {
	return &SettingsHandler{settingsStore: ss, hub: hub, validator: v, logger: logger.With("component", "handler.settings")}
}

func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settingsStore.GetAppSettings()
	if err != nil {
		h.logger.Error("get settings", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to get settings")
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req map[string]string
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	for key, value := range req {
		req[key] = strings.TrimSpace(value)
	}
	if err := h.validateSettings(req); err != nil {
		var verr *validation.Error
		if errors.As(err, &verr) {
			writeJSON(w, http.StatusBadRequest, validationResponse{Error: "validation failed", Fields: verr.Fields})
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	for key, value := range req {
		if err := h.settingsStore.Set(key, value); err != nil {
			h.logger.Error("save setting", "key", key, "error", err)
			writeError(w, http.StatusInternalServerError, "failed to save settings")
			return
		}
	}

	h.hub.Broadcast(websocket.NewMessage("settings", "updated", 0, nil))

	settings, err := h.settingsStore.GetAppSettings()
	if err != nil {
		h.logger.Error("get settings", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to get settings")
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

func (h *SettingsHandler) validateSettings(settings map[string]string) error {
	fields := make(map[string]string)
	for key, value := range settings {
		tag, ok := settingRules[key]
		if !ok {
			return fmt.Errorf("unknown setting: %s", key)
		}
		if err := h.validator.Field(key, value, tag); err != nil {
			var verr *validation.Error
			if !errors.As(err, &verr) {
				return err
			}
			for k, msg := range verr.Fields {
				fields[k] = msg
			}
		}
	}
	if len(fields) > 0 {
		return &validation.Error{Fields: fields}
	}
	return nil
}
