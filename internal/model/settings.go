package model

import "time"

const (
	SettingPremiumEnabledGlobally = "premium_enabled_globally"
	SettingAdminEmail             = "admin_email"
	SettingMeasurementSystem      = "measurement_system"
)

type Setting struct {
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}
