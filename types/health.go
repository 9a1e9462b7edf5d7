package types

type HealthStatus string

const (
	HealthStatusOK    HealthStatus = "ok"
	HealthStatusError HealthStatus = "error"
)

type HealthComponent struct {
	Status  HealthStatus `json:"status"`
	Details string       `json:"details,omitempty"`
}

type HealthCheck struct {
	Status     HealthStatus               `json:"status"`
	Timestamp  string                     `json:"timestamp"`
	Components map[string]HealthComponent `json:"components,omitempty"`
}
