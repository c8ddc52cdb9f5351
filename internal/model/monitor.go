package model

// -----------------------------------------------------------------
// Monitor API Response Models
// -----------------------------------------------------------------

// MonitorResponse is the main response for the monitor API
type MonitorResponse struct {
	Status          string          `json:"status"`          // "healthy", "idle"
	Connections     ConnectionStats `json:"connections"`     // live feed connection stats
	Subscriptions   map[string]int  `json:"subscriptions"`   // clients per resource filter ("*" = all)
	EventsBroadcast uint64          `json:"eventsBroadcast"` // events handed to the hub
	EventsDropped   uint64          `json:"eventsDropped"`   // deliveries dropped on full buffers
	Clients         []ClientInfo    `json:"clients"`
}

// ConnectionStats holds connection-related statistics
type ConnectionStats struct {
	TotalConnected int `json:"totalConnected"`
}

// ClientInfo contains information about a connected client
type ClientInfo struct {
	ClientID    string `json:"clientId"`
	Resource    string `json:"resource,omitempty"`
	ConnectedAt string `json:"connectedAt"` // ISO timestamp
}
