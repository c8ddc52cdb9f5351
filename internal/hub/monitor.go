package hub

import (
	"sort"
	"time"

	"foodhub/internal/model"
)

// MonitorService provides methods to gather hub statistics
type MonitorService struct {
	hub *Hub
}

// NewMonitorService creates a new monitor service
func NewMonitorService(hub *Hub) *MonitorService {
	return &MonitorService{hub: hub}
}

// GetStats gathers and returns all hub statistics
func (ms *MonitorService) GetStats() model.MonitorResponse {
	clients := ms.getClientList()

	status := "healthy"
	if len(clients) == 0 {
		status = "idle"
	}

	return model.MonitorResponse{
		Status:          status,
		Connections:     model.ConnectionStats{TotalConnected: len(clients)},
		Subscriptions:   ms.getSubscriptionCount(),
		EventsBroadcast: ms.hub.eventsBroadcast.Load(),
		EventsDropped:   ms.hub.eventsDropped.Load(),
		Clients:         clients,
	}
}

// getClientList returns list of all connected clients, oldest first
func (ms *MonitorService) getClientList() []model.ClientInfo {
	ms.hub.bucket.RLock()
	defer ms.hub.bucket.RUnlock()

	var connected []*Client
	for _, room := range ms.hub.bucket.rooms {
		for _, client := range room {
			connected = append(connected, client)
		}
	}
	sort.Slice(connected, func(i, j int) bool {
		return connected[i].connectedAt.Before(connected[j].connectedAt)
	})

	clients := make([]model.ClientInfo, 0, len(connected))
	for _, client := range connected {
		clients = append(clients, model.ClientInfo{
			ClientID:    client.ID,
			Resource:    client.resource,
			ConnectedAt: client.connectedAt.Format(time.RFC3339),
		})
	}
	return clients
}

// getSubscriptionCount returns count of clients by resource filter
func (ms *MonitorService) getSubscriptionCount() map[string]int {
	ms.hub.bucket.RLock()
	defer ms.hub.bucket.RUnlock()

	counts := make(map[string]int, len(ms.hub.bucket.rooms))
	for resource, room := range ms.hub.bucket.rooms {
		counts[resource] = len(room)
	}
	return counts
}
