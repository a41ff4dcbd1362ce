package socket

// Broadcaster publishes board events to every board subscriber, the actor
// included, so other sessions of the same user stay in sync. A nil
// Broadcaster is valid and drops every event.
type Broadcaster struct {
	hub *Hub
}

func NewBroadcaster(hub *Hub) *Broadcaster {
	return &Broadcaster{hub: hub}
}

// BroadcastProjectCreated announces a new card on the board.
func (b *Broadcaster) BroadcastProjectCreated(project map[string]interface{}, actorID string) {
	if b == nil {
		return
	}
	b.hub.SendToRoom(RoomBoard, MessageProjectCreated, map[string]interface{}{
		"project":       project,
		"changedByUser": actorID,
	}, "")
}

// BroadcastProjectUpdated announces field changes other than status.
func (b *Broadcaster) BroadcastProjectUpdated(project map[string]interface{}, changes []string, actorID string) {
	if b == nil {
		return
	}
	b.hub.SendToRoom(RoomBoard, MessageProjectUpdated, map[string]interface{}{
		"project":       project,
		"changedFields": changes,
		"changedByUser": actorID,
	}, "")
}

// BroadcastProjectStatusChanged announces a card moving between columns.
func (b *Broadcaster) BroadcastProjectStatusChanged(projectID, oldStatus, newStatus, actorID string) {
	if b == nil {
		return
	}
	b.hub.SendToRoom(RoomBoard, MessageProjectStatusChanged, map[string]interface{}{
		"projectId":     projectID,
		"oldStatus":     oldStatus,
		"newStatus":     newStatus,
		"changedByUser": actorID,
	}, "")
}

func (b *Broadcaster) BroadcastProjectDeleted(projectID, actorID string) {
	if b == nil {
		return
	}
	b.hub.SendToRoom(RoomBoard, MessageProjectDeleted, map[string]interface{}{
		"projectId":     projectID,
		"changedByUser": actorID,
	}, "")
}
