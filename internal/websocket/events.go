package websocket

type MilitarySummary struct {
	ID       uint   `json:"id"`
	FullName string `json:"fullName"`
	Rank     string `json:"rank"`
	Unit     string `json:"unit"`
}

type PendingRequestEvent struct {
	RequestID uint            `json:"requestId"`
	Kind      string          `json:"kind"`
	Location  string          `json:"location"`
	Timestamp string          `json:"timestamp"`
	Military  MilitarySummary `json:"military"`
}

type DecisionEvent struct {
	RequestID uint            `json:"requestId"`
	Kind      string          `json:"kind"`
	Outcome   string          `json:"outcome"`
	Location  string          `json:"location"`
	DecidedBy uint            `json:"decidedBy,omitempty"`
	DecidedAt string          `json:"decidedAt,omitempty"`
	Military  MilitarySummary `json:"military"`
}

type SystemEvent struct {
	Message   string `json:"message"`
	Severity  string `json:"severity"`
	Source    string `json:"source"`
	Timestamp string `json:"timestamp"`
}

func (h *Hub) BroadcastSystemEvent(systemEvent SystemEvent, adminOnly bool) {
	if adminOnly {
		h.BroadcastToAdmins("system_event", systemEvent)
		return
	}
	h.BroadcastToAll("system_event", systemEvent)
}
