package domain

// PayloadShape define o formato do corpo enviado ao webhook
type PayloadShape string

const (
	ScheduledShape PayloadShape = "scheduled"
	TickShape      PayloadShape = "tick"
)

// Destination descreve para onde e em qual formato um insight é entregue
type Destination struct {
	Name  string
	URL   string
	Shape PayloadShape
}

// ScheduledPayload é o corpo do envio semanal
type ScheduledPayload struct {
	Text string `json:"text"`
}

// TickPayload é o corpo do envio disparado por /tick
type TickPayload struct {
	Message   string `json:"message"`
	Username  string `json:"username"`
	EventName string `json:"event_name"`
	Status    string `json:"status"`
}

// TickRequest é o payload opaco recebido em /tick
type TickRequest struct {
	ChannelID string         `json:"channel_id,omitempty"`
	ReturnURL string         `json:"return_url,omitempty"`
	Settings  []TickSettings `json:"settings,omitempty"`
}

type TickSettings struct {
	Label    string `json:"label"`
	Type     string `json:"type"`
	Required bool   `json:"required"`
	Default  any    `json:"default"`
}
