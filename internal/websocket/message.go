package websocket

import "encoding/json"

// Message defines the structure for websocket messages in both directions.
type Message struct {
	Action  string      `json:"action"`
	Payload interface{} `json:"payload"`
}

// Topics the dashboards may subscribe to.
const (
	TopicUsers         = "users"
	TopicPets          = "pets"
	TopicVeterinarians = "veterinarians"
	TopicStats         = "stats"
)

// NewChangeMessage encodes a collection-change notification.
func NewChangeMessage(topic, action string, payload interface{}) []byte {
	data, _ := json.Marshal(Message{
		Action:  topic + "." + action,
		Payload: payload,
	})
	return data
}

// NewErrorMessage encodes an error for a single client.
func NewErrorMessage(text string) []byte {
	data, _ := json.Marshal(Message{Action: "error", Payload: text})
	return data
}
