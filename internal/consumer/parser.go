package consumer

import (
	"encoding/json"
	"fmt"

	"github.com/sirikagonuguntla/website-analytics-api/internal/domain"
)

// JSONEventParser decodes events published by the API as JSON
type JSONEventParser struct{}

// NewJSONEventParser creates a new JSON event parser
func NewJSONEventParser() *JSONEventParser {
	return &JSONEventParser{}
}

// Parse decodes body and rejects events the API could never have published
func (p *JSONEventParser) Parse(body []byte) (*domain.Event, error) {
	var event domain.Event
	if err := json.Unmarshal(body, &event); err != nil {
		return nil, fmt.Errorf("failed to unmarshal message body: %w", err)
	}

	switch {
	case event.EventID == "":
		return nil, fmt.Errorf("message is missing event_id")
	case event.ApplicationID == "":
		return nil, fmt.Errorf("event %s is missing application_id", event.EventID)
	case event.EventName == "":
		return nil, fmt.Errorf("event %s is missing event_name", event.EventID)
	case event.Timestamp.IsZero():
		return nil, fmt.Errorf("event %s is missing timestamp", event.EventID)
	}

	event.Timestamp = event.Timestamp.UTC()
	return &event, nil
}
