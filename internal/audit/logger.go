package audit

import (
	"encoding/json"
	"log"
	"time"
)

type Event struct {
	Timestamp  time.Time `json:"timestamp"`
	EventType  string    `json:"event_type"`
	SessionID  string    `json:"session_id"`
	PlayerID   string    `json:"player_id,omitempty"`
	HoleNumber int       `json:"hole_number,omitempty"`
	Status     string    `json:"status"`
	Details    any       `json:"details,omitempty"`
}

type Logger struct {
	output func(string)
}

func NewLogger() *Logger {
	return &Logger{output: func(line string) { log.Printf("AUDIT: %s", line) }}
}

// NewLoggerWithOutput sends each encoded event to out instead of the standard logger
func NewLoggerWithOutput(out func(string)) *Logger {
	return &Logger{output: out}
}

func (a *Logger) LogDeal(sessionID, playerID string, hole int, cards []string, removed int) {
	a.log(Event{
		Timestamp:  time.Now(),
		EventType:  "CARDS_DEALT",
		SessionID:  sessionID,
		PlayerID:   playerID,
		HoleNumber: hole,
		Status:     "SUCCESS",
		Details: map[string]any{
			"cards":   cards,
			"removed": removed,
		},
	})
}

func (a *Logger) LogShortfall(sessionID, playerID string, hole, missing int) {
	a.log(Event{
		Timestamp:  time.Now(),
		EventType:  "DECK_EXHAUSTED",
		SessionID:  sessionID,
		PlayerID:   playerID,
		HoleNumber: hole,
		Status:     "PARTIAL",
		Details:    map[string]int{"missing": missing},
	})
}

func (a *Logger) LogChip(sessionID, playerID string, hole int, reason string) {
	a.log(Event{
		Timestamp:  time.Now(),
		EventType:  "CHIP_ASSIGNED",
		SessionID:  sessionID,
		PlayerID:   playerID,
		HoleNumber: hole,
		Status:     "SUCCESS",
		Details:    map[string]string{"reason": reason},
	})
}

func (a *Logger) LogOperation(sessionID, playerID, operation, details string) {
	a.log(Event{
		Timestamp: time.Now(),
		EventType: operation,
		SessionID: sessionID,
		PlayerID:  playerID,
		Status:    "SUCCESS",
		Details:   map[string]string{"details": details},
	})
}

func (a *Logger) LogError(sessionID string, hole int, err error) {
	a.log(Event{
		Timestamp:  time.Now(),
		EventType:  "ERROR",
		SessionID:  sessionID,
		HoleNumber: hole,
		Status:     "FAILED",
		Details:    map[string]string{"error": err.Error()},
	})
}

func (a *Logger) log(event Event) {
	if a == nil {
		return
	}
	data, _ := json.Marshal(event)
	a.output(string(data))
}
