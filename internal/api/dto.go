package api

import "time"

// Message is the body of every error and of the hello and delete responses.
type Message struct {
	Message string `json:"message"`
}

// Status describes the running server for GET /api/status.
type Status struct {
	Backend   string    `json:"backend"`
	DataPath  string    `json:"dataPath"`
	Count     int       `json:"count"`
	StartedAt time.Time `json:"startedAt"`
	Version   string    `json:"version"`
	Media     bool      `json:"mediaSearch"`
}
