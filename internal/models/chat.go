package models

// ChatRequest is the payload sent to the chat endpoint.
type ChatRequest struct {
	Message string `json:"message"`
}

// ChatResponse always carries a non-empty reply, failures included.
type ChatResponse struct {
	Reply string `json:"reply"`
}

type HealthResponse struct {
	Status string `json:"status"`
}
