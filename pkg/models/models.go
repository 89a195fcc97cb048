package models

// Status values carried in every Payload.
const (
	StatusSuccess = "Success"
)

// Fixed messages served by the liveness routes.
const (
	RootMessage   = "Hello from express server"
	HealthMessage = "Health I am running"
	RootText      = "Server is running successfully!"
)

// Payload is the JSON body returned by the root and health routes.
type Payload struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// RootPayload is the response for GET /.
func RootPayload() Payload {
	return Payload{Status: StatusSuccess, Message: RootMessage}
}

// HealthPayload is the response for GET /health.
func HealthPayload() Payload {
	return Payload{Status: StatusSuccess, Message: HealthMessage}
}
