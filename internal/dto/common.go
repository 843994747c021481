package dto

type CreatedResponse struct {
	TraceID string `json:"traceId"`
	ID      int64  `json:"id"`
}
