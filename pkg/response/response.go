package response

// Response is the envelope every endpoint returns. Exactly one of Data
// or Error is set.
type Response struct {
	Status     string      `json:"status"`      // "success" or "error"
	StatusCode int         `json:"status_code"` // HTTP status code
	Data       interface{} `json:"data,omitempty"`
	Error      string      `json:"error,omitempty"`
}

// Success wraps data in a success envelope
func Success(statusCode int, data interface{}) Response {
	return Response{
		Status:     "success",
		StatusCode: statusCode,
		Data:       data,
	}
}

// Error wraps an error message in an error envelope
func Error(statusCode int, err string) Response {
	return Response{
		Status:     "error",
		StatusCode: statusCode,
		Error:      err,
	}
}

// Paginated wraps a page of items keyed under itemsKey, together with
// the total count and the page/limit that produced it. List endpoints
// (estimates, slips, rate cards, users, audit logs) all share this shape.
func Paginated(statusCode int, itemsKey string, items interface{}, total int64, page, limit int) Response {
	return Success(statusCode, map[string]interface{}{
		itemsKey: items,
		"total":  total,
		"page":   page,
		"limit":  limit,
	})
}
