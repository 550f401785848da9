package entity

// ResponseMeta is the meta block of every API response.
type ResponseMeta struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Error      string `json:"error"`
}

// Envelope wraps every successful API payload.
type Envelope[T any] struct {
	Meta ResponseMeta `json:"meta"`
	Data T            `json:"data"`
}
