package transport

import "encoding/json"

// ErrorBody carries the machine-readable code alongside the human message.
type ErrorBody struct {
	Code    string      `json:"code"`
	Message interface{} `json:"message"`
}

// Envelope is the response wrapper shared by every endpoint.
type Envelope struct {
	Status string      `json:"status"`
	Data   interface{} `json:"data,omitempty"`
	Error  *ErrorBody  `json:"error,omitempty"`
	Meta   interface{} `json:"meta,omitempty"`
}

// NewSuccess returns a success envelope.
func NewSuccess(data interface{}, meta interface{}) Envelope {
	return Envelope{
		Status: "success",
		Data:   data,
		Meta:   meta,
	}
}

// NewError returns an error envelope with optional metadata.
func NewError(code string, message interface{}, meta interface{}) Envelope {
	return Envelope{
		Status: "error",
		Error:  &ErrorBody{Code: code, Message: message},
		Meta:   meta,
	}
}

// String returns the JSON representation (best-effort) for logging purposes.
func (e Envelope) String() string {
	out, err := json.Marshal(e)
	if err != nil {
		return "{}"
	}
	return string(out)
}
