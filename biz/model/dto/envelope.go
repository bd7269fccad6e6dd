package dto

// CommonResp wraps every JSON response. Data is kept on some failures, e.g.
// the remaining attempt budget of a refused login.
type CommonResp struct {
	Success bool   `json:"success"`
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}
