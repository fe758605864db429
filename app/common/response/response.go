package response

type Response struct {
	StatusCode int    `json:"code"`
	StatusMsg  string `json:"msg"`
}

type ResponseWithData struct {
	StatusCode int         `json:"code"`
	StatusMsg  string      `json:"msg"`
	Data       interface{} `json:"data"`
}

// Status is the plain body returned to webhook callers, which only look at
// the HTTP status code.
type Status struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

func NewResponse(statusCode int, statusMsg string) Response {
	return Response{
		StatusCode: statusCode,
		StatusMsg:  statusMsg,
	}
}

func NewResponseWithData(statusCode int, statusMsg string, data interface{}) ResponseWithData {
	return ResponseWithData{
		StatusCode: statusCode,
		StatusMsg:  statusMsg,
		Data:       data,
	}
}

func OK(message string) Status {
	return Status{Status: "ok", Message: message}
}
