package rpc

const RPC_VERSION = "2.0"

// JsonRpcResponse is a JSON-RPC 2.0 response. Result and Error are mutually
// exclusive. Notifications receive no response at all.
type JsonRpcResponse struct {
	Version string        `json:"jsonrpc"`
	ID      any           `json:"id,omitempty"`
	Result  any           `json:"result,omitempty"`
	Error   *JsonRpcError `json:"error,omitempty"`
}

// SuccessResponse builds a success response.
func SuccessResponse(id any, result any) *JsonRpcResponse {
	return &JsonRpcResponse{Version: RPC_VERSION, ID: id, Result: result}
}

// ErrorResponse builds a failure response.
func ErrorResponse(id any, code int, msg string, data any) *JsonRpcResponse {
	return &JsonRpcResponse{Version: RPC_VERSION, ID: id, Error: &JsonRpcError{Code: code, Message: msg, Data: data}}
}

// InternalErrorResponse wraps an unexpected error.
func InternalErrorResponse(id any, err error) *JsonRpcResponse {
	msg := "internal error"
	if err != nil {
		msg = err.Error()
	}
	return ErrorResponse(id, InternalError, msg, nil)
}
