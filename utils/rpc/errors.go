package rpc

import "fmt"

// JsonRpcError is the error object of a JSON-RPC 2.0 response. Code uses the
// reserved -32768..-32000 range for protocol errors; the coordinator's domain
// codes live just outside the range reserved by the spec for implementations.
// Message is a short description, Data carries optional structured detail.
type JsonRpcError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// JSON-RPC 2.0 standard error codes.
const (
	ParseError     = -32700
	InvalidRequest = -32600
	MethodNotFound = -32601
	InvalidParams  = -32602
	InternalError  = -32603
)

// Coordinator error codes. Stable: clients dispatch on these.
const (
	NotFound          = -32044 // no Profile/Task with the given id
	Conflict          = -32045 // duplicate profile name or dangling profile reference
	ResourceExhausted = -32046 // connection pool cannot supply a connection in time
	Unavailable       = -32051 // backing store unreachable
)

// MakeError builds an error object.
func MakeError(code int, msg string, data any) *JsonRpcError {
	return &JsonRpcError{Code: code, Message: msg, Data: data}
}

func (e *JsonRpcError) Error() string {
	return fmt.Sprintf("JSON-RPC Error %d: %s", e.Code, e.Message)
}

func (e *JsonRpcError) Response() *JsonRpcResponse {
	return e.ResponseWithID(nil)
}

func (e *JsonRpcError) ResponseWithID(id any) *JsonRpcResponse {
	return &JsonRpcResponse{
		Version: RPC_VERSION,
		Error:   e,
		ID:      id,
	}
}
