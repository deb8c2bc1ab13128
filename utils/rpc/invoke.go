package rpc

import "context"

// Invoke builds a request and runs the registered method directly, returning
// result or *JsonRpcError without wrapping in a JsonRpcResponse.
func Invoke(method string, params any) (any, *JsonRpcError) {
	req := &JsonRpcRequest{Version: RPC_VERSION, Method: method, Params: params}
	if e := req.Validate(); e != nil {
		return nil, e
	}
	muHandlers.RLock()
	h, ok := handlers[method]
	muHandlers.RUnlock()
	if !ok {
		return nil, &JsonRpcError{Code: MethodNotFound, Message: "method not found", Data: method}
	}
	return h(context.Background(), req)
}

// Call runs a method and returns a complete JSON-RPC response, error
// included. For outward-facing dispatch.
func Call(id any, method string, params any) *JsonRpcResponse {
	return CallWithContext(context.Background(), id, method, params)
}

func CallWithContext(ctx context.Context, id any, method string, params any) *JsonRpcResponse {
	if ctx == nil {
		ctx = context.Background()
	}
	req := &JsonRpcRequest{Version: RPC_VERSION, Method: method, Params: params, ID: id}
	if e := req.Validate(); e != nil {
		return ErrorResponse(id, e.Code, e.Message, e.Data)
	}
	muHandlers.RLock()
	h, ok := handlers[method]
	muHandlers.RUnlock()
	if !ok {
		return ErrorResponse(id, MethodNotFound, "method not found", method)
	}
	result, jerr := h(ctx, req)
	if jerr != nil {
		return ErrorResponse(id, jerr.Code, jerr.Message, jerr.Data)
	}
	return SuccessResponse(id, result)
}
