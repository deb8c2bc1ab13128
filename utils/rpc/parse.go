package rpc

import (
	"bytes"
	"encoding/json"
)

// ParseRequest parses a single JSON-RPC request from raw bytes.
func ParseRequest(data []byte) (*JsonRpcRequest, *JsonRpcError) {
	requests, err := ParseRequests(data)
	if err != nil {
		return nil, err
	}
	if len(requests) == 0 {
		return nil, &JsonRpcError{Code: InvalidRequest, Message: "no requests found"}
	}
	return requests[0], nil
}

// ParseRequests parses a single request or a batch array. An empty batch is
// InvalidRequest per the protocol.
func ParseRequests(data []byte) ([]*JsonRpcRequest, *JsonRpcError) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, &JsonRpcError{Code: ParseError, Message: "empty body"}
	}
	switch data[0] {
	case '{':
		var r JsonRpcRequest
		if err := json.Unmarshal(data, &r); err != nil {
			return nil, &JsonRpcError{Code: ParseError, Message: "invalid json", Data: err.Error()}
		}
		if e := r.Validate(); e != nil {
			return nil, e
		}
		return []*JsonRpcRequest{&r}, nil
	case '[':
		var arr []JsonRpcRequest
		if err := json.Unmarshal(data, &arr); err != nil {
			return nil, &JsonRpcError{Code: ParseError, Message: "invalid json", Data: err.Error()}
		}
		if len(arr) == 0 {
			return nil, &JsonRpcError{Code: InvalidRequest, Message: "empty batch"}
		}
		res := make([]*JsonRpcRequest, 0, len(arr))
		for i := range arr {
			rr := arr[i]
			if e := rr.Validate(); e != nil {
				return nil, e
			}
			res = append(res, &rr)
		}
		return res, nil
	}
	return nil, &JsonRpcError{Code: ParseError, Message: "invalid json: not object/array"}
}
