package rpc

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"
)

// JsonRpcRequest is a JSON-RPC 2.0 request (single, or one element of a
// batch). ID is any so a Notification (no id) can be told apart from a normal
// request; use HasID.
type JsonRpcRequest struct {
	Version string `json:"jsonrpc"`          // must equal "2.0"
	Method  string `json:"method"`           // method name; the "rpc." prefix is reserved
	Params  any    `json:"params,omitempty"` // positional array or named object
	ID      any    `json:"id,omitempty"`     // string / number / null; omitted for Notifications
}

// NewRequest builds a normal request carrying an id.
func NewRequest(id any, method string, params any) *JsonRpcRequest {
	return &JsonRpcRequest{Version: RPC_VERSION, Method: method, Params: params, ID: id}
}

// NewNotification builds a Notification (no id, no response expected).
func NewNotification(method string, params any) *JsonRpcRequest {
	return &JsonRpcRequest{Version: RPC_VERSION, Method: method, Params: params}
}

// HasID reports whether the request expects a response.
func (r *JsonRpcRequest) HasID() bool { return r != nil && r.ID != nil }

// Validate checks structural validity only; it does not check that the
// method exists.
func (r *JsonRpcRequest) Validate() *JsonRpcError {
	if r == nil {
		return &JsonRpcError{Code: InvalidRequest, Message: "invalid request: null"}
	}
	if r.Version != RPC_VERSION {
		return &JsonRpcError{Code: InvalidRequest, Message: "invalid jsonrpc version"}
	}
	if strings.TrimSpace(r.Method) == "" {
		return &JsonRpcError{Code: InvalidRequest, Message: "method required"}
	}
	return nil
}

// GetParamAs fetches named parameter name converted to T.
func GetParamAs[T any](req *JsonRpcRequest, name string) (val T, ok bool) {
	if req == nil || req.Params == nil {
		return
	}
	m, isMap := req.Params.(map[string]any)
	if !isMap {
		return
	}
	raw, exists := m[name]
	if !exists {
		return
	}
	if v, good := raw.(T); good {
		return v, true
	}
	b, err := json.Marshal(raw)
	if err != nil {
		return
	}
	var t T
	if err = json.Unmarshal(b, &t); err != nil {
		return
	}
	return t, true
}

// BindParams decodes Params into the given struct pointer.
// Supported shapes:
//  1. object (map) -> decoded by field name, standard encoding/json rules
//  2. array ([]any) -> if target is a struct pointer, elements fill exported
//     fields in declaration order; a shorter array leaves the rest zero, a
//     longer one has its tail ignored
//  3. single scalar -> assigned to the first exported field of a struct
//  4. anything else -> whole-value decode
func (r *JsonRpcRequest) BindParams(target any) error {
	if r == nil {
		return errors.New("nil request")
	}
	if target == nil || reflect.ValueOf(target).Kind() != reflect.Ptr {
		return errors.New("target must be pointer")
	}
	if r.Params == nil {
		return nil
	}
	switch p := r.Params.(type) {
	case map[string]any:
		b, err := json.Marshal(p)
		if err != nil {
			return err
		}
		return json.Unmarshal(b, target)
	case []any:
		rv := reflect.ValueOf(target).Elem()
		if rv.Kind() == reflect.Struct {
			rt := rv.Type()
			ai := 0
			for i := 0; i < rt.NumField() && ai < len(p); i++ {
				f := rt.Field(i)
				if f.PkgPath != "" { // unexported fields do not consume a position
					continue
				}
				raw := p[ai]
				ai++
				if err := assignValue(rv.Field(i), raw); err != nil {
					return err
				}
			}
			return nil
		}
		b, err := json.Marshal(p)
		if err != nil {
			return err
		}
		return json.Unmarshal(b, target)
	default:
		// single scalar into the first exported struct field
		rv := reflect.ValueOf(target).Elem()
		if rv.Kind() == reflect.Struct {
			rt := rv.Type()
			for i := 0; i < rt.NumField(); i++ {
				if rt.Field(i).PkgPath != "" {
					continue
				}
				return assignValue(rv.Field(i), p)
			}
			// struct has no exported fields
			return nil
		}
		b, err := json.Marshal(p)
		if err != nil {
			return err
		}
		return json.Unmarshal(b, target)
	}
}

// assignValue sets fv to raw, direct assignment or conversion where
// possible, otherwise a JSON round trip (handles float64 -> int, base64
// strings -> []byte, and the like).
func assignValue(fv reflect.Value, raw any) error {
	if raw != nil {
		val := reflect.ValueOf(raw)
		if val.IsValid() {
			if val.Type().AssignableTo(fv.Type()) {
				fv.Set(val)
				return nil
			}
			if val.Type().ConvertibleTo(fv.Type()) && fv.Kind() != reflect.Slice {
				fv.Set(val.Convert(fv.Type()))
				return nil
			}
		}
	}
	b, err := json.Marshal(raw)
	if err != nil {
		return err
	}
	tmp := reflect.New(fv.Type())
	if err = json.Unmarshal(b, tmp.Interface()); err != nil {
		return err
	}
	fv.Set(tmp.Elem())
	return nil
}
