package rpc

// Internal methods under the reserved "rpc." prefix.

import (
	"context"
	"sort"
	"strings"
)

// registerInternal writes a reserved-prefix method directly. Called from
// init only; duplicates are ignored rather than panicking.
func registerInternal(method string, h Handler) {
	if !strings.HasPrefix(method, "rpc.") {
		method = "rpc." + method
	}
	muHandlers.Lock()
	if _, exists := handlers[method]; !exists {
		handlers[method] = h
	}
	muHandlers.Unlock()
}

// listMethods returns method names; includeInternal=false drops rpc.*.
func listMethods(includeInternal bool) []string {
	all := ListMethods()
	out := make([]string, 0, len(all))
	for _, m := range all {
		if !includeInternal && strings.HasPrefix(m, "rpc.") {
			continue
		}
		out = append(out, m)
	}
	sort.Strings(out)
	return out
}

func init() {
	registerInternal("rpc.methods", func(ctx context.Context, req *JsonRpcRequest) (any, *JsonRpcError) {
		var params struct {
			ShowInternal bool `json:"internal"`
		}
		req.BindParams(&params)
		return listMethods(params.ShowInternal), nil
	})
	registerInternal("rpc.version", func(ctx context.Context, req *JsonRpcRequest) (any, *JsonRpcError) {
		return RPC_VERSION, nil
	})
	registerInternal("rpc.ping", func(ctx context.Context, req *JsonRpcRequest) (any, *JsonRpcError) {
		return "pong", nil
	})
	registerInternal("rpc.help", func(ctx context.Context, req *JsonRpcRequest) (any, *JsonRpcError) {
		var params struct {
			Method string `json:"method"`
		}
		req.BindParams(&params)
		if params.Method != "" {
			meta := getMeta(params.Method)
			if meta == nil {
				return nil, MakeError(InvalidRequest, "method not found", nil)
			}
			return meta, nil
		}
		return listMetas(true), nil
	})

	RegisterMeta("rpc.methods", &MethodMeta{
		Name:        "rpc.methods",
		Summary:     "List methods",
		Description: "Return the list of callable methods. Internal rpc.* methods are hidden unless internal=true.",
		Params:      []ParamMeta{{Name: "internal", Type: "bool", Description: "Include internal rpc.* methods"}},
		Returns:     "[]string",
	})
	RegisterMeta("rpc.version", &MethodMeta{Name: "rpc.version", Summary: "Return the RPC protocol version", Returns: "string"})
	RegisterMeta("rpc.ping", &MethodMeta{Name: "rpc.ping", Summary: "Health check, returns pong", Returns: "string"})
	RegisterMeta("rpc.help", &MethodMeta{
		Name:        "rpc.help",
		Summary:     "Get method help",
		Description: "Returns metadata for the named method, or a summary of every method when no name is given.",
		Params:      []ParamMeta{{Name: "method", Type: "string", Description: "Method to describe"}},
		Returns:     "MethodMeta | []MethodMeta",
	})
}
