package rpc

import (
	"context"
	"testing"
)

func TestRegisterDuplicateAndReserved(t *testing.T) {
	name := "sample.method"
	if err := Register(name, func(ctx context.Context, req *JsonRpcRequest) (any, *JsonRpcError) { return "ok", nil }); err != nil {
		t.Fatalf("first Register failed: %v", err)
	}
	if err := Register(name, func(ctx context.Context, req *JsonRpcRequest) (any, *JsonRpcError) { return "ok", nil }); err == nil {
		t.Fatalf("expected duplicate register error")
	}
	if err := Register("rpc.test", func(ctx context.Context, req *JsonRpcRequest) (any, *JsonRpcError) { return nil, nil }); err == nil {
		t.Fatalf("expected reserved prefix error")
	}
}

func TestInternalMethods(t *testing.T) {
	res, err := Invoke("rpc.ping", nil)
	if err != nil {
		t.Fatalf("rpc.ping returned error: %+v", err)
	}
	if res != "pong" {
		t.Fatalf("expected pong got %v", res)
	}
	res, err = Invoke("rpc.version", nil)
	if err != nil {
		t.Fatalf("rpc.version returned error: %+v", err)
	}
	if res != RPC_VERSION {
		t.Fatalf("expected version %s got %v", RPC_VERSION, res)
	}
}

func TestCallUnknownMethod(t *testing.T) {
	resp := Call(1, "no.such.method", nil)
	if resp.Error == nil || resp.Error.Code != MethodNotFound {
		t.Fatalf("expected MethodNotFound, got %+v", resp.Error)
	}
}

func TestRpcHelp(t *testing.T) {
	method := "demo.echo"
	RegisterWithMeta(method, func(ctx context.Context, req *JsonRpcRequest) (any, *JsonRpcError) {
		v, _ := GetParamAs[string](req, "v")
		return v, nil
	}, &MethodMeta{Summary: "echo back string", Params: []ParamMeta{{Name: "v", Type: "string"}}, Returns: "string"})

	resp := Call(1, "rpc.help", map[string]any{"method": method})
	if resp.Error != nil {
		t.Fatalf("rpc.help single error: %+v", resp.Error)
	}
	resp = Call(2, "rpc.help", nil)
	if resp.Error != nil {
		t.Fatalf("rpc.help nil params error: %+v", resp.Error)
	}
}

func TestBindParamsPositionalStruct(t *testing.T) {
	type Pair struct {
		First  int
		Second int
	}
	req := &JsonRpcRequest{Version: RPC_VERSION, Method: "x", Params: []any{1, 2}}
	var p Pair
	if err := req.BindParams(&p); err != nil {
		t.Fatalf("BindParams failed: %v", err)
	}
	if p.First != 1 || p.Second != 2 {
		t.Fatalf("unexpected struct values: %+v", p)
	}
	// shorter array leaves the tail zero
	req2 := &JsonRpcRequest{Version: RPC_VERSION, Method: "x", Params: []any{7}}
	p = Pair{}
	if err := req2.BindParams(&p); err != nil {
		t.Fatalf("BindParams short failed: %v", err)
	}
	if p.First != 7 || p.Second != 0 {
		t.Fatalf("expected (7,0) got %+v", p)
	}
	// longer array ignores the extras
	req3 := &JsonRpcRequest{Version: RPC_VERSION, Method: "x", Params: []any{9, 8, 100}}
	p = Pair{}
	if err := req3.BindParams(&p); err != nil {
		t.Fatalf("BindParams long failed: %v", err)
	}
	if p.First != 9 || p.Second != 8 {
		t.Fatalf("expected (9,8) got %+v", p)
	}
}

func TestBindParamsNamedObject(t *testing.T) {
	type Args struct {
		Base string `json:"base"`
		Name string `json:"name"`
	}
	req := &JsonRpcRequest{Version: RPC_VERSION, Method: "x", Params: map[string]any{"base": "ci", "name": "nightly"}}
	var a Args
	if err := req.BindParams(&a); err != nil {
		t.Fatalf("BindParams failed: %v", err)
	}
	if a.Base != "ci" || a.Name != "nightly" {
		t.Fatalf("unexpected values: %+v", a)
	}
}

func TestBindParamsBase64Bytes(t *testing.T) {
	type Args struct {
		Data []byte `json:"data"`
	}
	// "hello" base64 encoded, as []byte marshals over JSON
	req := &JsonRpcRequest{Version: RPC_VERSION, Method: "x", Params: map[string]any{"data": "aGVsbG8="}}
	var a Args
	if err := req.BindParams(&a); err != nil {
		t.Fatalf("BindParams failed: %v", err)
	}
	if string(a.Data) != "hello" {
		t.Fatalf("expected hello got %q", a.Data)
	}
}

func TestParseRequests(t *testing.T) {
	reqs, jerr := ParseRequests([]byte(`{"jsonrpc":"2.0","method":"rpc.ping","id":1}`))
	if jerr != nil {
		t.Fatalf("single parse failed: %+v", jerr)
	}
	if len(reqs) != 1 || reqs[0].Method != "rpc.ping" {
		t.Fatalf("unexpected parse result: %+v", reqs)
	}

	reqs, jerr = ParseRequests([]byte(`[{"jsonrpc":"2.0","method":"a","id":1},{"jsonrpc":"2.0","method":"b"}]`))
	if jerr != nil {
		t.Fatalf("batch parse failed: %+v", jerr)
	}
	if len(reqs) != 2 {
		t.Fatalf("expected 2 requests got %d", len(reqs))
	}
	if reqs[0].HasID() != true || reqs[1].HasID() != false {
		t.Fatalf("notification detection wrong: %+v", reqs)
	}

	if _, jerr = ParseRequests([]byte(`[]`)); jerr == nil || jerr.Code != InvalidRequest {
		t.Fatalf("empty batch should be InvalidRequest, got %+v", jerr)
	}
	if _, jerr = ParseRequests([]byte(`not json`)); jerr == nil || jerr.Code != ParseError {
		t.Fatalf("garbage should be ParseError, got %+v", jerr)
	}
	if _, jerr = ParseRequests([]byte(`{"jsonrpc":"1.0","method":"x"}`)); jerr == nil || jerr.Code != InvalidRequest {
		t.Fatalf("wrong version should be InvalidRequest, got %+v", jerr)
	}
}

func TestContextMeta(t *testing.T) {
	meta := &ContextMeta{TraceID: "t-1", RemoteIP: "127.0.0.1"}
	ctx := NewContextWithMeta(context.Background(), meta)
	if got := MetaFromContext(ctx); got == nil || got.TraceID != "t-1" {
		t.Fatalf("meta round trip failed: %+v", got)
	}
	if TraceIDFromContext(context.Background()) != "" {
		t.Fatalf("expected empty trace id on bare context")
	}
}
