package rpc

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
)

// Handler is the method signature: result on success or *JsonRpcError on
// failure, never both.
type Handler func(ctx context.Context, req *JsonRpcRequest) (any, *JsonRpcError)

var (
	muHandlers sync.RWMutex
	handlers   = map[string]Handler{}
)

// Register adds a method. Duplicate registration is an error. The "rpc."
// prefix is reserved for internal methods.
func Register(method string, h Handler) error {
	method = strings.TrimSpace(method)
	if method == "" {
		return errors.New("method empty")
	}
	if strings.HasPrefix(method, "rpc.") {
		return errors.New("method prefix 'rpc.' is reserved")
	}
	muHandlers.Lock()
	defer muHandlers.Unlock()
	if _, exists := handlers[method]; exists {
		return fmt.Errorf("method already registered: %s", method)
	}
	handlers[method] = h
	return nil
}

// MustRegister panics on registration error. Intended for wiring at startup.
func MustRegister(method string, h Handler) {
	if err := Register(method, h); err != nil {
		panic(err)
	}
}

// ListMethods returns a copy of the registered method names.
func ListMethods() []string {
	muHandlers.RLock()
	defer muHandlers.RUnlock()
	res := make([]string, 0, len(handlers))
	for k := range handlers {
		res = append(res, k)
	}
	return res
}
