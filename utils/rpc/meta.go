package rpc

// Optional help/description metadata for registered methods, served by
// rpc.help. Methods without explicit metadata get a name-only placeholder.

import (
	"sort"
	"strings"
	"sync"
)

// ParamMeta describes one parameter.
type ParamMeta struct {
	Name        string `json:"name"`
	Type        string `json:"type,omitempty"`
	Required    bool   `json:"required,omitempty"`
	Description string `json:"description,omitempty"`
}

// MethodMeta describes a method for rpc.help.
type MethodMeta struct {
	Name        string      `json:"name"`
	Summary     string      `json:"summary,omitempty"`
	Description string      `json:"description,omitempty"`
	Params      []ParamMeta `json:"params,omitempty"`
	Returns     string      `json:"returns,omitempty"`
	Example     any         `json:"example,omitempty"`
}

var (
	muMetas     sync.RWMutex
	methodMetas = map[string]*MethodMeta{}
)

func getMeta(name string) *MethodMeta {
	muMetas.RLock()
	m := methodMetas[name]
	muMetas.RUnlock()
	return m
}

func ensureMeta(name string) {
	if name == "" {
		return
	}
	muMetas.Lock()
	if _, ok := methodMetas[name]; !ok {
		methodMetas[name] = &MethodMeta{Name: name}
	}
	muMetas.Unlock()
}

// RegisterMeta attaches or replaces metadata for a method. Name is filled in
// when empty.
func RegisterMeta(name string, meta *MethodMeta) {
	if name == "" || meta == nil {
		return
	}
	if meta.Name == "" {
		meta.Name = name
	}
	muMetas.Lock()
	methodMetas[name] = meta
	muMetas.Unlock()
}

// RegisterWithMeta registers the method and its metadata together.
func RegisterWithMeta(method string, h Handler, meta *MethodMeta) error {
	if err := Register(method, h); err != nil {
		return err
	}
	if meta != nil {
		RegisterMeta(method, meta)
	} else {
		ensureMeta(method)
	}
	return nil
}

// listMetas returns brief metadata for all methods, optionally hiding rpc.*.
func listMetas(includeInternal bool) []*MethodMeta {
	muHandlers.RLock()
	names := make([]string, 0, len(handlers))
	for n := range handlers {
		names = append(names, n)
	}
	muHandlers.RUnlock()
	out := make([]*MethodMeta, 0, len(names))
	for _, n := range names {
		if !includeInternal && strings.HasPrefix(n, "rpc.") {
			continue
		}
		if m := getMeta(n); m != nil {
			out = append(out, &MethodMeta{Name: m.Name, Summary: m.Summary})
		} else {
			out = append(out, &MethodMeta{Name: n})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
