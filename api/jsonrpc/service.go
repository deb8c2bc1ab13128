package jsonrpc

// The coordinator's RPC surface: six methods over the profile registry and
// task store. Handlers bind params, call the stores and translate the store
// error taxonomy into stable fault codes.

import (
	"context"
	"errors"
	"fmt"

	"github.com/schmilblick-org/violetear-coordinator/database/auditlog"
	"github.com/schmilblick-org/violetear-coordinator/database/dbcore"
	"github.com/schmilblick-org/violetear-coordinator/database/models"
	"github.com/schmilblick-org/violetear-coordinator/database/profiles"
	"github.com/schmilblick-org/violetear-coordinator/database/tasks"
	"github.com/schmilblick-org/violetear-coordinator/utils/rpc"
)

// Service binds the RPC methods to injected stores.
type Service struct {
	db       *dbcore.DB
	profiles *profiles.Registry
	tasks    *tasks.Store
}

func NewService(db *dbcore.DB, reg *profiles.Registry, store *tasks.Store) *Service {
	return &Service{db: db, profiles: reg, tasks: store}
}

// fault maps a store error onto the coordinator's RPC fault codes. The code,
// not the message, is the contract with callers.
func fault(err error) *rpc.JsonRpcError {
	switch {
	case errors.Is(err, dbcore.ErrNotFound):
		return rpc.MakeError(rpc.NotFound, err.Error(), nil)
	case errors.Is(err, dbcore.ErrConflict):
		return rpc.MakeError(rpc.Conflict, err.Error(), nil)
	case errors.Is(err, dbcore.ErrBusy):
		return rpc.MakeError(rpc.ResourceExhausted, err.Error(), nil)
	case errors.Is(err, dbcore.ErrUnavailable):
		return rpc.MakeError(rpc.Unavailable, err.Error(), nil)
	default:
		return rpc.MakeError(rpc.InternalError, err.Error(), nil)
	}
}

func invalidParams(err error) *rpc.JsonRpcError {
	return rpc.MakeError(rpc.InvalidParams, "invalid params: "+err.Error(), nil)
}

func (s *Service) createProfile(ctx context.Context, req *rpc.JsonRpcRequest) (any, *rpc.JsonRpcError) {
	var params struct {
		Base string `json:"base"`
		Name string `json:"name"`
		Json string `json:"json"`
	}
	if err := req.BindParams(&params); err != nil {
		return nil, invalidParams(err)
	}
	if params.Name == "" {
		return nil, rpc.MakeError(rpc.InvalidParams, "name required", nil)
	}
	id, err := s.profiles.Create(params.Base, params.Name, params.Json)
	if err != nil {
		return nil, fault(err)
	}
	auditlog.Log(s.db, rpc.TraceIDFromContext(ctx), "create_profile",
		fmt.Sprintf("profile %d created (base=%q name=%q)", id, params.Base, params.Name), auditlog.LevelInfo)
	return id, nil
}

func (s *Service) listProfiles(ctx context.Context, req *rpc.JsonRpcRequest) (any, *rpc.JsonRpcError) {
	var params struct {
		ByBase *string `json:"by_base"`
	}
	if err := req.BindParams(&params); err != nil {
		return nil, invalidParams(err)
	}
	ids, err := s.profiles.List(params.ByBase)
	if err != nil {
		return nil, fault(err)
	}
	return ids, nil
}

func (s *Service) fetchProfile(ctx context.Context, req *rpc.JsonRpcRequest) (any, *rpc.JsonRpcError) {
	var params struct {
		ID models.ProfileID `json:"id"`
	}
	if err := req.BindParams(&params); err != nil {
		return nil, invalidParams(err)
	}
	profile, err := s.profiles.Get(params.ID)
	if err != nil {
		return nil, fault(err)
	}
	return profile, nil
}

func (s *Service) createTask(ctx context.Context, req *rpc.JsonRpcRequest) (any, *rpc.JsonRpcError) {
	var params struct {
		Profile  models.ProfileID `json:"profile"`
		FileName string           `json:"file_name"`
		Data     []byte           `json:"data"`
	}
	if err := req.BindParams(&params); err != nil {
		return nil, invalidParams(err)
	}
	id, err := s.tasks.Create(params.Profile, params.FileName, params.Data)
	if err != nil {
		return nil, fault(err)
	}
	auditlog.Log(s.db, rpc.TraceIDFromContext(ctx), "create_task",
		fmt.Sprintf("task %d created (profile=%d file=%q, %d bytes)", id, params.Profile, params.FileName, len(params.Data)), auditlog.LevelInfo)
	return id, nil
}

func (s *Service) listTasks(ctx context.Context, req *rpc.JsonRpcRequest) (any, *rpc.JsonRpcError) {
	var params struct {
		ByProfile *models.ProfileID `json:"by_profile"`
	}
	if err := req.BindParams(&params); err != nil {
		return nil, invalidParams(err)
	}
	ids, err := s.tasks.List(params.ByProfile)
	if err != nil {
		return nil, fault(err)
	}
	return ids, nil
}

func (s *Service) fetchTask(ctx context.Context, req *rpc.JsonRpcRequest) (any, *rpc.JsonRpcError) {
	var params struct {
		ID models.TaskID `json:"id"`
	}
	if err := req.BindParams(&params); err != nil {
		return nil, invalidParams(err)
	}
	task, err := s.tasks.Get(params.ID)
	if err != nil {
		jerr := fault(err)
		if jerr.Code == rpc.InternalError {
			// out-of-contract state (e.g. failed integrity check); already
			// logged with full context by the store
			jerr.Message = "internal error"
		}
		return nil, jerr
	}
	return task, nil
}

// Register wires the six methods into the RPC registry with their metadata.
func (s *Service) Register() error {
	type entry struct {
		name string
		h    rpc.Handler
		meta *rpc.MethodMeta
	}
	methods := []entry{
		{"create_profile", s.createProfile, &rpc.MethodMeta{
			Summary: "Create a profile",
			Params: []rpc.ParamMeta{
				{Name: "base", Type: "string", Description: "Grouping label, not unique"},
				{Name: "name", Type: "string", Required: true, Description: "Globally unique profile name"},
				{Name: "json", Type: "string", Description: "Opaque configuration document, stored verbatim"},
			},
			Returns: "ProfileID (number)",
		}},
		{"list_profiles", s.listProfiles, &rpc.MethodMeta{
			Summary: "List profile ids, optionally filtered by base",
			Params:  []rpc.ParamMeta{{Name: "by_base", Type: "string", Description: "Only profiles with this base"}},
			Returns: "[]ProfileID",
		}},
		{"fetch_profile", s.fetchProfile, &rpc.MethodMeta{
			Summary: "Fetch one profile by id",
			Params:  []rpc.ParamMeta{{Name: "id", Type: "number", Required: true}},
			Returns: "Profile",
		}},
		{"create_task", s.createTask, &rpc.MethodMeta{
			Summary: "Submit a task against an existing profile",
			Params: []rpc.ParamMeta{
				{Name: "profile", Type: "number", Required: true, Description: "Owning profile id"},
				{Name: "file_name", Type: "string", Description: "Label for the payload, not unique"},
				{Name: "data", Type: "string (base64)", Description: "Raw payload bytes"},
			},
			Returns: "TaskID (number)",
		}},
		{"list_tasks", s.listTasks, &rpc.MethodMeta{
			Summary: "List task ids, optionally filtered by owning profile",
			Params:  []rpc.ParamMeta{{Name: "by_profile", Type: "number", Description: "Only tasks of this profile"}},
			Returns: "[]TaskID",
		}},
		{"fetch_task", s.fetchTask, &rpc.MethodMeta{
			Summary: "Fetch one task by id, payload and digest included",
			Params:  []rpc.ParamMeta{{Name: "id", Type: "number", Required: true}},
			Returns: "Task",
		}},
	}
	for _, m := range methods {
		if err := rpc.RegisterWithMeta(m.name, m.h, m.meta); err != nil {
			return err
		}
	}
	return nil
}
