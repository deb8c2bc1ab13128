package api

// Transport glue: JSON-RPC over HTTP POST. No method semantics live here;
// the handler parses, dispatches to the registry and writes responses back.

import (
	"bytes"
	"io"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/schmilblick-org/violetear-coordinator/utils/rpc"
)

// NewRouter builds the gin engine with the RPC endpoint and a liveness
// route.
func NewRouter(allowCORS bool) *gin.Engine {
	r := gin.Default()
	if allowCORS {
		r.Use(cors.New(cors.Config{
			AllowOrigins: []string{"*"},
			AllowMethods: []string{"POST", "OPTIONS"},
			AllowHeaders: []string{"Origin", "Content-Length", "Content-Type"},
		}))
	}
	r.Any("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
	r.POST("/rpc", HandleRPC)
	return r
}

// HandleRPC serves one HTTP request carrying a single JSON-RPC request or a
// batch. Notifications produce no response entry; a batch of only
// notifications answers 204.
func HandleRPC(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusOK, rpc.ErrorResponse(nil, rpc.ParseError, "failed to read body", nil))
		return
	}
	isBatch := len(bytes.TrimSpace(body)) > 0 && bytes.TrimSpace(body)[0] == '['

	reqs, jerr := rpc.ParseRequests(body)
	if jerr != nil {
		c.JSON(http.StatusOK, jerr.Response())
		return
	}

	meta := &rpc.ContextMeta{
		TraceID:   uuid.NewString(),
		RemoteIP:  c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	}
	ctx := rpc.NewContextWithMeta(c.Request.Context(), meta)

	responses := make([]*rpc.JsonRpcResponse, 0, len(reqs))
	for _, req := range reqs {
		resp := rpc.CallWithContext(ctx, req.ID, req.Method, req.Params)
		if req.HasID() {
			responses = append(responses, resp)
		}
	}

	switch {
	case isBatch && len(responses) > 0:
		c.JSON(http.StatusOK, responses)
	case isBatch:
		c.Status(http.StatusNoContent)
	case len(responses) > 0:
		c.JSON(http.StatusOK, responses[0])
	default:
		c.Status(http.StatusNoContent)
	}
}
