package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"terminalpet/internal/app/auth"
	"terminalpet/internal/app/feed"
	"terminalpet/internal/app/ports"
	"terminalpet/internal/app/replay"
	"terminalpet/internal/app/status"
	"terminalpet/internal/domain/pet"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

const petTokenHeader = "X-Pet-Token"

type Handler struct {
	AuthUC   auth.VerifyUseCase
	FeedUC   feed.UseCase
	StatusUC status.UseCase
	ReplayUC replay.UseCase
	KPI      kpiSnapshotProvider
}

func NewServer(addr string, h Handler) *server.Hertz {
	s := server.Default(server.WithHostPorts(addr))
	h.RegisterRoutes(s)
	return s
}

func (h Handler) RegisterRoutes(s *server.Hertz) {
	s.Use(corsMiddleware())

	api := s.Group("/api/pet")
	api.POST("/events", h.event)
	api.GET("/status", h.status)
	api.GET("/history", h.history)

	s.GET("/ops/kpi", h.kpi)
}

type eventRequest struct {
	Event string `json:"event"`
}

type eventResponse struct {
	Event    pet.Event `json:"event"`
	Before   pet.State `json:"before"`
	State    pet.State `json:"state"`
	Saved    bool      `json:"saved"`
	Warnings []string  `json:"warnings,omitempty"`
}

func (h Handler) event(c context.Context, ctx *app.RequestContext) {
	if err := h.requireToken(c, ctx); err != nil {
		writeError(ctx, err)
		return
	}

	var body eventRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}

	resp, err := h.FeedUC.Execute(c, feed.Request{EventName: body.Event})
	if err != nil {
		writeError(ctx, err)
		return
	}

	out := eventResponse{Event: resp.Event, Before: resp.Before, State: resp.State, Saved: resp.Saved}
	if resp.SaveErr != nil {
		out.Warnings = append(out.Warnings, "save: "+resp.SaveErr.Error())
	}
	if resp.HistoryErr != nil {
		out.Warnings = append(out.Warnings, "history: "+resp.HistoryErr.Error())
	}
	ctx.JSON(consts.StatusOK, out)
}

func (h Handler) status(c context.Context, ctx *app.RequestContext) {
	if err := h.requireToken(c, ctx); err != nil {
		writeError(ctx, err)
		return
	}

	resp, err := h.StatusUC.Execute(c, status.Request{})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) history(c context.Context, ctx *app.RequestContext) {
	if err := h.requireToken(c, ctx); err != nil {
		writeError(ctx, err)
		return
	}

	limit := 0
	if raw := strings.TrimSpace(string(ctx.Query("limit"))); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeErrorBody(ctx, consts.StatusBadRequest, "invalid_limit", "limit must be an integer")
			return
		}
		limit = n
	}

	resp, err := h.ReplayUC.Execute(c, replay.Request{Limit: limit})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

type kpiSnapshotProvider interface {
	SnapshotAny() any
}

func (h Handler) kpi(_ context.Context, ctx *app.RequestContext) {
	if h.KPI == nil {
		writeErrorBody(ctx, consts.StatusNotFound, "not_configured", "kpi provider not configured")
		return
	}
	ctx.JSON(consts.StatusOK, h.KPI.SnapshotAny())
}

func decodeJSON(ctx *app.RequestContext, out any) error {
	body := ctx.Request.Body()
	if len(body) == 0 {
		return nil
	}
	return json.Unmarshal(body, out)
}

func (h Handler) requireToken(c context.Context, ctx *app.RequestContext) error {
	return h.AuthUC.Execute(c, auth.VerifyRequest{
		Token: string(ctx.GetHeader(petTokenHeader)),
	})
}

func writeError(ctx *app.RequestContext, err error) {
	switch {
	case errors.Is(err, auth.ErrMissingToken):
		writeErrorBody(ctx, consts.StatusUnauthorized, "missing_pet_token", err.Error())
	case errors.Is(err, auth.ErrInvalidCredentials):
		writeErrorBody(ctx, consts.StatusUnauthorized, "invalid_pet_token", err.Error())
	case errors.Is(err, pet.ErrUnknownEvent):
		writeErrorBody(ctx, consts.StatusBadRequest, "unknown_event", err.Error())
	case errors.Is(err, feed.ErrInvalidRequest),
		errors.Is(err, replay.ErrInvalidRequest),
		errors.Is(err, status.ErrInvalidRequest):
		writeErrorBody(ctx, consts.StatusBadRequest, "bad_request", err.Error())
	case errors.Is(err, ports.ErrNotFound):
		writeErrorBody(ctx, consts.StatusNotFound, "not_found", err.Error())
	default:
		writeErrorBody(ctx, consts.StatusInternalServerError, "internal_error", "internal error")
	}
}

func writeErrorBody(ctx *app.RequestContext, status int, code, message string) {
	ctx.JSON(status, map[string]any{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}
