package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"terminalpet/internal/adapter/metrics/inmemory"
	"terminalpet/internal/adapter/repo/memory"
	"terminalpet/internal/app/auth"
	"terminalpet/internal/app/feed"
	"terminalpet/internal/app/ports"
	"terminalpet/internal/app/replay"
	"terminalpet/internal/app/status"
	"terminalpet/internal/domain/pet"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

func newTestHandler(token string) (Handler, *memory.Store, *inmemory.Recorder) {
	store := memory.NewStore()
	recorder := inmemory.NewRecorder()
	stateRepo := memory.NewPetStateRepo(store)
	eventRepo := memory.NewEventRepo(store)
	return Handler{
		AuthUC: auth.VerifyUseCase{Token: token},
		FeedUC: feed.UseCase{
			TxManager: memory.NewTxManager(store),
			StateRepo: stateRepo,
			EventRepo: eventRepo,
			Metrics:   recorder,
		},
		StatusUC: status.UseCase{StateRepo: stateRepo},
		ReplayUC: replay.UseCase{Events: eventRepo},
		KPI:      recorder,
	}, store, recorder
}

func decodeErrorCode(t *testing.T, ctx *app.RequestContext) string {
	t.Helper()
	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(ctx.Response.Body(), &body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return body.Error.Code
}

func TestEventHandler_AppliesTransition(t *testing.T) {
	h, _, recorder := newTestHandler("")
	ctx := &app.RequestContext{}
	ctx.Request.SetBody([]byte(`{"event":"test-pass"}`))

	h.event(context.Background(), ctx)

	if got := ctx.Response.StatusCode(); got != consts.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", got, ctx.Response.Body())
	}
	var body struct {
		Event string    `json:"event"`
		State pet.State `json:"state"`
		Saved bool      `json:"saved"`
	}
	if err := json.Unmarshal(ctx.Response.Body(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Event != "test-pass" {
		t.Fatalf("expected event test-pass, got %q", body.Event)
	}
	if body.State.Mood != pet.MoodHappy || body.State.XP != pet.TestPassXP {
		t.Fatalf("unexpected state: %+v", body.State)
	}
	if !body.Saved {
		t.Fatalf("expected saved=true")
	}
	if snap := recorder.Snapshot(); snap.EventApplied != 1 {
		t.Fatalf("expected one applied event, got %+v", snap)
	}
}

func TestEventHandler_UnknownEventIsBadRequest(t *testing.T) {
	h, store, _ := newTestHandler("")
	ctx := &app.RequestContext{}
	ctx.Request.SetBody([]byte(`{"event":"dance"}`))

	h.event(context.Background(), ctx)

	if got := ctx.Response.StatusCode(); got != consts.StatusBadRequest {
		t.Fatalf("expected 400, got %d", got)
	}
	if code := decodeErrorCode(t, ctx); code != "unknown_event" {
		t.Fatalf("expected unknown_event, got %q", code)
	}
	if _, err := memory.NewPetStateRepo(store).Load(context.Background()); !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("expected nothing persisted, got %v", err)
	}
}

func TestEventHandler_InvalidJSON(t *testing.T) {
	h, _, _ := newTestHandler("")
	ctx := &app.RequestContext{}
	ctx.Request.SetBody([]byte(`{"event":`))

	h.event(context.Background(), ctx)

	if got := ctx.Response.StatusCode(); got != consts.StatusBadRequest {
		t.Fatalf("expected 400, got %d", got)
	}
	if code := decodeErrorCode(t, ctx); code != "invalid_json" {
		t.Fatalf("expected invalid_json, got %q", code)
	}
}

func TestEventHandler_RequiresToken(t *testing.T) {
	h, _, _ := newTestHandler("s3cret")

	ctx := &app.RequestContext{}
	ctx.Request.SetBody([]byte(`{"event":"commit"}`))
	h.event(context.Background(), ctx)
	if got := ctx.Response.StatusCode(); got != consts.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", got)
	}
	if code := decodeErrorCode(t, ctx); code != "missing_pet_token" {
		t.Fatalf("expected missing_pet_token, got %q", code)
	}

	ctx = &app.RequestContext{}
	ctx.Request.SetBody([]byte(`{"event":"commit"}`))
	ctx.Request.Header.Set(petTokenHeader, "wrong")
	h.event(context.Background(), ctx)
	if code := decodeErrorCode(t, ctx); code != "invalid_pet_token" {
		t.Fatalf("expected invalid_pet_token, got %q", code)
	}

	ctx = &app.RequestContext{}
	ctx.Request.SetBody([]byte(`{"event":"commit"}`))
	ctx.Request.Header.Set(petTokenHeader, "s3cret")
	h.event(context.Background(), ctx)
	if got := ctx.Response.StatusCode(); got != consts.StatusOK {
		t.Fatalf("expected 200 with token, got %d", got)
	}
}

func TestStatusHandler_DefaultsWhenNothingSaved(t *testing.T) {
	h, _, _ := newTestHandler("")
	ctx := &app.RequestContext{}

	h.status(context.Background(), ctx)

	if got := ctx.Response.StatusCode(); got != consts.StatusOK {
		t.Fatalf("expected 200, got %d", got)
	}
	var body status.Response
	if err := json.Unmarshal(ctx.Response.Body(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.State != pet.New() || body.Persisted {
		t.Fatalf("unexpected status: %+v", body)
	}
}

func TestHistoryHandler_HonorsLimit(t *testing.T) {
	h, _, _ := newTestHandler("")
	for _, name := range []string{"commit", "test-fail", "bug-fix"} {
		if _, err := h.FeedUC.Execute(context.Background(), feed.Request{EventName: name}); err != nil {
			t.Fatalf("feed %s: %v", name, err)
		}
	}

	ctx := &app.RequestContext{}
	ctx.Request.SetRequestURI("/api/pet/history?limit=2")
	h.history(context.Background(), ctx)

	if got := ctx.Response.StatusCode(); got != consts.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", got, ctx.Response.Body())
	}
	var body struct {
		Events []struct {
			Event string `json:"event"`
		} `json:"events"`
		LatestState pet.State `json:"latest_state"`
	}
	if err := json.Unmarshal(ctx.Response.Body(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(body.Events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(body.Events))
	}
	if body.Events[0].Event != "bug-fix" || body.Events[1].Event != "test-fail" {
		t.Fatalf("expected newest first, got %+v", body.Events)
	}
	if body.LatestState.Mood != pet.MoodHappy {
		t.Fatalf("expected latest mood Happy, got %v", body.LatestState.Mood)
	}
}

func TestHistoryHandler_RejectsNonNumericLimit(t *testing.T) {
	h, _, _ := newTestHandler("")
	ctx := &app.RequestContext{}
	ctx.Request.SetRequestURI("/api/pet/history?limit=many")

	h.history(context.Background(), ctx)

	if code := decodeErrorCode(t, ctx); code != "invalid_limit" {
		t.Fatalf("expected invalid_limit, got %q", code)
	}
}

func TestKPIHandler_NotConfigured(t *testing.T) {
	ctx := &app.RequestContext{}
	Handler{}.kpi(context.Background(), ctx)
	if got := ctx.Response.StatusCode(); got != consts.StatusNotFound {
		t.Fatalf("expected 404, got %d", got)
	}
}

func TestWriteError_MapsSentinels(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{auth.ErrMissingToken, consts.StatusUnauthorized, "missing_pet_token"},
		{auth.ErrInvalidCredentials, consts.StatusUnauthorized, "invalid_pet_token"},
		{pet.ErrUnknownEvent, consts.StatusBadRequest, "unknown_event"},
		{feed.ErrInvalidRequest, consts.StatusBadRequest, "bad_request"},
		{ports.ErrNotFound, consts.StatusNotFound, "not_found"},
		{errors.New("boom"), consts.StatusInternalServerError, "internal_error"},
	}
	for _, tc := range cases {
		ctx := &app.RequestContext{}
		writeError(ctx, tc.err)
		if got := ctx.Response.StatusCode(); got != tc.status {
			t.Fatalf("%v: expected status %d, got %d", tc.err, tc.status, got)
		}
		if code := decodeErrorCode(t, ctx); code != tc.code {
			t.Fatalf("%v: expected code %q, got %q", tc.err, tc.code, code)
		}
	}
}
