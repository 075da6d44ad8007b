package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"image-identifier/internal/app"
	"image-identifier/internal/llm"
	"image-identifier/internal/pipeline"
	"image-identifier/internal/session"
)

const defaultLoadingTTL = 2 * time.Minute

// runChain identifies the session image and replaces the stored result. The
// session loading flag is held for the whole chain so a second submission
// for the same session is rejected instead of interleaving.
func runChain(ctx context.Context, deps app.Deps, id uuid.UUID, image llm.InlineData, instruction string) (pipeline.Result, error) {
	ttl := deps.Config.RequestTimeout
	if ttl <= 0 {
		ttl = defaultLoadingTTL
	}
	if err := deps.Sessions.Acquire(ctx, id, ttl); err != nil {
		return pipeline.Result{}, err
	}
	defer func() {
		if err := deps.Sessions.Release(context.WithoutCancel(ctx), id); err != nil {
			deps.Log.Warn("failed to clear loading flag", "session_id", id, "err", err)
		}
	}()

	res, err := deps.Pipeline.Identify(ctx, image, instruction)
	if err != nil {
		return pipeline.Result{}, err
	}
	if err := deps.Sessions.SaveResult(ctx, id, res); err != nil {
		return pipeline.Result{}, fmt.Errorf("save result: %w", err)
	}
	deps.Log.Info("identify chain complete",
		"session_id", id,
		"regenerated", instruction != "",
		"keywords", len(res.Keywords),
		"questions", len(res.Questions),
	)
	return res, nil
}

// chainFailure maps a runChain error to a status and a user-facing message.
func chainFailure(err error) (int, string) {
	var identifyErr *pipeline.IdentifyError
	switch {
	case errors.As(err, &identifyErr):
		return http.StatusInternalServerError, identifyMessage(identifyErr)
	case errors.Is(err, session.ErrNotFound):
		return http.StatusNotFound, "session not found"
	case errors.Is(err, session.ErrBusy):
		return http.StatusConflict, "identification already in progress"
	default:
		return http.StatusInternalServerError, "session store error"
	}
}

// identifyMessage renders a failed identify call as display text.
func identifyMessage(err *pipeline.IdentifyError) string {
	if err.Err == nil || err.Err.Error() == "" {
		return fmt.Sprintf("An unknown error occurred while identifying the %s", err.Subject)
	}
	return fmt.Sprintf("Error identifying %s: %s", err.Subject, err.Err.Error())
}
