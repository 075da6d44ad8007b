package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"image-identifier/internal/app"
	"image-identifier/internal/httputil"
	"image-identifier/internal/pipeline"
)

type identifyResponse struct {
	SessionID string `json:"session_id"`
	pipeline.Result
}

type keywordRequest struct {
	Keyword string `json:"keyword" validate:"required,max=200"`
}

type questionRequest struct {
	Question string `json:"question" validate:"required,max=500"`
}

// identifyImageHandler identifies a plant and returns the raw model text.
func identifyImageHandler(deps app.Deps) http.HandlerFunc {
	maxSize := deps.Config.MaxUploadSize

	return func(w http.ResponseWriter, r *http.Request) {
		image, err := readImage(w, r, maxSize)
		if err != nil {
			status, msg := uploadFailure(err, maxSize)
			httputil.FailJSON(deps.Log, w, msg, err, status)
			return
		}

		text, err := deps.Pipeline.IdentifyPlant(r.Context(), image)
		if err != nil {
			status, msg := chainFailure(err)
			httputil.FailJSON(deps.Log, w, msg, err, status)
			return
		}

		httputil.WriteJSON(w, http.StatusOK, map[string]string{"result": text})
	}
}

// identifyHandler starts a session for the upload and runs the full chain.
func identifyHandler(deps app.Deps) http.HandlerFunc {
	maxSize := deps.Config.MaxUploadSize

	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		image, err := readImage(w, r, maxSize)
		if err != nil {
			status, msg := uploadFailure(err, maxSize)
			httputil.FailJSON(deps.Log, w, msg, err, status)
			return
		}

		sess, err := deps.Sessions.Create(ctx, image)
		if err != nil {
			httputil.FailJSON(deps.Log, w, "failed to create session", err, http.StatusInternalServerError)
			return
		}

		res, err := runChain(ctx, deps, sess.ID, image, "")
		if err != nil {
			status, msg := chainFailure(err)
			httputil.FailJSON(deps.Log.With("session_id", sess.ID), w, msg, err, status)
			return
		}

		httputil.WriteJSON(w, http.StatusOK, identifyResponse{SessionID: sess.ID.String(), Result: res})
	}
}

func sessionHandler(deps app.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := sessionID(deps, w, r)
		if !ok {
			return
		}
		sess, err := deps.Sessions.Get(r.Context(), id)
		if err != nil {
			status, msg := chainFailure(err)
			httputil.FailJSON(deps.Log, w, msg, err, status)
			return
		}
		resp := identifyResponse{SessionID: id.String()}
		if sess.Result != nil {
			resp.Result = *sess.Result
		}
		httputil.WriteJSON(w, http.StatusOK, resp)
	}
}

// keywordHandler regenerates the session result focused on a keyword.
func keywordHandler(deps app.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := sessionID(deps, w, r)
		if !ok {
			return
		}
		var req keywordRequest
		if err := httputil.DecodeAndValidate(r, &req); err != nil {
			httputil.ValidationError(deps.Log, w, err)
			return
		}
		regenerate(deps, w, r, id, pipeline.FocusInstruction(req.Keyword))
	}
}

// questionHandler regenerates the session result as an answer to a question.
func questionHandler(deps app.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := sessionID(deps, w, r)
		if !ok {
			return
		}
		var req questionRequest
		if err := httputil.DecodeAndValidate(r, &req); err != nil {
			httputil.ValidationError(deps.Log, w, err)
			return
		}
		regenerate(deps, w, r, id, pipeline.AnswerInstruction(req.Question))
	}
}

func regenerate(deps app.Deps, w http.ResponseWriter, r *http.Request, id uuid.UUID, instruction string) {
	ctx := r.Context()
	log := deps.Log.With("session_id", id)

	sess, err := deps.Sessions.Get(ctx, id)
	if err != nil {
		status, msg := chainFailure(err)
		httputil.FailJSON(log, w, msg, err, status)
		return
	}

	res, err := runChain(ctx, deps, id, sess.Image, instruction)
	if err != nil {
		status, msg := chainFailure(err)
		httputil.FailJSON(log, w, msg, err, status)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, identifyResponse{SessionID: id.String(), Result: res})
}

func sessionID(deps app.Deps, w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httputil.FailJSON(deps.Log, w, "invalid session id", err, http.StatusBadRequest)
		return uuid.Nil, false
	}
	return id, true
}
