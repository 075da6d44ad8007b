package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"image-identifier/internal/app"
	"image-identifier/internal/pipeline"
	"image-identifier/internal/web"
)

func indexHandler(deps app.Deps, pages *web.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		renderPage(deps, pages, w, http.StatusOK, web.PageView{})
	}
}

// identifyPageHandler is the form-post flavour of identifyHandler.
func identifyPageHandler(deps app.Deps, pages *web.Renderer) http.HandlerFunc {
	maxSize := deps.Config.MaxUploadSize

	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		image, err := readImage(w, r, maxSize)
		if err != nil {
			status, msg := uploadFailure(err, maxSize)
			deps.Log.Warn("identify form rejected", "err", err, "status", status)
			renderPage(deps, pages, w, status, web.PageView{Message: msg})
			return
		}

		sess, err := deps.Sessions.Create(ctx, image)
		if err != nil {
			deps.Log.Error("failed to create session", "err", err)
			renderPage(deps, pages, w, http.StatusInternalServerError, web.PageView{Message: "failed to create session"})
			return
		}

		res, err := runChain(ctx, deps, sess.ID, image, "")
		if err != nil {
			renderChainFailure(deps, pages, w, sess.ID, err)
			return
		}
		renderPage(deps, pages, w, http.StatusOK, web.NewPageView(sess.ID.String(), res))
	}
}

// regeneratePageHandler handles a keyword or related-question click.
func regeneratePageHandler(deps app.Deps, pages *web.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			renderPage(deps, pages, w, http.StatusBadRequest, web.PageView{Message: "invalid session id"})
			return
		}

		var instruction string
		if keyword := r.PostFormValue("keyword"); keyword != "" {
			instruction = pipeline.FocusInstruction(keyword)
		} else if question := r.PostFormValue("question"); question != "" {
			instruction = pipeline.AnswerInstruction(question)
		} else {
			renderPage(deps, pages, w, http.StatusBadRequest, web.PageView{Message: "no keyword or question provided"})
			return
		}

		sess, err := deps.Sessions.Get(ctx, id)
		if err != nil {
			renderChainFailure(deps, pages, w, id, err)
			return
		}

		res, err := runChain(ctx, deps, id, sess.Image, instruction)
		if err != nil {
			renderChainFailure(deps, pages, w, id, err)
			return
		}
		renderPage(deps, pages, w, http.StatusOK, web.NewPageView(id.String(), res))
	}
}

func renderChainFailure(deps app.Deps, pages *web.Renderer, w http.ResponseWriter, id uuid.UUID, err error) {
	status, msg := chainFailure(err)
	deps.Log.Error("identify chain failed", "session_id", id, "err", err, "status", status)
	renderPage(deps, pages, w, status, web.PageView{SessionID: id.String(), Message: msg})
}

func renderPage(deps app.Deps, pages *web.Renderer, w http.ResponseWriter, status int, view web.PageView) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := pages.Render(w, view); err != nil {
		deps.Log.Error("failed to render page", "err", err)
	}
}
