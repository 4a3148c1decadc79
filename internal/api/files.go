package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/tinlanh/church-admin/internal/images"
	"github.com/tinlanh/church-admin/internal/model"
)

// Room for the multipart envelope around the file itself.
const multipartOverhead = 1 << 20

func (a *Api) uploadImageHandler(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, a.images.MaxSize()+multipartOverhead)

	multipartFile, headers, err := r.FormFile("file")
	if err != nil {
		var maxBytesError *http.MaxBytesError
		if errors.As(err, &maxBytesError) {
			a.fileTooBigResponse(w, r)
			return
		}
		a.badRequestResponse(w, r, err)
		return
	}
	defer multipartFile.Close()

	if headers.Size > a.images.MaxSize() {
		a.fileTooBigResponse(w, r)
		return
	}

	item, err := a.images.Upload(r.Context(), headers.Filename, headers.Header.Get("Content-Type"), multipartFile)
	if err != nil {
		if errors.Is(err, images.ErrTooBig) {
			a.fileTooBigResponse(w, r)
			return
		}
		if errors.Is(err, model.ErrAlreadyExists) {
			a.clientErrorResponse(w, r, http.StatusConflict, a.t(r, "image_exists"))
			return
		}
		a.serverErrorResponse(w, r, fmt.Errorf("upload image: %w", err))
		return
	}

	if err := a.writeJSON(w, http.StatusCreated, mapToImageResp(item), nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}

func (a *Api) getImagesHandler(w http.ResponseWriter, r *http.Request) {
	items, err := a.images.List(r.Context())
	if err != nil {
		a.serverErrorResponse(w, r, fmt.Errorf("list images: %w", err))
		return
	}

	if err := a.writeJSON(w, http.StatusOK, mapSlice(items, mapToImageResp), nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}

func (a *Api) deleteImageHandler(w http.ResponseWriter, r *http.Request) {
	if err := a.images.Delete(r.Context(), r.URL.Query().Get("path")); err != nil {
		a.serviceErrorResponse(w, r, fmt.Errorf("delete image: %w", err), "")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
