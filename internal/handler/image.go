package handler

import (
	"net/http"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/travel-planner/internal/domain"
)

// multipartMemory is how much of a multipart form is buffered in memory
// before spilling to temporary files.
const multipartMemory = 8 << 20

// uploadImage handles POST /images with a multipart "file" field.
func (s *Server) uploadImage(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		respondError(w, r, requestError("invalid multipart body: "+err.Error()))
		return
	}
	headers := r.MultipartForm.File["file"]
	if len(headers) == 0 {
		respondError(w, r, requestError("file is required"))
		return
	}

	var file openapi_types.File
	file.InitFromMultipart(headers[0])
	data, err := file.Bytes()
	if err != nil {
		respondError(w, r, err)
		return
	}

	img, err := s.Images.Upload(r.Context(), currentUser(r).ID, file.Filename(), data)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, img)
}

// listImages handles GET /images.
func (s *Server) listImages(w http.ResponseWriter, r *http.Request) {
	imgs, err := s.Images.List(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse[domain.Image]{Data: imgs})
}
