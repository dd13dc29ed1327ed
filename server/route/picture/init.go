package picture

import (
	"fmt"

	"github.com/gorilla/mux"
	"picam.api/v0/pkg/picture"
)

// CreateRoutes attaches the picture endpoints to r, served by svc.
func CreateRoutes(r *mux.Router, svc *picture.Service) error {
	if svc == nil {
		return fmt.Errorf("picture service cannot be nil")
	}

	h := &pictureHandler{svc: svc}
	r.HandleFunc("", h.postCaptureHandler).Methods("POST")
	r.HandleFunc("/{directory}", h.putSyncHandler).Methods("PUT")
	r.HandleFunc("/{directory}", h.deleteDirectoryHandler).Methods("DELETE")

	return nil
}
