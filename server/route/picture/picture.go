package picture

import (
	"encoding/json"
	"io"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"picam.api/v0/pkg/picture"
)

type pictureHandler struct {
	svc *picture.Service
}

// statusFor maps a failure kind onto the response status.
func statusFor(err error) int {
	switch picture.KindOf(err) {
	case picture.KindValidation:
		return http.StatusBadRequest
	case picture.KindExternalTool:
		return http.StatusBadGateway
	case picture.KindTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func writeFailure(w http.ResponseWriter, err error) {
	http.Error(w, picture.FailureText(err), statusFor(err))
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	resBody, err := json.Marshal(v)
	if err != nil {
		log.Printf("Failed to serialize response: %v\n", err)

		http.Error(
			w,
			"Error: failed to serialize response",
			http.StatusInternalServerError,
		)
		return
	}

	w.Header().Add("Content-Type", "application/json")
	w.Write(resBody)
}

// Takes a picture into a session directory.
// Request expected to be of type picture.CaptureRequest.
// On success, responds with picture.CaptureArtifact.
func (h *pictureHandler) postCaptureHandler(w http.ResponseWriter, r *http.Request) {
	// Deserialize expected request.
	defer r.Body.Close()
	bodyBytes, err := io.ReadAll(r.Body)
	if err != nil {
		log.Printf("Failed to read request body:%v\n", err)

		http.Error(
			w,
			"Error: failed to read request body",
			http.StatusBadRequest,
		)
		return
	}

	req := picture.CaptureRequest{}
	if err := json.Unmarshal(bodyBytes, &req); err != nil {
		log.Printf("Failed to deserialize capture request: %v\n", err)

		http.Error(
			w,
			"Error: failed to deserialize body: "+err.Error(),
			http.StatusBadRequest,
		)
		return
	}

	artifact, err := h.svc.Capture(r.Context(), req)
	if err != nil {
		writeFailure(w, err)
		return
	}

	writeJSON(w, artifact)
}

// Syncs a session directory to the cloud host.
// On success, responds with picture.SyncResult.
func (h *pictureHandler) putSyncHandler(w http.ResponseWriter, r *http.Request) {
	directory := mux.Vars(r)["directory"]

	result, err := h.svc.Sync(r.Context(), directory)
	if err != nil {
		writeFailure(w, err)
		return
	}

	writeJSON(w, result)
}

// Deletes a session directory.
// On success, responds with an empty body.
func (h *pictureHandler) deleteDirectoryHandler(w http.ResponseWriter, r *http.Request) {
	directory := mux.Vars(r)["directory"]

	if err := h.svc.Delete(r.Context(), directory); err != nil {
		writeFailure(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
