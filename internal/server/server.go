package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/kiesman99/pano360/internal/convert"
	"github.com/kiesman99/pano360/pkg/imgio"
	"github.com/kiesman99/pano360/pkg/pano"
)

// maxUploadBytes bounds the multipart form kept in memory per request.
const maxUploadBytes = 64 << 20

// HealthResponse is the health check payload.
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Uptime    int       `json:"uptime"`
	Version   string    `json:"version"`
}

// ErrorResponse is the standard JSON error envelope.
type ErrorResponse struct {
	Error     string  `json:"error"`
	Message   string  `json:"message"`
	RequestID *string `json:"request_id,omitempty"`
}

// Server implements the conversion API handlers.
type Server struct {
	startTime time.Time
	version   string
}

// NewServer creates a new server instance
func NewServer(version string) *Server {
	return &Server{
		startTime: time.Now(),
		version:   version,
	}
}

// Mount attaches the API routes to the router.
func (s *Server) Mount(r chi.Router) {
	r.Get("/health", s.GetHealth)
	r.Post("/c2e", s.CreateEquirect)
	r.Post("/e2c", s.CreateCubemap)
}

// GetHealth implements the health check endpoint
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	response := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now(),
		Uptime:    int(time.Since(s.startTime).Seconds()),
		Version:   s.version,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Printf("Error encoding health response: %v", err)
	}
}

// CreateEquirect converts six uploaded cube faces into an equirectangular
// panorama. Multipart fields: six "face" files in front, right, back,
// left, up, down order, plus "height", "width" and optional "mode".
func (s *Server) CreateEquirect(w http.ResponseWriter, r *http.Request) {
	requestID := generateRequestID()

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		s.writeErrorResponse(w, http.StatusBadRequest, "INVALID_MULTIPART",
			"Request body must be multipart form data", &requestID)
		return
	}

	height, err := formInt(r, "height")
	if err != nil {
		s.writeErrorResponse(w, http.StatusBadRequest, "INVALID_REQUEST", err.Error(), &requestID)
		return
	}
	width, err := formInt(r, "width")
	if err != nil {
		s.writeErrorResponse(w, http.StatusBadRequest, "INVALID_REQUEST", err.Error(), &requestID)
		return
	}
	mode, err := formMode(r)
	if err != nil {
		s.writeErrorResponse(w, http.StatusBadRequest, "INVALID_REQUEST", err.Error(), &requestID)
		return
	}

	files := r.MultipartForm.File["face"]
	if len(files) != pano.FaceCount {
		s.writeErrorResponse(w, http.StatusBadRequest, "INVALID_REQUEST",
			fmt.Sprintf("expected %d face files, got %d", pano.FaceCount, len(files)), &requestID)
		return
	}

	faces := make([]*pano.Image[uint8], pano.FaceCount)
	for i, fh := range files {
		img, err := decodeUpload(fh)
		if err != nil {
			s.writeErrorResponse(w, http.StatusBadRequest, "INVALID_IMAGE",
				fmt.Sprintf("face %s: %v", pano.Face(i), err), &requestID)
			return
		}
		faces[i] = img
	}

	out, err := convert.CubeToEquirect(faces, height, width, mode)
	if err != nil {
		s.handleConversionError(w, err, &requestID)
		return
	}

	s.writePNG(w, out, requestID)
}

// CreateCubemap extracts six cube faces from an uploaded equirectangular
// panorama and returns them as one horizontal strip in face-enum order.
// Multipart fields: one "equirect" file, "face_size" and optional "mode".
func (s *Server) CreateCubemap(w http.ResponseWriter, r *http.Request) {
	requestID := generateRequestID()

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		s.writeErrorResponse(w, http.StatusBadRequest, "INVALID_MULTIPART",
			"Request body must be multipart form data", &requestID)
		return
	}

	faceSize, err := formInt(r, "face_size")
	if err != nil {
		s.writeErrorResponse(w, http.StatusBadRequest, "INVALID_REQUEST", err.Error(), &requestID)
		return
	}
	mode, err := formMode(r)
	if err != nil {
		s.writeErrorResponse(w, http.StatusBadRequest, "INVALID_REQUEST", err.Error(), &requestID)
		return
	}

	files := r.MultipartForm.File["equirect"]
	if len(files) != 1 {
		s.writeErrorResponse(w, http.StatusBadRequest, "INVALID_REQUEST",
			"exactly one equirect file is required", &requestID)
		return
	}
	eq, err := decodeUpload(files[0])
	if err != nil {
		s.writeErrorResponse(w, http.StatusBadRequest, "INVALID_IMAGE", err.Error(), &requestID)
		return
	}

	faces, err := convert.EquirectToCube(eq, faceSize, mode)
	if err != nil {
		s.handleConversionError(w, err, &requestID)
		return
	}

	s.writePNG(w, faceStrip(faces), requestID)
}

// faceStrip concatenates the six faces side by side in enum order.
func faceStrip(faces []*pano.Image[uint8]) *pano.Image[uint8] {
	fw := faces[0].Width
	ch := faces[0].Channels
	strip := pano.NewImage[uint8](fw*len(faces), fw, ch)
	for k, f := range faces {
		for y := 0; y < fw; y++ {
			src := y * fw * ch
			dst := (y*strip.Width + k*fw) * ch
			copy(strip.Pix[dst:dst+fw*ch], f.Pix[src:src+fw*ch])
		}
	}
	return strip
}

func decodeUpload(fh *multipart.FileHeader) (*pano.Image[uint8], error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	return imgio.Decode(data)
}

func formInt(r *http.Request, field string) (int, error) {
	raw := r.FormValue(field)
	if raw == "" {
		return 0, fmt.Errorf("%s is required", field)
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %v", field, err)
	}
	return v, nil
}

func formMode(r *http.Request) (pano.Mode, error) {
	raw := r.FormValue("mode")
	if raw == "" {
		return pano.ModeBilinear, nil
	}
	return pano.ParseMode(raw)
}

func (s *Server) writePNG(w http.ResponseWriter, img *pano.Image[uint8], requestID string) {
	data, err := imgio.Encode(img, imgio.FormatPNG)
	if err != nil {
		s.writeErrorResponse(w, http.StatusInternalServerError, "INTERNAL_ERROR",
			"Failed to encode output image", &requestID)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("X-Request-ID", requestID)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		log.Printf("Error writing response: %v", err)
	}
}

// handleConversionError maps conversion failures onto the error envelope.
func (s *Server) handleConversionError(w http.ResponseWriter, err error, requestID *string) {
	var invalid *pano.InvalidArgumentError
	if errors.As(err, &invalid) {
		s.writeErrorResponse(w, http.StatusBadRequest, "INVALID_REQUEST",
			invalid.Message, requestID)
		return
	}

	s.writeErrorResponse(w, http.StatusInternalServerError, "INTERNAL_ERROR",
		"Internal server error", requestID)
}

// writeErrorResponse writes a standard error response
func (s *Server) writeErrorResponse(w http.ResponseWriter, statusCode int, errorCode, message string, requestID *string) {
	response := ErrorResponse{
		Error:     errorCode,
		Message:   message,
		RequestID: requestID,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(response)
}

// generateRequestID generates a unique request ID
func generateRequestID() string {
	return fmt.Sprintf("req_%d", time.Now().UnixNano())
}
