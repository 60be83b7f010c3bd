package in

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	notesvcdto "clinote/internal/modules/notesvc/dto"
	notesvcin "clinote/internal/modules/notesvc/port/in"
	apperrors "clinote/internal/platform/errors"
)

const maxBodyBytes = 1 << 20

type createRequest struct {
	SessionDuration int    `json:"session_duration" validate:"required,gt=0"`
	SessionType     string `json:"session_type" validate:"required"`
	Notes           string `json:"notes" validate:"required"`
}

type finalizeRequest struct {
	FinalNote string `json:"final_note" validate:"required"`
}

type createResponse struct {
	GeneratedNote string `json:"generated_note"`
	NoteID        int64  `json:"note_id"`
	Message       string `json:"message"`
}

type finalizeResponse struct {
	Message   string    `json:"message"`
	NoteID    int64     `json:"note_id"`
	FinalNote string    `json:"final_note"`
	UpdatedAt time.Time `json:"updated_at"`
}

type noteResponse struct {
	NoteID          int64      `json:"note_id"`
	SessionDuration int        `json:"session_duration"`
	SessionType     string     `json:"session_type"`
	DraftNote       string     `json:"draft_note"`
	GeneratedNote   string     `json:"generated_note"`
	FinalNote       string     `json:"final_note,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       *time.Time `json:"updated_at,omitempty"`
}

type fieldError struct {
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
	Type string   `json:"type"`
}

type HTTPHandler struct {
	usecase  notesvcin.Usecase
	validate *validator.Validate
	log      zerolog.Logger
}

// NewHTTPHandler builds the session-notes router. corsOrigin may be empty to
// disable CORS headers.
func NewHTTPHandler(usecase notesvcin.Usecase, log zerolog.Logger, corsOrigin string) http.Handler {
	h := &HTTPHandler{
		usecase:  usecase,
		validate: validator.New(),
		log:      log.With().Str("component", "notesvc").Logger(),
	}
	r := mux.NewRouter()
	r.Use(requestLogger(h.log))
	if corsOrigin != "" {
		r.Use(cors(corsOrigin))
	}
	r.HandleFunc("/", h.Health).Methods(http.MethodGet)
	r.HandleFunc("/session-notes/", h.Create).Methods(http.MethodPost, http.MethodOptions)
	r.HandleFunc("/session-notes/{id}", h.Get).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/session-notes/{id}", h.Finalize).Methods(http.MethodPatch, http.MethodOptions)
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeDetail(w, http.StatusNotFound, "Not Found")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeDetail(w, http.StatusMethodNotAllowed, "Method Not Allowed")
	})
	return r
}

func (h *HTTPHandler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if !h.decode(w, r, &req) {
		return
	}
	out, err := h.usecase.Create(r.Context(), notesvcdto.CreateInput{
		SessionDuration: req.SessionDuration,
		SessionType:     req.SessionType,
		Notes:           req.Notes,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, createResponse{
		GeneratedNote: out.GeneratedNote,
		NoteID:        out.NoteID,
		Message:       "Session note created successfully!",
	})
}

func (h *HTTPHandler) Finalize(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req finalizeRequest
	if !h.decode(w, r, &req) {
		return
	}
	out, err := h.usecase.Finalize(r.Context(), notesvcdto.FinalizeInput{NoteID: id, FinalNote: req.FinalNote})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, finalizeResponse{
		Message:   "Final note updated",
		NoteID:    out.NoteID,
		FinalNote: out.FinalNote,
		UpdatedAt: out.UpdatedAt,
	})
}

func (h *HTTPHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	out, err := h.usecase.Get(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, noteResponse{
		NoteID:          out.NoteID,
		SessionDuration: out.SessionDuration,
		SessionType:     out.SessionType,
		DraftNote:       out.DraftNote,
		GeneratedNote:   out.GeneratedNote,
		FinalNote:       out.FinalNote,
		CreatedAt:       out.CreatedAt,
		UpdatedAt:       out.UpdatedAt,
	})
}

// decode reads a JSON body into dst and validates it, writing a 422 on failure.
func (h *HTTPHandler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(dst); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"detail": []fieldError{{Loc: []string{"body"}, Msg: "invalid JSON body", Type: "json_invalid"}},
		})
		return false
	}
	if err := h.validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			writeDetail(w, http.StatusUnprocessableEntity, err.Error())
			return false
		}
		details := make([]fieldError, 0, len(verrs))
		for _, fe := range verrs {
			details = append(details, fieldError{
				Loc:  []string{"body", jsonName(fe.Field())},
				Msg:  validationMessage(fe),
				Type: fe.Tag(),
			})
		}
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"detail": details})
		return false
	}
	return true
}

func (h *HTTPHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, apperrors.ErrInvalidInput):
		writeDetail(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, apperrors.ErrNotFound):
		writeDetail(w, http.StatusNotFound, "Session note not found")
	case errors.Is(err, apperrors.ErrGeneration):
		h.log.Error().Err(err).Str("path", r.URL.Path).Msg("generate note")
		cause := strings.TrimPrefix(err.Error(), apperrors.ErrGeneration.Error()+": ")
		writeDetail(w, http.StatusInternalServerError, "Error generating note: "+cause)
	default:
		h.log.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		writeDetail(w, http.StatusInternalServerError, "Internal server error")
	}
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"detail": []fieldError{{Loc: []string{"path", "id"}, Msg: "id must be a positive integer", Type: "int_parsing"}},
		})
		return 0, false
	}
	return id, true
}

func jsonName(field string) string {
	switch field {
	case "SessionDuration":
		return "session_duration"
	case "SessionType":
		return "session_type"
	case "Notes":
		return "notes"
	case "FinalNote":
		return "final_note"
	default:
		return strings.ToLower(field)
	}
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "field required"
	case "gt":
		return "must be greater than " + fe.Param()
	default:
		return "failed " + fe.Tag() + " validation"
	}
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
