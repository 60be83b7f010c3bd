package out

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"clinote/internal/modules/notes/domain"
	notesout "clinote/internal/modules/notes/port/out"
)

const maxResponseBytes = 1 << 20

// HTTPNoteService talks to the session-notes API.
type HTTPNoteService struct {
	baseURL string
	client  *http.Client
}

// NewHTTPNoteService returns a client for baseURL. A zero timeout leaves requests
// bounded only by the caller's context.
func NewHTTPNoteService(baseURL string, timeout time.Duration) (notesout.NoteService, error) {
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid api url %q", baseURL)
	}
	return &HTTPNoteService{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}, nil
}

type generateRequest struct {
	SessionDuration int    `json:"session_duration"`
	SessionType     string `json:"session_type"`
	Notes           string `json:"notes"`
}

type saveRequest struct {
	FinalNote string `json:"final_note"`
}

func (s *HTTPNoteService) Generate(ctx context.Context, req notesout.GenerateRequest) (notesout.GenerateResult, error) {
	const op = "generate"
	status, body, err := s.do(ctx, op, http.MethodPost, s.baseURL+"/session-notes/", generateRequest{
		SessionDuration: req.SessionDuration,
		SessionType:     req.SessionType,
		Notes:           req.Notes,
	})
	if err != nil {
		return notesout.GenerateResult{}, err
	}
	if !gjson.ValidBytes(body) {
		return notesout.GenerateResult{}, &domain.ServiceError{Op: op, Status: status, Detail: "malformed generation response"}
	}
	note := gjson.GetBytes(body, "generated_note")
	if note.Type != gjson.String {
		return notesout.GenerateResult{}, &domain.ServiceError{Op: op, Status: status, Detail: "generation response carried no generated_note"}
	}
	return notesout.GenerateResult{
		GeneratedNote: note.String(),
		NoteID:        noteID(gjson.GetBytes(body, "note_id")),
	}, nil
}

func (s *HTTPNoteService) Save(ctx context.Context, id domain.NoteID, finalNote string) (domain.Acknowledgement, error) {
	const op = "save"
	_, body, err := s.do(ctx, op, http.MethodPatch, s.baseURL+"/session-notes/"+url.PathEscape(string(id)), saveRequest{FinalNote: finalNote})
	if err != nil {
		return domain.Acknowledgement{}, err
	}
	ack := domain.Acknowledgement{NoteID: id, Raw: body}
	if gjson.ValidBytes(body) {
		ack.Message = gjson.GetBytes(body, "message").String()
	}
	return ack, nil
}

// do sends payload as JSON and returns the body of a 2xx response. Non-2xx
// responses become *domain.ServiceError, everything before a response is a
// *domain.TransportError.
func (s *HTTPNoteService) do(ctx context.Context, op, method, target string, payload any) (int, []byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return 0, nil, fmt.Errorf("%s: encode request: %w", op, err)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, bytes.NewReader(raw))
	if err != nil {
		return 0, nil, fmt.Errorf("%s: build request: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return 0, nil, &domain.TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return resp.StatusCode, nil, &domain.TransportError{Op: op, Err: fmt.Errorf("read response: %w", err)}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return resp.StatusCode, body, &domain.ServiceError{Op: op, Status: resp.StatusCode, Detail: detail(resp.StatusCode, body)}
	}
	return resp.StatusCode, body, nil
}

// detail pulls the service message out of an error body. Validation
// failures carry a list under detail; the first msg is used then.
func detail(status int, body []byte) string {
	if gjson.ValidBytes(body) {
		d := gjson.GetBytes(body, "detail")
		switch {
		case d.Type == gjson.String && d.String() != "":
			return d.String()
		case d.IsArray():
			if msg := d.Get("0.msg").String(); msg != "" {
				return msg
			}
		}
	}
	return http.StatusText(status)
}

func noteID(v gjson.Result) domain.NoteID {
	switch v.Type {
	case gjson.Number:
		return domain.NoteID(v.Raw)
	case gjson.String:
		return domain.NoteID(v.String())
	default:
		return ""
	}
}
