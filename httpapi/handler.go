// Package httpapi exposes the stamping core over a single JSON POST
// endpoint. The payload carries the field inputs plus an action
// discriminator: download (the default) streams the stamped PDF inline,
// email hands it to the mail sender, and schema reports the backing
// table's description. All stamping semantics live below this layer.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/lvillar/formstamp"
	"github.com/lvillar/formstamp/mail"
	"github.com/lvillar/formstamp/store"
)

// TemplateSource supplies the template document bytes for a request.
type TemplateSource interface {
	Load(ctx context.Context) ([]byte, error)
}

// FileSource reads the template from a fixed filesystem path on every
// request, so a redeployed template takes effect without a restart.
type FileSource struct {
	Path string
}

// Load reads the template file.
func (f FileSource) Load(_ context.Context) ([]byte, error) {
	if f.Path == "" {
		return nil, errors.New("httpapi: template path is not configured")
	}
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("httpapi: reading template: %w", err)
	}
	return data, nil
}

// Handler serves the form-stamping API.
type Handler struct {
	Stamper   *formstamp.Stamper
	Templates TemplateSource
	Mail      mail.Sender       // required for action=email
	Schema    store.SchemaStore // required for action=schema
	From      string            // default sender for action=email
	Log       *zap.Logger
}

const (
	defaultSubject = "DA Form 2404"
	defaultBody    = "Attached: DA Form 2404."
)

// ServeHTTP implements the single POST endpoint with CORS preflight.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	setCommonHeaders(w.Header())

	switch r.Method {
	case http.MethodOptions:
		w.WriteHeader(http.StatusOK)
		return
	case http.MethodPost:
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var payload map[string]any
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	action := "download"
	if v, ok := payload["action"].(string); ok && strings.TrimSpace(v) != "" {
		action = strings.ToLower(strings.TrimSpace(v))
	}

	if action == "schema" {
		h.serveSchema(w, r)
		return
	}

	tmpl, err := h.Templates.Load(r.Context())
	if err != nil {
		h.logger().Error("template read failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("template read failed: %v", err))
		return
	}

	out, filename, err := h.Stamper.Stamp(tmpl, payload)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, formstamp.ErrResolution) {
			status = http.StatusBadRequest
		}
		h.logger().Error("stamping failed", zap.Error(err))
		writeError(w, status, fmt.Sprintf("stamping failed: %v", err))
		return
	}

	switch action {
	case "email":
		h.serveEmail(w, r, payload, out, filename)
	default:
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", filename))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(out)
	}
}

func (h *Handler) serveSchema(w http.ResponseWriter, r *http.Request) {
	if h.Schema == nil {
		writeError(w, http.StatusInternalServerError, "schema store is not configured")
		return
	}
	schema, err := h.Schema.Describe(r.Context())
	if err != nil {
		h.logger().Error("schema lookup failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("schema lookup failed: %v", err))
		return
	}
	writeJSON(w, http.StatusOK, schema)
}

func (h *Handler) serveEmail(w http.ResponseWriter, r *http.Request, payload map[string]any, pdf []byte, filename string) {
	to := stringField(payload, "toEmail")
	if to == "" {
		writeError(w, http.StatusBadRequest, "toEmail is required for action=email")
		return
	}
	from := stringField(payload, "fromEmail")
	if from == "" {
		from = strings.TrimSpace(h.From)
	}
	if from == "" {
		writeError(w, http.StatusBadRequest, "set fromEmail in the request or configure a default sender")
		return
	}
	if h.Mail == nil {
		writeError(w, http.StatusInternalServerError, "mail sender is not configured")
		return
	}

	msg := mail.Message{
		From:       from,
		To:         to,
		Subject:    stringFieldOr(payload, "subject", defaultSubject),
		Body:       stringFieldOr(payload, "body", defaultBody),
		Attachment: pdf,
		Filename:   filename,
	}
	if err := h.Mail.Send(r.Context(), msg); err != nil {
		h.logger().Error("email send failed", zap.String("to", to), zap.Error(err))
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("email send failed: %v", err))
		return
	}
	h.logger().Info("stamped form emailed", zap.String("to", to), zap.String("filename", filename))
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (h *Handler) logger() *zap.Logger {
	if h.Log != nil {
		return h.Log
	}
	return zap.NewNop()
}

func setCommonHeaders(hdr http.Header) {
	hdr.Set("Cache-Control", "no-store")
	hdr.Set("Access-Control-Allow-Origin", "*")
	hdr.Set("Access-Control-Allow-Headers", "Content-Type,Authorization")
	hdr.Set("Access-Control-Allow-Methods", "POST,OPTIONS")
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func stringField(payload map[string]any, key string) string {
	v, _ := payload[key].(string)
	return strings.TrimSpace(v)
}

func stringFieldOr(payload map[string]any, key, fallback string) string {
	if v := stringField(payload, key); v != "" {
		return v
	}
	return fallback
}
