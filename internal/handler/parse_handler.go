package handler

import (
	"bytes"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"invext/internal/engine"
	"invext/internal/export"
)

const (
	maxDocumentLines = 5000
	maxBatchSize     = 500
)

// ParseHandler exposes the extraction engine over HTTP.
type ParseHandler struct {
	engine *engine.Engine
}

// NewParseHandler creates a new ParseHandler.
func NewParseHandler(eng *engine.Engine) *ParseHandler {
	return &ParseHandler{engine: eng}
}

// ParseRequest is the body of POST /v1/parse. Lines takes precedence;
// Text is split on newlines when Lines is absent.
type ParseRequest struct {
	Lines []string `json:"lines"`
	Text  string   `json:"text"`
}

func (r *ParseRequest) lines() []string {
	if len(r.Lines) > 0 {
		return r.Lines
	}
	return strings.Split(r.Text, "\n")
}

// Parse handles POST /v1/parse
func (h *ParseHandler) Parse(c *gin.Context) {
	var req ParseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_BODY", "request body must be JSON with lines or text")
		return
	}
	lines := req.lines()
	if len(lines) > maxDocumentLines {
		RespondError(c, http.StatusRequestEntityTooLarge, "DOCUMENT_TOO_LARGE", "document exceeds line limit")
		return
	}

	result := h.engine.Parse(c.Request.Context(), lines)
	RespondOK(c, result)
}

// BatchRequest is the body of POST /v1/parse/batch and /v1/export.
type BatchRequest struct {
	Name      string          `json:"name"`
	Documents []BatchDocument `json:"documents"`
}

// BatchDocument is one named document in a batch.
type BatchDocument struct {
	Name string `json:"name"`
	ParseRequest
}

// BatchItem is one result in a batch response.
type BatchItem struct {
	Name   string        `json:"name"`
	Result engine.Result `json:"result"`
}

func (h *ParseHandler) parseBatch(c *gin.Context) (*BatchRequest, []export.Row, bool) {
	var req BatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_BODY", "request body must be JSON with documents")
		return nil, nil, false
	}
	if len(req.Documents) == 0 {
		RespondError(c, http.StatusBadRequest, "EMPTY_BATCH", "documents must not be empty")
		return nil, nil, false
	}
	if len(req.Documents) > maxBatchSize {
		RespondError(c, http.StatusRequestEntityTooLarge, "BATCH_TOO_LARGE", "batch exceeds document limit")
		return nil, nil, false
	}

	rows := make([]export.Row, len(req.Documents))
	for i, d := range req.Documents {
		rows[i] = export.Row{
			Name:   d.Name,
			Result: h.engine.Parse(c.Request.Context(), d.lines()),
		}
	}
	return &req, rows, true
}

// ParseBatch handles POST /v1/parse/batch
func (h *ParseHandler) ParseBatch(c *gin.Context) {
	_, rows, ok := h.parseBatch(c)
	if !ok {
		return
	}
	items := make([]BatchItem, len(rows))
	for i, r := range rows {
		items[i] = BatchItem{Name: r.Name, Result: r.Result}
	}
	RespondOK(c, items)
}

// Export handles POST /v1/export?format=csv|xlsx, returning the batch
// results as a downloadable file.
func (h *ParseHandler) Export(c *gin.Context) {
	format := c.DefaultQuery("format", "csv")
	if format != "csv" && format != "xlsx" {
		RespondError(c, http.StatusBadRequest, "INVALID_FORMAT", "format must be csv or xlsx")
		return
	}

	req, rows, ok := h.parseBatch(c)
	if !ok {
		return
	}

	name := req.Name
	if name == "" {
		name = "extractions"
	}
	filename := export.BuildFilename(name, format)
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)

	if format == "xlsx" {
		var buf bytes.Buffer
		if err := export.WriteXLSX(&buf, rows); err != nil {
			HandleError(c, err)
			return
		}
		c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
		return
	}

	var buf bytes.Buffer
	buf.Write(export.BOM)
	w := export.NewWriter(&buf)
	if err := w.WriteHeader(); err != nil {
		HandleError(c, err)
		return
	}
	if err := w.WriteRows(rows); err != nil {
		HandleError(c, err)
		return
	}
	w.Flush()
	if err := w.Error(); err != nil {
		HandleError(c, err)
		return
	}
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}
