package api

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"slices"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/dgallion1/parafind/internal/document"
	"github.com/dgallion1/parafind/internal/parser"
	"github.com/dgallion1/parafind/internal/segment"
)

type uploadResult struct {
	Filename   string `json:"filename"`
	DocID      string `json:"doc_id,omitempty"`
	Size       int    `json:"size,omitempty"`
	Paragraphs int    `json:"paragraphs,omitempty"`
	Replaced   bool   `json:"replaced,omitempty"`
	Error      string `json:"error,omitempty"`
}

// handleUpload parses every file in the "files" (or "file") form field and
// adds it to the document set. Failures are reported per file.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes*10+10*1024*1024)

	if err := r.ParseMultipartForm(64 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	files := slices.Concat(r.MultipartForm.File["files"], r.MultipartForm.File["file"])
	if len(files) == 0 {
		jsonError(w, "at least one file is required", http.StatusBadRequest)
		return
	}

	results := make([]uploadResult, 0, len(files))
	stored := 0
	for _, fh := range files {
		res := s.ingest(fh)
		if res.Error == "" {
			stored++
		} else {
			s.log.Warn("upload rejected", "filename", res.Filename, "error", res.Error)
		}
		results = append(results, res)
	}

	code := http.StatusOK
	if stored == 0 {
		code = http.StatusBadRequest
	}
	writeJSON(w, code, map[string]any{"documents": results, "stored": stored})
}

func (s *Server) ingest(fh *multipart.FileHeader) uploadResult {
	filename := sanitizeFilename(fh.Filename)
	res := uploadResult{Filename: filename}
	if !parser.IsSupportedExtension(filename) {
		res.Error = fmt.Sprintf("unsupported file type: %s", filepath.Ext(filename))
		return res
	}

	f, err := fh.Open()
	if err != nil {
		res.Error = "failed to open file"
		return res
	}
	data, err := io.ReadAll(io.LimitReader(f, s.cfg.MaxUploadBytes+1))
	f.Close()
	if err != nil || int64(len(data)) > s.cfg.MaxUploadBytes {
		res.Error = "file too large or read error"
		return res
	}

	p, err := parser.ForFile(filename)
	if err != nil {
		res.Error = err.Error()
		return res
	}
	if pp, ok := p.(*parser.PDFParser); ok {
		pp.FallbackPdftotext = s.cfg.PDFFallbackPdftotext
	}
	text, err := p.Parse(bytes.NewReader(data), filename)
	if err != nil {
		res.Error = err.Error()
		return res
	}

	doc := document.Document{ID: document.IDFor(data), Name: filename, Text: text}
	res.Replaced = s.docs.Put(doc)
	res.DocID = doc.ID
	res.Size = len(text)
	paras, _ := segment.Segment(text)
	res.Paragraphs = len(paras)
	s.log.Info("document stored", "doc_id", doc.ID, "filename", filename, "paragraphs", res.Paragraphs)
	return res
}

func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"documents": s.docs.List()})
}

// handleDocumentSegments shows how a stored document is split into
// paragraphs.
func (s *Server) handleDocumentSegments(w http.ResponseWriter, r *http.Request) {
	docID := chi.URLParam(r, "docID")
	doc, ok := s.docs.Get(docID)
	if !ok {
		jsonError(w, "document not found", http.StatusNotFound)
		return
	}
	paras, diag := segment.Segment(doc.Text)
	if paras == nil {
		paras = []string{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"doc_id":       doc.ID,
		"name":         doc.Name,
		"segmentation": diag,
		"paragraphs":   paras,
	})
}

func (s *Server) handleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	docID := chi.URLParam(r, "docID")
	if !s.docs.Delete(docID) {
		jsonError(w, "document not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"deleted": docID})
}

func sanitizeFilename(name string) string {
	// Strip path components, keep only the base name.
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." || name == "/" {
		name = "unnamed"
	}
	return name
}
