package controllers

import (
	"errors"
	"mime"
	"net/http"
	"strconv"

	"governanceevents/internal/domain"
)

// writeAttachment sends body as a download named filename.
func writeAttachment(w http.ResponseWriter, contentType, filename string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", contentDisposition(filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

// contentDisposition quotes filename per RFC 2183 and adds filename* for non-ASCII names.
func contentDisposition(filename string) string {
	if v := mime.FormatMediaType("attachment", map[string]string{"filename": filename}); v != "" {
		return v
	}
	return "attachment"
}

func isNotFound(err error) bool {
	return errors.Is(err, domain.ErrNotFound)
}
