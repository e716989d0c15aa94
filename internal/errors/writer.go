package errors

import "github.com/gin-gonic/gin"

// holds back a bare 401/403/404/500 header so the dispatcher can still
// answer it. the header goes out as soon as a body byte is written.
type heldWriter struct {
	gin.ResponseWriter
}

func (w *heldWriter) WriteHeaderNow() {
	if _, ok := KindFromStatus(w.Status()); ok && !w.Written() {
		return
	}

	w.ResponseWriter.WriteHeaderNow()
}
