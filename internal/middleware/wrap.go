package middleware

import "net/http"

// ResponseRecorder wraps ResponseWriter, captures the status code, and can
// run a hook just before the first byte or header is written. The session
// middleware uses the hook to flush the cookie while headers are still open.
type ResponseRecorder struct {
	http.ResponseWriter
	status      int
	wrote       bool
	beforeWrite func(http.ResponseWriter)
}

func NewResponseRecorder(w http.ResponseWriter) *ResponseRecorder {
	return &ResponseRecorder{ResponseWriter: w, status: http.StatusOK}
}

// SetBeforeWrite registers a hook invoked once before the first write.
func (rw *ResponseRecorder) SetBeforeWrite(fn func(http.ResponseWriter)) {
	rw.beforeWrite = fn
}

func (rw *ResponseRecorder) WriteHeader(statusCode int) {
	rw.ensureBeforeWrite()
	rw.status = statusCode
	rw.ResponseWriter.WriteHeader(statusCode)
}

func (rw *ResponseRecorder) Write(b []byte) (int, error) {
	rw.ensureBeforeWrite()
	return rw.ResponseWriter.Write(b)
}

func (rw *ResponseRecorder) Status() int { return rw.status }

func (rw *ResponseRecorder) ensureBeforeWrite() {
	if rw.wrote {
		return
	}
	rw.wrote = true
	if rw.beforeWrite != nil {
		rw.beforeWrite(rw.ResponseWriter)
	}
}
