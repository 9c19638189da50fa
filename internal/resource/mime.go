package resource

import "net/http"

// sniffMIME falls back to content sniffing when neither a file extension
// nor a Content-Type header gave a usable MIME type.
func sniffMIME(data []byte) string {
	return http.DetectContentType(data)
}
