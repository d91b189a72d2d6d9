package translator

import (
	"fmt"
	"net/http"
	"net/http/httputil"
)

// AuthError indicates the token endpoint rejected the credentials, or
// answered successfully without a usable token.
type AuthError struct {
	StatusLine string
	Reason     string
}

func (e *AuthError) Error() string {
	if e.StatusLine != "" {
		return fmt.Sprintf("auth failed: %s", e.StatusLine)
	}
	return fmt.Sprintf("auth failed: %s", e.Reason)
}

// RequestError indicates a translator endpoint answered with a non-2xx
// status. It keeps the request and response around for dumping.
type RequestError struct {
	StatusLine string
	Request    *http.Request
	Response   *http.Response
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("request failed: %s", e.StatusLine)
}

func (e *RequestError) DumpRequest(body bool) []byte {
	if e.Request == nil {
		return nil
	}
	if e.Request.GetBody != nil {
		e.Request.Body, _ = e.Request.GetBody()
	}
	out, _ := httputil.DumpRequestOut(e.Request, body)
	return out
}

func (e *RequestError) DumpResponse(body bool) []byte {
	if e.Response == nil {
		return nil
	}
	out, _ := httputil.DumpResponse(e.Response, body)
	return out
}
