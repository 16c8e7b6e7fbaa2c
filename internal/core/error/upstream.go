package errx

import "net/http"

// WrapUpstream maps a failed marketplace API call to the unified AppError
// type. Transport failures (err != nil) and non-2xx responses both land
// here; the caller passes the upstream status when it has one, zero
// otherwise.
func WrapUpstream(err error, status int) error {
	if err == nil && status >= 200 && status < 300 {
		return nil
	}

	// A concrete upstream status is forwarded so a 404 stays a 404 at the
	// view boundary. Transport-level failures become 502.
	if status >= 400 {
		return New(err, status, UpstreamErrorMessage)
	}
	return New(err, http.StatusBadGateway, UpstreamErrorMessage)
}
