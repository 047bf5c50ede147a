// Package api is a client for the Fork CMS JSON API.
//
// Every call is a single round trip: the method name and flat parameters are
// sent as a query string (GET) or form body (POST) to the base URL, and the
// response must be an envelope of the form
//
//	{"meta": {"status_code": 200, "status": "ok"}, "data": ...}
//
// A call returns the raw "data" value on success. Failures are *errors.Error
// values whose kind can be tested with errors.Is against errors.ErrTransport,
// errors.ErrMalformedResponse, errors.ErrDomain and errors.ErrInvalidArgument.
package api
