// Package gsheets reads a worksheet from the Google Sheets v4 REST API and turns
// it into enquiry records.
//
// Authentication uses a service-account key through golang.org/x/oauth2; the
// authorized *http.Client is handed to NewClient with WithHTTPClient. Requests
// are retried with jittered exponential backoff on 429 and 5xx responses.
package gsheets
