package httputil

import (
	"context"
	"fmt"
	"io"
	"io/ioutil"
	"net/http"
	"strings"
)

// maxErrorBody caps how much of a failed response body ends up in an error.
const maxErrorBody = 64 << 10

// HTTPStatusError represents a non-2xx HTTP response.
type HTTPStatusError struct {
	StatusCode int
	Status     string
	Body       string
}

func (err HTTPStatusError) Error() string {
	msg := fmt.Sprintf("non-success status: %d", err.StatusCode)
	if err.Status != "" {
		msg = "non-success status: " + err.Status
	}
	if body := strings.TrimSpace(err.Body); body != "" {
		msg += " body=" + body
	}
	return msg
}

// IsSuccess reports whether code is in the 2xx range.
func IsSuccess(code int) bool {
	return code >= http.StatusOK && code < http.StatusMultipleChoices
}

// Open sends a GET request with the given headers and returns the response
// once its status is known to be 2xx. The caller owns the returned body.
func Open(ctx context.Context, client *http.Client, url string, header http.Header) (*http.Response, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if client == nil {
		client = &http.Client{}
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	for key, values := range header {
		for _, value := range values {
			request.Header.Add(key, value)
		}
	}

	response, err := client.Do(request)
	if err != nil {
		return nil, err
	}

	if !IsSuccess(response.StatusCode) {
		defer response.Body.Close()
		b, _ := ioutil.ReadAll(io.LimitReader(response.Body, maxErrorBody))
		return nil, HTTPStatusError{
			StatusCode: response.StatusCode,
			Status:     response.Status,
			Body:       string(b),
		}
	}

	return response, nil
}

// Get sends a GET request and reads the whole body of a 2xx response.
func Get(ctx context.Context, client *http.Client, url string, header http.Header) ([]byte, error) {
	response, err := Open(ctx, client, url, header)
	if err != nil {
		return nil, err
	}
	defer response.Body.Close()

	return ioutil.ReadAll(response.Body)
}
