/*
Package upload implements the two step upload used by photo frame devices.

The client first asks the device endpoint for a destination with a GET
request, the response being a JSON object of the form:

	{"uploadUrl": "https://..."}

The bitmap is then sent to that URL with a single PUT request. Nothing is
retried.
*/
package upload

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/valyala/fasthttp"
)

// ContentType is sent with every uploaded bitmap.
const ContentType = "image/bmp"

// Limit on the size of any response body
const maxResponse = 64 << 10

var (
	errNoDestination = errors.New("upload: no upload URL in response")
	errNoEndpoint    = errors.New("upload: no endpoint configured")
)

// StatusError is returned when the server responds with a non-2xx status.
type StatusError struct {
	Method     string
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upload: %s %s: %d %s", e.Method, e.URL, e.StatusCode, fasthttp.StatusMessage(e.StatusCode))
}

// Client talks to a device endpoint.
type Client struct {
	endpoint string
	client   *fasthttp.Client
}

// New returns a Client for the endpoint. If client is nil then one with
// 30 second read and write timeouts is used.
func New(endpoint string, client *fasthttp.Client) *Client {
	if client == nil {
		client = &fasthttp.Client{
			ReadTimeout:         30 * time.Second,
			WriteTimeout:        30 * time.Second,
			MaxResponseBodySize: maxResponse,
		}
	}
	return &Client{
		endpoint: endpoint,
		client:   client,
	}
}

func ok(code int) bool {
	return code >= 200 && code < 300
}

// do sends req, honouring any deadline on ctx. fasthttp cannot abort a
// request in flight so cancellation is only checked beforehand.
func (c *Client) do(ctx context.Context, req *fasthttp.Request, resp *fasthttp.Response) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if deadline, ok := ctx.Deadline(); ok {
		if err := c.client.DoDeadline(req, resp, deadline); err != nil {
			if errors.Is(err, fasthttp.ErrTimeout) {
				return fmt.Errorf("%w: %v", context.DeadlineExceeded, err)
			}
			return err
		}
		return nil
	}

	return c.client.Do(req, resp)
}

// Destination requests a fresh upload URL from the endpoint.
func (c *Client) Destination(ctx context.Context) (string, error) {
	if c.endpoint == "" {
		return "", errNoEndpoint
	}

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.endpoint)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set(fasthttp.HeaderAccept, "application/json")

	if err := c.do(ctx, req, resp); err != nil {
		return "", err
	}

	if !ok(resp.StatusCode()) {
		return "", &StatusError{fasthttp.MethodGet, c.endpoint, resp.StatusCode()}
	}

	var body struct {
		UploadURL string `json:"uploadUrl"`
	}
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return "", fmt.Errorf("upload: bad destination response: %w", err)
	}

	if body.UploadURL == "" {
		return "", errNoDestination
	}

	return body.UploadURL, nil
}

// Put sends b to url with the given content type.
func (c *Client) Put(ctx context.Context, url string, b []byte, contentType string) error {
	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(url)
	req.Header.SetMethod(fasthttp.MethodPut)
	req.Header.SetContentType(contentType)
	req.SetBodyRaw(b)

	if err := c.do(ctx, req, resp); err != nil {
		return err
	}

	if !ok(resp.StatusCode()) {
		return &StatusError{fasthttp.MethodPut, url, resp.StatusCode()}
	}

	return nil
}

// Upload performs both steps, returning the URL the bitmap was sent to.
func (c *Client) Upload(ctx context.Context, b []byte) (string, error) {
	url, err := c.Destination(ctx)
	if err != nil {
		return "", err
	}

	if err := c.Put(ctx, url, b, ContentType); err != nil {
		return "", err
	}

	return url, nil
}
