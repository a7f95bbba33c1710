package mediareport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"
)

const (
	// DefaultUsername is sent when the caller supplies no identity.
	DefaultUsername = "Funcionário"

	// UploadReportFilename is the download name of a report returned by
	// the upload endpoint.
	UploadReportFilename = "relatorio_epi.pdf"

	// DefaultServerMessage describes a failed upload whose response carries
	// no message.
	DefaultServerMessage = "Ocorreu um erro durante o envio."

	// DefaultNoticeMessage describes an accepted upload where nothing was
	// detected.
	DefaultNoticeMessage = "Nenhum objeto detectado."
)

// Client submits single files to a detection endpoint.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// ClientOption configures a [Client].
type ClientOption func(*Client)

// WithHTTPClient replaces the HTTP client used for uploads.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithUploadTimeout bounds a whole upload round trip.
func WithUploadTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// NewClient returns a client for the endpoint rooted at baseURL; uploads go
// to baseURL + "/upload".
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 2 * time.Minute},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// UploadOutcome is a successful upload: either a PDF report or an
// informational message from the server.
type UploadOutcome struct {
	Report  *Result // non-nil when the server answered with a PDF
	Message string  // set when the server answered with JSON
}

// IsReport reports whether the server returned a PDF.
func (o *UploadOutcome) IsReport() bool { return o.Report != nil }

type messageBody struct {
	Message string `json:"message"`
}

// Upload posts file as the multipart field "image" together with the
// "username" field. An empty username is sent as [DefaultUsername].
//
// The response is classified by status and content type:
//
//   - non-OK: [KindServer] carrying the JSON "message" field
//   - OK, application/pdf: an outcome holding the report
//   - OK, application/json: an outcome holding the "message" field
//   - OK, anything else: [KindUnrecognizedResponse]
//
// Transport failures are [KindNetwork]. Nothing is retried.
func (c *Client) Upload(ctx context.Context, file *UploadedFile, username string) (*UploadOutcome, error) {
	if file == nil {
		return nil, &Error{Kind: KindNoFileSelected, Op: "upload"}
	}
	if err := AcceptSingle(*file); err != nil {
		return nil, err
	}
	if file.Content == nil {
		return nil, &Error{Kind: KindNoFileSelected, Op: "upload", Message: file.Name + " has no content"}
	}
	if username == "" {
		username = DefaultUsername
	}

	body, contentType, err := buildUploadBody(file, username)
	if err != nil {
		return nil, fmt.Errorf("mediareport: building upload body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/upload", body)
	if err != nil {
		return nil, fmt.Errorf("mediareport: creating request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &Error{Kind: KindNetwork, Op: "upload", Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Kind: KindNetwork, Op: "upload", Message: "reading response", Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := decodeMessage(respBody)
		if msg == "" {
			msg = DefaultServerMessage
		}
		return nil, &Error{Kind: KindServer, Op: "upload", Status: resp.StatusCode, Message: msg}
	}

	mediaType, _, _ := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	switch mediaType {
	case "application/pdf":
		return &UploadOutcome{Report: NewResult(respBody, UploadReportFilename)}, nil
	case "application/json":
		msg := decodeMessage(respBody)
		if msg == "" {
			msg = DefaultNoticeMessage
		}
		return &UploadOutcome{Message: msg}, nil
	default:
		return nil, &Error{
			Kind:    KindUnrecognizedResponse,
			Op:      "upload",
			Message: fmt.Sprintf("content type %q", resp.Header.Get("Content-Type")),
		}
	}
}

func buildUploadBody(file *UploadedFile, username string) (*bytes.Buffer, string, error) {
	rc, err := file.Content.Open()
	if err != nil {
		return nil, "", err
	}
	defer rc.Close()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="image"; filename="%s"`, escapeQuotes(file.Name)))
	h.Set("Content-Type", file.MIMEType)
	part, err := w.CreatePart(h)
	if err != nil {
		return nil, "", err
	}
	if _, err := io.Copy(part, rc); err != nil {
		return nil, "", err
	}
	if err := w.WriteField("username", username); err != nil {
		return nil, "", err
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &body, w.FormDataContentType(), nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}

// decodeMessage extracts the "message" field of a JSON body, or "".
func decodeMessage(b []byte) string {
	var m messageBody
	if err := json.Unmarshal(b, &m); err != nil {
		return ""
	}
	return m.Message
}
