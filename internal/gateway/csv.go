// internal/gateway/csv.go
package gateway

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"

	commonhttp "marketscout/internal/common/http"
	"marketscout/internal/common/logger"
)

// csvConnectMsg is the fixed message shown when the CSV analysis backend
// cannot be reached at all.
const csvConnectMsg = "Cannot reach the CSV analysis backend. Make sure the service is running on port 8001."

// CSVClient talks to the CSV analysis agent backend. The session identifier
// it hands back on upload is an opaque token; this client never inspects it.
type CSVClient struct {
	baseURL string
	client  *commonhttp.Client
	logger  logger.Logger
}

func NewCSVClient(baseURL string, client *commonhttp.Client, log logger.Logger) *CSVClient {
	return &CSVClient{
		baseURL: baseURL,
		client:  client,
		logger:  log.With(map[string]interface{}{"backend": BackendCSV}),
	}
}

// Upload sends one CSV file for analysis. The response contains at minimum a
// session_id correlating follow-up questions, plus backend-internal result
// fields returned verbatim.
func (c *CSVClient) Upload(ctx context.Context, filename string, r io.Reader) (Payload, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, r); err != nil {
		return nil, err
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/upload_csv", &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	return doJSON(c.client, c.logger, BackendCSV, "upload-csv", csvConnectMsg, req)
}

// Chat asks a follow-up question on a previously uploaded file's session.
func (c *CSVClient) Chat(ctx context.Context, sessionID, userMessage string) (Payload, error) {
	form := url.Values{}
	form.Set("session_id", sessionID)
	form.Set("user_message", userMessage)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	return doJSON(c.client, c.logger, BackendCSV, "chat", csvConnectMsg, req)
}

// Health is a liveness probe against the CSV backend.
func (c *CSVClient) Health(ctx context.Context) (Payload, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return nil, err
	}

	return doJSON(c.client, c.logger, BackendCSV, "health", csvConnectMsg, req)
}
