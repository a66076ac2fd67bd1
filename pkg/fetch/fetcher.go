package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/hikmetazimzade/wiki-philosophy-finder/pkg/utils"
)

// PageFetcher retrieves the raw markup of a single page.
// Implementations must not retry; the traversal engine owns the attempt budget.
type PageFetcher interface {
	Fetch(ctx context.Context, pageURL string) (string, error)
}

// Fetcher performs one HTTP GET per call using an underlying http.Client
type Fetcher struct {
	client    *http.Client // The configured HTTP client to use for requests
	userAgent string
	log       *logrus.Logger
}

// NewFetcher creates a new Fetcher instance
func NewFetcher(client *http.Client, userAgent string, log *logrus.Logger) *Fetcher {
	return &Fetcher{
		client:    client,
		userAgent: userAgent,
		log:       log,
	}
}

// Fetch retrieves the body of pageURL as text.
//
// Transport-level failures (DNS, connection, timeout) are logged at ERROR and
// returned as-is. Non-200 statuses are returned wrapping utils.ErrBadStatus
// without a log entry; the original tool treated those as a silent skip while
// logging transport failures loudly, and that asymmetry is kept on purpose.
func (f *Fetcher) Fetch(ctx context.Context, pageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		f.log.WithField("url", pageURL).Errorf("Failed to build request: %v", err)
		return "", fmt.Errorf("%w: %v", utils.ErrRequestCreation, err)
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		f.log.WithFields(logrus.Fields{
			"url":            pageURL,
			"error_category": utils.CategorizeError(err),
		}).Errorf("Failed to retrieve content: %v", err)
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Drain so the connection can be reused
		io.Copy(io.Discard, resp.Body)
		return "", fmt.Errorf("%w: %d %s", utils.ErrBadStatus, resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		f.log.WithField("url", pageURL).Errorf("Failed to read response body: %v", err)
		return "", fmt.Errorf("%w: %v", utils.ErrResponseBodyRead, err)
	}

	return string(body), nil
}
