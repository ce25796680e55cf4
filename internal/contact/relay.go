package contact

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

// SubmissionIDHeader carries the id of a relayed submission.
const SubmissionIDHeader = "X-Submission-ID"

const defaultRelayTimeout = 10 * time.Second

// Relay posts submissions to an operator-configured form endpoint.
type Relay struct {
	client *http.Client
	idGen  func() string
}

// NewRelay builds a Relay. A nil client gets a default with timeout.
func NewRelay(client *http.Client) *Relay {
	if client == nil {
		client = &http.Client{Timeout: defaultRelayTimeout}
	}
	return &Relay{client: client, idGen: func() string { return ulid.Make().String() }}
}

// Send POSTs sub form-encoded to endpoint and returns the submission id.
// Any transport error or non-2xx answer wraps ErrRelayFailed.
func (r *Relay) Send(ctx context.Context, endpoint string, sub Submission) (string, error) {
	id := r.idGen()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(sub.Values().Encode()))
	if err != nil {
		return id, fmt.Errorf("%w: build request: %v", ErrRelayFailed, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(SubmissionIDHeader, id)
	resp, err := r.client.Do(req)
	if err != nil {
		return id, fmt.Errorf("%w: %v", ErrRelayFailed, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return id, fmt.Errorf("%w: endpoint answered %d", ErrRelayFailed, resp.StatusCode)
	}
	return id, nil
}
