// Package fetch retrieves raw article pages with a mandatory inter-request
// delay. One fetch failure degrades one episode; it never aborts the run.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Error reports a failed page retrieval. Status is 0 when the request
// never reached an HTTP response (timeout, connection failure).
type Error struct {
	URL    string
	Status int
	Err    error
}

func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("fetch %s: HTTP %d", e.URL, e.Status)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Fetcher performs sequential page fetches, spacing consecutive call
// starts by at least Delay. The delay timer is owned by the instance and
// the clock is injectable, so throttling is testable without sleeping.
type Fetcher struct {
	client *http.Client
	delay  time.Duration

	now   func() time.Time
	sleep func(time.Duration)

	lastStart time.Time
}

func New(client *http.Client, delay time.Duration) *Fetcher {
	return &Fetcher{
		client: client,
		delay:  delay,
		now:    time.Now,
		sleep:  time.Sleep,
	}
}

// Fetch retrieves the page body for url. Non-2xx responses, timeouts and
// connection failures return a *Error. No retries.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	f.throttle()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", &Error{URL: url, Err: err}
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", &Error{URL: url, Err: err}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &Error{URL: url, Status: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &Error{URL: url, Err: err}
	}

	return string(body), nil
}

// throttle blocks until at least delay has passed since the start of the
// previous fetch, measured from call start so processing time in between
// does not raise the request rate.
func (f *Fetcher) throttle() {
	start := f.now()

	if !f.lastStart.IsZero() {
		if wait := f.delay - start.Sub(f.lastStart); wait > 0 {
			f.sleep(wait)
			start = start.Add(wait)
		}
	}

	f.lastStart = start
}
