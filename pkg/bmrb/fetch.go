// Package bmrb goes to the BMRB web site and downloads NMR-STAR files.
// Entries live at <base>/bmr<ID>/bmr<ID>_3.str and we save them under
// the same name, so they can be given straight to the parser.
// The server may send the file gzipped. If so, we decompress it on
// the way, so what is on disk is always plain text.
package bmrb

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/andrew-torda/nmrstar/pkg/logger"
	"github.com/andrew-torda/nmrstar/pkg/zwrap"
)

// DefaultBaseURL is the directory with one subdirectory per entry.
const DefaultBaseURL = "https://bmrb.io/ftp/pub/bmrb/entry_directories"

// ErrBadID is returned for anything that is not a positive entry number.
var ErrBadID = errors.New("bmrb id must be a positive integer")

// StatusError is a reply other than 200.
type StatusError struct {
	URL    string
	Status string
}

func (e *StatusError) Error() string {
	return "wanted " + e.URL + ", got " + e.Status
}

// Client fetches entries. The zero value is not useful, call NewClient.
type Client struct {
	BaseURL  string
	HTTP     *http.Client
	Progress io.Writer // if not nil, draw a progress bar here
}

// NewClient returns a client for the mirror at baseURL.
// An empty baseURL means DefaultBaseURL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: timeout},
	}
}

// ParseID accepts 15000 or bmr15000.
func ParseID(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimPrefix(strings.TrimSpace(s), "bmr"))
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrBadID, s)
	}
	return n, nil
}

// FileName is the name BMRB uses for the NMR-STAR 3 file of an entry.
func FileName(id int) string { return "bmr" + strconv.Itoa(id) + "_3.str" }

// URL is where the entry is on the server.
func (c *Client) URL(id int) string {
	return c.BaseURL + "/bmr" + strconv.Itoa(id) + "/" + FileName(id)
}

// body lets us put a progress bar between the network and the
// decompressor, but still close the network stream.
type body struct {
	io.Reader
	io.Closer
}

// Get returns a reader for the entry. It has been decompressed if
// necessary. The caller has to close it.
func (c *Client) Get(ctx context.Context, id int) (io.ReadCloser, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrBadID, id)
	}
	url := c.URL(id)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, &StatusError{URL: url, Status: resp.Status}
	}

	var rc io.ReadCloser = resp.Body
	if c.Progress != nil {
		bar := progressbar.NewOptions64(resp.ContentLength,
			progressbar.OptionSetWriter(c.Progress),
			progressbar.OptionSetDescription(FileName(id)),
			progressbar.OptionSetWidth(40),
			progressbar.OptionShowBytes(true),
			progressbar.OptionThrottle(65*time.Millisecond),
			progressbar.OptionSetRenderBlankState(true),
			progressbar.OptionOnCompletion(func() { fmt.Fprintln(c.Progress) }),
		)
		rc = body{Reader: io.TeeReader(resp.Body, bar), Closer: resp.Body}
	}

	// If the transport asked for gzip itself, it has already undone it.
	gzipped := !resp.Uncompressed &&
		(resp.Header.Get("Content-Encoding") == "gzip" || zwrap.IsGzName(url))
	if !gzipped {
		return rc, nil
	}
	zr, err := zwrap.Wrap(rc)
	if err != nil {
		rc.Close()
		return nil, fmt.Errorf("%s: %w", url, err)
	}
	return zr, nil
}

// Fetch downloads the entry into dir and returns the file name.
// We write to a temporary file and rename it, so an interrupted
// download never leaves a partial bmr<ID>_3.str behind.
func (c *Client) Fetch(ctx context.Context, id int, dir string) (string, error) {
	rdr, err := c.Get(ctx, id)
	if err != nil {
		return "", err
	}
	defer rdr.Close()

	tmp, err := os.CreateTemp(dir, ".bmr*.tmp")
	if err != nil {
		return "", err
	}
	n, err := io.Copy(tmp, rdr)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("downloading %s: %w", c.URL(id), err)
	}
	path := filepath.Join(dir, FileName(id))
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}
	logger.Info("fetched", "id", id, "path", path, "bytes", n)
	return path, nil
}

var defaultClient = NewClient(DefaultBaseURL, 2*time.Minute)

// Fetch downloads an entry from the public BMRB server into dir.
func Fetch(ctx context.Context, id int, dir string) (string, error) {
	return defaultClient.Fetch(ctx, id, dir)
}
