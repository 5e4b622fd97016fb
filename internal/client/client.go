// Package client is the typed resource client for the portfolio REST
// backend. Reads prefer the live API and degrade to embedded fallback
// snapshots; mutations always require the live API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/NKTHUAN-2K5/portfolio/internal/logger"
	"github.com/NKTHUAN-2K5/portfolio/internal/models"
)

// Collection names a server-owned list of records of one content type.
type Collection string

const (
	CollectionProfile    Collection = "profile"
	CollectionStories    Collection = "stories"
	CollectionGallery    Collection = "gallery"
	CollectionProjects   Collection = "projects"
	CollectionSkills     Collection = "skills"
	CollectionExperience Collection = "experience"
	CollectionEducation  Collection = "education"
	CollectionAwards     Collection = "awards"
	CollectionLinks      Collection = "links"
)

// Collections lists every content collection in display order.
var Collections = []Collection{
	CollectionProfile,
	CollectionStories,
	CollectionGallery,
	CollectionProjects,
	CollectionSkills,
	CollectionExperience,
	CollectionEducation,
	CollectionAwards,
	CollectionLinks,
}

// ErrNotFound is returned when a record id does not exist.
var ErrNotFound = errors.New("record not found")

const (
	defaultTimeout             = 10 * time.Second
	defaultMaxIdleConns        = 100
	defaultMaxIdleConnsPerHost = 10
	defaultIdleConnTimeout     = 90 * time.Second
	defaultTLSHandshakeTimeout = 10 * time.Second
)

// NewHTTPClient builds an HTTP client with tuned transport settings.
// A zero timeout selects the default.
func NewHTTPClient(timeout time.Duration) *http.Client {
	if timeout == 0 {
		timeout = defaultTimeout
	}
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			MaxIdleConns:        defaultMaxIdleConns,
			MaxIdleConnsPerHost: defaultMaxIdleConnsPerHost,
			IdleConnTimeout:     defaultIdleConnTimeout,
			TLSHandshakeTimeout: defaultTLSHandshakeTimeout,
		},
	}
}

// Client talks to the portfolio backend.
type Client struct {
	baseURL    string
	httpc      *http.Client
	log        logger.Logger
	onFallback func(collection string)
}

// SetFallbackHook registers a callback invoked whenever a collection load
// is served from the fallback snapshot. Used for metrics.
func (c *Client) SetFallbackHook(fn func(collection string)) {
	c.onFallback = fn
}

// New creates a Client. baseURL is the API root, e.g. "http://localhost:3000/api".
func New(baseURL string, httpc *http.Client, log logger.Logger) *Client {
	if httpc == nil {
		httpc = NewHTTPClient(0)
	}
	return &Client{
		baseURL: baseURL,
		httpc:   httpc,
		log:     log,
	}
}

// BaseURL returns the API root the client was configured with.
func (c *Client) BaseURL() string { return c.baseURL }

// HTTPClient exposes the underlying HTTP client for collaborators that
// need raw access (the upload adapter).
func (c *Client) HTTPClient() *http.Client { return c.httpc }

func (c *Client) collectionURL(col Collection) string {
	return c.baseURL + "/" + string(col)
}

func (c *Client) recordURL(col Collection, id int64) string {
	return fmt.Sprintf("%s/%s/%d", c.baseURL, col, id)
}

// getLive performs a plain GET and returns the body only on a 2xx status.
func (c *Client) getLive(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	res, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", url, err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, fmt.Errorf("get %s: unexpected status %d", url, res.StatusCode)
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	return body, nil
}

// fetchInto loads a collection, preferring the live API and falling back
// to the embedded snapshot. Both paths produce identical shapes; callers
// cannot tell which one served them. Failure of both is an error for this
// collection only.
func (c *Client) fetchInto(ctx context.Context, col Collection, out any) error {
	body, liveErr := c.getLive(ctx, c.collectionURL(col))
	if liveErr != nil {
		c.log.Warn("Live fetch failed, using fallback snapshot",
			logger.String("collection", string(col)),
			logger.Error(liveErr),
		)
		var fbErr error
		body, fbErr = fallbackDocument(col)
		if fbErr != nil {
			return fmt.Errorf("collection %s unavailable: live: %w, fallback: %s", col, liveErr, fbErr)
		}
		if c.onFallback != nil {
			c.onFallback(string(col))
		}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode %s: %w", col, err)
	}
	return nil
}

// Profile fetches the singleton profile record.
func (c *Client) Profile(ctx context.Context) (*models.Profile, error) {
	var p models.Profile
	if err := c.fetchInto(ctx, CollectionProfile, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) Stories(ctx context.Context) ([]models.Story, error) {
	var s []models.Story
	if err := c.fetchInto(ctx, CollectionStories, &s); err != nil {
		return nil, err
	}
	return s, nil
}

// Story fetches one story by id. If the by-id endpoint is unreachable the
// fallback snapshot is scanned for a matching id.
func (c *Client) Story(ctx context.Context, id int64) (*models.Story, error) {
	body, liveErr := c.getLive(ctx, c.recordURL(CollectionStories, id))
	if liveErr == nil {
		var s models.Story
		if err := json.Unmarshal(body, &s); err != nil {
			return nil, fmt.Errorf("decode story: %w", err)
		}
		return &s, nil
	}
	if errors.Is(liveErr, ErrNotFound) {
		return nil, liveErr
	}

	stories, err := c.Stories(ctx)
	if err != nil {
		return nil, err
	}
	for i := range stories {
		if stories[i].ID == id {
			return &stories[i], nil
		}
	}
	return nil, ErrNotFound
}

func (c *Client) Gallery(ctx context.Context) ([]models.GalleryItem, error) {
	var g []models.GalleryItem
	if err := c.fetchInto(ctx, CollectionGallery, &g); err != nil {
		return nil, err
	}
	return g, nil
}

func (c *Client) Projects(ctx context.Context) ([]models.Project, error) {
	var p []models.Project
	if err := c.fetchInto(ctx, CollectionProjects, &p); err != nil {
		return nil, err
	}
	return p, nil
}

func (c *Client) Skills(ctx context.Context) ([]models.Skill, error) {
	var s []models.Skill
	if err := c.fetchInto(ctx, CollectionSkills, &s); err != nil {
		return nil, err
	}
	return s, nil
}

func (c *Client) Experience(ctx context.Context) ([]models.Experience, error) {
	var e []models.Experience
	if err := c.fetchInto(ctx, CollectionExperience, &e); err != nil {
		return nil, err
	}
	return e, nil
}

func (c *Client) Education(ctx context.Context) ([]models.Education, error) {
	var e []models.Education
	if err := c.fetchInto(ctx, CollectionEducation, &e); err != nil {
		return nil, err
	}
	return e, nil
}

func (c *Client) Awards(ctx context.Context) ([]models.Award, error) {
	var a []models.Award
	if err := c.fetchInto(ctx, CollectionAwards, &a); err != nil {
		return nil, err
	}
	return a, nil
}

func (c *Client) Links(ctx context.Context) ([]models.Link, error) {
	var l []models.Link
	if err := c.fetchInto(ctx, CollectionLinks, &l); err != nil {
		return nil, err
	}
	return l, nil
}

// Record fetches a single record by id into out. Used to pre-populate
// edit forms; it never falls back because editing stale data would be
// silently destructive on save.
func (c *Client) Record(ctx context.Context, col Collection, id int64, out any) error {
	body, err := c.getLive(ctx, c.recordURL(col, id))
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode %s record: %w", col, err)
	}
	return nil
}

// LiveCollection fetches a collection's raw document from the live API
// only. The snapshot tool uses it to regenerate fallback documents.
func (c *Client) LiveCollection(ctx context.Context, col Collection) (json.RawMessage, error) {
	return c.getLive(ctx, c.collectionURL(col))
}

// Create persists a new record. The record must not carry an id; the
// backend assigns one.
func (c *Client) Create(ctx context.Context, col Collection, record any) error {
	res, err := c.send(ctx, http.MethodPost, c.collectionURL(col), record)
	if err != nil {
		return err
	}
	return res.Err()
}

// Update replaces the record with the given id wholesale. No partial
// patch semantics exist.
func (c *Client) Update(ctx context.Context, col Collection, id int64, record any) error {
	res, err := c.send(ctx, http.MethodPut, c.recordURL(col, id), record)
	if err != nil {
		return err
	}
	return res.Err()
}

// UpdateProfile replaces the singleton profile. There is no id and no
// create path for profiles.
func (c *Client) UpdateProfile(ctx context.Context, p *models.Profile) error {
	res, err := c.send(ctx, http.MethodPut, c.collectionURL(CollectionProfile), p)
	if err != nil {
		return err
	}
	return res.Err()
}

// Delete removes a record permanently. Callers are responsible for
// confirmation; this call is irreversible.
func (c *Client) Delete(ctx context.Context, col Collection, id int64) error {
	res, err := c.send(ctx, http.MethodDelete, c.recordURL(col, id), nil)
	if err != nil {
		return err
	}
	return res.Err()
}

// Login authenticates against the backend admin endpoint.
func (c *Client) Login(ctx context.Context, username, password string) error {
	creds := map[string]string{"username": username, "password": password}
	res, err := c.send(ctx, http.MethodPost, c.baseURL+"/admin/login", creds)
	if err != nil {
		return err
	}
	return res.Err()
}

// send issues a mutation and decodes the backend's {success, message?}
// envelope into a Result.
func (c *Client) send(ctx context.Context, method, url string, body any) (*Result, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, url, err)
	}
	defer res.Body.Close()

	return decodeResult(res)
}
