package records

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spigell/jobmatch/internal/matching"
)

const (
	userAgent = "spigell/jobmatch"
	jobsPath  = "/jobs"
	usersPath = "/users"
	// Max value for jobs per page.
	perPage = "100"
)

// Client reads records from a document API over HTTP.
type Client struct {
	token      string
	logger     *zap.Logger
	HTTPClient *http.Client
	UserAgent  string
	APIURL     string
}

func NewClient(apiURL, token string, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		token:  token,
		APIURL: strings.TrimRight(apiURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger:    logger,
		UserAgent: userAgent,
	}
}

func (c *Client) User(ctx context.Context, id string) (*matching.User, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("%w: empty id", ErrUserNotFound)
	}

	var doc map[string]any
	err := c.getJSON(ctx, fmt.Sprintf("%s%s/%s", c.APIURL, usersPath, url.PathEscape(id)), nil, &doc)
	if errors.Is(err, errNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrUserNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	return findUser(documentItems(doc), id, c.logger)
}

func (c *Client) Jobs(ctx context.Context) (*Jobs, error) {
	q := url.Values{}
	// Set per_page max as possible. It should be faster.
	q.Set("per_page", perPage)

	items, err := c.GetItems(ctx, c.APIURL+jobsPath, q)
	if err != nil {
		return nil, fmt.Errorf("get jobs: %w", err)
	}

	return decodeJobs(items, c.logger), nil
}
