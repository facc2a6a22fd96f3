// wikimedia.go implements the Wikimedia pageviews popularity source.
package popularity

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/quipshot/phrase-gate/internal/corpus"
	"github.com/quipshot/phrase-gate/internal/logging"
	"github.com/quipshot/phrase-gate/internal/retry"
	"github.com/quipshot/phrase-gate/internal/textutil"
)

const (
	defaultWikimediaBaseURL = "https://wikimedia.org/api/rest_v1"
	defaultWikimediaRPS     = 2.0
	defaultWikimediaTimeout = 10 * time.Second

	wikimediaProject    = "en.wikipedia.org"
	wikimediaDateLayout = "20060102"
	wikimediaUserAgent  = "phrase-gate/1.0 (popularity probe)"
)

// WikimediaConfig configures the pageviews client.
type WikimediaConfig struct {
	BaseURL           string
	RequestsPerSecond float64
	Timeout           time.Duration
}

// WikimediaSource reads monthly pageview totals from the Wikimedia REST API.
// Requests are rate limited and retried with exponential backoff; an article
// the API does not know reads as zero views rather than an error. Languages
// come from the entity index when the phrase matches an entity.
type WikimediaSource struct {
	baseURL string
	client  *http.Client
	limiter *rate.Limiter
	index   *corpus.EntityIndex
	retry   retry.Config
	logger  logging.Logger
}

// pageviewsResponse mirrors the per-article monthly pageviews payload.
type pageviewsResponse struct {
	Items []struct {
		Project string `json:"project"`
		Article string `json:"article"`
		Views   int64  `json:"views"`
	} `json:"items"`
}

// NewWikimediaSource creates a pageviews-backed popularity source.
func NewWikimediaSource(logger logging.Logger, index *corpus.EntityIndex, cfg WikimediaConfig) *WikimediaSource {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultWikimediaBaseURL
	}
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = defaultWikimediaRPS
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultWikimediaTimeout
	}

	return &WikimediaSource{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		client:  &http.Client{Timeout: cfg.Timeout},
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1),
		index:   index,
		retry:   retry.DefaultConfig(),
		logger:  logger,
	}
}

// Name identifies the source in logs and configuration.
func (w *WikimediaSource) Name() string {
	return OriginWikimedia
}

// Estimate fetches last month's pageview total for the phrase's article.
func (w *WikimediaSource) Estimate(ctx context.Context, phrase string) (Estimate, error) {
	if err := w.limiter.Wait(ctx); err != nil {
		return Estimate{}, fmt.Errorf("rate limit wait: %w", err)
	}

	start, end := monthWindow(time.Now().UTC())
	endpoint := fmt.Sprintf("%s/metrics/pageviews/per-article/%s/all-access/all-agents/%s/monthly/%s/%s",
		w.baseURL, wikimediaProject, url.PathEscape(articleTitle(phrase)), start, end)

	var views int64
	err := retry.Do(ctx, w.retry, func() error {
		fetched, fetchErr := w.fetchViews(ctx, endpoint)
		if fetchErr != nil {
			return fetchErr
		}
		views = fetched
		return nil
	})
	if err != nil {
		return Estimate{}, fmt.Errorf("pageviews lookup failed: %w", err)
	}

	languages := 1
	if entity, ok := w.index.LookupLabel(textutil.Normalize(phrase)); ok {
		languages = entity.Sitelinks
	}

	w.logger.Debug("pageviews estimate",
		logging.String("phrase", phrase),
		logging.Int64("views", views),
		logging.Int("languages", languages))

	return Estimate{
		Engagement: views,
		Languages:  languages,
		Origin:     OriginWikimedia,
	}, nil
}

func (w *WikimediaSource) fetchViews(ctx context.Context, endpoint string) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", wikimediaUserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		// Unknown article: the API has no data, which reads as zero views.
		return 0, nil
	case resp.StatusCode == http.StatusTooManyRequests:
		return 0, fmt.Errorf("pageviews too many requests (status %d)", resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		return 0, fmt.Errorf("pageviews returned status %d", resp.StatusCode)
	}

	var payload pageviewsResponse
	if decodeErr := json.NewDecoder(resp.Body).Decode(&payload); decodeErr != nil {
		return 0, fmt.Errorf("decode response: %w", decodeErr)
	}

	var total int64
	for _, item := range payload.Items {
		total += item.Views
	}
	return total, nil
}

// articleTitle folds a phrase into Wikimedia article form: single spaces
// become underscores, original casing is kept.
func articleTitle(phrase string) string {
	return strings.Join(strings.Fields(strings.TrimSpace(phrase)), "_")
}

// monthWindow returns the first and last day of the month before ref, in the
// pageviews API date format.
func monthWindow(ref time.Time) (string, string) {
	firstOfThis := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, time.UTC)
	lastOfPrev := firstOfThis.AddDate(0, 0, -1)
	firstOfPrev := time.Date(lastOfPrev.Year(), lastOfPrev.Month(), 1, 0, 0, 0, 0, time.UTC)
	return firstOfPrev.Format(wikimediaDateLayout), lastOfPrev.Format(wikimediaDateLayout)
}
