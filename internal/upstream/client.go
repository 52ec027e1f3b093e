// upstream реализует клиент origin — контент-API, отдающего истории.
// Клиент не следует редиректам сам: перемещение истории — первоклассный
// исход чтения (RedirectError), а не прозрачная деталь транспорта.
package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pribylovaa/story-reader/internal/models"
)

var (
	// ErrNotFound — origin ответил, что истории с таким id нет.
	ErrNotFound = errors.New("story not found")
	// ErrUnavailable — сетевой сбой или серверная ошибка origin
	// (таймаут, обрыв, DNS, 5xx). Для пути чтения — неуспешный fetch,
	// для пробы — признак недостижимости.
	ErrUnavailable = errors.New("origin unavailable")
)

// RedirectError — origin сообщил каноничный id перемещённой истории.
// Не ошибка в строгом смысле: путь чтения превращает её в исход redirect.
type RedirectError struct {
	CanonicalID string
}

func (e *RedirectError) Error() string {
	return fmt.Sprintf("story moved: canonical id %q", e.CanonicalID)
}

// Client — HTTP-клиент origin.
type Client struct {
	client  *http.Client
	baseURL string
}

// New создаёт клиент origin. Таймаут клиента настраивается извне;
// редиректы не следуются (см. комментарий к пакету).
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout: timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

// storyEnvelope — минимальная типизация документа истории на границе fetch.
// Остальная схема эволюционирует на стороне origin и хранится непрозрачно.
type storyEnvelope struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// StoryByID загружает историю у origin.
//
// Исходы:
//   - 200 — история (полный документ как есть + извлечённый заголовок);
//   - 301/302/307/308 — RedirectError с каноничным id из Location;
//   - 404 — ErrNotFound;
//   - сетевой сбой или 5xx — ErrUnavailable.
func (c *Client) StoryByID(ctx context.Context, id string) (*models.Story, error) {
	const op = "upstream.StoryByID"

	u := c.baseURL + "/api/stories/" + url.PathEscape(id)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: new_request: %w", op, err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: do: %w", op, errors.Join(ErrUnavailable, err))
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("%s: read body: %w", op, errors.Join(ErrUnavailable, err))
		}

		var env storyEnvelope
		if err := json.Unmarshal(body, &env); err != nil {
			return nil, fmt.Errorf("%s: decode: %w", op, err)
		}
		if env.ID == "" {
			env.ID = id
		}

		return &models.Story{ID: env.ID, Title: env.Title, Document: body}, nil

	case isRedirect(resp.StatusCode):
		io.Copy(io.Discard, resp.Body)
		canonical := canonicalIDFromLocation(resp.Header.Get("Location"))
		if canonical == "" {
			return nil, fmt.Errorf("%s: redirect without location: %w", op, ErrUnavailable)
		}
		return nil, fmt.Errorf("%s: %w", op, &RedirectError{CanonicalID: canonical})

	case resp.StatusCode == http.StatusNotFound:
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("%s: %w", op, ErrNotFound)

	default:
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("%s: status=%d: %w", op, resp.StatusCode, ErrUnavailable)
	}
}

// ListStories проксирует листинг историй (обзор по темам).
// Тело ответа отдаётся как есть: схема списка принадлежит origin.
func (c *Client) ListStories(ctx context.Context, opts models.ListOptions) (json.RawMessage, error) {
	const op = "upstream.ListStories"

	q := url.Values{}
	if opts.Topic != "" {
		q.Set("topic", opts.Topic)
	}
	if opts.Limit > 0 {
		q.Set("limit", strconv.FormatInt(int64(opts.Limit), 10))
	}
	if opts.PageToken != "" {
		q.Set("page_token", opts.PageToken)
	}

	return c.passthrough(ctx, op, "/api/stories", q)
}

// SearchStories проксирует поиск историй.
func (c *Client) SearchStories(ctx context.Context, query string, opts models.ListOptions) (json.RawMessage, error) {
	const op = "upstream.SearchStories"

	q := url.Values{}
	q.Set("q", query)
	if opts.Limit > 0 {
		q.Set("limit", strconv.FormatInt(int64(opts.Limit), 10))
	}
	if opts.PageToken != "" {
		q.Set("page_token", opts.PageToken)
	}

	return c.passthrough(ctx, op, "/api/search", q)
}

// passthrough — общий GET с прозрачной передачей JSON-ответа.
func (c *Client) passthrough(ctx context.Context, op, path string, q url.Values) (json.RawMessage, error) {
	u := c.baseURL + path
	if enc := q.Encode(); enc != "" {
		u += "?" + enc
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: new_request: %w", op, err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: do: %w", op, errors.Join(ErrUnavailable, err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("%s: status=%d: %w", op, resp.StatusCode, ErrUnavailable)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s: read body: %w", op, errors.Join(ErrUnavailable, err))
	}

	return body, nil
}

// Check выполняет лёгкий запрос-пробу к origin по заданному пути и
// возвращает HTTP-статус. Кэш-бастер в query обходит промежуточные кэши,
// которые могли бы выдать «достижимость» из собственной памяти.
// Интерпретация статуса — ответственность вызывающего (см. connectivity).
func (c *Client) Check(ctx context.Context, path string) (int, error) {
	const op = "upstream.Check"

	u := c.baseURL + path
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	u += sep + "nocache=" + uuid.NewString()

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, u, nil)
	if err != nil {
		return 0, fmt.Errorf("%s: new_request: %w", op, err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%s: do: %w", op, errors.Join(ErrUnavailable, err))
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()

	return resp.StatusCode, nil
}

func isRedirect(code int) bool {
	switch code {
	case http.StatusMovedPermanently, http.StatusFound,
		http.StatusTemporaryRedirect, http.StatusPermanentRedirect:
		return true
	}
	return false
}

// canonicalIDFromLocation извлекает id истории из Location-заголовка:
// последний сегмент пути (абсолютный или относительный URL).
func canonicalIDFromLocation(loc string) string {
	if loc == "" {
		return ""
	}

	u, err := url.Parse(loc)
	if err != nil {
		return ""
	}

	path := strings.TrimRight(u.Path, "/")
	if i := strings.LastIndex(path, "/"); i >= 0 {
		path = path[i+1:]
	}

	unescaped, err := url.PathUnescape(path)
	if err != nil {
		return path
	}

	return unescaped
}
