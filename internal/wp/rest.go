package wp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// NewClient returns the transport for the given api kind. Only the REST
// transport exists; xmlrpc is accepted in config for forward
// compatibility but cannot be used yet.
func NewClient(api, endpoint string) (Client, error) {
	switch api {
	case "", "rest":
		return NewRESTClient(endpoint), nil
	case "xmlrpc":
		return nil, fmt.Errorf("the xmlrpc api is not supported yet, set 'api: rest'")
	default:
		return nil, fmt.Errorf("unknown api %q", api)
	}
}

// RESTClient talks to the WordPress REST API (wp/v2) with application
// passwords over basic auth.
type RESTClient struct {
	Endpoint string // site root, e.g. https://blog.example.com
	HTTP     *http.Client
}

// NewRESTClient returns a client for the given site root.
func NewRESTClient(endpoint string) *RESTClient {
	return &RESTClient{
		Endpoint: strings.TrimRight(endpoint, "/"),
		HTTP:     &http.Client{Timeout: 30 * time.Second},
	}
}

type restError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (c *RESTClient) do(ctx context.Context, method, path string, query url.Values, body io.Reader, contentType string, auth Auth, out any) error {
	u := c.Endpoint + "/wp-json/wp/v2" + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if !auth.Empty() {
		req.SetBasicAuth(auth.Username, auth.Password)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode >= 400 {
		var re restError
		if json.Unmarshal(data, &re) == nil && re.Message != "" {
			return &Error{Code: re.Code, Message: re.Message}
		}
		return &Error{Code: strconv.Itoa(resp.StatusCode), Message: http.StatusText(resp.StatusCode)}
	}
	if out != nil {
		return json.Unmarshal(data, out)
	}
	return nil
}

func (c *RESTClient) ValidateCredentials(ctx context.Context, auth Auth) (bool, error) {
	err := c.do(ctx, http.MethodGet, "/users/me", nil, nil, "", auth, nil)
	if err == nil {
		return true, nil
	}
	var wpErr *Error
	if errors.As(err, &wpErr) {
		return false, nil
	}
	return false, err
}

type restTerm struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

func (c *RESTClient) ListCategories(ctx context.Context, auth Auth) ([]Term, error) {
	q := url.Values{"per_page": {"100"}}
	var raw []restTerm
	if err := c.do(ctx, http.MethodGet, "/categories", q, nil, "", auth, &raw); err != nil {
		return nil, err
	}
	out := make([]Term, len(raw))
	for i, t := range raw {
		out[i] = Term{ID: t.ID, Name: t.Name}
	}
	return out, nil
}

func (c *RESTClient) ListPostTypes(ctx context.Context, auth Auth) ([]PostType, error) {
	var raw map[string]struct {
		Slug string `json:"slug"`
		Name string `json:"name"`
	}
	if err := c.do(ctx, http.MethodGet, "/types", nil, nil, "", auth, &raw); err != nil {
		return nil, err
	}
	var out []PostType
	for _, t := range raw {
		out = append(out, PostType{Slug: t.Slug, Label: t.Name})
	}
	return out, nil
}

func (c *RESTClient) ResolveTag(ctx context.Context, name string, auth Auth) (*Term, error) {
	q := url.Values{"search": {name}}
	var found []restTerm
	if err := c.do(ctx, http.MethodGet, "/tags", q, nil, "", auth, &found); err != nil {
		return nil, err
	}
	for _, t := range found {
		if strings.EqualFold(t.Name, name) {
			return &Term{ID: t.ID, Name: t.Name}, nil
		}
	}

	body, _ := json.Marshal(map[string]string{"name": name})
	var created restTerm
	if err := c.do(ctx, http.MethodPost, "/tags", nil, bytes.NewReader(body), "application/json", auth, &created); err != nil {
		return nil, err
	}
	return &Term{ID: created.ID, Name: created.Name}, nil
}

func (c *RESTClient) UploadMedia(ctx context.Context, file MediaFile, auth Auth) (*MediaResult, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", file.Name)
	if err != nil {
		return nil, err
	}
	if _, err := part.Write(file.Data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	var raw struct {
		SourceURL string `json:"source_url"`
	}
	if err := c.do(ctx, http.MethodPost, "/media", nil, &buf, w.FormDataContentType(), auth, &raw); err != nil {
		return nil, err
	}
	return &MediaResult{URL: raw.SourceURL}, nil
}

func (c *RESTClient) PublishPost(ctx context.Context, params PostParams, auth Auth) (*PostResult, error) {
	payload := map[string]any{
		"title":          params.Title,
		"content":        params.Body,
		"status":         string(params.Status),
		"comment_status": string(params.Comments),
		"categories":     params.CategoryIDs,
		"tags":           params.TagIDs,
	}

	// The REST API routes each post type through its own collection;
	// /posts and /pages cover the built-in types.
	path := "/posts"
	if params.PostType == "page" {
		path = "/pages"
	}
	if params.PostURL != "" {
		id, ok := postIDFromURL(params.PostURL)
		if !ok {
			return nil, &Error{Code: "unresolvable_post_url", Message: fmt.Sprintf("cannot derive a post ID from %s", params.PostURL)}
		}
		path += "/" + strconv.Itoa(id)
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	var raw struct {
		ID         int    `json:"id"`
		Link       string `json:"link"`
		Categories []int  `json:"categories"`
	}
	if err := c.do(ctx, http.MethodPost, path, nil, bytes.NewReader(body), "application/json", auth, &raw); err != nil {
		return nil, err
	}
	return &PostResult{
		PostID:      strconv.Itoa(raw.ID),
		URL:         raw.Link,
		CategoryIDs: raw.Categories,
	}, nil
}

var rePostID = regexp.MustCompile(`(?:[?&]p=|/)(\d+)/?$`)

// postIDFromURL extracts the numeric post ID from a canonical post URL,
// accepting both query form (?p=42) and path form (/archives/42).
func postIDFromURL(postURL string) (int, bool) {
	m := rePostID.FindStringSubmatch(postURL)
	if m == nil {
		return 0, false
	}
	id, err := strconv.Atoi(m[1])
	return id, err == nil
}
