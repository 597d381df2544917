package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"mercari-cli/internal/items"
	"mercari-cli/internal/logger"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
)

// RequestIDHeader 随每个请求发送，服务端日志可据此关联。
const RequestIDHeader = "X-Request-ID"

// Options 配置 Client。
type Options struct {
	BaseURL string
	// Timeout 为 0 表示不设超时。
	Timeout time.Duration
	Logger  *logger.LogEntry
	// NewRequestID 仅供测试替换。
	NewRequestID func() string
}

// Client 访问商品服务：GET /items、GET /items/{id}、GET /search、POST /items、GET /。
type Client struct {
	http    *resty.Client
	baseURL string
	newID   func() string
	log     *logger.LogEntry
}

// New 构造 Client，BaseURL 为空时返回错误。
func New(opts Options) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if base == "" {
		return nil, errors.New("api: empty base url")
	}
	rc := resty.New()
	rc.SetBaseURL(base)
	rc.SetHeader("Accept", "application/json")
	if opts.Timeout > 0 {
		rc.SetTimeout(opts.Timeout)
	}
	log := opts.Logger
	if log == nil {
		log = logger.Named("api")
	}
	rc.SetLogger(log)
	newID := opts.NewRequestID
	if newID == nil {
		newID = uuid.NewString
	}
	return &Client{http: rc, baseURL: base, newID: newID, log: log}, nil
}

// BaseURL 返回规范化后的服务端地址（无结尾斜杠）。
func (c *Client) BaseURL() string {
	return c.baseURL
}

// FetchItems 获取全部商品，顺序与服务端一致。
func (c *Client) FetchItems(ctx context.Context) (items.Collection, error) {
	var env items.Envelope
	if err := c.getJSON(ctx, "GET /items", "/items", nil, &env); err != nil {
		return nil, err
	}
	return env.Items, nil
}

// SearchItems 调用 GET /search?keyword=，由服务端按名称匹配，响应同为 {"items": [...]}。
func (c *Client) SearchItems(ctx context.Context, keyword string) (items.Collection, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, errors.New("keyword is required")
	}
	var env items.Envelope
	params := map[string]string{"keyword": keyword}
	if err := c.getJSON(ctx, "GET /search", "/search", params, &env); err != nil {
		return nil, err
	}
	return env.Items, nil
}

// FetchItem 获取单个商品。服务端也以 {"items": [...]} 包装单条结果。
func (c *Client) FetchItem(ctx context.Context, id int) (items.Item, error) {
	op := "GET /items/" + strconv.Itoa(id)
	var env items.Envelope
	if err := c.getJSON(ctx, op, "/items/"+strconv.Itoa(id), nil, &env); err != nil {
		return items.Item{}, err
	}
	if len(env.Items) == 0 {
		return items.Item{}, newFetchError(op, "", http.StatusNotFound, errors.New("item not found"))
	}
	return env.Items[0], nil
}

type helloResponse struct {
	Message string `json:"message"`
}

// Hello 调用 GET /，用于连通性检查。
func (c *Client) Hello(ctx context.Context) (string, error) {
	var resp helloResponse
	if err := c.getJSON(ctx, "GET /", "/", nil, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

// AddItemRequest 对应 POST /items 的 multipart 表单。
type AddItemRequest struct {
	Name      string
	Category  string
	ImagePath string
}

func (r AddItemRequest) validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return errors.New("name is required")
	}
	if strings.TrimSpace(r.Category) == "" {
		return errors.New("category is required")
	}
	if strings.TrimSpace(r.ImagePath) == "" {
		return errors.New("image is required")
	}
	return nil
}

type addItemResponse struct {
	Message string `json:"message"`
}

// AddItem 上传新商品，返回服务端消息（如 "item received: Book"）。
func (c *Client) AddItem(ctx context.Context, req AddItemRequest) (string, error) {
	const op = "POST /items"
	if err := req.validate(); err != nil {
		return "", err
	}
	f, err := os.Open(req.ImagePath)
	if err != nil {
		return "", fmt.Errorf("open image: %w", err)
	}
	defer f.Close()

	id := c.newID()
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader(RequestIDHeader, id).
		SetFormData(map[string]string{
			"name":     strings.TrimSpace(req.Name),
			"category": strings.TrimSpace(req.Category),
		}).
		SetFileReader("image", filepath.Base(req.ImagePath), f).
		Post("/items")
	if err != nil {
		return "", newFetchError(op, id, 0, err)
	}
	if resp.IsError() {
		return "", newFetchError(op, id, resp.StatusCode(), errors.New(strings.TrimSpace(resp.String())))
	}
	var out addItemResponse
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return "", newFetchError(op, id, resp.StatusCode(), fmt.Errorf("decode response: %w", err))
	}
	return out.Message, nil
}

// getJSON 发起 GET 并手动解码响应体；服务端未必总是设置 JSON Content-Type。
func (c *Client) getJSON(ctx context.Context, op, path string, params map[string]string, out any) error {
	id := c.newID()
	c.log.WithField("request_id", id).WithField("op", op).Debug("request")
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader(RequestIDHeader, id).
		SetQueryParams(params).
		Get(path)
	if err != nil {
		return newFetchError(op, id, 0, err)
	}
	if resp.IsError() {
		return newFetchError(op, id, resp.StatusCode(), errors.New(strings.TrimSpace(resp.String())))
	}
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return newFetchError(op, id, resp.StatusCode(), fmt.Errorf("decode response: %w", err))
	}
	return nil
}
