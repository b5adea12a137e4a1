// Package agsapi 封装 AGS 缴费后端的 REST 接口，实现 ags 包需要的各个协作方
package agsapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"

	"namogange/pkg/ags"
	"namogange/pkg/logger"
)

// Config 客户端配置
type Config struct {
	BaseURL    string
	Token      string
	Timeout    time.Duration
	RetryCount int
}

// Client 后端 REST 客户端
type Client struct {
	http *resty.Client

	// 操作日志异步发送，Wait 等待全部发送完成
	pending sync.WaitGroup
}

var (
	_ ags.API            = (*Client)(nil)
	_ ags.Allocator      = (*Client)(nil)
	_ ags.BankLister     = (*Client)(nil)
	_ ags.ActivityLogger = (*Client)(nil)
)

// New 创建客户端。只有 GET 请求会重试，新增/修改类请求失败后直接返回。
func New(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}

	client := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout).
		SetHeader("Accept", "application/json").
		SetRetryCount(cfg.RetryCount).
		SetRetryWaitTime(500 * time.Millisecond).
		SetRetryMaxWaitTime(3 * time.Second).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			if r == nil || r.Request == nil || r.Request.Method != http.MethodGet {
				return false
			}
			return err != nil || r.StatusCode() >= http.StatusInternalServerError
		})
	if cfg.Token != "" {
		client.SetAuthToken(cfg.Token)
	}

	return &Client{http: client}
}

// envelope 后端统一响应结构
type envelope struct {
	Status  string          `json:"status"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
}

// ListPayments 获取客户的全部缴费记录
func (c *Client) ListPayments(ctx context.Context, clientID string) ([]ags.Payment, error) {
	var payments []ags.Payment
	req := c.http.R().SetQueryParam("client_id", clientID)
	if err := c.do(ctx, req, http.MethodGet, "/v1/ags-payments", &payments); err != nil {
		return nil, err
	}
	return payments, nil
}

// CreatePayment 新增缴费记录
func (c *Client) CreatePayment(ctx context.Context, payload ags.Payload) (ags.Payment, error) {
	var payment ags.Payment
	req := c.http.R().SetBody(payload)
	if err := c.do(ctx, req, http.MethodPost, "/v1/ags-payments", &payment); err != nil {
		return ags.Payment{}, err
	}
	return payment, nil
}

// UpdatePayment 更新缴费记录，作废也走这个接口
func (c *Client) UpdatePayment(ctx context.Context, id uint64, payload ags.Payload) (ags.Payment, error) {
	var payment ags.Payment
	req := c.http.R().SetBody(payload)
	if err := c.do(ctx, req, http.MethodPut, paymentPath(id), &payment); err != nil {
		return ags.Payment{}, err
	}
	return payment, nil
}

// DeletePayment 删除缴费记录，返回被删除的记录 ID
func (c *Client) DeletePayment(ctx context.Context, id uint64, actingUserID string) (uint64, error) {
	var out struct {
		ID uint64 `json:"id"`
	}
	req := c.http.R().SetQueryParam("user_id", actingUserID)
	if err := c.do(ctx, req, http.MethodDelete, paymentPath(id), &out); err != nil {
		return 0, err
	}
	return out.ID, nil
}

// PreviewRegistrationNo 预览下一个登记号，不占用号码
func (c *Client) PreviewRegistrationNo(ctx context.Context, day ags.SeminarDay) (string, error) {
	var out struct {
		RegistrationNo string `json:"registration_no"`
	}
	req := c.http.R().SetQueryParam("seminar_day", string(day))
	if err := c.do(ctx, req, http.MethodGet, "/v1/ags-payments/registration-no/preview", &out); err != nil {
		return "", err
	}
	return out.RegistrationNo, nil
}

// ListBanks 银行列表
func (c *Client) ListBanks(ctx context.Context) ([]ags.Bank, error) {
	var banks []ags.Bank
	if err := c.do(ctx, c.http.R(), http.MethodGet, "/v1/banks", &banks); err != nil {
		return nil, err
	}
	return banks, nil
}

// LogActivity 异步上报操作日志，失败只记录日志
func (c *Client) LogActivity(ctx context.Context, event ags.ActivityEvent) {
	c.pending.Add(1)
	go func() {
		defer c.pending.Done()

		sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.http.GetClient().Timeout)
		defer cancel()

		req := c.http.R().SetBody(event)
		if err := c.do(sendCtx, req, http.MethodPost, "/v1/activity-logs", nil); err != nil {
			logger.WarnString("AGSAPI", "ActivityLog", fmt.Sprintf("上报失败 %s/%s: %v", event.Module, event.Action, err))
		}
	}()
}

// Wait 等待未完成的操作日志发送结束
func (c *Client) Wait() {
	c.pending.Wait()
}

func (c *Client) do(ctx context.Context, req *resty.Request, method, path string, out interface{}) error {
	start := time.Now()
	resp, err := req.SetContext(ctx).Execute(method, path)
	if err != nil {
		logger.ErrorString("AGSAPI", "Request", fmt.Sprintf("%s %s 请求失败: %v", method, path, err))
		return fmt.Errorf("agsapi: %s %s: %w", method, path, err)
	}

	logger.DebugString("AGSAPI", "Response", fmt.Sprintf("%s %s 状态:%d 耗时:%s",
		method, path, resp.StatusCode(), time.Since(start)))

	var env envelope
	decodeErr := json.Unmarshal(resp.Body(), &env)

	if resp.IsError() || env.Status == "error" {
		apiErr := &APIError{Status: resp.StatusCode()}
		if decodeErr == nil {
			apiErr.Message = env.Message
			if apiErr.Message == "" {
				apiErr.Message = env.Error
			}
		}
		return apiErr
	}
	if out == nil || len(resp.Body()) == 0 {
		return nil
	}
	if decodeErr != nil {
		return fmt.Errorf("agsapi: decode %s %s: %w", method, path, decodeErr)
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("agsapi: decode %s %s data: %w", method, path, err)
	}
	return nil
}

func paymentPath(id uint64) string {
	return "/v1/ags-payments/" + strconv.FormatUint(id, 10)
}
