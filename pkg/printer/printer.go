// Package printer 使用无头 Chrome 将打印页渲染为 PDF
package printer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"namogange/pkg/logger"
)

// ErrEmptyHTML 打印内容为空
var ErrEmptyHTML = errors.New("printer: html is empty")

const (
	defaultTimeout = 30 * time.Second
	// A4，单位英寸
	a4Width  = 8.27
	a4Height = 11.69
	margin   = 0.4
)

// Config 渲染配置
type Config struct {
	Timeout time.Duration
	// RemoteURL 远程 Chrome 的调试地址，为空时启动本地浏览器
	RemoteURL string
	// NoSandbox 以 root 或在容器中运行时需要
	NoSandbox bool
	Landscape bool
}

// Renderer PDF 渲染器，Close 后不可再用
type Renderer struct {
	config      Config
	allocCtx    context.Context
	allocCancel context.CancelFunc
}

// New 创建渲染器，浏览器在第一次渲染时才启动
func New(config Config) *Renderer {
	if config.Timeout <= 0 {
		config.Timeout = defaultTimeout
	}

	r := &Renderer{config: config}
	if config.RemoteURL != "" {
		r.allocCtx, r.allocCancel = chromedp.NewRemoteAllocator(context.Background(), config.RemoteURL)
		return r
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("font-render-hinting", "none"),
	)
	if config.NoSandbox {
		opts = append(opts, chromedp.NoSandbox)
	}
	r.allocCtx, r.allocCancel = chromedp.NewExecAllocator(context.Background(), opts...)
	return r
}

// PDF 渲染 HTML 为 PDF
func (r *Renderer) PDF(ctx context.Context, html string) ([]byte, error) {
	if strings.TrimSpace(html) == "" {
		return nil, ErrEmptyHTML
	}
	start := time.Now()

	browserCtx, browserCancel := chromedp.NewContext(r.allocCtx,
		chromedp.WithLogf(func(format string, args ...interface{}) {
			logger.DebugString("Printer", "Chrome", fmt.Sprintf(format, args...))
		}),
	)
	defer browserCancel()

	runCtx, cancel := context.WithTimeout(browserCtx, r.config.Timeout)
	defer cancel()
	// 调用方取消时同步取消渲染
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	var pdf []byte
	err := chromedp.Run(runCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, html).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			data, _, err := page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(a4Width).
				WithPaperHeight(a4Height).
				WithMarginTop(margin).
				WithMarginBottom(margin).
				WithMarginLeft(margin).
				WithMarginRight(margin).
				WithLandscape(r.config.Landscape).
				Do(ctx)
			pdf = data
			return err
		}),
	)
	if err != nil {
		if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("printer: render timed out after %s: %w", r.config.Timeout, err)
		}
		return nil, fmt.Errorf("printer: render: %w", err)
	}

	logger.DebugString("Printer", "PDF", fmt.Sprintf("%d bytes in %s", len(pdf), time.Since(start)))
	return pdf, nil
}

// Close 关闭浏览器
func (r *Renderer) Close() {
	if r.allocCancel != nil {
		r.allocCancel()
	}
}
