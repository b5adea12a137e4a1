package main

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"namogange/pkg/ags"
	"namogange/pkg/ags/view"
	"namogange/pkg/agsapi"
	"namogange/pkg/archive"
	"namogange/pkg/config"
	"namogange/pkg/printer"
	"namogange/pkg/session"
)

var errUsage = errors.New("usage")

// reported 已经通过 Notifier 提示过的错误，不再重复输出
type reported struct{ err error }

func (r reported) Error() string { return r.err.Error() }
func (r reported) Unwrap() error { return r.err }

type console struct {
	out       io.Writer
	in        io.Reader
	api       *agsapi.Client
	persisted *session.Persisted
	session   session.Provider
	clientID  string
	loc       *time.Location

	stdin *bufio.Reader
}

func (c *console) dispatch(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "login":
		return c.login(args)
	case "logout":
		return c.persisted.Remove()
	case "banks":
		return c.banks(ctx)
	}

	if c.clientID == "" {
		return fmt.Errorf("-client is required for %q: %w", cmd, errUsage)
	}
	switch cmd {
	case "list":
		return c.list(ctx)
	case "print":
		return c.print(ctx, args)
	case "create":
		return c.submit(ctx, args, false)
	case "edit":
		return c.submit(ctx, args, true)
	case "cancel", "delete":
		return c.remove(ctx, cmd, args)
	}
	return errUsage
}

func (c *console) controller(autoYes bool) *ags.Controller {
	return ags.NewController(c.clientID, ags.Dependencies{
		API:       c.api,
		Allocator: c.api,
		Banks:     c.api,
		Session:   c.session,
		Activity:  c.api,
		Notifier:  writerNotifier{w: c.out},
		Confirmer: c.confirmer(autoYes),
	})
}

func (c *console) login(args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	id := fs.String("id", "", "操作人 ID")
	name := fs.String("name", "", "操作人姓名")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	if *id == "" {
		return fmt.Errorf("-id is required: %w", errUsage)
	}
	if err := c.persisted.Save(ags.User{ID: *id, DisplayName: *name}); err != nil {
		return err
	}
	fmt.Fprintf(c.out, "logged in as %s\n", *id)
	return nil
}

func (c *console) banks(ctx context.Context) error {
	banks, err := c.api.ListBanks(ctx)
	if err != nil {
		return errors.New(ags.ErrorMessage(err))
	}
	for _, b := range banks {
		fmt.Fprintln(c.out, b.Name)
	}
	return nil
}

func (c *console) list(ctx context.Context) error {
	ctl := c.controller(false)
	if err := ctl.Load(ctx); err != nil {
		return reported{err}
	}
	presenter := view.NewPresenter(c.loc)

	fmt.Fprintln(c.out, "Active Payments")
	if err := view.RenderActiveText(c.out, presenter.Active(ctl.Store().Active())); err != nil {
		return err
	}
	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, "Cancelled Payments")
	return view.RenderCancelledText(c.out, presenter.Cancelled(ctl.Store().Cancelled()))
}

func (c *console) print(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("print", flag.ContinueOnError)
	format := fs.String("format", "text", "text、html 或 pdf")
	out := fs.String("out", "", "输出文件，为空时写到标准输出")
	upload := fs.Bool("upload", false, "pdf 上传到对象存储并输出下载链接")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	ctl := c.controller(false)
	if err := ctl.Load(ctx); err != nil {
		return reported{err}
	}
	table := view.NewPresenter(c.loc).Active(ctl.Store().Active())
	title := fmt.Sprintf("AGS Payments - %s", c.clientID)

	var buf bytes.Buffer
	switch *format {
	case "text":
		if err := view.RenderActiveText(&buf, table); err != nil {
			return err
		}
	case "html":
		if err := view.RenderActiveHTML(&buf, title, table); err != nil {
			return err
		}
	case "pdf":
		pdf, err := c.renderPDF(ctx, title, table)
		if err != nil {
			return err
		}
		buf.Write(pdf)
	default:
		return fmt.Errorf("unknown format %q: %w", *format, errUsage)
	}

	if *upload {
		if *format != "pdf" {
			return fmt.Errorf("-upload needs -format pdf: %w", errUsage)
		}
		return c.uploadPDF(ctx, buf.Bytes())
	}
	if *out == "" {
		_, err := c.out.Write(buf.Bytes())
		return err
	}
	return os.WriteFile(*out, buf.Bytes(), 0o644)
}

func (c *console) renderPDF(ctx context.Context, title string, table view.ActiveTable) ([]byte, error) {
	var html bytes.Buffer
	if err := view.RenderActiveHTML(&html, title, table); err != nil {
		return nil, err
	}
	r := printer.New(printer.Config{
		RemoteURL: config.GetString("printer.remote_url"),
		Timeout:   time.Duration(config.GetInt("printer.timeout", 30)) * time.Second,
		NoSandbox: config.GetBool("printer.no_sandbox"),
		Landscape: config.GetBool("printer.landscape"),
	})
	defer r.Close()
	return r.PDF(ctx, html.String())
}

func (c *console) uploadPDF(ctx context.Context, pdf []byte) error {
	store, err := archive.New(ctx, archive.Config{
		Endpoint:     config.GetString("archive.endpoint"),
		Region:       config.GetString("archive.region"),
		Bucket:       config.GetString("archive.bucket"),
		AccessKey:    config.GetString("archive.access_key"),
		SecretKey:    config.GetString("archive.secret_key"),
		UsePathStyle: config.GetBool("archive.use_path_style"),
		LinkExpiry:   time.Duration(config.GetInt("archive.link_expiry_hours", 24)) * time.Hour,
	})
	if err != nil {
		return err
	}
	url, err := store.Put(ctx, archive.Key(c.clientID, time.Now().In(c.loc), "pdf"), pdf, "application/pdf")
	if err != nil {
		return err
	}
	fmt.Fprintln(c.out, url)
	return nil
}

func (c *console) submit(ctx context.Context, args []string, editing bool) error {
	fs := flag.NewFlagSet("form", flag.ContinueOnError)
	id := fs.Uint64("id", 0, "编辑的记录 ID")
	form := bindFormFlags(fs)
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	if editing && *id == 0 {
		return fmt.Errorf("-id is required: %w", errUsage)
	}

	ctl := c.controller(false)
	if err := ctl.Load(ctx); err != nil {
		return reported{err}
	}
	if editing {
		if err := ctl.Edit(*id); err != nil {
			if errors.Is(err, ags.ErrNotActive) {
				return reported{err}
			}
			return err
		}
	}
	if err := form.apply(ctx, fs, ctl); err != nil {
		return reported{err}
	}
	if !editing {
		fmt.Fprintf(c.out, "registration no: %s\n", ctl.PreviewRegistrationNo())
	}
	if err := ctl.Submit(ctx); err != nil {
		return reported{err}
	}
	return nil
}

func (c *console) remove(ctx context.Context, cmd string, args []string) error {
	fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
	id := fs.Uint64("id", 0, "记录 ID")
	yes := fs.Bool("yes", false, "跳过确认")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	if *id == 0 {
		return fmt.Errorf("-id is required: %w", errUsage)
	}

	ctl := c.controller(*yes)
	if err := ctl.Load(ctx); err != nil {
		return reported{err}
	}
	var err error
	if cmd == "cancel" {
		err = ctl.CancelPayment(ctx, *id)
	} else {
		err = ctl.DeletePayment(ctx, *id)
	}
	switch {
	case err == nil, errors.Is(err, ags.ErrConfirmationDeclined):
		return err
	case errors.Is(err, ags.ErrNotFound):
		return fmt.Errorf("payment %d not found", *id)
	}
	return reported{err}
}

func (c *console) confirmer(autoYes bool) ags.Confirmer {
	if autoYes {
		return ags.ConfirmerFunc(func(context.Context, string) bool { return true })
	}
	if c.stdin == nil {
		c.stdin = bufio.NewReader(c.in)
	}
	return promptConfirmer{in: c.stdin, out: c.out}
}

// writerNotifier 把提示输出到终端
type writerNotifier struct {
	w io.Writer
}

func (n writerNotifier) Notify(kind ags.NotifyKind, message string) {
	fmt.Fprintf(n.w, "[%s] %s\n", kind, message)
}

// promptConfirmer 在终端询问 y/N，读不到输入按拒绝处理
type promptConfirmer struct {
	in  *bufio.Reader
	out io.Writer
}

func (p promptConfirmer) Confirm(ctx context.Context, message string) bool {
	if ctx.Err() != nil {
		return false
	}
	fmt.Fprintf(p.out, "%s [y/N]: ", message)
	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}
