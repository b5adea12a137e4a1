// agsconsole 是 AGS 缴费登记的命令行前台，通过 REST 接口操作后端
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	btsConfig "namogange/config"
	"namogange/pkg/ags"
	"namogange/pkg/agsapi"
	"namogange/pkg/app"
	"namogange/pkg/config"
	"namogange/pkg/session"
)

func init() {
	btsConfig.Initialize()
}

const usage = `usage: agsconsole [-env name] [-client id] [-user id -name display] <command> [flags]

commands:
  login   -id <user id> -name <display name>   保存当前操作人
  logout                                       清除操作人
  banks                                        银行列表
  list                                         有效记录和作废记录
  print   [-format text|pdf|html] [-out file] [-upload]
  create  <form flags>                         新增缴费
  edit    -id <payment id> <form flags>        修改缴费
  cancel  -id <payment id> [-yes]              作废
  delete  -id <payment id> [-yes]              删除
`

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	global := flag.NewFlagSet("agsconsole", flag.ContinueOnError)
	global.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	env := global.String("env", "", "加载 .env.<name> 文件")
	clientID := global.String("client", "", "客户 ID")
	userID := global.String("user", "", "本次运行的操作人 ID，不写入会话文件")
	userName := global.String("name", "", "操作人姓名")
	if err := global.Parse(args); err != nil {
		return 2
	}
	if global.NArg() == 0 {
		global.Usage()
		return 2
	}

	config.InitConfig(*env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := agsapi.New(agsapi.Config{
		BaseURL:    config.GetString("agsapi.base_url"),
		Token:      config.GetString("agsapi.token"),
		Timeout:    time.Duration(config.GetInt("agsapi.timeout", 10)) * time.Second,
		RetryCount: config.GetInt("agsapi.retry_count", 2),
	})
	// 退出前等待操作日志发送完成
	defer client.Wait()

	persisted := session.NewPersisted(config.GetString("session.file"))
	live := session.NewLive()
	if *userID != "" {
		live.SetUser(ags.User{ID: *userID, DisplayName: *userName})
	}

	c := &console{
		out:       os.Stdout,
		in:        os.Stdin,
		api:       client,
		persisted: persisted,
		session:   session.Chain{live, persisted},
		clientID:  *clientID,
		loc:       app.Location(),
	}

	cmd, rest := global.Arg(0), global.Args()[1:]
	err := c.dispatch(ctx, cmd, rest)
	switch {
	case err == nil:
		return 0
	case errors.Is(err, errUsage):
		global.Usage()
		return 2
	case errors.Is(err, ags.ErrConfirmationDeclined):
		return 1
	case errors.As(err, new(reported)):
		// 已经输出过提示
		return 1
	default:
		fmt.Fprintln(os.Stderr, "error:", err)
		return 1
	}
}
