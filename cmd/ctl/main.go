// ctl 运维命令：迁移、种子管理员、开通账号
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	_ "go.uber.org/automaxprocs"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	cmd, e := newRootCmd()
	err := cmd.ExecuteContext(ctx)
	e.close()
	stop()
	if err != nil {
		os.Exit(1)
	}
}
