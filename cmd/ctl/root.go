package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"go-gin-gorm-library/internal/bootstrap"
	"go-gin-gorm-library/internal/core/config"
)

// env 每个子命令共享的配置与日志
type env struct {
	cfgPath string
	cfg     *config.Config
	log     *zap.Logger
	cleanup func()
}

// close 在 Execute 之后调用；子命令出错时 PostRun 不会执行
func (e *env) close() {
	if e.cleanup != nil {
		e.cleanup()
		e.cleanup = nil
	}
}

func newRootCmd() (*cobra.Command, *env) {
	e := &env{}
	cmd := &cobra.Command{
		Use:          "ctl",
		Short:        "Library service maintenance commands",
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := config.Read(e.cfgPath)
			if err != nil {
				return err
			}
			e.cfg = cfg
			e.log, e.cleanup = bootstrap.NewLogger(cfg)
			return nil
		},
	}
	cmd.PersistentFlags().StringVarP(&e.cfgPath, "config", "c", "", "config file (default $CONFIG_PATH or ./configs/config.local.yaml)")

	cmd.AddCommand(migrateCmd(e), seedAdminCmd(e), createAccountCmd(e))
	return cmd, e
}

// withApp 组装完整依赖后执行 fn
func (e *env) withApp(ctx context.Context, fn func(a *bootstrap.App) error) error {
	a, err := bootstrap.New(ctx, e.cfg, e.log)
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(a)
}

// readPassword 标准输入是终端时不回显读取
func readPassword(cmd *cobra.Command, prompt string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", fmt.Errorf("password required: pass --password or run in a terminal")
	}
	fmt.Fprint(cmd.OutOrStdout(), prompt)
	b, err := term.ReadPassword(fd)
	fmt.Fprintln(cmd.OutOrStdout())
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimSpace(string(b)), nil
}
