package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/John-Robertt/override-go/internal/httpapi"
)

const defaultListen = "127.0.0.1:25500"

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe()
		},
	}

	f := cmd.Flags()
	f.String("listen", defaultListen, "HTTP 监听地址")
	f.Duration("read-header-timeout", 5*time.Second, "HTTP ReadHeaderTimeout（请求头读取超时）")
	f.Duration("convert-timeout", 60*time.Second, "单次转换的总超时（包含远程拉取）")
	f.Duration("fetch-timeout", 15*time.Second, "单次远程拉取的超时（每个 URL 一次请求）")
	f.Duration("shutdown-timeout", 10*time.Second, "收到退出信号后的优雅退出等待时间")
	f.Int64("max-body-bytes", 5*1024*1024, "POST /api/convert 请求体上限")
	f.Int("max-subs", 8, "GET /sub 允许的 url 参数个数上限")
	return cmd
}

func runServe() error {
	listen := viper.GetString("listen")
	srv := &http.Server{
		Addr: listen,
		Handler: httpapi.NewHandlerWithOptions(httpapi.Options{
			ConvertTimeout: viper.GetDuration("convert-timeout"),
			FetchTimeout:   viper.GetDuration("fetch-timeout"),
			MaxBodyBytes:   viper.GetInt64("max-body-bytes"),
			MaxSubs:        viper.GetInt("max-subs"),
			Logger:         logrus.StandardLogger(),
		}),
		ReadHeaderTimeout: viper.GetDuration("read-header-timeout"),
	}

	logrus.Infof("listening on http://%s", listen)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logrus.Info("shutdown signal received")

		shCtx, cancel := context.WithTimeout(context.Background(), viper.GetDuration("shutdown-timeout"))
		defer cancel()
		if err := srv.Shutdown(shCtx); err != nil {
			logrus.WithError(err).Warn("graceful shutdown failed")
			_ = srv.Close()
		}

		if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

// healthcheck exists for container HEALTHCHECK directives, where no curl is
// available in the image.
func newHealthcheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "healthcheck",
		Short: "Probe /healthz of a running server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := deriveHealthzURL(viper.GetString("listen"))
			if err != nil {
				return err
			}
			return runHealthcheck(u, viper.GetDuration("timeout"))
		},
	}
	cmd.Flags().String("listen", defaultListen, "服务监听地址")
	cmd.Flags().Duration("timeout", 2*time.Second, "探测超时")
	return cmd
}

// deriveHealthzURL turns a listen address into a loopback URL. Wildcard hosts
// are probed via 127.0.0.1.
func deriveHealthzURL(listen string) (string, error) {
	s := strings.TrimSpace(listen)
	if s == "" {
		return "", errors.New("empty listen address")
	}
	s = strings.TrimPrefix(s, "http://")
	s = strings.TrimSuffix(s, "/")
	if !strings.Contains(s, ":") {
		s = ":" + s
	}

	host, port, err := net.SplitHostPort(s)
	if err != nil {
		return "", fmt.Errorf("invalid listen address %q: %w", listen, err)
	}
	if port == "" {
		return "", fmt.Errorf("invalid listen address %q: missing port", listen)
	}
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "127.0.0.1"
	}
	return "http://" + net.JoinHostPort(host, port) + "/healthz", nil
}

func runHealthcheck(u string, timeout time.Duration) error {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(u)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return nil
}
