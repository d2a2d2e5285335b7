package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/John-Robertt/override-go/internal/fetch"
	"github.com/John-Robertt/override-go/internal/httpapi"
	"github.com/John-Robertt/override-go/internal/model"
	"github.com/John-Robertt/override-go/internal/render"
	"github.com/John-Robertt/override-go/internal/source"
)

type convertOptions struct {
	Input        string
	Output       string
	URLs         []string
	FetchTimeout time.Duration
	Flags        model.Flags
}

func newConvertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert a proxies document (file, stdin or subscription URLs) into a config",
		Example: `  override-go convert -i nodes.yaml -o config.yaml --landing --fakeip
  override-go convert --url https://example.com/sub --url https://example.org/sub --full`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd.Context(), convertOptionsFromViper(), cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	f := cmd.Flags()
	f.StringP("input", "i", "", "proxies 文档路径（YAML/JSON），默认读取 stdin")
	f.StringP("output", "o", "", "输出文件路径，默认写到 stdout")
	f.StringSlice("url", nil, "订阅 URL（可重复），与 --input 互斥")
	f.Duration("fetch-timeout", 15*time.Second, "单次远程拉取的超时")
	f.Bool("loadbalance", false, "地区组使用 load-balance 代替 url-test")
	f.Bool("landing", false, "生成前置代理/落地节点组")
	f.Bool("ipv6", false, "启用 IPv6")
	f.Bool("full", false, "输出完整的内核运行参数")
	f.Bool("keepalive", false, "启用 TCP keep-alive")
	f.Bool("fakeip", false, "DNS 使用 fake-ip 模式")
	f.Bool("global", false, "追加 GLOBAL 策略组")
	cmd.MarkFlagsMutuallyExclusive("input", "url")
	return cmd
}

func convertOptionsFromViper() convertOptions {
	args := make(map[string]any, len(model.FlagKeys))
	for _, key := range model.FlagKeys {
		args[key] = viper.GetBool(key)
	}
	return convertOptions{
		Input:        viper.GetString("input"),
		Output:       viper.GetString("output"),
		URLs:         viper.GetStringSlice("url"),
		FetchTimeout: viper.GetDuration("fetch-timeout"),
		Flags:        model.FlagsFromMap(args),
	}
}

func runConvert(ctx context.Context, opt convertOptions, stdin io.Reader, stdout io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	proxies, err := loadProxies(ctx, opt, stdin)
	if err != nil {
		return err
	}
	logrus.WithField("proxies", len(proxies)).Debug("proxies loaded")

	out, err := render.Convert(proxies, opt.Flags)
	if err != nil {
		return err
	}

	if opt.Output == "" || opt.Output == "-" {
		_, err = stdout.Write(out)
		return err
	}
	if err := os.WriteFile(opt.Output, out, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	logrus.WithFields(logrus.Fields{"path": opt.Output, "bytes": len(out)}).Info("config written")
	return nil
}

func loadProxies(ctx context.Context, opt convertOptions, stdin io.Reader) ([]model.Proxy, error) {
	if len(opt.URLs) > 0 {
		return httpapi.FetchSubs(ctx, opt.URLs, fetch.Options{Timeout: opt.FetchTimeout})
	}

	name := opt.Input
	var (
		data []byte
		err  error
	)
	if name == "" || name == "-" {
		name = "stdin"
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(name)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return source.ParseProxiesYAML(name, string(data))
}
