package main

import (
	"errors"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/John-Robertt/override-go/internal/httpapi"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:           "override-go",
	Short:         "Generate mihomo override configs from a proxy node list",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Bind the executing command's flags so file and env values apply to it.
		if err := viper.BindPFlags(cmd.Flags()); err != nil {
			return err
		}
		if err := initConfig(); err != nil {
			return err
		}
		return initLogging(viper.GetString("log-level"))
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "配置文件路径（默认搜索 ./override-go.yaml、$HOME/.override-go、/etc/override-go）")
	rootCmd.PersistentFlags().String("log-level", "info", "日志级别：debug, info, warn, error")

	rootCmd.AddCommand(newConvertCmd(), newServeCmd(), newHealthcheckCmd())
}

func initConfig() error {
	viper.SetEnvPrefix("OVERRIDE")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		return viper.ReadInConfig()
	}

	viper.SetConfigName("override-go")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("$HOME/.override-go")
	viper.AddConfigPath("/etc/override-go/")

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return err
	}
	logrus.Debugln("using config file:", viper.ConfigFileUsed())
	return nil
}

func initLogging(level string) error {
	logLevel, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}
	logrus.SetLevel(logLevel)
	logrus.SetOutput(os.Stderr)
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return nil
}

// reportError logs err with its client-facing fields so CLI failures read
// like HTTP error bodies.
func reportError(err error) {
	_, app := httpapi.AppErrorOf(err)
	fields := logrus.Fields{"code": app.Code, "stage": app.Stage}
	if app.URL != "" {
		fields["url"] = app.URL
	}
	if app.Line > 0 {
		fields["line"] = app.Line
	}
	if app.Snippet != "" {
		fields["snippet"] = app.Snippet
	}
	if app.Hint != "" {
		fields["hint"] = app.Hint
	}
	logrus.WithFields(fields).Error(app.Message)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		reportError(err)
		os.Exit(1)
	}
}
