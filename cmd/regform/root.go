package main

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/goliatone/go-regform"
	"github.com/goliatone/go-regform/pkg/config"
	"github.com/goliatone/go-regform/pkg/form"
	"github.com/goliatone/go-regform/pkg/renderers/tui"
)

// app carries state shared by every subcommand.
type app struct {
	cfgFile string
	v       *viper.Viper
	cfg     config.Config
	logger  *slog.Logger

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	// newForm and driver are swapped in tests.
	newForm func(cfg config.Config, logger *slog.Logger) *form.Form
	driver  tui.PromptDriver

	bindings map[*cobra.Command][]flagBinding
}

// flagBinding maps a command flag onto a config key. Bindings are applied
// only for the command being executed so sibling commands may share keys.
type flagBinding struct {
	flag string
	key  string
}

func newRootCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	return newApp(stdin, stdout, stderr).command()
}

func newApp(stdin io.Reader, stdout, stderr io.Writer) *app {
	return &app{
		v:        config.NewViper(),
		stdin:    stdin,
		stdout:   stdout,
		stderr:   stderr,
		newForm:  defaultForm,
		bindings: make(map[*cobra.Command][]flagBinding),
	}
}

func (a *app) command() *cobra.Command {
	root := &cobra.Command{
		Use:           "regform",
		Short:         "Registration form with validation and remote submission",
		Long:          "regform drives a four-field registration form from the terminal or a browser, validates every change and submits the result as JSON.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
	}
	root.SetIn(a.stdin)
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	flags := root.PersistentFlags()
	flags.StringVarP(&a.cfgFile, "config", "c", "", "config file (YAML or JSON)")
	flags.String("endpoint", "", "registration endpoint URL")
	flags.Duration("timeout", 0, "submission timeout")
	flags.String("log-level", "", "log level (debug, info, warn, error)")
	_ = a.v.BindPFlag("endpoint", flags.Lookup("endpoint"))
	_ = a.v.BindPFlag("timeout", flags.Lookup("timeout"))
	_ = a.v.BindPFlag("log_level", flags.Lookup("log-level"))

	root.AddCommand(
		newTUICmd(a),
		newServeCmd(a),
		newRegistrarCmd(a),
		newRenderCmd(a),
		newSchemaCmd(a),
		newValidateCmd(a),
		newConfigCmd(a),
	)
	return root
}

func (a *app) bind(cmd *cobra.Command, flag, key string) {
	a.bindings[cmd] = append(a.bindings[cmd], flagBinding{flag: flag, key: key})
}

func (a *app) init(cmd *cobra.Command) error {
	for _, b := range a.bindings[cmd] {
		if err := a.v.BindPFlag(b.key, cmd.Flags().Lookup(b.flag)); err != nil {
			return err
		}
	}
	cfg, err := config.Read(a.v, a.cfgFile)
	if err != nil {
		return err
	}
	level, _ := cfg.Level()
	a.cfg = cfg
	a.logger = slog.New(slog.NewTextHandler(a.stderr, &slog.HandlerOptions{Level: level}))
	a.logger.Debug("config loaded", "file", a.v.ConfigFileUsed(), "endpoint", cfg.Endpoint)
	return nil
}

func (a *app) form() *form.Form {
	return a.newForm(a.cfg, a.logger)
}

func defaultForm(cfg config.Config, logger *slog.Logger) *form.Form {
	return regform.NewForm(regform.Settings{
		Endpoint: cfg.Endpoint,
		Timeout:  cfg.Timeout,
		Logger:   logger,
	})
}
