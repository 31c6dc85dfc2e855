package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/zhubert/chatsh/internal/clipboard"
	"github.com/zhubert/chatsh/internal/config"
	"github.com/zhubert/chatsh/internal/converter"
	"github.com/zhubert/chatsh/internal/converter/openai"
	"github.com/zhubert/chatsh/internal/errors"
	"github.com/zhubert/chatsh/internal/executor"
	"github.com/zhubert/chatsh/internal/logger"
	"github.com/zhubert/chatsh/internal/notification"
	"github.com/zhubert/chatsh/internal/session"
	"github.com/zhubert/chatsh/internal/ui"
)

var (
	debugMode             bool
	quietMode             bool
	accessibleMode        bool
	version, commit, date string
)

// SetVersionInfo sets version information from ldflags
func SetVersionInfo(v, c, d string) {
	version, commit, date = v, c, d
}

var rootCmd = &cobra.Command{
	Use:   "chatsh",
	Short: "Convert plain-language requests into shell commands",
	Long: `chatsh asks a chat-completion model to turn what you type into a shell
command, explains each part of it, and lets you run it, edit it first,
ask another question or cancel.

OPENAI_KEY must be set. Settings can also come from ~/.chatsh/config.json,
the CHATSH_* environment variables, or the flags below (highest precedence).`,
	Args:          cobra.NoArgs,
	RunE:          runSession,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", true, "Enable debug logging (on by default)")
	rootCmd.PersistentFlags().BoolVarP(&quietMode, "quiet", "q", false, "Reduce logging to info level only")

	addSessionFlags(rootCmd.Flags())
	rootCmd.Flags().BoolVar(&accessibleMode, "accessible", false, "Use plain prompts without cursor movement")
}

// addSessionFlags defines the flags that override config values.
func addSessionFlags(flags *pflag.FlagSet) {
	flags.StringP("model", "m", "", "Model id (default "+openai.DefaultModel+")")
	flags.String("base-url", "", "Chat-completions API base URL (default "+openai.DefaultBaseURL+")")
	flags.String("shell", "", "Shell used to run commands (default "+executor.DefaultShell+")")
	flags.String("theme", "", "Color theme: "+themeList())
	flags.Bool("notify", false, "Send a desktop notification when a command finishes")
	flags.Bool("copy", false, "Copy each produced command to the clipboard")
}

func initConfig() {
	if quietMode {
		logger.SetDebug(false)
	} else if debugMode {
		logger.SetDebug(true)
	}
}

// Execute runs the root command
func Execute() error {
	// Set version dynamically
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(versionTemplate())
	return rootCmd.Execute()
}

func versionTemplate() string {
	if commit != "none" && commit != "" {
		return fmt.Sprintf("chatsh %s\n  commit: %s\n  built:  %s\n", version, commit, date)
	}
	return fmt.Sprintf("chatsh %s\n", version)
}

func themeList() string {
	names := make([]string, 0, len(ui.ThemeNames()))
	for _, n := range ui.ThemeNames() {
		names = append(names, string(n))
	}
	return strings.Join(names, ", ")
}

// overridesFromFlags collects only the flags the user actually set.
func overridesFromFlags(flags *pflag.FlagSet) config.Overrides {
	var o config.Overrides
	str := func(name string) *string {
		if !flags.Changed(name) {
			return nil
		}
		v, _ := flags.GetString(name)
		return &v
	}
	boolean := func(name string) *bool {
		if !flags.Changed(name) {
			return nil
		}
		v, _ := flags.GetBool(name)
		return &v
	}
	o.Model = str("model")
	o.BaseURL = str("base-url")
	o.Shell = str("shell")
	o.Theme = str("theme")
	o.Notify = boolean("notify")
	o.Copy = boolean("copy")
	return o
}

// loadConfig resolves the configuration and checks it can start a session.
func loadConfig(flags *pflag.FlagSet) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	cfg.Apply(overridesFromFlags(flags))
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Theme != "" && !ui.IsTheme(cfg.Theme) {
		return nil, errors.ConfigInvalid(fmt.Sprintf("unknown theme %q (available: %s)", cfg.Theme, themeList()))
	}
	return cfg, nil
}

// terminalWidth returns the width of w when it is a terminal.
func terminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok {
		return ui.DefaultWrapWidth
	}
	width, _, err := term.GetSize(f.Fd())
	if err != nil || width <= 0 {
		return ui.DefaultWrapWidth
	}
	return width
}

// sessionHooks builds the optional clipboard and notification callbacks.
func sessionHooks(cfg *config.Config, console *ui.Console) []session.Option {
	var opts []session.Option
	if cfg.Copy {
		opts = append(opts, session.WithOnConverted(func(d converter.Detail) {
			if err := clipboard.WriteText(d.Command()); err != nil {
				logger.Warn("Clipboard: copy failed: %v", err)
				return
			}
			console.ShowHint("Command copied to clipboard.")
		}))
	}
	if cfg.Notify {
		opts = append(opts, session.WithOnExecuted(func(command string, err error) {
			_ = notification.CommandFinished(command, err)
		}))
	}
	return opts
}

func runSession(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd.Flags())
	if err != nil {
		return err
	}

	if err := logger.Init(logger.DefaultLogPath); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	// Ensure logger is closed on exit
	defer logger.Close()

	ui.SetThemeByName(cfg.Theme)

	conv := openai.New(openai.Options{
		APIKey:  cfg.APIKey,
		BaseURL: cfg.BaseURL,
		Model:   cfg.Model,
	})
	if !openai.Known(cfg.Model) {
		logger.Warn("Model %q is not registered; using the %s reply schema", cfg.Model, conv.Variant().Schema)
	}

	out := cmd.OutOrStdout()
	console := ui.NewConsole(
		ui.WithOutput(out),
		ui.WithWidth(terminalWidth(out)),
		ui.WithAccessible(accessibleMode || !term.IsTerminal(os.Stdin.Fd())),
	)

	if cfg.Copy {
		if err := clipboard.Init(); err != nil {
			console.ShowHint(fmt.Sprintf("Clipboard unavailable, --copy disabled: %v", err))
			cfg.Copy = false
		}
	}

	ctrl := session.New(conv, executor.NewShellExecutor(cfg.Shell), console, sessionHooks(cfg, console)...)
	logger.Info("Session %s starting: config=%s model=%s shell=%s", ctrl.ID(), cfg.Path(), cfg.Model, cfg.Shell)

	if err := ctrl.Run(cmd.Context()); err != nil {
		return fmt.Errorf("terminal error: %w", err)
	}
	return nil
}
