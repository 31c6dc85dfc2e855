package cmd

import (
	"testing"

	"github.com/spf13/pflag"

	"github.com/zhubert/chatsh/internal/config"
	"github.com/zhubert/chatsh/internal/errors"
)

func TestDebugFlagDefaultTrue(t *testing.T) {
	flag := rootCmd.PersistentFlags().Lookup("debug")
	if flag == nil {
		t.Fatal("--debug flag not found")
	}
	if flag.DefValue != "true" {
		t.Errorf("--debug default = %q, want %q", flag.DefValue, "true")
	}
}

func TestQuietFlagExists(t *testing.T) {
	flag := rootCmd.PersistentFlags().Lookup("quiet")
	if flag == nil {
		t.Fatal("--quiet flag not found")
	}
	if flag.DefValue != "false" {
		t.Errorf("--quiet default = %q, want %q", flag.DefValue, "false")
	}
	if flag.Shorthand != "q" {
		t.Errorf("--quiet shorthand = %q, want %q", flag.Shorthand, "q")
	}
}

func TestSessionFlagsExist(t *testing.T) {
	for _, name := range []string{"model", "base-url", "shell", "theme", "notify", "copy", "accessible"} {
		if rootCmd.Flags().Lookup(name) == nil {
			t.Errorf("--%s flag not found", name)
		}
	}
	if f := rootCmd.Flags().Lookup("model"); f != nil && f.Shorthand != "m" {
		t.Errorf("--model shorthand = %q, want %q", f.Shorthand, "m")
	}
}

func TestSubcommands(t *testing.T) {
	for _, name := range []string{"clean", "models"} {
		found := false
		for _, c := range rootCmd.Commands() {
			if c.Name() == name {
				found = true
			}
		}
		if !found {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestInitConfig_DefaultDebugEnabled(t *testing.T) {
	// Save and restore package state
	origDebug, origQuiet := debugMode, quietMode
	defer func() { debugMode, quietMode = origDebug, origQuiet }()

	debugMode = true
	quietMode = false

	// Should not panic
	initConfig()
}

func TestInitConfig_QuietOverridesDebug(t *testing.T) {
	origDebug, origQuiet := debugMode, quietMode
	defer func() { debugMode, quietMode = origDebug, origQuiet }()

	debugMode = true
	quietMode = true

	// Should not panic - quiet should take precedence
	initConfig()
}

func TestVersionTemplate(t *testing.T) {
	origVersion, origCommit, origDate := version, commit, date
	defer func() { version, commit, date = origVersion, origCommit, origDate }()

	SetVersionInfo("1.2.3", "none", "unknown")
	if got := versionTemplate(); got != "chatsh 1.2.3\n" {
		t.Errorf("versionTemplate() = %q", got)
	}

	SetVersionInfo("1.2.3", "abc123", "2026-01-01")
	want := "chatsh 1.2.3\n  commit: abc123\n  built:  2026-01-01\n"
	if got := versionTemplate(); got != want {
		t.Errorf("versionTemplate() = %q, want %q", got, want)
	}
}

func newSessionFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	flags := pflag.NewFlagSet("chatsh", pflag.ContinueOnError)
	addSessionFlags(flags)
	if err := flags.Parse(args); err != nil {
		t.Fatalf("parse %v: %v", args, err)
	}
	return flags
}

func TestOverridesFromFlags(t *testing.T) {
	o := overridesFromFlags(newSessionFlags(t, "-m", "gpt-4-32k", "--notify", "--theme", "nord"))

	if o.Model == nil || *o.Model != "gpt-4-32k" {
		t.Errorf("Model = %v, want gpt-4-32k", o.Model)
	}
	if o.Theme == nil || *o.Theme != "nord" {
		t.Errorf("Theme = %v, want nord", o.Theme)
	}
	if o.Notify == nil || !*o.Notify {
		t.Errorf("Notify = %v, want true", o.Notify)
	}
	if o.Shell != nil || o.BaseURL != nil || o.Copy != nil {
		t.Error("unset flags must not produce overrides")
	}
}

func isolateConfig(t *testing.T) {
	t.Helper()
	t.Setenv(config.EnvConfig, t.TempDir()+"/config.json")
	for _, name := range []string{config.EnvAPIKey, config.EnvBaseURL, config.EnvModel, config.EnvShell} {
		t.Setenv(name, "")
	}
}

func TestLoadConfig_MissingKey(t *testing.T) {
	isolateConfig(t)

	_, err := loadConfig(newSessionFlags(t))
	if err == nil {
		t.Fatal("expected error without OPENAI_KEY")
	}
	if !errors.Is(err, errors.KindConfig) {
		t.Errorf("kind = %v, want %v", errors.GetKind(err), errors.KindConfig)
	}
}

func TestLoadConfig_UnknownTheme(t *testing.T) {
	isolateConfig(t)
	t.Setenv(config.EnvAPIKey, "sk-test")

	_, err := loadConfig(newSessionFlags(t, "--theme", "solarized"))
	if !errors.Is(err, errors.KindConfig) {
		t.Errorf("error = %v, want a config error", err)
	}
}

func TestLoadConfig_FlagsApplied(t *testing.T) {
	isolateConfig(t)
	t.Setenv(config.EnvAPIKey, "sk-test")
	t.Setenv(config.EnvModel, "gpt-3.5-turbo")

	cfg, err := loadConfig(newSessionFlags(t, "--model", "gpt-4-32k", "--shell", "bash", "--copy"))
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Model != "gpt-4-32k" || cfg.Shell != "bash" || !cfg.Copy {
		t.Errorf("flags not applied: %+v", cfg)
	}
}
