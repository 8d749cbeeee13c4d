package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/dlehdeod1/newcornerkicks/internal/config"
)

// globalFlags are the persistent flags. They override the loaded config
// only when set on the command line.
type globalFlags struct {
	configPath string
	envFile    string
	apiURL     string
	output     string
	verbose    bool
	logFile    string
	authFile   string
	timeout    time.Duration
}

func (f *globalFlags) register(cmd *cobra.Command) {
	pf := cmd.PersistentFlags()
	pf.StringVar(&f.configPath, "config", "", "Config file (env: CORNERKICKS_CONFIG, default ~/.cornerkicks/config.yaml)")
	pf.StringVar(&f.envFile, "env-file", "", "Dotenv file (default .env)")
	pf.StringVar(&f.apiURL, "api-url", config.DefaultAPIURL, "API base URL (env: CORNERKICKS_API_URL)")
	pf.StringVarP(&f.output, "output", "o", config.OutputText, "Output format: text, json")
	pf.BoolVarP(&f.verbose, "verbose", "v", false, "Verbose output")
	pf.StringVar(&f.logFile, "log-file", "", "Write a JSON debug log to this file")
	pf.StringVar(&f.authFile, "auth-file", "", "Login record file (env: CORNERKICKS_AUTH_FILE)")
	pf.DurationVar(&f.timeout, "timeout", 0, "HTTP timeout (env: CORNERKICKS_TIMEOUT)")
}

// loadConfig resolves the config and applies the flags that were set
func (rt *runtime) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	f := &rt.flags
	cfg, err := config.Load(config.Source{
		ConfigPath: f.configPath,
		EnvFile:    f.envFile,
		LookupEnv:  rt.opts.LookupEnv,
	})
	if err != nil {
		return nil, err
	}

	pf := cmd.Flags()
	if pf.Changed("api-url") {
		cfg.APIURL = f.apiURL
	}
	if pf.Changed("output") {
		cfg.Output = f.output
	}
	if pf.Changed("verbose") {
		cfg.Verbose = f.verbose
	}
	if pf.Changed("log-file") {
		cfg.LogFile = f.logFile
	}
	if pf.Changed("auth-file") {
		cfg.Auth.Backend = config.AuthBackendFile
		cfg.Auth.File = f.authFile
	}
	if pf.Changed("timeout") {
		cfg.Timeout = f.timeout
	}

	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
