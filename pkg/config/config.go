package config

import (
	"strings"

	"github.com/spf13/cobra"
)

// Builder orchestrates config assembly from various sources. Sources are
// merged in the order they are applied, so later sources take precedence:
// typically file, then environment, then flags.
type Builder interface {
	FromFile(path string) Builder
	FromEnv() Builder
	FromFlags(cmd *cobra.Command) Builder
	Build() (*Config, error)
}

// NewBuilder returns a builder starting from an empty configuration.
func NewBuilder() Builder {
	return &builder{cfg: New()}
}

type builder struct {
	cfg  *Config
	errs []error
}

func (b *builder) FromFile(path string) Builder {
	if path == "" {
		return b
	}
	fileCfg, err := LoadFromFile(path)
	if err != nil {
		b.errs = append(b.errs, err)
		return b
	}
	merge(b.cfg, fileCfg)
	return b
}

func (b *builder) FromEnv() Builder {
	envCfg, err := FromEnv()
	if err != nil {
		b.errs = append(b.errs, err)
		return b
	}
	merge(b.cfg, envCfg)
	return b
}

func (b *builder) FromFlags(cmd *cobra.Command) Builder {
	flagCfg, err := LoadFromFlags(cmd)
	if err != nil {
		b.errs = append(b.errs, err)
		return b
	}
	merge(b.cfg, flagCfg)
	return b
}

func (b *builder) Build() (*Config, error) {
	if len(b.errs) > 0 {
		return nil, b.errs[0]
	}

	if err := ApplyDefaults(b.cfg); err != nil {
		return nil, err
	}
	if err := Validate(b.cfg); err != nil {
		return nil, err
	}
	return b.cfg, nil
}

// merge overlays values from src onto dst. Scalar fields win when
// non-zero; git services accumulate across sources, deduplicated by
// hostname.
func merge(dst, src *Config) {
	if dst == nil || src == nil {
		return
	}

	if src.Output.Path != "" {
		dst.Output.Path = src.Output.Path
	}

	seen := make(map[string]struct{}, len(dst.GitServices))
	for _, svc := range dst.GitServices {
		seen[strings.ToLower(strings.TrimSpace(svc.Hostname))] = struct{}{}
	}
	for _, svc := range src.GitServices {
		key := strings.ToLower(strings.TrimSpace(svc.Hostname))
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		dst.GitServices = append(dst.GitServices, svc)
	}

	if src.Git.Timeout != 0 {
		dst.Git.Timeout = src.Git.Timeout
	}
	if src.gitOfflineSet() {
		dst.setGitOffline(src.Git.Offline)
	} else if src.Git.Offline {
		dst.Git.Offline = true
	}

	if src.Integration.GitHub.Token != "" {
		dst.Integration.GitHub.Token = src.Integration.GitHub.Token
	}
	if src.Integration.GitHub.Endpoint != "" {
		dst.Integration.GitHub.Endpoint = src.Integration.GitHub.Endpoint
	}

	if src.Logging.Level != "" {
		dst.Logging.Level = src.Logging.Level
	}
	if src.Logging.Format != "" {
		dst.Logging.Format = src.Logging.Format
	}
	if src.loggingVerboseSet() {
		dst.setLoggingVerbose(src.Logging.Verbose)
	} else if src.Logging.Verbose {
		dst.Logging.Verbose = true
	}
	if src.loggingQuietSet() {
		dst.setLoggingQuiet(src.Logging.Quiet)
	} else if src.Logging.Quiet {
		dst.Logging.Quiet = true
	}

	if src.Branch != "" {
		dst.Branch = src.Branch
	}
	if src.Commit != "" {
		dst.Commit = src.Commit
	}
}
