package config

// setGitOffline records an explicit offline value originating from a configuration source.
func (c *Config) setGitOffline(value bool) {
	if c == nil {
		return
	}
	c.Git.Offline = value
	c.setFlags.gitOffline = true
}

func (c *Config) gitOfflineSet() bool {
	if c == nil {
		return false
	}
	return c.setFlags.gitOffline
}

// setLoggingVerbose records an explicit verbose flag value from configuration.
func (c *Config) setLoggingVerbose(value bool) {
	if c == nil {
		return
	}
	c.Logging.Verbose = value
	c.setFlags.loggingVerbose = true
}

func (c *Config) loggingVerboseSet() bool {
	if c == nil {
		return false
	}
	return c.setFlags.loggingVerbose
}

// setLoggingQuiet records an explicit quiet flag value from configuration.
func (c *Config) setLoggingQuiet(value bool) {
	if c == nil {
		return
	}
	c.Logging.Quiet = value
	c.setFlags.loggingQuiet = true
}

func (c *Config) loggingQuietSet() bool {
	if c == nil {
		return false
	}
	return c.setFlags.loggingQuiet
}
