package ttyctl

// Option configures Spawn. The zero value of spawnConfig matches the
// package defaults: a 24x80 window and the parent's environment.
type Option func(*spawnConfig)

type spawnConfig struct {
	rows, cols int
	env        []string
	dir        string
}

func newSpawnConfig(opts []Option) *spawnConfig {
	cfg := &spawnConfig{rows: 24, cols: 80}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// WithSize sets the initial window size reported to the child. Spawn
// applies a default of 24 rows x 80 columns, avoiding shell warnings
// about an unset terminal size, when this option is not given.
func WithSize(rows, cols int) Option {
	return func(c *spawnConfig) { c.rows, c.cols = rows, cols }
}

// WithEnv sets the child's environment. Nil (the default) inherits the
// parent's environment, matching exec.Cmd's own convention.
func WithEnv(env []string) Option {
	return func(c *spawnConfig) { c.env = env }
}

// WithDir sets the child's working directory.
func WithDir(dir string) Option {
	return func(c *spawnConfig) { c.dir = dir }
}
