package config

// ExampleConfig returns an example configuration showing all available options.
func ExampleConfig() string {
	return `# sknext configuration file
# Values can be overridden by SKNEXT_* environment variables or CLI flags

# Number of tasks shown by the default, all-phases and tasks-only views
count = 10

# Color output: auto, always or never (NO_COLOR disables auto color)
color = "auto"

# Task file name inside each feature directory
tasks_file = "tasks.md"

# Directory under the repository root holding numbered feature directories
specs_dir = "specs"

# How many directories to climb when looking for the repository root
max_levels = 10

# Upper bound for "git rev-parse --show-toplevel"
git_timeout = "2s"

# Diagnostics on stderr
log_level = "warn"
log_format = "text"
log_timestamps = false
`
}
