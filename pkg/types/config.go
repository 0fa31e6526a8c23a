package types

// Config is the decoded configuration file.
type Config struct {
	Token       string          `mapstructure:"token" yaml:"token" json:"-"`
	DataFile    string          `mapstructure:"data_file" yaml:"data_file" json:"data_file"`
	User        string          `mapstructure:"user" yaml:"user" json:"user"`
	TaskCommand string          `mapstructure:"task_command" yaml:"task_command" json:"task_command"`
	Projects    []ProjectConfig `mapstructure:"projects" yaml:"projects" json:"projects"`
}

// ProjectConfig defines one repository to reconcile.
type ProjectConfig struct {
	Name       string          `mapstructure:"name" yaml:"name" json:"name"`
	Milestones MilestoneFilter `mapstructure:"milestones" yaml:"milestones" json:"milestones"`
}

// MilestoneFilter holds the include and exclude lists for a project.
type MilestoneFilter struct {
	Include []string `mapstructure:"include" yaml:"include" json:"include,omitempty"`
	Exclude []string `mapstructure:"exclude" yaml:"exclude" json:"exclude,omitempty"`
}

// ProjectNames returns the configured project names in config order.
func (c *Config) ProjectNames() []string {
	names := make([]string, 0, len(c.Projects))
	for _, p := range c.Projects {
		names = append(names, p.Name)
	}
	return names
}
