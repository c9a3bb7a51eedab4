package config

// Config contains all application settings
type Config struct {
	BindPort      int    `mapstructure:"PORT" yaml:"port"`
	BindHost      string `mapstructure:"HOST" yaml:"host"`
	DatabaseURL   string `mapstructure:"DATABASE_URL" yaml:"database_url"`
	NATSServerURL string `mapstructure:"NATS_URL" yaml:"nats_url"`
	RPCServerURL  string `mapstructure:"RPC_URL" yaml:"rpc_url"`
	ProgramID     string `mapstructure:"PROGRAM_ID" yaml:"program_id"`
	PollInterval  int    `mapstructure:"POLL_INTERVAL" yaml:"poll_interval"`

	// Version
	BuildVersion string `yaml:"-"`
	BuildHash    string `yaml:"-"`
	BuildTime    string `yaml:"-"`
}
