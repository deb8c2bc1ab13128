package flags

var (
	ConfigFile  string // path to coordinator.yaml
	Listen      string // overrides rpc_listen_address/port when set
	PostgresURI string // overrides postgres_uri when set
)
