package command

const (
	JSONOutputFlag = "json"
	ConfigFlag     = "config"
	NetworkFlag    = "network"
	JSONRPCFlag    = "jsonrpc"
	SenderKeyFlag  = "sender-key"
	DataDirFlag    = "data-dir"
	LogLevelFlag   = "log-level"
)
