package ir

// Version constants for records and the balancer.
const (
	// IRVersion is the record schema version.
	IRVersion = "1"

	// BalancerVersion is stamped on every persisted record.
	BalancerVersion = "0.1.0"
)
