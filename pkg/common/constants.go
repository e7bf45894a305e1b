package common

const (
	// RedisStreamDiscoveryReport carries the report of each completed
	// discovery run to downstream consumers.
	RedisStreamDiscoveryReport = "token.discovery.report"
)
