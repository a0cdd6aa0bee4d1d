package constants

// Common string constants used throughout the codebase
const (
	// Log levels
	ErrorLevel = "error"

	// Environments
	ProdEnvironment  = "prod"
	DevEnvironment   = "dev"
	TestEnvironment  = "test"
	LocalEnvironment = "local"

	// Service name attached to structured logs
	ServiceName = "storefront"

	// User agent sent to the storefront backend
	UserAgent = "storefront-checkout/1.0"
)
