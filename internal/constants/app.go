package constants

// Application Information
const (
	AppName    = "ExamHub API"
	AppVersion = "1.0.0"
)

// Environment Types
const (
	EnvDevelopment = "development"
	EnvStaging     = "staging"
	EnvProduction  = "production"
	EnvTest        = "test"
)

// Default Application Settings
const (
	DefaultPort        = "3000"
	DefaultEnvironment = EnvDevelopment
)

// User Roles
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Email template names
const (
	EmailWelcome           = "welcome"
	EmailActivated         = "activated"
	EmailForget            = "forget"
	EmailResetSuccessfully = "reset_successfully"
)
