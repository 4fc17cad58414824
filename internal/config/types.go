package config

// Config holds all configuration for the application.
type Config struct {
	DBName string
	Port   string
	Slack  SlackConfig
	Admin  AdminConfig
	Turso  TursoConfig
}
type SlackConfig struct {
	Token         string
	SigningSecret string
}

// AdminConfig is the single shared credential pair gating all mutating
// commands.
type AdminConfig struct {
	Username string
	Password string
}
type TursoConfig struct {
	PrimaryURL string
	AuthToken  string
}
