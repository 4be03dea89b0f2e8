package config

// Config is the full configuration for one sync run.
type Config struct {
	Lubelogger Lubelogger `yaml:"lubelogger"`
	Drive      Drive      `yaml:"drive"`
	Fuelio     Fuelio     `yaml:"fuelio"`
	LogLevel   string     `yaml:"log_level,omitempty"`
	Debug      bool       `yaml:"debug,omitempty"`
}

// Lubelogger holds the destination tracker settings. The password is either
// stored in the clear or as an encrypted blob; exactly one must be set.
type Lubelogger struct {
	URL               string         `yaml:"url"`
	Username          string         `yaml:"username"`
	Password          string         `yaml:"password,omitempty"`
	EncryptedPassword *EncryptedData `yaml:"encrypted_password,omitempty"`
	VehicleID         int            `yaml:"vehicle_id"`
}

// Drive holds the source storage settings.
type Drive struct {
	FolderID        string `yaml:"folder_id"`
	AuthType        string `yaml:"auth_type"`
	CredentialsFile string `yaml:"credentials_file"`
	TokenFile       string `yaml:"token_file,omitempty"`
}

// Fuelio identifies the vehicle inside the Fuelio backup.
type Fuelio struct {
	VehicleID int `yaml:"vehicle_id"`
}

// EncryptedData is an AES-256-GCM encrypted secret with its key-derivation
// metadata.
type EncryptedData struct {
	Encrypted string `yaml:"encrypted"`
	Salt      string `yaml:"salt"`
	Nonce     string `yaml:"nonce"`
	Algorithm string `yaml:"algorithm"`
}

// Encryption parameters for passwords at rest.
const (
	EncryptionAlgorithm = "aes-256-gcm"
	PBKDF2Iterations    = 100000
	SaltSize            = 32
	NonceSize           = 12
)
