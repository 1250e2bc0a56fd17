package config

type ServiceConfig struct {
	Name                string   `yaml:"name"`
	Port                string   `yaml:"port"`
	MaxConnsPerIP       int      `yaml:"max_conns_per_ip"`
	CloudLoggingEnabled bool     `yaml:"cloud_logging_enabled"`
	TrustedOrigins      []string `yaml:"trusted_origins"`
	Firestore           *firestore
	Storage             *storage
	Mail                *mail
	Auth                *auth
}

type firestore struct {
	ProjectID                string `yaml:"project_id"`
	PoolSize                 int    `yaml:"pool_size"`
	ProjectsCollectionName   string `yaml:"projects_collection_name"`
	RateLimitsCollectionName string `yaml:"ratelimits_collection_name"`
}

type storage struct {
	Bucket string `yaml:"bucket"`
}

type mail struct {
	APIKey string `yaml:"api_key"`
	From   string `yaml:"from"`
	To     string `yaml:"to"`
}

type auth struct {
	Enabled    bool   `yaml:"enabled"`
	AdminClaim string `yaml:"admin_claim"`
}

func (s *ServiceConfig) GetProjectID() string {
	f := s.Firestore
	return f.ProjectID
}

// GetPoolSize - gets the firestore clients pool size. Defaults to 4.
func (s *ServiceConfig) GetPoolSize() int {
	f := s.Firestore
	if f.PoolSize < 1 {
		return 4
	}
	return f.PoolSize
}

func (s *ServiceConfig) GetProjectsCollectionName() string {
	f := s.Firestore
	if f.ProjectsCollectionName == "" {
		return "projects"
	}
	return f.ProjectsCollectionName
}

func (s *ServiceConfig) GetRateLimitsCollectionName() string {
	f := s.Firestore
	if f.RateLimitsCollectionName == "" {
		return "rateLimits"
	}
	return f.RateLimitsCollectionName
}

func (s *ServiceConfig) GetBucket() string {
	return s.Storage.Bucket
}

func (s *ServiceConfig) GetMailAPIKey() string {
	return s.Mail.APIKey
}

func (s *ServiceConfig) GetMailFrom() string {
	return s.Mail.From
}

// GetMailTo - the operator address receiving the contact notifications.
// Falls back to the sending address as the notification sender address.
func (s *ServiceConfig) GetMailTo() string {
	m := s.Mail
	if m.To == "" {
		return m.From
	}
	return m.To
}

func (s *ServiceConfig) GetAuthEnabled() bool {
	if s.Auth == nil {
		return false
	}
	return s.Auth.Enabled
}

func (s *ServiceConfig) GetAdminClaim() string {
	if s.Auth == nil || s.Auth.AdminClaim == "" {
		return "admin"
	}
	return s.Auth.AdminClaim
}

func (s *ServiceConfig) GetMaxConnsPerIP() int {
	if s.MaxConnsPerIP < 1 {
		return 3
	}
	return s.MaxConnsPerIP
}

func (s *ServiceConfig) GetTrustedOrigins() []string {
	return s.TrustedOrigins
}
