package config

const (
	defaultDataDir            = "~/.local/share/cinedex"
	defaultLogDir             = "~/.local/share/cinedex/logs"
	defaultPort               = 3000
	defaultStorageBackend     = BackendJSON
	defaultJSONFileName       = "productions.json"
	defaultSQLiteFileName     = "productions.db"
	defaultTMDBBaseURL        = "https://api.themoviedb.org/3"
	defaultTMDBImageBaseURL   = "https://image.tmdb.org/t/p/w500"
	defaultTMDBLanguage       = "pt-BR"
	defaultTMDBTimeoutSeconds = 10
	defaultTMDBRequestsPerSec = 20
	defaultTMDBBurst          = 5
	defaultClientAPIURL       = "http://localhost:3000/api"
	defaultClientPageSize     = 5
	defaultLogFormat          = "console"
	defaultLogLevel           = "info"
)

// Storage backends understood by the store package.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
		},
		Server: Server{
			CORSOrigins: []string{"*"},
		},
		Storage: Storage{
			Backend: defaultStorageBackend,
		},
		TMDB: TMDB{
			BaseURL:           defaultTMDBBaseURL,
			ImageBaseURL:      defaultTMDBImageBaseURL,
			Language:          defaultTMDBLanguage,
			TimeoutSeconds:    defaultTMDBTimeoutSeconds,
			RequestsPerSecond: defaultTMDBRequestsPerSec,
			Burst:             defaultTMDBBurst,
		},
		Client: Client{
			APIURL:   defaultClientAPIURL,
			PageSize: defaultClientPageSize,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
