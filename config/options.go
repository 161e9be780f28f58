package config

const (
	defaultLogFile           = "bookbazaar.log"
	defaultLogLevel          = "info"
	defaultLogFileMaxSize    = 20
	defaultLogFileMaxBackups = 3
	defaultLogFileMaxAge     = 28
	defaultLogCompress       = false
	defaultPort              = 8080
	defaultHost              = "0.0.0.0"
	defaultData              = "/var/opt/bookbazaar"
	defaultAPIURL            = "http://localhost:8080"
	defaultAdminEmail        = "admin@bookbazaar.com"
	defaultWorkerPoolSize    = 4
	defaultCoverQuality      = 75
	defaultMaxUploadSize     = 8
)

// Why use mapstructure instead of json, if use json as field tags, it can't recgnize the field, since the viper use mapstructure.
// see: https://pkg.go.dev/github.com/mitchellh/mapstructure#hdr-Field_Tags
type Options struct {
	// LogFile is the file to write logs to
	LogFile string `mapstructure:"log_file"`
	// LogLevel is the level of logging to show
	LogLevel string `mapstructure:"log_level"`
	// LogFileMaxSize is the maximum size of the log file before it is rotated
	LogFileMaxSize int `mapstructure:"log_file_max_size"`
	// LogFileMaxBackups is the maximum number of log files to keep
	LogFileMaxBackups int `mapstructure:"log_file_max_backups"`
	// LogFileMaxAge is the maximum number of days to keep a log file
	LogFileMaxAge int `mapstructure:"log_file_max_age"`
	// LogCompress is whether or not to compress the log files
	LogCompress bool `mapstructure:"log_compress"`
	// DSN is the path of the server catalog database (sqlite)
	DSN string `mapstructure:"dsn_uri"`
	// LocalDSN is the path of the client-side state database (sqlite)
	LocalDSN string `mapstructure:"local_dsn_uri"`
	// Port is the port the server listens on
	Port int `mapstructure:"port"`
	// Host is the host the server listens on
	Host string `mapstructure:"host"`
	// Data is the directory to store data
	Data string `mapstructure:"data"`
	// APIURL is the base URL client commands talk to
	APIURL string `mapstructure:"api_url"`
	// AdminEmail is the address that grants access to the review queue
	AdminEmail string `mapstructure:"admin_email"`
	// WorkerPoolSize is the number of background cover workers
	WorkerPoolSize int `mapstructure:"worker_pool_size"`
	// CoverQuality is the webp quality used when converting covers
	CoverQuality int `mapstructure:"cover_quality"`
	// MaxUploadSize is the maximum size of an uploaded cover, in MiB
	MaxUploadSize int64 `mapstructure:"max_upload_size"`
}

func GetDefaultOptions() *Options {
	Opts = &Options{
		LogFile:           defaultLogFile,
		LogLevel:          defaultLogLevel,
		LogFileMaxSize:    defaultLogFileMaxSize,
		LogFileMaxBackups: defaultLogFileMaxBackups,
		LogFileMaxAge:     defaultLogFileMaxAge,
		LogCompress:       defaultLogCompress,
		Port:              defaultPort,
		Host:              defaultHost,
		Data:              defaultData,
		APIURL:            defaultAPIURL,
		AdminEmail:        defaultAdminEmail,
		WorkerPoolSize:    defaultWorkerPoolSize,
		CoverQuality:      defaultCoverQuality,
		MaxUploadSize:     defaultMaxUploadSize,
	}
	return Opts
}
