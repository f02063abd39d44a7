package config

type (
	DriverConfig struct {
		MongoDB    MongoDB
		PostgresDB PostgresDB
		Redis      Redis
		Logger     Logger
		RabbitMQ   RabbitMQ
		Minio      Minio
		Supertoken Supertoken
	}
	MongoDB struct {
		Port     string
		Host     string
		Username string
		Password string
		DbName   string
	}
	PostgresDB struct {
		Port     string
		Host     string
		Username string
		Password string
		DBName   string
		SSLMode  string
	}
	Redis struct {
		Host     string
		Port     string
		Password string
		DB       int
	}
	Logger struct {
		Level               string
		OutputFileName      string
		OutputErrorFileName string
	}
	RabbitMQ struct {
		Port     string
		Host     string
		Username string
		Password string
	}
	Minio struct {
		Port     string
		Host     string
		Username string
		Password string
		UseSSL   bool
	}
	Supertoken struct {
		ConnectionURI   string
		APIKey          string
		AppName         string
		ApiDomain       string
		WebsiteDomain   string
		ApiBasePath     string
		WebsiteBasePath string
	}
)
