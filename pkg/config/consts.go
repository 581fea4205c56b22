package config

const (
	EnvPrefix = "MAISONVELA"

	AppEnvDev  = "development"
	AppEnvProd = "production"

	StorageBackendFile   = "file"
	StorageBackendRedis  = "redis"
	StorageBackendMemory = "memory"

	EnvAppEnv          = "MAISONVELA_APP_ENV"
	EnvPort            = "MAISONVELA_APP_PORT"
	EnvStorageBackend  = "MAISONVELA_STORAGE_BACKEND"
	EnvStorageFilePath = "MAISONVELA_STORAGE_FILE_PATH"
	EnvRedisURL        = "MAISONVELA_REDIS_URL"
)
