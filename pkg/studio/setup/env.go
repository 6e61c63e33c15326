package setup

const (
	EnvGeminiApiKey          = "GEMINI_API_KEY"
	EnvOpenAiApiKey          = "OPENAI_API_KEY"
	EnvTextProvider          = "TEXT_PROVIDER"
	EnvImageProvider         = "IMAGE_PROVIDER"
	EnvGeminiTextModel       = "GEMINI_TEXT_MODEL"
	EnvImagenModel           = "IMAGEN_MODEL"
	EnvOpenAiTextModel       = "OPENAI_TEXT_MODEL"
	EnvOpenAiImageModel      = "OPENAI_IMAGE_MODEL"
	EnvPollinationsBaseUrl   = "POLLINATIONS_BASE_URL"
	EnvPollinationsProbe     = "POLLINATIONS_PROBE"
	EnvApiIpPort             = "API_IP_PORT"
	EnvSessionCacheSize      = "SESSION_CACHE_SIZE"
	EnvSessionTTL            = "SESSION_TTL"
	EnvMaxConcurrentRequests = "MAX_CONCURRENT_REQUESTS"
)

const (
	ProviderGemini       = "gemini"
	ProviderOpenAi       = "openai"
	ProviderImagen       = "imagen"
	ProviderPollinations = "pollinations"
)

var (
	TextProviders  = []string{ProviderGemini, ProviderOpenAi}
	ImageProviders = []string{ProviderPollinations, ProviderImagen, ProviderOpenAi}
)
