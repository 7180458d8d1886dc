package openapifx

type Config struct {
	Enabled bool
	// PublicHost overrides the host shown in the OpenAPI document, e.g. behind a proxy
	PublicHost string
	// PublicPath overrides the API base path shown in the OpenAPI document
	PublicPath string
}
