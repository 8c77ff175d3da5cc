package config

var DefaultConfig Config

func init() {
	DefaultConfig = Config{
		Addr:        "127.0.0.1:2888",
		WebDir:      "./web",
		OpenBrowser: true,
	}
}
