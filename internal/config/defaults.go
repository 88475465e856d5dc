package config

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Storage.DatabasePath == "" {
		cfg.Storage.DatabasePath = "/usr/local/var/glance/data/db/products.db"
	}
	if cfg.Storage.BleveIndexPath == "" {
		cfg.Storage.BleveIndexPath = "/usr/local/var/glance/data/indices/bleve"
	}
	if cfg.Storage.SnapshotPath == "" {
		cfg.Storage.SnapshotPath = "/usr/local/var/glance/data/index/catalog.vec"
	}
	if cfg.Storage.ManifestPath == "" {
		cfg.Storage.ManifestPath = "/usr/local/var/glance/data/index/manifest.json"
	}
	if cfg.Embedding.ModelPath == "" {
		cfg.Embedding.ModelPath = "/usr/local/var/glance/data/models/clip-vit-b-32.onnx"
	}
	if cfg.Embedding.ModelID == "" {
		cfg.Embedding.ModelID = "clip-vit-b-32/openai"
	}
	if cfg.Embedding.Dimensions == 0 {
		cfg.Embedding.Dimensions = 512
	}
	if cfg.Embedding.BatchSize == 0 {
		cfg.Embedding.BatchSize = 32
	}
	if cfg.Embedding.CacheSize == 0 {
		cfg.Embedding.CacheSize = 1024
	}
	if cfg.Catalog.Dir == "" {
		cfg.Catalog.Dir = "/usr/local/var/glance/catalog"
	}
	if cfg.Catalog.DefaultPageSize == 0 {
		cfg.Catalog.DefaultPageSize = 40
	}
	if cfg.Catalog.MaxPageSize == 0 {
		cfg.Catalog.MaxPageSize = 200
	}
	if cfg.Search.DefaultTopK == 0 {
		cfg.Search.DefaultTopK = 200
	}
	if cfg.Search.MaxTopK == 0 {
		cfg.Search.MaxTopK = 1000
	}
	if cfg.Search.MinSimilarity == 0 {
		cfg.Search.MinSimilarity = 0.8
	}
	if cfg.Search.CropRatio == 0 {
		cfg.Search.CropRatio = 0.9
	}
	if cfg.Watch.DebounceMS == 0 {
		cfg.Watch.DebounceMS = 500
	}
}
