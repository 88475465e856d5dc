// Package main is the Glance CLI entry point.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	"github.com/glancehq/glance/internal/catalog"
	"github.com/glancehq/glance/internal/cli"
	"github.com/glancehq/glance/internal/config"
	"github.com/glancehq/glance/internal/embedding"
	"github.com/glancehq/glance/internal/imaging"
	"github.com/glancehq/glance/internal/keyword"
	"github.com/glancehq/glance/internal/models"
	"github.com/glancehq/glance/internal/server"
	"github.com/glancehq/glance/internal/storage"
	"github.com/glancehq/glance/internal/watcher"
	"github.com/glancehq/glance/pkg/utils"
	"go.uber.org/zap"
)

var version = "dev"

const defaultConfigPath = "/usr/local/etc/glance/config.yaml"

// loadConfig loads config from path. When path is the default, it first looks for
// config.yaml in the current directory (for development); if that exists it is used,
// so that "glance server" from the project dir uses the project's config (including debug).
// Returns the config and the path that was actually loaded.
func loadConfig(path string) (*config.Config, string, error) {
	if path == defaultConfigPath {
		if cwd, cwdErr := os.Getwd(); cwdErr == nil {
			fallback := filepath.Join(cwd, "config.yaml")
			if _, statErr := os.Stat(fallback); statErr == nil {
				cfg, loadErr := config.Load(fallback)
				if loadErr != nil {
					return nil, "", loadErr
				}
				return cfg, fallback, nil
			}
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	command := os.Args[1]
	switch command {
	case "server":
		runServer()
	case "search":
		runSearch()
	case "add":
		runAdd()
	case "delete":
		runDelete()
	case "catalog":
		runCatalog()
	case "rebuild":
		runRebuild()
	case "status":
		runStatus()
	case "version", "--version", "-v":
		fmt.Printf("glance version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func runServer() {
	fs := flag.NewFlagSet("server", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	debug := fs.Bool("debug", false, "enable debug logging (file watching, embedding, etc.)")
	_ = fs.Parse(os.Args[2:])

	cfg, resolvedConfigPath, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	debugMode := cfg.Debug || *debug
	logger, err := utils.NewLogger(debugMode)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("config loaded",
		zap.String("config_path", resolvedConfigPath),
		zap.String("catalog_dir", cfg.Catalog.Dir),
		zap.Bool("debug", debugMode),
	)

	components, err := initializeComponents(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize components", zap.Error(err))
	}
	defer components.Close()

	svc := components.Catalog
	// A failed initial refresh is not fatal: the service keeps serving a
	// restored snapshot if one loaded, and a later rebuild can recover.
	if err := svc.EnsureFresh(context.Background()); err != nil {
		logger.Warn("initial catalog refresh failed", zap.Error(err))
	}

	watchCtx, watchCancel := context.WithCancel(context.Background())
	defer watchCancel()
	var watchSvc *watcher.Watcher
	if cfg.Watch.EnabledOrDefault() {
		watchOpts := []watcher.Option{}
		if debugMode {
			watchOpts = append(watchOpts, watcher.WithLogger(logger))
		}
		if cfg.Watch.DebounceMS > 0 {
			watchOpts = append(watchOpts, watcher.WithDebounce(time.Duration(cfg.Watch.DebounceMS)*time.Millisecond))
		}
		watchSvc = watcher.NewWatcher(cfg.Catalog.Dir, func() {
			if err := svc.EnsureFresh(context.Background()); err != nil {
				logger.Warn("watch refresh failed", zap.Error(err))
			}
		}, watchOpts...)
		if err := watchSvc.Start(watchCtx); err != nil {
			logger.Fatal("Failed to start watcher", zap.Error(err))
		}
	}

	srv := server.NewServer(svc, cfg, logger)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")
	if watchSvc != nil {
		watchSvc.Stop()
	}
	watchCancel()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Stop(ctx)
}

// printSearchUsage prints search subcommand usage and hints.
func printSearchUsage(fs *flag.FlagSet) {
	fmt.Fprintf(fs.Output(), "Usage: glance search [flags] <image-file>\n\n")
	fmt.Fprintf(fs.Output(), "Finds catalog products that look like the query image.\n\n")
	fs.PrintDefaults()
	fmt.Fprintf(fs.Output(), `
Confidence runs from 0 to 1; 0.5 means the embeddings are orthogonal.
  • Use --min-similarity 0 to rank the whole catalog by similarity.
  • Use --top-k to cap how many matches are printed; the reported total is unaffected.
  • Use --server "" to open the catalog directly when the server is not running.

Examples:
  glance search query.jpg
  glance search --top-k 5 query.jpg
  glance search --min-similarity 0.9 query.jpg     # only near-identical products
  glance search --output json query.jpg            # structured JSON for other apps
`)
}

// argsReorder moves any flags (and their values) that appear after a
// positional argument to the front of the slice so that flag.Parse()
// sees them. Go's flag package stops at the first non-flag argument, so
// "glance search query.jpg --top-k 5" would otherwise leave --top-k
// unparsed.
func argsReorder(args []string) []string {
	for i, a := range args {
		if len(a) > 0 && a[0] == '-' {
			if i == 0 {
				return args
			}
			reordered := make([]string, 0, len(args))
			reordered = append(reordered, args[i:]...)
			reordered = append(reordered, args[:i]...)
			return reordered
		}
	}
	return args
}

func runSearch() {
	searchArgs := argsReorder(os.Args[2:])

	fs := flag.NewFlagSet("search", flag.ExitOnError)
	configPathFlag := fs.String("config", defaultConfigPath, "config file path (for direct catalog mode)")
	serverURL := fs.String("server", "http://localhost:8080", "server URL (empty = open the catalog directly when the server is not running)")
	topK := fs.Int("top-k", 0, "maximum matches to return (0 = server default)")
	minSimilarity := fs.Float64("min-similarity", -1, "confidence floor in [0,1]; 0 disables it, negative means the server default")
	outputFormat := fs.String("output", "text", "output format: text (human-readable) or json (parseable)")
	fs.Usage = func() { printSearchUsage(fs) }
	_ = fs.Parse(searchArgs)

	if fs.NArg() < 1 {
		printSearchUsage(fs)
		os.Exit(1)
	}
	imagePath := fs.Arg(0)

	format, err := cli.ParseOutputFormat(*outputFormat)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	if *serverURL != "" {
		// Use the HTTP API when the server is running (avoids the
		// Bleve/SQLite lock conflict of opening the indices twice).
		response, err := searchViaHTTP(*serverURL, imagePath, *topK, *minSimilarity)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Search failed: %v\n", err)
			os.Exit(1)
		}
		if err := cli.WriteSearchResults(os.Stdout, response, format); err != nil {
			fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// Direct catalog access (when the server is not running).
	cfg, _, err := loadConfig(*configPathFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger, err := utils.NewLogger(cfg.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	img, err := imaging.DecodeFile(imagePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read query image: %v\n", err)
		os.Exit(1)
	}

	components, err := initializeComponents(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize", zap.Error(err))
	}
	defer components.Close()

	if err := components.Catalog.EnsureFresh(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Catalog refresh failed: %v\n", err)
		os.Exit(1)
	}

	// An unset --min-similarity means the configured floor; an explicit 0
	// disables it.
	query := &models.SearchQuery{MinSimilarity: cfg.Search.MinSimilarity}
	if *topK > 0 {
		query.TopK = *topK
	}
	if *minSimilarity >= 0 {
		query.MinSimilarity = *minSimilarity
	}

	response, err := components.Catalog.Search(context.Background(), img, query)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Search failed: %v\n", err)
		os.Exit(1)
	}
	if err := cli.WriteSearchResults(os.Stdout, response, format); err != nil {
		fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
		os.Exit(1)
	}
}

// multipartUpload builds a multipart/form-data body with the file at
// imagePath under the "image" field plus any extra fields. The returned
// content type carries the part boundary.
func multipartUpload(imagePath string, fields map[string]string) (io.Reader, string, error) {
	f, err := os.Open(imagePath)
	if err != nil {
		return nil, "", err
	}
	defer f.Close()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("image", filepath.Base(imagePath))
	if err != nil {
		return nil, "", err
	}
	if _, err := io.Copy(part, f); err != nil {
		return nil, "", err
	}
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			return nil, "", err
		}
	}
	if err := mw.Close(); err != nil {
		return nil, "", err
	}
	return &buf, mw.FormDataContentType(), nil
}

func searchViaHTTP(serverURL, imagePath string, topK int, minSimilarity float64) (*models.SearchResponse, error) {
	fields := map[string]string{}
	if topK > 0 {
		fields["top_k"] = strconv.Itoa(topK)
	}
	if minSimilarity >= 0 {
		fields["min_similarity"] = strconv.FormatFloat(minSimilarity, 'f', -1, 64)
	}
	body, contentType, err := multipartUpload(imagePath, fields)
	if err != nil {
		return nil, err
	}
	resp, err := http.Post(serverURL+"/api/v1/search", contentType, body)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, string(b))
	}
	var response models.SearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &response, nil
}

func runAdd() {
	fs := flag.NewFlagSet("add", flag.ExitOnError)
	serverURL := fs.String("server", "http://localhost:8080", "server URL")
	id := fs.String("id", "", "product ID (default: derived from the file name)")
	name := fs.String("name", "", "display name")
	category := fs.String("category", "", "category label")
	price := fs.Float64("price", 0, "price")
	_ = fs.Parse(argsReorder(os.Args[2:]))

	if fs.NArg() < 1 {
		fmt.Println("Usage: glance add [flags] <image-file>")
		os.Exit(1)
	}
	imagePath := fs.Arg(0)

	fields := map[string]string{}
	if *id != "" {
		fields["id"] = *id
	}
	if *name != "" {
		fields["name"] = *name
	}
	if *category != "" {
		fields["category"] = *category
	}
	if *price > 0 {
		fields["price"] = strconv.FormatFloat(*price, 'f', -1, 64)
	}

	body, contentType, err := multipartUpload(imagePath, fields)
	if err != nil {
		fmt.Printf("Failed to read image: %v\n", err)
		os.Exit(1)
	}
	resp, err := http.Post(*serverURL+"/api/v1/products", contentType, body)
	if err != nil {
		fmt.Printf("Request failed: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		b, _ := io.ReadAll(resp.Body)
		fmt.Printf("Add failed (%d): %s\n", resp.StatusCode, string(b))
		os.Exit(1)
	}
	var product models.Product
	if err := json.NewDecoder(resp.Body).Decode(&product); err != nil {
		fmt.Printf("Parse failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Added: %s (%s)\n", product.ID, product.ImagePath)
}

func runDelete() {
	fs := flag.NewFlagSet("delete", flag.ExitOnError)
	serverURL := fs.String("server", "http://localhost:8080", "server URL")
	_ = fs.Parse(argsReorder(os.Args[2:]))

	if fs.NArg() < 1 {
		fmt.Println("Usage: glance delete [flags] <product-id>")
		os.Exit(1)
	}
	id := fs.Arg(0)

	req, _ := http.NewRequest(http.MethodDelete, *serverURL+"/api/v1/products/"+url.PathEscape(id), nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		fmt.Printf("Request failed: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		fmt.Printf("Delete failed (%d): %s\n", resp.StatusCode, string(b))
		os.Exit(1)
	}
	fmt.Printf("Deleted: %s\n", id)
}

func runCatalog() {
	fs := flag.NewFlagSet("catalog", flag.ExitOnError)
	serverURL := fs.String("server", "http://localhost:8080", "server URL")
	page := fs.Int("page", 1, "page number, 1-based")
	pageSize := fs.Int("page-size", 0, "items per page (0 = server default)")
	query := fs.String("query", "", "keyword filter on name and category")
	outputFormat := fs.String("output", "text", "output format: text or json")
	_ = fs.Parse(os.Args[2:])

	format, err := cli.ParseOutputFormat(*outputFormat)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	u := fmt.Sprintf("%s/api/v1/catalog?page=%d", *serverURL, *page)
	if *pageSize > 0 {
		u += fmt.Sprintf("&page_size=%d", *pageSize)
	}
	if *query != "" {
		u += "&query=" + url.QueryEscape(*query)
	}
	resp, err := http.Get(u)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Request failed: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		fmt.Fprintf(os.Stderr, "List failed (%d): %s\n", resp.StatusCode, string(b))
		os.Exit(1)
	}
	var listing models.CatalogPage
	if err := json.NewDecoder(resp.Body).Decode(&listing); err != nil {
		fmt.Fprintf(os.Stderr, "Parse failed: %v\n", err)
		os.Exit(1)
	}
	if err := cli.WriteCatalogPage(os.Stdout, &listing, format); err != nil {
		fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
		os.Exit(1)
	}
}

func runRebuild() {
	fs := flag.NewFlagSet("rebuild", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path (for direct catalog mode)")
	serverURL := fs.String("server", "http://localhost:8080", "server URL (empty = open the catalog directly)")
	_ = fs.Parse(os.Args[2:])

	if *serverURL != "" {
		resp, err := http.Post(*serverURL+"/api/v1/rebuild", "application/json", nil)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Rebuild failed: %v\n", err)
			os.Exit(1)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			b, _ := io.ReadAll(resp.Body)
			fmt.Fprintf(os.Stderr, "Rebuild failed (%d): %s\n", resp.StatusCode, string(b))
			os.Exit(1)
		}
		var stats models.Stats
		if err := json.NewDecoder(resp.Body).Decode(&stats); err != nil {
			fmt.Fprintf(os.Stderr, "Parse failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Rebuilt: %d product(s) indexed\n", stats.ProductCount)
		return
	}

	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger, err := utils.NewLogger(cfg.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	components, err := initializeComponents(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize", zap.Error(err))
	}
	defer components.Close()

	if err := components.Catalog.Rebuild(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Rebuild failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Rebuilt: %d product(s) indexed\n", components.Catalog.Stats().ProductCount)
}

func runStatus() {
	fs := flag.NewFlagSet("status", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path (for direct catalog mode)")
	serverURL := fs.String("server", "http://localhost:8080", "server URL (empty = open the catalog directly)")
	outputFormat := fs.String("output", "text", "output format: text or json")
	_ = fs.Parse(os.Args[2:])

	var stats models.Stats
	if *serverURL != "" {
		res, err := statusViaHTTP(*serverURL)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Status failed: %v\n", err)
			os.Exit(1)
		}
		stats = *res
	} else {
		cfg, _, err := loadConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
			os.Exit(1)
		}
		logger, err := utils.NewLogger(cfg.Debug)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
			os.Exit(1)
		}
		defer logger.Sync()
		components, err := initializeComponents(cfg, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
			os.Exit(1)
		}
		defer components.Close()
		// Refresh first so the report reflects what is on disk; a stale
		// index is rebuilt here, which can take a while.
		if err := components.Catalog.EnsureFresh(context.Background()); err != nil {
			fmt.Fprintf(os.Stderr, "Catalog refresh failed: %v\n", err)
			os.Exit(1)
		}
		stats = *components.Catalog.Stats()
	}

	switch *outputFormat {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(stats); err != nil {
			fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
			os.Exit(1)
		}
	case "text":
		fmt.Printf("state:             %s\n", stats.State)
		fmt.Printf("products:          %d\n", stats.ProductCount)
		fmt.Printf("dimension:         %d\n", stats.Dimension)
		fmt.Printf("model:             %s\n", stats.ModelID)
		fmt.Printf("disk_usage_bytes:  %d   # snapshot + manifest + indices on disk\n", stats.DiskUsageBytes)
		fmt.Println()
		fmt.Println("# search limits")
		fmt.Printf("default_top_k:     %d\n", stats.DefaultTopK)
		fmt.Printf("max_top_k:         %d\n", stats.MaxTopK)
		fmt.Printf("min_similarity:    %g\n", stats.MinSimilarity)
	default:
		fmt.Fprintf(os.Stderr, "Unknown output format %q; use text or json\n", *outputFormat)
		os.Exit(1)
	}
}

func statusViaHTTP(serverURL string) (*models.Stats, error) {
	resp, err := http.Get(serverURL + "/api/v1/status")
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, string(b))
	}
	var s models.Stats
	if err := json.NewDecoder(resp.Body).Decode(&s); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &s, nil
}

// Components holds initialized services.
type Components struct {
	Store    *storage.SQLiteStore
	Keywords keyword.KeywordIndex
	Embedder embedding.Embedder
	Catalog  *catalog.Service
}

func (c *Components) Close() {
	if c.Keywords != nil {
		_ = c.Keywords.Close()
	}
	if c.Store != nil {
		_ = c.Store.Close()
	}
	if c.Embedder != nil {
		_ = c.Embedder.Close()
	}
}

func initializeComponents(cfg *config.Config, logger *zap.Logger) (*Components, error) {
	store, err := storage.NewSQLiteStore(cfg.Storage.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	var embedder embedding.Embedder
	onnxEmbedder, err := embedding.NewONNXEmbedder(
		cfg.Embedding.ModelPath,
		cfg.Embedding.ModelID,
		cfg.Embedding.Dimensions,
		cfg.Embedding.CacheSize,
	)
	if err != nil {
		// The mock reports model ID "mock", so a snapshot embedded with it
		// is rebuilt as soon as the real model becomes available.
		if logger != nil {
			logger.Warn("ONNX embedder unavailable, using mock embeddings",
				zap.String("model_path", cfg.Embedding.ModelPath),
				zap.Error(err))
		}
		embedder = embedding.NewMockEmbedder(cfg.Embedding.Dimensions)
	} else {
		embedder = onnxEmbedder
	}

	keywords, err := keyword.NewBleveIndex(cfg.Storage.BleveIndexPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize keyword index: %w", err)
	}

	svc := catalog.NewService(cfg, embedder,
		catalog.WithStore(store),
		catalog.WithKeywordIndex(keywords),
		catalog.WithLogger(logger),
	)

	return &Components{
		Store:    store,
		Keywords: keywords,
		Embedder: embedder,
		Catalog:  svc,
	}, nil
}

func printUsage() {
	fmt.Println(`glance - Visual product search over an image catalog

Usage:
  glance server [flags]            Start the HTTP server
  glance search [flags] <image>    Find products that look like an image
  glance add [flags] <image>       Add a product image to the catalog
  glance delete [flags] <id>       Remove a product
  glance catalog [flags]           List catalog products
  glance rebuild [flags]           Re-embed every catalog image
  glance status [flags]            Show index and storage status
  glance version                   Show version
  glance help                      Show this help

Server Flags:
  --config string    Config file path (default: /usr/local/etc/glance/config.yaml)
  --debug            Enable debug logging (file watching, embedding, etc.)

Search Flags:
  --config string           Config file path (for direct catalog mode)
  --server string           Server URL (default: http://localhost:8080). Use empty (--server "") to open the catalog directly.
  --top-k int               Maximum matches to return (0 = server default)
  --min-similarity float    Confidence floor in [0,1]; 0 disables it, negative means the server default
  --output string           Output format: text or json (default: text)

Add Flags:
  --server string    Server URL (default: http://localhost:8080)
  --id string        Product ID (default: derived from the file name)
  --name string      Display name
  --category string  Category label
  --price float      Price

Catalog Flags:
  --server string    Server URL (default: http://localhost:8080)
  --page int         Page number, 1-based (default: 1)
  --page-size int    Items per page (0 = server default)
  --query string     Keyword filter on name and category
  --output string    Output format: text or json (default: text)

Rebuild and Status Flags:
  --config string    Config file path (for direct catalog mode)
  --server string    Server URL (default: http://localhost:8080). Use empty (--server "") to open the catalog directly.
  --output string    Output format for status: text or json (default: text)

The add, delete, and catalog commands talk to a running server; the
server owns the catalog directory and its indices. Direct mode
(--server "") opens the same files and must not run alongside the
server.

Examples:
  glance server
  glance search query.jpg
  glance search --top-k 5 --min-similarity 0.9 query.jpg
  glance add --name "Crimson Shoe" --price 79.99 crimson-shoe.jpg
  glance delete crimson-shoe
  glance catalog --query shoes
  glance rebuild
  glance status --output json`)
}
