package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	configPathEnv        = "JOBMINER_CONFIG"
	inputDirEnv          = "JOBMINER_INPUT_DIR"
	outputDirEnv         = "JOBMINER_OUTPUT_DIR"
	logLevelEnv          = "JOBMINER_LOG_LEVEL"
	logFormatEnv         = "JOBMINER_LOG_FORMAT"
	workersEnv           = "JOBMINER_WORKERS"
	offlineEnv           = "JOBMINER_OFFLINE"
	fontEnv              = "JOBMINER_FONT"
	catalogDirEnv        = "JOBMINER_CATALOG_DIR"
	minRoleAdsEnv        = "JOBMINER_MIN_ROLE_ADS"
	minSkillAdsGlobalEnv = "JOBMINER_MIN_SKILL_ADS_GLOBAL"
	minPairAdsEnv        = "JOBMINER_MIN_PAIR_ADS"
)

// Config holds high-level settings required across the application.
type Config struct {
	Logging      LoggingConfig    `yaml:"logging"`
	Paths        PathsConfig      `yaml:"paths"`
	Artifacts    ArtifactsConfig  `yaml:"artifacts"`
	Thresholds   ThresholdsConfig `yaml:"thresholds"`
	Charts       ChartsConfig     `yaml:"charts"`
	Workers      int              `yaml:"workers"`
	SkillsColumn string           `yaml:"skillsColumn"`
}

// LoggingConfig selects the slog level and handler.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// PathsConfig locates the export, the artifacts and optional catalog overrides.
type PathsConfig struct {
	InputDir   string `yaml:"inputDir"`
	OutputDir  string `yaml:"outputDir"`
	FiguresDir string `yaml:"figuresDir"`
	CatalogDir string `yaml:"catalogDir"`
}

// ArtifactsConfig names the tables stages hand to each other.
type ArtifactsConfig struct {
	Parsed    string `yaml:"parsed"`
	Titles    string `yaml:"titles"`
	Skills    string `yaml:"skills"`
	Locations string `yaml:"locations"`
	Enriched  string `yaml:"enriched"`
}

// ThresholdsConfig holds minimum-support filters and top-N sizes.
type ThresholdsConfig struct {
	MinRoleAds        int `yaml:"minRoleAds"`
	MinSkillAdsGlobal int `yaml:"minSkillAdsGlobal"`
	MinPairAds        int `yaml:"minPairAds"`
	TopN              int `yaml:"topN"`
	LocationTopN      int `yaml:"locationTopN"`
	TitleCountsTop    int `yaml:"titleCountsTop"`
	UnknownSamples    int `yaml:"unknownSamples"`
	ReportTopN        int `yaml:"reportTopN"`
}

// ChartsConfig controls PNG rendering and the optional map background.
type ChartsConfig struct {
	Offline  bool   `yaml:"offline"`
	MapURL   string `yaml:"mapURL"`
	MapFile  string `yaml:"mapFile"`
	FontPath string `yaml:"fontPath"`
	Width    int    `yaml:"width"`
	BarLimit int    `yaml:"barLimit"`
}

// Load reads YAML configuration (if present), then .env, then environment overrides.
func Load() Config {
	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	// .env is optional
	_ = godotenv.Load()
	cfg.applyEnvOverrides()

	return cfg
}

// Default returns the built-in configuration.
func Default() Config {
	return defaultConfig()
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(inputDirEnv); v != "" {
		c.Paths.InputDir = v
	}
	if v := os.Getenv(outputDirEnv); v != "" {
		c.Paths.OutputDir = v
	}
	if v := os.Getenv(catalogDirEnv); v != "" {
		c.Paths.CatalogDir = v
	}
	if v := os.Getenv(logLevelEnv); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv(logFormatEnv); v != "" {
		c.Logging.Format = v
	}
	if v := os.Getenv(fontEnv); v != "" {
		c.Charts.FontPath = v
	}
	if v := os.Getenv(offlineEnv); v != "" {
		if b, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
			c.Charts.Offline = b
		} else {
			log.Printf("config: invalid %s=%q, keeping %v", offlineEnv, v, c.Charts.Offline)
		}
	}

	envInt(workersEnv, &c.Workers)
	envInt(minRoleAdsEnv, &c.Thresholds.MinRoleAds)
	envInt(minSkillAdsGlobalEnv, &c.Thresholds.MinSkillAdsGlobal)
	envInt(minPairAdsEnv, &c.Thresholds.MinPairAds)
}

func envInt(key string, dst *int) {
	v := os.Getenv(key)
	if v == "" {
		return
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		log.Printf("config: invalid %s=%q, keeping %d", key, v, *dst)
		return
	}
	*dst = n
}

func mergeConfig(base, override Config) Config {
	mergeString(&base.Logging.Level, override.Logging.Level)
	mergeString(&base.Logging.Format, override.Logging.Format)

	mergeString(&base.Paths.InputDir, override.Paths.InputDir)
	mergeString(&base.Paths.OutputDir, override.Paths.OutputDir)
	mergeString(&base.Paths.FiguresDir, override.Paths.FiguresDir)
	mergeString(&base.Paths.CatalogDir, override.Paths.CatalogDir)

	mergeString(&base.Artifacts.Parsed, override.Artifacts.Parsed)
	mergeString(&base.Artifacts.Titles, override.Artifacts.Titles)
	mergeString(&base.Artifacts.Skills, override.Artifacts.Skills)
	mergeString(&base.Artifacts.Locations, override.Artifacts.Locations)
	mergeString(&base.Artifacts.Enriched, override.Artifacts.Enriched)

	mergeInt(&base.Thresholds.MinRoleAds, override.Thresholds.MinRoleAds)
	mergeInt(&base.Thresholds.MinSkillAdsGlobal, override.Thresholds.MinSkillAdsGlobal)
	mergeInt(&base.Thresholds.MinPairAds, override.Thresholds.MinPairAds)
	mergeInt(&base.Thresholds.TopN, override.Thresholds.TopN)
	mergeInt(&base.Thresholds.LocationTopN, override.Thresholds.LocationTopN)
	mergeInt(&base.Thresholds.TitleCountsTop, override.Thresholds.TitleCountsTop)
	mergeInt(&base.Thresholds.UnknownSamples, override.Thresholds.UnknownSamples)
	mergeInt(&base.Thresholds.ReportTopN, override.Thresholds.ReportTopN)

	if override.Charts.Offline {
		base.Charts.Offline = true
	}
	mergeString(&base.Charts.MapURL, override.Charts.MapURL)
	mergeString(&base.Charts.MapFile, override.Charts.MapFile)
	mergeString(&base.Charts.FontPath, override.Charts.FontPath)
	mergeInt(&base.Charts.Width, override.Charts.Width)
	mergeInt(&base.Charts.BarLimit, override.Charts.BarLimit)

	mergeInt(&base.Workers, override.Workers)
	mergeString(&base.SkillsColumn, override.SkillsColumn)

	return base
}

func mergeString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func mergeInt(dst *int, v int) {
	if v != 0 {
		*dst = v
	}
}

func defaultConfig() Config {
	return Config{
		Logging: LoggingConfig{Level: "info", Format: "text"},
		Paths: PathsConfig{
			InputDir:   "data/raw",
			OutputDir:  "outputs",
			FiguresDir: "outputs/figures",
		},
		Artifacts: ArtifactsConfig{
			Parsed:    "ads_parsed_all.csv",
			Titles:    "ads_with_job_titles.csv",
			Skills:    "ads_with_skills.csv",
			Locations: "ads_with_locations.csv",
			Enriched:  "ads_enriched.csv",
		},
		Thresholds: ThresholdsConfig{
			MinRoleAds:        30,
			MinSkillAdsGlobal: 20,
			MinPairAds:        5,
			TopN:              15,
			LocationTopN:      5,
			TitleCountsTop:    500,
			UnknownSamples:    300,
			ReportTopN:        30,
		},
		Charts: ChartsConfig{
			MapURL:   "https://upload.wikimedia.org/wikipedia/commons/thumb/b/be/Iran_location_map.svg/1200px-Iran_location_map.svg.png",
			MapFile:  "iran_map.png",
			Width:    1200,
			BarLimit: 20,
		},
		Workers: 4,
	}
}
