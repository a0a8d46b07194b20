package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"JobAdsMiner/internal/aggregate"
	"JobAdsMiner/internal/catalog"
	"JobAdsMiner/internal/config"
	"JobAdsMiner/internal/geo"
	"JobAdsMiner/internal/jobtitle"
	"JobAdsMiner/internal/ports"
	"JobAdsMiner/internal/skills"
	"JobAdsMiner/internal/stage"
	"JobAdsMiner/internal/table"
)

// Deps wires the driven adapters and compiled catalogs into the miner.
type Deps struct {
	Source     ports.MessageSource
	Store      ports.TableStore
	Visualizer ports.Visualizer
	Fetcher    ports.AssetFetcher
	Catalog    *catalog.Catalog
	Jobs       *jobtitle.Classifier
	Skills     *skills.Extractor
	Geo        *geo.Tagger
	Logger     *slog.Logger
}

// Options are the tunables taken from config.
type Options struct {
	Artifacts    config.ArtifactsConfig
	Thresholds   config.ThresholdsConfig
	Charts       config.ChartsConfig
	FiguresDir   string
	Workers      int
	SkillsColumn string
}

// OptionsFromConfig extracts the miner options from the application config.
func OptionsFromConfig(cfg config.Config) Options {
	return Options{
		Artifacts:    cfg.Artifacts,
		Thresholds:   cfg.Thresholds,
		Charts:       cfg.Charts,
		FiguresDir:   cfg.Paths.FiguresDir,
		Workers:      cfg.Workers,
		SkillsColumn: cfg.SkillsColumn,
	}
}

// Miner implements every batch stage of the job-ad pipeline.
type Miner struct {
	source     ports.MessageSource
	store      ports.TableStore
	visualizer ports.Visualizer
	fetcher    ports.AssetFetcher
	catalog    *catalog.Catalog
	jobs       *jobtitle.Classifier
	skills     *skills.Extractor
	geo        *geo.Tagger
	opts       Options
	logger     *slog.Logger
}

// NewMiner constructs the orchestration component.
func NewMiner(deps Deps, opts Options) *Miner {
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	return &Miner{
		source:     deps.Source,
		store:      deps.Store,
		visualizer: deps.Visualizer,
		fetcher:    deps.Fetcher,
		catalog:    deps.Catalog,
		jobs:       deps.Jobs,
		skills:     deps.Skills,
		geo:        deps.Geo,
		opts:       opts,
		logger:     deps.Logger,
	}
}

// Stage names in pipeline order.
const (
	StageParse           = "parse"
	StageTitles          = "titles"
	StageSkills          = "skills"
	StageLocations       = "locations"
	StageBuild           = "build"
	StageRoleSkills      = "role-skills"
	StageRoleSkillMatrix = "role-skill-matrix"
	StageLocationRoles   = "location-roles"
	StageSkillGroups     = "skill-groups"
	StageTitleCounts     = "title-counts"
	StageCatalogs        = "catalogs"
	StageAudit           = "audit"
	StageReport          = "report"
	StageCharts          = "charts"
	StageAll             = "all"
)

// Stages returns every stage in pipeline order, followed by "all".
func (m *Miner) Stages() []stage.Stage {
	ordered := []stage.Stage{
		m.wrap(StageParse, m.Parse),
		m.wrap(StageTitles, m.Titles),
		m.wrap(StageSkills, m.Skills),
		m.wrap(StageLocations, m.Locations),
		m.wrap(StageBuild, m.Build),
		m.wrap(StageRoleSkills, m.RoleSkills),
		m.wrap(StageRoleSkillMatrix, m.RoleSkillMatrix),
		m.wrap(StageLocationRoles, m.LocationRoles),
		m.wrap(StageSkillGroups, m.SkillGroups),
		m.wrap(StageTitleCounts, m.TitleCounts),
		m.wrap(StageCatalogs, m.Catalogs),
		m.wrap(StageAudit, m.Audit),
		m.wrap(StageReport, m.Report),
		m.wrap(StageCharts, m.Charts),
	}
	all := stage.NewFunc(StageAll, func(ctx context.Context) error {
		for _, s := range ordered {
			if err := s.Run(ctx); err != nil {
				return err
			}
		}
		return nil
	})
	return append(ordered, all)
}

func (m *Miner) wrap(name string, run func(ctx context.Context) error) stage.Stage {
	return stage.NewFunc(name, func(ctx context.Context) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		m.info("stage started", "stage", name)
		if err := run(ctx); err != nil {
			return fmt.Errorf("stage %s: %w", name, err)
		}
		m.info("stage finished", "stage", name)
		return nil
	})
}

func (m *Miner) read(name string) (*table.Table, error) {
	t, err := m.store.Read(name)
	if err != nil {
		return nil, err
	}
	m.debug("artifact loaded", "file", name, "rows", t.Len())
	return t, nil
}

func (m *Miner) write(name string, t *table.Table) error {
	if err := m.store.Write(name, t); err != nil {
		return err
	}
	m.info("artifact written", "path", m.store.Path(name), "rows", t.Len())
	return nil
}

// countsTable renders value counts as a two-column table.
func countsTable(valueColumn, countColumn string, counts []aggregate.Count) *table.Table {
	t := table.New(valueColumn, countColumn)
	for _, c := range counts {
		t.MustAppend(c.Value, table.Itoa(c.N))
	}
	return t
}

func orUnknown(v, unknown string) string {
	if v == "" {
		return unknown
	}
	return v
}

func (m *Miner) info(msg string, args ...interface{}) {
	if m.logger == nil {
		return
	}
	m.logger.Info(msg, args...)
}

func (m *Miner) warn(msg string, args ...interface{}) {
	if m.logger == nil {
		return
	}
	m.logger.Warn(msg, args...)
}

func (m *Miner) debug(msg string, args ...interface{}) {
	if m.logger == nil {
		return
	}
	m.logger.Debug(msg, args...)
}
