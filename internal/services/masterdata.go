package services

import (
  "context"
  "encoding/json"
  "fmt"
  "os"
  "sync"
  "time"

  "golang.org/x/sync/errgroup"
  "gopkg.in/yaml.v3"
  "gorm.io/gorm"

  redisclient "github.com/sparkbridge/hrms-backend/internal/clients/redis"
  "github.com/sparkbridge/hrms-backend/internal/logger"
  "github.com/sparkbridge/hrms-backend/internal/provenance"
  "github.com/sparkbridge/hrms-backend/internal/repos"
  "github.com/sparkbridge/hrms-backend/internal/types"
)

const masterCacheTTL = time.Hour

type MasterDataService interface {
  SeedFromYAML(ctx context.Context, path string) error
  GetAll(ctx context.Context) (map[string][]*types.MasterRecord, error)
  CodeResolver(ctx context.Context) provenance.CodeResolver
}

type masterDataService struct {
  db      *gorm.DB
  log     *logger.Logger
  repo    repos.MasterDataRepo
  cache   redisclient.Store
}

func NewMasterDataService(db *gorm.DB, log *logger.Logger, repo repos.MasterDataRepo, cache redisclient.Store) MasterDataService {
  return &masterDataService{
    db:    db,
    log:   log.With("service", "MasterDataService"),
    repo:  repo,
    cache: cache,
  }
}

type seedFile map[string][]struct {
  Code      string `yaml:"code"`
  Label     string `yaml:"label"`
  SortOrder int    `yaml:"sort_order"`
}

func (ms *masterDataService) SeedFromYAML(ctx context.Context, path string) error {
  raw, err := os.ReadFile(path)
  if err != nil {
    return fmt.Errorf("read master-data seed: %w", err)
  }
  var seed seedFile
  if err := yaml.Unmarshal(raw, &seed); err != nil {
    return fmt.Errorf("parse master-data seed: %w", err)
  }
  for kind, entries := range seed {
    records := make([]*types.MasterRecord, 0, len(entries))
    for _, e := range entries {
      records = append(records, &types.MasterRecord{
        Kind:      kind,
        Code:      e.Code,
        Label:     e.Label,
        SortOrder: e.SortOrder,
      })
    }
    if err := ms.repo.ReplaceKind(ctx, nil, kind, records); err != nil {
      return fmt.Errorf("seed master-data kind %s: %w", kind, err)
    }
    ms.log.Info("Seeded master-data kind", "kind", kind, "count", len(records))
  }
  return nil
}

// GetAll loads every reference table concurrently. A table that fails to
// load degrades to an empty list with a warning; the call as a whole never
// fails on a partial outage.
func (ms *masterDataService) GetAll(ctx context.Context) (map[string][]*types.MasterRecord, error) {
  out := make(map[string][]*types.MasterRecord, len(types.MasterKinds))
  var mu sync.Mutex

  g, gctx := errgroup.WithContext(ctx)
  for _, kind := range types.MasterKinds {
    kind := kind
    g.Go(func() error {
      records, err := ms.loadKind(gctx, kind)
      if err != nil {
        ms.log.Warn("Master-data load failed, degrading to empty list", "kind", kind, "error", err)
        records = []*types.MasterRecord{}
      }
      mu.Lock()
      out[kind] = records
      mu.Unlock()
      return nil
    })
  }
  if err := g.Wait(); err != nil {
    return nil, err
  }
  return out, nil
}

func (ms *masterDataService) loadKind(ctx context.Context, kind string) ([]*types.MasterRecord, error) {
  cacheKey := "masterdata:" + kind
  if ms.cache != nil {
    if cached, ok, err := ms.cache.Get(ctx, cacheKey); err == nil && ok {
      var records []*types.MasterRecord
      if jsonErr := json.Unmarshal([]byte(cached), &records); jsonErr == nil {
        return records, nil
      }
    }
  }
  records, err := ms.repo.GetByKind(ctx, nil, kind)
  if err != nil {
    return nil, err
  }
  if ms.cache != nil {
    if payload, jsonErr := json.Marshal(records); jsonErr == nil {
      _ = ms.cache.Set(ctx, cacheKey, string(payload), masterCacheTTL)
    }
  }
  return records, nil
}

// Coded profile fields and the reference table resolving each.
var codedFieldKinds = map[string]string{
  "gender_id":      "gender",
  "state_id":       "state",
  "district_id":    "district",
  "designation_id": "designation",
  "cadre_id":       "cadre",
  "recruitment_id": "recruitment",
}

// CodeResolver adapts master-data lookups for the personal resolver: SPARK
// code fields resolve to master-record ids, everything else passes through.
// A failed lookup marks the SPARK value as absent.
func (ms *masterDataService) CodeResolver(ctx context.Context) provenance.CodeResolver {
  return func(field, raw string) (string, bool) {
    kind, coded := codedFieldKinds[field]
    if !coded {
      return raw, true
    }
    rec, err := ms.repo.GetByKindAndCode(ctx, nil, kind, raw)
    if err != nil || rec == nil {
      return "", false
    }
    return fmt.Sprint(rec.ID), true
  }
}
