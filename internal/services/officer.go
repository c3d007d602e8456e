package services

import (
  "context"
  "fmt"
  "time"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/sparkbridge/hrms-backend/internal/dates"
  "github.com/sparkbridge/hrms-backend/internal/logger"
  "github.com/sparkbridge/hrms-backend/internal/provenance"
  "github.com/sparkbridge/hrms-backend/internal/repos"
  "github.com/sparkbridge/hrms-backend/internal/types"
  "github.com/sparkbridge/hrms-backend/internal/utils"
  "github.com/sparkbridge/hrms-backend/internal/validation"
)

// ProfileView is the merged officer profile handed to clients: one value
// per field plus its provenance, derived age, and per-field edit
// permissions for the requesting role.
type ProfileView struct {
  OfficerID     uuid.UUID                      `json:"officer_id"`
  Fields        map[string]string              `json:"fields"`
  FieldSources  map[string]provenance.Source   `json:"field_sources"`
  Age           int                            `json:"age"`
  Editable      map[string]bool                `json:"editable"`
  SourceTag     string                         `json:"_source"`
  ProfileStatus string                         `json:"profile_status"`
}

type OfficerService interface {
  GetProfile(ctx context.Context, officerID uuid.UUID, roleID int) (*ProfileView, error)
  UpdateProfile(ctx context.Context, officerID uuid.UUID, roleID int, edited map[string]string) (*ProfileView, error)
  IngestSparkSync(ctx context.Context, sync *types.SparkSync) error
}

type officerService struct {
  db          *gorm.DB
  log         *logger.Logger
  officerRepo repos.OfficerRepo
  sparkRepo   repos.SparkSyncRepo
  masterData  MasterDataService
}

func NewOfficerService(db *gorm.DB, log *logger.Logger, officerRepo repos.OfficerRepo, sparkRepo repos.SparkSyncRepo, masterData MasterDataService) OfficerService {
  return &officerService{
    db:          db,
    log:         log.With("service", "OfficerService"),
    officerRepo: officerRepo,
    sparkRepo:   sparkRepo,
    masterData:  masterData,
  }
}

func (osvc *officerService) GetProfile(ctx context.Context, officerID uuid.UUID, roleID int) (*ProfileView, error) {
  officer, sync, err := osvc.load(ctx, officerID)
  if err != nil {
    return nil, err
  }
  return osvc.buildView(ctx, officer, sync, roleID), nil
}

func (osvc *officerService) load(ctx context.Context, officerID uuid.UUID) (*types.Officer, *types.SparkSync, error) {
  officers, err := osvc.officerRepo.GetByIDs(ctx, nil, []uuid.UUID{officerID})
  if err != nil {
    return nil, nil, fmt.Errorf("load officer: %w", err)
  }
  if len(officers) == 0 {
    return nil, nil, ErrUserNotFound
  }
  syncs, err := osvc.sparkRepo.GetByOfficerIDs(ctx, nil, []uuid.UUID{officerID})
  if err != nil {
    osvc.log.Warn("SPARK sync load failed, merging without feed", "officer_id", officerID, "error", err)
    syncs = nil
  }
  var sync *types.SparkSync
  if len(syncs) > 0 {
    sync = syncs[0]
  }
  return officers[0], sync, nil
}

func (osvc *officerService) buildView(ctx context.Context, officer *types.Officer, sync *types.SparkSync, roleID int) *ProfileView {
  in := provenance.ProfileInput{
    Officer:  utils.StringMap(officer.Fields),
    Operator: utils.StringMap(officer.OperatorFields),
  }
  if sync != nil {
    in.Spark = utils.StringMap(sync.Profile)
  }
  merged, sources := provenance.ResolveProfile(in, provenance.ProfileFields, osvc.masterData.CodeResolver(ctx))

  editable := make(map[string]bool, len(sources))
  for field, src := range sources {
    // SPARK-sourced fields are locked for the officer; the back-office
    // operator can override anything.
    editable[field] = roleID == types.RoleOperator || src != provenance.SourceSpark
  }

  return &ProfileView{
    OfficerID:     officer.ID,
    Fields:        merged,
    FieldSources:  sources,
    Age:           dates.Age(merged["date_of_birth"], time.Now()),
    Editable:      editable,
    SourceTag:     provenance.DeriveTag(sources),
    ProfileStatus: officer.ProfileStatus,
  }
}

// UpdateProfile validates the edited record, splits it into the user_data
// and spark_data buckets, and persists both in one transaction. The caller
// gets the refreshed merged view back; there is no page-reload semantic.
func (osvc *officerService) UpdateProfile(ctx context.Context, officerID uuid.UUID, roleID int, edited map[string]string) (*ProfileView, error) {
  officer, sync, err := osvc.load(ctx, officerID)
  if err != nil {
    return nil, err
  }
  view := osvc.buildView(ctx, officer, sync, roleID)

  candidate := make(map[string]string, len(view.Fields))
  for k, v := range view.Fields {
    candidate[k] = v
  }
  for k, v := range edited {
    if !view.Editable[k] {
      continue
    }
    if provenance.IsDateField(k) {
      v = dates.Normalize(v)
    }
    candidate[k] = v
  }

  if errs := validation.ValidateProfile(candidate, time.Now()); len(errs) > 0 {
    return nil, &ValidationError{Fields: errs}
  }

  userData, sparkData := provenance.SplitForSave(view.Fields, candidate, provenance.SparkFields)

  if officer.Fields == nil {
    officer.Fields = map[string]interface{}{}
  }
  if officer.OperatorFields == nil {
    officer.OperatorFields = map[string]interface{}{}
  }
  if officer.FieldSources == nil {
    officer.FieldSources = map[string]interface{}{}
  }
  for field, val := range userData {
    if roleID == types.RoleOperator {
      officer.OperatorFields[field] = val
      officer.FieldSources[field] = string(provenance.SourceOperator)
    } else {
      officer.Fields[field] = val
      officer.FieldSources[field] = string(provenance.SourceOfficer)
    }
  }
  // Re-confirmed payroll fields are stored back as SPARK-tagged values.
  for field, val := range sparkData {
    officer.Fields[field] = val
    officer.FieldSources[field] = string(provenance.SourceSpark)
  }

  err = osvc.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    return osvc.officerRepo.Update(ctx, tx, officer)
  })
  if err != nil {
    return nil, fmt.Errorf("persist profile: %w", err)
  }

  osvc.log.Info("Profile updated", "officer_id", officerID, "user_fields", len(userData), "spark_fields", len(sparkData))
  return osvc.buildView(ctx, officer, sync, roleID), nil
}

// IngestSparkSync stores the latest payroll feed for an officer, replacing
// any previous sync.
func (osvc *officerService) IngestSparkSync(ctx context.Context, sync *types.SparkSync) error {
  if sync.ID == uuid.Nil {
    sync.ID = uuid.New()
  }
  if sync.SyncedAt.IsZero() {
    sync.SyncedAt = time.Now()
  }
  if err := osvc.sparkRepo.Upsert(ctx, nil, sync); err != nil {
    return fmt.Errorf("upsert spark sync: %w", err)
  }
  osvc.log.Info("SPARK sync ingested", "officer_id", sync.OfficerID)
  return nil
}
