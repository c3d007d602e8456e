package services

import (
  "context"
  "encoding/json"
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

// ServiceRecordView is one row of the merged service history as clients see
// it: persisted rows, pending SPARK rows awaiting confirmation, and
// surfaced duplicate-match conflicts.
type ServiceRecordView struct {
  ID           string                         `json:"id"`
  Fields       map[string]string              `json:"fields"`
  FieldSources map[string]provenance.Source   `json:"field_sources"`
  SourceTag    string                         `json:"_source"`
  IsSaved      bool                           `json:"is_saved"`
  Conflict     bool                           `json:"conflict,omitempty"`
}

// ServiceHistoryView is the merged list plus derived gap analysis. Gap data
// is presentational only and never persisted.
type ServiceHistoryView struct {
  Records    []ServiceRecordView       `json:"records"`
  Gaps       []provenance.Gap          `json:"gaps"`
  CurrentGap *provenance.CurrentGap    `json:"current_gap,omitempty"`
}

type ServiceHistoryService interface {
  List(ctx context.Context, officerID uuid.UUID) (*ServiceHistoryView, error)
  Create(ctx context.Context, officerID uuid.UUID, roleID int, fields map[string]string, sources map[string]string) (*types.ServiceRecord, error)
  Update(ctx context.Context, officerID uuid.UUID, recordID uuid.UUID, roleID int, fields map[string]string) (*types.ServiceRecord, error)
  Delete(ctx context.Context, officerID uuid.UUID, recordID uuid.UUID) error
}

type serviceHistoryService struct {
  db          *gorm.DB
  log         *logger.Logger
  recordRepo  repos.ServiceRecordRepo
  sparkRepo   repos.SparkSyncRepo
  officerRepo repos.OfficerRepo
}

func NewServiceHistoryService(db *gorm.DB, log *logger.Logger, recordRepo repos.ServiceRecordRepo, sparkRepo repos.SparkSyncRepo, officerRepo repos.OfficerRepo) ServiceHistoryService {
  return &serviceHistoryService{
    db:          db,
    log:         log.With("service", "ServiceHistoryService"),
    recordRepo:  recordRepo,
    sparkRepo:   sparkRepo,
    officerRepo: officerRepo,
  }
}

func (sh *serviceHistoryService) List(ctx context.Context, officerID uuid.UUID) (*ServiceHistoryView, error) {
  saved, err := sh.recordRepo.GetByOfficerIDs(ctx, nil, []uuid.UUID{officerID})
  if err != nil {
    return nil, fmt.Errorf("load service records: %w", err)
  }

  sparkEntries := sh.loadSparkEntries(ctx, officerID)

  resolverInput := make([]provenance.ServiceRecord, 0, len(saved))
  for _, rec := range saved {
    resolverInput = append(resolverInput, toResolverRecord(rec))
  }

  merged := provenance.MergeServiceHistory(sparkEntries, resolverInput)
  gaps, currentGap := provenance.ComputeGaps(merged, time.Now())

  views := make([]ServiceRecordView, 0, len(merged))
  for _, rec := range merged {
    views = append(views, ServiceRecordView{
      ID:           rec.ID,
      Fields:       rec.Fields,
      FieldSources: rec.Sources,
      SourceTag:    rec.Tag(),
      IsSaved:      rec.IsSaved,
      Conflict:     rec.Conflict,
    })
  }

  return &ServiceHistoryView{Records: views, Gaps: gaps, CurrentGap: currentGap}, nil
}

// loadSparkEntries is best-effort: a missing or unreadable feed degrades to
// no pending rows rather than failing the listing.
func (sh *serviceHistoryService) loadSparkEntries(ctx context.Context, officerID uuid.UUID) []map[string]string {
  syncs, err := sh.sparkRepo.GetByOfficerIDs(ctx, nil, []uuid.UUID{officerID})
  if err != nil {
    sh.log.Warn("SPARK sync load failed, listing saved records only", "officer_id", officerID, "error", err)
    return nil
  }
  if len(syncs) == 0 || len(syncs[0].ServiceDetails) == 0 {
    return nil
  }
  var entries []map[string]string
  if err := json.Unmarshal(syncs[0].ServiceDetails, &entries); err != nil {
    sh.log.Warn("SPARK service_details unreadable", "officer_id", officerID, "error", err)
    return nil
  }
  return entries
}

func toResolverRecord(rec *types.ServiceRecord) provenance.ServiceRecord {
  fields := utils.StringMap(rec.Fields)
  fields["designation"] = rec.Designation
  fields["department"] = rec.Department
  fields["start_date"] = rec.StartDate
  fields["end_date"] = rec.EndDate

  sources := make(provenance.FieldSources, len(rec.FieldSources))
  for field, raw := range utils.StringMap(rec.FieldSources) {
    sources[field] = provenance.ParseSource(raw)
  }
  return provenance.ServiceRecord{
    ID:      rec.ID.String(),
    Fields:  fields,
    Sources: sources,
    IsSaved: true,
  }
}

func (sh *serviceHistoryService) Create(ctx context.Context, officerID uuid.UUID, roleID int, fields map[string]string, sources map[string]string) (*types.ServiceRecord, error) {
  fieldSources := make(provenance.FieldSources, len(fields))
  editorSource := provenance.SourceOfficer
  if roleID == types.RoleOperator {
    editorSource = provenance.SourceOperator
  }
  for field := range fields {
    if raw, ok := sources[field]; ok {
      fieldSources[field] = provenance.ParseSource(raw)
    } else {
      fieldSources[field] = editorSource
    }
  }

  if err := sh.validate(ctx, officerID, fields, fieldSources); err != nil {
    return nil, err
  }

  record := buildRecord(uuid.New(), officerID, fields, fieldSources)
  _, err := sh.recordRepo.Create(ctx, nil, []*types.ServiceRecord{record})
  if err != nil {
    return nil, fmt.Errorf("create service record: %w", err)
  }
  sh.log.Info("Service record created", "officer_id", officerID, "record_id", record.ID)
  return record, nil
}

func (sh *serviceHistoryService) Update(ctx context.Context, officerID uuid.UUID, recordID uuid.UUID, roleID int, fields map[string]string) (*types.ServiceRecord, error) {
  records, err := sh.recordRepo.GetByIDs(ctx, nil, []uuid.UUID{recordID})
  if err != nil {
    return nil, fmt.Errorf("load service record: %w", err)
  }
  if len(records) == 0 || records[0].OfficerID != officerID {
    return nil, ErrNotAuthorized
  }
  existing := records[0]

  editorSource := provenance.SourceOfficer
  if roleID == types.RoleOperator {
    editorSource = provenance.SourceOperator
  }

  current := toResolverRecord(existing)
  for field, val := range fields {
    if provenance.IsDateField(field) {
      val = dates.Normalize(val)
    }
    if current.Fields[field] != val {
      current.Fields[field] = val
      current.Sources[field] = editorSource
    }
  }

  if err := sh.validate(ctx, officerID, current.Fields, current.Sources); err != nil {
    return nil, err
  }

  updated := buildRecord(existing.ID, officerID, current.Fields, current.Sources)
  updated.CreatedAt = existing.CreatedAt
  if err := sh.recordRepo.Update(ctx, nil, updated); err != nil {
    return nil, fmt.Errorf("update service record: %w", err)
  }
  return updated, nil
}

func (sh *serviceHistoryService) Delete(ctx context.Context, officerID uuid.UUID, recordID uuid.UUID) error {
  records, err := sh.recordRepo.GetByIDs(ctx, nil, []uuid.UUID{recordID})
  if err != nil {
    return fmt.Errorf("load service record: %w", err)
  }
  if len(records) == 0 || records[0].OfficerID != officerID {
    return ErrNotAuthorized
  }
  return sh.recordRepo.DeleteByIDs(ctx, nil, []uuid.UUID{recordID})
}

func (sh *serviceHistoryService) validate(ctx context.Context, officerID uuid.UUID, fields map[string]string, sources provenance.FieldSources) error {
  bounds := sh.loadBounds(ctx, officerID)
  if errs := validation.ValidateServiceRecord(fields, sources, bounds, time.Now()); len(errs) > 0 {
    return &ValidationError{Fields: errs}
  }
  return nil
}

// loadBounds pulls the employment window from the officer's personal
// record; a missing profile leaves the bounds open rather than blocking.
func (sh *serviceHistoryService) loadBounds(ctx context.Context, officerID uuid.UUID) validation.ServiceBounds {
  officers, err := sh.officerRepo.GetByIDs(ctx, nil, []uuid.UUID{officerID})
  if err != nil || len(officers) == 0 {
    return validation.ServiceBounds{}
  }
  fields := utils.StringMap(officers[0].Fields)
  return validation.ServiceBounds{
    DateOfJoining:  fields["date_of_joining"],
    RetirementDate: fields["retirement_date"],
  }
}

func buildRecord(id uuid.UUID, officerID uuid.UUID, fields map[string]string, sources provenance.FieldSources) *types.ServiceRecord {
  normalized := make(map[string]string, len(fields))
  for field, val := range fields {
    if provenance.IsDateField(field) {
      val = dates.Normalize(val)
    }
    normalized[field] = val
  }

  sourceStrings := make(map[string]string, len(sources))
  for field, src := range sources {
    sourceStrings[field] = string(src)
  }

  return &types.ServiceRecord{
    ID:           id,
    OfficerID:    officerID,
    Designation:  normalized["designation"],
    Department:   normalized["department"],
    StartDate:    normalized["start_date"],
    EndDate:      normalized["end_date"],
    Fields:       utils.JSONMap(normalized),
    FieldSources: utils.JSONMap(sourceStrings),
  }
}
