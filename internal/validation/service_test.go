package validation

import (
  "testing"

  "github.com/sparkbridge/hrms-backend/internal/provenance"
)

var testBounds = ServiceBounds{
  DateOfJoining:  "2015-07-01",
  RetirementDate: "2048-06-30",
}

func TestValidateServiceRecord(t *testing.T) {
  cases := []struct {
    name      string
    fields    map[string]string
    sources   provenance.FieldSources
    wantField string
  }{
    {
      name: "valid_pre_cutover",
      fields: map[string]string{
        "start_date": "2018-01-01",
        "end_date":   "2019-12-31",
      },
      wantField: "",
    },
    {
      name: "valid_post_cutover_with_order",
      fields: map[string]string{
        "start_date":   "2021-03-01",
        "end_date":     "2022-06-30",
        "order_number": "GO(Rt)123/2021",
        "order_date":   "2021-02-15",
      },
      wantField: "",
    },
    {
      name:      "missing_start",
      fields:    map[string]string{"end_date": "2020-01-01"},
      wantField: "start_date",
    },
    {
      name: "end_before_start",
      fields: map[string]string{
        "start_date": "2018-06-01",
        "end_date":   "2018-01-01",
      },
      wantField: "end_date",
    },
    {
      name: "start_before_joining",
      fields: map[string]string{
        "start_date": "2014-01-01",
      },
      wantField: "start_date",
    },
    {
      name: "end_after_retirement",
      fields: map[string]string{
        "start_date": "2018-01-01",
        "end_date":   "2049-01-01",
      },
      wantField: "end_date",
    },
    {
      name: "order_number_mandatory_after_cutover",
      fields: map[string]string{
        "start_date": "2020-01-01",
        "order_date": "2019-12-20",
      },
      wantField: "order_number",
    },
    {
      name: "order_date_mandatory_after_cutover",
      fields: map[string]string{
        "start_date":   "2021-03-01",
        "order_number": "GO(Rt)123/2021",
      },
      wantField: "order_date",
    },
    {
      name: "order_date_in_future",
      fields: map[string]string{
        "start_date":   "2021-03-01",
        "order_number": "GO(Rt)123/2021",
        "order_date":   "2030-01-01",
      },
      wantField: "order_date",
    },
    {
      name: "order_date_after_start",
      fields: map[string]string{
        "start_date":   "2021-03-01",
        "order_number": "GO(Rt)123/2021",
        "order_date":   "2021-04-01",
      },
      wantField: "order_date",
    },
    {
      name: "spark_order_date_trusted_as_is",
      fields: map[string]string{
        "start_date":   "2021-03-01",
        "order_number": "GO(Rt)123/2021",
        "order_date":   "2021-04-01",
      },
      sources:   provenance.FieldSources{"order_date": provenance.SourceSpark},
      wantField: "",
    },
    {
      name: "spark_missing_order_date_not_required",
      fields: map[string]string{
        "start_date":   "2021-03-01",
        "order_number": "GO(Rt)123/2021",
      },
      sources:   provenance.FieldSources{"order_date": provenance.SourceSpark},
      wantField: "",
    },
  }
  for _, tc := range cases {
    t.Run(tc.name, func(t *testing.T) {
      errs := ValidateServiceRecord(tc.fields, tc.sources, testBounds, testNow(t))
      if tc.wantField == "" {
        if len(errs) != 0 {
          t.Fatalf("expected no errors, got %v", errs)
        }
        return
      }
      if errs[tc.wantField] == "" {
        t.Fatalf("expected error on %s, got %v", tc.wantField, errs)
      }
    })
  }
}

func TestValidateServiceRecordSparkDateFormats(t *testing.T) {
  fields := map[string]string{
    "start_date": "01/03/2018",
    "end_date":   "30/06/2019",
  }
  errs := ValidateServiceRecord(fields, nil, testBounds, testNow(t))
  if len(errs) != 0 {
    t.Fatalf("normalizable SPARK dates must validate, got %v", errs)
  }
}
