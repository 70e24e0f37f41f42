package jsonloader

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/provgraph/internal/config"
	"github.com/vk/provgraph/internal/model"
)

func writeJSON(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	return p
}

const experimentJSON = `{
  "@id": "/experiments/ENCSR000AAA/",
  "accession": "ENCSR000AAA",
  "contributing_files": ["/files/REF/", {"@id": "/files/GTF/", "status": "released"}],
  "settings": {"assembly": "GRCh38", "min_coalesce": 4},
  "files": [
    {
      "@id": "/files/BAM1/",
      "accession": "BAM1",
      "output_type": "alignments",
      "assembly": "GRCh38",
      "derived_from": ["/files/FQ1/", {"@id": "/files/REF/"}],
      "biological_replicates": [1],
      "step_run": {
        "@id": "/analysis-step-runs/1/",
        "analysis_step_version": {
          "version": "2.0",
          "analysis_step": {
            "@id": "/analysis-steps/align/",
            "title": "Align",
            "analysis_step_types": ["alignment"],
            "pipelines": [{"@id": "/pipelines/chip/", "title": "ChIP-seq"}]
          }
        }
      },
      "quality_metrics": [
        {"@id": "/qm/1/", "@type": ["StarQualityMetric", "QualityMetric", "Item"], "uniquely_mapped": 0.9},
        {"@id": "/qm/2/", "@type": "GenericQualityMetric"}
      ]
    }
  ]
}`

func TestLoader_Load(t *testing.T) {
	t.Parallel()

	// Arrange
	path := writeJSON(t, t.TempDir(), "experiment.json", experimentJSON)

	// Act
	bundle, err := NewLoader().Load(context.Background(), path)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, &model.Dataset{
		ID:                "/experiments/ENCSR000AAA/",
		Accession:         "ENCSR000AAA",
		ContributingFiles: []string{"/files/REF/", "/files/GTF/"},
	}, bundle.Dataset)
	assert.Equal(t, &config.Settings{Assembly: "GRCh38", MinCoalesce: 4}, bundle.Settings)

	want := []*model.File{{
		ID:                   "/files/BAM1/",
		Accession:            "BAM1",
		OutputType:           "alignments",
		Assembly:             "GRCh38",
		DerivedFrom:          []string{"/files/FQ1/", "/files/REF/"},
		BiologicalReplicates: []int{1},
		StepRun: &model.AnalysisStepExecution{
			ID:      "/analysis-step-runs/1/",
			Version: "2.0",
			Step: &model.AnalysisStep{
				ID:        "/analysis-steps/align/",
				Title:     "Align",
				StepTypes: []string{"alignment"},
				Pipelines: []model.Pipeline{{ID: "/pipelines/chip/", Title: "ChIP-seq"}},
			},
		},
		QualityMetrics: []model.QualityMetric{
			{ID: "/qm/1/", Type: "StarQualityMetric", Attributes: map[string]any{"uniquely_mapped": 0.9}},
			{ID: "/qm/2/", Type: "GenericQualityMetric"},
		},
	}}
	if diff := cmp.Diff(want, bundle.Files); diff != "" {
		t.Errorf("files mismatch (-want +got):\n%s", diff)
	}
}

func TestLoader_FileArrays(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeJSON(t, dir, "a.json", `[{"@id": "a", "assembly": "GRCh38"}]`)
	writeJSON(t, dir, "b.json", `[{"@id": "b", "derived_from": ["a"], "step_run": {"@id": "run"}}]`)

	bundle, err := NewLoader().Load(context.Background(), dir)

	require.NoError(t, err)
	require.Len(t, bundle.Files, 2)
	assert.Equal(t, "a", bundle.Files[0].ID)
	assert.Equal(t, []string{"a"}, bundle.Files[1].DerivedFrom)
	require.NotNil(t, bundle.Files[1].StepRun)
	assert.Nil(t, bundle.Files[1].StepRun.Step)
	assert.Equal(t, &model.Dataset{}, bundle.Dataset)
	assert.Nil(t, bundle.Settings)
}

func TestLoader_Errors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		files   map[string]string
		wantErr string
	}{
		{name: "malformed", files: map[string]string{"a.json": `{"files": [`}, wantErr: "failed to decode JSON file"},
		{name: "bad reference", files: map[string]string{"a.json": `[{"@id": "a", "derived_from": [42]}]`}, wantErr: "reference must be a string"},
		{name: "two datasets", files: map[string]string{"a.json": `{"@id": "a"}`, "b.json": `{"@id": "b"}`}, wantErr: "only one dataset document"},
		{name: "negative threshold", files: map[string]string{"a.json": `{"settings": {"min_coalesce": -1}}`}, wantErr: "must not be negative"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			for name, content := range tc.files {
				writeJSON(t, dir, name, content)
			}

			_, err := NewLoader().Load(context.Background(), dir)

			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}
