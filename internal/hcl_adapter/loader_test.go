package hcl_adapter

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

func writeHCL(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	return p
}

const datasetHCL = `
settings {
  assembly     = "GRCh38"
  annotation   = "V29"
  min_coalesce = "3"
}

dataset "/experiments/ENCSR000AAA/" {
  accession          = "ENCSR000AAA"
  contributing_files = ["/files/REF/"]
}

file "/files/FQ1/" {
  output_type           = "reads"
  output_category       = "raw data"
  biological_replicates = [1]
}

file "/files/BAM1/" {
  title                 = "Alignments"
  output_type           = "alignments"
  status                = "released"
  assembly              = "GRCh38"
  genome_annotation     = "V29"
  derived_from          = ["/files/FQ1/", "/files/REF/"]
  biological_replicates = [1]

  step_run "/analysis-step-runs/1/" {
    version = "1.2.0"
    analysis_step "/analysis-steps/align/" {
      title      = "Align"
      step_types = ["alignment", "filtering"]
      pipeline "/pipelines/chip/" {
        title = "ChIP-seq"
      }
    }
  }

  quality_metric "/quality-metrics/q1/" {
    type = "SamtoolsFlagstatsQualityMetric"
    attributes = {
      mapped      = 1200
      mapped_pct  = 98.5
      paired      = true
      read_groups = ["rg1", "rg2"]
    }
  }

  quality_metric "/quality-metrics/q2/" {
    type = "StarQualityMetric"
  }
}
`

func TestLoader_Load(t *testing.T) {
	t.Parallel()

	// Arrange
	dir := t.TempDir()
	path := writeHCL(t, dir, "dataset.hcl", datasetHCL)

	// Act
	bundle, err := NewLoader().Load(context.Background(), path)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, &config.Settings{Assembly: "GRCh38", Annotation: "V29", MinCoalesce: 3}, bundle.Settings)
	assert.Equal(t, &model.Dataset{
		ID:                "/experiments/ENCSR000AAA/",
		Accession:         "ENCSR000AAA",
		ContributingFiles: []string{"/files/REF/"},
	}, bundle.Dataset)

	want := []*model.File{
		{
			ID:                   "/files/FQ1/",
			OutputType:           "reads",
			OutputCategory:       model.OutputCategoryRaw,
			BiologicalReplicates: []int{1},
		},
		{
			ID:                   "/files/BAM1/",
			Title:                "Alignments",
			OutputType:           "alignments",
			Status:               "released",
			Assembly:             "GRCh38",
			GenomeAnnotation:     "V29",
			DerivedFrom:          []string{"/files/FQ1/", "/files/REF/"},
			BiologicalReplicates: []int{1},
			StepRun: &model.AnalysisStepExecution{
				ID:      "/analysis-step-runs/1/",
				Version: "1.2.0",
				Step: &model.AnalysisStep{
					ID:        "/analysis-steps/align/",
					Title:     "Align",
					StepTypes: []string{"alignment", "filtering"},
					Pipelines: []model.Pipeline{{ID: "/pipelines/chip/", Title: "ChIP-seq"}},
				},
			},
			QualityMetrics: []model.QualityMetric{
				{
					ID:   "/quality-metrics/q1/",
					Type: "SamtoolsFlagstatsQualityMetric",
					Attributes: map[string]any{
						"mapped":      int64(1200),
						"mapped_pct":  98.5,
						"paired":      true,
						"read_groups": []any{"rg1", "rg2"},
					},
				},
				{ID: "/quality-metrics/q2/", Type: "StarQualityMetric"},
			},
		},
	}
	if diff := cmp.Diff(want, bundle.Files); diff != "" {
		t.Errorf("files mismatch (-want +got):\n%s", diff)
	}
}

func TestLoader_LoadDirectory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeHCL(t, dir, "a.hcl", `file "a" { assembly = "GRCh38" }`)
	writeHCL(t, dir, "b.hcl", `file "b" { derived_from = ["a"] }`)
	writeHCL(t, dir, "notes.txt", `not hcl`)

	bundle, err := NewLoader().Load(context.Background(), dir)

	require.NoError(t, err)
	require.Len(t, bundle.Files, 2)
	assert.Equal(t, "a", bundle.Files[0].ID)
	assert.Equal(t, []string{"a"}, bundle.Files[1].DerivedFrom)
	assert.Nil(t, bundle.Settings)
	require.NotNil(t, bundle.Dataset, "missing dataset block yields an empty dataset")
	assert.Empty(t, bundle.Dataset.ContributingFiles)
}

func TestLoader_Errors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		files   map[string]string
		wantErr string
	}{
		{
			name:    "syntax error",
			files:   map[string]string{"a.hcl": `file "a" {`},
			wantErr: "failed to parse HCL file",
		},
		{
			name:    "missing metric type",
			files:   map[string]string{"a.hcl": "file \"a\" {\n  quality_metric \"q\" {}\n}\n"},
			wantErr: "failed to decode HCL file",
		},
		{
			name:    "attributes not an object",
			files:   map[string]string{"a.hcl": "file \"a\" {\n  quality_metric \"q\" {\n    type       = \"X\"\n    attributes = 5\n  }\n}\n"},
			wantErr: "expected an object",
		},
		{
			name:    "two datasets in one file",
			files:   map[string]string{"a.hcl": "dataset \"a\" {}\ndataset \"b\" {}\n"},
			wantErr: "only one dataset block is allowed",
		},
		{
			name:    "datasets across files",
			files:   map[string]string{"a.hcl": `dataset "a" {}`, "b.hcl": `dataset "b" {}`},
			wantErr: "only one dataset block is allowed",
		},
		{
			name:    "settings across files",
			files:   map[string]string{"a.hcl": `settings {}`, "b.hcl": `settings {}`},
			wantErr: "only one settings block is allowed",
		},
		{
			name:    "invalid min_coalesce",
			files:   map[string]string{"a.hcl": `settings { min_coalesce = "many" }`},
			wantErr: "invalid min_coalesce",
		},
		{
			name:    "min_coalesce below one",
			files:   map[string]string{"a.hcl": `settings { min_coalesce = 0 }`},
			wantErr: "must be at least 1",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			for name, content := range tc.files {
				writeHCL(t, dir, name, content)
			}

			_, err := NewLoader().Load(context.Background(), dir)

			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestLoader_MissingPath(t *testing.T) {
	t.Parallel()

	_, err := NewLoader().Load(context.Background(), filepath.Join(t.TempDir(), "missing.hcl"))

	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
