package provenance

import (
	"github.com/vk/provgraph/internal/dag"
	"github.com/vk/provgraph/internal/model"
)

const testAssembly = "GRCh38"

// fileOpt customizes a test file record.
type fileOpt func(*model.File)

func newFile(id string, opts ...fileOpt) *model.File {
	f := &model.File{ID: id, Assembly: testAssembly, OutputType: "alignments"}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func derivedFrom(ids ...string) fileOpt {
	return func(f *model.File) { f.DerivedFrom = ids }
}

func reps(n ...int) fileOpt {
	return func(f *model.File) { f.BiologicalReplicates = n }
}

func withStep(stepID string) fileOpt {
	return func(f *model.File) {
		f.StepRun = &model.AnalysisStepExecution{
			ID:      stepID + "-run",
			Version: "1.0",
			Step:    &model.AnalysisStep{ID: stepID, StepTypes: []string{stepID + " type"}},
		}
	}
}

func assembly(name string) fileOpt {
	return func(f *model.File) { f.Assembly = name }
}

func raw() fileOpt {
	return func(f *model.File) { f.OutputCategory = model.OutputCategoryRaw }
}

func status(s string) fileOpt {
	return func(f *model.File) { f.Status = s }
}

func metrics(m ...model.QualityMetric) fileOpt {
	return func(f *model.File) { f.QualityMetrics = m }
}

func nodeIDs(g *dag.Graph) []string {
	var ids []string
	for _, n := range g.Nodes() {
		ids = append(ids, n.ID)
	}
	return ids
}

func edgePairs(g *dag.Graph) [][2]string {
	var pairs [][2]string
	for _, e := range g.Edges() {
		pairs = append(pairs, [2]string{e.From, e.To})
	}
	return pairs
}
