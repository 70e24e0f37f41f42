package provenance

import (
	"context"
	"log/slog"
	"sort"

	"github.com/vk/provgraph/internal/dag"
	"github.com/vk/provgraph/internal/model"
	"github.com/vk/provgraph/internal/nodeid"
)

const (
	styleFile         = "file"
	styleContributing = "contributing"
	styleStep         = "analysis-step"
	styleReplicate    = "replicate"
	styleError        = "error"
	styleActive       = "active"
)

// builder holds the state of a single assembly.
type builder struct {
	ctx     context.Context
	logger  *slog.Logger
	opts    Options
	memo    *Memo
	index   *FileIndex
	reverse *ReverseIndex
	dataset *model.Dataset

	matching           []*model.File
	matchingSet        map[string]bool
	matchingDependents map[string][]string
	replicates         *ReplicateGroups
	used               []string
	usedSet            map[string]bool
	coalesced          *coalescing
	missing            []string
	missingSet         map[string]bool

	graph   *dag.Graph
	placed  map[string]*model.File
	pending []dag.Edge
}

func (b *builder) build(filter Filter) (*Result, error) {
	b.logger.Debug("Build: Starting provenance graph construction.", "files", b.index.Len())

	matching := selectMatching(b.index, filter)
	if len(matching) == 0 {
		return nil, &NoGraphableRelationshipsError{Reason: "no files match the selected assembly/annotation"}
	}
	kept, islands := removeIslands(matching, b.reverse)
	if len(kept) == 0 {
		b.logger.Info("Build: Every matching file is an island.", "islands", len(islands))
		return nil, &NoGraphableRelationshipsError{
			Reason:  "no file relationships for the selected assembly/annotation",
			FileIDs: islands,
		}
	}
	b.logger.Debug("Build: Matching files selected.", "matching", len(kept), "islands", len(islands))
	b.classify(kept)

	// Node creation. Later passes reference nodes created by earlier ones.
	b.createReplicateNodes()
	b.createMatchingFileNodes()
	b.createAncestorNodes()
	b.createContributingNodes()
	b.createCoalescedNodes()
	b.createMissingNodes()
	b.logger.Debug("Build: Node creation complete.", "node_count", b.graph.Len())

	b.linkEdges()
	b.logger.Debug("Build: Node linking complete.", "edge_count", len(b.graph.Edges()))

	if err := b.graph.DetectCycles(); err != nil {
		b.logger.Warn("Build: Derivation cycle found in input records.", "error", err)
	}

	matchingIDs := make([]string, len(b.matching))
	for i, f := range b.matching {
		matchingIDs[i] = f.ID
	}
	b.logger.Debug("Build: Graph construction successful.")
	return &Result{
		Graph:       b.graph,
		PlacedFiles: b.placed,
		Matching:    matchingIDs,
		Groups:      b.coalesced.groups,
		Missing:     b.missing,
	}, nil
}

// classify computes the replicate buckets and splits referenced but unlisted
// files into contributing, coalesced and missing ones.
func (b *builder) classify(matching []*model.File) {
	b.matching = matching
	b.matchingSet = make(map[string]bool, len(matching))
	for _, f := range matching {
		b.matchingSet[f.ID] = true
	}
	b.matchingDependents = dependentsAmong(matching)
	b.replicates = groupReplicates(matching, b.index)

	b.used = resolveContributing(b.dataset, b.index, b.matchingDependents)
	b.usedSet = make(map[string]bool, len(b.used))
	for _, id := range b.used {
		b.usedSet[id] = true
	}
	b.coalesced = coalesce(b.used, b.matchingDependents, b.opts.MinCoalesce, b.memo)

	b.missing = detectMissing(matching, b.index, b.usedSet)
	b.missingSet = make(map[string]bool, len(b.missing))
	for _, id := range b.missing {
		b.missingSet[id] = true
	}

	b.logger.Debug("Build: Classification complete.",
		"replicates", len(b.replicates.Numbers()),
		"contributing", len(b.coalesced.individual),
		"coalesced_groups", len(b.coalesced.groups),
		"missing", len(b.missing),
	)
}

func (b *builder) createReplicateNodes() {
	for _, n := range b.replicates.Numbers() {
		b.addNode(&dag.Node{
			ID:    nodeid.Replicate(n),
			Label: replicateLabel(n),
			Kind:  dag.ReplicateNode,
			Style: []string{styleReplicate},
		})
	}
}

func (b *builder) createMatchingFileNodes() {
	for _, f := range b.matching {
		parent := b.parentOf(f)
		b.addFileNode(f, parent, b.qcSubNodes(f))

		stepID := b.createStepNode(f, parent)
		if stepID == "" {
			continue
		}
		b.connect(stepID, nodeid.File(f.ID))
		for _, src := range f.DerivedFrom {
			srcID, ok := b.resolveSource(src)
			if !ok {
				b.logger.Debug("Skipping unresolvable derivation source.", "file_id", f.ID, "source", src)
				continue
			}
			b.connect(srcID, stepID)
		}
	}
}

// createStepNode creates, or reuses, the step node between f and its
// derivation sources and returns its ID. Files without derivation sources
// get no step.
func (b *builder) createStepNode(f *model.File, parent string) string {
	if !f.HasDerivedFrom() {
		return ""
	}
	derivedKey := b.memo.DerivedKey(f)

	step := f.AnalysisStep()
	if step == nil {
		id := nodeid.ErrorStep(derivedKey)
		if b.addNode(&dag.Node{
			ID:     id,
			Label:  unknownStepLabel,
			Kind:   dag.StepNode,
			Parent: parent,
			Style:  []string{styleStep, styleError},
		}) {
			b.logger.Warn("File derives from other files but has no analysis step.", "file_id", f.ID)
		}
		return id
	}

	id := nodeid.Step(derivedKey, step.ID)
	b.addNode(&dag.Node{
		ID:          id,
		Label:       stepLabel(step),
		Kind:        dag.StepNode,
		Parent:      parent,
		Style:       []string{styleStep},
		Step:        step,
		StepVersion: f.StepRun.Version,
		Pipelines:   pipelineTitles(step),
	})
	return id
}

// createAncestorNodes draws listed derivation sources that did not match the
// filter, so that every edge into a step has a source node.
func (b *builder) createAncestorNodes() {
	for _, f := range b.matching {
		for _, src := range f.DerivedFrom {
			if b.matchingSet[src] {
				continue
			}
			srcFile, ok := b.index.ByID(src)
			if !ok {
				continue
			}
			if _, done := b.placed[src]; done {
				continue
			}
			b.addFileNode(srcFile, b.parentOf(srcFile), nil)
		}
	}
}

func (b *builder) createContributingNodes() {
	for _, id := range b.coalesced.individual {
		b.addNode(&dag.Node{
			ID:           nodeid.File(id),
			Label:        ShortID(id),
			Kind:         dag.FileNode,
			Style:        []string{styleFile, styleContributing},
			Contributing: id,
		})
	}
}

func (b *builder) createCoalescedNodes() {
	for _, group := range b.coalesced.groups {
		b.addNode(&dag.Node{
			ID:      nodeid.Coalesced(group.Key),
			Label:   coalescedLabel(len(group.Members)),
			Kind:    dag.CoalescedNode,
			Style:   []string{styleFile, styleContributing},
			Members: append([]string(nil), group.Members...),
		})
	}
}

func (b *builder) createMissingNodes() {
	for _, id := range b.missing {
		b.logger.Warn("Derivation source cannot be resolved.", "source", id)
		b.addNode(&dag.Node{
			ID:    nodeid.File(id),
			Label: missingLabel(id),
			Kind:  dag.MissingNode,
			Style: []string{styleFile, styleError},
		})
	}
}

// linkEdges adds the edges recorded during node creation, in record order.
func (b *builder) linkEdges() {
	for _, e := range b.pending {
		if err := b.graph.AddEdge(e.From, e.To); err != nil {
			b.logger.Warn("Skipping edge.", "from", e.From, "to", e.To, "error", err)
		}
	}
}

// resolveSource returns the ID of the node a derivation source is drawn as.
func (b *builder) resolveSource(src string) (string, bool) {
	if _, listed := b.index.ByID(src); listed {
		return nodeid.File(src), true
	}
	if group, ok := b.coalesced.memberOf[src]; ok {
		return nodeid.Coalesced(group.Key), true
	}
	if b.usedSet[src] || b.missingSet[src] {
		return nodeid.File(src), true
	}
	return "", false
}

func (b *builder) addFileNode(f *model.File, parent string, qc []dag.SubNode) {
	style := []string{styleFile}
	if b.opts.Colorize && f.Status != "" {
		style = append(style, f.Status)
	}
	if b.addNode(&dag.Node{
		ID:     nodeid.File(f.ID),
		Label:  fileLabel(f),
		Kind:   dag.FileNode,
		Parent: parent,
		Style:  style,
		File:   f,
		QC:     qc,
	}) {
		if input, ok := b.index.Input(f.ID); ok {
			b.placed[f.ID] = input
		} else {
			b.placed[f.ID] = f
		}
	}
}

// qcSubNodes returns the metric sub-nodes of f sorted by metric type, then ID.
func (b *builder) qcSubNodes(f *model.File) []dag.SubNode {
	if len(f.QualityMetrics) == 0 {
		return nil
	}
	order := make([]int, len(f.QualityMetrics))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		mi, mj := f.QualityMetrics[order[i]], f.QualityMetrics[order[j]]
		if mi.Type != mj.Type {
			return mi.Type < mj.Type
		}
		return mi.ID < mj.ID
	})

	subNodes := make([]dag.SubNode, 0, len(order))
	for _, i := range order {
		metric := &f.QualityMetrics[i]
		subNodes = append(subNodes, dag.SubNode{
			ID:     b.memo.QCID(metric, f),
			Label:  QCAbbreviation(metric.Type),
			Metric: metric,
		})
	}
	return subNodes
}

func (b *builder) parentOf(f *model.File) string {
	if rep, ok := b.replicates.ParentOf(f); ok {
		return nodeid.Replicate(rep)
	}
	return ""
}

// addNode inserts n, tagging it active when it is the selected node.
func (b *builder) addNode(n *dag.Node) bool {
	if b.opts.SelectedNodeID != "" && n.ID == b.opts.SelectedNodeID {
		n.Style = append(n.Style, styleActive)
	}
	return b.graph.AddNode(n)
}

func (b *builder) connect(from, to string) {
	b.pending = append(b.pending, dag.Edge{From: from, To: to})
}
