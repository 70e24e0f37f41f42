package provenance

import (
	"context"

	"github.com/vk/provgraph/internal/ctxlog"
	"github.com/vk/provgraph/internal/dag"
	"github.com/vk/provgraph/internal/model"
)

// Options tunes graph assembly.
type Options struct {
	// MinCoalesce is the smallest contributing-file group drawn as one
	// coalesced node. Zero means DefaultMinCoalesce.
	MinCoalesce int
	// SelectedNodeID marks the node the user selected with the "active" style.
	SelectedNodeID string
	// Colorize appends each file's status to its node style.
	Colorize bool
}

// Result is the outcome of a successful assembly.
type Result struct {
	Graph *dag.Graph
	// PlacedFiles holds the input files drawn as file nodes, keyed by ID.
	PlacedFiles map[string]*model.File
	// Matching lists the IDs of the files matching the filter, in input order.
	Matching []string
	// Groups lists the materialized coalescing groups, sorted by key.
	Groups []*CoalescingGroup
	// Missing lists the unresolvable derivation sources, in first-seen order.
	Missing []string
}

// Assembler assembles provenance graphs for one file list under changing
// filters. It caches derived keys between calls; SetFiles invalidates them.
// An Assembler is not safe for concurrent use.
type Assembler struct {
	opts    Options
	memo    *Memo
	index   *FileIndex
	reverse *ReverseIndex
}

// NewAssembler creates an assembler with no files.
func NewAssembler(opts Options) *Assembler {
	if opts.MinCoalesce <= 0 {
		opts.MinCoalesce = DefaultMinCoalesce
	}
	return &Assembler{
		opts:    opts,
		memo:    NewMemo(),
		index:   &FileIndex{byID: map[string]*model.File{}},
		reverse: &ReverseIndex{dependents: map[string][]*model.File{}},
	}
}

// SetFiles replaces the file list, rebuilding both indexes and resetting
// the memo.
func (a *Assembler) SetFiles(ctx context.Context, files []*model.File) {
	a.memo.Reset()
	a.index = NewFileIndex(ctx, files)
	a.reverse = NewReverseIndex(a.index)
}

// Memo exposes the assembler's cache.
func (a *Assembler) Memo() *Memo {
	return a.memo
}

// Assemble builds the provenance graph of dataset for the given filter. An
// empty file list yields an empty graph. The only error returned is a
// *NoGraphableRelationshipsError.
func (a *Assembler) Assemble(ctx context.Context, dataset *model.Dataset, filter Filter) (*Result, error) {
	name := ""
	if dataset != nil {
		name = dataset.Accession
	}
	ctx, logger := ctxlog.With(ctx, "dataset", name, "assembly", filter.Assembly, "annotation", filter.Annotation)

	if a.index.Len() == 0 {
		logger.Debug("Assemble: No files, returning an empty graph.")
		return &Result{Graph: dag.New(name), PlacedFiles: map[string]*model.File{}}, nil
	}
	if filter.Assembly == "" {
		return nil, &NoGraphableRelationshipsError{Reason: "no assembly selected"}
	}

	b := &builder{
		ctx:     ctx,
		logger:  logger,
		opts:    a.opts,
		memo:    a.memo,
		index:   a.index,
		reverse: a.reverse,
		dataset: dataset,
		graph:   dag.New(name),
		placed:  make(map[string]*model.File),
	}
	return b.build(filter)
}

// AssembleGraph is a one-shot helper that assembles the graph of files for
// the selected assembly and annotation with default options.
func AssembleGraph(ctx context.Context, dataset *model.Dataset, files []*model.File, assembly, annotation string) (*Result, error) {
	a := NewAssembler(Options{})
	a.SetFiles(ctx, files)
	return a.Assemble(ctx, dataset, Filter{Assembly: assembly, Annotation: annotation})
}
