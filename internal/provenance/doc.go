/*
Package provenance assembles the provenance graph of a dataset: a directed
graph of data files, the analysis steps that produced them and the files
they were derived from, clustered by biological replicate.

The input is a flat list of file records plus the assembly/annotation pair
selected in the UI. The assembly is a multi-phase process:

 1. Indexing: files are validated and deduplicated into a FileIndex, and a
    filter-independent ReverseIndex maps every derivation source to the files
    that derive from it.

 2. Selection: files matching the selected assembly/annotation are collected
    and islands (files that neither derive from anything nor are derived from)
    are dropped. An empty selection is reported as a
    *NoGraphableRelationshipsError, the only error assembly returns.

 3. Classification: matching files are grouped by biological replicate;
    referenced files that are not listed are split into used contributing
    files, coalesced groups of contributing files and missing files.

 4. Node creation and linking: replicate containers, file nodes with their
    quality metric sub-nodes, analysis step nodes, ancestor files,
    contributing, coalesced and missing stubs are added to a dag.Graph using
    the deterministic identifiers of the nodeid package, then the recorded
    edges are linked.

Assembly never mutates the input records. Derived keys (sorted derivation
sets, QC identifiers, group hashes) live in a Memo owned by the Assembler and
reset whenever its file list is replaced.
*/
package provenance
