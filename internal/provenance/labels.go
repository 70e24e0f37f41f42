package provenance

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/vk/provgraph/internal/model"
)

const (
	unknownStepLabel    = "Software unknown"
	qualityMetricSuffix = "QualityMetric"
)

// qcAbbreviations holds fixed abbreviations for well-known metric types.
var qcAbbreviations = map[string]string{
	"BismarkQualityMetric":             "BSMK",
	"ChipSeqFilterQualityMetric":       "CSF",
	"ComplexityXcorrQualityMetric":     "CXC",
	"CorrelationQualityMetric":         "COR",
	"CpgCorrelationQualityMetric":      "CPG",
	"DuplicatesQualityMetric":          "DUP",
	"EdwbamstatsQualityMetric":         "EBS",
	"EdwcomparepeaksQualityMetric":     "ECP",
	"Encode2ChipSeqQualityMetric":      "EC2",
	"FastqcQualityMetric":              "FQC",
	"FilteringQualityMetric":           "FLT",
	"GenericQualityMetric":             "GEN",
	"HotspotQualityMetric":             "HS",
	"IDRQualityMetric":                 "IDR",
	"IdrSummaryQualityMetric":          "IDRS",
	"MadQualityMetric":                 "MAD",
	"PhantompeaktoolsSppQualityMetric": "SPP",
	"SamtoolsFlagstatsQualityMetric":   "SAM",
	"SamtoolsStatsQualityMetric":       "SST",
	"StarQualityMetric":                "STAR",
	"TrimmingQualityMetric":            "TRIM",
}

// QCAbbreviation returns the short label drawn for a metric type. Unknown
// types are abbreviated to the capital initials of their name without the
// QualityMetric suffix.
func QCAbbreviation(metricType string) string {
	if abbr, ok := qcAbbreviations[metricType]; ok {
		return abbr
	}
	name := strings.TrimSuffix(metricType, qualityMetricSuffix)
	var initials strings.Builder
	for _, r := range name {
		if unicode.IsUpper(r) || unicode.IsDigit(r) {
			initials.WriteRune(r)
		}
	}
	switch {
	case initials.Len() > 0:
		return initials.String()
	case name != "":
		return strings.ToUpper(name)
	default:
		return "QC"
	}
}

// ShortID returns the display form of an identifier: the last non-empty
// path segment, so "/files/ENCFF001ABC/" becomes "ENCFF001ABC".
func ShortID(id string) string {
	trimmed := strings.Trim(id, "/")
	if trimmed == "" {
		return id
	}
	if i := strings.LastIndex(trimmed, "/"); i >= 0 {
		return trimmed[i+1:]
	}
	return trimmed
}

func fileLabel(f *model.File) string {
	title := f.Title
	if title == "" {
		title = f.Accession
	}
	if title == "" {
		title = ShortID(f.ID)
	}
	if f.OutputType == "" {
		return title
	}
	return fmt.Sprintf("%s (%s)", title, f.OutputType)
}

func stepLabel(step *model.AnalysisStep) string {
	if len(step.StepTypes) > 0 {
		return strings.Join(step.StepTypes, ", ")
	}
	if step.Title != "" {
		return step.Title
	}
	return ShortID(step.ID)
}

func missingLabel(id string) string {
	return ShortID(id) + " (unknown)"
}

func coalescedLabel(count int) string {
	return fmt.Sprintf("%d contributing files", count)
}

func replicateLabel(n int) string {
	return fmt.Sprintf("Replicate %d", n)
}

func pipelineTitles(step *model.AnalysisStep) []string {
	if len(step.Pipelines) == 0 {
		return nil
	}
	titles := make([]string, 0, len(step.Pipelines))
	for _, p := range step.Pipelines {
		if p.Title != "" {
			titles = append(titles, p.Title)
		} else {
			titles = append(titles, ShortID(p.ID))
		}
	}
	return titles
}
