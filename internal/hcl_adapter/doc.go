// Package hcl_adapter loads dataset documents written in HCL. A document
// declares an optional `settings` block, at most one `dataset` block and any
// number of `file` blocks with nested `step_run` and `quality_metric` blocks:
//
//	dataset "/experiments/ENCSR000AAA/" {
//	  accession          = "ENCSR000AAA"
//	  contributing_files = ["/files/ENCFF000REF/"]
//	}
//
//	file "/files/ENCFF001BAM/" {
//	  output_type           = "alignments"
//	  assembly              = "GRCh38"
//	  derived_from          = ["/files/ENCFF000FQ1/", "/files/ENCFF000REF/"]
//	  biological_replicates = [1]
//
//	  step_run "/analysis-step-runs/1/" {
//	    version = "1.2.0"
//	    analysis_step "/analysis-steps/alignment-step-v-1/" {
//	      step_types = ["alignment"]
//	    }
//	  }
//	}
package hcl_adapter
