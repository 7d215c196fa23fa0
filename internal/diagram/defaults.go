package diagram

// Defaults returns the built-in diagram content. Each call returns fresh slices.
func Defaults() Set {
	return Set{
		Workflow: Workflow{
			Title: "Pharmaceutical Vendor Documentation Workflow",
			Stages: []string{
				"Vendor",
				"Document\nSubmission",
				"QA/QC\nReview",
				"Compliance\nValidation",
				"Approval &\nRelease",
			},
			File: WorkflowFile,
		},
		Flowchart: Flowchart{
			Title: "Document Handling Flow (AI-Ready)",
			Steps: []string{
				"Receive vendor document\n(PDF / scan / email)",
				"Classify document type\n(CoA / SDS / Calibration / Change)",
				"Extract key fields\n(lot, dates, specs, signatures)",
				"Validate completeness\n(required fields, formats)",
				"Route exceptions\n(missing/invalid → QA queue)",
			},
			File: FlowchartFile,
		},
		Heatmap: Heatmap{
			Title:   "Compliance Risk Heatmap",
			Rows:    []string{"Low Likelihood", "Med", "High", "Critical"},
			Columns: []string{"Low Impact", "Med", "High", "Critical"},
			Values: [][]int{
				{1, 2, 3, 4},
				{2, 3, 4, 5},
				{1, 3, 4, 5},
				{1, 2, 3, 4},
			},
			File: HeatmapFile,
		},
	}
}
