package diagram

import (
	"errors"
	"testing"

	"github.com/m-mizutani/gt"
)

func TestDefaults(t *testing.T) {
	set := Defaults()
	gt.NoError(t, set.Validate()).Required()

	gt.Array(t, set.Workflow.Stages).Length(5)
	gt.Array(t, set.Flowchart.Steps).Length(5)
	gt.Array(t, set.Heatmap.Values).Length(4)
	for _, row := range set.Heatmap.Values {
		gt.Array(t, row).Length(4)
		for _, v := range row {
			gt.Bool(t, v >= 1 && v <= 5).True()
		}
	}

	// mutating one copy must not leak into the next
	set.Heatmap.Values[0][0] = 99
	set.Workflow.Stages[0] = "changed"
	fresh := Defaults()
	gt.Value(t, fresh.Heatmap.Values[0][0]).Equal(1)
	gt.Value(t, fresh.Workflow.Stages[0]).Equal("Vendor")
}

func TestHeatmapValidate(t *testing.T) {
	tests := []struct {
		name    string
		heatmap Heatmap
		wantErr bool
	}{
		{
			name:    "default matrix",
			heatmap: Defaults().Heatmap,
			wantErr: false,
		},
		{
			name: "ragged matrix",
			heatmap: Heatmap{
				Rows:    []string{"a", "b"},
				Columns: []string{"x", "y"},
				Values:  [][]int{{1, 2}, {3}},
				File:    "map.png",
			},
			wantErr: true,
		},
		{
			name: "row labels mismatch",
			heatmap: Heatmap{
				Rows:    []string{"a"},
				Columns: []string{"x", "y"},
				Values:  [][]int{{1, 2}, {3, 4}},
				File:    "map.png",
			},
			wantErr: true,
		},
		{
			name: "empty matrix",
			heatmap: Heatmap{
				File: "map.png",
			},
			wantErr: true,
		},
		{
			name: "empty columns",
			heatmap: Heatmap{
				Rows:   []string{"a"},
				Values: [][]int{{}},
				File:   "map.png",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.heatmap.Validate()
			if tt.wantErr {
				gt.Error(t, err)
				gt.Bool(t, errors.Is(err, ErrInvalidDiagram)).True()
			} else {
				gt.NoError(t, err)
			}
		})
	}
}

func TestValidateFile(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		wantErr bool
	}{
		{name: "plain png", file: "workflow.png", wantErr: false},
		{name: "upper case extension", file: "workflow.PNG", wantErr: false},
		{name: "empty", file: "", wantErr: true},
		{name: "nested path", file: "sub/workflow.png", wantErr: true},
		{name: "traversal", file: "../workflow.png", wantErr: true},
		{name: "wrong extension", file: "workflow.svg", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateFile(tt.file)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateFile(%q) error = %v, wantErr %v", tt.file, err, tt.wantErr)
			}
		})
	}
}

func TestSetValidate(t *testing.T) {
	t.Run("empty workflow", func(t *testing.T) {
		set := Defaults()
		set.Workflow.Stages = nil
		gt.Bool(t, errors.Is(set.Validate(), ErrInvalidDiagram)).True()
	})

	t.Run("empty flowchart", func(t *testing.T) {
		set := Defaults()
		set.Flowchart.Steps = []string{}
		gt.Bool(t, errors.Is(set.Validate(), ErrInvalidDiagram)).True()
	})

	t.Run("duplicate file names", func(t *testing.T) {
		set := Defaults()
		set.Flowchart.File = set.Workflow.File
		gt.Bool(t, errors.Is(set.Validate(), ErrInvalidDiagram)).True()
	})
}
