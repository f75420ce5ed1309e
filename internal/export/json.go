package export

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/hairsim/internal/engine"
	"github.com/san-kum/hairsim/internal/hair"
)

type ExportData struct {
	Rows    int                `json:"rows"`
	Cols    int                `json:"cols"`
	Points  int                `json:"points"`
	Dt      float64            `json:"dt"`
	Steps   int                `json:"steps"`
	Backend string             `json:"backend"`
	Times   []float64          `json:"times"`
	Tip     [][3]float64       `json:"tip"`
	Strain  []float64          `json:"strain"`
	Energy  []float64          `json:"energy"`
	Metrics map[string]float64 `json:"metrics"`
}

// RunInfo carries the configuration fields recorded next to the
// series.
type RunInfo struct {
	Rows    int
	Cols    int
	Points  int
	Dt      float64
	Backend string
}

func buildExport(info RunInfo, result *engine.Result) ExportData {
	data := ExportData{
		Rows:    info.Rows,
		Cols:    info.Cols,
		Points:  info.Points,
		Dt:      info.Dt,
		Backend: info.Backend,
		Steps:   result.StepsTaken,
		Times:   result.Times,
		Tip:     make([][3]float64, len(result.Tip)),
		Strain:  result.MeanStrain,
		Energy:  result.Energy,
		Metrics: result.Metrics,
	}
	for i, p := range result.Tip {
		data.Tip[i] = [3]float64{p.X, p.Y, p.Z}
	}
	return data
}

func ExportJSON(path string, info RunInfo, result *engine.Result) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return writeJSON(file, info, result)
}

func ExportJSONStdout(info RunInfo, result *engine.Result) error {
	return writeJSON(os.Stdout, info, result)
}

func writeJSON(w io.Writer, info RunInfo, result *engine.Result) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(buildExport(info, result))
}

// FinalPose extracts every active point of the final state as strand
// polylines, anchor first. It is the shape handed to the SVG writer.
func FinalPose(state *hair.Buffer, strands []hair.Strand) [][]hair.Vec3 {
	out := make([][]hair.Vec3, len(strands))
	for s, strand := range strands {
		line := make([]hair.Vec3, 0, strand.Length+1)
		line = append(line, strand.Anchor)
		for p := 0; p < strand.Length; p++ {
			line = append(line, state.Pos[hair.Index(s, p)])
		}
		out[s] = line
	}
	return out
}
