package analysis

import (
	"strconv"

	domain "rhapsody/internal/domain/analysis"
	"rhapsody/internal/domain/sgf"
)

// ReportSGF rebuilds a normalized SGF file from the analysis log.
// Rejected moves never reached the board and are left out.
func ReportSGF(reports []domain.MoveReport) string {
	size := 19
	if len(reports) > 0 && len(reports[0].BoardBeforeMoveState) > 0 {
		size = len(reports[0].BoardBeforeMoveState)
	}

	root := &sgf.GameTree{
		Nodes: []sgf.Node{{
			Properties: map[string][]string{
				"FF": {"4"},
				"GM": {"1"},
				"SZ": {strconv.Itoa(size)},
			},
		}},
	}

	for _, report := range reports {
		if report.Type == domain.TypeIllegalMove {
			continue
		}
		root.Nodes = append(root.Nodes, sgf.Node{
			Properties: map[string][]string{
				report.Player: {report.SGFCoords},
			},
		})
	}

	return sgf.Serialize(&sgf.SGF{Root: root})
}
