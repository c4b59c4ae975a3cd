package libdiff

import (
	"strings"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// Edit is one piece of a text diff: text kept from both sides when Keep is
// set, otherwise text inserted or deleted according to Op.
type Edit struct {
	Keep bool
	Op   Op
	Text string
}

// diffString returns the character edits turning from into to, or nil when
// they change more than half of the shorter string.
func diffString(from, to string) []Edit {
	diffCfg := diffpatch.New()
	doMultiLine := strings.Contains(from, "\n") && strings.Contains(to, "\n")
	diffs := diffCfg.DiffMain(from, to, doMultiLine)
	diffs = diffCfg.DiffCleanupSemantic(diffs)
	diffSize := 0
	res := make([]Edit, 0, len(diffs))
	for _, diff := range diffs {
		switch diff.Type {
		case diffpatch.DiffInsert:
			res = append(res, Edit{Op: Insert, Text: diff.Text})
			diffSize += len(diff.Text)
		case diffpatch.DiffDelete:
			res = append(res, Edit{Op: Delete, Text: diff.Text})
			diffSize += len(diff.Text)
		case diffpatch.DiffEqual:
			res = append(res, Edit{Keep: true, Text: diff.Text})
		}
	}
	if diffSize == 0 || diffSize > min(len(from), len(to))/2 {
		return nil
	}
	return res
}
