package mazegen

import "fmt"

// The decorative "42" shape, one row per grid row, drawn with horizontal
// and vertical strokes only.
var patternShape = [5][7]uint8{
	{1, 0, 0, 0, 1, 1, 1},
	{1, 0, 0, 0, 0, 0, 1},
	{1, 1, 1, 0, 1, 1, 1},
	{0, 0, 1, 0, 1, 0, 0},
	{0, 0, 1, 0, 1, 1, 1},
}

// PatternMask computes the set of cells covered by the "42" shape centered
// in a width x height grid. When the grid cannot hold the shape with its
// margin, or the shape would cover the entry or exit, the returned set is
// empty and the error carries the non-fatal diagnostic; generation
// proceeds without the pattern in that case.
func PatternMask(width, height int, entry, exit CellPosition) (map[CellPosition]struct{}, error) {
	patHeight := len(patternShape)
	patWidth := len(patternShape[0])

	if height < patHeight+1 || width < patWidth+2 {
		return nil, fmt.Errorf("pattern omitted: %dx%d maze is too small to hold it", width, height)
	}

	offsetRow := (height - patHeight) / 2
	offsetCol := (width - patWidth) / 2

	mask := make(map[CellPosition]struct{})
	for r := 0; r < patHeight; r++ {
		for c := 0; c < patWidth; c++ {
			if patternShape[r][c] != 0 {
				mask[CellPosition{Row: offsetRow + r, Col: offsetCol + c}] = struct{}{}
			}
		}
	}

	if _, ok := mask[entry]; ok {
		return nil, fmt.Errorf("pattern omitted: it covers the entry position %s", FormatPosition(entry))
	}
	if _, ok := mask[exit]; ok {
		return nil, fmt.Errorf("pattern omitted: it covers the exit position %s", FormatPosition(exit))
	}
	return mask, nil
}
