package benchmark

import "fmt"

// BuildPrompt wraps a puzzle's ASCII export in the solving instructions sent
// as the user message. The rule explanation travels separately as the system
// prompt.
func BuildPrompt(puzzleAscii string) string {
	return fmt.Sprintf(`Solve this laser mirror puzzle:

%s

Rows are numbered 1, 2, 3, ... from top. Columns are labeled A, B, C, ... from left.

First, trace the laser path step by step, showing each cell the laser passes through and any direction changes at mirrors.

Then provide your final answer as JSON in exactly this format:
`+"```json"+`
{"edge": "<top|bottom|left|right>", "position": "<row number or column letter>"}
`+"```"+`

Where:
- "edge" is which edge the laser exits from (top, bottom, left, or right)
- "position" is the row number (for left/right exits) or column letter (for top/bottom exits)`, puzzleAscii)
}
