// ─────────────────────────────────────────────────────────────────────────────
// [Filename]: debug.go — Cold-path diagnostics (zero-fmt)
//
// Purpose:
//   - Reports backend selection, self-test outcomes and persistence errors.
//   - Never used inside counter operations.
//
// Notes:
//   - Avoids fmt to keep the message path allocation-light and predictable.
//   - One line per call: "<prefix>: <message>\n" on stderr.
//
// ⚠️ Never invoke in hot loops — use only in failure diagnostics.
// ─────────────────────────────────────────────────────────────────────────────

package debug

import "github.com/snuf/iomemory-vsl-freebsd/utils"

// DropError logs err under prefix. A nil err prints the prefix alone, which
// doubles as a cheap trace tag.
//
//go:nosplit
//go:inline
func DropError(prefix string, err error) {
	if err != nil {
		utils.PrintWarning(prefix + ": " + err.Error() + "\n")
		return
	}
	utils.PrintWarning(prefix + "\n")
}

// DropMessage logs a tagged diagnostic line.
//
//go:nosplit
//go:inline
func DropMessage(prefix, message string) {
	utils.PrintWarning(prefix + ": " + message + "\n")
}
