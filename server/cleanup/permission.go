package cleanup

import (
	"fmt"

	"github.com/charmbracelet/huh"
)

// GetPermission asks the user whether a leftover session socket from a
// previous run may be cleaned up.
func GetPermission(session string) (bool, error) {
	var confirmation bool
	prompt := fmt.Sprintf("A %s session is already in progress or was not shut down cleanly. Terminate it and start a new one?", session)
	if err := huh.NewConfirm().Title(prompt).Value(&confirmation).Run(); err != nil {
		return false, err
	}
	return confirmation, nil
}
