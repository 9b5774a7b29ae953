// Package command turns manifest steps into fastboot argument vectors.
package command

import (
	"fmt"
	"strings"

	"github.com/irixaligned/swat/internal/manifest"
)

// Flags that turn off dm-verity and vbmeta verification when flashing a
// vbmeta image.
var disableAVBFlags = []string{"--disable-verity", "--disable-verification"}

// Command is a fully built fastboot invocation.
type Command struct {
	Args        []string `json:"args"` // executable first
	Description string   `json:"description"`

	fileArg int // index of the image path in Args, 0 when none
}

// Build returns the fastboot invocation for step. It has no side effects and
// always yields the same result for the same inputs. disableVerifiedBoot only
// applies to flash steps whose partition name contains "vbmeta".
func Build(executable string, step manifest.Step, disableVerifiedBoot bool, resolvedPath string) Command {
	args := []string{executable, step.Operation}
	cmd := Command{}

	switch step.Operation {
	case manifest.OpFlash, manifest.OpErase:
		partition := manifest.Value(step.Partition)
		args = append(args, partition)
		if step.Operation == manifest.OpFlash {
			if disableVerifiedBoot && strings.Contains(partition, "vbmeta") {
				args = append(args, disableAVBFlags...)
			}
			cmd.fileArg = len(args)
			args = append(args, resolvedPath)
		}
	default:
		if step.Var != nil {
			args = append(args, strings.Fields(*step.Var)...)
		}
	}

	cmd.Args = args
	cmd.Description = Describe(step)
	return cmd
}

// Describe returns the human-readable summary printed before a step runs.
func Describe(step manifest.Step) string {
	switch step.Operation {
	case manifest.OpFlash:
		return fmt.Sprintf(`Flashing: "%s" to "%s"`, manifest.Value(step.Filename), manifest.Value(step.Partition))
	case manifest.OpErase:
		return fmt.Sprintf(`Erasing: "%s"`, manifest.Value(step.Partition))
	}
	if step.Var != nil {
		return fmt.Sprintf(`Operation: "%s" performed with argument "%s"`, step.Operation, *step.Var)
	}
	return fmt.Sprintf(`Operation: "%s" performed`, step.Operation)
}

// String renders the command for display. The image path is always quoted;
// other arguments only when they contain whitespace or are empty.
func (c Command) String() string {
	parts := make([]string, len(c.Args))
	for i, a := range c.Args {
		if (c.fileArg > 0 && i == c.fileArg) || a == "" || strings.ContainsAny(a, " \t\"") {
			parts[i] = `"` + a + `"`
			continue
		}
		parts[i] = a
	}
	return strings.Join(parts, " ")
}
