package commands

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"taskpad/internal/store"
	"taskpad/internal/sync"
)

// ErrTaskRefRequired is returned when no task reference was given.
var ErrTaskRefRequired = errors.New("task reference required")

// ParseTaskRef parses a task reference from positional args.
// A reference is the task's 1-based position in the current list, as printed
// by the list command.
func ParseTaskRef(args []string) (int, error) {
	if len(args) == 0 {
		return 0, ErrTaskRefRequired
	}
	if len(args) > 1 {
		return 0, fmt.Errorf("too many arguments: %s", strings.Join(args, " "))
	}

	num, err := strconv.Atoi(args[0])
	if err != nil || num < 1 {
		return 0, fmt.Errorf("invalid task reference: %s", args[0])
	}
	return num, nil
}

// taskAt resolves a 1-based position against the synchronizer's snapshot.
func taskAt(syn *sync.Synchronizer, num int) (store.Task, error) {
	tasks := syn.Tasks()
	if num < 1 || num > len(tasks) {
		return store.Task{}, fmt.Errorf("task number out of range: %d", num)
	}
	return tasks[num-1], nil
}
