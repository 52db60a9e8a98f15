package constant

import "fmt"

// OverduePolicy decides how often an overdue task is announced.
type OverduePolicy string

const (
	// OverdueRepeat announces overdue tasks on every poll pass.
	OverdueRepeat OverduePolicy = "repeat"
	// OverdueOnce announces an overdue task once per suppression window.
	OverdueOnce OverduePolicy = "once"
)

// ParseOverduePolicy parses the textual policy; empty input yields OverdueRepeat.
func ParseOverduePolicy(s string) (OverduePolicy, error) {
	switch OverduePolicy(s) {
	case "", OverdueRepeat:
		return OverdueRepeat, nil
	case OverdueOnce:
		return OverdueOnce, nil
	}
	return "", fmt.Errorf("unknown overdue policy %q (want %q or %q)", s, OverdueRepeat, OverdueOnce)
}
