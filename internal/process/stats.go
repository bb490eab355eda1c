package process

import (
	"fmt"

	gops "github.com/shirou/gopsutil/v3/process"
)

// Stats is a resource sample of a process tree.
type Stats struct {
	CPU float64
	RSS uint64
}

// Stats samples CPU and memory of the running child and its descendants.
func (p *Process) Stats() (Stats, error) {
	pid := p.PID()
	if pid == 0 {
		return Stats{}, fmt.Errorf("%s is not running", p.Name())
	}
	return sample(int32(pid))
}

func sample(pid int32) (Stats, error) {
	root, err := gops.NewProcess(pid)
	if err != nil {
		return Stats{}, fmt.Errorf("failed to inspect pid %d: %w", pid, err)
	}

	var total Stats
	queue := []*gops.Process{root}
	for len(queue) > 0 {
		proc := queue[0]
		queue = queue[1:]

		if cpu, err := proc.CPUPercent(); err == nil {
			total.CPU += cpu
		}
		if mem, err := proc.MemoryInfo(); err == nil && mem != nil {
			total.RSS += mem.RSS
		}
		if children, err := proc.Children(); err == nil {
			queue = append(queue, children...)
		}
	}
	return total, nil
}

// FormatBytes renders a byte count with a binary unit.
func FormatBytes(n uint64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%dB", n)
	}
	div, exp := uint64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f%ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
