package app

import (
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/nelieo/aios/internal/config"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
)

// StatsMsg carries a CPU and memory sample.
type StatsMsg struct {
	CPU  float64
	RAM  float64
	Time time.Time
}

// StatsCmd samples system usage after config.StatsUpdateInterval.
func StatsCmd() tea.Cmd {
	return tea.Tick(config.StatsUpdateInterval, func(t time.Time) tea.Msg {
		return SampleStats(t)
	})
}

// SampleStats reads CPU and memory usage. Failed reads report zero.
func SampleStats(t time.Time) StatsMsg {
	msg := StatsMsg{Time: t}
	if percents, err := cpu.Percent(0, false); err == nil && len(percents) > 0 {
		msg.CPU = percents[0]
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		msg.RAM = vm.UsedPercent
	}
	return msg
}

// applyStats stores a sample on the model.
func (m *OS) applyStats(msg StatsMsg) {
	m.CPUUsage = msg.CPU
	m.RAMUsage = msg.RAM
	m.LastStatsUpdate = msg.Time
}
