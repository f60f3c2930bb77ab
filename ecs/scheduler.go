package ecs

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"time"

	"go.uber.org/zap"
)

// ErrFrameFaulted is returned by Run when a frame faulted and the scheduler
// was configured to halt on faults.
var ErrFrameFaulted = errors.New("ecs: frame faulted")

// SchedulerStats provides statistics about scheduler execution.
type SchedulerStats struct {
	SystemCount     int
	TotalExecutions int64
	Frames          uint64
	FaultedFrames   uint64
	Systems         []SystemStats
}

// SystemStats provides execution statistics for a single system.
type SystemStats struct {
	Name           string
	Priority       int
	ExecutionCount int64
	EntityCount    int64
	FaultCount     int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type systemStatsInternal struct {
	executionCount int64
	entityCount    int64
	faultCount     int64
	minDuration    time.Duration
	maxDuration    time.Duration
	totalDuration  time.Duration
	lastDuration   time.Duration
}

type systemEntry struct {
	system   System
	filter   Filter
	name     string
	priority int
	seq      int
	stats    systemStatsInternal
}

// FrameReport describes the outcome of one Scheduler.Once call.
// Faulted is set when any system's pass was curtailed; calling code decides
// whether to halt.
type FrameReport struct {
	Frame      uint64
	DeltaTime  float64
	Processed  int
	Faults     []*SystemFaultError
	Violations []*MissingComponentError
	Faulted    bool
}

// Err joins every fault and contract violation recorded in the frame.
func (r *FrameReport) Err() error {
	errs := make([]error, 0, len(r.Faults)+len(r.Violations))
	for _, f := range r.Faults {
		errs = append(errs, f)
	}
	for _, v := range r.Violations {
		errs = append(errs, v)
	}
	return errors.Join(errs...)
}

// SchedulerOption configures a Scheduler.
type SchedulerOption func(*Scheduler)

// WithLogger sets the logger used for fault reports.
func WithLogger(logger *zap.Logger) SchedulerOption {
	return func(s *Scheduler) {
		s.logger = logger
	}
}

// WithHaltOnFault makes Run stop after the first faulted frame.
func WithHaltOnFault(halt bool) SchedulerOption {
	return func(s *Scheduler) {
		s.haltOnFault = halt
	}
}

// Scheduler manages and executes systems in ascending priority order.
// Systems with equal priority run in registration order.
type Scheduler struct {
	storage     *Storage
	commands    *Commands
	logger      *zap.Logger
	systems     []*systemEntry
	nextSeq     int
	frame       uint64
	faulted     uint64
	haltOnFault bool
}

// NewScheduler creates a new scheduler for the given storage.
func NewScheduler(storage *Storage, opts ...SchedulerOption) *Scheduler {
	s := &Scheduler{
		storage:  storage,
		commands: newCommands(),
		logger:   zap.NewNop(),
		systems:  make([]*systemEntry, 0),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register adds a system to the scheduler. Systems execute in ascending
// priority order; ties keep registration order.
func (s *Scheduler) Register(system System, priority int) {
	entry := &systemEntry{
		system:   system,
		filter:   system.Filter(),
		name:     systemName(system),
		priority: priority,
		seq:      s.nextSeq,
		stats: systemStatsInternal{
			minDuration: time.Duration(1<<63 - 1),
		},
	}
	s.nextSeq++
	s.systems = append(s.systems, entry)

	sort.SliceStable(s.systems, func(i, j int) bool {
		if s.systems[i].priority != s.systems[j].priority {
			return s.systems[i].priority < s.systems[j].priority
		}
		return s.systems[i].seq < s.systems[j].seq
	})

	s.logger.Debug("system registered",
		zap.String("system", entry.name),
		zap.Int("priority", priority),
		zap.Int("required", len(entry.filter.Types())))
}

func systemName(system System) string {
	if named, ok := system.(NamedSystem); ok {
		return named.Name()
	}

	systemType := reflect.TypeOf(system)
	if systemType.Kind() == reflect.Ptr {
		systemType = systemType.Elem()
	}
	return systemType.Name()
}

// Order returns system names in execution order.
func (s *Scheduler) Order() []string {
	names := make([]string, len(s.systems))
	for i, entry := range s.systems {
		names[i] = entry.name
	}
	return names
}

// Commands returns the deferred command buffer flushed at the end of each frame.
func (s *Scheduler) Commands() *Commands {
	return s.commands
}

// Once executes all registered systems once with the given delta time.
func (s *Scheduler) Once(dt float64) *FrameReport {
	s.frame++
	frame := newUpdateFrame(s.frame, dt, s.storage, s.commands)
	report := &FrameReport{
		Frame:     s.frame,
		DeltaTime: dt,
	}

	for _, entry := range s.systems {
		start := time.Now()
		processed := s.runSystem(entry, frame, report)
		duration := time.Since(start)

		stats := &entry.stats
		stats.executionCount++
		stats.entityCount += int64(processed)
		stats.lastDuration = duration
		stats.totalDuration += duration

		if duration < stats.minDuration {
			stats.minDuration = duration
		}
		if duration > stats.maxDuration {
			stats.maxDuration = duration
		}
	}

	if err := s.commands.Flush(s.storage); err != nil {
		s.fault(report, &SystemFaultError{
			System: "commands",
			Phase:  PhaseFlush,
			Frame:  frame.Number,
			Cause:  err,
		}, nil)
	}
	s.storage.Recycle()

	if report.Faulted {
		s.faulted++
	}
	return report
}

func (s *Scheduler) runSystem(entry *systemEntry, frame *UpdateFrame, report *FrameReport) int {
	hooks, hasHooks := entry.system.(FrameSystem)
	if hasHooks {
		if err := guard(func() error { hooks.BeginFrame(frame); return nil }); err != nil {
			s.fault(report, &SystemFaultError{
				System: entry.name,
				Phase:  PhaseBeginFrame,
				Frame:  frame.Number,
				Cause:  err,
			}, entry)
			return 0
		}
	}

	processed := s.processAll(entry, frame, report)

	if hasHooks {
		if err := guard(func() error { hooks.EndFrame(frame); return nil }); err != nil {
			s.fault(report, &SystemFaultError{
				System: entry.name,
				Phase:  PhaseEndFrame,
				Frame:  frame.Number,
				Cause:  err,
			}, entry)
		}
	}

	report.Processed += processed
	return processed
}

func (s *Scheduler) processAll(entry *systemEntry, frame *UpdateFrame, report *FrameReport) int {
	processed := 0
	for id := range s.storage.Query(entry.filter) {
		err := guard(func() error { return entry.system.ProcessEntity(frame, id) })
		processed++
		if err == nil {
			continue
		}

		var missing *MissingComponentError
		if errors.As(err, &missing) {
			report.Violations = append(report.Violations, missing)
			s.logger.Warn("component contract violated",
				zap.String("system", entry.name),
				zap.Uint64("entity", uint64(id)),
				zap.String("component", missing.Component),
				zap.Uint64("frame", frame.Number))
			continue
		}

		s.fault(report, &SystemFaultError{
			System: entry.name,
			Entity: id,
			Frame:  frame.Number,
			Cause:  err,
		}, entry)
		break
	}
	return processed
}

// fault records f in the report. entry is nil for faults outside any system.
func (s *Scheduler) fault(report *FrameReport, f *SystemFaultError, entry *systemEntry) {
	report.Faults = append(report.Faults, f)
	report.Faulted = true
	if entry != nil {
		entry.stats.faultCount++
	}

	fields := []zap.Field{
		zap.String("system", f.System),
		zap.Uint64("frame", f.Frame),
		zap.Error(f.Cause),
	}
	if f.Phase != "" {
		fields = append(fields, zap.String("phase", f.Phase))
	} else {
		fields = append(fields, zap.Uint64("entity", uint64(f.Entity)))
	}
	s.logger.Error("system faulted", fields...)
}

// guard calls fn and converts a panic into a *PanicError.
func guard(fn func() error) (err error) {
	defer recoverInto(&err)
	return fn()
}

// Run executes all systems repeatedly at the given interval until the context is cancelled.
// When the scheduler halts on faults, Run returns the first faulted frame's error
// wrapped in ErrFrameFaulted.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	lastTime := time.Now()

	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			dt := now.Sub(lastTime).Seconds()
			lastTime = now
			report := s.Once(dt)
			if report.Faulted && s.haltOnFault {
				return fmt.Errorf("%w: %w", ErrFrameFaulted, report.Err())
			}
		}
	}
}

// GetStats returns statistics about system execution.
func (s *Scheduler) GetStats() *SchedulerStats {
	stats := &SchedulerStats{
		SystemCount:   len(s.systems),
		Frames:        s.frame,
		FaultedFrames: s.faulted,
		Systems:       make([]SystemStats, len(s.systems)),
	}

	var totalExecs int64
	for i, entry := range s.systems {
		internal := entry.stats
		avgDuration := time.Duration(0)
		minDuration := internal.minDuration
		if internal.executionCount > 0 {
			avgDuration = internal.totalDuration / time.Duration(internal.executionCount)
		} else {
			minDuration = 0
		}

		stats.Systems[i] = SystemStats{
			Name:           entry.name,
			Priority:       entry.priority,
			ExecutionCount: internal.executionCount,
			EntityCount:    internal.entityCount,
			FaultCount:     internal.faultCount,
			MinDuration:    minDuration,
			MaxDuration:    internal.maxDuration,
			AvgDuration:    avgDuration,
			LastDuration:   internal.lastDuration,
			TotalDuration:  internal.totalDuration,
		}
		totalExecs += internal.executionCount
	}

	stats.TotalExecutions = totalExecs
	return stats
}
